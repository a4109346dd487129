package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
)

// AuthRouter mounts sign-up/sign-in and the OAuth redirects. Only /session
// needs an existing session.
func AuthRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.AuthHandler) {
	rg.POST("/sign-up", h.SignUp)
	rg.POST("/sign-in", h.SignIn)
	rg.POST("/sign-out", h.SignOut)
	rg.GET("/session", requireAuth, h.Session)

	rg.GET("/github", h.GitHubLogin)
	rg.GET("/github/callback", h.GitHubCallback)
	rg.GET("/sso", h.SSOLogin)
	rg.GET("/sso/callback", h.SSOCallback)
}

// InvitationRouter sets up invitation routes
// - GET /:token is public so the invite page can render before sign-in
// - POST /:token/accept requires the invited user's session
func InvitationRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.InvitationHandler) {
	rg.GET("/:token", h.GetByToken)
	rg.POST("/:token/accept", requireAuth, h.Accept)
}

func PublicRouter(rg *gin.RouterGroup, h *handler.ProjectHandler) {
	rg.GET("/project/:project_id", h.GetPublic)
}
