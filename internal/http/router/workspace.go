package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
)

type WorkspaceHandlers struct {
	Workspaces  *handler.WorkspaceHandler
	Invitations *handler.InvitationHandler
	Labels      *handler.LabelHandler
	Projects    *handler.ProjectHandler
	Search      *handler.SearchHandler
}

func WorkspaceRouter(rg *gin.RouterGroup, h WorkspaceHandlers) {
	rg.GET("", h.Workspaces.List)
	rg.POST("", h.Workspaces.Create)

	ws := rg.Group("/:workspace_id")
	{
		ws.GET("", h.Workspaces.Get)
		ws.PUT("", h.Workspaces.Update)
		ws.DELETE("", h.Workspaces.Delete)

		ws.GET("/members", h.Workspaces.ListMembers)
		ws.PUT("/members/:user_id", h.Workspaces.UpdateMemberRole)
		ws.DELETE("/members/:user_id", h.Workspaces.RemoveMember)

		ws.GET("/invitations", h.Invitations.List)
		ws.POST("/invitations", h.Invitations.Create)
		ws.DELETE("/invitations/:invitation_id", h.Invitations.Revoke)

		ws.GET("/labels", h.Labels.ListForWorkspace)
		ws.POST("/labels", h.Labels.Create)

		ws.GET("/projects", h.Projects.List)
		ws.POST("/projects", h.Projects.Create)

		ws.GET("/search", h.Search.Search)
	}
}
