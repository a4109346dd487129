package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler/webhook"
)

// WebhookRouter mounts provider callbacks. They authenticate by signature,
// never by session.
func WebhookRouter(rg *gin.RouterGroup, github *webhook.GitHubWebhookHandler, gitea *webhook.GiteaWebhookHandler, gitlab *webhook.GitLabWebhookHandler) {
	rg.POST("/github", github.HandleEvent)
	rg.POST("/gitea/:integration_id", gitea.HandleEvent)
	rg.POST("/gitlab/:integration_id", gitlab.HandleEvent)
}
