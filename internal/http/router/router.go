package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
	"github.com/usekaneo/kaneo-sub002/internal/http/handler/webhook"
	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
	"github.com/usekaneo/kaneo-sub002/internal/http/openapi"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type RouterConfig struct {
	ClientURL           string
	IsProduction        bool
	GitHubWebhookSecret string
	SearchEnabled       bool
	Integrations        []model.Provider
	Version             string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService, cfg.IsProduction)

	api := router.Group("/api")
	{
		configHandler := handler.NewConfigHandler(authService.Providers(), cfg.Integrations, cfg.SearchEnabled)
		api.GET("/config", configHandler.Get)
		api.GET("/openapi.json", openapi.Handler(openapi.Info{Title: "Kaneo API", Version: cfg.Version}))

		authHandler := handler.NewAuthHandler(authService, cfg.ClientURL, cfg.IsProduction)
		AuthRouter(api.Group("/auth"), requireAuth, authHandler)

		invitationHandler := handler.NewInvitationHandler(services.Invitations())
		InvitationRouter(api.Group("/invitation"), requireAuth, invitationHandler)

		projectHandler := handler.NewProjectHandler(services.Projects())
		PublicRouter(api.Group("/public"), projectHandler)

		integrations := services.Integrations()
		WebhookRouter(api.Group("/webhook"),
			webhook.NewGitHubWebhookHandler(integrations, cfg.GitHubWebhookSecret),
			webhook.NewGiteaWebhookHandler(integrations),
			webhook.NewGitLabWebhookHandler(integrations),
		)

		taskHandler := handler.NewTaskHandler(services.Tasks())
		labelHandler := handler.NewLabelHandler(services.Labels())

		protected := api.Group("")
		protected.Use(requireAuth)
		{
			WorkspaceRouter(protected.Group("/workspace"), WorkspaceHandlers{
				Workspaces:  handler.NewWorkspaceHandler(services.Workspaces()),
				Invitations: invitationHandler,
				Labels:      labelHandler,
				Projects:    projectHandler,
				Search:      handler.NewSearchHandler(services.Search()),
			})

			integrationHandler := handler.NewIntegrationHandler(integrations)
			ProjectRouter(protected.Group("/project"), projectHandler, taskHandler, integrationHandler)
			IntegrationRouter(protected.Group("/integrations"), integrationHandler)

			TaskRouter(protected, TaskHandlers{
				Tasks:       taskHandler,
				Activities:  handler.NewActivityHandler(services.Activities()),
				Labels:      labelHandler,
				TimeEntries: handler.NewTimeEntryHandler(services.TimeEntries()),
			})

			NotificationRouter(protected.Group("/notification"), handler.NewNotificationHandler(services.Notifications()))
		}
	}
}
