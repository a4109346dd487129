package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
)

func ProjectRouter(rg *gin.RouterGroup, projects *handler.ProjectHandler, tasks *handler.TaskHandler, integrations *handler.IntegrationHandler) {
	p := rg.Group("/:project_id")
	{
		p.GET("", projects.Get)
		p.PUT("", projects.Update)
		p.DELETE("", projects.Delete)

		p.GET("/columns", projects.ListColumns)
		p.POST("/columns", projects.CreateColumn)
		p.PUT("/columns/reorder", projects.ReorderColumns)
		p.PUT("/columns/:column_id", projects.UpdateColumn)
		p.DELETE("/columns/:column_id", projects.DeleteColumn)

		p.GET("/tasks", tasks.ListBoard)
		p.POST("/tasks", tasks.Create)
		p.GET("/export", tasks.Export)
		p.POST("/import", tasks.Import)

		p.GET("/integrations/:provider", integrations.Get)
		p.POST("/integrations/:provider", integrations.Connect)
		p.DELETE("/integrations/:provider", integrations.Disconnect)
		p.POST("/integrations/:provider/import", integrations.ImportIssues)
	}
}

func IntegrationRouter(rg *gin.RouterGroup, h *handler.IntegrationHandler) {
	rg.POST("/:provider/repositories", h.ListRepositories)
}
