package router

import (
	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler"
)

type TaskHandlers struct {
	Tasks       *handler.TaskHandler
	Activities  *handler.ActivityHandler
	Labels      *handler.LabelHandler
	TimeEntries *handler.TimeEntryHandler
}

// TaskRouter mounts task routes and the routes of resources that hang off a
// task (comments, labels, time entries) but are addressed by their own id.
func TaskRouter(rg *gin.RouterGroup, h TaskHandlers) {
	task := rg.Group("/task/:task_id")
	{
		task.GET("", h.Tasks.Get)
		task.PUT("", h.Tasks.Update)
		task.DELETE("", h.Tasks.Delete)

		task.PUT("/status", h.Tasks.UpdateStatus)
		task.PUT("/priority", h.Tasks.UpdatePriority)
		task.PUT("/assignee", h.Tasks.UpdateAssignee)
		task.PUT("/due-date", h.Tasks.UpdateDueDate)
		task.PUT("/title", h.Tasks.UpdateTitle)
		task.PUT("/description", h.Tasks.UpdateDescription)
		task.PUT("/move", h.Tasks.Move)

		task.GET("/activities", h.Activities.List)
		task.POST("/comments", h.Activities.CreateComment)

		task.GET("/labels", h.Labels.ListForTask)
		task.POST("/labels/:label_id", h.Labels.Attach)
		task.DELETE("/labels/:label_id", h.Labels.Detach)

		task.GET("/time-entries", h.TimeEntries.ListForTask)
		task.POST("/time-entries", h.TimeEntries.Create)
	}

	rg.PUT("/comment/:activity_id", h.Activities.UpdateComment)
	rg.DELETE("/comment/:activity_id", h.Activities.DeleteComment)

	rg.PUT("/label/:label_id", h.Labels.Update)
	rg.DELETE("/label/:label_id", h.Labels.Delete)

	entry := rg.Group("/time-entry/:time_entry_id")
	{
		entry.GET("", h.TimeEntries.Get)
		entry.PUT("", h.TimeEntries.Update)
		entry.DELETE("", h.TimeEntries.Delete)
		entry.POST("/stop", h.TimeEntries.Stop)
	}
}

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("", h.List)
	rg.DELETE("", h.ClearAll)
	rg.GET("/unread-count", h.UnreadCount)
	rg.PUT("/read-all", h.MarkAllRead)
	rg.PUT("/:notification_id/read", h.MarkRead)
}
