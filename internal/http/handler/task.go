package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/http/dto"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	assigneeID, err := dto.ParseOptionalID(req.AssigneeID)
	if err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  assigneeID,
		DueDate:     req.DueDate,
		ProjectID:   projectID,
		UserID:      user.ID,
	})
	if err != nil {
		respondError(c, err, "create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// ListBoard returns the project's columns with their tasks. Query filters:
// assignee_id, priority, label_id, due_before (RFC 3339 or YYYY-MM-DD), search.
func (h *TaskHandler) ListBoard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	filter, err := parseTaskFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.taskService.ListBoard(c.Request.Context(), projectID, user.ID, filter)
	if err != nil {
		respondError(c, err, "list tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardResponse(board))
}

func (h *TaskHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), taskID, user.ID)
	if err != nil {
		respondError(c, err, "get task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	assigneeID, err := dto.ParseOptionalID(req.AssigneeID)
	if err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, user.ID, service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  assigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, err, "update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	h.updateField(c, &req, "update task status", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.UpdateStatus(ctx.Request.Context(), taskID, userID, req.Status)
	})
}

func (h *TaskHandler) UpdatePriority(c *gin.Context) {
	var req dto.UpdatePriorityRequest
	h.updateField(c, &req, "update task priority", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.UpdatePriority(ctx.Request.Context(), taskID, userID, req.Priority)
	})
}

func (h *TaskHandler) UpdateAssignee(c *gin.Context) {
	var req dto.UpdateAssigneeRequest
	h.updateField(c, &req, "update task assignee", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		assigneeID, err := dto.ParseOptionalID(req.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
		}
		return h.taskService.UpdateAssignee(ctx.Request.Context(), taskID, userID, assigneeID)
	})
}

func (h *TaskHandler) UpdateDueDate(c *gin.Context) {
	var req dto.UpdateDueDateRequest
	h.updateField(c, &req, "update task due date", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.UpdateDueDate(ctx.Request.Context(), taskID, userID, req.DueDate)
	})
}

func (h *TaskHandler) UpdateTitle(c *gin.Context) {
	var req dto.UpdateTitleRequest
	h.updateField(c, &req, "update task title", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.UpdateTitle(ctx.Request.Context(), taskID, userID, req.Title)
	})
}

func (h *TaskHandler) UpdateDescription(c *gin.Context) {
	var req dto.UpdateDescriptionRequest
	h.updateField(c, &req, "update task description", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.UpdateDescription(ctx.Request.Context(), taskID, userID, req.Description)
	})
}

func (h *TaskHandler) Move(c *gin.Context) {
	var req dto.MoveTaskRequest
	h.updateField(c, &req, "move task", func(ctx *gin.Context, taskID, userID int64) (*model.Task, error) {
		return h.taskService.Move(ctx.Request.Context(), taskID, userID, req.Status, *req.Position)
	})
}

// updateField binds req and runs apply for the task in the path.
func (h *TaskHandler) updateField(c *gin.Context, req any, action string, apply func(c *gin.Context, taskID, userID int64) (*model.Task, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := apply(c, taskID, user.ID)
	if err != nil {
		respondError(c, err, action)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), taskID, user.ID); err != nil {
		respondError(c, err, "delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	export, err := h.taskService.Export(c.Request.Context(), projectID, user.ID)
	if err != nil {
		respondError(c, err, "export project")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-export.json"`, export.Project.Slug))
	c.JSON(http.StatusOK, dto.ProjectExportResponse{
		ExportedAt: export.ExportedAt,
		Project:    dto.ToProjectResponse(export.Project),
		Columns:    dto.ToColumnResponses(export.Columns),
		Tasks:      dto.ToTaskResponses(export.Tasks),
	})
}

func (h *TaskHandler) Import(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req dto.ImportTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items := make([]service.ImportTask, len(req.Tasks))
	for i, t := range req.Tasks {
		items[i] = service.ImportTask{
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
		}
	}

	tasks, err := h.taskService.Import(c.Request.Context(), projectID, user.ID, items)
	if err != nil {
		respondError(c, err, "import tasks")
		return
	}

	c.JSON(http.StatusCreated, dto.ImportTasksResponse{
		Imported: len(tasks),
		Tasks:    dto.ToTaskResponses(tasks),
	})
}

func parseTaskFilter(c *gin.Context) (model.TaskFilter, error) {
	filter := model.TaskFilter{Search: c.Query("search")}

	if raw := c.Query("assignee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.New("invalid assignee_id")
		}
		filter.AssigneeID = &id
	}
	if raw := c.Query("label_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, errors.New("invalid label_id")
		}
		filter.LabelID = &id
	}
	if raw := c.Query("priority"); raw != "" {
		priority := model.Priority(raw)
		if !priority.IsValid() {
			return filter, errors.New("invalid priority")
		}
		filter.Priority = &priority
	}
	if raw := c.Query("due_before"); raw != "" {
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			due, err = time.Parse(time.DateOnly, raw)
			if err != nil {
				return filter, errors.New("invalid due_before")
			}
		}
		filter.DueBefore = &due
	}

	return filter, nil
}
