package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CreateTaskRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=500"`
	Description *string         `json:"description,omitempty"`
	Status      *string         `json:"status,omitempty"`
	Priority    *model.Priority `json:"priority,omitempty"`
	AssigneeID  *string         `json:"assignee_id,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// UpdateTaskRequest replaces every editable field; omitted optional fields
// are cleared.
type UpdateTaskRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=500"`
	Description *string        `json:"description"`
	Status      string         `json:"status" binding:"required"`
	Priority    model.Priority `json:"priority" binding:"required"`
	AssigneeID  *string        `json:"assignee_id"`
	DueDate     *time.Time     `json:"due_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePriorityRequest struct {
	Priority model.Priority `json:"priority" binding:"required"`
}

type UpdateAssigneeRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

type UpdateDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

type UpdateTitleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=500"`
}

type UpdateDescriptionRequest struct {
	Description *string `json:"description"`
}

type MoveTaskRequest struct {
	Status   string `json:"status" binding:"required"`
	Position *int   `json:"position" binding:"required,min=0"`
}

type TaskResponse struct {
	ID          int64           `json:"id,string"`
	ProjectID   int64           `json:"project_id,string"`
	Number      int32           `json:"number"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	AssigneeID  *string         `json:"assignee_id,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Position    int32           `json:"position"`
	CreatedBy   *string         `json:"created_by,omitempty"`
	Labels      []LabelResponse `json:"labels"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Number:      t.Number,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    string(t.Priority),
		AssigneeID:  OptionalID(t.AssigneeID),
		DueDate:     t.DueDate,
		Position:    t.Position,
		CreatedBy:   OptionalID(t.CreatedBy),
		Labels:      ToLabelResponses(t.Labels),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToTaskResponses(tasks []model.Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = ToTaskResponse(&tasks[i])
	}
	return resp
}

type ImportTaskItem struct {
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Status      string         `json:"status"`
	Priority    model.Priority `json:"priority"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
}

type ImportTasksRequest struct {
	Tasks []ImportTaskItem `json:"tasks" binding:"required,min=1,max=1000"`
}

type ImportTasksResponse struct {
	Imported int            `json:"imported"`
	Tasks    []TaskResponse `json:"tasks"`
}

type ProjectExportResponse struct {
	ExportedAt time.Time        `json:"exported_at"`
	Project    ProjectResponse  `json:"project"`
	Columns    []ColumnResponse `json:"columns"`
	Tasks      []TaskResponse   `json:"tasks"`
}
