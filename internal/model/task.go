package model

import "time"

type Priority string

const (
	PriorityNone   Priority = "no-priority"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   *int64     `json:"created_by,omitempty"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Priority    Priority   `json:"priority"`
	Labels      []Label    `json:"labels,omitempty"`
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Number      int32      `json:"number"`
	Position    int32      `json:"position"`
}

// TaskFilter narrows a board listing. Zero values match everything.
type TaskFilter struct {
	AssigneeID *int64
	Priority   *Priority
	LabelID    *int64
	DueBefore  *time.Time
	Search     string
}

// BoardColumn is a column with its tasks ordered by position.
type BoardColumn struct {
	Column
	Tasks []Task `json:"tasks"`
}

type Board struct {
	Project *Project      `json:"project"`
	Columns []BoardColumn `json:"columns"`
}
