package model

import "time"

type Project struct {
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Icon           *string   `json:"icon,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	ID             int64     `json:"id"`
	WorkspaceID    int64     `json:"workspace_id"`
	NextTaskNumber int32     `json:"next_task_number"`
	IsPublic       bool      `json:"is_public"`
}

// ProjectStats carries task counts for a project listing.
type ProjectStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

type Column struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Position  int32     `json:"position"`
	IsFinal   bool      `json:"is_final"`
}

// DefaultColumns are seeded into every new project, in board order.
var DefaultColumns = []Column{
	{Name: "To Do", Slug: "to-do"},
	{Name: "In Progress", Slug: "in-progress"},
	{Name: "In Review", Slug: "in-review"},
	{Name: "Done", Slug: "done", IsFinal: true},
}

// ProjectSummary is a project listing entry.
type ProjectSummary struct {
	Project
	Stats ProjectStats `json:"stats"`
}
