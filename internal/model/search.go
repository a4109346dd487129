package model

import "time"

type SearchKind string

const (
	SearchKindTask    SearchKind = "task"
	SearchKindProject SearchKind = "project"
)

// TaskDocument is the denormalized task shape kept in the search index.
type TaskDocument struct {
	UpdatedAt   time.Time `json:"updated_at"`
	Description *string   `json:"description,omitempty"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	ProjectSlug string    `json:"project_slug"`
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	WorkspaceID int64     `json:"workspace_id"`
	Number      int32     `json:"number"`
}

type SearchHit struct {
	Kind        SearchKind `json:"kind"`
	Title       string     `json:"title"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ProjectSlug string     `json:"project_slug,omitempty"`
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id,omitempty"`
	Number      int32      `json:"number,omitempty"`
}
