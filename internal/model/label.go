package model

import "time"

type Label struct {
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
}
