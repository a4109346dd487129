package model

import "time"

type NotificationType string

const (
	NotificationTypeTaskAssigned      NotificationType = "task_assigned"
	NotificationTypeTaskStatusChanged NotificationType = "task_status_changed"
	NotificationTypeTaskComment       NotificationType = "task_comment"
	NotificationTypeWorkspaceJoined   NotificationType = "workspace_joined"
)

type Notification struct {
	CreatedAt    time.Time        `json:"created_at"`
	Content      *string          `json:"content,omitempty"`
	ResourceType *string          `json:"resource_type,omitempty"`
	ResourceID   *int64           `json:"resource_id,omitempty"`
	EventID      *int64           `json:"event_id,omitempty"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	ID           int64            `json:"id"`
	UserID       int64            `json:"user_id"`
	IsRead       bool             `json:"is_read"`
}
