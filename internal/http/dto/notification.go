package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type NotificationResponse struct {
	ID           int64     `json:"id,string"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Content      *string   `json:"content,omitempty"`
	ResourceType *string   `json:"resource_type,omitempty"`
	ResourceID   *string   `json:"resource_id,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToNotificationResponse(n *model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Type:         string(n.Type),
		Title:        n.Title,
		Content:      n.Content,
		ResourceType: n.ResourceType,
		ResourceID:   OptionalID(n.ResourceID),
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}
