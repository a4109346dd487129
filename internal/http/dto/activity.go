package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=10000"`
}

type ActivityResponse struct {
	ID        int64     `json:"id,string"`
	TaskID    int64     `json:"task_id,string"`
	UserID    *string   `json:"user_id,omitempty"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToActivityResponse(a *model.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		TaskID:    a.TaskID,
		UserID:    OptionalID(a.UserID),
		Type:      string(a.Type),
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToActivityResponses(activities []model.Activity) []ActivityResponse {
	resp := make([]ActivityResponse, len(activities))
	for i := range activities {
		resp[i] = ToActivityResponse(&activities[i])
	}
	return resp
}
