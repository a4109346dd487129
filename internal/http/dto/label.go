package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"required"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color,omitempty"`
}

type LabelResponse struct {
	ID          int64     `json:"id,string"`
	WorkspaceID int64     `json:"workspace_id,string"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToLabelResponse(l *model.Label) LabelResponse {
	return LabelResponse{
		ID:          l.ID,
		WorkspaceID: l.WorkspaceID,
		Name:        l.Name,
		Color:       l.Color,
		CreatedAt:   l.CreatedAt,
	}
}

func ToLabelResponses(labels []model.Label) []LabelResponse {
	resp := make([]LabelResponse, len(labels))
	for i := range labels {
		resp[i] = ToLabelResponse(&labels[i])
	}
	return resp
}
