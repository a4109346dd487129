package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CreateTimeEntryRequest struct {
	StartedAt   time.Time  `json:"started_at" binding:"required"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type UpdateTimeEntryRequest struct {
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Description *string    `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type TimeEntryResponse struct {
	ID              int64      `json:"id,string"`
	TaskID          int64      `json:"task_id,string"`
	UserID          int64      `json:"user_id,string"`
	Description     *string    `json:"description,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds int64      `json:"duration_seconds"`
	Running         bool       `json:"running"`
}

func ToTimeEntryResponse(e *model.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:              e.ID,
		TaskID:          e.TaskID,
		UserID:          e.UserID,
		Description:     e.Description,
		StartedAt:       e.StartedAt,
		EndedAt:         e.EndedAt,
		DurationSeconds: e.DurationSeconds,
		Running:         e.IsRunning(),
	}
}
