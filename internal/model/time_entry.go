package model

import "time"

type TimeEntry struct {
	StartedAt       time.Time  `json:"started_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ID              int64      `json:"id"`
	TaskID          int64      `json:"task_id"`
	UserID          int64      `json:"user_id"`
	DurationSeconds int64      `json:"duration_seconds"`
}

func (t *TimeEntry) IsRunning() bool {
	return t.EndedAt == nil
}
