package model

import "time"

type ActivityType string

const (
	ActivityTypeCreate             ActivityType = "create"
	ActivityTypeStatusChanged      ActivityType = "status_changed"
	ActivityTypePriorityChanged    ActivityType = "priority_changed"
	ActivityTypeAssigneeChanged    ActivityType = "assignee_changed"
	ActivityTypeDueDateChanged     ActivityType = "due_date_changed"
	ActivityTypeTitleChanged       ActivityType = "title_changed"
	ActivityTypeDescriptionChanged ActivityType = "description_changed"
	ActivityTypeComment            ActivityType = "comment"
	ActivityTypeTimeEntry          ActivityType = "time_entry"
	ActivityTypeIntegration        ActivityType = "integration"
)

type Activity struct {
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	UserID    *int64       `json:"user_id,omitempty"`
	EventID   *int64       `json:"event_id,omitempty"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	ID        int64        `json:"id"`
	TaskID    int64        `json:"task_id"`
}
