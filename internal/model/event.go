package model

import (
	"bytes"
	"encoding/json"
	"time"
)

type EventType string

const (
	EventTaskCreated            EventType = "task.created"
	EventTaskUpdated            EventType = "task.updated"
	EventTaskStatusChanged      EventType = "task.status_changed"
	EventTaskPriorityChanged    EventType = "task.priority_changed"
	EventTaskAssigneeChanged    EventType = "task.assignee_changed"
	EventTaskDueDateChanged     EventType = "task.due_date_changed"
	EventTaskTitleChanged       EventType = "task.title_changed"
	EventTaskDescriptionChanged EventType = "task.description_changed"
	EventTaskDeleted            EventType = "task.deleted"
	EventCommentCreated         EventType = "comment.created"
	EventTimeEntryCreated       EventType = "time_entry.created"
	EventProjectCreated         EventType = "project.created"
	EventProjectUpdated         EventType = "project.updated"
	EventProjectDeleted         EventType = "project.deleted"
	EventMemberAdded            EventType = "workspace.member_added"
)

// Event describes a committed mutation. Payload is event-type specific JSON.
type Event struct {
	CreatedAt   time.Time       `json:"created_at"`
	ProjectID   *int64          `json:"project_id,omitempty"`
	TaskID      *int64          `json:"task_id,omitempty"`
	ActorID     *int64          `json:"actor_id,omitempty"`
	TraceID     *string         `json:"trace_id,omitempty"`
	Type        EventType       `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	ID          int64           `json:"id"`
	WorkspaceID int64           `json:"workspace_id"`
	Attempt     int             `json:"attempt"`
}

// ChangePayload is carried by single-field task change events.
// Source is set when the change originated from an integration or import.
type ChangePayload struct {
	Old    any    `json:"old"`
	New    any    `json:"new"`
	Field  string `json:"field"`
	Title  string `json:"title"`
	Source string `json:"source,omitempty"`
}

// TaskPayload is carried by task.created and task.deleted.
type TaskPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	AssigneeID  *int64  `json:"assignee_id,omitempty"`
	Source      string  `json:"source,omitempty"`
	Number      int32   `json:"number"`
}

// CommentPayload is carried by comment.created.
type CommentPayload struct {
	Content    string `json:"content"`
	ActivityID int64  `json:"activity_id"`
}

// TimeEntryPayload is carried by time_entry.created.
type TimeEntryPayload struct {
	TimeEntryID     int64 `json:"time_entry_id"`
	DurationSeconds int64 `json:"duration_seconds"`
	Running         bool  `json:"running,omitempty"`
}

// MemberPayload is carried by workspace.member_added.
type MemberPayload struct {
	WorkspaceName string     `json:"workspace_name"`
	Role          MemberRole `json:"role"`
	UserID        int64      `json:"user_id"`
}

// ProjectPayload is carried by project events.
type ProjectPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DecodePayload unmarshals the event payload into v. Numbers inside untyped
// fields decode as json.Number so snowflake ids keep their precision.
func (e Event) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(e.Payload))
	dec.UseNumber()
	return dec.Decode(v)
}
