package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type ActivityService interface {
	List(ctx context.Context, taskID, userID int64) ([]model.Activity, error)
	CreateComment(ctx context.Context, taskID, userID int64, content string) (*model.Activity, error)
	UpdateComment(ctx context.Context, activityID, userID int64, content string) (*model.Activity, error)
	DeleteComment(ctx context.Context, activityID, userID int64) error
	// Record writes the activity row of a task event. It reports false when
	// the event was already recorded or carries nothing to record.
	Record(ctx context.Context, event model.Event) (bool, error)
}

type activityService struct {
	stores StoreProvider
	events eventEmitter
	access access
}

func NewActivityService(stores StoreProvider, publisher EventPublisher) ActivityService {
	return &activityService{
		stores: stores,
		events: newEventEmitter(publisher),
		access: access{stores: stores},
	}
}

func (s *activityService) List(ctx context.Context, taskID, userID int64) ([]model.Activity, error) {
	if _, _, err := s.access.task(ctx, taskID, userID); err != nil {
		return nil, err
	}
	activities, err := s.stores.Activities().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) CreateComment(ctx context.Context, taskID, userID int64, content string) (*model.Activity, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment cannot be empty")
	}
	task, project, err := s.access.task(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	activity := &model.Activity{
		ID:      id.New(),
		TaskID:  task.ID,
		UserID:  &userID,
		Type:    model.ActivityTypeComment,
		Content: content,
	}
	if err := s.stores.Activities().Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.events.emit(ctx, taskEvent(model.EventCommentCreated, project.WorkspaceID, task, &userID), model.CommentPayload{
		Content:    content,
		ActivityID: activity.ID,
	})
	return activity, nil
}

func (s *activityService) UpdateComment(ctx context.Context, activityID, userID int64, content string) (*model.Activity, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("comment cannot be empty")
	}
	if _, err := s.ownComment(ctx, activityID, userID); err != nil {
		return nil, err
	}

	updated, err := s.stores.Activities().UpdateContent(ctx, activityID, content)
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return updated, nil
}

func (s *activityService) DeleteComment(ctx context.Context, activityID, userID int64) error {
	if _, err := s.ownComment(ctx, activityID, userID); err != nil {
		return err
	}
	if err := s.stores.Activities().Delete(ctx, activityID); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

func (s *activityService) ownComment(ctx context.Context, activityID, userID int64) (*model.Activity, error) {
	activity, err := s.stores.Activities().GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting activity: %w", err)
	}
	if activity.Type != model.ActivityTypeComment {
		return nil, ErrNotFound
	}
	if activity.UserID == nil || *activity.UserID != userID {
		return nil, ErrForbidden
	}
	return activity, nil
}

func (s *activityService) Record(ctx context.Context, event model.Event) (bool, error) {
	if event.TaskID == nil {
		return false, nil
	}
	activityType, content, err := describeEvent(event, func(v any) string {
		return s.userName(ctx, v)
	})
	if err != nil {
		return false, err
	}
	if activityType == "" {
		return false, nil
	}

	eventID := event.ID
	activity := &model.Activity{
		ID:        id.New(),
		TaskID:    *event.TaskID,
		UserID:    event.ActorID,
		EventID:   &eventID,
		Type:      activityType,
		Content:   content,
		CreatedAt: event.CreatedAt,
	}
	created, err := s.stores.Activities().CreateForEvent(ctx, activity)
	if errors.Is(err, store.ErrNotFound) || store.IsForeignKeyViolation(err) {
		slog.DebugContext(ctx, "task gone before activity was recorded", "event_id", event.ID, "task_id", *event.TaskID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("recording activity: %w", err)
	}
	if !created {
		slog.DebugContext(ctx, "activity already recorded", "event_id", event.ID)
	}
	return created, nil
}

func (s *activityService) userName(ctx context.Context, v any) string {
	n, ok := v.(json.Number)
	if !ok {
		return formatValue(v)
	}
	userID, err := n.Int64()
	if err != nil {
		return n.String()
	}
	user, err := s.stores.Users().GetByID(ctx, userID)
	if err != nil {
		return n.String()
	}
	return user.Name
}

// describeEvent maps a task event to the activity type and text it records.
// An empty type means the event is not recorded.
func describeEvent(event model.Event, userName func(v any) string) (model.ActivityType, string, error) {
	switch event.Type {
	case model.EventTaskCreated:
		var p model.TaskPayload
		if err := event.DecodePayload(&p); err != nil {
			return "", "", fmt.Errorf("decoding payload: %w", err)
		}
		if p.Source == SourceIntegration {
			return model.ActivityTypeIntegration, fmt.Sprintf("imported the task %q from an integration", p.Title), nil
		}
		return model.ActivityTypeCreate, fmt.Sprintf("created the task %q", p.Title), nil
	case model.EventTimeEntryCreated:
		var p model.TimeEntryPayload
		if err := event.DecodePayload(&p); err != nil {
			return "", "", fmt.Errorf("decoding payload: %w", err)
		}
		if p.Running {
			return model.ActivityTypeTimeEntry, "started a timer", nil
		}
		return model.ActivityTypeTimeEntry, fmt.Sprintf("logged %s", formatDuration(p.DurationSeconds)), nil
	}

	activityType, ok := changeActivityTypes[event.Type]
	if !ok {
		return "", "", nil
	}
	var p model.ChangePayload
	if err := event.DecodePayload(&p); err != nil {
		return "", "", fmt.Errorf("decoding payload: %w", err)
	}

	var content string
	switch event.Type {
	case model.EventTaskStatusChanged:
		content = fmt.Sprintf("changed the status from %s to %s", formatValue(p.Old), formatValue(p.New))
	case model.EventTaskPriorityChanged:
		content = fmt.Sprintf("changed the priority from %s to %s", formatValue(p.Old), formatValue(p.New))
	case model.EventTaskAssigneeChanged:
		if p.New == nil {
			content = "unassigned the task"
		} else {
			content = "assigned the task to " + userName(p.New)
		}
	case model.EventTaskDueDateChanged:
		if p.New == nil {
			content = "removed the due date"
		} else {
			content = "changed the due date to " + formatDate(p.New)
		}
	case model.EventTaskTitleChanged:
		content = fmt.Sprintf("changed the title from %q to %q", formatValue(p.Old), formatValue(p.New))
	case model.EventTaskDescriptionChanged:
		content = "updated the description"
	}
	if p.Source == SourceIntegration {
		content += " (via integration)"
	}
	return activityType, content, nil
}

var changeActivityTypes = map[model.EventType]model.ActivityType{
	model.EventTaskStatusChanged:      model.ActivityTypeStatusChanged,
	model.EventTaskPriorityChanged:    model.ActivityTypePriorityChanged,
	model.EventTaskAssigneeChanged:    model.ActivityTypeAssigneeChanged,
	model.EventTaskDueDateChanged:     model.ActivityTypeDueDateChanged,
	model.EventTaskTitleChanged:       model.ActivityTypeTitleChanged,
	model.EventTaskDescriptionChanged: model.ActivityTypeDescriptionChanged,
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "none"
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatDate(v any) string {
	if s, ok := v.(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return formatValue(v)
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int64(d.Hours())
	m := int64(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
