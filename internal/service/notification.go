package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const DefaultNotificationLimit = 50

type NotificationService interface {
	List(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	ClearAll(ctx context.Context, userID int64) (int64, error)
	// Notify creates the notifications an event calls for and returns how
	// many were newly created.
	Notify(ctx context.Context, event model.Event) (int, error)
}

type notificationService struct {
	stores StoreProvider
}

func NewNotificationService(stores StoreProvider) NotificationService {
	return &notificationService{stores: stores}
}

func (s *notificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = DefaultNotificationLimit
	}
	notifications, err := s.stores.Notifications().ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	n, err := s.stores.Notifications().CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if err := s.stores.Notifications().MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.stores.Notifications().MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return n, nil
}

func (s *notificationService) ClearAll(ctx context.Context, userID int64) (int64, error) {
	n, err := s.stores.Notifications().DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clearing notifications: %w", err)
	}
	return n, nil
}

func (s *notificationService) Notify(ctx context.Context, event model.Event) (int, error) {
	drafts, err := s.draft(ctx, event)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range drafts {
		n := &drafts[i]
		if event.ActorID != nil && n.UserID == *event.ActorID && event.Type != model.EventMemberAdded {
			continue
		}
		n.ID = id.New()
		n.EventID = &event.ID
		ok, err := s.stores.Notifications().Create(ctx, n)
		if err != nil {
			return created, fmt.Errorf("creating notification: %w", err)
		}
		if ok {
			created++
		}
	}

	if created > 0 {
		slog.InfoContext(ctx, "notifications created", "event_id", event.ID, "count", created)
	}
	return created, nil
}

// draft builds the unsaved notifications of an event. Actor filtering
// happens in Notify.
func (s *notificationService) draft(ctx context.Context, event model.Event) ([]model.Notification, error) {
	taskResource := "task"

	switch event.Type {
	case model.EventTaskAssigneeChanged:
		var p model.ChangePayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		assignee, ok := payloadID(p.New)
		if !ok {
			return nil, nil
		}
		content := p.Title
		return []model.Notification{{
			UserID:       assignee,
			Type:         model.NotificationTypeTaskAssigned,
			Title:        "You were assigned to a task",
			Content:      &content,
			ResourceType: &taskResource,
			ResourceID:   event.TaskID,
		}}, nil

	case model.EventTaskStatusChanged:
		var p model.ChangePayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		assignee, err := s.currentAssignee(ctx, event)
		if err != nil || assignee == nil {
			return nil, err
		}
		content := fmt.Sprintf("%s moved from %s to %s", p.Title, formatValue(p.Old), formatValue(p.New))
		return []model.Notification{{
			UserID:       *assignee,
			Type:         model.NotificationTypeTaskStatusChanged,
			Title:        "Task status changed",
			Content:      &content,
			ResourceType: &taskResource,
			ResourceID:   event.TaskID,
		}}, nil

	case model.EventCommentCreated:
		var p model.CommentPayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		assignee, err := s.currentAssignee(ctx, event)
		if err != nil || assignee == nil {
			return nil, err
		}
		content := p.Content
		return []model.Notification{{
			UserID:       *assignee,
			Type:         model.NotificationTypeTaskComment,
			Title:        "New comment on your task",
			Content:      &content,
			ResourceType: &taskResource,
			ResourceID:   event.TaskID,
		}}, nil

	case model.EventMemberAdded:
		var p model.MemberPayload
		if err := event.DecodePayload(&p); err != nil {
			return nil, fmt.Errorf("decoding payload: %w", err)
		}
		if p.UserID == 0 {
			return nil, nil
		}
		workspaceResource := "workspace"
		content := fmt.Sprintf("You joined %s as %s", p.WorkspaceName, p.Role)
		return []model.Notification{{
			UserID:       p.UserID,
			Type:         model.NotificationTypeWorkspaceJoined,
			Title:        "Welcome to " + p.WorkspaceName,
			Content:      &content,
			ResourceType: &workspaceResource,
			ResourceID:   &event.WorkspaceID,
		}}, nil
	}
	return nil, nil
}

func (s *notificationService) currentAssignee(ctx context.Context, event model.Event) (*int64, error) {
	if event.TaskID == nil {
		return nil, nil
	}
	task, err := s.stores.Tasks().GetByID(ctx, *event.TaskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return task.AssigneeID, nil
}

func payloadID(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		return n, err == nil
	case int64:
		return val, true
	}
	return 0, false
}
