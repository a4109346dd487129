package store

import (
	"context"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) (bool, error) {
	inserted, err := s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:           n.ID,
		UserID:       n.UserID,
		Type:         string(n.Type),
		Title:        n.Title,
		Content:      n.Content,
		ResourceType: n.ResourceType,
		ResourceID:   n.ResourceID,
		EventID:      n.EventID,
	})
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func (s *notificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	rows, err := s.queries.ListNotificationsByUser(ctx, sqlc.ListNotificationsByUserParams{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		RowLimit:   limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Notification, len(rows))
	for i, row := range rows {
		result[i] = model.Notification{
			ID:           row.ID,
			UserID:       row.UserID,
			Type:         model.NotificationType(row.Type),
			Title:        row.Title,
			Content:      row.Content,
			ResourceType: row.ResourceType,
			ResourceID:   row.ResourceID,
			IsRead:       row.IsRead,
			EventID:      row.EventID,
			CreatedAt:    row.CreatedAt.Time,
		}
	}
	return result, nil
}

func (s *notificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.queries.CountUnreadNotifications(ctx, userID)
}

func (s *notificationStore) MarkRead(ctx context.Context, id, userID int64) error {
	n, err := s.queries.MarkNotificationRead(ctx, sqlc.MarkNotificationReadParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.queries.MarkAllNotificationsRead(ctx, userID)
}

func (s *notificationStore) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return s.queries.DeleteNotificationsByUser(ctx, userID)
}
