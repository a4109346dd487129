package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type activityStore struct {
	queries *sqlc.Queries
}

func newActivityStore(queries *sqlc.Queries) ActivityStore {
	return &activityStore{queries: queries}
}

func (s *activityStore) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	row, err := s.queries.GetActivity(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toActivityModel(row), nil
}

func (s *activityStore) Create(ctx context.Context, activity *model.Activity) error {
	row, err := s.queries.CreateActivity(ctx, sqlc.CreateActivityParams{
		ID:      activity.ID,
		TaskID:  activity.TaskID,
		UserID:  activity.UserID,
		Type:    string(activity.Type),
		Content: activity.Content,
		EventID: activity.EventID,
	})
	if err != nil {
		return err
	}
	*activity = *toActivityModel(row)
	return nil
}

func (s *activityStore) CreateForEvent(ctx context.Context, activity *model.Activity) (bool, error) {
	n, err := s.queries.CreateActivityForEvent(ctx, sqlc.CreateActivityForEventParams{
		ID:        activity.ID,
		TaskID:    activity.TaskID,
		UserID:    activity.UserID,
		Type:      string(activity.Type),
		Content:   activity.Content,
		EventID:   activity.EventID,
		CreatedAt: eventTime(activity.CreatedAt),
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *activityStore) UpdateContent(ctx context.Context, id int64, content string) (*model.Activity, error) {
	row, err := s.queries.UpdateActivityContent(ctx, sqlc.UpdateActivityContentParams{
		ID:      id,
		Content: content,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toActivityModel(row), nil
}

func (s *activityStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteActivity(ctx, id)
}

func (s *activityStore) ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error) {
	rows, err := s.queries.ListActivitiesByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Activity, len(rows))
	for i, row := range rows {
		result[i] = *toActivityModel(row)
	}
	return result, nil
}

func toActivityModel(row sqlc.Activity) *model.Activity {
	return &model.Activity{
		ID:        row.ID,
		TaskID:    row.TaskID,
		UserID:    row.UserID,
		Type:      model.ActivityType(row.Type),
		Content:   row.Content,
		EventID:   row.EventID,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
