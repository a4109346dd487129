package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type timeEntryStore struct {
	queries *sqlc.Queries
}

func newTimeEntryStore(queries *sqlc.Queries) TimeEntryStore {
	return &timeEntryStore{queries: queries}
}

func (s *timeEntryStore) GetByID(ctx context.Context, id int64) (*model.TimeEntry, error) {
	row, err := s.queries.GetTimeEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTimeEntryModel(row), nil
}

func (s *timeEntryStore) Create(ctx context.Context, entry *model.TimeEntry) error {
	row, err := s.queries.CreateTimeEntry(ctx, sqlc.CreateTimeEntryParams{
		ID:              entry.ID,
		TaskID:          entry.TaskID,
		UserID:          entry.UserID,
		Description:     entry.Description,
		StartedAt:       timestamptz(entry.StartedAt),
		EndedAt:         nullableTimestamptz(entry.EndedAt),
		DurationSeconds: entry.DurationSeconds,
	})
	if err != nil {
		return err
	}
	*entry = *toTimeEntryModel(row)
	return nil
}

func (s *timeEntryStore) Update(ctx context.Context, entry *model.TimeEntry) error {
	row, err := s.queries.UpdateTimeEntry(ctx, sqlc.UpdateTimeEntryParams{
		ID:              entry.ID,
		Description:     entry.Description,
		StartedAt:       timestamptz(entry.StartedAt),
		EndedAt:         nullableTimestamptz(entry.EndedAt),
		DurationSeconds: entry.DurationSeconds,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*entry = *toTimeEntryModel(row)
	return nil
}

func (s *timeEntryStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteTimeEntry(ctx, id)
}

func (s *timeEntryStore) ListByTask(ctx context.Context, taskID int64) ([]model.TimeEntry, error) {
	rows, err := s.queries.ListTimeEntriesByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	result := make([]model.TimeEntry, len(rows))
	for i, row := range rows {
		result[i] = *toTimeEntryModel(row)
	}
	return result, nil
}

func toTimeEntryModel(row sqlc.TimeEntry) *model.TimeEntry {
	return &model.TimeEntry{
		ID:              row.ID,
		TaskID:          row.TaskID,
		UserID:          row.UserID,
		Description:     row.Description,
		StartedAt:       row.StartedAt.Time,
		EndedAt:         timePtr(row.EndedAt),
		DurationSeconds: row.DurationSeconds,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
