package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type columnStore struct {
	queries *sqlc.Queries
}

func newColumnStore(queries *sqlc.Queries) ColumnStore {
	return &columnStore{queries: queries}
}

func (s *columnStore) GetByID(ctx context.Context, id int64) (*model.Column, error) {
	row, err := s.queries.GetColumn(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toColumnModel(row), nil
}

func (s *columnStore) Create(ctx context.Context, column *model.Column) error {
	row, err := s.queries.CreateColumn(ctx, sqlc.CreateColumnParams{
		ID:        column.ID,
		ProjectID: column.ProjectID,
		Name:      column.Name,
		Slug:      column.Slug,
		Position:  column.Position,
		IsFinal:   column.IsFinal,
	})
	if err != nil {
		return err
	}
	*column = *toColumnModel(row)
	return nil
}

func (s *columnStore) Update(ctx context.Context, column *model.Column) error {
	row, err := s.queries.UpdateColumn(ctx, sqlc.UpdateColumnParams{
		ID:      column.ID,
		Name:    column.Name,
		IsFinal: column.IsFinal,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*column = *toColumnModel(row)
	return nil
}

func (s *columnStore) UpdatePosition(ctx context.Context, id int64, position int32) error {
	return s.queries.UpdateColumnPosition(ctx, sqlc.UpdateColumnPositionParams{
		ID:       id,
		Position: position,
	})
}

func (s *columnStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteColumn(ctx, id)
}

func (s *columnStore) ListByProject(ctx context.Context, projectID int64) ([]model.Column, error) {
	rows, err := s.queries.ListColumnsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Column, len(rows))
	for i, row := range rows {
		result[i] = *toColumnModel(row)
	}
	return result, nil
}

func (s *columnStore) CountTasks(ctx context.Context, projectID int64, status string) (int64, error) {
	return s.queries.CountTasksInColumn(ctx, sqlc.CountTasksInColumnParams{
		ProjectID: projectID,
		Status:    status,
	})
}

func toColumnModel(row sqlc.ProjectColumn) *model.Column {
	return &model.Column{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Name:      row.Name,
		Slug:      row.Slug,
		Position:  row.Position,
		IsFinal:   row.IsFinal,
		CreatedAt: row.CreatedAt.Time,
	}
}
