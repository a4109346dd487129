package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type labelStore struct {
	queries *sqlc.Queries
}

func newLabelStore(queries *sqlc.Queries) LabelStore {
	return &labelStore{queries: queries}
}

func (s *labelStore) GetByID(ctx context.Context, id int64) (*model.Label, error) {
	row, err := s.queries.GetLabel(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toLabelModel(row), nil
}

func (s *labelStore) Create(ctx context.Context, label *model.Label) error {
	row, err := s.queries.CreateLabel(ctx, sqlc.CreateLabelParams{
		ID:          label.ID,
		WorkspaceID: label.WorkspaceID,
		Name:        label.Name,
		Color:       label.Color,
	})
	if err != nil {
		return err
	}
	*label = *toLabelModel(row)
	return nil
}

func (s *labelStore) Update(ctx context.Context, label *model.Label) error {
	row, err := s.queries.UpdateLabel(ctx, sqlc.UpdateLabelParams{
		ID:    label.ID,
		Name:  label.Name,
		Color: label.Color,
	})
	if err != nil {
		return notFound(err)
	}
	*label = *toLabelModel(row)
	return nil
}

func (s *labelStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteLabel(ctx, id)
}

func (s *labelStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Label, error) {
	rows, err := s.queries.ListLabelsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toLabelModels(rows), nil
}

func (s *labelStore) ListByTask(ctx context.Context, taskID int64) ([]model.Label, error) {
	rows, err := s.queries.ListLabelsByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return toLabelModels(rows), nil
}

func (s *labelStore) ListByProject(ctx context.Context, projectID int64) (map[int64][]model.Label, error) {
	rows, err := s.queries.ListTaskLabelsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	byTask := make(map[int64][]model.Label)
	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], model.Label{
			ID:          row.ID,
			WorkspaceID: row.WorkspaceID,
			Name:        row.Name,
			Color:       row.Color,
			CreatedAt:   row.CreatedAt.Time,
		})
	}
	return byTask, nil
}

func (s *labelStore) Attach(ctx context.Context, taskID, labelID int64) error {
	return s.queries.AttachLabel(ctx, sqlc.AttachLabelParams{TaskID: taskID, LabelID: labelID})
}

func (s *labelStore) Detach(ctx context.Context, taskID, labelID int64) error {
	return s.queries.DetachLabel(ctx, sqlc.DetachLabelParams{TaskID: taskID, LabelID: labelID})
}

func toLabelModel(row sqlc.Label) *model.Label {
	return &model.Label{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.Name,
		Color:       row.Color,
		CreatedAt:   row.CreatedAt.Time,
	}
}

func toLabelModels(rows []sqlc.Label) []model.Label {
	result := make([]model.Label, len(rows))
	for i, row := range rows {
		result[i] = *toLabelModel(row)
	}
	return result
}
