package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type taskStore struct {
	queries *sqlc.Queries
}

func newTaskStore(queries *sqlc.Queries) TaskStore {
	return &taskStore{queries: queries}
}

func (s *taskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	row, err := s.queries.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTaskModel(row), nil
}

func (s *taskStore) Create(ctx context.Context, task *model.Task) error {
	row, err := s.queries.CreateTask(ctx, sqlc.CreateTaskParams{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Number:      task.Number,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    string(task.Priority),
		AssigneeID:  task.AssigneeID,
		DueDate:     nullableTimestamptz(task.DueDate),
		Position:    task.Position,
		CreatedBy:   task.CreatedBy,
	})
	if err != nil {
		return err
	}
	*task = *toTaskModel(row)
	return nil
}

func (s *taskStore) Update(ctx context.Context, task *model.Task) error {
	labels := task.Labels
	row, err := s.queries.UpdateTask(ctx, sqlc.UpdateTaskParams{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    string(task.Priority),
		AssigneeID:  task.AssigneeID,
		DueDate:     nullableTimestamptz(task.DueDate),
		Position:    task.Position,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*task = *toTaskModel(row)
	task.Labels = labels
	return nil
}

func (s *taskStore) UpdatePosition(ctx context.Context, id int64, status string, position int32) error {
	return s.queries.UpdateTaskPosition(ctx, sqlc.UpdateTaskPositionParams{
		ID:       id,
		Status:   status,
		Position: position,
	})
}

func (s *taskStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteTask(ctx, id)
}

func (s *taskStore) ListByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	rows, err := s.queries.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Task, len(rows))
	for i, row := range rows {
		result[i] = *toTaskModel(row)
	}
	return result, nil
}

func (s *taskStore) MaxPosition(ctx context.Context, projectID int64, status string) (int32, error) {
	return s.queries.MaxTaskPosition(ctx, sqlc.MaxTaskPositionParams{
		ProjectID: projectID,
		Status:    status,
	})
}

func (s *taskStore) Search(ctx context.Context, workspaceID int64, query string, limit int32) ([]model.SearchHit, error) {
	rows, err := s.queries.SearchTasks(ctx, sqlc.SearchTasksParams{
		WorkspaceID: workspaceID,
		Pattern:     "%" + escapeLike(query) + "%",
		RowLimit:    limit,
	})
	if err != nil {
		return nil, err
	}
	hits := make([]model.SearchHit, len(rows))
	for i, row := range rows {
		hits[i] = model.SearchHit{
			Kind:        model.SearchKindTask,
			ID:          row.ID,
			ProjectID:   row.ProjectID,
			Number:      row.Number,
			Title:       row.Title,
			Status:      row.Status,
			Priority:    row.Priority,
			ProjectSlug: row.ProjectSlug,
		}
	}
	return hits, nil
}

func (s *taskStore) ListDocuments(ctx context.Context, afterID int64, limit int32) ([]model.TaskDocument, error) {
	rows, err := s.queries.ListTaskDocuments(ctx, sqlc.ListTaskDocumentsParams{
		AfterID:  afterID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	docs := make([]model.TaskDocument, len(rows))
	for i, row := range rows {
		docs[i] = model.TaskDocument{
			ID:          row.ID,
			ProjectID:   row.ProjectID,
			WorkspaceID: row.WorkspaceID,
			Number:      row.Number,
			Title:       row.Title,
			Description: row.Description,
			Status:      row.Status,
			Priority:    row.Priority,
			ProjectSlug: row.ProjectSlug,
			UpdatedAt:   row.UpdatedAt.Time,
		}
	}
	return docs, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toTaskModel(row sqlc.Task) *model.Task {
	return &model.Task{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		Number:      row.Number,
		Title:       row.Title,
		Description: row.Description,
		Status:      row.Status,
		Priority:    model.Priority(row.Priority),
		AssigneeID:  row.AssigneeID,
		DueDate:     timePtr(row.DueDate),
		Position:    row.Position,
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
