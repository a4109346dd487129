package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) GetBySlug(ctx context.Context, workspaceID int64, slug string) (*model.Project, error) {
	row, err := s.queries.GetProjectBySlug(ctx, sqlc.GetProjectBySlugParams{
		WorkspaceID: workspaceID,
		Slug:        slug,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        project.Name,
		Slug:        project.Slug,
		Icon:        project.Icon,
		Description: project.Description,
		IsPublic:    project.IsPublic,
	})
	if err != nil {
		return err
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	row, err := s.queries.UpdateProject(ctx, sqlc.UpdateProjectParams{
		ID:          project.ID,
		Name:        project.Name,
		Slug:        project.Slug,
		Icon:        project.Icon,
		Description: project.Description,
		IsPublic:    project.IsPublic,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*project = *toProjectModel(row)
	return nil
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteProject(ctx, id)
}

func (s *projectStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Project, error) {
	rows, err := s.queries.ListProjectsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toProjectModels(rows), nil
}

func (s *projectStore) StatsByWorkspace(ctx context.Context, workspaceID int64) (map[int64]model.ProjectStats, error) {
	rows, err := s.queries.CountTasksByProject(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	stats := make(map[int64]model.ProjectStats, len(rows))
	for _, row := range rows {
		stats[row.ProjectID] = model.ProjectStats{Total: row.Total, Completed: row.Completed}
	}
	return stats, nil
}

func (s *projectStore) NextTaskNumber(ctx context.Context, projectID int64) (int32, error) {
	n, err := s.queries.NextTaskNumber(ctx, projectID)
	if err != nil {
		return 0, notFound(err)
	}
	return n, nil
}

func (s *projectStore) ListAfter(ctx context.Context, afterID int64, limit int32) ([]model.Project, error) {
	rows, err := s.queries.ListProjectsForIndex(ctx, sqlc.ListProjectsForIndexParams{
		AfterID:  afterID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	return toProjectModels(rows), nil
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:             row.ID,
		WorkspaceID:    row.WorkspaceID,
		Name:           row.Name,
		Slug:           row.Slug,
		Icon:           row.Icon,
		Description:    row.Description,
		IsPublic:       row.IsPublic,
		NextTaskNumber: row.NextTaskNumber,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func toProjectModels(rows []sqlc.Project) []model.Project {
	result := make([]model.Project, len(rows))
	for i, row := range rows {
		result[i] = *toProjectModel(row)
	}
	return result
}
