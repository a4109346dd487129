package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type CreateProjectParams struct {
	Slug        *string
	Icon        *string
	Description *string
	Name        string
	WorkspaceID int64
	UserID      int64
}

type UpdateProjectParams struct {
	Name        *string
	Slug        *string
	Icon        *string
	Description *string
	IsPublic    *bool
}

type UpdateColumnParams struct {
	Name    *string
	IsFinal *bool
}

type ProjectService interface {
	Create(ctx context.Context, params CreateProjectParams) (*model.Project, error)
	List(ctx context.Context, workspaceID, userID int64) ([]model.ProjectSummary, error)
	Get(ctx context.Context, projectID, userID int64) (*model.Project, error)
	GetPublic(ctx context.Context, projectID int64) (*model.Board, error)
	Update(ctx context.Context, projectID, userID int64, params UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, projectID, userID int64) error

	ListColumns(ctx context.Context, projectID, userID int64) ([]model.Column, error)
	CreateColumn(ctx context.Context, projectID, userID int64, name string, isFinal bool) (*model.Column, error)
	UpdateColumn(ctx context.Context, columnID, userID int64, params UpdateColumnParams) (*model.Column, error)
	DeleteColumn(ctx context.Context, columnID, userID int64) error
	ReorderColumns(ctx context.Context, projectID, userID int64, orderedIDs []int64) ([]model.Column, error)
}

type projectService struct {
	stores   StoreProvider
	txRunner TxRunner
	events   eventEmitter
	access   access
}

func NewProjectService(stores StoreProvider, txRunner TxRunner, publisher EventPublisher) ProjectService {
	return &projectService{
		stores:   stores,
		txRunner: txRunner,
		events:   newEventEmitter(publisher),
		access:   access{stores: stores},
	}
}

func (s *projectService) Create(ctx context.Context, params CreateProjectParams) (*model.Project, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if _, err := s.access.member(ctx, params.WorkspaceID, params.UserID); err != nil {
		return nil, err
	}

	input := name
	if params.Slug != nil && strings.TrimSpace(*params.Slug) != "" {
		input = *params.Slug
	}

	var project *model.Project
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slug, err := ensureSlug(ctx, input, "project", func(ctx context.Context, slug string) error {
			_, err := stores.Projects().GetBySlug(ctx, params.WorkspaceID, slug)
			return err
		})
		if err != nil {
			return err
		}

		project = &model.Project{
			ID:          id.New(),
			WorkspaceID: params.WorkspaceID,
			Name:        name,
			Slug:        slug,
			Icon:        params.Icon,
			Description: params.Description,
		}
		if err := stores.Projects().Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		for i, def := range model.DefaultColumns {
			column := &model.Column{
				ID:        id.New(),
				ProjectID: project.ID,
				Name:      def.Name,
				Slug:      def.Slug,
				Position:  int32(i),
				IsFinal:   def.IsFinal,
			}
			if err := stores.Columns().Create(ctx, column); err != nil {
				return fmt.Errorf("creating column %s: %w", def.Slug, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, model.Event{
		Type:        model.EventProjectCreated,
		WorkspaceID: project.WorkspaceID,
		ProjectID:   &project.ID,
		ActorID:     &params.UserID,
	}, model.ProjectPayload{Name: project.Name, Slug: project.Slug})

	slog.InfoContext(ctx, "project created",
		"project_id", project.ID,
		"workspace_id", project.WorkspaceID,
		"slug", project.Slug,
	)
	return project, nil
}

func (s *projectService) List(ctx context.Context, workspaceID, userID int64) ([]model.ProjectSummary, error) {
	if _, _, err := s.access.workspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	projects, err := s.stores.Projects().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	stats, err := s.stores.Projects().StatsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}

	out := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, model.ProjectSummary{Project: p, Stats: stats[p.ID]})
	}
	return out, nil
}

func (s *projectService) Get(ctx context.Context, projectID, userID int64) (*model.Project, error) {
	project, _, err := s.access.project(ctx, projectID, userID)
	return project, err
}

// GetPublic returns the board of a public project to anonymous callers.
// Private projects are reported as missing.
func (s *projectService) GetPublic(ctx context.Context, projectID int64) (*model.Board, error) {
	project, err := s.stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if !project.IsPublic {
		return nil, ErrNotFound
	}
	return loadBoard(ctx, s.stores, project, model.TaskFilter{})
}

func (s *projectService) Update(ctx context.Context, projectID, userID int64, params UpdateProjectParams) (*model.Project, error) {
	project, _, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		project.Name = name
	}
	if params.Slug != nil && *params.Slug != project.Slug {
		slug, err := ensureSlug(ctx, *params.Slug, "project", func(ctx context.Context, slug string) error {
			_, err := s.stores.Projects().GetBySlug(ctx, project.WorkspaceID, slug)
			return err
		})
		if err != nil {
			return nil, err
		}
		project.Slug = slug
	}
	if params.Icon != nil {
		project.Icon = params.Icon
	}
	if params.Description != nil {
		project.Description = params.Description
	}
	if params.IsPublic != nil {
		project.IsPublic = *params.IsPublic
	}

	if err := s.stores.Projects().Update(ctx, project); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug already in use", ErrConflict)
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.events.emit(ctx, model.Event{
		Type:        model.EventProjectUpdated,
		WorkspaceID: project.WorkspaceID,
		ProjectID:   &project.ID,
		ActorID:     &userID,
	}, model.ProjectPayload{Name: project.Name, Slug: project.Slug})
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, projectID, userID int64) error {
	project, member, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return ErrForbidden
	}

	if err := s.stores.Projects().Delete(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.events.emit(ctx, model.Event{
		Type:        model.EventProjectDeleted,
		WorkspaceID: project.WorkspaceID,
		ProjectID:   &project.ID,
		ActorID:     &userID,
	}, model.ProjectPayload{Name: project.Name, Slug: project.Slug})

	slog.InfoContext(ctx, "project deleted", "project_id", projectID, "user_id", userID)
	return nil
}

func (s *projectService) ListColumns(ctx context.Context, projectID, userID int64) ([]model.Column, error) {
	if _, _, err := s.access.project(ctx, projectID, userID); err != nil {
		return nil, err
	}
	columns, err := s.stores.Columns().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	return columns, nil
}

func (s *projectService) CreateColumn(ctx context.Context, projectID, userID int64, name string, isFinal bool) (*model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if _, _, err := s.access.project(ctx, projectID, userID); err != nil {
		return nil, err
	}

	columns, err := s.stores.Columns().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}

	slug, err := ensureSlug(ctx, name, "column", func(_ context.Context, slug string) error {
		for _, c := range columns {
			if c.Slug == slug {
				return nil
			}
		}
		return store.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	column := &model.Column{
		ID:        id.New(),
		ProjectID: projectID,
		Name:      name,
		Slug:      slug,
		Position:  int32(len(columns)),
		IsFinal:   isFinal,
	}
	if err := s.stores.Columns().Create(ctx, column); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: column already exists", ErrConflict)
		}
		return nil, fmt.Errorf("creating column: %w", err)
	}
	return column, nil
}

// UpdateColumn renames a column or toggles is_final. The slug is kept since
// task statuses reference it.
func (s *projectService) UpdateColumn(ctx context.Context, columnID, userID int64, params UpdateColumnParams) (*model.Column, error) {
	column, err := s.column(ctx, columnID, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		column.Name = name
	}
	if params.IsFinal != nil {
		column.IsFinal = *params.IsFinal
	}

	if err := s.stores.Columns().Update(ctx, column); err != nil {
		return nil, fmt.Errorf("updating column: %w", err)
	}
	return column, nil
}

func (s *projectService) DeleteColumn(ctx context.Context, columnID, userID int64) error {
	column, err := s.column(ctx, columnID, userID)
	if err != nil {
		return err
	}

	count, err := s.stores.Columns().CountTasks(ctx, column.ProjectID, column.Slug)
	if err != nil {
		return fmt.Errorf("counting tasks: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: column still has %d tasks", ErrConflict, count)
	}

	return s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Columns().Delete(ctx, column.ID); err != nil {
			return fmt.Errorf("deleting column: %w", err)
		}
		remaining, err := stores.Columns().ListByProject(ctx, column.ProjectID)
		if err != nil {
			return fmt.Errorf("listing columns: %w", err)
		}
		for i, c := range remaining {
			if c.Position == int32(i) {
				continue
			}
			if err := stores.Columns().UpdatePosition(ctx, c.ID, int32(i)); err != nil {
				return fmt.Errorf("repositioning column: %w", err)
			}
		}
		return nil
	})
}

func (s *projectService) ReorderColumns(ctx context.Context, projectID, userID int64, orderedIDs []int64) ([]model.Column, error) {
	if _, _, err := s.access.project(ctx, projectID, userID); err != nil {
		return nil, err
	}

	var out []model.Column
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		columns, err := stores.Columns().ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("listing columns: %w", err)
		}
		if err := validateReorder(columns, orderedIDs); err != nil {
			return err
		}

		byID := make(map[int64]model.Column, len(columns))
		for _, c := range columns {
			byID[c.ID] = c
		}

		out = make([]model.Column, 0, len(orderedIDs))
		for i, columnID := range orderedIDs {
			c := byID[columnID]
			if c.Position != int32(i) {
				if err := stores.Columns().UpdatePosition(ctx, c.ID, int32(i)); err != nil {
					return fmt.Errorf("repositioning column: %w", err)
				}
				c.Position = int32(i)
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *projectService) column(ctx context.Context, columnID, userID int64) (*model.Column, error) {
	column, err := s.stores.Columns().GetByID(ctx, columnID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting column: %w", err)
	}
	if _, _, err := s.access.project(ctx, column.ProjectID, userID); err != nil {
		return nil, err
	}
	return column, nil
}

// loadBoard reads columns, tasks and task labels of a project and builds its board.
func loadBoard(ctx context.Context, stores StoreProvider, project *model.Project, filter model.TaskFilter) (*model.Board, error) {
	columns, err := stores.Columns().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	tasks, err := stores.Tasks().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	labels, err := stores.Labels().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing task labels: %w", err)
	}
	for i := range tasks {
		tasks[i].Labels = labels[tasks[i].ID]
	}
	return buildBoard(project, columns, tasks, filter), nil
}
