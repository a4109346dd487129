package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

// access resolves resources together with the caller's membership of the
// owning workspace. Missing resources are ErrNotFound, non-members ErrForbidden.
type access struct {
	stores StoreProvider
}

func (a access) member(ctx context.Context, workspaceID, userID int64) (*model.Member, error) {
	m, err := a.stores.Members().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("getting membership: %w", err)
	}
	return m, nil
}

func (a access) manager(ctx context.Context, workspaceID, userID int64) (*model.Member, error) {
	m, err := a.member(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !m.Role.CanManage() {
		return nil, ErrForbidden
	}
	return m, nil
}

func (a access) workspace(ctx context.Context, workspaceID, userID int64) (*model.Workspace, *model.Member, error) {
	ws, err := a.stores.Workspaces().GetByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("getting workspace: %w", err)
	}
	m, err := a.member(ctx, ws.ID, userID)
	if err != nil {
		return nil, nil, err
	}
	return ws, m, nil
}

func (a access) project(ctx context.Context, projectID, userID int64) (*model.Project, *model.Member, error) {
	project, err := a.stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("getting project: %w", err)
	}
	m, err := a.member(ctx, project.WorkspaceID, userID)
	if err != nil {
		return nil, nil, err
	}
	return project, m, nil
}

func (a access) task(ctx context.Context, taskID, userID int64) (*model.Task, *model.Project, error) {
	task, err := a.stores.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("getting task: %w", err)
	}
	project, _, err := a.project(ctx, task.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func (a access) label(ctx context.Context, labelID, userID int64) (*model.Label, error) {
	label, err := a.stores.Labels().GetByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting label: %w", err)
	}
	if _, err := a.member(ctx, label.WorkspaceID, userID); err != nil {
		return nil, err
	}
	return label, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
