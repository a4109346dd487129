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

type CreateWorkspaceParams struct {
	Description *string
	Name        string
	OwnerID     int64
}

type UpdateWorkspaceParams struct {
	Name        *string
	Description *string
}

type WorkspaceService interface {
	Create(ctx context.Context, params CreateWorkspaceParams) (*model.Workspace, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error)
	Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, error)
	Update(ctx context.Context, workspaceID, userID int64, params UpdateWorkspaceParams) (*model.Workspace, error)
	Delete(ctx context.Context, workspaceID, userID int64) error
	ListMembers(ctx context.Context, workspaceID, userID int64) ([]model.Member, error)
	UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID int64, role model.MemberRole) (*model.Member, error)
	RemoveMember(ctx context.Context, workspaceID, actorID, memberID int64) error
}

type workspaceService struct {
	stores   StoreProvider
	txRunner TxRunner
	access   access
}

func NewWorkspaceService(stores StoreProvider, txRunner TxRunner) WorkspaceService {
	return &workspaceService{
		stores:   stores,
		txRunner: txRunner,
		access:   access{stores: stores},
	}
}

func (s *workspaceService) Create(ctx context.Context, params CreateWorkspaceParams) (*model.Workspace, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, invalid("name is required")
	}

	var ws *model.Workspace
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		slug, err := ensureSlug(ctx, name, "workspace", func(ctx context.Context, slug string) error {
			_, err := stores.Workspaces().GetBySlug(ctx, slug)
			return err
		})
		if err != nil {
			return err
		}

		ws = &model.Workspace{
			ID:          id.New(),
			Name:        name,
			Slug:        slug,
			Description: params.Description,
			OwnerID:     params.OwnerID,
		}
		if err := stores.Workspaces().Create(ctx, ws); err != nil {
			return fmt.Errorf("creating workspace: %w", err)
		}

		if err := stores.Members().Add(ctx, &model.Member{
			WorkspaceID: ws.ID,
			UserID:      params.OwnerID,
			Role:        model.MemberRoleOwner,
		}); err != nil {
			return fmt.Errorf("adding owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "workspace created", "workspace_id", ws.ID, "slug", ws.Slug, "user_id", params.OwnerID)
	return ws, nil
}

func (s *workspaceService) ListForUser(ctx context.Context, userID int64) ([]model.Workspace, error) {
	workspaces, err := s.stores.Workspaces().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return workspaces, nil
}

func (s *workspaceService) Get(ctx context.Context, workspaceID, userID int64) (*model.Workspace, error) {
	ws, _, err := s.access.workspace(ctx, workspaceID, userID)
	return ws, err
}

func (s *workspaceService) Update(ctx context.Context, workspaceID, userID int64, params UpdateWorkspaceParams) (*model.Workspace, error) {
	ws, member, err := s.access.workspace(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, ErrForbidden
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		ws.Name = name
	}
	if params.Description != nil {
		ws.Description = params.Description
	}

	if err := s.stores.Workspaces().Update(ctx, ws); err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}
	return ws, nil
}

func (s *workspaceService) Delete(ctx context.Context, workspaceID, userID int64) error {
	_, member, err := s.access.workspace(ctx, workspaceID, userID)
	if err != nil {
		return err
	}
	if member.Role != model.MemberRoleOwner {
		return ErrForbidden
	}

	if err := s.stores.Workspaces().Delete(ctx, workspaceID); err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}

	slog.InfoContext(ctx, "workspace deleted", "workspace_id", workspaceID, "user_id", userID)
	return nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, userID int64) ([]model.Member, error) {
	if _, _, err := s.access.workspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	members, err := s.stores.Members().List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func (s *workspaceService) UpdateMemberRole(ctx context.Context, workspaceID, actorID, memberID int64, role model.MemberRole) (*model.Member, error) {
	if !role.IsValid() || role == model.MemberRoleOwner {
		return nil, invalid("role must be admin or member")
	}
	if _, err := s.access.manager(ctx, workspaceID, actorID); err != nil {
		return nil, err
	}

	target, err := s.stores.Members().Get(ctx, workspaceID, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}
	if target.Role == model.MemberRoleOwner {
		return nil, fmt.Errorf("%w: the workspace owner cannot be demoted", ErrForbidden)
	}

	updated, err := s.stores.Members().UpdateRole(ctx, workspaceID, memberID, role)
	if err != nil {
		return nil, fmt.Errorf("updating member role: %w", err)
	}

	slog.InfoContext(ctx, "member role updated",
		"workspace_id", workspaceID,
		"user_id", memberID,
		"role", role,
	)
	return updated, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, memberID int64) error {
	actor, err := s.access.member(ctx, workspaceID, actorID)
	if err != nil {
		return err
	}
	if actorID != memberID && !actor.Role.CanManage() {
		return ErrForbidden
	}

	target, err := s.stores.Members().Get(ctx, workspaceID, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("getting member: %w", err)
	}
	if target.Role == model.MemberRoleOwner {
		return fmt.Errorf("%w: the workspace owner cannot be removed", ErrForbidden)
	}

	if err := s.stores.Members().Remove(ctx, workspaceID, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("removing member: %w", err)
	}

	slog.InfoContext(ctx, "member removed", "workspace_id", workspaceID, "user_id", memberID, "actor_id", actorID)
	return nil
}
