package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

var labelColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type UpdateLabelParams struct {
	Name  *string
	Color *string
}

type LabelService interface {
	ListForWorkspace(ctx context.Context, workspaceID, userID int64) ([]model.Label, error)
	ListForTask(ctx context.Context, taskID, userID int64) ([]model.Label, error)
	Create(ctx context.Context, workspaceID, userID int64, name, color string) (*model.Label, error)
	Update(ctx context.Context, labelID, userID int64, params UpdateLabelParams) (*model.Label, error)
	Delete(ctx context.Context, labelID, userID int64) error
	Attach(ctx context.Context, labelID, taskID, userID int64) error
	Detach(ctx context.Context, labelID, taskID, userID int64) error
}

type labelService struct {
	stores StoreProvider
	access access
}

func NewLabelService(stores StoreProvider) LabelService {
	return &labelService{stores: stores, access: access{stores: stores}}
}

func (s *labelService) ListForWorkspace(ctx context.Context, workspaceID, userID int64) ([]model.Label, error) {
	if _, _, err := s.access.workspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	labels, err := s.stores.Labels().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	return labels, nil
}

func (s *labelService) ListForTask(ctx context.Context, taskID, userID int64) ([]model.Label, error) {
	if _, _, err := s.access.task(ctx, taskID, userID); err != nil {
		return nil, err
	}
	labels, err := s.stores.Labels().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	return labels, nil
}

func (s *labelService) Create(ctx context.Context, workspaceID, userID int64, name, color string) (*model.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !labelColor.MatchString(color) {
		return nil, invalid("color must be #RRGGBB")
	}
	if _, _, err := s.access.workspace(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	label := &model.Label{
		ID:          id.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       strings.ToLower(color),
	}
	if err := s.stores.Labels().Create(ctx, label); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: label %q already exists", ErrConflict, name)
		}
		return nil, fmt.Errorf("creating label: %w", err)
	}
	return label, nil
}

func (s *labelService) Update(ctx context.Context, labelID, userID int64, params UpdateLabelParams) (*model.Label, error) {
	label, err := s.access.label(ctx, labelID, userID)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		label.Name = name
	}
	if params.Color != nil {
		if !labelColor.MatchString(*params.Color) {
			return nil, invalid("color must be #RRGGBB")
		}
		label.Color = strings.ToLower(*params.Color)
	}

	if err := s.stores.Labels().Update(ctx, label); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: label %q already exists", ErrConflict, label.Name)
		}
		return nil, fmt.Errorf("updating label: %w", err)
	}
	return label, nil
}

func (s *labelService) Delete(ctx context.Context, labelID, userID int64) error {
	if _, err := s.access.label(ctx, labelID, userID); err != nil {
		return err
	}
	if err := s.stores.Labels().Delete(ctx, labelID); err != nil {
		return fmt.Errorf("deleting label: %w", err)
	}
	return nil
}

func (s *labelService) Attach(ctx context.Context, labelID, taskID, userID int64) error {
	if err := s.sameWorkspace(ctx, labelID, taskID, userID); err != nil {
		return err
	}
	if err := s.stores.Labels().Attach(ctx, taskID, labelID); err != nil {
		return fmt.Errorf("attaching label: %w", err)
	}
	return nil
}

func (s *labelService) Detach(ctx context.Context, labelID, taskID, userID int64) error {
	if err := s.sameWorkspace(ctx, labelID, taskID, userID); err != nil {
		return err
	}
	if err := s.stores.Labels().Detach(ctx, taskID, labelID); err != nil {
		return fmt.Errorf("detaching label: %w", err)
	}
	return nil
}

func (s *labelService) sameWorkspace(ctx context.Context, labelID, taskID, userID int64) error {
	label, err := s.access.label(ctx, labelID, userID)
	if err != nil {
		return err
	}
	_, project, err := s.access.task(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if project.WorkspaceID != label.WorkspaceID {
		return invalid("label and task belong to different workspaces")
	}
	return nil
}
