package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		Token:       inv.Token,
		Status:      string(inv.Status),
		InvitedBy:   inv.InvitedBy,
		ExpiresAt:   timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return err
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvitation(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetPendingByEmail(ctx context.Context, workspaceID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetPendingInvitationByEmail(ctx, sqlc.GetPendingInvitationByEmailParams{
		WorkspaceID: workspaceID,
		Email:       email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Invitation, error) {
	rows, err := s.queries.ListInvitationsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) UpdateStatus(ctx context.Context, id int64, status model.InvitationStatus, acceptedAt *time.Time) (*model.Invitation, error) {
	row, err := s.queries.UpdateInvitationStatus(ctx, sqlc.UpdateInvitationStatusParams{
		ID:         id,
		Status:     string(status),
		AcceptedAt: nullableTimestamptz(acceptedAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func toInvitationModel(row sqlc.Invitation) *model.Invitation {
	return &model.Invitation{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		Email:       row.Email,
		Role:        model.MemberRole(row.Role),
		Token:       row.Token,
		Status:      model.InvitationStatus(row.Status),
		InvitedBy:   row.InvitedBy,
		ExpiresAt:   row.ExpiresAt.Time,
		AcceptedAt:  timePtr(row.AcceptedAt),
		CreatedAt:   row.CreatedAt.Time,
	}
}

func toInvitationModels(rows []sqlc.Invitation) []model.Invitation {
	result := make([]model.Invitation, len(rows))
	for i, row := range rows {
		result[i] = *toInvitationModel(row)
	}
	return result
}
