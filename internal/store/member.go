package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type memberStore struct {
	queries *sqlc.Queries
}

func newMemberStore(queries *sqlc.Queries) MemberStore {
	return &memberStore{queries: queries}
}

func (s *memberStore) Add(ctx context.Context, member *model.Member) error {
	row, err := s.queries.AddWorkspaceMember(ctx, sqlc.AddWorkspaceMemberParams{
		WorkspaceID: member.WorkspaceID,
		UserID:      member.UserID,
		Role:        string(member.Role),
	})
	if err != nil {
		return err
	}
	*member = *toMemberModel(row)
	return nil
}

func (s *memberStore) Get(ctx context.Context, workspaceID, userID int64) (*model.Member, error) {
	row, err := s.queries.GetWorkspaceMember(ctx, sqlc.GetWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMemberModel(row), nil
}

func (s *memberStore) List(ctx context.Context, workspaceID int64) ([]model.Member, error) {
	rows, err := s.queries.ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Member, len(rows))
	for i, row := range rows {
		result[i] = model.Member{
			WorkspaceID: row.WorkspaceID,
			UserID:      row.UserID,
			Role:        model.MemberRole(row.Role),
			JoinedAt:    row.JoinedAt.Time,
			User: &model.User{
				ID:        row.UserID,
				Name:      row.Name,
				Email:     row.Email,
				AvatarURL: row.AvatarUrl,
			},
		}
	}
	return result, nil
}

func (s *memberStore) UpdateRole(ctx context.Context, workspaceID, userID int64, role model.MemberRole) (*model.Member, error) {
	row, err := s.queries.UpdateWorkspaceMemberRole(ctx, sqlc.UpdateWorkspaceMemberRoleParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        string(role),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toMemberModel(row), nil
}

func (s *memberStore) Remove(ctx context.Context, workspaceID, userID int64) error {
	n, err := s.queries.RemoveWorkspaceMember(ctx, sqlc.RemoveWorkspaceMemberParams{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toMemberModel(row sqlc.WorkspaceMember) *model.Member {
	return &model.Member{
		WorkspaceID: row.WorkspaceID,
		UserID:      row.UserID,
		Role:        model.MemberRole(row.Role),
		JoinedAt:    row.JoinedAt.Time,
	}
}
