package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiryDays  = 7
)

var (
	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation has expired")
	ErrInviteAlreadyUsed   = errors.New("invitation has already been used")
	ErrInviteRevoked       = errors.New("invitation has been revoked")
	ErrEmailMismatch       = errors.New("authenticated email does not match invitation")
	ErrInvitePendingExists = errors.New("a pending invitation already exists for this email")
	ErrAlreadyMember       = errors.New("user is already a member of this workspace")
)

type InviteParams struct {
	Email       string
	Role        model.MemberRole
	WorkspaceID int64
	InvitedBy   int64
}

type InvitationService interface {
	Invite(ctx context.Context, params InviteParams) (*model.Invitation, string, error)
	List(ctx context.Context, workspaceID, userID int64) ([]model.Invitation, error)
	Revoke(ctx context.Context, workspaceID, invitationID, userID int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error)
	Accept(ctx context.Context, token string, user *model.User) (*model.Member, error)
}

type invitationService struct {
	stores    StoreProvider
	txRunner  TxRunner
	events    eventEmitter
	access    access
	clientURL string
}

func NewInvitationService(stores StoreProvider, txRunner TxRunner, publisher EventPublisher, clientURL string) InvitationService {
	return &invitationService{
		stores:    stores,
		txRunner:  txRunner,
		events:    newEventEmitter(publisher),
		access:    access{stores: stores},
		clientURL: clientURL,
	}
}

func (s *invitationService) Invite(ctx context.Context, params InviteParams) (*model.Invitation, string, error) {
	email, err := normalizeEmail(params.Email)
	if err != nil {
		return nil, "", err
	}
	role := params.Role
	if role == "" {
		role = model.MemberRoleMember
	}
	if !role.IsValid() || role == model.MemberRoleOwner {
		return nil, "", invalid("role must be admin or member")
	}

	if _, err := s.access.manager(ctx, params.WorkspaceID, params.InvitedBy); err != nil {
		return nil, "", err
	}

	if user, err := s.stores.Users().GetByEmail(ctx, email); err == nil {
		if _, err := s.stores.Members().Get(ctx, params.WorkspaceID, user.ID); err == nil {
			return nil, "", ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, "", fmt.Errorf("checking membership: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("getting user: %w", err)
	}

	existing, err := s.stores.Invitations().GetPendingByEmail(ctx, params.WorkspaceID, email)
	if err == nil && existing.IsPending() {
		return nil, "", ErrInvitePendingExists
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("checking pending invitation: %w", err)
	}
	if err == nil {
		// an expired pending row blocks the partial unique index
		if _, err := s.stores.Invitations().UpdateStatus(ctx, existing.ID, model.InvitationStatusRevoked, nil); err != nil {
			return nil, "", fmt.Errorf("retiring expired invitation: %w", err)
		}
	}

	token, err := generateHexToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	invitedBy := params.InvitedBy
	inv := &model.Invitation{
		ID:          id.New(),
		WorkspaceID: params.WorkspaceID,
		Email:       email,
		Role:        role,
		Token:       token,
		Status:      model.InvitationStatusPending,
		InvitedBy:   &invitedBy,
		ExpiresAt:   time.Now().Add(InviteExpiryDays * 24 * time.Hour),
	}

	if err := s.stores.Invitations().Create(ctx, inv); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, "", ErrInvitePendingExists
		}
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/invitation/%s", s.clientURL, token)

	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"workspace_id", inv.WorkspaceID,
		"email", email,
		"expires_at", inv.ExpiresAt,
	)

	return inv, inviteURL, nil
}

func (s *invitationService) List(ctx context.Context, workspaceID, userID int64) ([]model.Invitation, error) {
	if _, err := s.access.manager(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	invitations, err := s.stores.Invitations().ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}
	return invitations, nil
}

func (s *invitationService) Revoke(ctx context.Context, workspaceID, invitationID, userID int64) (*model.Invitation, error) {
	if _, err := s.access.manager(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	inv, err := s.stores.Invitations().GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	if inv.WorkspaceID != workspaceID {
		return nil, ErrInviteNotFound
	}
	if inv.Status == model.InvitationStatusAccepted {
		return nil, ErrInviteAlreadyUsed
	}

	revoked, err := s.stores.Invitations().UpdateStatus(ctx, inv.ID, model.InvitationStatusRevoked, nil)
	if err != nil {
		return nil, fmt.Errorf("revoking invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation revoked",
		"invitation_id", inv.ID,
		"email", inv.Email,
	)
	return revoked, nil
}

// GetByToken resolves a usable invitation. Used, revoked and expired
// invitations map to their own errors.
func (s *invitationService) GetByToken(ctx context.Context, token string) (*model.Invitation, *model.Workspace, error) {
	inv, err := s.stores.Invitations().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInviteNotFound
		}
		return nil, nil, fmt.Errorf("getting invitation: %w", err)
	}

	switch inv.Status {
	case model.InvitationStatusAccepted:
		return nil, nil, ErrInviteAlreadyUsed
	case model.InvitationStatusRevoked:
		return nil, nil, ErrInviteRevoked
	}
	if inv.IsExpired() {
		return nil, nil, ErrInviteExpired
	}

	ws, err := s.stores.Workspaces().GetByID(ctx, inv.WorkspaceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInviteNotFound
		}
		return nil, nil, fmt.Errorf("getting workspace: %w", err)
	}
	return inv, ws, nil
}

func (s *invitationService) Accept(ctx context.Context, token string, user *model.User) (*model.Member, error) {
	inv, ws, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(inv.Email, user.Email) {
		slog.WarnContext(ctx, "email mismatch on invitation acceptance",
			"invitation_email", inv.Email,
			"user_email", user.Email,
			"invitation_id", inv.ID,
		)
		return nil, ErrEmailMismatch
	}

	member := &model.Member{
		WorkspaceID: inv.WorkspaceID,
		UserID:      user.ID,
		Role:        inv.Role,
	}
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Members().Get(ctx, inv.WorkspaceID, user.ID); err == nil {
			return ErrAlreadyMember
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking membership: %w", err)
		}

		if err := stores.Members().Add(ctx, member); err != nil {
			return fmt.Errorf("adding member: %w", err)
		}

		now := time.Now()
		if _, err := stores.Invitations().UpdateStatus(ctx, inv.ID, model.InvitationStatusAccepted, &now); err != nil {
			return fmt.Errorf("accepting invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	member.User = user

	s.events.emit(ctx, model.Event{
		Type:        model.EventMemberAdded,
		WorkspaceID: inv.WorkspaceID,
		ActorID:     &user.ID,
	}, model.MemberPayload{
		WorkspaceName: ws.Name,
		Role:          inv.Role,
		UserID:        user.ID,
	})

	slog.InfoContext(ctx, "invitation accepted",
		"invitation_id", inv.ID,
		"workspace_id", inv.WorkspaceID,
		"user_id", user.ID,
	)
	return member, nil
}
