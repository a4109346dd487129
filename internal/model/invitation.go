package model

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
)

type Invitation struct {
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	AcceptedAt  *time.Time       `json:"accepted_at,omitempty"`
	InvitedBy   *int64           `json:"invited_by,omitempty"`
	Email       string           `json:"email"`
	Role        MemberRole       `json:"role"`
	Token       string           `json:"-"`
	Status      InvitationStatus `json:"status"`
	ID          int64            `json:"id"`
	WorkspaceID int64            `json:"workspace_id"`
}

func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending && !i.IsExpired()
}
