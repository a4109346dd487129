package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type CreateWorkspaceRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type WorkspaceResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id,string"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToWorkspaceResponse(ws *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Slug:        ws.Slug,
		Description: ws.Description,
		OwnerID:     ws.OwnerID,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

type UpdateMemberRoleRequest struct {
	Role model.MemberRole `json:"role" binding:"required,oneof=owner admin member"`
}

type MemberResponse struct {
	UserID      int64         `json:"user_id,string"`
	WorkspaceID int64         `json:"workspace_id,string"`
	Role        string        `json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`
	User        *UserResponse `json:"user,omitempty"`
}

func ToMemberResponse(m *model.Member) MemberResponse {
	resp := MemberResponse{
		UserID:      m.UserID,
		WorkspaceID: m.WorkspaceID,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
	if m.User != nil {
		user := ToUserResponse(m.User)
		resp.User = &user
	}
	return resp
}

type CreateInvitationRequest struct {
	Email string           `json:"email" binding:"required,email"`
	Role  model.MemberRole `json:"role" binding:"omitempty,oneof=admin member"`
}

type InvitationResponse struct {
	ID          int64      `json:"id,string"`
	WorkspaceID int64      `json:"workspace_id,string"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	InviteURL   string     `json:"invite_url,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}

func ToInvitationResponse(inv *model.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		Email:       inv.Email,
		Role:        string(inv.Role),
		Status:      string(inv.Status),
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
		AcceptedAt:  inv.AcceptedAt,
	}
}

// InvitationDetailsResponse is what an invitee sees before accepting.
type InvitationDetailsResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	Workspace  struct {
		ID   int64  `json:"id,string"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"workspace"`
}

func ToInvitationDetailsResponse(inv *model.Invitation, ws *model.Workspace) InvitationDetailsResponse {
	resp := InvitationDetailsResponse{Invitation: ToInvitationResponse(inv)}
	resp.Workspace.ID = ws.ID
	resp.Workspace.Name = ws.Name
	resp.Workspace.Slug = ws.Slug
	return resp
}
