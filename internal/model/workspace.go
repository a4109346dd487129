package model

import "time"

type Workspace struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Description *string   `json:"description,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
}

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

// CanManage reports whether the role may administer the workspace.
func (r MemberRole) CanManage() bool {
	return r == MemberRoleOwner || r == MemberRoleAdmin
}

type Member struct {
	JoinedAt    time.Time  `json:"joined_at"`
	User        *User      `json:"user,omitempty"`
	Role        MemberRole `json:"role"`
	WorkspaceID int64      `json:"workspace_id"`
	UserID      int64      `json:"user_id"`
}
