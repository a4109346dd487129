package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

func ToSessionResponse(user *model.User, session *model.Session) SessionResponse {
	resp := SessionResponse{User: ToUserResponse(user)}
	if session != nil {
		resp.ExpiresAt = &session.ExpiresAt
	}
	return resp
}

type ConfigResponse struct {
	HasGitHubSignIn     bool     `json:"has_github_sign_in"`
	HasSSO              bool     `json:"has_sso"`
	DisableRegistration bool     `json:"disable_registration"`
	Integrations        []string `json:"integrations"`
	SearchEnabled       bool     `json:"search_enabled"`
}
