package model

import "time"

type Session struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UserAgent *string   `json:"user_agent,omitempty"`
	IPAddress *string   `json:"ip_address,omitempty"`
	// Token is only populated on creation; the store keeps its hash.
	Token     string `json:"-"`
	TokenHash string `json:"-"`
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
