package dto

import (
	"time"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

// ConnectIntegrationRequest carries provider credentials. GitHub uses
// installation_id; Gitea and GitLab use base_url and access_token.
type ConnectIntegrationRequest struct {
	RepositoryOwner string  `json:"repository_owner" binding:"required"`
	RepositoryName  string  `json:"repository_name" binding:"required"`
	BaseURL         *string `json:"base_url,omitempty" binding:"omitempty,url"`
	AccessToken     *string `json:"access_token,omitempty"`
	InstallationID  *string `json:"installation_id,omitempty"`
}

type ListRepositoriesRequest struct {
	BaseURL        *string `json:"base_url,omitempty" binding:"omitempty,url"`
	AccessToken    *string `json:"access_token,omitempty"`
	InstallationID *string `json:"installation_id,omitempty"`
}

type IntegrationResponse struct {
	ID              int64     `json:"id,string"`
	ProjectID       int64     `json:"project_id,string"`
	Provider        string    `json:"provider"`
	BaseURL         *string   `json:"base_url,omitempty"`
	RepositoryOwner string    `json:"repository_owner"`
	RepositoryName  string    `json:"repository_name"`
	InstallationID  *string   `json:"installation_id,omitempty"`
	HasWebhook      bool      `json:"has_webhook"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToIntegrationResponse(i *model.Integration) IntegrationResponse {
	return IntegrationResponse{
		ID:              i.ID,
		ProjectID:       i.ProjectID,
		Provider:        string(i.Provider),
		BaseURL:         i.BaseURL,
		RepositoryOwner: i.RepositoryOwner,
		RepositoryName:  i.RepositoryName,
		InstallationID:  OptionalID(i.InstallationID),
		HasWebhook:      i.WebhookID != nil || i.Provider == model.ProviderGitHub,
		IsActive:        i.IsActive,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

type ImportIssuesResponse struct {
	Imported int `json:"imported"`
}
