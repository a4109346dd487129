package model

import "time"

// Provider identifies an external issue tracker.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitea  Provider = "gitea"
	ProviderGitLab Provider = "gitlab"
)

func (p Provider) IsValid() bool {
	switch p {
	case ProviderGitHub, ProviderGitea, ProviderGitLab:
		return true
	}
	return false
}

type Integration struct {
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	BaseURL           *string   `json:"base_url,omitempty"`
	ExternalProjectID *int64    `json:"external_project_id,omitempty"`
	InstallationID    *int64    `json:"installation_id,omitempty"`
	AccessToken       *string   `json:"-"` // never expose tokens in API
	WebhookSecret     *string   `json:"-"`
	WebhookID         *int64    `json:"webhook_id,omitempty"`
	CreatedBy         *int64    `json:"created_by,omitempty"`
	BotLogin          *string   `json:"bot_login,omitempty"`
	Provider          Provider  `json:"provider"`
	RepositoryOwner   string    `json:"repository_owner"`
	RepositoryName    string    `json:"repository_name"`
	ID                int64     `json:"id"`
	ProjectID         int64     `json:"project_id"`
	IsActive          bool      `json:"is_active"`
}

func (i *Integration) FullName() string {
	return i.RepositoryOwner + "/" + i.RepositoryName
}

type ExternalLink struct {
	CreatedAt     time.Time `json:"created_at"`
	URL           string    `json:"url"`
	ID            int64     `json:"id"`
	TaskID        int64     `json:"task_id"`
	IntegrationID int64     `json:"integration_id"`
	ExternalID    int64     `json:"external_id"`
}

// Repository is a tracker repository visible to a set of credentials.
type Repository struct {
	ExternalID  int64  `json:"external_id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	URL         string `json:"url"`
	Private     bool   `json:"private"`
	Description string `json:"description,omitempty"`
}

// ExternalIssue is a provider-agnostic view of a tracker issue.
type ExternalIssue struct {
	Number int64
	Title  string
	Body   string
	URL    string
	Closed bool
}
