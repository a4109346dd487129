package issue_tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

var ErrUnsupportedProvider = errors.New("unsupported provider")

// Connection carries what a tracker client needs to reach one repository.
type Connection struct {
	InstallationID *int64 // GitHub App installation
	BaseURL        string // self-hosted Gitea/GitLab; empty means the public instance
	Token          string
	Owner          string
	Repo           string
}

func (c Connection) FullName() string {
	return c.Owner + "/" + c.Repo
}

type WebhookParams struct {
	URL    string
	Secret string
}

// IssueUpdate carries the fields to change; nil fields are left untouched.
type IssueUpdate struct {
	Title  *string
	Body   *string
	Closed *bool
}

type IssueTracker interface {
	Provider() model.Provider
	ListRepositories(ctx context.Context, conn Connection) ([]model.Repository, error)
	VerifyRepository(ctx context.Context, conn Connection) (*model.Repository, error)
	// Account is the login that issues created through conn are authored by.
	Account(ctx context.Context, conn Connection) (string, error)
	// CreateWebhook returns the provider's hook id, or nil when the provider
	// delivers events through an app-level webhook.
	CreateWebhook(ctx context.Context, conn Connection, params WebhookParams) (*int64, error)
	DeleteWebhook(ctx context.Context, conn Connection, webhookID int64) error
	ListOpenIssues(ctx context.Context, conn Connection) ([]model.ExternalIssue, error)
	CreateIssue(ctx context.Context, conn Connection, title, body string) (*model.ExternalIssue, error)
	UpdateIssue(ctx context.Context, conn Connection, number int64, update IssueUpdate) error
}

// Registry resolves the tracker client of a provider.
type Registry struct {
	trackers map[model.Provider]IssueTracker
}

func NewRegistry(trackers ...IssueTracker) *Registry {
	r := &Registry{trackers: make(map[model.Provider]IssueTracker, len(trackers))}
	for _, t := range trackers {
		r.trackers[t.Provider()] = t
	}
	return r
}

func (r *Registry) Get(provider model.Provider) (IssueTracker, error) {
	t, ok := r.trackers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
	return t, nil
}

// Providers lists the configured providers in a stable order.
func (r *Registry) Providers() []model.Provider {
	providers := make([]model.Provider, 0, len(r.trackers))
	for p := range r.trackers {
		providers = append(providers, p)
	}
	slices.Sort(providers)
	return providers
}
