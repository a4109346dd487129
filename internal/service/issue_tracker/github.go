package issue_tracker

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v66/github"

	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type cachedToken struct {
	expiresAt time.Time
	token     string
}

type gitHubIssueTracker struct {
	key    *rsa.PrivateKey
	tokens map[int64]cachedToken
	slug   string
	mu     sync.Mutex
	appID  int64
}

// NewGitHubIssueTracker authenticates as the configured GitHub App and acts
// on repositories through installation tokens.
func NewGitHubIssueTracker(cfg config.GitHubAppConfig) (IssueTracker, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parsing github app private key: %w", err)
	}
	return &gitHubIssueTracker{
		key:    key,
		tokens: make(map[int64]cachedToken),
		slug:   cfg.Slug,
		appID:  cfg.AppID,
	}, nil
}

func (t *gitHubIssueTracker) Provider() model.Provider {
	return model.ProviderGitHub
}

func (t *gitHubIssueTracker) ListRepositories(ctx context.Context, conn Connection) ([]model.Repository, error) {
	client, err := t.client(ctx, conn)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{Page: 1, PerPage: 100}
	var repos []model.Repository
	for {
		page, resp, err := client.Apps.ListRepos(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing installation repositories: %w", err)
		}
		for _, r := range page.Repositories {
			repos = append(repos, mapGitHubRepo(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (t *gitHubIssueTracker) VerifyRepository(ctx context.Context, conn Connection) (*model.Repository, error) {
	client, err := t.client(ctx, conn)
	if err != nil {
		return nil, err
	}
	repo, _, err := client.Repositories.Get(ctx, conn.Owner, conn.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", conn.FullName(), err)
	}
	mapped := mapGitHubRepo(repo)
	return &mapped, nil
}

// Account is the app's bot user, "<slug>[bot]". The slug is looked up once
// when it is not configured.
func (t *gitHubIssueTracker) Account(ctx context.Context, _ Connection) (string, error) {
	t.mu.Lock()
	slug := t.slug
	t.mu.Unlock()
	if slug == "" {
		appJWT, err := t.appJWT()
		if err != nil {
			return "", err
		}
		app, _, err := github.NewClient(nil).WithAuthToken(appJWT).Apps.Get(ctx, "")
		if err != nil {
			return "", fmt.Errorf("fetching github app: %w", err)
		}
		slug = app.GetSlug()
		t.mu.Lock()
		t.slug = slug
		t.mu.Unlock()
	}
	return slug + "[bot]", nil
}

// CreateWebhook is a no-op: GitHub App events arrive on the app webhook.
func (t *gitHubIssueTracker) CreateWebhook(context.Context, Connection, WebhookParams) (*int64, error) {
	return nil, nil
}

func (t *gitHubIssueTracker) DeleteWebhook(context.Context, Connection, int64) error {
	return nil
}

func (t *gitHubIssueTracker) ListOpenIssues(ctx context.Context, conn Connection) ([]model.ExternalIssue, error) {
	client, err := t.client(ctx, conn)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{Page: 1, PerPage: 100},
	}
	var issues []model.ExternalIssue
	for {
		page, resp, err := client.Issues.ListByRepo(ctx, conn.Owner, conn.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues: %w", err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, mapGitHubIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func (t *gitHubIssueTracker) CreateIssue(ctx context.Context, conn Connection, title, body string) (*model.ExternalIssue, error) {
	client, err := t.client(ctx, conn)
	if err != nil {
		return nil, err
	}
	issue, _, err := client.Issues.Create(ctx, conn.Owner, conn.Repo, &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	mapped := mapGitHubIssue(issue)
	return &mapped, nil
}

func (t *gitHubIssueTracker) UpdateIssue(ctx context.Context, conn Connection, number int64, update IssueUpdate) error {
	client, err := t.client(ctx, conn)
	if err != nil {
		return err
	}
	req := &github.IssueRequest{Title: update.Title, Body: update.Body}
	if update.Closed != nil {
		state := "open"
		if *update.Closed {
			state = "closed"
		}
		req.State = &state
	}
	if _, _, err := client.Issues.Edit(ctx, conn.Owner, conn.Repo, int(number), req); err != nil {
		return fmt.Errorf("updating issue #%d: %w", number, err)
	}
	return nil
}

func (t *gitHubIssueTracker) client(ctx context.Context, conn Connection) (*github.Client, error) {
	if conn.InstallationID == nil {
		return nil, errors.New("github integration requires an installation id")
	}
	token, err := t.installationToken(ctx, *conn.InstallationID)
	if err != nil {
		return nil, err
	}
	return github.NewClient(nil).WithAuthToken(token), nil
}

// installationToken returns a cached installation token, minting a new one
// when the cached token expires within a minute.
func (t *gitHubIssueTracker) installationToken(ctx context.Context, installationID int64) (string, error) {
	t.mu.Lock()
	cached, ok := t.tokens[installationID]
	t.mu.Unlock()
	if ok && time.Until(cached.expiresAt) > time.Minute {
		return cached.token, nil
	}

	appJWT, err := t.appJWT()
	if err != nil {
		return "", err
	}
	appClient := github.NewClient(nil).WithAuthToken(appJWT)
	token, _, err := appClient.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return "", fmt.Errorf("creating installation token: %w", err)
	}

	t.mu.Lock()
	t.tokens[installationID] = cachedToken{token: token.GetToken(), expiresAt: token.GetExpiresAt().Time}
	t.mu.Unlock()
	return token.GetToken(), nil
}

func (t *gitHubIssueTracker) appJWT() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-30 * time.Second)),
		ExpiresAt: jwt.NewNumericDate(now.Add(9 * time.Minute)),
		Issuer:    strconv.FormatInt(t.appID, 10),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("signing app jwt: %w", err)
	}
	return signed, nil
}

func mapGitHubRepo(r *github.Repository) model.Repository {
	return model.Repository{
		ExternalID:  r.GetID(),
		Owner:       r.GetOwner().GetLogin(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		URL:         r.GetHTMLURL(),
		Private:     r.GetPrivate(),
		Description: r.GetDescription(),
	}
}

func mapGitHubIssue(issue *github.Issue) model.ExternalIssue {
	return model.ExternalIssue{
		Number: int64(issue.GetNumber()),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		URL:    issue.GetHTMLURL(),
		Closed: issue.GetState() == "closed",
	}
}
