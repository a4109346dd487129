package issue_tracker

import (
	"context"
	"fmt"
	"strings"

	"code.gitea.io/sdk/gitea"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

const defaultGiteaURL = "https://gitea.com"

type giteaIssueTracker struct{}

func NewGiteaIssueTracker() IssueTracker {
	return &giteaIssueTracker{}
}

func (t *giteaIssueTracker) Provider() model.Provider {
	return model.ProviderGitea
}

func (t *giteaIssueTracker) ListRepositories(ctx context.Context, conn Connection) ([]model.Repository, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return nil, err
	}

	opts := gitea.ListReposOptions{ListOptions: gitea.ListOptions{Page: 1, PageSize: 50}}
	var repos []model.Repository
	for {
		page, resp, err := client.ListMyRepos(opts)
		if err != nil {
			return nil, fmt.Errorf("listing gitea repositories: %w", err)
		}
		for _, r := range page {
			repos = append(repos, mapGiteaRepo(r))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (t *giteaIssueTracker) VerifyRepository(ctx context.Context, conn Connection) (*model.Repository, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return nil, err
	}
	repo, _, err := client.GetRepo(conn.Owner, conn.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", conn.FullName(), err)
	}
	mapped := mapGiteaRepo(repo)
	return &mapped, nil
}

func (t *giteaIssueTracker) Account(ctx context.Context, conn Connection) (string, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return "", err
	}
	user, _, err := client.GetMyUserInfo()
	if err != nil {
		return "", fmt.Errorf("fetching token user: %w", err)
	}
	return user.UserName, nil
}

func (t *giteaIssueTracker) CreateWebhook(ctx context.Context, conn Connection, params WebhookParams) (*int64, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return nil, err
	}
	hook, _, err := client.CreateRepoHook(conn.Owner, conn.Repo, gitea.CreateHookOption{
		Type: gitea.HookTypeGitea,
		Config: map[string]string{
			"url":          params.URL,
			"content_type": "json",
			"secret":       params.Secret,
		},
		Events: []string{"issues", "issue_comment"},
		Active: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}
	return &hook.ID, nil
}

func (t *giteaIssueTracker) DeleteWebhook(ctx context.Context, conn Connection, webhookID int64) error {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return err
	}
	if _, err := client.DeleteRepoHook(conn.Owner, conn.Repo, webhookID); err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}
	return nil
}

func (t *giteaIssueTracker) ListOpenIssues(ctx context.Context, conn Connection) ([]model.ExternalIssue, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return nil, err
	}

	opts := gitea.ListIssueOption{
		ListOptions: gitea.ListOptions{Page: 1, PageSize: 50},
		State:       gitea.StateOpen,
		Type:        gitea.IssueTypeIssue,
	}
	var issues []model.ExternalIssue
	for {
		page, resp, err := client.ListRepoIssues(conn.Owner, conn.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing issues: %w", err)
		}
		for _, issue := range page {
			if issue.PullRequest != nil {
				continue
			}
			issues = append(issues, mapGiteaIssue(issue))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func (t *giteaIssueTracker) CreateIssue(ctx context.Context, conn Connection, title, body string) (*model.ExternalIssue, error) {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return nil, err
	}
	issue, _, err := client.CreateIssue(conn.Owner, conn.Repo, gitea.CreateIssueOption{
		Title: title,
		Body:  body,
	})
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	mapped := mapGiteaIssue(issue)
	return &mapped, nil
}

func (t *giteaIssueTracker) UpdateIssue(ctx context.Context, conn Connection, number int64, update IssueUpdate) error {
	client, err := t.newClient(ctx, conn)
	if err != nil {
		return err
	}
	opt := gitea.EditIssueOption{Body: update.Body}
	if update.Title != nil {
		opt.Title = *update.Title
	}
	if update.Closed != nil {
		state := gitea.StateOpen
		if *update.Closed {
			state = gitea.StateClosed
		}
		opt.State = &state
	}
	if _, _, err := client.EditIssue(conn.Owner, conn.Repo, number, opt); err != nil {
		return fmt.Errorf("updating issue #%d: %w", number, err)
	}
	return nil
}

func (t *giteaIssueTracker) newClient(ctx context.Context, conn Connection) (*gitea.Client, error) {
	baseURL := strings.TrimSuffix(conn.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGiteaURL
	}
	client, err := gitea.NewClient(baseURL, gitea.SetToken(conn.Token), gitea.SetContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("creating gitea client: %w", err)
	}
	return client, nil
}

func mapGiteaRepo(r *gitea.Repository) model.Repository {
	repo := model.Repository{
		ExternalID:  r.ID,
		Name:        r.Name,
		FullName:    r.FullName,
		URL:         r.HTMLURL,
		Private:     r.Private,
		Description: r.Description,
	}
	if r.Owner != nil {
		repo.Owner = r.Owner.UserName
	}
	return repo
}

func mapGiteaIssue(issue *gitea.Issue) model.ExternalIssue {
	return model.ExternalIssue{
		Number: issue.Index,
		Title:  issue.Title,
		Body:   issue.Body,
		URL:    issue.HTMLURL,
		Closed: issue.State == gitea.StateClosed,
	}
}
