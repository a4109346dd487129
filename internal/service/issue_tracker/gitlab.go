package issue_tracker

import (
	"context"
	"fmt"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type gitLabIssueTracker struct{}

func NewGitLabIssueTracker() IssueTracker {
	return &gitLabIssueTracker{}
}

func (t *gitLabIssueTracker) Provider() model.Provider {
	return model.ProviderGitLab
}

func (t *gitLabIssueTracker) ListRepositories(ctx context.Context, conn Connection) ([]model.Repository, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListProjectsOptions{
		Membership:     gitlab.Ptr(true),
		MinAccessLevel: gitlab.Ptr(gitlab.DeveloperPermissions),
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}

	var repos []model.Repository
	for {
		page, resp, err := client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing gitlab projects: %w", err)
		}
		for _, p := range page {
			repos = append(repos, mapGitLabProject(p))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

func (t *gitLabIssueTracker) VerifyRepository(ctx context.Context, conn Connection) (*model.Repository, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return nil, err
	}
	project, _, err := client.Projects.GetProject(conn.FullName(), nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching project %s: %w", conn.FullName(), err)
	}
	repo := mapGitLabProject(project)
	return &repo, nil
}

func (t *gitLabIssueTracker) Account(ctx context.Context, conn Connection) (string, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return "", err
	}
	user, _, err := client.Users.CurrentUser(gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetching token user: %w", err)
	}
	return user.Username, nil
}

func (t *gitLabIssueTracker) CreateWebhook(ctx context.Context, conn Connection, params WebhookParams) (*int64, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return nil, err
	}
	hook, _, err := client.Projects.AddProjectHook(conn.FullName(), &gitlab.AddProjectHookOptions{
		URL:                   gitlab.Ptr(params.URL),
		Name:                  gitlab.Ptr("Kaneo"),
		Description:           gitlab.Ptr("Kaneo task sync"),
		IssuesEvents:          gitlab.Ptr(true),
		NoteEvents:            gitlab.Ptr(true),
		PushEvents:            gitlab.Ptr(false),
		Token:                 gitlab.Ptr(params.Secret),
		EnableSSLVerification: gitlab.Ptr(true),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}
	return &hook.ID, nil
}

func (t *gitLabIssueTracker) DeleteWebhook(ctx context.Context, conn Connection, webhookID int64) error {
	client, err := t.newClient(conn)
	if err != nil {
		return err
	}
	if _, err := client.Projects.DeleteProjectHook(conn.FullName(), webhookID, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}
	return nil
}

func (t *gitLabIssueTracker) ListOpenIssues(ctx context.Context, conn Connection) ([]model.ExternalIssue, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListProjectIssuesOptions{
		State: gitlab.Ptr("opened"),
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}
	var issues []model.ExternalIssue
	for {
		page, resp, err := client.Issues.ListProjectIssues(conn.FullName(), opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing issues: %w", err)
		}
		for _, issue := range page {
			issues = append(issues, mapGitLabIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

func (t *gitLabIssueTracker) CreateIssue(ctx context.Context, conn Connection, title, body string) (*model.ExternalIssue, error) {
	client, err := t.newClient(conn)
	if err != nil {
		return nil, err
	}
	issue, _, err := client.Issues.CreateIssue(conn.FullName(), &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(title),
		Description: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	mapped := mapGitLabIssue(issue)
	return &mapped, nil
}

func (t *gitLabIssueTracker) UpdateIssue(ctx context.Context, conn Connection, number int64, update IssueUpdate) error {
	client, err := t.newClient(conn)
	if err != nil {
		return err
	}
	opts := &gitlab.UpdateIssueOptions{
		Title:       update.Title,
		Description: update.Body,
	}
	if update.Closed != nil {
		event := "reopen"
		if *update.Closed {
			event = "close"
		}
		opts.StateEvent = &event
	}
	if _, _, err := client.Issues.UpdateIssue(conn.FullName(), number, opts, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("updating issue #%d: %w", number, err)
	}
	return nil
}

func (t *gitLabIssueTracker) newClient(conn Connection) (*gitlab.Client, error) {
	var (
		client *gitlab.Client
		err    error
	)
	if conn.BaseURL == "" {
		client, err = gitlab.NewClient(conn.Token)
	} else {
		apiURL := strings.TrimSuffix(conn.BaseURL, "/") + "/api/v4"
		client, err = gitlab.NewClient(conn.Token, gitlab.WithBaseURL(apiURL))
	}
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return client, nil
}

func mapGitLabProject(p *gitlab.Project) model.Repository {
	repo := model.Repository{
		ExternalID:  p.ID,
		Name:        p.Path,
		FullName:    p.PathWithNamespace,
		URL:         p.WebURL,
		Private:     p.Visibility == gitlab.PrivateVisibility,
		Description: p.Description,
	}
	if p.Namespace != nil {
		repo.Owner = p.Namespace.FullPath
	}
	return repo
}

func mapGitLabIssue(issue *gitlab.Issue) model.ExternalIssue {
	return model.ExternalIssue{
		Number: issue.IID,
		Title:  issue.Title,
		Body:   issue.Description,
		URL:    issue.WebURL,
		Closed: issue.State == "closed",
	}
}
