package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service/issue_tracker"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const webhookSecretLength = 32

// InboundAction is an issue change reported by a tracker webhook.
type InboundAction string

const (
	InboundOpened    InboundAction = "opened"
	InboundClosed    InboundAction = "closed"
	InboundReopened  InboundAction = "reopened"
	InboundEdited    InboundAction = "edited"
	InboundCommented InboundAction = "commented"
)

type InboundEvent struct {
	Action  InboundAction
	Author  string
	Comment string
	Issue   model.ExternalIssue
}

// ConnectParams are the provider credentials and repository coordinates.
// GitHub uses InstallationID; Gitea and GitLab use BaseURL and AccessToken.
type ConnectParams struct {
	BaseURL         *string
	AccessToken     *string
	InstallationID  *int64
	RepositoryOwner string
	RepositoryName  string
}

type IntegrationService interface {
	Get(ctx context.Context, projectID, userID int64, provider model.Provider) (*model.Integration, error)
	Connect(ctx context.Context, projectID, userID int64, provider model.Provider, params ConnectParams) (*model.Integration, error)
	Disconnect(ctx context.Context, projectID, userID int64, provider model.Provider) error
	ListRepositories(ctx context.Context, provider model.Provider, params ConnectParams) ([]model.Repository, error)
	ImportIssues(ctx context.Context, projectID, userID int64, provider model.Provider) (int, error)

	// GetForWebhook loads an integration addressed by a webhook URL.
	GetForWebhook(ctx context.Context, integrationID int64) (*model.Integration, error)
	FindByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error)
	DeactivateInstallation(ctx context.Context, installationID int64) (int64, error)
	HandleInbound(ctx context.Context, integration *model.Integration, event InboundEvent) error
	// SyncEvent mirrors a task event to the trackers linked to its project.
	SyncEvent(ctx context.Context, event model.Event) error
}

type integrationService struct {
	stores   StoreProvider
	trackers *issue_tracker.Registry
	tasks    TaskService
	access   access
	apiURL   string
}

func NewIntegrationService(stores StoreProvider, trackers *issue_tracker.Registry, tasks TaskService, apiURL string) IntegrationService {
	return &integrationService{
		stores:   stores,
		trackers: trackers,
		tasks:    tasks,
		access:   access{stores: stores},
		apiURL:   apiURL,
	}
}

func (s *integrationService) Get(ctx context.Context, projectID, userID int64, provider model.Provider) (*model.Integration, error) {
	if !provider.IsValid() {
		return nil, invalid("unknown provider %q", provider)
	}
	if _, _, err := s.access.project(ctx, projectID, userID); err != nil {
		return nil, err
	}
	integration, err := s.stores.Integrations().GetByProjectAndProvider(ctx, projectID, provider)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting integration: %w", err)
	}
	return integration, nil
}

func (s *integrationService) Connect(ctx context.Context, projectID, userID int64, provider model.Provider, params ConnectParams) (*model.Integration, error) {
	tracker, err := s.tracker(provider)
	if err != nil {
		return nil, err
	}
	project, member, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, ErrForbidden
	}
	if err := validateConnect(provider, params); err != nil {
		return nil, err
	}

	conn := connectionFromParams(params)
	repo, err := tracker.VerifyRepository(ctx, conn)
	if err != nil {
		slog.WarnContext(ctx, "repository verification failed",
			"error", err,
			"provider", provider,
			"repository", conn.FullName(),
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	existing, err := s.stores.Integrations().GetByProjectAndProvider(ctx, project.ID, provider)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting integration: %w", err)
	}

	var botLogin *string
	if account, err := tracker.Account(ctx, conn); err != nil {
		slog.WarnContext(ctx, "could not resolve tracker account, webhook echoes will not be filtered",
			"error", err,
			"provider", provider,
		)
	} else if account != "" {
		botLogin = &account
	}

	integration := &model.Integration{
		ID:                id.New(),
		ProjectID:         project.ID,
		Provider:          provider,
		BaseURL:           params.BaseURL,
		RepositoryOwner:   params.RepositoryOwner,
		RepositoryName:    params.RepositoryName,
		InstallationID:    params.InstallationID,
		AccessToken:       params.AccessToken,
		ExternalProjectID: &repo.ExternalID,
		CreatedBy:         &userID,
		BotLogin:          botLogin,
		IsActive:          true,
	}
	if existing != nil {
		integration.ID = existing.ID
		integration.CreatedAt = existing.CreatedAt
	}

	if provider != model.ProviderGitHub {
		secret, err := generateHexToken(webhookSecretLength)
		if err != nil {
			return nil, fmt.Errorf("generating webhook secret: %w", err)
		}
		integration.WebhookSecret = &secret
		hookID, err := tracker.CreateWebhook(ctx, conn, issue_tracker.WebhookParams{
			URL:    fmt.Sprintf("%s/api/webhook/%s/%d", s.apiURL, provider, integration.ID),
			Secret: secret,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		integration.WebhookID = hookID
	}

	if existing != nil {
		err = s.stores.Integrations().Update(ctx, integration)
	} else {
		err = s.stores.Integrations().Create(ctx, integration)
	}
	if err != nil {
		s.removeWebhook(ctx, tracker, integration)
		return nil, fmt.Errorf("saving integration: %w", err)
	}
	// the old hook goes only once the new one is registered and saved
	if existing != nil && !sameWebhook(existing, integration) {
		s.removeWebhook(ctx, tracker, existing)
	}

	slog.InfoContext(ctx, "integration connected",
		"integration_id", integration.ID,
		"project_id", project.ID,
		"provider", provider,
		"repository", integration.FullName(),
	)
	return integration, nil
}

func (s *integrationService) Disconnect(ctx context.Context, projectID, userID int64, provider model.Provider) error {
	tracker, err := s.tracker(provider)
	if err != nil {
		return err
	}
	_, member, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return ErrForbidden
	}

	integration, err := s.stores.Integrations().GetByProjectAndProvider(ctx, projectID, provider)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("getting integration: %w", err)
	}

	s.removeWebhook(ctx, tracker, integration)
	if err := s.stores.Integrations().Delete(ctx, integration.ID); err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}

	slog.InfoContext(ctx, "integration disconnected", "integration_id", integration.ID, "project_id", projectID)
	return nil
}

func (s *integrationService) ListRepositories(ctx context.Context, provider model.Provider, params ConnectParams) ([]model.Repository, error) {
	tracker, err := s.tracker(provider)
	if err != nil {
		return nil, err
	}
	if provider == model.ProviderGitHub && params.InstallationID == nil {
		return nil, invalid("installation_id is required")
	}
	if provider != model.ProviderGitHub && (params.AccessToken == nil || *params.AccessToken == "") {
		return nil, invalid("access_token is required")
	}

	repos, err := tracker.ListRepositories(ctx, connectionFromParams(params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	return repos, nil
}

func (s *integrationService) ImportIssues(ctx context.Context, projectID, userID int64, provider model.Provider) (int, error) {
	tracker, err := s.tracker(provider)
	if err != nil {
		return 0, err
	}
	integration, err := s.Get(ctx, projectID, userID, provider)
	if err != nil {
		return 0, err
	}

	issues, err := tracker.ListOpenIssues(ctx, connectionFor(integration))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	imported := 0
	for _, issue := range issues {
		created, err := s.linkIssue(ctx, integration, issue)
		if err != nil {
			return imported, err
		}
		if created {
			imported++
		}
	}

	slog.InfoContext(ctx, "issues imported",
		"integration_id", integration.ID,
		"project_id", projectID,
		"count", imported,
	)
	return imported, nil
}

func (s *integrationService) GetForWebhook(ctx context.Context, integrationID int64) (*model.Integration, error) {
	integration, err := s.stores.Integrations().GetByID(ctx, integrationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting integration: %w", err)
	}
	if !integration.IsActive {
		return nil, ErrNotFound
	}
	return integration, nil
}

func (s *integrationService) FindByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error) {
	integrations, err := s.stores.Integrations().ListActiveByRepository(ctx, provider, owner, name)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}
	return integrations, nil
}

func (s *integrationService) DeactivateInstallation(ctx context.Context, installationID int64) (int64, error) {
	n, err := s.stores.Integrations().DeactivateByInstallation(ctx, installationID)
	if err != nil {
		return 0, fmt.Errorf("deactivating integrations: %w", err)
	}
	slog.InfoContext(ctx, "integrations deactivated", "installation_id", installationID, "count", n)
	return n, nil
}

func (s *integrationService) HandleInbound(ctx context.Context, integration *model.Integration, event InboundEvent) error {
	if event.Action == InboundOpened {
		if isEcho(integration, event) {
			slog.DebugContext(ctx, "webhook echo of an issue opened by kaneo ignored",
				"integration_id", integration.ID,
				"issue", event.Issue.Number,
			)
			return nil
		}
		_, err := s.linkIssue(ctx, integration, event.Issue)
		return err
	}

	link, err := s.stores.ExternalLinks().GetByExternalID(ctx, integration.ID, event.Issue.Number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.DebugContext(ctx, "webhook for unlinked issue ignored",
				"integration_id", integration.ID,
				"issue", event.Issue.Number,
			)
			return nil
		}
		return fmt.Errorf("getting external link: %w", err)
	}

	switch event.Action {
	case InboundClosed, InboundReopened:
		closed := event.Action == InboundClosed
		_, err = s.tasks.ApplyExternal(ctx, link.TaskID, ExternalTaskChange{Closed: &closed})
	case InboundEdited:
		title := event.Issue.Title
		change := ExternalTaskChange{Title: &title, ClearDescription: event.Issue.Body == ""}
		if body := event.Issue.Body; body != "" {
			change.Description = &body
		}
		_, err = s.tasks.ApplyExternal(ctx, link.TaskID, change)
	case InboundCommented:
		content := strings.TrimSpace(event.Comment)
		if content == "" {
			return nil
		}
		if event.Author != "" {
			content = fmt.Sprintf("%s commented on %s: %s", event.Author, integration.Provider, content)
		}
		err = s.stores.Activities().Create(ctx, &model.Activity{
			ID:      id.New(),
			TaskID:  link.TaskID,
			Type:    model.ActivityTypeIntegration,
			Content: content,
		})
	default:
		return nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("applying %s: %w", event.Action, err)
	}
	return nil
}

// linkIssue creates a task for an issue not yet linked to the integration.
// The task and its link are written together, so losing a race against
// another delivery of the same issue leaves nothing behind.
func (s *integrationService) linkIssue(ctx context.Context, integration *model.Integration, issue model.ExternalIssue) (bool, error) {
	if _, err := s.stores.ExternalLinks().GetByExternalID(ctx, integration.ID, issue.Number); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("getting external link: %w", err)
	}

	var description *string
	if issue.Body != "" {
		description = &issue.Body
	}
	_, err := s.tasks.CreateExternal(ctx, integration.ProjectID, ExternalTask{
		Title:       issue.Title,
		Description: description,
		Closed:      issue.Closed,
		Link: model.ExternalLink{
			IntegrationID: integration.ID,
			ExternalID:    issue.Number,
			URL:           issue.URL,
		},
	})
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating task from issue: %w", err)
	}
	return true, nil
}

func (s *integrationService) SyncEvent(ctx context.Context, event model.Event) error {
	if event.ProjectID == nil || event.TaskID == nil {
		return nil
	}

	var update issue_tracker.IssueUpdate
	switch event.Type {
	case model.EventTaskCreated:
		var p model.TaskPayload
		if err := event.DecodePayload(&p); err != nil {
			return fmt.Errorf("decoding payload: %w", err)
		}
		if p.Source == SourceIntegration {
			return nil
		}
	case model.EventTaskStatusChanged, model.EventTaskTitleChanged, model.EventTaskDescriptionChanged:
		var p model.ChangePayload
		if err := event.DecodePayload(&p); err != nil {
			return fmt.Errorf("decoding payload: %w", err)
		}
		if p.Source == SourceIntegration {
			return nil
		}
		var (
			ok  bool
			err error
		)
		update, ok, err = s.issueUpdate(ctx, event, p)
		if err != nil {
			return fmt.Errorf("building issue update: %w", err)
		}
		if !ok {
			return nil
		}
	default:
		return nil
	}

	integrations, err := s.stores.Integrations().ListByProject(ctx, *event.ProjectID)
	if err != nil {
		return fmt.Errorf("listing integrations: %w", err)
	}

	var errs []error
	for i := range integrations {
		integration := &integrations[i]
		if !integration.IsActive {
			continue
		}
		tracker, err := s.trackers.Get(integration.Provider)
		if err != nil {
			continue
		}
		if event.Type == model.EventTaskCreated {
			err = s.createIssue(ctx, tracker, integration, *event.TaskID)
		} else {
			err = s.updateIssue(ctx, tracker, integration, *event.TaskID, update)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s sync: %w", integration.Provider, err))
		}
	}
	return errors.Join(errs...)
}

// issueUpdate translates a change event into an issue edit. Status changes
// only matter when they cross the final-column boundary.
func (s *integrationService) issueUpdate(ctx context.Context, event model.Event, p model.ChangePayload) (issue_tracker.IssueUpdate, bool, error) {
	switch event.Type {
	case model.EventTaskTitleChanged:
		title := formatValue(p.New)
		return issue_tracker.IssueUpdate{Title: &title}, true, nil
	case model.EventTaskDescriptionChanged:
		body := ""
		if p.New != nil {
			body = formatValue(p.New)
		}
		return issue_tracker.IssueUpdate{Body: &body}, true, nil
	}

	columns, err := s.stores.Columns().ListByProject(ctx, *event.ProjectID)
	if err != nil {
		return issue_tracker.IssueUpdate{}, false, err
	}
	isFinal := func(v any) bool {
		c := findColumn(columns, formatValue(v))
		return c != nil && c.IsFinal
	}
	wasClosed, closed := isFinal(p.Old), isFinal(p.New)
	if wasClosed == closed {
		return issue_tracker.IssueUpdate{}, false, nil
	}
	return issue_tracker.IssueUpdate{Closed: &closed}, true, nil
}

func (s *integrationService) createIssue(ctx context.Context, tracker issue_tracker.IssueTracker, integration *model.Integration, taskID int64) error {
	if _, err := s.stores.ExternalLinks().GetByTask(ctx, taskID, integration.ID); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("getting external link: %w", err)
	}

	task, err := s.stores.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("getting task: %w", err)
	}

	body := ""
	if task.Description != nil {
		body = *task.Description
	}
	issue, err := tracker.CreateIssue(ctx, connectionFor(integration), task.Title, body)
	if err != nil {
		return err
	}

	link := model.ExternalLink{
		IntegrationID: integration.ID,
		ExternalID:    issue.Number,
		URL:           issue.URL,
	}
	// a concurrent echo insert waits on the unique index, so one retry sees it committed
	for attempt := 0; attempt < 2; attempt++ {
		if err = s.tasks.AdoptExternal(ctx, task.ID, link); !errors.Is(err, ErrConflict) {
			break
		}
	}
	if errors.Is(err, ErrNotFound) {
		slog.WarnContext(ctx, "task deleted before its issue was linked",
			"task_id", task.ID,
			"issue", issue.Number,
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("linking issue #%d: %w", issue.Number, err)
	}

	slog.InfoContext(ctx, "issue created for task",
		"task_id", task.ID,
		"integration_id", integration.ID,
		"issue", issue.Number,
	)
	return nil
}

func (s *integrationService) updateIssue(ctx context.Context, tracker issue_tracker.IssueTracker, integration *model.Integration, taskID int64, update issue_tracker.IssueUpdate) error {
	link, err := s.stores.ExternalLinks().GetByTask(ctx, taskID, integration.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("getting external link: %w", err)
	}
	return tracker.UpdateIssue(ctx, connectionFor(integration), link.ExternalID, update)
}

func (s *integrationService) removeWebhook(ctx context.Context, tracker issue_tracker.IssueTracker, integration *model.Integration) {
	if integration.WebhookID == nil {
		return
	}
	if err := tracker.DeleteWebhook(ctx, connectionFor(integration), *integration.WebhookID); err != nil {
		slog.WarnContext(ctx, "failed to delete webhook",
			"error", err,
			"integration_id", integration.ID,
			"webhook_id", *integration.WebhookID,
		)
	}
}

func sameWebhook(a, b *model.Integration) bool {
	return a.WebhookID != nil && b.WebhookID != nil && *a.WebhookID == *b.WebhookID &&
		a.FullName() == b.FullName()
}

// isEcho reports whether an opened issue was authored by the account Kaneo
// acts as, meaning the issue was created by createIssue.
func isEcho(integration *model.Integration, event InboundEvent) bool {
	if integration.BotLogin == nil || event.Author == "" {
		return false
	}
	return strings.EqualFold(*integration.BotLogin, event.Author)
}

func (s *integrationService) tracker(provider model.Provider) (issue_tracker.IssueTracker, error) {
	if !provider.IsValid() {
		return nil, invalid("unknown provider %q", provider)
	}
	tracker, err := s.trackers.Get(provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %s integration is not configured", ErrInvalidInput, provider)
	}
	return tracker, nil
}

func validateConnect(provider model.Provider, params ConnectParams) error {
	if strings.TrimSpace(params.RepositoryOwner) == "" || strings.TrimSpace(params.RepositoryName) == "" {
		return invalid("repository owner and name are required")
	}
	if provider == model.ProviderGitHub {
		if params.InstallationID == nil {
			return invalid("installation_id is required")
		}
		return nil
	}
	if params.AccessToken == nil || *params.AccessToken == "" {
		return invalid("access_token is required")
	}
	return nil
}

func connectionFromParams(params ConnectParams) issue_tracker.Connection {
	conn := issue_tracker.Connection{
		InstallationID: params.InstallationID,
		Owner:          params.RepositoryOwner,
		Repo:           params.RepositoryName,
	}
	if params.BaseURL != nil {
		conn.BaseURL = *params.BaseURL
	}
	if params.AccessToken != nil {
		conn.Token = *params.AccessToken
	}
	return conn
}

func connectionFor(integration *model.Integration) issue_tracker.Connection {
	return connectionFromParams(ConnectParams{
		BaseURL:         integration.BaseURL,
		AccessToken:     integration.AccessToken,
		InstallationID:  integration.InstallationID,
		RepositoryOwner: integration.RepositoryOwner,
		RepositoryName:  integration.RepositoryName,
	})
}
