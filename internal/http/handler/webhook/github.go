package webhook

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

// GitHubWebhookHandler receives the GitHub App webhook. A single endpoint
// serves every installation, so integrations are resolved by repository.
type GitHubWebhookHandler struct {
	integrations  InboundService
	webhookSecret []byte
}

func NewGitHubWebhookHandler(integrations InboundService, webhookSecret string) *GitHubWebhookHandler {
	return &GitHubWebhookHandler{
		integrations:  integrations,
		webhookSecret: []byte(webhookSecret),
	}
}

var githubIssueActions = map[string]service.InboundAction{
	"opened":   service.InboundOpened,
	"closed":   service.InboundClosed,
	"reopened": service.InboundReopened,
	"edited":   service.InboundEdited,
}

func (h *GitHubWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	if len(h.webhookSecret) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "github webhooks are not configured"})
		return
	}

	limitBody(c)
	payload, err := github.ValidatePayload(c.Request, h.webhookSecret)
	if tooLarge(err) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "github webhook signature rejected", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	eventType := github.WebHookType(c.Request)
	switch eventType {
	case "issues", "issue_comment", "installation":
	default:
		unsupported(c)
		return
	}

	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	switch e := event.(type) {
	case *github.InstallationEvent:
		h.handleInstallation(c, e)
	case *github.IssuesEvent:
		action, ok := githubIssueActions[e.GetAction()]
		if !ok || e.GetIssue().IsPullRequest() {
			unsupported(c)
			return
		}
		h.dispatch(c, e.GetRepo(), service.InboundEvent{
			Action: action,
			Author: e.GetSender().GetLogin(),
			Issue:  githubIssue(e.GetIssue()),
		})
	case *github.IssueCommentEvent:
		if e.GetAction() != "created" || e.GetIssue().IsPullRequest() {
			unsupported(c)
			return
		}
		h.dispatch(c, e.GetRepo(), service.InboundEvent{
			Action:  service.InboundCommented,
			Author:  e.GetComment().GetUser().GetLogin(),
			Comment: e.GetComment().GetBody(),
			Issue:   githubIssue(e.GetIssue()),
		})
	default:
		unsupported(c)
	}
}

func (h *GitHubWebhookHandler) handleInstallation(c *gin.Context, e *github.InstallationEvent) {
	ctx := c.Request.Context()
	if e.GetAction() != "deleted" {
		unsupported(c)
		return
	}

	installationID := e.GetInstallation().GetID()
	if _, err := h.integrations.DeactivateInstallation(ctx, installationID); err != nil {
		slog.ErrorContext(ctx, "failed to deactivate installation", "error", err, "installation_id", installationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// dispatch hands the event to every active integration linked to repo.
func (h *GitHubWebhookHandler) dispatch(c *gin.Context, repo *github.Repository, event service.InboundEvent) {
	ctx := c.Request.Context()
	owner, name := repo.GetOwner().GetLogin(), repo.GetName()

	integrations, err := h.integrations.FindByRepository(ctx, model.ProviderGitHub, owner, name)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find integrations", "error", err, "repository", repo.GetFullName())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	if err := handleAll(ctx, h.integrations, integrations, event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	slog.InfoContext(ctx, "github webhook processed",
		"repository", repo.GetFullName(),
		"action", event.Action,
		"issue", event.Issue.Number,
		"integrations", len(integrations))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAll applies event to each integration and returns the last error.
// One failing project does not stop the others.
func handleAll(ctx context.Context, svc InboundService, integrations []model.Integration, event service.InboundEvent) error {
	var lastErr error
	for i := range integrations {
		if err := svc.HandleInbound(ctx, &integrations[i], event); err != nil {
			slog.ErrorContext(ctx, "failed to apply inbound event",
				"error", err,
				"integration_id", integrations[i].ID,
				"project_id", integrations[i].ProjectID)
			lastErr = err
		}
	}
	return lastErr
}

func githubIssue(issue *github.Issue) model.ExternalIssue {
	return model.ExternalIssue{
		Number: int64(issue.GetNumber()),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		URL:    issue.GetHTMLURL(),
		Closed: issue.GetState() == "closed",
	}
}
