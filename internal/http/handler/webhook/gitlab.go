package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type GitLabWebhookHandler struct {
	integrations InboundService
}

func NewGitLabWebhookHandler(integrations InboundService) *GitLabWebhookHandler {
	return &GitLabWebhookHandler{integrations: integrations}
}

var gitlabIssueActions = map[string]service.InboundAction{
	"open":   service.InboundOpened,
	"close":  service.InboundClosed,
	"reopen": service.InboundReopened,
	"update": service.InboundEdited,
}

func (h *GitLabWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	secretHeader := c.GetHeader("X-Gitlab-Token")
	if secretHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing webhook token"})
		return
	}

	integration, ok := integrationFromPath(c, h.integrations)
	if !ok {
		return
	}

	if integration.WebhookSecret == nil ||
		subtle.ConstantTimeCompare([]byte(*integration.WebhookSecret), []byte(secretHeader)) != 1 {
		slog.WarnContext(ctx, "gitlab webhook token rejected", "integration_id", integration.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook token"})
		return
	}

	eventType := gitlab.HookEventType(c.Request)
	if eventType != gitlab.EventTypeIssue && eventType != gitlab.EventTypeNote {
		unsupported(c)
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	var payload gitlabWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	event, ok := payload.inboundEvent()
	if !ok {
		slog.DebugContext(ctx, "gitlab event ignored",
			"integration_id", integration.ID,
			"object_kind", payload.ObjectKind,
			"action", payload.ObjectAttributes.Action)
		unsupported(c)
		return
	}
	if event.Issue.Number == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no issue iid in payload"})
		return
	}

	if err := h.integrations.HandleInbound(ctx, integration, event); err != nil {
		slog.ErrorContext(ctx, "failed to process gitlab event",
			"error", err,
			"integration_id", integration.ID,
			"action", event.Action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	slog.InfoContext(ctx, "gitlab webhook processed",
		"integration_id", integration.ID,
		"object_kind", payload.ObjectKind,
		"action", event.Action,
		"issue", event.Issue.Number)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type gitlabWebhookPayload struct {
	ObjectKind string `json:"object_kind"`
	User       struct {
		Username string `json:"username"`
	} `json:"user"`
	ObjectAttributes struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Note         string `json:"note"`
		NoteableType string `json:"noteable_type"`
		Action       string `json:"action"`
		State        string `json:"state"`
		URL          string `json:"url"`
		IID          int64  `json:"iid"`
	} `json:"object_attributes"`
	Issue struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		State       string `json:"state"`
		URL         string `json:"url"`
		IID         int64  `json:"iid"`
	} `json:"issue"`
}

// inboundEvent maps issue and issue-note hooks. For notes the issue sits in
// the nested issue object instead of object_attributes.
func (p gitlabWebhookPayload) inboundEvent() (service.InboundEvent, bool) {
	attrs := p.ObjectAttributes
	switch p.ObjectKind {
	case "issue":
		action, ok := gitlabIssueActions[attrs.Action]
		if !ok {
			return service.InboundEvent{}, false
		}
		return service.InboundEvent{
			Action: action,
			Author: p.User.Username,
			Issue: model.ExternalIssue{
				Number: attrs.IID,
				Title:  attrs.Title,
				Body:   attrs.Description,
				URL:    attrs.URL,
				Closed: attrs.State == "closed",
			},
		}, true
	case "note":
		if attrs.NoteableType != "Issue" {
			return service.InboundEvent{}, false
		}
		return service.InboundEvent{
			Action:  service.InboundCommented,
			Author:  p.User.Username,
			Comment: attrs.Note,
			Issue: model.ExternalIssue{
				Number: p.Issue.IID,
				Title:  p.Issue.Title,
				Body:   p.Issue.Description,
				URL:    p.Issue.URL,
				Closed: p.Issue.State == "closed",
			},
		}, true
	default:
		return service.InboundEvent{}, false
	}
}
