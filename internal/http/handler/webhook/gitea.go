package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

// GiteaWebhookHandler receives the per-integration webhook registered on
// connect. Deliveries are signed with the integration's webhook secret.
type GiteaWebhookHandler struct {
	integrations InboundService
}

func NewGiteaWebhookHandler(integrations InboundService) *GiteaWebhookHandler {
	return &GiteaWebhookHandler{integrations: integrations}
}

var giteaIssueActions = map[string]service.InboundAction{
	"opened":   service.InboundOpened,
	"closed":   service.InboundClosed,
	"reopened": service.InboundReopened,
	"edited":   service.InboundEdited,
}

func (h *GiteaWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	integration, ok := integrationFromPath(c, h.integrations)
	if !ok {
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	secret := ""
	if integration.WebhookSecret != nil {
		secret = *integration.WebhookSecret
	}
	if !validSignature(body, secret, c.GetHeader("X-Gitea-Signature")) {
		slog.WarnContext(ctx, "gitea webhook signature rejected", "integration_id", integration.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	eventType := c.GetHeader("X-Gitea-Event")
	if eventType != "issues" && eventType != "issue_comment" {
		unsupported(c)
		return
	}

	var payload giteaWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Issue.Number == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.IsPull || payload.Issue.PullRequest != nil {
		unsupported(c)
		return
	}

	event := service.InboundEvent{
		Author: payload.Sender.Login,
		Issue: model.ExternalIssue{
			Number: payload.Issue.Number,
			Title:  payload.Issue.Title,
			Body:   payload.Issue.Body,
			URL:    payload.Issue.HTMLURL,
			Closed: payload.Issue.State == "closed",
		},
	}
	if eventType == "issue_comment" {
		if payload.Action != "created" {
			unsupported(c)
			return
		}
		event.Action = service.InboundCommented
		event.Comment = payload.Comment.Body
	} else {
		action, ok := giteaIssueActions[payload.Action]
		if !ok {
			unsupported(c)
			return
		}
		event.Action = action
	}

	if err := h.integrations.HandleInbound(ctx, integration, event); err != nil {
		slog.ErrorContext(ctx, "failed to process gitea event",
			"error", err,
			"integration_id", integration.ID,
			"action", event.Action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		return
	}

	slog.InfoContext(ctx, "gitea webhook processed",
		"integration_id", integration.ID,
		"action", event.Action,
		"issue", event.Issue.Number)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type giteaWebhookPayload struct {
	Action string `json:"action"`
	IsPull bool   `json:"is_pull"`
	Issue  struct {
		Number      int64  `json:"number"`
		Title       string `json:"title"`
		Body        string `json:"body"`
		HTMLURL     string `json:"html_url"`
		State       string `json:"state"`
		PullRequest *struct {
			Merged bool `json:"merged"`
		} `json:"pull_request"`
	} `json:"issue"`
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
	Sender struct {
		Login string `json:"login"`
	} `json:"sender"`
}
