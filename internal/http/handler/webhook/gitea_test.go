package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/http/handler/webhook"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

var _ = Describe("GiteaWebhookHandler", func() {
	const secret = "hook-secret"

	var (
		router *gin.Engine
		svc    *mockInboundService
	)

	sendRaw := func(path, eventType string, payload []byte, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Gitea-Event", eventType)
		req.Header.Set("X-Gitea-Signature", signature)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	send := func(eventType string, body any) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		return sendRaw("/api/webhook/gitea/5", eventType, payload, sign(payload, secret))
	}

	issuePayload := func(action string) map[string]any {
		return map[string]any{
			"action": action,
			"issue": map[string]any{
				"number":   3,
				"title":    "Broken link",
				"body":     "The docs link 404s",
				"state":    "open",
				"html_url": "https://git.example.com/acme/app/issues/3",
			},
			"sender": map[string]any{"login": "alice"},
		}
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockInboundService{
			getForWebhookFn: func(_ context.Context, integrationID int64) (*model.Integration, error) {
				if integrationID != 5 {
					return nil, service.ErrNotFound
				}
				return &model.Integration{ID: 5, Provider: model.ProviderGitea, WebhookSecret: ptr(secret)}, nil
			},
		}
		router.POST("/api/webhook/gitea/:integration_id", webhook.NewGiteaWebhookHandler(svc).HandleEvent)
	})

	It("maps an opened issue", func() {
		w := send("issues", issuePayload("opened"))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.calls).To(HaveLen(1))
		Expect(svc.calls[0].integrationID).To(Equal(int64(5)))
		Expect(svc.calls[0].event.Action).To(Equal(service.InboundOpened))
		Expect(svc.calls[0].event.Issue.Number).To(Equal(int64(3)))
		Expect(svc.calls[0].event.Issue.Title).To(Equal("Broken link"))
		Expect(svc.calls[0].event.Issue.Closed).To(BeFalse())
	})

	It("maps a new comment", func() {
		body := issuePayload("created")
		body["comment"] = map[string]any{"body": "On it"}

		w := send("issue_comment", body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.calls).To(HaveLen(1))
		Expect(svc.calls[0].event.Action).To(Equal(service.InboundCommented))
		Expect(svc.calls[0].event.Comment).To(Equal("On it"))
		Expect(svc.calls[0].event.Author).To(Equal("alice"))
	})

	It("rejects a bad signature", func() {
		payload, _ := json.Marshal(issuePayload("opened"))

		w := sendRaw("/api/webhook/gitea/5", "issues", payload, sign(payload, "other"))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(svc.calls).To(BeEmpty())
	})

	It("refuses oversized deliveries before checking them", func() {
		payload := bytes.Repeat([]byte(" "), webhook.MaxPayloadBytes+1)

		w := sendRaw("/api/webhook/gitea/5", "issues", payload, sign(payload, secret))

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(svc.calls).To(BeEmpty())
	})

	It("rejects a missing signature", func() {
		payload, _ := json.Marshal(issuePayload("opened"))

		w := sendRaw("/api/webhook/gitea/5", "issues", payload, "")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("answers 404 for an unknown integration", func() {
		payload, _ := json.Marshal(issuePayload("opened"))

		w := sendRaw("/api/webhook/gitea/6", "issues", payload, sign(payload, secret))

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("answers 400 for a malformed integration id", func() {
		w := sendRaw("/api/webhook/gitea/abc", "issues", []byte("{}"), "")

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a malformed payload", func() {
		payload := []byte(`{"action":`)

		w := sendRaw("/api/webhook/gitea/5", "issues", payload, sign(payload, secret))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("acknowledges unsupported events", func() {
		w := send("push", map[string]any{"ref": "refs/heads/main"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("event type not supported"))
		Expect(svc.calls).To(BeEmpty())
	})

	It("skips pull request events", func() {
		body := issuePayload("opened")
		body["is_pull"] = true

		w := send("issues", body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.calls).To(BeEmpty())
	})
})
