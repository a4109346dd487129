package webhook_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

type inboundCall struct {
	integrationID int64
	event         service.InboundEvent
}

type mockInboundService struct {
	getForWebhookFn    func(ctx context.Context, integrationID int64) (*model.Integration, error)
	findByRepositoryFn func(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error)
	deactivateFn       func(ctx context.Context, installationID int64) (int64, error)
	handleInboundFn    func(ctx context.Context, integration *model.Integration, event service.InboundEvent) error

	calls []inboundCall
}

func (m *mockInboundService) GetForWebhook(ctx context.Context, integrationID int64) (*model.Integration, error) {
	if m.getForWebhookFn != nil {
		return m.getForWebhookFn(ctx, integrationID)
	}
	return nil, service.ErrNotFound
}

func (m *mockInboundService) FindByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error) {
	if m.findByRepositoryFn != nil {
		return m.findByRepositoryFn(ctx, provider, owner, name)
	}
	return nil, nil
}

func (m *mockInboundService) DeactivateInstallation(ctx context.Context, installationID int64) (int64, error) {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, installationID)
	}
	return 0, nil
}

func (m *mockInboundService) HandleInbound(ctx context.Context, integration *model.Integration, event service.InboundEvent) error {
	m.calls = append(m.calls, inboundCall{integrationID: integration.ID, event: event})
	if m.handleInboundFn != nil {
		return m.handleInboundFn(ctx, integration, event)
	}
	return nil
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func ptr[T any](v T) *T {
	return &v
}
