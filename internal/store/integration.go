package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type integrationStore struct {
	queries *sqlc.Queries
}

func newIntegrationStore(queries *sqlc.Queries) IntegrationStore {
	return &integrationStore{queries: queries}
}

func (s *integrationStore) GetByID(ctx context.Context, id int64) (*model.Integration, error) {
	row, err := s.queries.GetIntegration(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIntegrationModel(row), nil
}

func (s *integrationStore) GetByProjectAndProvider(ctx context.Context, projectID int64, provider model.Provider) (*model.Integration, error) {
	row, err := s.queries.GetIntegrationByProjectAndProvider(ctx, sqlc.GetIntegrationByProjectAndProviderParams{
		ProjectID: projectID,
		Provider:  string(provider),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toIntegrationModel(row), nil
}

func (s *integrationStore) Create(ctx context.Context, integration *model.Integration) error {
	row, err := s.queries.CreateIntegration(ctx, sqlc.CreateIntegrationParams{
		ID:                integration.ID,
		ProjectID:         integration.ProjectID,
		Provider:          string(integration.Provider),
		BaseUrl:           integration.BaseURL,
		RepositoryOwner:   integration.RepositoryOwner,
		RepositoryName:    integration.RepositoryName,
		ExternalProjectID: integration.ExternalProjectID,
		InstallationID:    integration.InstallationID,
		AccessToken:       integration.AccessToken,
		WebhookSecret:     integration.WebhookSecret,
		WebhookID:         integration.WebhookID,
		IsActive:          integration.IsActive,
		CreatedBy:         integration.CreatedBy,
		BotLogin:          integration.BotLogin,
	})
	if err != nil {
		return err
	}
	*integration = *toIntegrationModel(row)
	return nil
}

func (s *integrationStore) Update(ctx context.Context, integration *model.Integration) error {
	row, err := s.queries.UpdateIntegration(ctx, sqlc.UpdateIntegrationParams{
		ID:                integration.ID,
		BaseUrl:           integration.BaseURL,
		RepositoryOwner:   integration.RepositoryOwner,
		RepositoryName:    integration.RepositoryName,
		ExternalProjectID: integration.ExternalProjectID,
		InstallationID:    integration.InstallationID,
		AccessToken:       integration.AccessToken,
		WebhookSecret:     integration.WebhookSecret,
		WebhookID:         integration.WebhookID,
		IsActive:          integration.IsActive,
		BotLogin:          integration.BotLogin,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*integration = *toIntegrationModel(row)
	return nil
}

func (s *integrationStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteIntegration(ctx, id)
}

func (s *integrationStore) ListByProject(ctx context.Context, projectID int64) ([]model.Integration, error) {
	rows, err := s.queries.ListIntegrationsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toIntegrationModels(rows), nil
}

func (s *integrationStore) ListActiveByRepository(ctx context.Context, provider model.Provider, owner, name string) ([]model.Integration, error) {
	rows, err := s.queries.ListActiveIntegrationsByRepository(ctx, sqlc.ListActiveIntegrationsByRepositoryParams{
		Provider:        string(provider),
		RepositoryOwner: owner,
		RepositoryName:  name,
	})
	if err != nil {
		return nil, err
	}
	return toIntegrationModels(rows), nil
}

func (s *integrationStore) DeactivateByInstallation(ctx context.Context, installationID int64) (int64, error) {
	return s.queries.DeactivateIntegrationsByInstallation(ctx, &installationID)
}

func toIntegrationModel(row sqlc.Integration) *model.Integration {
	return &model.Integration{
		ID:                row.ID,
		ProjectID:         row.ProjectID,
		Provider:          model.Provider(row.Provider),
		BaseURL:           row.BaseUrl,
		RepositoryOwner:   row.RepositoryOwner,
		RepositoryName:    row.RepositoryName,
		ExternalProjectID: row.ExternalProjectID,
		InstallationID:    row.InstallationID,
		AccessToken:       row.AccessToken,
		WebhookSecret:     row.WebhookSecret,
		WebhookID:         row.WebhookID,
		IsActive:          row.IsActive,
		CreatedBy:         row.CreatedBy,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
		BotLogin:          row.BotLogin,
	}
}

func toIntegrationModels(rows []sqlc.Integration) []model.Integration {
	result := make([]model.Integration, len(rows))
	for i, row := range rows {
		result[i] = *toIntegrationModel(row)
	}
	return result
}
