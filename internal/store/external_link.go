package store

import (
	"context"

	"github.com/usekaneo/kaneo-sub002/core/db/sqlc"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

type externalLinkStore struct {
	queries *sqlc.Queries
}

func newExternalLinkStore(queries *sqlc.Queries) ExternalLinkStore {
	return &externalLinkStore{queries: queries}
}

func (s *externalLinkStore) Create(ctx context.Context, link *model.ExternalLink) error {
	row, err := s.queries.CreateExternalLink(ctx, sqlc.CreateExternalLinkParams{
		ID:            link.ID,
		TaskID:        link.TaskID,
		IntegrationID: link.IntegrationID,
		ExternalID:    link.ExternalID,
		Url:           link.URL,
	})
	if err != nil {
		return err
	}
	*link = *toExternalLinkModel(row)
	return nil
}

func (s *externalLinkStore) GetByTask(ctx context.Context, taskID, integrationID int64) (*model.ExternalLink, error) {
	row, err := s.queries.GetExternalLinkByTask(ctx, sqlc.GetExternalLinkByTaskParams{
		TaskID:        taskID,
		IntegrationID: integrationID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toExternalLinkModel(row), nil
}

func (s *externalLinkStore) GetByExternalID(ctx context.Context, integrationID, externalID int64) (*model.ExternalLink, error) {
	row, err := s.queries.GetExternalLinkByExternalID(ctx, sqlc.GetExternalLinkByExternalIDParams{
		IntegrationID: integrationID,
		ExternalID:    externalID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toExternalLinkModel(row), nil
}

func (s *externalLinkStore) ListByTask(ctx context.Context, taskID int64) ([]model.ExternalLink, error) {
	rows, err := s.queries.ListExternalLinksByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	result := make([]model.ExternalLink, len(rows))
	for i, row := range rows {
		result[i] = *toExternalLinkModel(row)
	}
	return result, nil
}

func toExternalLinkModel(row sqlc.ExternalLink) *model.ExternalLink {
	return &model.ExternalLink{
		ID:            row.ID,
		TaskID:        row.TaskID,
		IntegrationID: row.IntegrationID,
		ExternalID:    row.ExternalID,
		URL:           row.Url,
		CreatedAt:     row.CreatedAt.Time,
	}
}
