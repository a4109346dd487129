package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/usekaneo/kaneo-sub002/internal/model"
)

const DefaultSearchLimit = 20

// SearchIndex is a full-text index over tasks and projects.
type SearchIndex interface {
	Search(ctx context.Context, workspaceID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error)
}

type SearchService interface {
	Search(ctx context.Context, workspaceID, userID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error)
}

type searchService struct {
	stores StoreProvider
	index  SearchIndex
	access access
}

// NewSearchService builds the search service. A nil index makes every
// search run against Postgres.
func NewSearchService(stores StoreProvider, index SearchIndex) SearchService {
	return &searchService{stores: stores, index: index, access: access{stores: stores}}
}

func (s *searchService) Search(ctx context.Context, workspaceID, userID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchHit{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = DefaultSearchLimit
	}
	if len(kinds) == 0 {
		kinds = []model.SearchKind{model.SearchKindTask, model.SearchKindProject}
	}
	if _, err := s.access.member(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	if s.index != nil {
		hits, err := s.index.Search(ctx, workspaceID, query, kinds, limit)
		if err == nil {
			return hits, nil
		}
		slog.WarnContext(ctx, "search index unavailable, falling back to database", "error", err)
	}
	return s.searchDatabase(ctx, workspaceID, query, kinds, limit)
}

func (s *searchService) searchDatabase(ctx context.Context, workspaceID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error) {
	hits := []model.SearchHit{}

	if slices.Contains(kinds, model.SearchKindProject) {
		projects, err := s.stores.Projects().ListByWorkspace(ctx, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		q := strings.ToLower(query)
		for _, p := range projects {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(p.Slug, q) {
				hits = append(hits, model.SearchHit{
					Kind:        model.SearchKindProject,
					ID:          p.ID,
					Title:       p.Name,
					ProjectSlug: p.Slug,
				})
			}
			if len(hits) >= limit {
				return hits, nil
			}
		}
	}

	if slices.Contains(kinds, model.SearchKindTask) {
		tasks, err := s.stores.Tasks().Search(ctx, workspaceID, query, int32(limit-len(hits)))
		if err != nil {
			return nil, fmt.Errorf("searching tasks: %w", err)
		}
		hits = append(hits, tasks...)
	}
	return hits, nil
}
