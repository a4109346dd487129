package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/internal/model"
)

const (
	TasksCollection    = "tasks"
	ProjectsCollection = "projects"
)

// Documents keep ids as strings: typesense requires a string "id", and the
// client decodes hits into map[string]any, which would round snowflake ids
// through float64.
type taskDocument struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	ProjectID   string `json:"project_id"`
	ProjectSlug string `json:"project_slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	UpdatedAt   int64  `json:"updated_at"`
	Number      int32  `json:"number"`
}

type projectDocument struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

var collectionSchemas = []api.CollectionSchema{
	{
		Name: TasksCollection,
		Fields: []api.Field{
			{Name: "workspace_id", Type: "string", Facet: pointer.True()},
			{Name: "project_id", Type: "string", Facet: pointer.True()},
			{Name: "project_slug", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "status", Type: "string", Facet: pointer.True()},
			{Name: "priority", Type: "string", Facet: pointer.True()},
			{Name: "number", Type: "int32"},
			{Name: "updated_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("updated_at"),
	},
	{
		Name: ProjectsCollection,
		Fields: []api.Field{
			{Name: "workspace_id", Type: "string", Facet: pointer.True()},
			{Name: "name", Type: "string"},
			{Name: "slug", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
		},
	},
}

// Index is the typesense-backed task and project index.
type Index struct {
	client *typesense.Client
}

func New(cfg config.TypesenseConfig) *Index {
	return &Index{
		client: typesense.NewClient(
			typesense.WithServer(cfg.URL),
			typesense.WithAPIKey(cfg.APIKey),
			typesense.WithConnectionTimeout(5*time.Second),
		),
	}
}

// EnsureCollections creates the collections that do not exist yet.
func (i *Index) EnsureCollections(ctx context.Context) error {
	for _, schema := range collectionSchemas {
		_, err := i.client.Collection(schema.Name).Retrieve(ctx)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return fmt.Errorf("retrieving collection %s: %w", schema.Name, err)
		}

		if _, err := i.client.Collections().Create(ctx, &schema); err != nil {
			return fmt.Errorf("creating collection %s: %w", schema.Name, err)
		}
		slog.InfoContext(ctx, "search collection created", "collection", schema.Name)
	}
	return nil
}

func (i *Index) UpsertTask(ctx context.Context, doc model.TaskDocument) error {
	if _, err := i.client.Collection(TasksCollection).Documents().Upsert(ctx, toTaskDocument(doc), &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("upserting task %d: %w", doc.ID, err)
	}
	return nil
}

func (i *Index) DeleteTask(ctx context.Context, taskID int64) error {
	_, err := i.client.Collection(TasksCollection).Document(strconv.FormatInt(taskID, 10)).Delete(ctx)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting task %d: %w", taskID, err)
	}
	return nil
}

func (i *Index) UpsertProject(ctx context.Context, project model.Project) error {
	if _, err := i.client.Collection(ProjectsCollection).Documents().Upsert(ctx, toProjectDocument(project), &api.DocumentIndexParameters{}); err != nil {
		return fmt.Errorf("upserting project %d: %w", project.ID, err)
	}
	return nil
}

// DeleteProject removes the project and every task document of it.
func (i *Index) DeleteProject(ctx context.Context, projectID int64) error {
	id := strconv.FormatInt(projectID, 10)
	if _, err := i.client.Collection(TasksCollection).Documents().Delete(ctx, &api.DeleteDocumentsParams{
		FilterBy: pointer.String(exactFilter("project_id", id)),
	}); err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting tasks of project %d: %w", projectID, err)
	}
	if _, err := i.client.Collection(ProjectsCollection).Document(id).Delete(ctx); err != nil && !isNotFound(err) {
		return fmt.Errorf("deleting project %d: %w", projectID, err)
	}
	return nil
}

// Search queries the requested collections of one workspace. Project hits
// come first, then task hits, each in typesense relevance order.
func (i *Index) Search(ctx context.Context, workspaceID int64, query string, kinds []model.SearchKind, limit int) ([]model.SearchHit, error) {
	hits := []model.SearchHit{}
	filter := exactFilter("workspace_id", strconv.FormatInt(workspaceID, 10))

	if slices.Contains(kinds, model.SearchKindProject) {
		docs, err := i.search(ctx, ProjectsCollection, &api.SearchCollectionParams{
			Q:        pointer.String(query),
			QueryBy:  pointer.String("name,slug,description"),
			FilterBy: pointer.String(filter),
			PerPage:  pointer.Int(limit),
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range docs {
			hit, err := projectHit(raw)
			if err != nil {
				return nil, err
			}
			hits = append(hits, hit)
		}
	}

	if slices.Contains(kinds, model.SearchKindTask) && len(hits) < limit {
		docs, err := i.search(ctx, TasksCollection, &api.SearchCollectionParams{
			Q:        pointer.String(query),
			QueryBy:  pointer.String("title,description"),
			FilterBy: pointer.String(filter),
			PerPage:  pointer.Int(limit - len(hits)),
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range docs {
			hit, err := taskHit(raw)
			if err != nil {
				return nil, err
			}
			hits = append(hits, hit)
		}
	}

	return hits, nil
}

func (i *Index) search(ctx context.Context, collection string, params *api.SearchCollectionParams) ([]map[string]any, error) {
	result, err := i.client.Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", collection, err)
	}
	if result.Hits == nil {
		return nil, nil
	}

	docs := make([]map[string]any, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document != nil {
			docs = append(docs, *hit.Document)
		}
	}
	return docs, nil
}

func toTaskDocument(doc model.TaskDocument) taskDocument {
	out := taskDocument{
		ID:          strconv.FormatInt(doc.ID, 10),
		WorkspaceID: strconv.FormatInt(doc.WorkspaceID, 10),
		ProjectID:   strconv.FormatInt(doc.ProjectID, 10),
		ProjectSlug: doc.ProjectSlug,
		Title:       doc.Title,
		Status:      doc.Status,
		Priority:    doc.Priority,
		Number:      doc.Number,
		UpdatedAt:   doc.UpdatedAt.Unix(),
	}
	if doc.Description != nil {
		out.Description = *doc.Description
	}
	return out
}

func toProjectDocument(p model.Project) projectDocument {
	out := projectDocument{
		ID:          strconv.FormatInt(p.ID, 10),
		WorkspaceID: strconv.FormatInt(p.WorkspaceID, 10),
		Name:        p.Name,
		Slug:        p.Slug,
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	return out
}

func taskHit(raw map[string]any) (model.SearchHit, error) {
	var doc taskDocument
	if err := redecode(raw, &doc); err != nil {
		return model.SearchHit{}, fmt.Errorf("decoding task hit: %w", err)
	}
	id, err := strconv.ParseInt(doc.ID, 10, 64)
	if err != nil {
		return model.SearchHit{}, fmt.Errorf("parsing task id %q: %w", doc.ID, err)
	}
	projectID, err := strconv.ParseInt(doc.ProjectID, 10, 64)
	if err != nil {
		return model.SearchHit{}, fmt.Errorf("parsing project id %q: %w", doc.ProjectID, err)
	}
	return model.SearchHit{
		Kind:        model.SearchKindTask,
		ID:          id,
		ProjectID:   projectID,
		Number:      doc.Number,
		Title:       doc.Title,
		Status:      doc.Status,
		Priority:    doc.Priority,
		ProjectSlug: doc.ProjectSlug,
	}, nil
}

func projectHit(raw map[string]any) (model.SearchHit, error) {
	var doc projectDocument
	if err := redecode(raw, &doc); err != nil {
		return model.SearchHit{}, fmt.Errorf("decoding project hit: %w", err)
	}
	id, err := strconv.ParseInt(doc.ID, 10, 64)
	if err != nil {
		return model.SearchHit{}, fmt.Errorf("parsing project id %q: %w", doc.ID, err)
	}
	return model.SearchHit{
		Kind:        model.SearchKindProject,
		ID:          id,
		Title:       doc.Name,
		ProjectSlug: doc.Slug,
	}, nil
}

func redecode(raw map[string]any, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// exactFilter builds a typesense exact-match filter. Values are backquoted so
// they are never parsed as filter syntax.
func exactFilter(field, value string) string {
	return field + ":=`" + value + "`"
}

func isNotFound(err error) bool {
	var httpErr *typesense.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
