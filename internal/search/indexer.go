package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const reindexBatchSize = 500

// Writer is the write side of the index. *Index satisfies it.
type Writer interface {
	UpsertTask(ctx context.Context, doc model.TaskDocument) error
	DeleteTask(ctx context.Context, taskID int64) error
	UpsertProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, projectID int64) error
}

type Source interface {
	Projects() store.ProjectStore
	Tasks() store.TaskStore
}

// Indexer keeps the index in step with task and project events.
type Indexer struct {
	source Source
	writer Writer
}

func NewIndexer(source Source, writer Writer) *Indexer {
	return &Indexer{source: source, writer: writer}
}

// EventTypes lists the events HandleEvent reacts to.
func (ix *Indexer) EventTypes() []model.EventType {
	return []model.EventType{
		model.EventTaskCreated,
		model.EventTaskUpdated,
		model.EventTaskStatusChanged,
		model.EventTaskPriorityChanged,
		model.EventTaskAssigneeChanged,
		model.EventTaskDueDateChanged,
		model.EventTaskTitleChanged,
		model.EventTaskDescriptionChanged,
		model.EventTaskDeleted,
		model.EventProjectCreated,
		model.EventProjectUpdated,
		model.EventProjectDeleted,
	}
}

// HandleEvent re-reads the entity from the database and writes its current
// state, so redelivered or reordered events converge on the same document.
func (ix *Indexer) HandleEvent(ctx context.Context, event model.Event) error {
	switch event.Type {
	case model.EventProjectCreated, model.EventProjectUpdated:
		if event.ProjectID == nil {
			return nil
		}
		project, err := ix.source.Projects().GetByID(ctx, *event.ProjectID)
		if errors.Is(err, store.ErrNotFound) {
			return ix.writer.DeleteProject(ctx, *event.ProjectID)
		}
		if err != nil {
			return fmt.Errorf("getting project: %w", err)
		}
		return ix.writer.UpsertProject(ctx, *project)

	case model.EventProjectDeleted:
		if event.ProjectID == nil {
			return nil
		}
		return ix.writer.DeleteProject(ctx, *event.ProjectID)

	case model.EventTaskDeleted:
		if event.TaskID == nil {
			return nil
		}
		return ix.writer.DeleteTask(ctx, *event.TaskID)
	}

	if event.TaskID == nil {
		return nil
	}
	doc, err := ix.taskDocument(ctx, *event.TaskID)
	if errors.Is(err, store.ErrNotFound) {
		slog.DebugContext(ctx, "task gone before indexing", "task_id", *event.TaskID)
		return ix.writer.DeleteTask(ctx, *event.TaskID)
	}
	if err != nil {
		return err
	}
	return ix.writer.UpsertTask(ctx, doc)
}

func (ix *Indexer) taskDocument(ctx context.Context, taskID int64) (model.TaskDocument, error) {
	task, err := ix.source.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return model.TaskDocument{}, fmt.Errorf("getting task: %w", err)
	}
	project, err := ix.source.Projects().GetByID(ctx, task.ProjectID)
	if err != nil {
		return model.TaskDocument{}, fmt.Errorf("getting project: %w", err)
	}
	return model.TaskDocument{
		ID:          task.ID,
		ProjectID:   project.ID,
		WorkspaceID: project.WorkspaceID,
		Number:      task.Number,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    string(task.Priority),
		ProjectSlug: project.Slug,
		UpdatedAt:   task.UpdatedAt,
	}, nil
}

type ReindexStats struct {
	Projects int
	Tasks    int
}

// Reindex writes every project and task in id order. Existing documents are
// overwritten; documents of deleted rows are left alone.
func (ix *Indexer) Reindex(ctx context.Context) (ReindexStats, error) {
	var stats ReindexStats

	var afterID int64
	for {
		projects, err := ix.source.Projects().ListAfter(ctx, afterID, reindexBatchSize)
		if err != nil {
			return stats, fmt.Errorf("listing projects: %w", err)
		}
		for _, p := range projects {
			if err := ix.writer.UpsertProject(ctx, p); err != nil {
				return stats, err
			}
			stats.Projects++
			afterID = p.ID
		}
		if len(projects) < reindexBatchSize {
			break
		}
	}

	afterID = 0
	for {
		docs, err := ix.source.Tasks().ListDocuments(ctx, afterID, reindexBatchSize)
		if err != nil {
			return stats, fmt.Errorf("listing tasks: %w", err)
		}
		for _, doc := range docs {
			if err := ix.writer.UpsertTask(ctx, doc); err != nil {
				return stats, err
			}
			stats.Tasks++
			afterID = doc.ID
		}
		if len(docs) < reindexBatchSize {
			break
		}
		slog.InfoContext(ctx, "reindex progress", "tasks", stats.Tasks)
	}

	return stats, nil
}
