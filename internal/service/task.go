package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

const (
	SourceImport      = "import"
	SourceIntegration = "integration"
)

type CreateTaskParams struct {
	Description *string
	Status      *string
	Priority    *model.Priority
	AssigneeID  *int64
	DueDate     *time.Time
	Title       string
	ProjectID   int64
	UserID      int64
}

// UpdateTaskParams replaces every mutable field of a task.
type UpdateTaskParams struct {
	Description *string
	AssigneeID  *int64
	DueDate     *time.Time
	Title       string
	Status      string
	Priority    model.Priority
}

type ImportTask struct {
	Description *string        `json:"description,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Title       string         `json:"title"`
	Status      string         `json:"status"`
	Priority    model.Priority `json:"priority"`
}

type ProjectExport struct {
	ExportedAt time.Time      `json:"exported_at"`
	Project    *model.Project `json:"project"`
	Columns    []model.Column `json:"columns"`
	Tasks      []model.Task   `json:"tasks"`
}

// ExternalTask is a tracker issue becoming a task. Link is stored in the same
// transaction; its ID and TaskID are filled in on insert.
type ExternalTask struct {
	Description *string
	Link        model.ExternalLink
	Title       string
	Closed      bool
}

// ExternalTaskChange is an issue change reported by an integrated tracker.
// Nil fields are left alone; ClearDescription empties the description.
type ExternalTaskChange struct {
	Title            *string
	Description      *string
	Closed           *bool
	ClearDescription bool
}

type TaskService interface {
	Create(ctx context.Context, params CreateTaskParams) (*model.Task, error)
	Get(ctx context.Context, taskID, userID int64) (*model.Task, error)
	ListBoard(ctx context.Context, projectID, userID int64, filter model.TaskFilter) (*model.Board, error)
	Update(ctx context.Context, taskID, userID int64, params UpdateTaskParams) (*model.Task, error)
	UpdateStatus(ctx context.Context, taskID, userID int64, status string) (*model.Task, error)
	UpdatePriority(ctx context.Context, taskID, userID int64, priority model.Priority) (*model.Task, error)
	UpdateAssignee(ctx context.Context, taskID, userID int64, assigneeID *int64) (*model.Task, error)
	UpdateDueDate(ctx context.Context, taskID, userID int64, dueDate *time.Time) (*model.Task, error)
	UpdateTitle(ctx context.Context, taskID, userID int64, title string) (*model.Task, error)
	UpdateDescription(ctx context.Context, taskID, userID int64, description *string) (*model.Task, error)
	Move(ctx context.Context, taskID, userID int64, status string, position int) (*model.Task, error)
	Delete(ctx context.Context, taskID, userID int64) error
	Export(ctx context.Context, projectID, userID int64) (*ProjectExport, error)
	Import(ctx context.Context, projectID, userID int64, tasks []ImportTask) ([]model.Task, error)

	// CreateExternal returns ErrConflict, and creates nothing, when the issue
	// is already linked.
	CreateExternal(ctx context.Context, projectID int64, ext ExternalTask) (*model.Task, error)
	// AdoptExternal links an existing task to an issue. A task created for the
	// same issue by a webhook echo is deleted in the same transaction.
	AdoptExternal(ctx context.Context, taskID int64, link model.ExternalLink) error
	ApplyExternal(ctx context.Context, taskID int64, change ExternalTaskChange) (*model.Task, error)
}

type taskService struct {
	stores   StoreProvider
	txRunner TxRunner
	events   eventEmitter
	access   access
}

func NewTaskService(stores StoreProvider, txRunner TxRunner, publisher EventPublisher) TaskService {
	return &taskService{
		stores:   stores,
		txRunner: txRunner,
		events:   newEventEmitter(publisher),
		access:   access{stores: stores},
	}
}

func (s *taskService) Create(ctx context.Context, params CreateTaskParams) (*model.Task, error) {
	project, _, err := s.access.project(ctx, params.ProjectID, params.UserID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ProjectID:   project.ID,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Priority:    model.PriorityNone,
		AssigneeID:  params.AssigneeID,
		DueDate:     params.DueDate,
		CreatedBy:   &params.UserID,
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	return s.create(ctx, project, task, &params.UserID, "", nil)
}

func (s *taskService) create(ctx context.Context, project *model.Project, task *model.Task, actorID *int64, source string, within func(StoreProvider) error) (*model.Task, error) {
	if task.Title == "" {
		return nil, invalid("title is required")
	}
	if !task.Priority.IsValid() {
		return nil, invalid("unknown priority %q", task.Priority)
	}
	if err := s.validateAssignee(ctx, project.WorkspaceID, task.AssigneeID); err != nil {
		return nil, err
	}

	columns, err := s.stores.Columns().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, invalid("project has no columns")
	}
	if task.Status == "" {
		task.Status = columns[0].Slug
	} else if findColumn(columns, task.Status) == nil {
		return nil, invalid("unknown status %q", task.Status)
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := insertTask(ctx, stores, task); err != nil {
			return err
		}
		if within != nil {
			return within(stores)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, taskEvent(model.EventTaskCreated, project.WorkspaceID, task, actorID), taskPayload(task, source))

	slog.InfoContext(ctx, "task created",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"number", task.Number,
	)
	return task, nil
}

// insertTask reserves the next task number and appends the task to the end
// of its column.
func insertTask(ctx context.Context, stores StoreProvider, task *model.Task) error {
	number, err := stores.Projects().NextTaskNumber(ctx, task.ProjectID)
	if err != nil {
		return fmt.Errorf("allocating task number: %w", err)
	}
	maxPos, err := stores.Tasks().MaxPosition(ctx, task.ProjectID, task.Status)
	if err != nil {
		return fmt.Errorf("getting column position: %w", err)
	}

	task.ID = id.New()
	task.Number = number
	task.Position = maxPos + 1
	if err := stores.Tasks().Create(ctx, task); err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

func (s *taskService) Get(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	task, _, err := s.access.task(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	labels, err := s.stores.Labels().ListByTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	task.Labels = labels
	return task, nil
}

func (s *taskService) ListBoard(ctx context.Context, projectID, userID int64, filter model.TaskFilter) (*model.Board, error) {
	project, _, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return loadBoard(ctx, s.stores, project, filter)
}

func (s *taskService) Update(ctx context.Context, taskID, userID int64, params UpdateTaskParams) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", true, func(t *model.Task) {
		t.Title = strings.TrimSpace(params.Title)
		t.Description = params.Description
		t.Status = params.Status
		t.Priority = params.Priority
		t.AssigneeID = params.AssigneeID
		t.DueDate = params.DueDate
	})
}

func (s *taskService) UpdateStatus(ctx context.Context, taskID, userID int64, status string) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.Status = status })
}

func (s *taskService) UpdatePriority(ctx context.Context, taskID, userID int64, priority model.Priority) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.Priority = priority })
}

func (s *taskService) UpdateAssignee(ctx context.Context, taskID, userID int64, assigneeID *int64) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.AssigneeID = assigneeID })
}

func (s *taskService) UpdateDueDate(ctx context.Context, taskID, userID int64, dueDate *time.Time) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.DueDate = dueDate })
}

func (s *taskService) UpdateTitle(ctx context.Context, taskID, userID int64, title string) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.Title = strings.TrimSpace(title) })
}

func (s *taskService) UpdateDescription(ctx context.Context, taskID, userID int64, description *string) (*model.Task, error) {
	return s.mutate(ctx, taskID, &userID, "", false, func(t *model.Task) { t.Description = description })
}

// mutate applies fn to the task, validates and persists the result and
// publishes one event per changed field. A nil actor means the change came
// from outside (integrations) and skips the membership check.
func (s *taskService) mutate(ctx context.Context, taskID int64, actorID *int64, source string, full bool, fn func(t *model.Task)) (*model.Task, error) {
	var (
		task    *model.Task
		project *model.Project
		err     error
	)
	if actorID != nil {
		task, project, err = s.access.task(ctx, taskID, *actorID)
	} else {
		task, project, err = s.loadTask(ctx, taskID)
	}
	if err != nil {
		return nil, err
	}

	before := *task
	fn(task)

	if task.Title == "" {
		return nil, invalid("title is required")
	}
	if !task.Priority.IsValid() {
		return nil, invalid("unknown priority %q", task.Priority)
	}
	if !equalInt64Ptr(before.AssigneeID, task.AssigneeID) {
		if err := s.validateAssignee(ctx, project.WorkspaceID, task.AssigneeID); err != nil {
			return nil, err
		}
	}

	changes := diffTask(&before, task)
	if len(changes) == 0 {
		return task, nil
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if before.Status != task.Status {
			columns, err := stores.Columns().ListByProject(ctx, task.ProjectID)
			if err != nil {
				return fmt.Errorf("listing columns: %w", err)
			}
			if findColumn(columns, task.Status) == nil {
				return invalid("unknown status %q", task.Status)
			}
			maxPos, err := stores.Tasks().MaxPosition(ctx, task.ProjectID, task.Status)
			if err != nil {
				return fmt.Errorf("getting column position: %w", err)
			}
			task.Position = maxPos + 1
		}
		if err := stores.Tasks().Update(ctx, task); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("updating task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range changes {
		s.events.emit(ctx, taskEvent(c.eventType, project.WorkspaceID, task, actorID), model.ChangePayload{
			Field:  c.field,
			Old:    c.old,
			New:    c.new,
			Title:  task.Title,
			Source: source,
		})
	}
	if full {
		s.events.emit(ctx, taskEvent(model.EventTaskUpdated, project.WorkspaceID, task, actorID), taskPayload(task, source))
	}
	return task, nil
}

func (s *taskService) Move(ctx context.Context, taskID, userID int64, status string, position int) (*model.Task, error) {
	task, project, err := s.access.task(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	oldStatus := task.Status

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		columns, err := stores.Columns().ListByProject(ctx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("listing columns: %w", err)
		}
		if findColumn(columns, status) == nil {
			return invalid("unknown status %q", status)
		}

		tasks, err := stores.Tasks().ListByProject(ctx, task.ProjectID)
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		for _, u := range planMove(tasks, task.ID, status, position) {
			if err := stores.Tasks().UpdatePosition(ctx, u.ID, u.Status, u.Position); err != nil {
				return fmt.Errorf("repositioning task: %w", err)
			}
			if u.ID == task.ID {
				task.Status = u.Status
				task.Position = u.Position
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != task.Status {
		s.events.emit(ctx, taskEvent(model.EventTaskStatusChanged, project.WorkspaceID, task, &userID), model.ChangePayload{
			Field: "status",
			Old:   oldStatus,
			New:   task.Status,
			Title: task.Title,
		})
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, userID int64) error {
	task, project, err := s.access.task(ctx, taskID, userID)
	if err != nil {
		return err
	}

	if err := s.stores.Tasks().Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	s.events.emit(ctx, taskEvent(model.EventTaskDeleted, project.WorkspaceID, task, &userID), taskPayload(task, ""))

	slog.InfoContext(ctx, "task deleted", "task_id", task.ID, "project_id", task.ProjectID)
	return nil
}

func (s *taskService) Export(ctx context.Context, projectID, userID int64) (*ProjectExport, error) {
	project, _, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	board, err := loadBoard(ctx, s.stores, project, model.TaskFilter{})
	if err != nil {
		return nil, err
	}

	export := &ProjectExport{
		ExportedAt: time.Now().UTC(),
		Project:    project,
		Columns:    make([]model.Column, 0, len(board.Columns)),
		Tasks:      []model.Task{},
	}
	for _, c := range board.Columns {
		export.Columns = append(export.Columns, c.Column)
		export.Tasks = append(export.Tasks, c.Tasks...)
	}
	return export, nil
}

// Import creates all tasks in one transaction. Unknown statuses fall back to
// the first column and unknown priorities to no-priority.
func (s *taskService) Import(ctx context.Context, projectID, userID int64, items []ImportTask) ([]model.Task, error) {
	project, _, err := s.access.project(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	columns, err := s.stores.Columns().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, invalid("project has no columns")
	}

	tasks := make([]model.Task, 0, len(items))
	for i, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			return nil, invalid("task %d has no title", i)
		}
		t := model.Task{
			ProjectID:   project.ID,
			Title:       title,
			Description: item.Description,
			Status:      item.Status,
			Priority:    item.Priority,
			DueDate:     item.DueDate,
			CreatedBy:   &userID,
		}
		if findColumn(columns, t.Status) == nil {
			t.Status = columns[0].Slug
		}
		if !t.Priority.IsValid() {
			t.Priority = model.PriorityNone
		}
		tasks = append(tasks, t)
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		for i := range tasks {
			if err := insertTask(ctx, stores, &tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		s.events.emit(ctx, taskEvent(model.EventTaskCreated, project.WorkspaceID, &tasks[i], &userID), taskPayload(&tasks[i], SourceImport))
	}

	slog.InfoContext(ctx, "tasks imported", "project_id", project.ID, "count", len(tasks))
	return tasks, nil
}

func (s *taskService) CreateExternal(ctx context.Context, projectID int64, ext ExternalTask) (*model.Task, error) {
	project, err := s.stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	task := &model.Task{
		ProjectID:   project.ID,
		Title:       strings.TrimSpace(ext.Title),
		Description: ext.Description,
		Priority:    model.PriorityNone,
	}
	if ext.Closed {
		columns, err := s.stores.Columns().ListByProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("listing columns: %w", err)
		}
		if c := finalColumn(columns); c != nil {
			task.Status = c.Slug
		}
	}

	link := ext.Link
	return s.create(ctx, project, task, nil, SourceIntegration, func(stores StoreProvider) error {
		link.ID = id.New()
		link.TaskID = task.ID
		if err := stores.ExternalLinks().Create(ctx, &link); err != nil {
			if store.IsUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("creating external link: %w", err)
		}
		return nil
	})
}

func (s *taskService) AdoptExternal(ctx context.Context, taskID int64, link model.ExternalLink) error {
	var duplicate *model.Task
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		existing, err := stores.ExternalLinks().GetByExternalID(ctx, link.IntegrationID, link.ExternalID)
		switch {
		case err == nil && existing.TaskID == taskID:
			return nil
		case err == nil:
			duplicate, err = stores.Tasks().GetByID(ctx, existing.TaskID)
			if err != nil {
				return fmt.Errorf("getting linked task: %w", err)
			}
			if err := stores.Tasks().Delete(ctx, duplicate.ID); err != nil {
				return fmt.Errorf("deleting duplicate task: %w", err)
			}
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("getting external link: %w", err)
		}

		link.ID = id.New()
		link.TaskID = taskID
		if err := stores.ExternalLinks().Create(ctx, &link); err != nil {
			switch {
			case store.IsUniqueViolation(err):
				return ErrConflict
			case store.IsForeignKeyViolation(err):
				return ErrNotFound
			}
			return fmt.Errorf("creating external link: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if duplicate != nil {
		project, err := s.stores.Projects().GetByID(ctx, duplicate.ProjectID)
		if err != nil {
			slog.WarnContext(ctx, "failed to load project of removed duplicate", "error", err, "task_id", duplicate.ID)
		} else {
			s.events.emit(ctx, taskEvent(model.EventTaskDeleted, project.WorkspaceID, duplicate, nil), taskPayload(duplicate, SourceIntegration))
		}
		slog.InfoContext(ctx, "duplicate task from webhook echo removed",
			"task_id", taskID,
			"duplicate_task_id", duplicate.ID,
			"issue", link.ExternalID,
		)
	}
	return nil
}

func (s *taskService) ApplyExternal(ctx context.Context, taskID int64, change ExternalTaskChange) (*model.Task, error) {
	var target string
	if change.Closed != nil {
		task, _, err := s.loadTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		columns, err := s.stores.Columns().ListByProject(ctx, task.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("listing columns: %w", err)
		}
		current := findColumn(columns, task.Status)
		isFinal := current != nil && current.IsFinal
		switch {
		case *change.Closed && !isFinal:
			if c := finalColumn(columns); c != nil {
				target = c.Slug
			}
		case !*change.Closed && isFinal && len(columns) > 0:
			target = columns[0].Slug
		}
	}

	return s.mutate(ctx, taskID, nil, SourceIntegration, false, func(t *model.Task) {
		if change.Title != nil && strings.TrimSpace(*change.Title) != "" {
			t.Title = strings.TrimSpace(*change.Title)
		}
		switch {
		case change.Description != nil:
			t.Description = change.Description
		case change.ClearDescription && t.Description != nil && *t.Description != "":
			t.Description = nil
		}
		if target != "" {
			t.Status = target
		}
	})
}

func (s *taskService) loadTask(ctx context.Context, taskID int64) (*model.Task, *model.Project, error) {
	task, err := s.stores.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("getting task: %w", err)
	}
	project, err := s.stores.Projects().GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting project: %w", err)
	}
	return task, project, nil
}

func (s *taskService) validateAssignee(ctx context.Context, workspaceID int64, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.access.member(ctx, workspaceID, *assigneeID); err != nil {
		if errors.Is(err, ErrForbidden) {
			return invalid("assignee is not a member of the workspace")
		}
		return err
	}
	return nil
}

type taskChange struct {
	old       any
	new       any
	eventType model.EventType
	field     string
}

// diffTask lists the changed fields in a stable order.
func diffTask(before, after *model.Task) []taskChange {
	var changes []taskChange
	if before.Status != after.Status {
		changes = append(changes, taskChange{eventType: model.EventTaskStatusChanged, field: "status", old: before.Status, new: after.Status})
	}
	if before.Priority != after.Priority {
		changes = append(changes, taskChange{eventType: model.EventTaskPriorityChanged, field: "priority", old: before.Priority, new: after.Priority})
	}
	if !equalInt64Ptr(before.AssigneeID, after.AssigneeID) {
		changes = append(changes, taskChange{eventType: model.EventTaskAssigneeChanged, field: "assignee_id", old: before.AssigneeID, new: after.AssigneeID})
	}
	if !equalTimePtr(before.DueDate, after.DueDate) {
		changes = append(changes, taskChange{eventType: model.EventTaskDueDateChanged, field: "due_date", old: before.DueDate, new: after.DueDate})
	}
	if before.Title != after.Title {
		changes = append(changes, taskChange{eventType: model.EventTaskTitleChanged, field: "title", old: before.Title, new: after.Title})
	}
	if !equalStringPtr(before.Description, after.Description) {
		changes = append(changes, taskChange{eventType: model.EventTaskDescriptionChanged, field: "description", old: before.Description, new: after.Description})
	}
	return changes
}

func taskPayload(task *model.Task, source string) model.TaskPayload {
	return model.TaskPayload{
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssigneeID:  task.AssigneeID,
		Number:      task.Number,
		Source:      source,
	}
}

func findColumn(columns []model.Column, slug string) *model.Column {
	for i := range columns {
		if columns[i].Slug == slug {
			return &columns[i]
		}
	}
	return nil
}

// finalColumn returns the first final column, or the last column when none
// is marked final.
func finalColumn(columns []model.Column) *model.Column {
	for i := range columns {
		if columns[i].IsFinal {
			return &columns[i]
		}
	}
	if len(columns) == 0 {
		return nil
	}
	return &columns[len(columns)-1]
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
