package search_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/search"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

type fakeProjects struct {
	store.ProjectStore
	byID  map[int64]*model.Project
	pages [][]model.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*model.Project, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeProjects) ListAfter(_ context.Context, _ int64, _ int32) ([]model.Project, error) {
	if len(f.pages) == 0 {
		return nil, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

type fakeTasks struct {
	store.TaskStore
	byID     map[int64]*model.Task
	docs     []model.TaskDocument
	afterIDs []int64
}

func (f *fakeTasks) GetByID(_ context.Context, id int64) (*model.Task, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeTasks) ListDocuments(_ context.Context, afterID int64, limit int32) ([]model.TaskDocument, error) {
	f.afterIDs = append(f.afterIDs, afterID)
	var out []model.TaskDocument
	for _, d := range f.docs {
		if d.ID > afterID && len(out) < int(limit) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeSource struct {
	projects *fakeProjects
	tasks    *fakeTasks
}

func (s fakeSource) Projects() store.ProjectStore { return s.projects }
func (s fakeSource) Tasks() store.TaskStore       { return s.tasks }

type recordingWriter struct {
	tasks           []model.TaskDocument
	projects        []model.Project
	deletedTasks    []int64
	deletedProjects []int64
}

func (w *recordingWriter) UpsertTask(_ context.Context, doc model.TaskDocument) error {
	w.tasks = append(w.tasks, doc)
	return nil
}

func (w *recordingWriter) DeleteTask(_ context.Context, taskID int64) error {
	w.deletedTasks = append(w.deletedTasks, taskID)
	return nil
}

func (w *recordingWriter) UpsertProject(_ context.Context, project model.Project) error {
	w.projects = append(w.projects, project)
	return nil
}

func (w *recordingWriter) DeleteProject(_ context.Context, projectID int64) error {
	w.deletedProjects = append(w.deletedProjects, projectID)
	return nil
}

var _ = Describe("Indexer", func() {
	var (
		ctx      context.Context
		projects *fakeProjects
		tasks    *fakeTasks
		writer   *recordingWriter
		indexer  *search.Indexer
		updated  time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		updated = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		desc := "fails on safari"
		projects = &fakeProjects{byID: map[int64]*model.Project{
			20: {ID: 20, WorkspaceID: 10, Name: "Web", Slug: "web"},
		}}
		tasks = &fakeTasks{byID: map[int64]*model.Task{
			30: {
				ID:          30,
				ProjectID:   20,
				Number:      7,
				Title:       "Login broken",
				Description: &desc,
				Status:      "in-progress",
				Priority:    model.PriorityHigh,
				UpdatedAt:   updated,
			},
		}}
		writer = &recordingWriter{}
		indexer = search.NewIndexer(fakeSource{projects: projects, tasks: tasks}, writer)
	})

	event := func(t model.EventType, projectID, taskID int64) model.Event {
		e := model.Event{ID: 1, Type: t, WorkspaceID: 10}
		if projectID != 0 {
			e.ProjectID = &projectID
		}
		if taskID != 0 {
			e.TaskID = &taskID
		}
		return e
	}

	Describe("HandleEvent", func() {
		It("upserts the current task state with its project slug", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventTaskStatusChanged, 20, 30))).To(Succeed())

			Expect(writer.tasks).To(HaveLen(1))
			doc := writer.tasks[0]
			Expect(doc.ID).To(Equal(int64(30)))
			Expect(doc.WorkspaceID).To(Equal(int64(10)))
			Expect(doc.ProjectSlug).To(Equal("web"))
			Expect(doc.Status).To(Equal("in-progress"))
			Expect(doc.Priority).To(Equal("high"))
			Expect(*doc.Description).To(Equal("fails on safari"))
			Expect(doc.UpdatedAt).To(Equal(updated))
		})

		It("deletes the document of a task that no longer exists", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventTaskTitleChanged, 20, 31))).To(Succeed())
			Expect(writer.tasks).To(BeEmpty())
			Expect(writer.deletedTasks).To(Equal([]int64{31}))
		})

		It("deletes on task.deleted without reading the task", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventTaskDeleted, 20, 30))).To(Succeed())
			Expect(writer.deletedTasks).To(Equal([]int64{30}))
		})

		It("upserts projects on create and update", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventProjectCreated, 20, 0))).To(Succeed())
			Expect(indexer.HandleEvent(ctx, event(model.EventProjectUpdated, 20, 0))).To(Succeed())
			Expect(writer.projects).To(HaveLen(2))
			Expect(writer.projects[0].Slug).To(Equal("web"))
		})

		It("drops the project and its tasks on project.deleted", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventProjectDeleted, 20, 0))).To(Succeed())
			Expect(writer.deletedProjects).To(Equal([]int64{20}))
		})

		It("ignores events without the ids it needs", func() {
			Expect(indexer.HandleEvent(ctx, event(model.EventTaskCreated, 20, 0))).To(Succeed())
			Expect(indexer.HandleEvent(ctx, event(model.EventProjectCreated, 0, 0))).To(Succeed())
			Expect(writer.tasks).To(BeEmpty())
			Expect(writer.projects).To(BeEmpty())
		})
	})

	Describe("Reindex", func() {
		It("pages through projects and tasks", func() {
			projects.pages = [][]model.Project{{{ID: 20, WorkspaceID: 10}, {ID: 21, WorkspaceID: 10}}}
			tasks.docs = []model.TaskDocument{{ID: 30}, {ID: 31}, {ID: 32}}

			stats, err := indexer.Reindex(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats).To(Equal(search.ReindexStats{Projects: 2, Tasks: 3}))
			Expect(writer.tasks).To(HaveLen(3))
			Expect(tasks.afterIDs).To(Equal([]int64{0}))
		})
	})
})
