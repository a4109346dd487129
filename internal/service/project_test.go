package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

var _ = Describe("ProjectService", func() {
	const (
		workspaceID = int64(10)
		projectID   = int64(20)
		adminID     = int64(2)
		memberID    = int64(3)
		outsiderID  = int64(4)
	)

	var (
		ctx       context.Context
		stores    *mockStoreProvider
		txRunner  *mockTxRunner
		publisher *mockPublisher
		svc       service.ProjectService
		project   *model.Project
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		txRunner = &mockTxRunner{stores: stores}
		publisher = &mockPublisher{}
		svc = service.NewProjectService(stores, txRunner, publisher)

		project = &model.Project{ID: projectID, WorkspaceID: workspaceID, Name: "Website", Slug: "website"}
		withProject(stores, project)
		withMembers(stores, workspaceID, map[int64]model.MemberRole{
			adminID:  model.MemberRoleAdmin,
			memberID: model.MemberRoleMember,
		})

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("seeds the default columns and emits project.created", func() {
			var columns []*model.Column
			stores.columns.createFn = func(_ context.Context, c *model.Column) error {
				columns = append(columns, c)
				return nil
			}

			p, err := svc.Create(ctx, service.CreateProjectParams{
				Name: "Mobile App", WorkspaceID: workspaceID, UserID: memberID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Slug).To(Equal("mobile-app"))
			Expect(txRunner.calls).To(Equal(1))

			Expect(columns).To(HaveLen(len(model.DefaultColumns)))
			for i, c := range columns {
				Expect(c.ProjectID).To(Equal(p.ID))
				Expect(c.Position).To(Equal(int32(i)))
				Expect(c.Slug).To(Equal(model.DefaultColumns[i].Slug))
			}
			Expect(columns[len(columns)-1].IsFinal).To(BeTrue())

			Expect(publisher.types()).To(Equal([]model.EventType{model.EventProjectCreated}))
			Expect(*publisher.events[0].ProjectID).To(Equal(p.ID))
		})

		It("uses an explicit slug and suffixes it within the workspace", func() {
			stores.projects.getBySlugFn = func(_ context.Context, wsID int64, slug string) (*model.Project, error) {
				Expect(wsID).To(Equal(workspaceID))
				if slug == "web" {
					return &model.Project{}, nil
				}
				return nil, store.ErrNotFound
			}

			p, err := svc.Create(ctx, service.CreateProjectParams{
				Name: "Website", Slug: strPtr("Web"), WorkspaceID: workspaceID, UserID: memberID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Slug).To(Equal("web-1"))
		})

		It("rejects non-members", func() {
			_, err := svc.Create(ctx, service.CreateProjectParams{
				Name: "Website", WorkspaceID: workspaceID, UserID: outsiderID,
			})
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(publisher.events).To(BeEmpty())
		})
	})

	Describe("List", func() {
		It("attaches task statistics", func() {
			stores.workspaces.getByIDFn = func(_ context.Context, id int64) (*model.Workspace, error) {
				return &model.Workspace{ID: id}, nil
			}
			stores.projects.listByWorkspaceFn = func(_ context.Context, _ int64) ([]model.Project, error) {
				return []model.Project{*project, {ID: 21, WorkspaceID: workspaceID}}, nil
			}
			stores.projects.statsByWorkspaceFn = func(_ context.Context, _ int64) (map[int64]model.ProjectStats, error) {
				return map[int64]model.ProjectStats{projectID: {Total: 5, Completed: 2}}, nil
			}

			summaries, err := svc.List(ctx, workspaceID, memberID)
			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].Stats).To(Equal(model.ProjectStats{Total: 5, Completed: 2}))
			Expect(summaries[1].Stats).To(BeZero())
		})
	})

	Describe("GetPublic", func() {
		It("hides private projects", func() {
			_, err := svc.GetPublic(ctx, projectID)
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("returns the board of public projects", func() {
			project.IsPublic = true
			stores.columns.listByProjectFn = func(_ context.Context, id int64) ([]model.Column, error) {
				return defaultColumns(id), nil
			}
			stores.tasks.listByProjectFn = func(_ context.Context, _ int64) ([]model.Task, error) {
				return []model.Task{{ID: 1, Status: "done", Title: "Launch"}}, nil
			}

			board, err := svc.GetPublic(ctx, projectID)
			Expect(err).NotTo(HaveOccurred())
			Expect(board.Project.ID).To(Equal(projectID))
			Expect(board.Columns[3].Tasks).To(HaveLen(1))
		})
	})

	Describe("Delete", func() {
		It("requires a manager and emits project.deleted", func() {
			Expect(svc.Delete(ctx, projectID, memberID)).To(MatchError(service.ErrForbidden))
			Expect(publisher.events).To(BeEmpty())

			Expect(svc.Delete(ctx, projectID, adminID)).To(Succeed())
			Expect(publisher.types()).To(Equal([]model.EventType{model.EventProjectDeleted}))
		})
	})

	Describe("Columns", func() {
		var columns []model.Column

		BeforeEach(func() {
			columns = defaultColumns(projectID)
			stores.columns.listByProjectFn = func(_ context.Context, _ int64) ([]model.Column, error) {
				return columns, nil
			}
			stores.columns.getByIDFn = func(_ context.Context, id int64) (*model.Column, error) {
				for _, c := range columns {
					if c.ID == id {
						c := c
						return &c, nil
					}
				}
				return nil, store.ErrNotFound
			}
		})

		It("appends new columns with a unique slug", func() {
			c, err := svc.CreateColumn(ctx, projectID, memberID, "Done", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Slug).To(Equal("done-1"))
			Expect(c.Position).To(Equal(int32(len(columns))))
			Expect(c.IsFinal).To(BeTrue())
		})

		It("keeps the slug when renaming", func() {
			c, err := svc.UpdateColumn(ctx, 100, memberID, service.UpdateColumnParams{Name: strPtr("Backlog")})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal("Backlog"))
			Expect(c.Slug).To(Equal("to-do"))
		})

		It("refuses to delete columns that still hold tasks", func() {
			stores.columns.countTasksFn = func(_ context.Context, _ int64, status string) (int64, error) {
				Expect(status).To(Equal("in-progress"))
				return 2, nil
			}
			err := svc.DeleteColumn(ctx, 101, memberID)
			Expect(errors.Is(err, service.ErrConflict)).To(BeTrue())
		})

		It("renumbers the remaining columns after a delete", func() {
			positions := map[int64]int32{}
			stores.columns.deleteFn = func(_ context.Context, id int64) error {
				columns = append(columns[:1:1], columns[2:]...)
				return nil
			}
			stores.columns.updatePositionFn = func(_ context.Context, id int64, position int32) error {
				positions[id] = position
				return nil
			}

			Expect(svc.DeleteColumn(ctx, 101, memberID)).To(Succeed())
			Expect(positions).To(Equal(map[int64]int32{102: 1, 103: 2}))
		})

		It("reorders columns by a permutation of their ids", func() {
			positions := map[int64]int32{}
			stores.columns.updatePositionFn = func(_ context.Context, id int64, position int32) error {
				positions[id] = position
				return nil
			}

			out, err := svc.ReorderColumns(ctx, projectID, memberID, []int64{103, 100, 101, 102})
			Expect(err).NotTo(HaveOccurred())
			Expect(out[0].Slug).To(Equal("done"))
			Expect(positions).To(Equal(map[int64]int32{103: 0, 100: 1, 101: 2, 102: 3}))
		})

		It("rejects incomplete or duplicated orderings", func() {
			_, err := svc.ReorderColumns(ctx, projectID, memberID, []int64{100, 101})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())

			_, err = svc.ReorderColumns(ctx, projectID, memberID, []int64{100, 100, 101, 102})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())

			_, err = svc.ReorderColumns(ctx, projectID, memberID, []int64{100, 101, 102, 999})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})
	})
})
