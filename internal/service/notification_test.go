package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
)

var _ = Describe("NotificationService", func() {
	const (
		taskID     = int64(30)
		actorID    = int64(3)
		assigneeID = int64(1234567890123456789)
	)

	var (
		ctx     context.Context
		stores  *mockStoreProvider
		svc     service.NotificationService
		created []*model.Notification
		task    *model.Task
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		svc = service.NewNotificationService(stores)

		created = nil
		stores.notifications.createFn = func(_ context.Context, n *model.Notification) (bool, error) {
			created = append(created, n)
			return true, nil
		}
		task = &model.Task{ID: taskID, AssigneeID: int64Ptr(assigneeID)}
		stores.tasks.getByIDFn = func(_ context.Context, _ int64) (*model.Task, error) {
			t := *task
			return &t, nil
		}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	It("notifies the new assignee with full id precision", func() {
		n, err := svc.Notify(ctx, eventWith(model.EventTaskAssigneeChanged, int64Ptr(taskID), int64Ptr(actorID), model.ChangePayload{
			Field: "assignee_id", New: int64Ptr(assigneeID), Title: "Fix login",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(created[0].UserID).To(Equal(assigneeID))
		Expect(created[0].Type).To(Equal(model.NotificationTypeTaskAssigned))
		Expect(*created[0].Content).To(Equal("Fix login"))
		Expect(*created[0].ResourceID).To(Equal(taskID))
		Expect(*created[0].EventID).To(Equal(int64(9001)))
	})

	It("does not notify users about their own changes", func() {
		n, err := svc.Notify(ctx, eventWith(model.EventTaskAssigneeChanged, int64Ptr(taskID), int64Ptr(actorID), model.ChangePayload{
			New: int64Ptr(actorID),
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(created).To(BeEmpty())
	})

	It("notifies the current assignee about status changes and comments", func() {
		_, err := svc.Notify(ctx, eventWith(model.EventTaskStatusChanged, int64Ptr(taskID), int64Ptr(actorID), model.ChangePayload{
			Old: "to-do", New: "done", Title: "Fix login",
		}))
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.Notify(ctx, eventWith(model.EventCommentCreated, int64Ptr(taskID), int64Ptr(actorID), model.CommentPayload{
			Content: "ping",
		}))
		Expect(err).NotTo(HaveOccurred())

		Expect(created).To(HaveLen(2))
		Expect(created[0].Type).To(Equal(model.NotificationTypeTaskStatusChanged))
		Expect(*created[0].Content).To(Equal("Fix login moved from to-do to done"))
		Expect(created[1].Type).To(Equal(model.NotificationTypeTaskComment))
		Expect(*created[1].Content).To(Equal("ping"))
	})

	It("skips unassigned tasks", func() {
		task.AssigneeID = nil
		n, err := svc.Notify(ctx, eventWith(model.EventCommentCreated, int64Ptr(taskID), int64Ptr(actorID), model.CommentPayload{}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("welcomes members who joined through an invitation", func() {
		n, err := svc.Notify(ctx, eventWith(model.EventMemberAdded, nil, int64Ptr(actorID), model.MemberPayload{
			UserID: actorID, WorkspaceName: "Acme", Role: model.MemberRoleMember,
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(created[0].Title).To(Equal("Welcome to Acme"))
		Expect(*created[0].ResourceID).To(Equal(int64(10)))
	})

	It("counts only newly created notifications", func() {
		stores.notifications.createFn = func(_ context.Context, _ *model.Notification) (bool, error) {
			return false, nil
		}
		n, err := svc.Notify(ctx, eventWith(model.EventTaskAssigneeChanged, int64Ptr(taskID), nil, model.ChangePayload{
			New: int64Ptr(assigneeID),
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("ignores events without notification rules", func() {
		n, err := svc.Notify(ctx, eventWith(model.EventTaskPriorityChanged, int64Ptr(taskID), nil, model.ChangePayload{}))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
	})

	It("clamps the list limit", func() {
		var limit int32
		stores.notifications.listByUserFn = func(_ context.Context, _ int64, _ bool, l int32) ([]model.Notification, error) {
			limit = l
			return nil, nil
		}
		_, err := svc.List(ctx, actorID, false, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(limit).To(Equal(int32(service.DefaultNotificationLimit)))

		_, err = svc.List(ctx, actorID, true, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(limit).To(Equal(int32(10)))
	})
})
