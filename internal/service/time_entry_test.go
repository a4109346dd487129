package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

var _ = Describe("TimeEntryService", func() {
	const (
		workspaceID = int64(10)
		projectID   = int64(20)
		taskID      = int64(30)
		userID      = int64(3)
		otherID     = int64(5)
	)

	var (
		ctx       context.Context
		stores    *mockStoreProvider
		publisher *mockPublisher
		svc       service.TimeEntryService
		start     time.Time
		entry     *model.TimeEntry
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		publisher = &mockPublisher{}
		svc = service.NewTimeEntryService(stores, publisher)
		start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		withProject(stores, &model.Project{ID: projectID, WorkspaceID: workspaceID})
		withMembers(stores, workspaceID, map[int64]model.MemberRole{
			userID:  model.MemberRoleMember,
			otherID: model.MemberRoleMember,
		})
		stores.tasks.getByIDFn = func(_ context.Context, id int64) (*model.Task, error) {
			if id != taskID {
				return nil, store.ErrNotFound
			}
			return &model.Task{ID: taskID, ProjectID: projectID}, nil
		}
		entry = &model.TimeEntry{ID: 40, TaskID: taskID, UserID: userID, StartedAt: start}
		stores.timeEntries.getByIDFn = func(_ context.Context, id int64) (*model.TimeEntry, error) {
			if id != entry.ID {
				return nil, store.ErrNotFound
			}
			e := *entry
			return &e, nil
		}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("computes the duration of a finished entry and emits time_entry.created", func() {
			end := start.Add(90 * time.Minute)
			e, err := svc.Create(ctx, service.CreateTimeEntryParams{
				TaskID: taskID, UserID: userID, StartedAt: start, EndedAt: &end,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.DurationSeconds).To(Equal(int64(5400)))

			Expect(publisher.types()).To(Equal([]model.EventType{model.EventTimeEntryCreated}))
			var payload model.TimeEntryPayload
			Expect(json.Unmarshal(publisher.events[0].Payload, &payload)).To(Succeed())
			Expect(payload.TimeEntryID).To(Equal(e.ID))
			Expect(payload.DurationSeconds).To(Equal(int64(5400)))
		})

		It("starts a running timer now when no start is given", func() {
			e, err := svc.Create(ctx, service.CreateTimeEntryParams{TaskID: taskID, UserID: userID})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.IsRunning()).To(BeTrue())
			Expect(e.StartedAt).To(BeTemporally("~", time.Now(), time.Minute))
			Expect(e.DurationSeconds).To(BeZero())
		})

		It("rejects an end before the start", func() {
			end := start.Add(-time.Minute)
			_, err := svc.Create(ctx, service.CreateTimeEntryParams{
				TaskID: taskID, UserID: userID, StartedAt: start, EndedAt: &end,
			})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
			Expect(publisher.events).To(BeEmpty())
		})
	})

	Describe("Stop", func() {
		It("ends a running entry", func() {
			var saved *model.TimeEntry
			stores.timeEntries.updateFn = func(_ context.Context, e *model.TimeEntry) error {
				saved = e
				return nil
			}

			e, err := svc.Stop(ctx, entry.ID, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.EndedAt).NotTo(BeNil())
			Expect(saved.DurationSeconds).To(Equal(int64(e.EndedAt.Sub(start) / time.Second)))
		})

		It("conflicts on stopped entries", func() {
			end := start.Add(time.Hour)
			entry.EndedAt = &end
			_, err := svc.Stop(ctx, entry.ID, userID)
			Expect(errors.Is(err, service.ErrConflict)).To(BeTrue())
		})

		It("belongs to the entry owner", func() {
			_, err := svc.Stop(ctx, entry.ID, otherID)
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Update", func() {
		It("recomputes the duration", func() {
			end := start.Add(30 * time.Minute)
			e, err := svc.Update(ctx, entry.ID, userID, service.UpdateTimeEntryParams{EndedAt: &end, Description: strPtr("pairing")})
			Expect(err).NotTo(HaveOccurred())
			Expect(e.DurationSeconds).To(Equal(int64(1800)))
			Expect(*e.Description).To(Equal("pairing"))
		})
	})

	Describe("Delete", func() {
		It("reports missing entries", func() {
			Expect(svc.Delete(ctx, 999, userID)).To(MatchError(service.ErrNotFound))
		})
	})
})
