package worker_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/worker"
)

var _ = Describe("Dispatcher", func() {
	var (
		ctx        context.Context
		dispatcher *worker.Dispatcher
		calls      []string
	)

	record := func(name string, err error) worker.Subscriber {
		return func(context.Context, model.Event) error {
			calls = append(calls, name)
			return err
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		dispatcher = worker.NewDispatcher()
		calls = nil
	})

	It("runs subscribers of the event type in registration order", func() {
		dispatcher.Subscribe("first", record("first", nil), model.EventTaskCreated)
		dispatcher.Subscribe("second", record("second", nil), model.EventTaskCreated, model.EventTaskDeleted)
		dispatcher.Subscribe("other", record("other", nil), model.EventCommentCreated)

		Expect(dispatcher.Dispatch(ctx, model.Event{Type: model.EventTaskCreated})).To(Succeed())
		Expect(calls).To(Equal([]string{"first", "second"}))
		Expect(dispatcher.Subscribers(model.EventTaskDeleted)).To(Equal([]string{"second"}))
	})

	It("succeeds when nobody listens", func() {
		Expect(dispatcher.Dispatch(ctx, model.Event{Type: model.EventProjectDeleted})).To(Succeed())
	})

	It("keeps going after a failure and joins the errors", func() {
		boom := errors.New("boom")
		dispatcher.Subscribe("failing", record("failing", boom), model.EventTaskCreated)
		dispatcher.Subscribe("after", record("after", nil), model.EventTaskCreated)

		err := dispatcher.Dispatch(ctx, model.Event{Type: model.EventTaskCreated})
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("failing: boom"))
		Expect(calls).To(Equal([]string{"failing", "after"}))
	})

	It("turns a panicking subscriber into an error", func() {
		dispatcher.Subscribe("panics", func(context.Context, model.Event) error {
			panic("nil map")
		}, model.EventTaskCreated)
		dispatcher.Subscribe("after", record("after", nil), model.EventTaskCreated)

		err := dispatcher.Dispatch(ctx, model.Event{Type: model.EventTaskCreated})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("panics: panic: nil map"))
		Expect(calls).To(Equal([]string{"after"}))
	})
})

var _ = Describe("Register", func() {
	It("subscribes each consumer to its events, activity first", func() {
		dispatcher := worker.NewDispatcher()
		recorder := &mockRecorder{}
		notifier := &mockNotifier{}
		syncer := &mockSyncer{}
		indexer := &mockIndexer{}

		worker.Register(dispatcher, worker.Subscribers{
			Activities:    recorder,
			Notifications: notifier,
			Integrations:  syncer,
			Search:        indexer,
		})

		Expect(dispatcher.Subscribers(model.EventTaskCreated)).To(Equal([]string{"activity", "integration", "search"}))
		Expect(dispatcher.Subscribers(model.EventTaskStatusChanged)).To(Equal([]string{"activity", "notification", "integration"}))
		Expect(dispatcher.Subscribers(model.EventCommentCreated)).To(Equal([]string{"notification"}))
		Expect(dispatcher.Subscribers(model.EventMemberAdded)).To(Equal([]string{"notification"}))
		Expect(dispatcher.Subscribers(model.EventProjectCreated)).To(Equal([]string{"search"}))

		Expect(dispatcher.Dispatch(context.Background(), model.Event{Type: model.EventTaskCreated})).To(Succeed())
		Expect(recorder.events).To(Equal([]model.EventType{model.EventTaskCreated}))
		Expect(indexer.events).To(Equal([]model.EventType{model.EventTaskCreated}))
		Expect(syncer.events).To(Equal([]model.EventType{model.EventTaskCreated}))
		Expect(notifier.events).To(BeEmpty())
	})

	It("skips consumers that are not configured", func() {
		dispatcher := worker.NewDispatcher()
		worker.Register(dispatcher, worker.Subscribers{Notifications: &mockNotifier{}})

		Expect(dispatcher.Subscribers(model.EventTaskCreated)).To(BeEmpty())
		Expect(dispatcher.Subscribers(model.EventCommentCreated)).To(Equal([]string{"notification"}))
	})
})
