package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
	"github.com/usekaneo/kaneo-sub002/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		ctx        context.Context
		consumer   *mockConsumer
		dispatcher *worker.Dispatcher
		w          *worker.Worker
		failWith   error
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		dispatcher = worker.NewDispatcher()
		failWith = nil
		dispatcher.Subscribe("activity", func(context.Context, model.Event) error {
			return failWith
		}, model.EventTaskCreated)
		w = worker.New(consumer, dispatcher, worker.Config{MaxAttempts: 3, ErrorBackoff: 10 * time.Millisecond})
	})

	Describe("HandleMessage", func() {
		It("acks a message once every subscriber succeeded", func() {
			Expect(w.HandleMessage(ctx, message("1-0", model.EventTaskCreated, 1))).To(Succeed())
			Expect(consumer.acked).To(Equal([]string{"1-0"}))
			Expect(consumer.requeued).To(BeEmpty())
		})

		It("acks events nobody subscribes to", func() {
			Expect(w.HandleMessage(ctx, message("2-0", model.EventProjectDeleted, 1))).To(Succeed())
			Expect(consumer.acked).To(Equal([]string{"2-0"}))
		})

		It("requeues a failed message with the next attempt", func() {
			failWith = errors.New("db down")

			err := w.HandleMessage(ctx, message("3-0", model.EventTaskCreated, 1))
			Expect(err).To(HaveOccurred())
			Expect(consumer.acked).To(BeEmpty())
			Expect(consumer.requeued).To(HaveLen(1))
			Expect(consumer.requeued[0].attempt).To(Equal(2))
			Expect(consumer.requeued[0].errMsg).To(ContainSubstring("db down"))
			Expect(consumer.dlq).To(BeEmpty())
		})

		It("dead-letters a message on its last attempt", func() {
			failWith = errors.New("still down")

			Expect(w.HandleMessage(ctx, message("4-0", model.EventTaskCreated, 3))).NotTo(Succeed())
			Expect(consumer.dlq).To(Equal([]string{"4-0"}))
			Expect(consumer.requeued).To(BeEmpty())
		})
	})

	Describe("Run", func() {
		It("processes batches until stopped", func() {
			consumer.batches = [][]queue.Message{
				{message("5-0", model.EventTaskCreated, 1), message("5-1", model.EventTaskCreated, 1)},
			}

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			Eventually(consumer.ackedIDs).Should(Equal([]string{"5-0", "5-1"}))
			w.Stop()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("backs off after a read error and returns when the context ends", func() {
			consumer.readErr = errors.New("connection refused")
			runCtx, cancel := context.WithCancel(ctx)

			done := make(chan error, 1)
			go func() { done <- w.Run(runCtx) }()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
