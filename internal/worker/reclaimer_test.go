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

type mockClaimer struct {
	claimed []queue.Claimed
	err     error
	minIdle time.Duration
	count   int64
}

func (m *mockClaimer) ClaimStale(_ context.Context, minIdle time.Duration, count int64) ([]queue.Claimed, error) {
	m.minIdle, m.count = minIdle, count
	claimed := m.claimed
	m.claimed = nil
	return claimed, m.err
}

var _ = Describe("Reclaimer", func() {
	var (
		ctx        context.Context
		consumer   *mockConsumer
		claimer    *mockClaimer
		dispatched []string
		failWith   error
		reclaimer  *worker.Reclaimer
	)

	claim := func(id string, attempt int, deliveries int64) queue.Claimed {
		return queue.Claimed{Message: message(id, model.EventTaskCreated, attempt), Deliveries: deliveries}
	}

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		claimer = &mockClaimer{}
		dispatched = nil
		failWith = nil

		dispatcher := worker.NewDispatcher()
		dispatcher.Subscribe("activity", func(_ context.Context, event model.Event) error {
			dispatched = append(dispatched, string(event.Type))
			return failWith
		}, model.EventTaskCreated)
		w := worker.New(consumer, dispatcher, worker.Config{MaxAttempts: 3})
		reclaimer = worker.NewReclaimer(claimer, w, worker.ReclaimerConfig{MinIdle: time.Minute, BatchSize: 5})
	})

	It("processes and acks an entry left idle by a dead consumer", func() {
		claimer.claimed = []queue.Claimed{claim("1-0", 1, 2)}

		n, err := reclaimer.ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(claimer.minIdle).To(Equal(time.Minute))
		Expect(claimer.count).To(Equal(int64(5)))
		Expect(dispatched).To(HaveLen(1))
		Expect(consumer.ackedIDs()).To(Equal([]string{"1-0"}))
	})

	It("dead-letters an entry delivered more often than the attempt budget", func() {
		claimer.claimed = []queue.Claimed{claim("2-0", 1, 4)}

		n, err := reclaimer.ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))
		Expect(dispatched).To(BeEmpty())
		Expect(consumer.dlq).To(Equal([]string{"2-0"}))
		Expect(consumer.requeued).To(BeEmpty())
	})

	It("applies the attempt policy when a reclaimed entry fails again", func() {
		failWith = errors.New("typesense unavailable")
		claimer.claimed = []queue.Claimed{claim("3-0", 1, 2), claim("4-0", 3, 1)}

		_, err := reclaimer.ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(consumer.requeued).To(HaveLen(1))
		Expect(consumer.requeued[0].msg.ID).To(Equal("3-0"))
		Expect(consumer.requeued[0].attempt).To(Equal(2))
		Expect(consumer.dlq).To(Equal([]string{"4-0"}))
	})

	It("reports claim failures", func() {
		claimer.err = errors.New("connection refused")

		_, err := reclaimer.ReclaimOnce(ctx)
		Expect(err).To(MatchError(ContainSubstring("connection refused")))
	})

	It("does nothing when no entry is stale", func() {
		n, err := reclaimer.ReclaimOnce(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(consumer.ackedIDs()).To(BeEmpty())
	})
})
