package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/usekaneo/kaneo-sub002/common/logger"
)

type ReclaimerConfig struct {
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer periodically takes over entries left pending by a consumer that
// died between XREADGROUP and XACK and settles them through the worker, so
// they follow the same retry and dead-letter rules as fresh deliveries.
type Reclaimer struct {
	claimer Claimer
	worker  *Worker
	cfg     ReclaimerConfig

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(claimer Claimer, w *Worker, cfg ReclaimerConfig) *Reclaimer {
	if cfg.MinIdle <= 0 {
		cfg.MinIdle = 5 * time.Minute
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &Reclaimer{
		claimer:   claimer,
		worker:    w,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is done.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "kaneo.worker.reclaimer",
	})
	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			if _, err := r.ReclaimOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim cycle error", "error", err)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce runs a single claim cycle and returns how many entries it took
// over. Failures of individual entries are settled by the worker, not
// returned.
func (r *Reclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	claimed, err := r.claimer.ClaimStale(ctx, r.cfg.MinIdle, r.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claiming stale entries: %w", err)
	}
	if len(claimed) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "reclaimed stale pending messages", "count", len(claimed))
	for _, c := range claimed {
		_ = r.worker.HandleReclaimed(ctx, c)
	}
	return len(claimed), nil
}
