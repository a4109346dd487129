package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/common/otel"
	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/core/db"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
	"github.com/usekaneo/kaneo-sub002/internal/search"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/service/issue_tracker"
	"github.com/usekaneo/kaneo-sub002/internal/store"
	"github.com/usekaneo/kaneo-sub002/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "kaneo worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Events.Group,
		"consumer_name", cfg.Events.Consumer)

	if err := id.Init(cfg.SnowflakeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Events.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Events.Stream,
		Group:        cfg.Events.Group,
		Consumer:     cfg.Events.Consumer,
		DLQStream:    cfg.Events.DLQStream,
		BatchSize:    cfg.Events.BatchSize,
		Block:        cfg.Events.Block,
		MaxAttempts:  cfg.Events.MaxAttempts,
		RequeueDelay: cfg.Events.RequeueDelay,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())

	// Subscribers only write derived rows, so the worker publishes nothing.
	deps := service.Deps{Trackers: newTrackers(ctx, cfg)}
	services := service.NewServices(stores, service.NewTxRunner(database), cfg, deps)

	subscribers := worker.Subscribers{
		Activities:    services.Activities(),
		Notifications: services.Notifications(),
		Integrations:  services.Integrations(),
	}
	if cfg.Typesense.Enabled() {
		index := search.New(cfg.Typesense)
		if err := index.EnsureCollections(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to prepare search collections", "error", err)
			os.Exit(1)
		}
		subscribers.Search = search.NewIndexer(stores, index)
	}

	dispatcher := worker.NewDispatcher()
	worker.Register(dispatcher, subscribers)

	w := worker.New(consumer, dispatcher, worker.Config{
		MaxAttempts: cfg.Events.MaxAttempts,
	})

	reclaimer := worker.NewReclaimer(consumer, w, worker.ReclaimerConfig{
		MinIdle:   5 * time.Minute,
		Interval:  1 * time.Minute,
		BatchSize: 10,
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop reclaimer first (quick)
	reclaimer.Stop()

	// Stop worker (may be processing)
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

// newTrackers mirrors the server registry. A broken GitHub app key only
// disables outbound GitHub sync here instead of stopping the worker.
func newTrackers(ctx context.Context, cfg config.Config) *issue_tracker.Registry {
	trackers := []issue_tracker.IssueTracker{
		issue_tracker.NewGiteaIssueTracker(),
		issue_tracker.NewGitLabIssueTracker(),
	}
	if cfg.GitHubApp.Enabled() {
		gh, err := issue_tracker.NewGitHubIssueTracker(cfg.GitHubApp)
		if err != nil {
			slog.WarnContext(ctx, "github sync disabled", "error", err)
		} else {
			trackers = append(trackers, gh)
		}
	}
	return issue_tracker.NewRegistry(trackers...)
}

const banner = `
██╗  ██╗ █████╗ ███╗   ██╗███████╗ ██████╗     ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
██║ ██╔╝██╔══██╗████╗  ██║██╔════╝██╔═══██╗    ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
█████╔╝ ███████║██╔██╗ ██║█████╗  ██║   ██║    ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
██╔═██╗ ██╔══██║██║╚██╗██║██╔══╝  ██║   ██║    ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
██║  ██╗██║  ██║██║ ╚████║███████╗╚██████╔╝    ╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝ ╚═════╝      ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
