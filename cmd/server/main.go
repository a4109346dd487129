package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/common/otel"
	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/core/db"
	"github.com/usekaneo/kaneo-sub002/internal/http/middleware"
	httprouter "github.com/usekaneo/kaneo-sub002/internal/http/router"
	"github.com/usekaneo/kaneo-sub002/internal/queue"
	"github.com/usekaneo/kaneo-sub002/internal/search"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/service/issue_tracker"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "kaneo api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.SnowflakeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if cfg.IsDevelopment() {
		if err := database.Migrate(ctx, db.MigrateUp); err != nil {
			slog.ErrorContext(ctx, "failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

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
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

	eventProducer := queue.NewRedisProducer(redisClient, cfg.Events.Stream, slog.Default())
	defer eventProducer.Close()

	trackers, err := newTrackers(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure issue trackers", "error", err)
		os.Exit(1)
	}

	deps := service.Deps{
		Publisher: eventProducer,
		Trackers:  trackers,
	}
	if cfg.GitHubOAuth.Enabled() {
		deps.GitHubLogin = service.NewGitHubIdentityProvider(cfg.GitHubOAuth)
	}
	if cfg.WorkOS.Enabled() {
		deps.SSOLogin = service.NewWorkOSIdentityProvider(cfg.WorkOS)
	}
	if cfg.Typesense.Enabled() {
		index := search.New(cfg.Typesense)
		if err := index.EnsureCollections(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to prepare search collections", "error", err)
			os.Exit(1)
		}
		deps.SearchIndex = index
		slog.InfoContext(ctx, "typesense search enabled", "url", cfg.Typesense.URL)
	}

	services := service.NewServices(store.NewStores(database.Queries()), service.NewTxRunner(database), cfg, deps)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, trackers)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// newTrackers registers Gitea and GitLab unconditionally since they
// authenticate per integration. GitHub needs the app credentials.
func newTrackers(cfg config.Config) (*issue_tracker.Registry, error) {
	trackers := []issue_tracker.IssueTracker{
		issue_tracker.NewGiteaIssueTracker(),
		issue_tracker.NewGitLabIssueTracker(),
	}
	if cfg.GitHubApp.Enabled() {
		gh, err := issue_tracker.NewGitHubIssueTracker(cfg.GitHubApp)
		if err != nil {
			return nil, fmt.Errorf("github app: %w", err)
		}
		trackers = append(trackers, gh)
	}
	return issue_tracker.NewRegistry(trackers...), nil
}

func setupRouter(cfg config.Config, services *service.Services, trackers *issue_tracker.Registry) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		ClientURL:           cfg.ClientURL,
		IsProduction:        cfg.IsProduction(),
		GitHubWebhookSecret: cfg.GitHubApp.WebhookSecret,
		SearchEnabled:       cfg.Typesense.Enabled(),
		Integrations:        trackers.Providers(),
		Version:             cfg.OTel.ServiceVersion,
	})

	return router
}

const banner = `
██╗  ██╗ █████╗ ███╗   ██╗███████╗ ██████╗      █████╗ ██████╗ ██╗
██║ ██╔╝██╔══██╗████╗  ██║██╔════╝██╔═══██╗    ██╔══██╗██╔══██╗██║
█████╔╝ ███████║██╔██╗ ██║█████╗  ██║   ██║    ███████║██████╔╝██║
██╔═██╗ ██╔══██║██║╚██╗██║██╔══╝  ██║   ██║    ██╔══██║██╔═══╝ ██║
██║  ██╗██║  ██║██║ ╚████║███████╗╚██████╔╝    ██║  ██║██║     ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚══════╝ ╚═════╝     ╚═╝  ╚═╝╚═╝     ╚═╝
`
