package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/common/logger"
	"github.com/usekaneo/kaneo-sub002/core/config"
	"github.com/usekaneo/kaneo-sub002/core/db"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "kaneoctl",
		Short:         "Operational commands for a Kaneo deployment",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(searchCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connect loads the CLI config and opens the database. The caller closes it.
func connect(ctx context.Context) (config.Config, *db.DB, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)

	if err := id.Init(cfg.SnowflakeID); err != nil {
		return config.Config{}, nil, fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connecting to database: %w", err)
	}
	return cfg, database, nil
}
