package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usekaneo/kaneo-sub002/internal/search"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Manage the Typesense index",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the task and project collections from the database",
		Long: `Rebuild the search index from Postgres.

Documents are upserted, so the command is safe to run while the worker is
indexing events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, database, err := connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			if !cfg.Typesense.Enabled() {
				return errors.New("TYPESENSE_URL and TYPESENSE_API_KEY must be set")
			}

			index := search.New(cfg.Typesense)
			if err := index.EnsureCollections(ctx); err != nil {
				return fmt.Errorf("preparing collections: %w", err)
			}

			stats, err := search.NewIndexer(store.NewStores(database.Queries()), index).Reindex(ctx)
			if err != nil {
				return fmt.Errorf("reindexing: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d projects and %d tasks\n", stats.Projects, stats.Tasks)
			return nil
		},
	})

	return cmd
}
