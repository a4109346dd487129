package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and clean up login sessions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, database, err := connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			services := service.NewServices(store.NewStores(database.Queries()), service.NewTxRunner(database), cfg, service.Deps{})
			n, err := services.Auth().PruneExpiredSessions(ctx)
			if err != nil {
				return fmt.Errorf("pruning sessions: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d expired sessions\n", n)
			return nil
		},
	})

	return cmd
}
