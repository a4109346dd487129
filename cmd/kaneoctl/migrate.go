package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usekaneo/kaneo-sub002/core/db"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, direction := range []db.MigrateDirection{db.MigrateUp, db.MigrateDown, db.MigrateStatus} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(direction),
			Short: fmt.Sprintf("Run goose %s against DATABASE_URL", direction),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				_, database, err := connect(ctx)
				if err != nil {
					return err
				}
				defer database.Close()

				return database.Migrate(ctx, direction)
			},
		})
	}

	return cmd
}
