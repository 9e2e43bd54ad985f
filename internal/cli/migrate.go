package cli

import (
	"fmt"

	"FreshKeep/cmd/config"
	migration "FreshKeep/cmd/database/migrate"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the key-value table in Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return fmt.Errorf("failed to connect database: %w", err)
			}
			return migration.Migrate(db)
		},
	}
}
