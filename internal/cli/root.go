package cli

import (
	"FreshKeep/internal/utils"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the freshkeep CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "freshkeep",
		Short: "FreshKeep inventory and food rescue API",
		Long:  "Track what is in your kitchen before it expires, and list surplus food for local food banks to claim.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadConfig(opts.ConfigPath)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
