// Package commands implements the quarry CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "quarry",
		Short:   "SQL compilation and migration toolkit",
		Long:    "Quarry compiles backend-agnostic queries and schema operations into dialect-specific SQL and manages database migrations.",
		Version: Version,
	}

	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewDBCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
