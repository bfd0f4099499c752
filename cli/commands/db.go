package commands

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/cli/internal/ui"
	"github.com/quarrydb/quarry/query/sqlgen"
)

// NewDBCommand creates the db command group.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage databases",
	}

	cmd.AddCommand(newDBCreateCommand())
	cmd.AddCommand(newDBDropCommand())

	return cmd
}

func newDBCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, pool, c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(ctx)

			gen := sqlgen.NewGenerator(cfg.Provider)
			if _, err := c.Execute(ctx, "CREATE DATABASE "+gen.EscapeIdentifier(args[0]), false); err != nil {
				return err
			}
			ui.PrintSuccess("Database %s created", args[0])
			return nil
		},
	}
}

func newDBDropCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, pool, c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(ctx)

			if !force {
				confirmed := false
				prompt := &survey.Confirm{Message: "Drop database " + args[0] + "?"}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					ui.PrintWarning("Drop cancelled")
					return nil
				}
			}

			gen := sqlgen.NewGenerator(cfg.Provider)
			if _, err := c.Execute(ctx, "DROP DATABASE "+gen.EscapeIdentifier(args[0]), false); err != nil {
				return err
			}
			ui.PrintSuccess("Database %s dropped", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}
