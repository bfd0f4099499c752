package commands

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/quarrydb/quarry/cli/internal/ui"
	"github.com/quarrydb/quarry/migrate"
)

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(newMigrateApplyCommand())
	cmd.AddCommand(newMigrateStatusCommand())
	cmd.AddCommand(newMigrateResetCommand())

	return cmd
}

func newMigrateApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, pool, c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(ctx)

			engine := migrate.NewEngine(c, afero.NewOsFs(), cfg.MigrationsPath, cfg.MigrationsTable)

			spinner := ui.Spinner("Applying migrations")
			applied, err := engine.Apply(ctx)
			if err != nil {
				spinner.Fail(err.Error())
				return err
			}
			spinner.Stop()

			if len(applied) == 0 {
				ui.PrintInfo("No pending migrations")
				return nil
			}
			for _, version := range applied {
				ui.PrintSuccess("applied %s", version)
			}
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, pool, c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(ctx)

			engine := migrate.NewEngine(c, afero.NewOsFs(), cfg.MigrationsPath, cfg.MigrationsTable)
			applied, pending, err := engine.Status(ctx)
			if err != nil {
				return err
			}

			ui.MigrationTable(applied, pending)
			return nil
		},
	}
}

func newMigrateResetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop the migrations table, forgetting applied versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, pool, c, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close(ctx)

			if !force {
				confirmed := false
				prompt := &survey.Confirm{
					Message: "Drop the migrations table " + cfg.MigrationsTable + "?",
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					ui.PrintWarning("Reset cancelled")
					return nil
				}
			}

			engine := migrate.NewEngine(c, afero.NewOsFs(), cfg.MigrationsPath, cfg.MigrationsTable)
			if err := engine.Reset(ctx); err != nil {
				return err
			}
			ui.PrintSuccess("Migrations table dropped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}
