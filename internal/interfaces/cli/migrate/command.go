package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"labmanager/internal/infrastructure/migration"
	"labmanager/internal/infrastructure/repository"
	"labmanager/internal/interfaces/cli/bootstrap"
)

const defaultScriptsDir = "./internal/infrastructure/migration/scripts"

type options struct {
	env        string
	configPath string
}

// run loads the environment, hands it to fn and closes it afterwards.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, e *bootstrap.Env) error) error {
	e, err := bootstrap.Load(o.env, o.configPath)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.PersistentFlags().StringVarP(&opts.env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStatusCommand(opts),
		newCreateCommand(),
	)
	return cmd
}

func newUpCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations (AutoMigrate on sqlite)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *bootstrap.Env) error {
				e.Logger.Infow("applying migrations", "environment", e.Name, "driver", e.Config.Database.Driver)
				if err := migration.NewManager(e.Config.Database.Driver).Migrate(ctx, e.DB); err != nil {
					e.Logger.Errorw("migration failed", "error", err)
					return err
				}
				if err := migration.SeedRoles(ctx, repository.NewUserRepository(e.DB, e.Logger)); err != nil {
					return err
				}
				e.Logger.Infow("schema is up to date")
				return nil
			})
		},
	}
}

func newDownCommand(opts *options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *bootstrap.Env) error {
				g, err := versioned(e, "down")
				if err != nil {
					return err
				}
				e.Logger.Infow("rolling back migrations", "environment", e.Name, "steps", steps)
				if err := g.MigrateDown(ctx, e.DB, steps); err != nil {
					return fmt.Errorf("roll back migrations: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	return cmd
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the schema version and the state of every migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *bootstrap.Env) error {
				g, err := versioned(e, "status")
				if err != nil {
					return err
				}
				version, err := g.GetVersion(ctx, e.DB)
				if err != nil {
					return fmt.Errorf("read schema version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "environment: %s\nversion:     %d\n", e.Name, version)
				return g.Status(ctx, e.DB)
			})
		},
	}
}

// newCreateCommand only writes a file, so it needs no configuration or database.
func newCreateCommand() *cobra.Command {
	var name, dir string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new timestamped SQL migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := migration.NewGooseStrategy("mysql").Create(dir, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created migration %q in %s\n", name, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVarP(&dir, "dir", "d", defaultScriptsDir, "Directory the migration is written to")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// versioned returns the goose strategy for commands that need schema versions.
func versioned(e *bootstrap.Env, op string) (*migration.GooseStrategy, error) {
	g := migration.NewManager(e.Config.Database.Driver).Goose()
	if g == nil {
		return nil, fmt.Errorf("migrate %s needs a versioned (mysql) database", op)
	}
	return g, nil
}
