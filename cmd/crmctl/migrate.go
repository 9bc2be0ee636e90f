package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/joao-fontenele/storefront-crm/internal/config"
)

func migrateCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the postgres kv_store schema",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Storage.PostgresURL == "" {
				return errors.New("POSTGRES_URL environment variable is required")
			}
			return nil
		},
	}

	open := func() (*migrate.Migrate, error) {
		m, err := migrate.New(cfg.MigrationsPath, cfg.Storage.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("create migrate instance: %w", err)
		}
		return m, nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer func() { _, _ = m.Close() }()

				err = m.Up()
				if errors.Is(err, migrate.ErrNoChange) {
					logger.Info("no pending migrations")
					return nil
				}
				if err != nil {
					return fmt.Errorf("migration up: %w", err)
				}
				logger.Info("migrations applied successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer func() { _, _ = m.Close() }()

				err = m.Steps(-1)
				if errors.Is(err, migrate.ErrNoChange) {
					logger.Info("no migrations to rollback")
					return nil
				}
				if err != nil {
					return fmt.Errorf("migration down: %w", err)
				}
				logger.Info("migration rolled back successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "print the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer func() { _, _ = m.Close() }()

				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					logger.Info("no migrations applied yet")
					return nil
				}
				if err != nil {
					return fmt.Errorf("get version: %w", err)
				}
				logger.Info("current migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
				return nil
			},
		},
	)
	return cmd
}
