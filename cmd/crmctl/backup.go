package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joao-fontenele/storefront-crm/internal/backup"
	"github.com/joao-fontenele/storefront-crm/internal/config"
	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/store"
)

func backupCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "export or import a backup document",
	}

	var output string
	export := &cobra.Command{
		Use:   "export",
		Short: "write every collection and the settings to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, closer, err := persistence.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			doc, err := backup.Export(cmd.Context(), kv, logger)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "-" {
				if output == "" {
					output = backup.FileName(time.Now())
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := backup.Write(w, doc); err != nil {
				return err
			}
			logger.Info("backup exported", "file", output, "orders", len(doc.Orders))
			return nil
		},
	}
	export.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default phone-store-backup-<date>.json)`)

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "overwrite the stored collections present in a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			kv, closer, err := persistence.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			keys, err := backup.Import(cmd.Context(), kv, f)
			if err != nil {
				return err
			}
			logger.Info("backup imported, restart the crm service to load it", "keys", keys)
			return nil
		},
	}

	cmd.AddCommand(export, imp)
	return cmd
}

func seedCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "overwrite the stored collections with the built-in seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, closer, err := persistence.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			data := store.Seed()
			if err := persistence.SaveData(cmd.Context(), kv, data); err != nil {
				return err
			}
			logger.Info("seed data written",
				"products", len(data.Products),
				"customers", len(data.Customers),
				"orders", len(data.Orders),
			)
			return nil
		},
	}
}
