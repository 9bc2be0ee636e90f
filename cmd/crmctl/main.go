package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joao-fontenele/storefront-crm/internal/config"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stderr)

	rootCmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "storefront CRM maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		migrateCommand(cfg, logger),
		backupCommand(cfg, logger),
		seedCommand(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
