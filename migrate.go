package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/giftquiz/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply storage migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	switch cfg.StorageType {
	case storage.TypeSQLite, storage.TypePostgres:
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Storage type %q has no schema.\n", cfg.StorageType)
		return nil
	}

	// Opening a SQL store applies all pending migrations.
	store, err := storage.OpenSQL(cfg.StorageType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	slog.Info("database schema ready", "type", cfg.StorageType)
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
	return nil
}
