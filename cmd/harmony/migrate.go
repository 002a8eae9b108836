package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
	"github.com/Veraticus/harmony/internal/config"
	"github.com/Veraticus/harmony/internal/storage"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQLite document database",
		Long: `Initialize or update the SQLite schema to the latest version.

Only the sqlite storage backend has a schema; the file and redis backends
need no migration. The database is normally migrated on open, so this is
mostly useful with --status or before copying a database elsewhere.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.cfg.Storage.Backend != config.BackendSQLite {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("The %s backend has no schema to migrate.", opts.cfg.Storage.Backend)))
				return nil
			}
			dbPath := opts.cfg.Storage.SQLitePath
			if dbPath == "" {
				dbPath = filepath.Join(opts.cfg.Storage.DataDir, "harmony.db")
			}

			store, err := storage.NewSQLiteStore(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if !status {
				opts.logger.Info("Running database migrations", "database", dbPath)
				if err := store.Migrate(ctx); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
			}

			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("%s: schema version %d of %d", dbPath, version, storage.ExpectedSchemaVersion)
			if version < storage.ExpectedSchemaVersion {
				fmt.Fprintln(out, cli.FormatWarning(line))
			} else {
				fmt.Fprintln(out, cli.FormatSuccess(line))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "show the schema version without migrating")
	return cmd
}
