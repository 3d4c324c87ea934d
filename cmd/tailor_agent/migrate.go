package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and print the schema version",
	Long:  `Applies pending migrations to PostgreSQL (--db-url or DATABASE_URL) or the SQLite file (--sqlite).`,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// versioned is implemented by both database backends.
type versioned interface {
	MigrationVersion(ctx context.Context) (int64, error)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Opening the store applies pending migrations.
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	backend := "sqlite " + settings.SQLitePath
	if settings.DatabaseURL != "" {
		backend = "postgres"
	}

	v, ok := store.(versioned)
	if !ok {
		return fmt.Errorf("database backend does not report a schema version")
	}
	version, err := v.MigrationVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database %s at schema version %d\n", backend, version)
	return nil
}
