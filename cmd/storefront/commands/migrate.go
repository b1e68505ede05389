package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/strideworks/storefront/cmd/storefront/output"
	"github.com/strideworks/storefront/internal/store"
	"github.com/strideworks/storefront/pkg/runtime"
)

// migrateCmd applies the database schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the storefront schema to the configured database.

Every statement is idempotent, so migrate can run against a fresh or an
already provisioned database. The serve command also applies the schema
on startup; migrate exists for provisioning pipelines that prepare the
database before the server comes up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := runtime.Connect(ctx, runtime.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		output.Error("Failed to connect to database: %v", err)
		return err
	}
	defer db.Close()

	st, err := store.New(db, cfg.PricingPolicy())
	if err != nil {
		return err
	}
	if err := st.Bootstrap(ctx); err != nil {
		output.Error("Failed to apply schema: %v", err)
		return err
	}

	output.Success("Schema applied")
	return nil
}
