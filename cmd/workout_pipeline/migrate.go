package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
)

var migrateCommand = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database schema migrations",
	RunE:  runMigrateCmd,
}

func init() {
	addConfigFlags(migrateCommand)
	rootCmd.AddCommand(migrateCommand)
}

func runMigrateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required (flag --db-url or DATABASE_URL)")
	}

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Migrations applied")
	return nil
}
