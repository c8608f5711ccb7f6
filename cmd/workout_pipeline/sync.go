package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
	"github.com/jhalverson1/workout-data-pipeline/internal/observability"
	"github.com/jhalverson1/workout-data-pipeline/internal/pipeline"
	"github.com/jhalverson1/workout-data-pipeline/internal/sheets"
)

var syncCommand = &cobra.Command{
	Use:   "sync",
	Short: "Overwrite the Google Sheet with the current dataset",
	Long: `Reads the complete workout dataset from the database and replaces the
configured sheet range with it. Does not scan or ingest anything.`,
	RunE: runSyncCmd,
}

func init() {
	addConfigFlags(syncCommand)
	rootCmd.AddCommand(syncCommand)
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateMirror(); err != nil {
		return err
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	mirror, err := sheets.NewClient(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetRange)
	if err != nil {
		return err
	}

	rows, err := pipeline.Sync(ctx, store, mirror, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Synced %d rows to spreadsheet %s\n", rows, cfg.SpreadsheetID)
	return nil
}
