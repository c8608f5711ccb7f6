package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
	"github.com/jhalverson1/workout-data-pipeline/internal/observability"
	"github.com/jhalverson1/workout-data-pipeline/internal/pipeline"
)

var ingestCommand = &cobra.Command{
	Use:   "ingest",
	Short: "Scan and ingest new files without touching the mirror",
	RunE:  runIngestCmd,
}

func init() {
	addConfigFlags(ingestCommand)
	rootCmd.AddCommand(ingestCommand)
}

func runIngestCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	result, runErr := pipeline.Run(ctx, pipeline.Options{
		SourceDir: cfg.SourceDir,
		Store:     store,
		Logger:    log,
	})

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRunSummary(result)
	}
	return runErr
}
