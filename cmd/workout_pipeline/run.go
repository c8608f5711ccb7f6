package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
	"github.com/jhalverson1/workout-data-pipeline/internal/notify"
	"github.com/jhalverson1/workout-data-pipeline/internal/observability"
	"github.com/jhalverson1/workout-data-pipeline/internal/pipeline"
	"github.com/jhalverson1/workout-data-pipeline/internal/sheets"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: scan, ingest new files, mirror to the sheet",
	Long: `Scans the source directory for workout CSV exports, ingests every file not
yet in the processed-file ledger (one transaction per file, so a partial
failure leaves the file retryable), then overwrites the Google Sheet with
the full current dataset.

Safe to re-run: already processed files are skipped via the ledger.`,
	RunE: runPipelineCmd,
}

func init() {
	addConfigFlags(runCommand)
	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateIngest(); err != nil {
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

	result, runErr := pipeline.Run(ctx, pipeline.Options{
		SourceDir: cfg.SourceDir,
		Store:     store,
		Mirror:    mirror,
		Logger:    log,
	})

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintRunSummary(result)
	}
	if cfg.SendEmail {
		subject, body := notify.Summary(result)
		if err := notify.Send(cfg.SMTP, subject, body); err != nil {
			// A notification failure never fails a run that ingested fine.
			log.Warn("summary email not sent", slog.Any("error", err))
		}
	}

	return runErr
}
