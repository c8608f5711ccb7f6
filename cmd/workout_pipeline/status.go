package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/db"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show the processed-file ledger and workout count",
	RunE:  runStatusCmd,
}

func init() {
	addConfigFlags(statusCommand)
	rootCmd.AddCommand(statusCommand)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required (flag --db-url or DATABASE_URL)")
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	count, err := store.CountWorkouts(ctx)
	if err != nil {
		return err
	}
	entries, err := store.ListProcessedFiles(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Workout records: %d\n", count)
	fmt.Fprintf(os.Stdout, "Processed files: %d\n\n", len(entries))

	if len(entries) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tINGESTED AT\tRECORDS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.Filename, e.IngestedAt.Format("2006-01-02 15:04:05"), e.RecordsInserted)
	}
	return w.Flush()
}
