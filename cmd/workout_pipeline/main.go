// Package main provides the entry point for the workout data pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "workout_pipeline",
	Short: "Workout CSV ingestion pipeline",
	Long:  "Ingests exported workout CSV files into PostgreSQL exactly once per file and mirrors the accumulated dataset to a Google Sheet for visualization.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
