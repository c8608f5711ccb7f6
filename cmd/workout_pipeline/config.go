package main

import (
	"github.com/spf13/cobra"

	"github.com/jhalverson1/workout-data-pipeline/internal/config"
)

var (
	flagConfigPath    string
	flagDBURL         string
	flagSourceDir     string
	flagSpreadsheetID string
	flagCredentials   string
	flagSheetRange    string
	flagLogLevel      string
	flagLogFormat     string
	flagVerbose       bool
	flagSendEmail     bool
)

// addConfigFlags registers the shared configuration flags on a command. All
// commands resolve configuration the same way, so the flag set is shared.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	f.StringVar(&flagDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	f.StringVarP(&flagSourceDir, "source-dir", "s", "", "Directory containing exported workout CSV files")
	f.StringVar(&flagSpreadsheetID, "spreadsheet-id", "", "Google Sheet ID for the mirror (defaults to SPREADSHEET_ID env var)")
	f.StringVar(&flagCredentials, "credentials", "", "Path to the service account JSON key file")
	f.StringVar(&flagSheetRange, "sheet-range", "", "Sheet range to overwrite (default Sheet1)")
	f.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	f.BoolVarP(&flagVerbose, "verbose", "v", false, "Print a formatted run summary")
	f.BoolVar(&flagSendEmail, "send-email", false, "Email the run summary via the configured SMTP account")
}

// resolveConfig builds the effective configuration: environment first, then
// the optional config file, then explicitly set CLI flags on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if flagConfigPath != "" {
		fileCfg, err := config.LoadFile(flagConfigPath)
		if err != nil {
			return nil, err
		}
		merged := cfg.Merge(*fileCfg)
		cfg = &merged
		cfg.Verbose = fileCfg.Verbose
		cfg.SendEmail = fileCfg.SendEmail
	}

	// CLI overrides apply only when the flag was explicitly set.
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = flagDBURL
	}
	if cmd.Flags().Changed("source-dir") {
		cfg.SourceDir = flagSourceDir
	}
	if cmd.Flags().Changed("spreadsheet-id") {
		cfg.SpreadsheetID = flagSpreadsheetID
	}
	if cmd.Flags().Changed("credentials") {
		cfg.CredentialsFile = flagCredentials
	}
	if cmd.Flags().Changed("sheet-range") {
		cfg.SheetRange = flagSheetRange
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if cmd.Flags().Changed("send-email") {
		cfg.SendEmail = flagSendEmail
	}

	return cfg, nil
}
