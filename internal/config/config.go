// Package config provides configuration loading and validation for the CLI.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/jhalverson1/workout-data-pipeline/internal/schemas"
)

//go:embed config.schema.json
var configSchema []byte

// Config is the process-wide configuration, built once at startup and passed
// explicitly to each component. Precedence: CLI flags > config file > env.
type Config struct {
	DatabaseURL     string `json:"database_url,omitempty" env:"DATABASE_URL"`
	SourceDir       string `json:"source_dir,omitempty" env:"WORKOUT_SOURCE_DIR"`
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" env:"SPREADSHEET_ID"`
	CredentialsFile string `json:"credentials_file,omitempty" env:"SERVICE_ACCOUNT_FILE" env-default:"service_account.json"`
	SheetRange      string `json:"sheet_range,omitempty" env:"SHEET_RANGE" env-default:"Sheet1"`
	LogLevel        string `json:"log_level,omitempty" env:"LOG_LEVEL" env-default:"info"`
	LogFormat       string `json:"log_format,omitempty" env:"LOG_FORMAT" env-default:"text"`
	Verbose         bool   `json:"verbose,omitempty"`
	SendEmail       bool   `json:"send_email,omitempty"`

	SMTP SMTPConfig `json:"smtp,omitempty"`
}

// SMTPConfig holds the optional settings for the run-summary email.
type SMTPConfig struct {
	Host      string `json:"host,omitempty" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port      int    `json:"port,omitempty" env:"SMTP_PORT" env-default:"587"`
	Username  string `json:"username,omitempty" env:"GMAIL_ADDRESS"`
	Password  string `json:"password,omitempty" env:"GMAIL_PASSWORD"`
	Recipient string `json:"recipient,omitempty" env:"GMAIL_RECIPIENT"`
}

// Configured reports whether enough SMTP settings are present to send mail.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Username != "" && s.Password != ""
}

// FromEnv builds a Config from process environment variables, applying the
// declared defaults for unset values.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads configuration overrides from a JSON file, first checking the
// document against the embedded schema so typos fail with a field-level
// message instead of being silently ignored.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := schemas.ValidateBytes(configSchema, data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Merge overlays non-zero values from other onto c and returns the result.
// Bool fields are not merged here; CLI flag handling decides those since an
// unset bool is indistinguishable from false.
func (c Config) Merge(other Config) Config {
	result := c
	if other.DatabaseURL != "" {
		result.DatabaseURL = other.DatabaseURL
	}
	if other.SourceDir != "" {
		result.SourceDir = other.SourceDir
	}
	if other.SpreadsheetID != "" {
		result.SpreadsheetID = other.SpreadsheetID
	}
	if other.CredentialsFile != "" {
		result.CredentialsFile = other.CredentialsFile
	}
	if other.SheetRange != "" {
		result.SheetRange = other.SheetRange
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		result.LogFormat = other.LogFormat
	}
	if other.SMTP.Host != "" {
		result.SMTP.Host = other.SMTP.Host
	}
	if other.SMTP.Port != 0 {
		result.SMTP.Port = other.SMTP.Port
	}
	if other.SMTP.Username != "" {
		result.SMTP.Username = other.SMTP.Username
	}
	if other.SMTP.Password != "" {
		result.SMTP.Password = other.SMTP.Password
	}
	if other.SMTP.Recipient != "" {
		result.SMTP.Recipient = other.SMTP.Recipient
	}
	return result
}

// ValidateIngest checks the fields the ingestion stage cannot run without.
func (c *Config) ValidateIngest() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required (flag --db-url or DATABASE_URL)")
	}
	if c.SourceDir == "" {
		return fmt.Errorf("config error: source directory is required (flag --source-dir or WORKOUT_SOURCE_DIR)")
	}
	if _, err := os.Stat(c.SourceDir); os.IsNotExist(err) {
		return fmt.Errorf("config error: source directory not found: %s", c.SourceDir)
	}
	return nil
}

// ValidateMirror checks the fields the mirror stage cannot run without.
func (c *Config) ValidateMirror() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required (flag --db-url or DATABASE_URL)")
	}
	if c.SpreadsheetID == "" {
		return fmt.Errorf("config error: spreadsheet ID is required (flag --spreadsheet-id or SPREADSHEET_ID)")
	}
	if c.CredentialsFile == "" {
		return fmt.Errorf("config error: credentials file is required (flag --credentials or SERVICE_ACCOUNT_FILE)")
	}
	return nil
}
