// Package notify sends the optional run-summary email.
package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jhalverson1/workout-data-pipeline/internal/config"
	"github.com/jhalverson1/workout-data-pipeline/internal/pipeline"
)

// Summary renders the subject and plaintext body for a finished run.
func Summary(result *pipeline.Result) (subject, body string) {
	subject = "Workout data processing completed"
	if result.Failed() {
		subject = "Workout data processing completed with errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run %s finished.\n\n", result.RunID))
	sb.WriteString(fmt.Sprintf("Files scanned:    %d\n", result.FilesScanned))
	sb.WriteString(fmt.Sprintf("Files ingested:   %d\n", result.FilesIngested))
	sb.WriteString(fmt.Sprintf("Files skipped:    %d\n", result.FilesSkipped))
	sb.WriteString(fmt.Sprintf("Files failed:     %d\n", result.FilesFailed))
	sb.WriteString(fmt.Sprintf("Records inserted: %d\n", result.RecordsInserted))
	sb.WriteString(fmt.Sprintf("Rows skipped:     %d\n", result.RowsSkipped))
	if result.MirrorRan {
		if result.MirrorErr != nil {
			sb.WriteString(fmt.Sprintf("Mirror sync:      failed: %v\n", result.MirrorErr))
		} else {
			sb.WriteString(fmt.Sprintf("Mirror sync:      %d rows\n", result.MirroredRows))
		}
	}

	for _, f := range result.Files {
		if f.Status == pipeline.StatusFailed {
			sb.WriteString(fmt.Sprintf("\nFailed: %s: %v\n", f.Name, f.Err))
		}
	}

	return subject, sb.String()
}

// Send delivers the message via SMTP with STARTTLS. The recipient defaults
// to the sending address when not configured, matching the self-notification
// setup the export workflow expects.
func Send(cfg config.SMTPConfig, subject, body string) error {
	if !cfg.Configured() {
		return fmt.Errorf("smtp settings are not configured")
	}

	recipient := cfg.Recipient
	if recipient == "" {
		recipient = cfg.Username
	}

	msg := Message(cfg.Username, recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.Username, []string{recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Message assembles an RFC 5322 plaintext message.
func Message(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
