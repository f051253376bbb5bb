package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"internmatch/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Internmatch Dataset Seeder
==========================

Generates reproducible synthetic candidate and opportunity catalogs in
the CSV layout the service loads at startup, and can smoke-check a
running instance against the generated data.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -out string
        Output directory for the CSV files (default "dataset")
  -candidates int
        Number of candidate rows to generate (default 200)
  -opportunities int
        Number of opportunity rows to generate (default 500)
  -seed int
        RNG seed for reproducible datasets (default 42)
  -smoke
        Smoke-check a running service after writing the files
  -url string
        Base URL of the service for smoke checks (default "http://localhost:9080")
  -requests int
        Number of smoke requests to issue (default 10)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Generate the default dataset
  go run cmd/seed/main.go

  # Generate a larger dataset into a custom directory
  go run cmd/seed/main.go -out testdata -candidates 1000 -opportunities 2000

  # Generate and verify against a running service
  go run cmd/seed/main.go -smoke -url http://localhost:9080
`)
}
