package main

import (
	"context"
	"flag"
	"os"
	"time"

	"internmatch/internal/seed"
)

// Default configuration constants.
const (
	defaultCandidates    = 200
	defaultOpportunities = 500
	defaultSeed          = 42
	defaultRequests      = 10
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		outputDir     = flag.String("out", "dataset", "Output directory for the CSV files")
		candidates    = flag.Int("candidates", defaultCandidates, "Number of candidate rows to generate")
		opportunities = flag.Int("opportunities", defaultOpportunities, "Number of opportunity rows to generate")
		seedVal       = flag.Int64("seed", defaultSeed, "RNG seed for reproducible datasets")
		smoke         = flag.Bool("smoke", false, "Smoke-check a running service after writing the files")
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service for smoke checks")
		requests      = flag.Int("requests", defaultRequests, "Number of smoke requests to issue")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile       = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	// Setup logging
	if err := seed.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create seeding configuration
	config := &seed.Config{
		OutputDir:        *outputDir,
		NumCandidates:    *candidates,
		NumOpportunities: *opportunities,
		Seed:             *seedVal,
		BaseURL:          *baseURL,
		Smoke:            *smoke,
		SmokeRequests:    *requests,
		Timeout:          *timeout,
		LogFile:          *logFile,
		Verbose:          *verbose,
	}

	// Run the seeder
	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
