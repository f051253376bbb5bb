package seed

import "time"

// Config holds configuration for the dataset seeding run.
type Config struct {
	OutputDir        string        // Directory the CSV files are written to
	NumCandidates    int           // Number of candidate rows to generate
	NumOpportunities int           // Number of opportunity rows to generate
	Seed             int64         // RNG seed for reproducible datasets
	BaseURL          string        // Base URL of a running service, used by the smoke check
	Smoke            bool          // Run recommendation smoke checks after writing
	SmokeRequests    int           // Number of smoke requests to issue
	Timeout          time.Duration // HTTP request timeout for smoke checks
	LogFile          string        // Log file for run output
	Verbose          bool          // Enable verbose logging
}

// Stats holds seeding run statistics.
type Stats struct {
	CandidatesWritten    int
	OpportunitiesWritten int
	SmokeRequests        int
	SmokeSuccessful      int
	SmokeFailed          int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
