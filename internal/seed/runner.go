package seed

import (
	"context"
	"fmt"
	"time"

	"internmatch/pkg/logger"
)

// Run executes the complete seeding run: generate both catalogs, write
// them to disk, and optionally smoke-check a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting dataset seeding",
		logger.String("outputDir", config.OutputDir),
		logger.Int("candidates", config.NumCandidates),
		logger.Int("opportunities", config.NumOpportunities),
		logger.Any("seed", config.Seed),
		logger.Any("smoke", config.Smoke),
	)

	// Step 1: Generate both catalogs
	candidates := GenerateCandidates(ctx, config.NumCandidates, config.Seed)
	opportunities := GenerateOpportunities(ctx, config.NumOpportunities, config.Seed)

	// Step 2: Write CSV files
	if _, err := WriteCandidatesCSV(ctx, config.OutputDir, candidates); err != nil {
		return fmt.Errorf("candidate catalog write failed: %w", err)
	}
	stats.CandidatesWritten = len(candidates)

	if _, err := WriteOpportunitiesCSV(ctx, config.OutputDir, opportunities); err != nil {
		return fmt.Errorf("opportunity catalog write failed: %w", err)
	}
	stats.OpportunitiesWritten = len(opportunities)

	// Step 3: Optionally verify a running service serves the dataset
	if config.Smoke {
		if err := runSmokeChecks(ctx, config, candidates, stats); err != nil {
			return fmt.Errorf("smoke checks failed: %w", err)
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("candidatesWritten", stats.CandidatesWritten),
		logger.Int("opportunitiesWritten", stats.OpportunitiesWritten),
		logger.Int("smokeRequests", stats.SmokeRequests),
		logger.Int("smokeSuccessful", stats.SmokeSuccessful),
		logger.Int("smokeFailed", stats.SmokeFailed),
		logger.String("duration", stats.Duration.String()),
	)
}
