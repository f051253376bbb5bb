package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"internmatch/internal/domain/model"
	"internmatch/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// CSV file names produced by the seeder.
const (
	CandidatesFile    = "candidates.csv"
	OpportunitiesFile = "opportunities.csv"
)

// WriteCandidatesCSV writes the candidate catalog in the layout the
// service loads by default.
func WriteCandidatesCSV(ctx context.Context, dir string, candidates []model.CandidateProfile) (string, error) {
	path := filepath.Join(dir, CandidatesFile)
	header := []string{"UserID", "Name", "Education", "Skills", "PreferredDomain", "PreferredLocation", "InternshipDuration", "EnrollmentStatus"}

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Education,
			c.Skills,
			c.PreferredDomain,
			c.PreferredLocation,
			c.DurationPref,
			c.EnrollmentStatus,
		})
	}

	if err := writeCSV(path, header, rows); err != nil {
		return "", err
	}
	logger.Get().Info(ctx, "candidates written",
		logger.String("path", path),
		logger.Int("count", len(candidates)),
	)
	return path, nil
}

// WriteOpportunitiesCSV writes the opportunity catalog in the layout the
// service loads by default.
func WriteOpportunitiesCSV(ctx context.Context, dir string, opportunities []model.Opportunity) (string, error) {
	path := filepath.Join(dir, OpportunitiesFile)
	header := []string{"InternshipID", "Company", "Role", "Domain", "Location", "Type", "Duration", "Stipend"}

	rows := make([][]string, 0, len(opportunities))
	for _, o := range opportunities {
		rows = append(rows, []string{
			strconv.Itoa(o.ID),
			o.Company,
			o.Role,
			o.Domain,
			o.Location,
			o.Type,
			o.Duration,
			o.Compensation,
		})
	}

	if err := writeCSV(path, header, rows); err != nil {
		return "", err
	}
	logger.Get().Info(ctx, "opportunities written",
		logger.String("path", path),
		logger.Int("count", len(opportunities)),
	)
	return path, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
