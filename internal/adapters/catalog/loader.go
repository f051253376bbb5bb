// Package catalog loads candidate and opportunity catalogs from CSV files.
// Header names are resolved through priority-ordered field mappings so both
// the original and the real-world dataset layouts load without changes.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"internmatch/internal/domain/model"
	"internmatch/internal/domain/taxonomy"
	"internmatch/pkg/logger"
)

// Canonical field names used by the mappings.
const (
	FieldID           = "id"
	FieldEducation    = "education"
	FieldSkills       = "skills"
	FieldDomain       = "domain"
	FieldLocation     = "location"
	FieldDuration     = "duration"
	FieldEnrollment   = "enrollment"
	FieldCompany      = "company"
	FieldRole         = "role"
	FieldType         = "type"
	FieldCompensation = "compensation"
)

// FieldMapping maps a canonical field to CSV header names in priority
// order. The first header present in the file wins.
type FieldMapping map[string][]string

// DefaultCandidateMapping covers the original and real-world candidate
// header sets.
func DefaultCandidateMapping() FieldMapping {
	return FieldMapping{
		FieldID:         {"UserID", "candidate_id"},
		FieldEducation:  {"Education", "qualification"},
		FieldSkills:     {"Skills", "skills"},
		FieldDomain:     {"PreferredDomain", "job_role"},
		FieldLocation:   {"PreferredLocation"},
		FieldDuration:   {"InternshipDuration"},
		FieldEnrollment: {"EnrollmentStatus", "experience_level"},
	}
}

// DefaultOpportunityMapping covers the original and real-world
// opportunity header sets.
func DefaultOpportunityMapping() FieldMapping {
	return FieldMapping{
		FieldID:           {"InternshipID", "internship_id"},
		FieldCompany:      {"Company", "company_name"},
		FieldRole:         {"Role", "Type_of_job"},
		FieldDomain:       {"Domain"},
		FieldLocation:     {"Location", "location"},
		FieldType:         {"Type"},
		FieldDuration:     {"Duration", "experience"},
		FieldCompensation: {"Stipend", "salary"},
	}
}

// Defaults applied when a column is absent from the file entirely.
const (
	defaultCandidateLocation = "Remote"
	defaultCandidateDuration = "3 months"
	defaultOpportunityType   = "Full-time"
	defaultCompensation      = "Unpaid"
)

// Loader reads catalogs from CSV.
type Loader struct {
	candidateMapping   FieldMapping
	opportunityMapping FieldMapping
	log                logger.Logger
}

// New creates a Loader with configuration options applied.
func New(opts ...Option) *Loader {
	l := &Loader{
		candidateMapping:   DefaultCandidateMapping(),
		opportunityMapping: DefaultOpportunityMapping(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Named("catalog")
	}
	return l
}

// LoadCandidates reads candidate profiles from a CSV file.
func (l *Loader) LoadCandidates(ctx context.Context, path string) ([]model.CandidateProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	out, err := l.ReadCandidates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Info(ctx, "candidates loaded",
		logger.String("path", path),
		logger.Int("count", len(out)),
	)
	return out, nil
}

// LoadOpportunities reads opportunities from a CSV file.
func (l *Loader) LoadOpportunities(ctx context.Context, path string) ([]model.Opportunity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer func() { _ = f.Close() }()

	out, err := l.ReadOpportunities(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Info(ctx, "opportunities loaded",
		logger.String("path", path),
		logger.Int("count", len(out)),
	)
	return out, nil
}

// ReadCandidates parses candidate profiles from CSV content.
func (l *Loader) ReadCandidates(r io.Reader) ([]model.CandidateProfile, error) {
	rows, cols, err := readTable(r, l.candidateMapping)
	if err != nil {
		return nil, err
	}

	out := make([]model.CandidateProfile, 0, len(rows))
	seen := make(map[int]struct{}, len(rows))
	for i, row := range rows {
		id, err := parseID(cols.get(row, FieldID))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, i+2, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: candidate %d", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		out = append(out, model.CandidateProfile{
			ID:                id,
			Name:              cols.get(row, "name"),
			Education:         cols.get(row, FieldEducation),
			Skills:            cols.get(row, FieldSkills),
			PreferredDomain:   cols.get(row, FieldDomain),
			PreferredLocation: cols.getDefault(row, FieldLocation, defaultCandidateLocation),
			DurationPref:      cols.getDefault(row, FieldDuration, defaultCandidateDuration),
			EnrollmentStatus:  cols.get(row, FieldEnrollment),
		})
	}
	return out, nil
}

// ReadOpportunities parses opportunities from CSV content. Domains absent
// from the file are derived from the role title.
func (l *Loader) ReadOpportunities(r io.Reader) ([]model.Opportunity, error) {
	rows, cols, err := readTable(r, l.opportunityMapping)
	if err != nil {
		return nil, err
	}

	out := make([]model.Opportunity, 0, len(rows))
	seen := make(map[int]struct{}, len(rows))
	for i, row := range rows {
		id, err := parseID(cols.get(row, FieldID))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrParse, i+2, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: opportunity %d", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		role := cols.get(row, FieldRole)
		domain := cols.get(row, FieldDomain)
		if domain == "" {
			domain = taxonomy.Classify(role)
		}

		out = append(out, model.Opportunity{
			ID:           id,
			Company:      cols.get(row, FieldCompany),
			Role:         role,
			Domain:       domain,
			Location:     cols.get(row, FieldLocation),
			Duration:     cols.get(row, FieldDuration),
			Compensation: cols.getDefault(row, FieldCompensation, defaultCompensation),
			Type:         cols.getDefault(row, FieldType, defaultOpportunityType),
		})
	}
	return out, nil
}

// columns resolves canonical fields to column indexes, -1 when absent.
type columns map[string]int

func (c columns) get(row []string, field string) string {
	idx, ok := c[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// getDefault falls back to def only when the column is absent from the
// file; present-but-empty cells stay empty.
func (c columns) getDefault(row []string, field, def string) string {
	if idx, ok := c[field]; !ok || idx < 0 {
		return def
	}
	return c.get(row, field)
}

func readTable(r io.Reader, mapping FieldMapping) ([][]string, columns, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrParse)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cols := make(columns, len(mapping))
	for field, names := range mapping {
		cols[field] = -1
		for _, name := range names {
			if idx, ok := index[strings.ToLower(name)]; ok {
				cols[field] = idx
				break
			}
		}
	}
	if cols[FieldID] < 0 {
		return nil, nil, fmt.Errorf("%w: id", ErrMissingColumn)
	}
	// Optional name column shared by both layouts.
	cols["name"] = -1
	if idx, ok := index["name"]; ok {
		cols["name"] = idx
	}

	return records[1:], cols, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
