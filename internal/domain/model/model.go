// Package model contains domain models passed between layers.
package model

import (
	"regexp"
	"strconv"
	"strings"
)

// CandidateProfile represents a candidate looking for opportunities.
// Fields mirror the catalog CSV columns after header mapping.
type CandidateProfile struct {
	ID                int    // unique catalog id, >= 1
	Name              string
	Education         string // free-text qualification, e.g. "B.Tech CSE"
	Skills            string // comma or space separated skill list
	PreferredDomain   string // free-text domain preference, e.g. "Web Development"
	PreferredLocation string // free-text location preference, may be "Remote"
	DurationPref      string // desired duration, loosely structured, e.g. "6 months"
	EnrollmentStatus  string // e.g. "full-time", "part-time", "online"
}

// Opportunity represents a single posting in the catalog.
type Opportunity struct {
	ID           int
	Company      string // company or organization name
	Role         string // posting title, e.g. "Data Science Intern"
	Domain       string // resolved domain label, may be empty before classification
	Location     string // free-text location, may be "Remote"
	Duration     string // free-text duration, e.g. "6 Months"
	Compensation string // raw compensation text, parsed lazily
	Type         string // engagement type, e.g. "full-time", "part-time"
}

// Recommendation pairs an opportunity with its final score and the
// human-readable reason behind the match.
type Recommendation struct {
	Opportunity Opportunity
	Score       float64
	Reason      string
}

var numberPattern = regexp.MustCompile(`\d+\.?\d*`)

// ParseCompensation extracts a numeric value from free-text compensation.
// "Unpaid" and unparseable text yield 0. Ranges like "2 - 2.5" average
// to their midpoint, so "₹2 - 2.5 LPA" becomes 2.25.
func ParseCompensation(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || strings.Contains(s, "unpaid") {
		return 0
	}

	matches := numberPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0
	}

	var sum float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		sum += v
	}
	return sum / float64(len(matches))
}

// CompensationValue returns the parsed numeric compensation of the opportunity.
func (o Opportunity) CompensationValue() float64 {
	return ParseCompensation(o.Compensation)
}

// FeatureText concatenates the candidate fields used for vectorization.
func (c CandidateProfile) FeatureText() string {
	return joinFields(c.Education, c.Skills, c.PreferredDomain, c.PreferredLocation)
}

// FeatureText concatenates the opportunity fields used for vectorization.
func (o Opportunity) FeatureText() string {
	return joinFields(o.Company, o.Role, o.Domain, o.Location)
}

func joinFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
