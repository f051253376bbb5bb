package filter

import (
	"strings"

	"internmatch/internal/domain/model"
)

// Keyword family that marks two differently-named domains as related,
// e.g. "Data Science" and "Machine Learning".
var relatedKeywords = []string{"data", "machine", "ai"}

type domainFilter struct{}

// NewDomain creates a filter that keeps opportunities whose domain is
// compatible with the candidate's preferred domain.
func NewDomain() Filter {
	return &domainFilter{}
}

func (f *domainFilter) Name() string { return "domain" }

func (f *domainFilter) Apply(c model.CandidateProfile, opportunities []model.Opportunity) []model.Opportunity {
	pref := strings.ToLower(strings.TrimSpace(c.PreferredDomain))
	if pref == "" {
		return opportunities
	}

	kept := make([]model.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if DomainsCompatible(pref, strings.ToLower(strings.TrimSpace(o.Domain))) {
			kept = append(kept, o)
		}
	}
	return kept
}

// DomainsCompatible reports whether two lowercased domain strings match:
// equal, one contains the other, or both belong to the same keyword
// family. Empty opportunity domains never constrain.
func DomainsCompatible(pref, domain string) bool {
	if domain == "" {
		return true
	}
	if pref == domain || strings.Contains(pref, domain) || strings.Contains(domain, pref) {
		return true
	}
	for _, kw := range relatedKeywords {
		if containsKeyword(pref, kw) && containsKeyword(domain, kw) {
			return true
		}
	}
	return false
}

// containsKeyword matches short family keywords on word boundaries so
// "ai" does not fire inside "training".
func containsKeyword(s, kw string) bool {
	if len(kw) > 2 {
		return strings.Contains(s, kw)
	}
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == kw {
			return true
		}
	}
	return false
}

type locationFilter struct{}

// NewLocation creates a filter that keeps opportunities reachable from the
// candidate's preferred location. Remote on either side always passes.
func NewLocation() Filter {
	return &locationFilter{}
}

func (f *locationFilter) Name() string { return "location" }

func (f *locationFilter) Apply(c model.CandidateProfile, opportunities []model.Opportunity) []model.Opportunity {
	pref := strings.ToLower(strings.TrimSpace(c.PreferredLocation))
	if pref == "" || pref == "remote" {
		return opportunities
	}

	kept := make([]model.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		loc := strings.ToLower(strings.TrimSpace(o.Location))
		if loc == "" || loc == "remote" || loc == pref {
			kept = append(kept, o)
		}
	}
	return kept
}

type durationFilter struct{}

// NewDuration creates the duration step. It currently passes everything
// through but keeps the stage named for step reporting.
func NewDuration() Filter {
	return &durationFilter{}
}

func (f *durationFilter) Name() string { return "duration" }

func (f *durationFilter) Apply(_ model.CandidateProfile, opportunities []model.Opportunity) []model.Opportunity {
	return opportunities
}

type enrollmentFilter struct {
	compatibilityRule bool
}

// NewEnrollment creates the enrollment step. Without the compatibility
// rule it passes everything through; with it, candidate enrollment status
// and opportunity type must be compatible.
func NewEnrollment(compatibilityRule bool) Filter {
	return &enrollmentFilter{compatibilityRule: compatibilityRule}
}

func (f *enrollmentFilter) Name() string { return "enrollment" }

func (f *enrollmentFilter) Apply(c model.CandidateProfile, opportunities []model.Opportunity) []model.Opportunity {
	if !f.compatibilityRule {
		return opportunities
	}

	status := normalizeEngagement(c.EnrollmentStatus)
	if status == "" {
		return opportunities
	}

	kept := make([]model.Opportunity, 0, len(opportunities))
	for _, o := range opportunities {
		if enrollmentCompatible(status, normalizeEngagement(o.Type)) {
			kept = append(kept, o)
		}
	}
	return kept
}

// enrollmentCompatible implements the engagement matrix: equal types fit,
// full-time and part-time cross-fit, remote or online enrollment fits
// full-time postings.
func enrollmentCompatible(status, oppType string) bool {
	if oppType == "" || status == oppType {
		return true
	}
	if (status == "full-time" && oppType == "part-time") ||
		(status == "part-time" && oppType == "full-time") {
		return true
	}
	if (status == "remote" || status == "online") && oppType == "full-time" {
		return true
	}
	return false
}

func normalizeEngagement(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// Default returns the standard pipeline stages in order.
func Default(enrollmentRule bool) []Filter {
	return []Filter{
		NewDomain(),
		NewLocation(),
		NewDuration(),
		NewEnrollment(enrollmentRule),
	}
}
