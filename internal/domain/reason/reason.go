// Package reason produces the human-readable justification attached to
// each recommendation. Clauses are assembled in a fixed order from the
// same signals the pipeline and ranker use, so the text stays consistent
// with the score.
package reason

import (
	"fmt"
	"strings"

	"internmatch/internal/domain/filter"
	"internmatch/internal/domain/model"
)

// Explain builds the recommendation justification for one pairing. The
// result is deterministic and never empty.
func Explain(c model.CandidateProfile, o model.Opportunity) string {
	clauses := make([]string, 0, 5)

	if matched := skillMatches(c.Skills, o.Role); len(matched) > 0 {
		clauses = append(clauses, fmt.Sprintf("matches your skills in %s", strings.Join(matched, ", ")))
	}

	if clause := domainClause(c.PreferredDomain, o.Domain); clause != "" {
		clauses = append(clauses, clause)
	}

	if clause := locationClause(c.PreferredLocation, o.Location); clause != "" {
		clauses = append(clauses, clause)
	}

	if clause := engagementClause(c.EnrollmentStatus, o.Type, o.Duration); clause != "" {
		clauses = append(clauses, clause)
	}

	if o.CompensationValue() > 0 {
		clauses = append(clauses, fmt.Sprintf("offers competitive compensation of %s", strings.TrimSpace(o.Compensation)))
	}

	if len(clauses) == 0 {
		clauses = append(clauses, "matches your profile based on analysis")
	}

	return "This opportunity " + strings.Join(clauses, ", ") + "."
}

// skillMatches returns the candidate skills that overlap the role text,
// in the order they appear in the profile. A skill overlaps when it is a
// substring of the role (or vice versa) or shares a word longer than two
// characters, so trivial tokens never trigger the clause.
func skillMatches(skills, role string) []string {
	roleLower := strings.ToLower(strings.TrimSpace(role))
	if roleLower == "" {
		return nil
	}
	roleWords := wordSet(roleLower)

	var matched []string
	for _, raw := range strings.Split(skills, ",") {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		lower := strings.ToLower(skill)
		if strings.Contains(roleLower, lower) || strings.Contains(lower, roleLower) {
			matched = append(matched, skill)
			continue
		}
		for word := range wordSet(lower) {
			if len(word) > 2 {
				if _, ok := roleWords[word]; ok {
					matched = append(matched, skill)
					break
				}
			}
		}
	}
	return matched
}

func domainClause(pref, domain string) string {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return ""
	}
	prefLower := strings.ToLower(pref)
	domainLower := strings.ToLower(strings.TrimSpace(domain))

	switch {
	case domainLower != "" && prefLower == domainLower:
		return fmt.Sprintf("matches your preferred domain in %s", pref)
	case filter.DomainsCompatible(prefLower, domainLower):
		return fmt.Sprintf("is related to your interest in %s", pref)
	default:
		return ""
	}
}

func locationClause(pref, location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	locLower := strings.ToLower(location)
	prefLower := strings.ToLower(strings.TrimSpace(pref))

	switch {
	case prefLower != "" && locLower == prefLower:
		return fmt.Sprintf("is available in your chosen location (%s)", strings.TrimSpace(pref))
	case locLower == "remote":
		return "offers remote work flexibility"
	default:
		return fmt.Sprintf("is available at %s", location)
	}
}

func engagementClause(status, oppType, duration string) string {
	status = strings.TrimSpace(status)
	oppType = strings.TrimSpace(oppType)
	statusLower := strings.ToLower(status)

	switch {
	case oppType != "" && (statusLower == "full-time" || statusLower == "part-time"):
		return fmt.Sprintf("offers a %s role since you are currently %s", oppType, status)
	case oppType != "" && (statusLower == "remote" || statusLower == "online" || statusLower == "remote/online"):
		return fmt.Sprintf("offers a %s role which is suitable for your situation", oppType)
	case duration != "":
		return "has a duration that matches your availability"
	default:
		return ""
	}
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		out[w] = struct{}{}
	}
	return out
}
