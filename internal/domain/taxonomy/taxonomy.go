// Package taxonomy maps free-text roles and preferences onto a closed
// set of domain labels used for boosting and filtering.
package taxonomy

import (
	"strings"
)

// Canonical domain labels. General is the unresolved bucket.
const (
	DataScience         = "Data Science"
	QualityAssurance    = "Quality Assurance"
	BusinessDevelopment = "Business Development"
	Finance             = "Finance"
	WebDevelopment      = "Web Development"
	Design              = "Design"
	Marketing           = "Marketing"
	HumanResources      = "Human Resources"
	ContentWriting      = "Content Writing"
	General             = "General"
)

// rule binds a domain label to its trigger keywords. Rules are checked in
// order; the first rule with a matching keyword wins, so more specific
// domains must come before broader ones ("data engineer" resolves to
// Data Science even though "engineer" alone would hit Web Development).
type rule struct {
	domain   string
	keywords []string
}

// Growth and insurance/consultant titles resolve after the main rules,
// so "Growth Designer" stays Design while a bare "Growth Catalyst" still
// lands in Business Development.
var rules = []rule{
	{DataScience, []string{"data scientist", "data analyst", "data engineer", "data science"}},
	{QualityAssurance, []string{"testing", "qa", "quality", "tester", "assurance"}},
	{BusinessDevelopment, []string{"business development", "corporate sales", "sales", "business"}},
	{Finance, []string{"finance", "financial", "accounts", "account"}},
	{WebDevelopment, []string{"full stack", "frontend", "backend", "web", "developer", "engineer", "react", "angular", "javascript", "python"}},
	{Design, []string{"design", "ui", "ux", "graphic", "visual"}},
	{Marketing, []string{"digital marketing", "marketing", "seo", "social media"}},
	{HumanResources, []string{"human", "hr", "recruitment"}},
	{ContentWriting, []string{"content", "writer", "editor"}},
	{BusinessDevelopment, []string{"growth"}},
	{Finance, []string{"insurance", "consultant"}},
}

// Classify resolves free text to a canonical domain label. Text that
// matches no rule resolves to General.
func Classify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return General
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if matchKeyword(s, kw) {
				return r.domain
			}
		}
	}
	return General
}

// matchKeyword matches short keywords on word boundaries so "ui" does
// not fire inside "recruitment" or "hr" inside "threshold". Longer
// keywords keep plain substring semantics.
func matchKeyword(s, kw string) bool {
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

// Resolved reports whether a label carries real domain information.
func Resolved(domain string) bool {
	return domain != "" && domain != General
}

// Domains returns the canonical label set in precedence order,
// General last.
func Domains() []string {
	out := make([]string, 0, len(rules)+1)
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.domain] {
			continue
		}
		seen[r.domain] = true
		out = append(out, r.domain)
	}
	return append(out, General)
}
