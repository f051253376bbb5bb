package seed

import (
	"context"
	"fmt"
	"math/rand"

	"internmatch/internal/domain/model"
	"internmatch/internal/domain/taxonomy"
	"internmatch/pkg/logger"
)

// ID offsets so candidate and opportunity ids never collide in demos.
const (
	candidateIDBase   = 1
	opportunityIDBase = 101
)

// Stipend generation bounds, in thousands of rupees per month.
const (
	stipendMin    = 5
	stipendRange  = 45
	unpaidPercent = 15
)

// profileTemplate ties a domain to the vocabulary its rows draw from.
type profileTemplate struct {
	domain    string
	skills    []string
	roles     []string
	education []string
}

var templates = []profileTemplate{
	{
		domain:    taxonomy.DataScience,
		skills:    []string{"Python", "SQL", "Pandas", "Machine Learning", "Statistics", "TensorFlow", "Data Visualization"},
		roles:     []string{"Data Science Intern", "Data Analyst Intern", "Machine Learning Intern", "Business Intelligence Intern"},
		education: []string{"B.Tech Computer Science", "B.Sc Statistics", "M.Sc Data Science", "MCA"},
	},
	{
		domain:    taxonomy.WebDevelopment,
		skills:    []string{"JavaScript", "React", "Node.js", "HTML", "CSS", "TypeScript", "REST APIs"},
		roles:     []string{"Frontend Developer Intern", "Backend Developer Intern", "Full Stack Intern", "Web Developer Intern"},
		education: []string{"B.Tech Computer Science", "BCA", "B.E Information Technology"},
	},
	{
		domain:    taxonomy.Marketing,
		skills:    []string{"SEO", "Content Marketing", "Social Media", "Google Analytics", "Copywriting", "Email Campaigns"},
		roles:     []string{"Digital Marketing Intern", "SEO Intern", "Social Media Intern", "Brand Marketing Intern"},
		education: []string{"BBA", "MBA Marketing", "B.A Mass Communication"},
	},
	{
		domain:    taxonomy.Design,
		skills:    []string{"Figma", "Adobe Photoshop", "UI Design", "UX Research", "Illustrator", "Wireframing"},
		roles:     []string{"UI/UX Design Intern", "Graphic Design Intern", "Product Design Intern"},
		education: []string{"B.Des", "B.F.A", "Diploma in Design"},
	},
	{
		domain:    taxonomy.Finance,
		skills:    []string{"Excel", "Financial Modelling", "Accounting", "Valuation", "Tally", "Bookkeeping"},
		roles:     []string{"Finance Intern", "Accounting Intern", "Investment Analyst Intern"},
		education: []string{"B.Com", "BBA Finance", "CA Inter", "MBA Finance"},
	},
	{
		domain:    taxonomy.HumanResources,
		skills:    []string{"Recruitment", "Onboarding", "HRMS", "Employee Engagement", "Payroll"},
		roles:     []string{"HR Intern", "Talent Acquisition Intern", "People Operations Intern"},
		education: []string{"BBA", "MBA HR", "B.A Psychology"},
	},
	{
		domain:    taxonomy.ContentWriting,
		skills:    []string{"Content Writing", "Blogging", "Proofreading", "Research", "WordPress"},
		roles:     []string{"Content Writing Intern", "Technical Writer Intern", "Copywriting Intern"},
		education: []string{"B.A English", "B.A Journalism", "M.A English"},
	},
	{
		domain:    taxonomy.BusinessDevelopment,
		skills:    []string{"Sales", "Lead Generation", "Negotiation", "CRM", "Market Research"},
		roles:     []string{"Business Development Intern", "Sales Intern", "Partnerships Intern"},
		education: []string{"BBA", "MBA", "B.Com"},
	},
}

var companies = []string{
	"TechNova Solutions", "BrightPath Labs", "Quantifi Analytics", "PixelForge Studio",
	"GreenLeaf Finance", "Skyline Media", "CodeCrafters", "UrbanHive Technologies",
	"NexGen Systems", "BlueOrbit Software", "Summit Consulting", "Lumina Works",
}

var locations = []string{
	"Bangalore", "Mumbai", "Delhi", "Hyderabad", "Pune", "Chennai", "Remote",
}

var durations = []string{"2 months", "3 months", "6 months"}

var opportunityTypes = []string{"Full-time", "Part-time", "Remote"}

var enrollmentStatuses = []string{"Full-time", "Part-time", "Remote", "Online"}

var firstNames = []string{
	"Aarav", "Ananya", "Rohan", "Priya", "Kabir", "Ishita", "Vihaan", "Meera",
	"Aditya", "Sneha", "Arjun", "Diya", "Karan", "Nisha", "Rahul", "Tanvi",
}

var lastNames = []string{
	"Sharma", "Patel", "Reddy", "Iyer", "Gupta", "Nair", "Singh", "Das",
	"Mehta", "Kulkarni", "Chatterjee", "Rao",
}

// GenerateCandidates produces a reproducible synthetic candidate catalog.
func GenerateCandidates(ctx context.Context, n int, seedVal int64) []model.CandidateProfile {
	rng := rand.New(rand.NewSource(seedVal))
	out := make([]model.CandidateProfile, n)
	for i := 0; i < n; i++ {
		tpl := templates[rng.Intn(len(templates))]
		out[i] = model.CandidateProfile{
			ID:                candidateIDBase + i,
			Name:              pick(rng, firstNames) + " " + pick(rng, lastNames),
			Education:         pick(rng, tpl.education),
			Skills:            pickSkills(rng, tpl.skills),
			PreferredDomain:   tpl.domain,
			PreferredLocation: pick(rng, locations),
			DurationPref:      pick(rng, durations),
			EnrollmentStatus:  pick(rng, enrollmentStatuses),
		}
	}
	logger.Get().Info(ctx, "generated candidates", logger.Int("count", n))
	return out
}

// GenerateOpportunities produces a reproducible synthetic opportunity catalog.
func GenerateOpportunities(ctx context.Context, n int, seedVal int64) []model.Opportunity {
	// Offset the source so candidate and opportunity streams differ even
	// with the same seed.
	rng := rand.New(rand.NewSource(seedVal + 1))
	out := make([]model.Opportunity, n)
	for i := 0; i < n; i++ {
		tpl := templates[rng.Intn(len(templates))]
		out[i] = model.Opportunity{
			ID:           opportunityIDBase + i,
			Company:      pick(rng, companies),
			Role:         pick(rng, tpl.roles),
			Domain:       tpl.domain,
			Location:     pick(rng, locations),
			Duration:     pick(rng, durations),
			Compensation: generateStipend(rng),
			Type:         pick(rng, opportunityTypes),
		}
	}
	logger.Get().Info(ctx, "generated opportunities", logger.Int("count", n))
	return out
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

// pickSkills samples two to four distinct skills from the template pool.
func pickSkills(rng *rand.Rand, pool []string) string {
	count := 2 + rng.Intn(3)
	if count > len(pool) {
		count = len(pool)
	}
	idx := rng.Perm(len(pool))[:count]
	skills := ""
	for i, j := range idx {
		if i > 0 {
			skills += ", "
		}
		skills += pool[j]
	}
	return skills
}

// generateStipend mirrors the stipend formats found in real catalogs,
// including the occasional unpaid posting.
func generateStipend(rng *rand.Rand) string {
	if rng.Intn(100) < unpaidPercent {
		return "Unpaid"
	}
	amount := (stipendMin + rng.Intn(stipendRange)) * 1000
	return fmt.Sprintf("%d INR/month", amount)
}
