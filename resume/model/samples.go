package model

import "strings"

// Sample documents seed a new editing session. IDs are fixed so the
// same profession always yields the same document.

// SampleDocument returns the default starter document.
func SampleDocument() Document {
	return sampleDeveloper()
}

// SampleFor returns a profession-specific starter document, falling
// back to the default sample for unknown professions.
func SampleFor(profession string) Document {
	switch strings.ToLower(strings.TrimSpace(profession)) {
	case "", "developer", "engineer", "software":
		return sampleDeveloper()
	case "designer":
		return sampleDesigner()
	case "marketing":
		return sampleMarketing()
	default:
		return sampleDeveloper()
	}
}

func sampleDeveloper() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			FullName: "Jordan Lee",
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Location: "Austin, TX",
			Title:    "Senior Backend Engineer",
			Summary:  "Backend engineer with 8+ years of experience building resilient APIs and data services.",
			LinkedIn: "https://www.linkedin.com/in/jordanlee",
			Website:  "https://jordanlee.dev",
		},
		Experience: []Experience{
			{
				ID:       "exp-dev-1",
				Company:  "Nimbus Cloud",
				Position: "Senior Backend Engineer",
				Location: "Austin, TX",
				Start:    "2021-03",
				Current:  true,
				Description: "Led migration of the billing platform to event-driven services.\n" +
					"Cut p99 API latency from 900ms to 180ms.",
			},
			{
				ID:          "exp-dev-2",
				Company:     "Acme Analytics",
				Position:    "Backend Engineer",
				Location:    "Remote",
				Start:       "2017-06",
				End:         "2021-02",
				Description: "Built the ingestion pipeline handling 2B events/day.",
			},
		},
		Education: []Education{
			{
				ID:          "edu-dev-1",
				Institution: "University of Texas at Austin",
				Degree:      "B.S.",
				Field:       "Computer Science",
				Start:       "2013-08",
				End:         "2017-05",
				GPA:         "3.8",
			},
		},
		Skills: []Skill{
			{ID: "skill-dev-1", Name: "Go", Level: LevelExpert},
			{ID: "skill-dev-2", Name: "PostgreSQL", Level: LevelAdvanced},
			{ID: "skill-dev-3", Name: "Kubernetes", Level: LevelIntermediate},
		},
	}
}

func sampleDesigner() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			FullName: "Riley Chen",
			Email:    "riley.chen@example.com",
			Phone:    "+1-555-0144",
			Location: "Portland, OR",
			Title:    "Product Designer",
			Summary:  "Product designer focused on accessible, research-driven interfaces.",
			Website:  "https://rileychen.design",
		},
		Experience: []Experience{
			{
				ID:          "exp-des-1",
				Company:     "Brightline Studio",
				Position:    "Product Designer",
				Location:    "Portland, OR",
				Start:       "2020-01",
				Current:     true,
				Description: "Owns the design system used across four product lines.",
			},
		},
		Education: []Education{
			{
				ID:          "edu-des-1",
				Institution: "Rhode Island School of Design",
				Degree:      "BFA",
				Field:       "Graphic Design",
				Start:       "2014-09",
				End:         "2018-06",
			},
		},
		Skills: []Skill{
			{ID: "skill-des-1", Name: "Figma", Level: LevelExpert},
			{ID: "skill-des-2", Name: "User Research", Level: LevelAdvanced},
			{ID: "skill-des-3", Name: "Prototyping", Level: LevelAdvanced},
		},
	}
}

func sampleMarketing() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			FullName: "Sam Okafor",
			Email:    "sam.okafor@example.com",
			Phone:    "+1-555-0188",
			Location: "Chicago, IL",
			Title:    "Growth Marketing Manager",
			Summary:  "Marketing manager who ships measurable campaigns across paid and organic channels.",
			LinkedIn: "https://www.linkedin.com/in/samokafor",
		},
		Experience: []Experience{
			{
				ID:          "exp-mkt-1",
				Company:     "Lakefront Labs",
				Position:    "Growth Marketing Manager",
				Location:    "Chicago, IL",
				Start:       "2019-04",
				Current:     true,
				Description: "Grew qualified pipeline 3x year over year on a flat budget.",
			},
		},
		Education: []Education{
			{
				ID:          "edu-mkt-1",
				Institution: "Northwestern University",
				Degree:      "B.A.",
				Field:       "Communications",
				Start:       "2011-09",
				End:         "2015-06",
			},
		},
		Skills: []Skill{
			{ID: "skill-mkt-1", Name: "SEO", Level: LevelAdvanced},
			{ID: "skill-mkt-2", Name: "Paid Social", Level: LevelExpert},
			{ID: "skill-mkt-3", Name: "Analytics", Level: LevelIntermediate},
		},
	}
}
