// Package rules holds the projection rules shared by every renderer:
// which sections appear, in which order, and how dates and contact
// details are formatted. Both the on-screen template projection and the
// flow-document serializer consume this package, so their omission and
// formatting decisions cannot drift apart.
package rules

import (
	"strings"
	"time"

	"github.com/goodsign/monday"

	"resume-studio/resume/model"
)

// Section names a renderable document section.
type Section string

const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// PresentLabel is the literal end marker for ongoing entries.
const PresentLabel = "Present"

// CanonicalOrder is the display order used when a document carries no
// explicit section ordering.
func CanonicalOrder() []Section {
	return []Section{SectionSummary, SectionExperience, SectionEducation, SectionSkills}
}

// Visible reports whether a section has content to render. Empty lists
// and a blank summary yield no section at all, never an empty heading.
func Visible(doc model.Document, s Section) bool {
	switch s {
	case SectionSummary:
		return strings.TrimSpace(doc.PersonalInfo.Summary) != ""
	case SectionExperience:
		return len(doc.Experience) > 0
	case SectionEducation:
		return len(doc.Education) > 0
	case SectionSkills:
		return len(doc.Skills) > 0
	}
	return false
}

// VisibleSections returns the sections to render, in display order.
// The document's SectionOrder is honored where present; unknown tokens
// are skipped and sections it omits are appended in canonical order.
func VisibleSections(doc model.Document) []Section {
	ordered := make([]Section, 0, 4)
	seen := make(map[Section]struct{}, 4)

	for _, token := range doc.SectionOrder {
		s := Section(strings.ToLower(strings.TrimSpace(token)))
		if !known(s) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		ordered = append(ordered, s)
	}
	for _, s := range CanonicalOrder() {
		if _, ok := seen[s]; !ok {
			ordered = append(ordered, s)
		}
	}

	out := ordered[:0]
	for _, s := range ordered {
		if Visible(doc, s) {
			out = append(out, s)
		}
	}
	return out
}

func known(s Section) bool {
	switch s {
	case SectionSummary, SectionExperience, SectionEducation, SectionSkills:
		return true
	}
	return false
}

// DateRange formats a start/end pair as "Jan 2020 - Mar 2022" using the
// viewer's locale month names. When current is true the end value is
// never read and the literal PresentLabel is substituted.
func DateRange(start, end string, current bool, locale string) string {
	from := FormatMonth(start, locale)
	to := PresentLabel
	if !current {
		to = FormatMonth(end, locale)
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	}
	return from + " - " + to
}

// FormatMonth renders a YYYY-MM value as month+year in the given
// locale. Unparseable values pass through untouched so a renderer never
// fails on a date.
func FormatMonth(value, locale string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	t, err := time.Parse("2006-01", trimmed)
	if err != nil {
		return trimmed
	}
	return monday.Format(t, "Jan 2006", localeOrDefault(locale))
}

func localeOrDefault(locale string) monday.Locale {
	if locale == "" {
		return monday.LocaleEnUS
	}
	for _, l := range monday.ListLocales() {
		if string(l) == locale {
			return l
		}
	}
	return monday.LocaleEnUS
}

// ContactLine joins the present fields among email, phone, and location
// with a consistent separator. Absent fields never leave a dangling
// separator.
func ContactLine(p model.PersonalInfo) string {
	parts := make([]string, 0, 3)
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " | ")
}

// DescriptionLines splits a newline-delimited description into bullet
// lines, dropping blanks.
func DescriptionLines(description string) []string {
	var out []string
	for _, line := range strings.Split(description, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SkillsLine joins skill names with a separator glyph for renderers
// that emit skills as a single line.
func SkillsLine(skills []model.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if trimmed := strings.TrimSpace(s.Name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return strings.Join(names, " • ")
}

// DegreeLine renders an education entry's "Degree in Field" line with
// an optional GPA suffix. Absent pieces never leave dangling glue text.
func DegreeLine(edu model.Education) string {
	line := edu.Degree
	if edu.Field != "" {
		if line != "" {
			line += " in "
		}
		line += edu.Field
	}
	if edu.GPA != "" {
		line += " | GPA: " + edu.GPA
	}
	return line
}

// RoleLine renders an experience entry's "Position — Company" line.
func RoleLine(exp model.Experience) string {
	line := exp.Position
	if exp.Company != "" {
		if line != "" {
			line += " — "
		}
		line += exp.Company
	}
	return line
}

// MetaLine joins a location with a formatted date range.
func MetaLine(location, dateRange string) string {
	switch {
	case location == "":
		return dateRange
	case dateRange == "":
		return location
	}
	return location + " | " + dateRange
}

// Heading is the human heading rendered for a section.
func Heading(s Section) string {
	switch s {
	case SectionSummary:
		return "Summary"
	case SectionExperience:
		return "Experience"
	case SectionEducation:
		return "Education"
	case SectionSkills:
		return "Skills"
	}
	return ""
}
