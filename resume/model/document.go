package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Document is the canonical resume payload every renderer consumes.
// List order is display order; nothing downstream may re-sort entries.
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	SectionOrder []string     `json:"sectionOrder,omitempty"`
	FontFamily   string       `json:"fontFamily,omitempty"`
}

// PersonalInfo captures top-of-resume contact and identity details.
// String fields default to empty string, never absent.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	// Photo is an inline-encoded image: either a data URI or bare base64.
	Photo string `json:"photo,omitempty"`
}

// Experience represents a work history entry.
type Experience struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`
	Start    string `json:"startDate"`
	End      string `json:"endDate"`
	// Current marks an ongoing role. When set, End is display-irrelevant
	// and every renderer substitutes the literal "Present".
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Start       string `json:"startDate"`
	End         string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillLevel is the closed proficiency scale. Ordinal for progress-bar
// rendering only, never a sort key.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Skill represents a single skill entry.
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

var documentDatePattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Validate enforces required fields and formatting rules for Document.
func (d Document) Validate() error {
	if strings.TrimSpace(d.PersonalInfo.FullName) == "" {
		return fmt.Errorf("personalInfo.fullName is required")
	}
	if err := uniqueIDs("experience", experienceIDs(d.Experience)); err != nil {
		return err
	}
	if err := uniqueIDs("education", educationIDs(d.Education)); err != nil {
		return err
	}
	if err := uniqueIDs("skills", skillIDs(d.Skills)); err != nil {
		return err
	}
	for i, exp := range d.Experience {
		if err := validateDateField(exp.Start, fmt.Sprintf("experience[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDateField(exp.End, fmt.Sprintf("experience[%d].endDate", i)); err != nil {
			return err
		}
	}
	for i, edu := range d.Education {
		if err := validateDateField(edu.Start, fmt.Sprintf("education[%d].startDate", i)); err != nil {
			return err
		}
		if err := validateDateField(edu.End, fmt.Sprintf("education[%d].endDate", i)); err != nil {
			return err
		}
	}
	for i, skill := range d.Skills {
		if strings.TrimSpace(skill.Name) == "" {
			return fmt.Errorf("skills[%d].name is required", i)
		}
		if skill.Level != "" && !skill.Level.Valid() {
			return fmt.Errorf("skills[%d].level must be one of beginner, intermediate, advanced, expert", i)
		}
	}
	return nil
}

// Valid reports whether the level is a known token.
func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

// Percent maps the level onto a 0-100 scale for progress-bar rendering.
func (l SkillLevel) Percent() int {
	switch l {
	case LevelBeginner:
		return 25
	case LevelIntermediate:
		return 50
	case LevelAdvanced:
		return 75
	case LevelExpert:
		return 100
	}
	return 0
}

func validateDateField(value, field string) error {
	if value == "" || value == "Present" {
		return nil
	}
	if !documentDatePattern.MatchString(value) {
		return fmt.Errorf("%s must be YYYY-MM or empty", field)
	}
	return nil
}

func uniqueIDs(list string, ids []string) error {
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		if first, ok := seen[id]; ok {
			return fmt.Errorf("%s[%d].id duplicates %s[%d].id", list, i, list, first)
		}
		seen[id] = i
	}
	return nil
}

func experienceIDs(items []Experience) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func educationIDs(items []Education) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func skillIDs(items []Skill) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}
