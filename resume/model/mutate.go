package model

import (
	"github.com/google/uuid"
)

// Entry mutations are keyed by entry id. IDs are generated once on
// creation and stay stable across edits.

// UpsertExperience replaces the entry with a matching id, or appends a
// new entry (generating an id when blank). Returns the stored id.
func (d *Document) UpsertExperience(entry Experience) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
		d.Experience = append(d.Experience, entry)
		return entry.ID
	}
	for i := range d.Experience {
		if d.Experience[i].ID == entry.ID {
			d.Experience[i] = entry
			return entry.ID
		}
	}
	d.Experience = append(d.Experience, entry)
	return entry.ID
}

// RemoveExperience deletes the entry with the given id, preserving the
// order of the remaining entries.
func (d *Document) RemoveExperience(id string) bool {
	for i := range d.Experience {
		if d.Experience[i].ID == id {
			d.Experience = append(d.Experience[:i], d.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertEducation replaces or appends an education entry by id.
func (d *Document) UpsertEducation(entry Education) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
		d.Education = append(d.Education, entry)
		return entry.ID
	}
	for i := range d.Education {
		if d.Education[i].ID == entry.ID {
			d.Education[i] = entry
			return entry.ID
		}
	}
	d.Education = append(d.Education, entry)
	return entry.ID
}

// RemoveEducation deletes the education entry with the given id.
func (d *Document) RemoveEducation(id string) bool {
	for i := range d.Education {
		if d.Education[i].ID == id {
			d.Education = append(d.Education[:i], d.Education[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertSkill replaces or appends a skill entry by id.
func (d *Document) UpsertSkill(entry Skill) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
		d.Skills = append(d.Skills, entry)
		return entry.ID
	}
	for i := range d.Skills {
		if d.Skills[i].ID == entry.ID {
			d.Skills[i] = entry
			return entry.ID
		}
	}
	d.Skills = append(d.Skills, entry)
	return entry.ID
}

// RemoveSkill deletes the skill entry with the given id.
func (d *Document) RemoveSkill(id string) bool {
	for i := range d.Skills {
		if d.Skills[i].ID == id {
			d.Skills = append(d.Skills[:i], d.Skills[i+1:]...)
			return true
		}
	}
	return false
}
