package resumes

import (
	"time"

	"resume-studio/resume/model"
)

// Resume is a stored resume owned by a user. Document carries the
// canonical payload every renderer consumes; Template and Font are the
// projection choices last picked for it.
type Resume struct {
	ID        string
	UserID    string
	Title     string
	Template  string
	Font      string
	Document  model.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}
