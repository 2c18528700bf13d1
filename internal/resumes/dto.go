package resumes

import (
	"encoding/json"
	"time"

	"resume-studio/resume/model"
)

// resumeRequest is the inbound create/update payload. Document is kept
// raw so it can be schema-validated before unmarshaling.
type resumeRequest struct {
	Title    string          `json:"title"`
	Template string          `json:"template"`
	Font     string          `json:"font"`
	Document json.RawMessage `json:"document"`
}

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Template  string         `json:"template"`
	Font      string         `json:"font"`
	Document  model.Document `json:"document"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func toResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		ID:        res.ID,
		Title:     res.Title,
		Template:  res.Template,
		Font:      res.Font,
		Document:  res.Document,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func toResponses(list []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		out = append(out, toResponse(res))
	}
	return out
}
