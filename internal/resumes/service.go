package resumes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

// Service contains business logic for resumes.
type Service struct {
	Repo Repo

	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Create validates and stores a new resume for a user.
func (s *Service) Create(ctx context.Context, userID string, input Resume) (Resume, error) {
	if userID == "" {
		return Resume{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if err := input.Document.Validate(); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	res := Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     input.Title,
		Template:  project.ParseTemplate(input.Template).String(),
		Font:      string(project.ParseFont(input.Font)),
		Document:  input.Document,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if res.Title == "" {
		res.Title = res.Document.PersonalInfo.FullName
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// Get returns a resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	if userID == "" || id == "" {
		return Resume{}, fmt.Errorf("%w: user id and resume id required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// Update validates and replaces an existing resume.
func (s *Service) Update(ctx context.Context, userID, id string, input Resume) (Resume, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	if err := input.Document.Validate(); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing.Title = input.Title
	if existing.Title == "" {
		existing.Title = input.Document.PersonalInfo.FullName
	}
	existing.Template = project.ParseTemplate(input.Template).String()
	existing.Font = string(project.ParseFont(input.Font))
	existing.Document = input.Document
	existing.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Resume{}, err
	}
	return existing, nil
}

// List returns resumes for a user, most recently updated first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a resume owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return fmt.Errorf("%w: user id and resume id required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, userID, id)
}

// UpsertExperience adds or replaces one experience entry by entry id.
func (s *Service) UpsertExperience(ctx context.Context, userID, id string, entry model.Experience) (Resume, error) {
	return s.mutate(ctx, userID, id, func(doc *model.Document) {
		doc.UpsertExperience(entry)
	})
}

// RemoveExperience deletes one experience entry by entry id.
func (s *Service) RemoveExperience(ctx context.Context, userID, id, entryID string) (Resume, error) {
	return s.mutateChecked(ctx, userID, id, func(doc *model.Document) bool {
		return doc.RemoveExperience(entryID)
	})
}

// UpsertEducation adds or replaces one education entry by entry id.
func (s *Service) UpsertEducation(ctx context.Context, userID, id string, entry model.Education) (Resume, error) {
	return s.mutate(ctx, userID, id, func(doc *model.Document) {
		doc.UpsertEducation(entry)
	})
}

// RemoveEducation deletes one education entry by entry id.
func (s *Service) RemoveEducation(ctx context.Context, userID, id, entryID string) (Resume, error) {
	return s.mutateChecked(ctx, userID, id, func(doc *model.Document) bool {
		return doc.RemoveEducation(entryID)
	})
}

// UpsertSkill adds or replaces one skill entry by entry id.
func (s *Service) UpsertSkill(ctx context.Context, userID, id string, entry model.Skill) (Resume, error) {
	return s.mutate(ctx, userID, id, func(doc *model.Document) {
		doc.UpsertSkill(entry)
	})
}

// RemoveSkill deletes one skill entry by entry id.
func (s *Service) RemoveSkill(ctx context.Context, userID, id, entryID string) (Resume, error) {
	return s.mutateChecked(ctx, userID, id, func(doc *model.Document) bool {
		return doc.RemoveSkill(entryID)
	})
}

func (s *Service) mutate(ctx context.Context, userID, id string, apply func(*model.Document)) (Resume, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}

	apply(&res.Document)
	if err := res.Document.Validate(); err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	res.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

func (s *Service) mutateChecked(ctx context.Context, userID, id string, apply func(*model.Document) bool) (Resume, error) {
	res, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}

	if !apply(&res.Document) {
		return Resume{}, ErrNotFound
	}
	res.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}
