package exports

import (
	"context"

	"resume-studio/internal/resumes"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/telemetry"
	"resume-studio/resume/model"
)

// principalAuth satisfies export.AuthChecker from the request principal.
type principalAuth struct{}

func (principalAuth) Authenticated(ctx context.Context) bool {
	return middleware.PrincipalFromContext(ctx).Authenticated()
}

// resumeSaver adapts the resumes service to the orchestrator's Saver.
// The user scope comes from the request principal.
type resumeSaver struct {
	svc *resumes.Service
}

func (s resumeSaver) Save(ctx context.Context, doc model.Document) (string, error) {
	p := middleware.PrincipalFromContext(ctx)
	res, err := s.svc.Create(ctx, p.UserID, resumes.Resume{Document: doc})
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

func (s resumeSaver) Update(ctx context.Context, id string, doc model.Document) error {
	p := middleware.PrincipalFromContext(ctx)
	existing, err := s.svc.Get(ctx, p.UserID, id)
	if err != nil {
		return err
	}
	_, err = s.svc.Update(ctx, p.UserID, id, resumes.Resume{
		Title:    existing.Title,
		Template: existing.Template,
		Font:     existing.Font,
		Document: doc,
	})
	return err
}

// logNotifier reports export outcomes through the telemetry logger.
type logNotifier struct{}

func (logNotifier) Success(msg string) {
	telemetry.Info("export.notify", map[string]any{"outcome": "success", "message": msg})
}

func (logNotifier) Failure(msg string) {
	telemetry.Error("export.notify", map[string]any{"outcome": "failure", "message": msg})
}
