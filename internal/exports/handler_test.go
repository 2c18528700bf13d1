package exports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/resumes"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/resume/export"
	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

type fakeRenderer struct {
	pdf     []byte
	docx    []byte
	err     error
	block   chan struct{}
	started chan struct{}
}

func (r *fakeRenderer) RenderPDF(context.Context, model.Document, project.TemplateID, project.FontID) ([]byte, error) {
	if r.started != nil {
		select {
		case r.started <- struct{}{}:
		default:
		}
	}
	if r.block != nil {
		<-r.block
	}
	return r.pdf, r.err
}

func (r *fakeRenderer) RenderDOCX(context.Context, model.Document) ([]byte, error) {
	return r.docx, r.err
}

func newExportRouter(renderer export.Renderer) (*gin.Engine, *resumes.Service) {
	gin.SetMode(gin.TestMode)
	svc := resumes.NewService(resumes.NewMemoryRepo())
	stash := export.NewDraftStash(time.Minute)
	handler := NewHandler(svc, NewOrchestrator(svc, renderer, stash), stash)

	r := gin.New()
	r.Use(middleware.Identity())
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, svc
}

func storeSample(t *testing.T, svc *resumes.Service) resumes.Resume {
	t.Helper()
	res, err := svc.Create(context.Background(), "user-1", resumes.Resume{
		Title:    "Sample",
		Template: "modern",
		Document: model.SampleDocument(),
	})
	if err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return res
}

func post(r *gin.Engine, path, userID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportStoredResumePDF(t *testing.T) {
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.4 fake")}
	r, svc := newExportRouter(renderer)
	res := storeSample(t, svc)

	w := post(r, "/api/v1/resumes/"+res.ID+"/export/pdf", "user-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="resume.pdf"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("Content-Type = %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), renderer.pdf) {
		t.Fatalf("body is not the rendered payload")
	}
	if got := w.Header().Get("X-Resume-Id"); got != res.ID {
		t.Fatalf("X-Resume-Id = %q, want %q", got, res.ID)
	}
}

func TestExportStoredResumeDOCXAsCoverLetter(t *testing.T) {
	renderer := &fakeRenderer{docx: []byte("PK fake docx")}
	r, svc := newExportRouter(renderer)
	res := storeSample(t, svc)

	w := post(r, "/api/v1/resumes/"+res.ID+"/export/docx?kind=cover-letter", "user-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="cover-letter.docx"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
}

func TestExportMissingResume(t *testing.T) {
	r, _ := newExportRouter(&fakeRenderer{pdf: []byte("x")})

	w := post(r, "/api/v1/resumes/nope/export/pdf", "user-1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestExportDraftAsGuestStashesAndRejects(t *testing.T) {
	renderer := &fakeRenderer{pdf: []byte("x")}
	r, _ := newExportRouter(renderer)

	raw, _ := json.Marshal(model.SampleDocument())
	body, _ := json.Marshal(map[string]any{
		"template": "modern",
		"document": json.RawMessage(raw),
	})

	w := post(r, "/api/v1/exports/pdf", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (body %s)", w.Code, w.Body.String())
	}

	// The stashed draft is retrievable exactly once.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/draft", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("draft fetch status = %d", rec.Code)
	}
	var out struct {
		Document model.Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if out.Document.PersonalInfo.FullName != model.SampleDocument().PersonalInfo.FullName {
		t.Fatalf("stashed draft differs from submitted document")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/draft", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second draft fetch status = %d, want 404", rec.Code)
	}
}

func TestExportDraftSignedInSavesNewResume(t *testing.T) {
	renderer := &fakeRenderer{pdf: []byte("%PDF")}
	r, svc := newExportRouter(renderer)

	raw, _ := json.Marshal(model.SampleDocument())
	body, _ := json.Marshal(map[string]any{"document": json.RawMessage(raw)})

	w := post(r, "/api/v1/exports/pdf", "user-1", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	savedID := w.Header().Get("X-Resume-Id")
	if savedID == "" {
		t.Fatalf("export must persist the draft and report its id")
	}
	if _, err := svc.Get(context.Background(), "user-1", savedID); err != nil {
		t.Fatalf("persisted resume not found: %v", err)
	}
}

func TestExportBusyReturnsConflict(t *testing.T) {
	renderer := &fakeRenderer{
		pdf:     []byte("x"),
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	r, svc := newExportRouter(renderer)
	res := storeSample(t, svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := post(r, "/api/v1/resumes/"+res.ID+"/export/pdf", "user-1", nil)
		if w.Code != http.StatusOK {
			t.Errorf("first export status = %d", w.Code)
		}
	}()

	select {
	case <-renderer.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first export never started rendering")
	}

	w := post(r, "/api/v1/resumes/"+res.ID+"/export/pdf", "user-1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("second trigger status = %d, want 409 (body %s)", w.Code, w.Body.String())
	}

	close(renderer.block)
	wg.Wait()
}

func TestExportRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("target closed")}
	r, svc := newExportRouter(renderer)
	res := storeSample(t, svc)

	w := post(r, "/api/v1/resumes/"+res.ID+"/export/pdf", "user-1", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if out.Error.Message != "export failed" {
		t.Fatalf("error message = %q, want generic export failed", out.Error.Message)
	}
}
