package export

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

type stubSaver struct {
	saveID  string
	saveErr error

	saved   []model.Document
	updated []string
	release chan struct{}
}

func (s *stubSaver) Save(_ context.Context, doc model.Document) (string, error) {
	if s.release != nil {
		<-s.release
	}
	s.saved = append(s.saved, doc)
	if s.saveErr != nil {
		return "", s.saveErr
	}
	return s.saveID, nil
}

func (s *stubSaver) Update(_ context.Context, id string, _ model.Document) error {
	s.updated = append(s.updated, id)
	return s.saveErr
}

type stubRenderer struct {
	pdf     []byte
	docx    []byte
	err     error
	pdfRuns int
}

func (r *stubRenderer) RenderPDF(context.Context, model.Document, project.TemplateID, project.FontID) ([]byte, error) {
	r.pdfRuns++
	return r.pdf, r.err
}

func (r *stubRenderer) RenderDOCX(context.Context, model.Document) ([]byte, error) {
	return r.docx, r.err
}

type stubNotifier struct {
	successes []string
	failures  []string
}

func (n *stubNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *stubNotifier) Failure(msg string) { n.failures = append(n.failures, msg) }

type stubAuth struct{ ok bool }

func (a stubAuth) Authenticated(context.Context) bool { return a.ok }

func newTestOrchestrator(saver *stubSaver, renderer *stubRenderer, notifier *stubNotifier, authed bool) *Orchestrator {
	return NewOrchestrator(saver, renderer, notifier, stubAuth{ok: authed}, NewDraftStash(time.Minute))
}

func TestExportSavesThenRenders(t *testing.T) {
	saver := &stubSaver{saveID: "doc-1"}
	renderer := &stubRenderer{pdf: []byte("%PDF")}
	notifier := &stubNotifier{}
	orch := newTestOrchestrator(saver, renderer, notifier, true)

	result, err := orch.Export(context.Background(), Request{
		Document: model.SampleDocument(),
		Kind:     KindResume,
		Format:   FormatPDF,
		Template: project.DefaultTemplate,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.DocumentID != "doc-1" || result.Filename != "resume.pdf" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(saver.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(saver.saved))
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification, got %v", notifier.successes)
	}
	if orch.Busy() {
		t.Fatalf("orchestrator must return to idle")
	}
}

func TestExportUpdatesExistingDocument(t *testing.T) {
	saver := &stubSaver{}
	renderer := &stubRenderer{docx: []byte("PK")}
	orch := newTestOrchestrator(saver, renderer, &stubNotifier{}, true)

	result, err := orch.Export(context.Background(), Request{
		ID:       "doc-9",
		Document: model.SampleDocument(),
		Kind:     KindCoverLetter,
		Format:   FormatDOCX,
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.DocumentID != "doc-9" || result.Filename != "cover-letter.docx" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(saver.updated) != 1 || saver.updated[0] != "doc-9" {
		t.Fatalf("expected update of doc-9, got %v", saver.updated)
	}
	if len(saver.saved) != 0 {
		t.Fatalf("update path must not create a new document")
	}
}

func TestExportSaveFailureAbortsBeforeRendering(t *testing.T) {
	saver := &stubSaver{saveErr: errors.New("quota exceeded for plan")}
	renderer := &stubRenderer{pdf: []byte("%PDF")}
	notifier := &stubNotifier{}
	orch := newTestOrchestrator(saver, renderer, notifier, true)

	_, err := orch.Export(context.Background(), Request{
		Document: model.SampleDocument(),
		Format:   FormatPDF,
	})
	if err == nil {
		t.Fatalf("expected save failure")
	}
	if renderer.pdfRuns != 0 {
		t.Fatalf("render must never run after a failed save")
	}
	// The upstream message is surfaced verbatim.
	if len(notifier.failures) != 1 || notifier.failures[0] != "quota exceeded for plan" {
		t.Fatalf("failure notifications = %v", notifier.failures)
	}
	if orch.Busy() {
		t.Fatalf("orchestrator must return to idle after failure")
	}
}

func TestExportRenderFailureNotifiesGenerically(t *testing.T) {
	saver := &stubSaver{saveID: "doc-1"}
	renderer := &stubRenderer{err: errors.New("chrome went away: DevTools target closed")}
	notifier := &stubNotifier{}
	orch := newTestOrchestrator(saver, renderer, notifier, true)

	_, err := orch.Export(context.Background(), Request{
		Document: model.SampleDocument(),
		Format:   FormatPDF,
	})
	if err == nil {
		t.Fatalf("expected render failure")
	}
	if len(notifier.failures) != 1 || notifier.failures[0] != "export failed" {
		t.Fatalf("render failures must surface generically, got %v", notifier.failures)
	}
	if orch.State() != StateIdle {
		t.Fatalf("state = %s, want idle", orch.State())
	}
}

func TestExportUnauthenticatedStashesDraft(t *testing.T) {
	saver := &stubSaver{saveID: "doc-1"}
	renderer := &stubRenderer{pdf: []byte("%PDF")}
	stash := NewDraftStash(time.Minute)
	orch := NewOrchestrator(saver, renderer, &stubNotifier{}, stubAuth{ok: false}, stash)

	doc := model.SampleDocument()
	_, err := orch.Export(context.Background(), Request{Document: doc, Format: FormatPDF})
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("err = %v, want ErrLoginRequired", err)
	}
	if len(saver.saved) != 0 || renderer.pdfRuns != 0 {
		t.Fatalf("guest export must neither save nor render")
	}

	stashed, ok := stash.Take(PendingDraftKey)
	if !ok {
		t.Fatalf("draft was not stashed")
	}
	if stashed.PersonalInfo.FullName != doc.PersonalInfo.FullName {
		t.Fatalf("stashed draft differs from submitted document")
	}
}

func TestExportRejectsConcurrentTrigger(t *testing.T) {
	saver := &stubSaver{saveID: "doc-1", release: make(chan struct{})}
	renderer := &stubRenderer{pdf: []byte("%PDF")}
	orch := newTestOrchestrator(saver, renderer, &stubNotifier{}, true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := orch.Export(context.Background(), Request{
			Document: model.SampleDocument(),
			Format:   FormatPDF,
		}); err != nil {
			t.Errorf("first export: %v", err)
		}
	}()

	// Wait until the first export holds the busy lock inside Save.
	deadline := time.After(2 * time.Second)
	for !orch.Busy() {
		select {
		case <-deadline:
			t.Fatalf("first export never became busy")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	_, err := orch.Export(context.Background(), Request{
		Document: model.SampleDocument(),
		Format:   FormatPDF,
	})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("second trigger err = %v, want ErrBusy", err)
	}

	close(saver.release)
	wg.Wait()
	if len(saver.saved) != 1 {
		t.Fatalf("rejected trigger must not be queued, saves = %d", len(saver.saved))
	}
}

func TestExportMissingCaptureIsSilentNoop(t *testing.T) {
	saver := &stubSaver{saveID: "doc-1"}
	renderer := &stubRenderer{pdf: nil}
	notifier := &stubNotifier{}
	orch := newTestOrchestrator(saver, renderer, notifier, true)

	result, err := orch.Export(context.Background(), Request{
		Document: model.SampleDocument(),
		Format:   FormatPDF,
	})
	if err != nil || result != nil {
		t.Fatalf("missing capture must be a silent no-op, got (%v, %v)", result, err)
	}
	if len(notifier.successes)+len(notifier.failures) != 0 {
		t.Fatalf("no notification expected for a no-op export")
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		kind   Kind
		format Format
		want   string
	}{
		{KindResume, FormatPDF, "resume.pdf"},
		{KindResume, FormatDOCX, "resume.docx"},
		{KindCoverLetter, FormatPDF, "cover-letter.pdf"},
		{KindCoverLetter, FormatDOCX, "cover-letter.docx"},
		{"", FormatPDF, "resume.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.kind, tc.format); got != tc.want {
			t.Fatalf("Filename(%q, %q) = %q, want %q", tc.kind, tc.format, got, tc.want)
		}
	}
}
