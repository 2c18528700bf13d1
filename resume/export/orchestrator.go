// Package export sequences the save-then-render workflow behind the
// export actions and guarantees the shared render state is never left
// mid-mutation: one export at a time, forced layout always restored by
// the render layer, every failure path returning to Idle.
package export

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

// Format selects the output serialization.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Kind names the document being exported; it only affects the
// suggested filename.
type Kind string

const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover-letter"
)

// Filename is the attachment name for a kind/format pair.
func Filename(kind Kind, format Format) string {
	base := string(kind)
	if base == "" {
		base = string(KindResume)
	}
	return base + "." + string(format)
}

// State is the orchestrator's phase for the export in flight.
type State string

const (
	StateIdle      State = "idle"
	StateSaving    State = "saving"
	StateExporting State = "exporting"
)

var (
	// ErrBusy rejects a trigger that arrives while an export is already
	// in flight. The second trigger is refused, never queued.
	ErrBusy = errors.New("export already in progress")

	// ErrLoginRequired is returned for unauthenticated callers after
	// their draft has been stashed for pickup on return.
	ErrLoginRequired = errors.New("login required")
)

// Saver persists documents before an export runs. Any error aborts the
// export before rendering starts.
type Saver interface {
	Save(ctx context.Context, doc model.Document) (string, error)
	Update(ctx context.Context, id string, doc model.Document) error
}

// Renderer produces the export payloads. Both methods read the
// canonical document only.
type Renderer interface {
	RenderPDF(ctx context.Context, doc model.Document, tplID project.TemplateID, fontID project.FontID) ([]byte, error)
	RenderDOCX(ctx context.Context, doc model.Document) ([]byte, error)
}

// Notifier receives user-facing outcome messages. Internal errors are
// converted at this boundary; callers never see raw render errors.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// AuthChecker reports whether the caller may persist and export.
type AuthChecker interface {
	Authenticated(ctx context.Context) bool
}

// Request describes one export trigger. An empty ID saves a new
// document; otherwise the existing one is updated in place.
type Request struct {
	ID       string
	Document model.Document
	Kind     Kind
	Format   Format
	Template project.TemplateID
	Font     project.FontID
}

// Result is a finished export: the payload plus its attachment name
// and the document id the save step produced.
type Result struct {
	DocumentID string
	Filename   string
	Data       []byte
}

// Orchestrator runs the Idle -> Saving -> Exporting -> Idle workflow.
// A single orchestrator serializes exports over one shared rasterizer.
type Orchestrator struct {
	saver    Saver
	renderer Renderer
	notifier Notifier
	auth     AuthChecker
	stash    *DraftStash

	mu    sync.Mutex
	state State
	busy  sync.Mutex
}

func NewOrchestrator(saver Saver, renderer Renderer, notifier Notifier, auth AuthChecker, stash *DraftStash) *Orchestrator {
	return &Orchestrator{
		saver:    saver,
		renderer: renderer,
		notifier: notifier,
		auth:     auth,
		stash:    stash,
		state:    StateIdle,
	}
}

// State reports the current phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Busy reports whether an export is in flight.
func (o *Orchestrator) Busy() bool {
	return o.State() != StateIdle
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Export runs one full export. Re-entrant triggers fail fast with
// ErrBusy. An unauthenticated caller gets the draft stashed and
// ErrLoginRequired; nothing is saved or rendered. A save failure
// aborts before any rendering and surfaces the upstream message
// verbatim. A render failure is reported generically. Every path ends
// back at Idle.
func (o *Orchestrator) Export(ctx context.Context, req Request) (*Result, error) {
	if !o.busy.TryLock() {
		return nil, ErrBusy
	}
	defer o.busy.Unlock()
	defer o.setState(StateIdle)

	if o.auth != nil && !o.auth.Authenticated(ctx) {
		if o.stash != nil {
			o.stash.Put(PendingDraftKey, req.Document)
		}
		return nil, ErrLoginRequired
	}

	o.setState(StateSaving)
	id, err := o.persist(ctx, req)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "could not save document"
		}
		o.notifyFailure(msg)
		return nil, fmt.Errorf("save before export: %w", err)
	}

	o.setState(StateExporting)
	data, err := o.render(ctx, req)
	if err != nil {
		o.notifyFailure("export failed")
		return nil, fmt.Errorf("render %s: %w", req.Format, err)
	}
	if data == nil {
		// Nothing to capture. Silent no-op by contract.
		return nil, nil
	}

	o.notifySuccess(fmt.Sprintf("%s exported", Filename(req.Kind, req.Format)))
	return &Result{
		DocumentID: id,
		Filename:   Filename(req.Kind, req.Format),
		Data:       data,
	}, nil
}

func (o *Orchestrator) persist(ctx context.Context, req Request) (string, error) {
	if req.ID == "" {
		return o.saver.Save(ctx, req.Document)
	}
	if err := o.saver.Update(ctx, req.ID, req.Document); err != nil {
		return "", err
	}
	return req.ID, nil
}

func (o *Orchestrator) render(ctx context.Context, req Request) ([]byte, error) {
	switch req.Format {
	case FormatDOCX:
		return o.renderer.RenderDOCX(ctx, req.Document)
	case FormatPDF:
		return o.renderer.RenderPDF(ctx, req.Document, req.Template, req.Font)
	}
	return nil, fmt.Errorf("unknown export format %q", req.Format)
}

func (o *Orchestrator) notifySuccess(msg string) {
	if o.notifier != nil {
		o.notifier.Success(msg)
	}
}

func (o *Orchestrator) notifyFailure(msg string) {
	if o.notifier != nil {
		o.notifier.Failure(msg)
	}
}
