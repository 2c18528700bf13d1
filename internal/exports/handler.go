// Package exports exposes the export workflow over HTTP: load or
// accept a document, run it through the export orchestrator, and
// stream back the produced file.
package exports

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/resumes"
	"resume-studio/internal/shared/metrics"
	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/resume/export"
	"resume-studio/resume/model"
	"resume-studio/resume/project"
)

// Handler wires export routes to the orchestrator.
type Handler struct {
	Resumes *resumes.Service
	Orch    *export.Orchestrator
	Stash   *export.DraftStash
}

// NewHandler constructs a Handler around a shared orchestrator. Both
// export formats run through the same orchestrator, so only one export
// is in flight at a time.
func NewHandler(resumeSvc *resumes.Service, orch *export.Orchestrator, stash *export.DraftStash) *Handler {
	return &Handler{Resumes: resumeSvc, Orch: orch, Stash: stash}
}

// NewOrchestrator builds the orchestrator the handler expects, wiring
// the resumes service as its persistence collaborator.
func NewOrchestrator(resumeSvc *resumes.Service, renderer export.Renderer, stash *export.DraftStash) *export.Orchestrator {
	return export.NewOrchestrator(resumeSaver{svc: resumeSvc}, renderer, logNotifier{}, principalAuth{}, stash)
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/export/pdf", h.exportStored(export.FormatPDF))
	rg.POST("/resumes/:id/export/docx", h.exportStored(export.FormatDOCX))
	rg.POST("/exports/pdf", h.exportDraft(export.FormatPDF))
	rg.POST("/exports/docx", h.exportDraft(export.FormatDOCX))
	rg.GET("/exports/draft", h.takeDraft)
}

// exportStored exports a resume the user already persisted. The
// document is re-saved first so the file always reflects stored state.
func (h *Handler) exportStored(format export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		id := c.Param("id")
		c.Set("resumeId", id)
		c.Set("exportFormat", string(format))

		res, err := h.Resumes.Get(c.Request.Context(), userID, id)
		if err != nil {
			h.writeError(c, err)
			return
		}

		tplID := project.ParseTemplate(c.DefaultQuery("template", res.Template))
		fontID := project.ParseFont(c.DefaultQuery("font", res.Font))

		h.run(c, export.Request{
			ID:       id,
			Document: res.Document,
			Kind:     parseKind(c.Query("kind")),
			Format:   format,
			Template: tplID,
			Font:     fontID,
		})
	}
}

type draftExportRequest struct {
	Template string          `json:"template"`
	Font     string          `json:"font"`
	Kind     string          `json:"kind"`
	Document json.RawMessage `json:"document"`
}

// exportDraft exports a document sent in the request body without
// requiring it to exist yet. Guests get the draft stashed and a 401.
func (h *Handler) exportDraft(format export.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("exportFormat", string(format))

		var req draftExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		if len(req.Document) == 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "document is required", nil)
			return
		}
		if err := model.ValidateJSON(req.Document); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		var doc model.Document
		if err := json.Unmarshal(req.Document, &doc); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document payload", nil)
			return
		}

		h.run(c, export.Request{
			Document: doc,
			Kind:     parseKind(req.Kind),
			Format:   format,
			Template: project.ParseTemplate(req.Template),
			Font:     project.ParseFont(req.Font),
		})
	}
}

// takeDraft returns and clears the draft stashed for a guest who was
// sent to sign in mid-export. One shot: a second call is a 404.
func (h *Handler) takeDraft(c *gin.Context) {
	doc, ok := h.Stash.Take(export.PendingDraftKey)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no pending draft", nil)
		return
	}
	respond.OK(c, gin.H{"document": doc})
}

func (h *Handler) run(c *gin.Context, req export.Request) {
	metrics.IncExportStarted()
	start := time.Now()

	result, err := h.Orch.Export(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrBusy):
			metrics.IncExportRejected()
			respond.Error(c, http.StatusConflict, "busy", "an export is already in progress", nil)
		case errors.Is(err, export.ErrLoginRequired):
			metrics.IncExportFailed()
			respond.Error(c, http.StatusUnauthorized, "login_required", "sign in to export; your draft is saved", nil)
		default:
			metrics.IncExportFailed()
			h.writeError(c, err)
		}
		return
	}
	metrics.IncExportCompleted()
	metrics.ObserveExportDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Resume-Id", result.DocumentID)
	c.Data(http.StatusOK, contentTypeFor(req.Format), result.Data)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, resumes.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "export failed", nil)
	}
}

func parseKind(raw string) export.Kind {
	if raw == string(export.KindCoverLetter) {
		return export.KindCoverLetter
	}
	return export.KindResume
}

func contentTypeFor(format export.Format) string {
	switch format {
	case export.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}
