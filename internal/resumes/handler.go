package resumes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-studio/internal/shared/server/middleware"
	"resume-studio/internal/shared/server/respond"
	"resume-studio/resume/model"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)

	rg.PATCH("/resumes/:id/experience", h.upsertExperience)
	rg.DELETE("/resumes/:id/experience/:entryId", h.removeExperience)
	rg.PATCH("/resumes/:id/education", h.upsertEducation)
	rg.DELETE("/resumes/:id/education/:entryId", h.removeEducation)
	rg.PATCH("/resumes/:id/skills", h.upsertSkill)
	rg.DELETE("/resumes/:id/skills/:entryId", h.removeSkill)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	req, doc, ok := h.bindDocument(c)
	if !ok {
		return
	}

	res, err := h.Svc.Create(c.Request.Context(), userID, Resume{
		Title:    req.Title,
		Template: req.Template,
		Font:     req.Font,
		Document: doc,
	})
	if err != nil {
		h.writeError(c, err, "failed to create resume")
		return
	}

	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusCreated, toResponse(res))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	res, err := h.Svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	req, doc, ok := h.bindDocument(c)
	if !ok {
		return
	}

	res, err := h.Svc.Update(c.Request.Context(), userID, id, Resume{
		Title:    req.Title,
		Template: req.Template,
		Font:     req.Font,
		Document: doc,
	})
	if err != nil {
		h.writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, gin.H{"resumes": toResponses(list)})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) upsertExperience(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	var entry model.Experience
	if err := c.ShouldBindJSON(&entry); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpsertExperience(c.Request.Context(), userID, id, entry)
	if err != nil {
		h.writeError(c, err, "failed to update experience")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) removeExperience(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	res, err := h.Svc.RemoveExperience(c.Request.Context(), userID, id, c.Param("entryId"))
	if err != nil {
		h.writeError(c, err, "failed to remove experience")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) upsertEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	var entry model.Education
	if err := c.ShouldBindJSON(&entry); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpsertEducation(c.Request.Context(), userID, id, entry)
	if err != nil {
		h.writeError(c, err, "failed to update education")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) removeEducation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	res, err := h.Svc.RemoveEducation(c.Request.Context(), userID, id, c.Param("entryId"))
	if err != nil {
		h.writeError(c, err, "failed to remove education")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) upsertSkill(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	var entry model.Skill
	if err := c.ShouldBindJSON(&entry); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.UpsertSkill(c.Request.Context(), userID, id, entry)
	if err != nil {
		h.writeError(c, err, "failed to update skill")
		return
	}
	respond.OK(c, toResponse(res))
}

func (h *Handler) removeSkill(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	res, err := h.Svc.RemoveSkill(c.Request.Context(), userID, id, c.Param("entryId"))
	if err != nil {
		h.writeError(c, err, "failed to remove skill")
		return
	}
	respond.OK(c, toResponse(res))
}

// bindDocument decodes the request and schema-validates the raw
// document payload before it is unmarshaled.
func (h *Handler) bindDocument(c *gin.Context) (resumeRequest, model.Document, bool) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return resumeRequest{}, model.Document{}, false
	}
	if len(req.Document) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document is required", nil)
		return resumeRequest{}, model.Document{}, false
	}
	if err := model.ValidateJSON(req.Document); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return resumeRequest{}, model.Document{}, false
	}

	var doc model.Document
	if err := json.Unmarshal(req.Document, &doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document payload", nil)
		return resumeRequest{}, model.Document{}, false
	}
	return req, doc, true
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", fallback, nil)
	}
}
