// Package creation exposes the creation orchestrator as JSON endpoints.
// Handlers are thin glue: decode, call the service, encode. All rule logic
// lives behind the service.
package creation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/internal/errors"
	creationsvc "github.com/draftforge/draftforge/internal/orchestrators/creation"
)

// Handler serves the character creation endpoints
type Handler struct {
	service creationsvc.Service
}

// NewHandler creates a handler backed by the given service
func NewHandler(service creationsvc.Service) *Handler {
	return &Handler{service: service}
}

// StartSession handles POST /sessions
func (h *Handler) StartSession(c *gin.Context) {
	var req struct {
		OwnerID string `json:"owner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.service.StartSession(c.Request.Context(), &creationsvc.StartSessionInput{
		OwnerID: req.OwnerID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": out.Session.ID,
		"step":       out.Step,
		"expires_at": out.Session.ExpiresAt,
	})
}

// GetSession handles GET /sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	out, err := h.service.GetSession(c.Request.Context(), &creationsvc.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": out.Session.ID,
		"step":       out.Step,
		"character":  out.View,
	})
}

// GetSessionByOwner handles GET /owners/:owner_id/session
func (h *Handler) GetSessionByOwner(c *gin.Context) {
	out, err := h.service.GetSessionByOwner(c.Request.Context(), &creationsvc.GetSessionByOwnerInput{
		OwnerID: c.Param("owner_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": out.Session.ID,
		"step":       out.Step,
		"character":  out.View,
	})
}

// ApplyChoice handles POST /sessions/:id/choices
func (h *Handler) ApplyChoice(c *gin.Context) {
	var req struct {
		Key   string          `json:"key" binding:"required"`
		Value json.RawMessage `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.service.ApplyChoice(c.Request.Context(), &creationsvc.ApplyChoiceInput{
		SessionID: c.Param("id"),
		Key:       req.Key,
		Value:     req.Value,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":      out.Step,
		"character": out.View,
	})
}

// ApplyChoices handles PUT /sessions/:id/choices
func (h *Handler) ApplyChoices(c *gin.Context) {
	var req struct {
		Choices map[string]json.RawMessage `json:"choices" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.service.ApplyChoices(c.Request.Context(), &creationsvc.ApplyChoicesInput{
		SessionID: c.Param("id"),
		Choices:   req.Choices,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	failures := make(map[string]gin.H, len(out.Failures))
	for key, ferr := range out.Failures {
		failures[key] = gin.H{
			"code":  errors.GetCode(ferr).String(),
			"error": errors.GetMessage(ferr),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"step":      out.Step,
		"character": out.View,
		"failures":  failures,
	})
}

// GetStepOptions handles GET /sessions/:id/options
func (h *Handler) GetStepOptions(c *gin.Context) {
	out, err := h.service.GetStepOptions(c.Request.Context(), &creationsvc.GetStepOptionsInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"step": out.Step}
	switch {
	case out.Subclasses != nil:
		resp["subclasses"] = out.Subclasses
	case out.SkillChoices != nil:
		resp["skill_choices"] = out.SkillChoices
		resp["class_features"] = out.ClassFeatures
	case out.TraitOptions != nil:
		resp["trait_options"] = out.TraitOptions
	case out.Lineages != nil:
		resp["lineages"] = out.Lineages
	case out.Languages != nil:
		resp["languages"] = out.Languages
	case out.AbilityScores != nil:
		resp["ability_scores"] = out.AbilityScores
	case out.BackgroundBonuses != nil:
		resp["background_bonuses"] = out.BackgroundBonuses
	case out.Equipment != nil:
		resp["equipment"] = out.Equipment
	}
	c.JSON(http.StatusOK, resp)
}

// ResetSession handles POST /sessions/:id/reset
func (h *Handler) ResetSession(c *gin.Context) {
	out, err := h.service.ResetSession(c.Request.Context(), &creationsvc.ResetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": out.Step})
}

// DeleteSession handles DELETE /sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	if _, err := h.service.DeleteSession(c.Request.Context(), &creationsvc.DeleteSessionInput{
		SessionID: c.Param("id"),
	}); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// writeError renders a structured error with its mapped HTTP status
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.Request.URL.Path,
			"error", err,
		)
	}

	body := gin.H{
		"code":  code.String(),
		"error": errors.GetMessage(err),
	}
	if meta := errors.GetMeta(err); len(meta) > 0 {
		body["meta"] = meta
	}
	c.JSON(status, body)
}
