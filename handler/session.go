package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ayush-Rawat-9/Charter-Party/middleware"
	"github.com/Ayush-Rawat-9/Charter-Party/model"
	"github.com/Ayush-Rawat-9/Charter-Party/service"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the negotiation session lifecycle and the
// contract pipeline stages.
type SessionHandler struct {
	store    *service.SessionStore
	pipeline *service.Pipeline
}

func NewSessionHandler(store *service.SessionStore, pipeline *service.Pipeline) *SessionHandler {
	return &SessionHandler{store: store, pipeline: pipeline}
}

type sessionSummary struct {
	ID        string `json:"id"`
	Revision  int    `json:"revision"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func summarize(s *service.Session) sessionSummary {
	return sessionSummary{
		ID:        s.ID,
		Revision:  s.Revision(),
		CreatedAt: s.Created.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: s.Updated.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create starts a new negotiation session for the caller's tenant.
func (h *SessionHandler) Create(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	sess := h.store.Create(tenant)
	c.JSON(http.StatusCreated, summarize(sess))
}

// List returns the caller's sessions, newest first.
func (h *SessionHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	sessions := h.store.ListByTenant(tenant)

	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, summarize(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// Delete removes a session.
func (h *SessionHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	h.store.Delete(tenant, c.Param("id"))
	c.Status(http.StatusNoContent)
}

type MergeRequest struct {
	BaseContract      string `json:"base_contract" binding:"required"`
	FixtureRecap      string `json:"fixture_recap" binding:"required"`
	NegotiatedClauses string `json:"negotiated_clauses" binding:"required"`
}

// Merge assembles the three inputs into the session's working document.
func (h *SessionHandler) Merge(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sess, err := h.pipeline.Merge(tenant, c.Param("id"), req.BaseContract, req.FixtureRecap, req.NegotiatedClauses)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, warnings, err := h.pipeline.Document(tenant, sess.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"document":   doc,
		"warnings":   warnings,
	})
}

// Document returns the current merged document and its warnings.
func (h *SessionHandler) Document(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	doc, warnings, err := h.pipeline.Document(tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "warnings": warnings})
}

// AnalyzeRisk runs risk analysis on the current revision.
func (h *SessionHandler) AnalyzeRisk(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	report, err := h.pipeline.AnalyzeRisk(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CheckCompliance runs the checklist on the current revision.
func (h *SessionHandler) CheckCompliance(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	report, err := h.pipeline.CheckCompliance(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Recommend proposes protective clauses for the session.
func (h *SessionHandler) Recommend(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	set, err := h.pipeline.Recommend(c.Request.Context(), tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// AcceptClause inserts a recommended clause into the document.
func (h *SessionHandler) AcceptClause(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	_, err := h.pipeline.AcceptClause(tenant, c.Param("id"), c.Param("clauseId"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc, warnings, err := h.pipeline.Document(tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "warnings": warnings})
}

// RejectClause hides a recommended clause from the current set.
func (h *SessionHandler) RejectClause(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	if err := h.pipeline.RejectClause(tenant, c.Param("id"), c.Param("clauseId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Redline returns the tracked-changes view against the base contract.
func (h *SessionHandler) Redline(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	report, err := h.pipeline.Redline(tenant, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// respondError maps pipeline failures to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *model.ValidationError
		mergeErr      *model.MergeError
		generationErr *model.GenerationError
		extractErr    *model.ExtractionError
		renderErr     *model.RenderError
	)

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, service.ErrClauseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recommended clause not found"})
	case errors.Is(err, service.ErrNoDocument):
		c.JSON(http.StatusConflict, gin.H{"error": "Session has no merged document yet"})
	case errors.Is(err, service.ErrClauseRejected):
		c.JSON(http.StatusConflict, gin.H{"error": "Recommended clause was rejected"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &mergeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    mergeErr.Error(),
			"warnings": mergeErr.Warnings,
		})
	case errors.As(err, &extractErr) && extractErr.Unsupported:
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": extractErr.Error()})
	case errors.As(err, &extractErr), errors.As(err, &generationErr), errors.As(err, &renderErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Request cancelled"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
