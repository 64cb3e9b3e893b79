// Package handler provides the HTTP handlers for the summaries feature.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	"earningsnerd_backend/internal/feature/summaries/domain/entity"
	"earningsnerd_backend/internal/feature/summaries/usecase"
	jwtmw "earningsnerd_backend/internal/platform/jwt"
)

// heartbeatInterval keeps the SSE connection alive through proxies while
// the model call is in flight.
const heartbeatInterval = 15 * time.Second

// SummaryUsecase defines the usecase interface for summary operations.
// Following Go convention: interfaces are defined by the consumer (handler).
type SummaryUsecase interface {
	Get(ctx context.Context, filingID uint) (*entity.Summary, error)
	Generate(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error)
}

// FilingLookup resolves a filing row ID.
type FilingLookup interface {
	GetByID(ctx context.Context, id uint) (*filingentity.Filing, error)
}

// CompanyByID resolves the company a filing belongs to.
type CompanyByID interface {
	GetByID(ctx context.Context, id uint) (*companyentity.Company, error)
}

// SummaryHandler handles HTTP requests for filing summaries.
type SummaryHandler struct {
	summaries SummaryUsecase
	filings   FilingLookup
	companies CompanyByID
}

// NewSummaryHandler creates a new SummaryHandler instance.
func NewSummaryHandler(summaries SummaryUsecase, filings FilingLookup, companies CompanyByID) *SummaryHandler {
	return &SummaryHandler{summaries: summaries, filings: filings, companies: companies}
}

// Get returns the stored summary for a filing without triggering generation.
//
// Example: GET /api/v1/filings/42/summary
func (h *SummaryHandler) Get(c *gin.Context) {
	filingID, ok := parseFilingID(c)
	if !ok {
		return
	}

	summary, err := h.summaries.Get(c.Request.Context(), filingID)
	if err != nil {
		if errors.Is(err, usecase.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "summary not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// Generate streams summary generation over SSE. The stream carries
// "status" events, periodic "heartbeat" events while the model call is in
// flight, and ends with a single "summary" or "error" event.
//
// Example: POST /api/v1/filings/42/summary
func (h *SummaryHandler) Generate(c *gin.Context) {
	filingID, ok := parseFilingID(c)
	if !ok {
		return
	}
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	filing, err := h.filings.GetByID(ctx, filingID)
	if err != nil {
		if errors.Is(err, filingusecase.ErrFilingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "filing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}
	company, err := h.companies.GetByID(ctx, filing.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}

	type result struct {
		summary *entity.Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		s, err := h.summaries.Generate(ctx, userID, company, filing)
		done <- result{summary: s, err: err}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-store")
	c.Header("Connection", "keep-alive")

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	c.SSEvent("status", gin.H{"status": entity.StatusGenerating})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case r := <-done:
			if r.err != nil {
				c.SSEvent("error", gin.H{"error": publicError(r.err)})
				return false
			}
			c.SSEvent("summary", toSummaryResponse(r.summary))
			return false
		case <-ticker.C:
			c.SSEvent("heartbeat", gin.H{"ts": time.Now().Unix()})
			return true
		case <-ctx.Done():
			slog.Info("summary stream client disconnected", "filing_id", filingID)
			return false
		}
	})
}

// publicError maps pipeline errors to messages safe for clients.
func publicError(err error) string {
	switch {
	case errors.Is(err, usecase.ErrQuotaExceeded):
		return "monthly summary quota exceeded"
	case errors.Is(err, usecase.ErrContractViolation):
		return "the model could not produce a valid summary"
	default:
		return "summary generation failed"
	}
}

// parseFilingID extracts and validates the :id path parameter,
// writing the error response itself on failure.
func parseFilingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid filing id"})
		return 0, false
	}
	return uint(id), true
}

// toSummaryResponse converts the entity, decoding the stored payload.
func toSummaryResponse(s *entity.Summary) api.SummaryResponse {
	resp := api.SummaryResponse{
		FilingID:     s.FilingID,
		Status:       s.Status,
		Model:        s.Model,
		GenerationMs: s.GenerationMs,
	}
	if s.Payload != "" {
		var p usecase.Payload
		if err := json.Unmarshal([]byte(s.Payload), &p); err == nil {
			resp.Overview = p.Overview
			resp.FinancialHighlights = p.FinancialHighlights
			resp.Risks = p.Risks
			resp.Outlook = p.Outlook
		}
	}
	return resp
}
