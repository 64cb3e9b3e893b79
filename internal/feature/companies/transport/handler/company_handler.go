// Package handler provides the HTTP handlers for the companies feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"earningsnerd_backend/internal/api"
	"earningsnerd_backend/internal/feature/companies/domain/entity"
	"earningsnerd_backend/internal/feature/companies/usecase"
)

// CompanyUsecase defines the usecase interface for company operations.
// Following Go convention: interfaces are defined by the consumer (handler).
type CompanyUsecase interface {
	GetByTicker(ctx context.Context, ticker string) (*entity.Company, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Company, error)
}

// CompanyHandler handles HTTP requests for company lookups.
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler creates a new CompanyHandler instance.
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Search handles company search.
//
// Example: GET /api/v1/companies?query=app&limit=20
func (h *CompanyHandler) Search(c *gin.Context) {
	query := c.Query("query")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	companies, err := h.uc.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "search failed"})
		return
	}

	out := make([]api.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, toCompanyResponse(company))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles lookup of a single company by ticker.
//
// Example: GET /api/v1/companies/AAPL
func (h *CompanyHandler) Get(c *gin.Context) {
	ticker := c.Param("ticker")

	company, err := h.uc.GetByTicker(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, toCompanyResponse(*company))
}

// toCompanyResponse converts the domain entity to its API representation.
func toCompanyResponse(c entity.Company) api.CompanyResponse {
	resp := api.CompanyResponse{
		Ticker: c.Ticker,
		CIK:    c.CIK,
		Name:   c.Name,
	}
	if c.LastFetchedAt != nil {
		resp.LastFetchedAt = &openapi_types.Date{Time: c.LastFetchedAt.UTC()}
	}
	return resp
}
