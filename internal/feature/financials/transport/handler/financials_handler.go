// Package handler provides the HTTP handlers for the financials feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	"earningsnerd_backend/internal/feature/financials/domain/entity"
)

// ExtractUsecase defines the usecase interface for snapshot extraction.
// Following Go convention: interfaces are defined by the consumer (handler).
type ExtractUsecase interface {
	GetSnapshot(ctx context.Context, filing *filingentity.Filing, cik string) (*entity.FinancialSnapshot, error)
}

// FilingLookup resolves a filing row ID.
type FilingLookup interface {
	GetByID(ctx context.Context, id uint) (*filingentity.Filing, error)
}

// CompanyByID resolves the company a filing belongs to.
type CompanyByID interface {
	GetByID(ctx context.Context, id uint) (*companyentity.Company, error)
}

// FinancialsHandler handles HTTP requests for extracted financial data.
type FinancialsHandler struct {
	extract   ExtractUsecase
	filings   FilingLookup
	companies CompanyByID
}

// NewFinancialsHandler creates a new FinancialsHandler instance.
func NewFinancialsHandler(extract ExtractUsecase, filings FilingLookup, companies CompanyByID) *FinancialsHandler {
	return &FinancialsHandler{extract: extract, filings: filings, companies: companies}
}

// Get returns the financial snapshot for a filing, extracting it from
// EDGAR companyfacts on first access.
//
// Example: GET /api/v1/filings/42/financials
func (h *FinancialsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid filing id"})
		return
	}

	filing, err := h.filings.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, filingusecase.ErrFilingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "filing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}

	company, err := h.companies.GetByID(c.Request.Context(), filing.CompanyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}

	snapshot, err := h.extract.GetSnapshot(c.Request.Context(), filing, company.CIK)
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "extraction failed"})
		return
	}

	c.JSON(http.StatusOK, api.FinancialSnapshotResponse{
		FilingID:          snapshot.FilingID,
		Revenue:           snapshot.Revenue,
		RevenueYoY:        snapshot.RevenueYoY,
		NetIncome:         snapshot.NetIncome,
		NetIncomeYoY:      snapshot.NetIncomeYoY,
		EPSDiluted:        snapshot.EPSDiluted,
		Assets:            snapshot.Assets,
		Liabilities:       snapshot.Liabilities,
		Equity:            snapshot.Equity,
		Cash:              snapshot.Cash,
		OperatingCashFlow: snapshot.OperatingCashFlow,
	})
}
