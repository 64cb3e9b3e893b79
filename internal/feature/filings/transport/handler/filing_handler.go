// Package handler provides the HTTP handlers for the filings feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"earningsnerd_backend/internal/api"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	companyusecase "earningsnerd_backend/internal/feature/companies/usecase"
	"earningsnerd_backend/internal/feature/filings/domain/entity"
)

// FilingsUsecase defines the usecase interface for filing reads.
// Following Go convention: interfaces are defined by the consumer (handler).
type FilingsUsecase interface {
	ListByCompany(ctx context.Context, companyID uint, form string, limit int) ([]entity.Filing, error)
}

// CompanyLookup resolves a ticker to the company entity.
type CompanyLookup interface {
	GetByTicker(ctx context.Context, ticker string) (*companyentity.Company, error)
}

// FilingHandler handles HTTP requests for filing listings.
type FilingHandler struct {
	filings   FilingsUsecase
	companies CompanyLookup
}

// NewFilingHandler creates a new FilingHandler instance.
func NewFilingHandler(filings FilingsUsecase, companies CompanyLookup) *FilingHandler {
	return &FilingHandler{filings: filings, companies: companies}
}

// ListByTicker returns a company's 10-K/10-Q filings, newest first.
//
// Example: GET /api/v1/companies/AAPL/filings?form=10-K&limit=10
func (h *FilingHandler) ListByTicker(c *gin.Context) {
	ticker := c.Param("ticker")
	form := c.Query("form")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "40"))

	company, err := h.companies.GetByTicker(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, companyusecase.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "lookup failed"})
		return
	}

	filings, err := h.filings.ListByCompany(c.Request.Context(), company.ID, form, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]api.FilingResponse, 0, len(filings))
	for _, f := range filings {
		out = append(out, api.FilingResponse{
			ID:           f.ID,
			AccessionNo:  f.AccessionNo,
			Form:         f.Form,
			FiledAt:      openapi_types.Date{Time: f.FiledAt.UTC()},
			PeriodEnd:    openapi_types.Date{Time: f.PeriodEnd.UTC()},
			FiscalYear:   f.FiscalYear,
			FiscalPeriod: f.FiscalPeriod,
			DocumentURL:  f.PrimaryDocURL,
		})
	}
	c.JSON(http.StatusOK, out)
}
