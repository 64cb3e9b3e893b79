package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"earningsnerd_backend/internal/api"
	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	"earningsnerd_backend/internal/feature/summaries/domain/entity"
	"earningsnerd_backend/internal/feature/summaries/usecase"
	jwtmw "earningsnerd_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockSummaryUsecase is a mock implementation of the SummaryUsecase interface.
type mockSummaryUsecase struct {
	GetFunc      func(ctx context.Context, filingID uint) (*entity.Summary, error)
	GenerateFunc func(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error)
}

func (m *mockSummaryUsecase) Get(ctx context.Context, filingID uint) (*entity.Summary, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, filingID)
	}
	return nil, usecase.ErrSummaryNotFound
}

func (m *mockSummaryUsecase) Generate(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, userID, company, filing)
	}
	return completedSummary(), nil
}

// mockFilingLookup is a mock implementation of the FilingLookup interface.
type mockFilingLookup struct {
	GetByIDFunc func(ctx context.Context, id uint) (*filingentity.Filing, error)
}

func (m *mockFilingLookup) GetByID(ctx context.Context, id uint) (*filingentity.Filing, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &filingentity.Filing{ID: id, CompanyID: 5, Form: "10-K"}, nil
}

// mockCompanyByID is a mock implementation of the CompanyByID interface.
type mockCompanyByID struct {
	GetByIDFunc func(ctx context.Context, id uint) (*companyentity.Company, error)
}

func (m *mockCompanyByID) GetByID(ctx context.Context, id uint) (*companyentity.Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &companyentity.Company{ID: id, Ticker: "AAPL", Name: "Apple Inc."}, nil
}

func completedSummary() *entity.Summary {
	payload, _ := json.Marshal(usecase.Payload{
		Overview:            "Revenue grew on services strength.",
		FinancialHighlights: []string{"Revenue up 8%", "Margin expanded"},
		Risks:               []string{"FX headwinds"},
		Outlook:             "Management guided flat.",
	})
	return &entity.Summary{
		FilingID: 42,
		Model:    "gemini-2.5-flash",
		Status:   entity.StatusCompleted,
		Payload:  string(payload),
	}
}

// closeNotifyRecorder adds the http.CloseNotifier method that gin's
// Context.Stream requires but httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool)}
}

func (c *closeNotifyRecorder) CloseNotify() <-chan bool { return c.closed }

func authStub(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func newSummaryRouter(uc SummaryUsecase, filings FilingLookup, companies CompanyByID, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	h := NewSummaryHandler(uc, filings, companies)
	g := r.Group("/api/v1", mw...)
	g.GET("/filings/:id/summary", h.Get)
	g.POST("/filings/:id/summary", h.Generate)
	return r
}

func TestSummaryHandler_Get(t *testing.T) {
	t.Run("returns the decoded summary", func(t *testing.T) {
		uc := &mockSummaryUsecase{
			GetFunc: func(ctx context.Context, filingID uint) (*entity.Summary, error) {
				assert.Equal(t, uint(42), filingID)
				return completedSummary(), nil
			},
		}
		r := newSummaryRouter(uc, &mockFilingLookup{}, &mockCompanyByID{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp api.SummaryResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint(42), resp.FilingID)
		assert.Equal(t, "Revenue grew on services strength.", resp.Overview)
		assert.Len(t, resp.FinancialHighlights, 2)
		assert.Equal(t, entity.StatusCompleted, resp.Status)
	})

	t.Run("missing summary returns 404", func(t *testing.T) {
		r := newSummaryRouter(&mockSummaryUsecase{}, &mockFilingLookup{}, &mockCompanyByID{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		r := newSummaryRouter(&mockSummaryUsecase{}, &mockFilingLookup{}, &mockCompanyByID{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/filings/abc/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSummaryHandler_Generate(t *testing.T) {
	t.Run("streams status then summary events", func(t *testing.T) {
		r := newSummaryRouter(&mockSummaryUsecase{}, &mockFilingLookup{}, &mockCompanyByID{}, authStub(9))

		w := newCloseNotifyRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

		body := w.Body.String()
		assert.Contains(t, body, "event:status")
		assert.Contains(t, body, "event:summary")
		assert.Contains(t, body, "Revenue grew on services strength.")
	})

	t.Run("quota exhaustion streams a safe error event", func(t *testing.T) {
		uc := &mockSummaryUsecase{
			GenerateFunc: func(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error) {
				return nil, usecase.ErrQuotaExceeded
			},
		}
		r := newSummaryRouter(uc, &mockFilingLookup{}, &mockCompanyByID{}, authStub(9))

		w := newCloseNotifyRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		body := w.Body.String()
		assert.Contains(t, body, "event:error")
		assert.Contains(t, body, "monthly summary quota exceeded")
	})

	t.Run("internal failures are not leaked to the stream", func(t *testing.T) {
		uc := &mockSummaryUsecase{
			GenerateFunc: func(ctx context.Context, userID uint, company *companyentity.Company, filing *filingentity.Filing) (*entity.Summary, error) {
				return nil, errors.New("pq: connection refused")
			},
		}
		r := newSummaryRouter(uc, &mockFilingLookup{}, &mockCompanyByID{}, authStub(9))

		w := newCloseNotifyRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		body := w.Body.String()
		assert.Contains(t, body, "summary generation failed")
		assert.NotContains(t, body, "connection refused")
	})

	t.Run("unknown filing returns 404 before streaming", func(t *testing.T) {
		filings := &mockFilingLookup{
			GetByIDFunc: func(ctx context.Context, id uint) (*filingentity.Filing, error) {
				return nil, filingusecase.ErrFilingNotFound
			},
		}
		r := newSummaryRouter(&mockSummaryUsecase{}, filings, &mockCompanyByID{}, authStub(9))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing auth claims return 401", func(t *testing.T) {
		r := newSummaryRouter(&mockSummaryUsecase{}, &mockFilingLookup{}, &mockCompanyByID{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/filings/42/summary", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
