// Package handler contains the Gin HTTP handler for the trending feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	"earningsnerd_backend/internal/feature/trending/domain/entity"
)

// TrendingUsecase defines the behavior the handler needs from the trending
// business logic.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TrendingUsecase interface {
	Get(ctx context.Context) (*entity.TrendingList, error)
}

// TrendingHandler serves the public trending-ticker list.
type TrendingHandler struct {
	uc TrendingUsecase
}

// NewTrendingHandler creates a new TrendingHandler.
func NewTrendingHandler(uc TrendingUsecase) *TrendingHandler {
	return &TrendingHandler{uc: uc}
}

// List handles GET /api/v1/trending.
func (h *TrendingHandler) List(c *gin.Context) {
	list, err := h.uc.Get(c.Request.Context())
	if err != nil {
		slog.Error("trending list failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "trending list unavailable"})
		return
	}

	resp := api.TrendingResponse{
		Tickers:     make([]api.TrendingTickerResponse, 0, len(list.Tickers)),
		RefreshedAt: list.RefreshedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range list.Tickers {
		resp.Tickers = append(resp.Tickers, api.TrendingTickerResponse{
			Ticker:        t.Ticker,
			Price:         t.Price,
			ChangePercent: t.ChangePercent,
			Volume:        t.Volume,
		})
	}
	c.JSON(http.StatusOK, resp)
}
