// Package handler provides the HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"earningsnerd_backend/internal/api"
	companyusecase "earningsnerd_backend/internal/feature/companies/usecase"
	"earningsnerd_backend/internal/feature/watchlist/usecase"
	jwtmw "earningsnerd_backend/internal/platform/jwt"
)

// WatchlistUsecase defines the usecase interface for watchlist operations.
// Following Go convention: interfaces are defined by the consumer (handler).
type WatchlistUsecase interface {
	Add(ctx context.Context, userID uint, ticker string) error
	Remove(ctx context.Context, userID uint, ticker string) error
	List(ctx context.Context, userID uint) ([]usecase.Entry, error)
}

// WatchlistHandler handles HTTP requests for the authenticated user's watchlist.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a new WatchlistHandler instance.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List returns the user's watchlist.
//
// Example: GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	entries, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "list failed"})
		return
	}

	out := make([]api.WatchlistItemResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.WatchlistItemResponse{
			Ticker:  e.Company.Ticker,
			Name:    e.Company.Name,
			AddedAt: e.Item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Add puts a company on the user's watchlist.
//
// Example: POST /api/v1/watchlist {"ticker": "AAPL"}
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req api.WatchlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	err := h.uc.Add(c.Request.Context(), userID, req.Ticker)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
	case errors.Is(err, companyusecase.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
	case errors.Is(err, usecase.ErrAlreadyWatched):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "already on watchlist"})
	case errors.Is(err, usecase.ErrWatchlistFull):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "watchlist is full"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "add failed"})
	}
}

// Remove takes a company off the user's watchlist.
//
// Example: DELETE /api/v1/watchlist/AAPL
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	err := h.uc.Remove(c.Request.Context(), userID, c.Param("ticker"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
	case errors.Is(err, companyusecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrNotWatched):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not on watchlist"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "remove failed"})
	}
}
