package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"earningsnerd_backend/internal/feature/trending/domain/entity"
	trendingusecase "earningsnerd_backend/internal/feature/trending/usecase"
	"earningsnerd_backend/internal/platform/externalapi/quotes/dto"
)

const (
	// maxRetries bounds retry attempts on 429 responses.
	maxRetries = 3

	// retryBaseDelay is the initial backoff; it doubles per attempt.
	retryBaseDelay = time.Second

	// Browser-ish User-Agent; the public endpoints reject default Go clients.
	userAgent = "Mozilla/5.0 (compatible; earningsnerd/1.0)"
)

// Client fetches trending symbols and quotes from Yahoo Finance.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ trendingusecase.QuoteSource = (*Client)(nil)

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// TrendingTickers fetches the region's trending symbols and enriches them
// with current price and day change.
func (c *Client) TrendingTickers(ctx context.Context) ([]entity.TrendingTicker, error) {
	symbols, err := c.trendingSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []entity.TrendingTicker{}, nil
	}

	quotes, err := c.quotes(ctx, symbols)
	if err != nil {
		return nil, err
	}

	tickers := make([]entity.TrendingTicker, 0, len(quotes))
	for _, q := range quotes {
		tickers = append(tickers, entity.TrendingTicker{
			Ticker:        strings.ToUpper(q.Symbol),
			Price:         q.RegularMarketPrice,
			ChangePercent: q.RegularMarketChangePercent,
			Volume:        q.RegularMarketVolume,
		})
	}
	return tickers, nil
}

func (c *Client) trendingSymbols(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/v1/finance/trending/%s", c.cfg.BaseURL, c.cfg.Region)

	var body dto.TrendingResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	var symbols []string
	for _, r := range body.Finance.Result {
		for _, q := range r.Quotes {
			if q.Symbol != "" {
				symbols = append(symbols, q.Symbol)
			}
		}
	}
	return symbols, nil
}

func (c *Client) quotes(ctx context.Context, symbols []string) ([]dto.Quote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		c.cfg.BaseURL, url.QueryEscape(strings.Join(symbols, ",")))

	var body dto.QuoteResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	return body.QuoteResponse.Result, nil
}

// getJSON performs a GET and decodes the JSON response, retrying with
// exponential backoff on 429.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	delay := retryBaseDelay
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.client.Do(req)
		if err != nil {
			return err
		}

		if res.StatusCode == http.StatusTooManyRequests {
			if cerr := res.Body.Close(); cerr != nil {
				slog.Warn("failed to close response body", "error", cerr)
			}
			if attempt >= maxRetries {
				return fmt.Errorf("quotes http %d after %d retries", res.StatusCode, maxRetries)
			}
			slog.Warn("quotes API throttled, backing off", "delay", delay, "url", url)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
			continue
		}

		defer func() {
			if cerr := res.Body.Close(); cerr != nil {
				slog.Warn("failed to close response body", "error", cerr)
			}
		}()

		if res.StatusCode >= 400 {
			return fmt.Errorf("quotes http %d", res.StatusCode)
		}
		return json.NewDecoder(res.Body).Decode(out)
	}
}
