package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	companyentity "earningsnerd_backend/internal/feature/companies/domain/entity"
	companyusecase "earningsnerd_backend/internal/feature/companies/usecase"
	filingentity "earningsnerd_backend/internal/feature/filings/domain/entity"
	filingusecase "earningsnerd_backend/internal/feature/filings/usecase"
	financialentity "earningsnerd_backend/internal/feature/financials/domain/entity"
	financialusecase "earningsnerd_backend/internal/feature/financials/usecase"
	"earningsnerd_backend/internal/platform/externalapi/edgar/dto"
)

const (
	// maxRetries bounds retry attempts on 429/503 responses.
	maxRetries = 3

	// retryBaseDelay is the initial backoff; it doubles per attempt.
	retryBaseDelay = 500 * time.Millisecond

	dateLayout = "2006-01-02"
)

// Client fetches registrant, filing, and XBRL data from the SEC EDGAR APIs.
type Client struct {
	cfg    Config
	client *http.Client
}

// Compile-time checks for the consumer-defined interfaces Client serves.
var (
	_ companyusecase.TickerDirectory = (*Client)(nil)
	_ filingusecase.FilingSource     = (*Client)(nil)
	_ financialusecase.FactsSource   = (*Client)(nil)
)

// NewClient creates a new Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// ListCompanies fetches the full ticker directory from
// company_tickers.json and maps it to company entities with zero-padded CIKs.
func (c *Client) ListCompanies(ctx context.Context) ([]companyentity.Company, error) {
	u := c.cfg.FilesBaseURL + "/files/company_tickers.json"

	// The directory file is a JSON object keyed by arbitrary index strings.
	var body map[string]dto.TickerEntry
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	companies := make([]companyentity.Company, 0, len(body))
	for _, e := range body {
		ticker := strings.ToUpper(strings.TrimSpace(e.Ticker))
		if ticker == "" || e.CIK <= 0 {
			continue
		}
		companies = append(companies, companyentity.Company{
			Ticker: ticker,
			CIK:    fmt.Sprintf("%010d", e.CIK),
			Name:   e.Title,
		})
	}
	return companies, nil
}

// RecentFilings fetches the company's recent filings index and returns its
// 10-K and 10-Q entries.
func (c *Client) RecentFilings(ctx context.Context, cik string) ([]filingentity.Filing, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.cfg.DataBaseURL, cik)

	var body dto.SubmissionsResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	recent := body.Filings.Recent
	// The index is column-oriented; clamp to the shortest column in case
	// EDGAR serves a ragged payload.
	n := len(recent.AccessionNumber)
	for _, l := range []int{len(recent.Form), len(recent.FilingDate), len(recent.ReportDate), len(recent.PrimaryDocument)} {
		if l < n {
			n = l
		}
	}

	filings := make([]filingentity.Filing, 0, n)
	for i := 0; i < n; i++ {
		form := recent.Form[i]
		if form != "10-K" && form != "10-Q" {
			continue
		}

		filedAt, err := time.Parse(dateLayout, recent.FilingDate[i])
		if err != nil {
			return nil, fmt.Errorf("parse filing date %q: %w", recent.FilingDate[i], err)
		}
		periodEnd, err := time.Parse(dateLayout, recent.ReportDate[i])
		if err != nil {
			return nil, fmt.Errorf("parse report date %q: %w", recent.ReportDate[i], err)
		}

		fy, fp := fiscalPeriod(form, periodEnd)
		filings = append(filings, filingentity.Filing{
			AccessionNo:   recent.AccessionNumber[i],
			Form:          form,
			FiledAt:       filedAt,
			PeriodEnd:     periodEnd,
			FiscalYear:    fy,
			FiscalPeriod:  fp,
			PrimaryDocURL: c.documentURL(cik, recent.AccessionNumber[i], recent.PrimaryDocument[i]),
		})
	}
	return filings, nil
}

// CompanyFacts fetches the company's XBRL facts and flattens the us-gaap
// taxonomy into a concept-keyed fact set.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (financialentity.FactSet, error) {
	u := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.cfg.DataBaseURL, cik)

	var body dto.CompanyFactsResponse
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	gaap, ok := body.Facts["us-gaap"]
	if !ok {
		return financialentity.FactSet{}, nil
	}

	set := make(financialentity.FactSet, len(gaap))
	for concept, fact := range gaap {
		for unit, items := range fact.Units {
			for _, item := range items {
				end, err := time.Parse(dateLayout, item.End)
				if err != nil {
					continue // EDGAR occasionally carries malformed legacy rows
				}
				var start time.Time
				if item.Start != "" {
					if start, err = time.Parse(dateLayout, item.Start); err != nil {
						continue
					}
				}
				set[concept] = append(set[concept], financialentity.Fact{
					Unit:         unit,
					Value:        item.Value,
					Start:        start,
					End:          end,
					FiscalYear:   item.FiscalYear,
					FiscalPeriod: item.FiscalPeriod,
					Form:         item.Form,
					AccessionNo:  item.AccessionNo,
				})
			}
		}
	}
	return set, nil
}

// getJSON performs a GET with the EDGAR fair-access headers and decodes
// the JSON response, retrying with exponential backoff on 429 and 503.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	delay := retryBaseDelay
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.client.Do(req)
		if err != nil {
			return err
		}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode == http.StatusServiceUnavailable {
			if cerr := res.Body.Close(); cerr != nil {
				slog.Warn("failed to close response body", "error", cerr)
			}
			if attempt >= maxRetries {
				return fmt.Errorf("edgar http %d after %d retries", res.StatusCode, maxRetries)
			}
			slog.Warn("edgar throttled, backing off", "status", res.StatusCode, "delay", delay, "url", url)
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
			return fmt.Errorf("edgar http %d", res.StatusCode)
		}
		return json.NewDecoder(res.Body).Decode(out)
	}
}

// documentURL builds the sec.gov archive URL of a filing's primary document.
func (c *Client) documentURL(cik, accessionNo, primaryDoc string) string {
	if primaryDoc == "" {
		return ""
	}
	cikInt, err := strconv.ParseInt(cik, 10, 64)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s/Archives/edgar/data/%d/%s/%s",
		c.cfg.FilesBaseURL, cikInt, strings.ReplaceAll(accessionNo, "-", ""), primaryDoc)
}

// fiscalPeriod approximates the fiscal year and period from the report
// date. The XBRL extractor later prefers facts matched by accession
// number, which corrects issuers with offset fiscal calendars.
func fiscalPeriod(form string, periodEnd time.Time) (int, string) {
	if form == "10-K" {
		return periodEnd.Year(), "FY"
	}
	q := (int(periodEnd.Month()) + 2) / 3
	return periodEnd.Year(), fmt.Sprintf("Q%d", q)
}
