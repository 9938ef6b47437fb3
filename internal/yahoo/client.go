// Package yahoo reads daily price histories from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	log "github.com/sirupsen/logrus"
)

var defaultBaseURLs = []string{
	"https://query1.finance.yahoo.com/v8/finance/chart",
	"https://query2.finance.yahoo.com/v8/finance/chart",
}

// ErrSymbolNotFound is returned when Yahoo reports no chart for a symbol
var ErrSymbolNotFound = errors.New("symbol not found")

// Client is an HTTP client for the Yahoo Finance chart endpoint
type Client struct {
	baseURLs   []string
	httpClient *http.Client
}

// NewClient creates a client that tries query1 then query2
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURLs...)
}

// NewClientWithBaseURL creates a client against custom hosts (for testing).
// Hosts are tried in order until one answers.
func NewClientWithBaseURL(baseURLs ...string) *Client {
	return &Client{
		baseURLs: baseURLs,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the provider in logs and warnings
func (c *Client) Name() string { return "yahoo" }

// GetHistory fetches daily closes for symbol over window, oldest first.
// Null and non-positive closes are skipped rather than interpolated.
func (c *Client) GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, error) {
	params := url.Values{}
	params.Set("range", string(window))
	params.Set("interval", "1d")
	params.Set("events", "history")

	var lastErr error
	for _, base := range c.baseURLs {
		body, err := c.doRequest(ctx, base+"/"+url.PathEscape(symbol), params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Debugf("yahoo %s via %s: %v", symbol, base, err)
			lastErr = err
			continue
		}
		return parseChart(symbol, body)
	}
	return nil, lastErr
}

func parseChart(symbol string, body []byte) ([]models.PricePoint, error) {
	var resp ChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close
	offset := time.Duration(result.Meta.GMTOffset) * time.Second

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		// Shift to exchange-local time so the calendar day matches the trading session
		day := time.Unix(ts, 0).UTC().Add(offset)
		points = append(points, models.PricePoint{Date: models.NewDate(day), Close: *closes[i]})
	}
	return points, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (portfolio-tracker)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Yahoo answers unknown symbols with 404 and a JSON error body
	if resp.StatusCode == http.StatusNotFound {
		return body, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return body, nil
}
