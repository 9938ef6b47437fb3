package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
)

// Alphavantage is a Stock and ETF API that fetches data including pricing data
// It is a subscription service, but provides free API access
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

// ErrAPI wraps errors AlphaVantage reports inside a 200 response
var ErrAPI = errors.New("alphavantage error")

// Client is an HTTP client for the AlphaVantage API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new AlphaVantage client
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// Name identifies the provider in logs and warnings
func (c *Client) Name() string { return "alphavantage" }

// outputSize picks "compact" (last 100 sessions) when it covers the window
func outputSize(window models.Window) string {
	switch window {
	case models.Window1M, models.Window3M:
		return "compact"
	}
	return "full"
}

// GetHistory fetches daily closes for symbol within window, oldest first
func (c *Client) GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", outputSize(window))
	params.Set("apikey", c.apiKey)

	resp, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var tsResp TimeSeriesDailyResponse
	if err := json.Unmarshal(body, &tsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if msg := tsResp.apiError(); msg != "" {
		return nil, fmt.Errorf("%w for %s: %s", ErrAPI, symbol, msg)
	}

	start := models.NewDate(window.Start(c.now()))
	var prices []models.PricePoint
	for dateStr, ohlcv := range tsResp.TimeSeries {
		date, err := models.ParseDate(dateStr)
		if err != nil || date.Before(start.Time) {
			continue
		}
		closePrice, err := strconv.ParseFloat(ohlcv.Close, 64)
		if err != nil || closePrice <= 0 {
			continue
		}
		prices = append(prices, models.PricePoint{Date: date, Close: closePrice})
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date.Time) })
	return prices, nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
