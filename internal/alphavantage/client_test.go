package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyBody = `{
  "Meta Data": {"2. Symbol": "CW8.PA"},
  "Time Series (Daily)": {
    "2024-07-03": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "512.30", "5. volume": "100"},
    "2024-07-01": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "505.00", "5. volume": "100"},
    "2024-07-02": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "508.10", "5. volume": "100"},
    "2024-05-01": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "480.00", "5. volume": "100"}
  }
}`

func newTestClient(t *testing.T, body string, check func(r *http.Request)) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c := NewClientWithBaseURL("test-key", server.URL)
	c.now = func() time.Time { return time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC) }
	return c
}

func TestGetHistory_SortsAndFiltersToWindow(t *testing.T) {
	c := newTestClient(t, dailyBody, func(r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Equal(t, "compact", r.URL.Query().Get("outputsize"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
	})

	points, err := c.GetHistory(context.Background(), "CW8.PA", models.Window1M)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-07-01", points[0].Date.String())
	assert.Equal(t, 505.0, points[0].Close)
	assert.Equal(t, "2024-07-03", points[2].Date.String())
}

func TestGetHistory_FullOutputForLongWindows(t *testing.T) {
	c := newTestClient(t, dailyBody, func(r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("outputsize"))
	})
	points, err := c.GetHistory(context.Background(), "CW8.PA", models.Window1Y)
	require.NoError(t, err)
	assert.Len(t, points, 4)
}

func TestGetHistory_APIErrorInBody(t *testing.T) {
	c := newTestClient(t, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, nil)
	_, err := c.GetHistory(context.Background(), "CW8.PA", models.Window1Y)
	assert.ErrorIs(t, err, ErrAPI)

	c = newTestClient(t, `{"Error Message": "Invalid API call."}`, nil)
	_, err = c.GetHistory(context.Background(), "NOPE", models.Window1Y)
	assert.ErrorIs(t, err, ErrAPI)
}

func TestGetHistory_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClientWithBaseURL("k", server.URL).GetHistory(context.Background(), "X", models.Window1Y)
	assert.ErrorContains(t, err, "status 502")
}
