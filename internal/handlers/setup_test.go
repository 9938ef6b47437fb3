package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/auth"
	"github.com/epeers/portfolio-tracker/internal/marketdata"
	"github.com/epeers/portfolio-tracker/internal/middleware"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/repository"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	series map[string][]models.PricePoint
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) GetHistory(_ context.Context, symbol string, _ models.Window) ([]models.PricePoint, error) {
	s, ok := p.series[symbol]
	if !ok {
		return nil, marketdata.ErrNoData
	}
	return s, nil
}

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (m *memoryUsers) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Username]; ok {
		return repository.ErrUserConflict
	}
	m.users[u.Username] = u
	return nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type failingStore struct{}

func (failingStore) LoadHoldings(context.Context, string) (*models.UserHoldings, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) ReplaceHoldings(context.Context, string, *models.UserHoldings) error {
	return errors.New("disk on fire")
}

func series(closes ...float64) []models.PricePoint {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = models.PricePoint{Date: models.NewDate(start.AddDate(0, 0, i)), Close: c}
	}
	return out
}

type testOptions struct {
	local bool
	store repository.HoldingsStore
}

// newTestRouter wires the API the way main does, with in-memory collaborators
func newTestRouter(t *testing.T, opts testOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := opts.store
	if store == nil {
		store = repository.NewFileRepository(filepath.Join(t.TempDir(), "holdings.json"))
	}

	provider := &stubProvider{series: map[string][]models.PricePoint{
		"IWDA.AS": series(80, 84, 88),
		"CW8.PA":  series(400, 390, 420),
	}}

	var users repository.UserStore
	var authenticator auth.Authenticator = auth.LocalAuthenticator{}
	if !opts.local {
		mu := &memoryUsers{users: make(map[string]*models.User)}
		users = mu
		authenticator = auth.NewAccountAuthenticator(mu)
	}

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := auth.NewMemorySessionStore()

	authSvc := services.NewAuthService(users, authenticator, tokens, sessions)
	holdingsSvc := services.NewHoldingsService(store)
	performanceSvc := services.NewPerformanceService(provider, 2, time.Second)
	dashboardSvc := services.NewDashboardService(holdingsSvc, performanceSvc, sessions)

	router := gin.New()
	router.Use(middleware.ValidateSession(authSvc, opts.local))
	RegisterRoutes(router,
		NewAuthHandler(authSvc),
		NewHoldingsHandler(holdingsSvc, dashboardSvc),
		NewDashboardHandler(dashboardSvc),
	)
	return router
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signupAndLogin creates an account and returns its bearer token
func signupAndLogin(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/signup", "", models.SignupRequest{
		Email:           username + "@example.com",
		Username:        username,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", models.LoginRequest{Username: username, Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.LoginResponse](t, w).Token
}
