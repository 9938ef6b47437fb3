package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/repository"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[string]*models.UserHoldings
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]*models.UserHoldings)}
}

func (f *fakeStore) LoadHoldings(_ context.Context, userID string) (*models.UserHoldings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if h, ok := f.data[userID]; ok {
		return h, nil
	}
	return models.NewUserHoldings(), nil
}

func (f *fakeStore) ReplaceHoldings(_ context.Context, userID string, h *models.UserHoldings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[userID] = h
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*models.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Username]; ok {
		return repository.ErrUserConflict
	}
	f.users[u.Username] = u
	return nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

// fakeProvider answers from fixed tables; delay applies to every call
type fakeProvider struct {
	series   map[string][]models.PricePoint
	errs     map[string]error
	panics   map[string]bool
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GetHistory(ctx context.Context, symbol string, _ models.Window) ([]models.PricePoint, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if f.panics[symbol] {
		panic("provider exploded")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.series[symbol], nil
}

func closes(values ...float64) []models.PricePoint {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]models.PricePoint, len(values))
	for i, v := range values {
		out[i] = models.PricePoint{Date: models.NewDate(start.AddDate(0, 0, i)), Close: v}
	}
	return out
}
