// Package marketdata puts the price-history clients behind one interface and
// caches their answers until the next market close.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/portfolio-tracker/internal/alphavantage"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/util"
	"github.com/epeers/portfolio-tracker/internal/yahoo"
	log "github.com/sirupsen/logrus"
)

// ErrNoData means the provider returned an empty series for a symbol
var ErrNoData = errors.New("no price data")

// Provider returns a daily closing-price history, oldest first
type Provider interface {
	// Name identifies the upstream feed in logs
	Name() string
	GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, error)
}

// HistoryCache stores series until an absolute deadline
type HistoryCache interface {
	GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, bool)
	SetHistory(ctx context.Context, symbol string, window models.Window, data []models.PricePoint, expiresAt time.Time)
}

// New builds the named provider ("yahoo" or "alphavantage")
func New(name, avKey string) (Provider, error) {
	switch name {
	case "", "yahoo":
		return yahoo.NewClient(), nil
	case "alphavantage":
		if avKey == "" {
			return nil, fmt.Errorf("alphavantage provider requires an API key")
		}
		return alphavantage.NewClient(avKey), nil
	}
	return nil, fmt.Errorf("unknown market data provider %q", name)
}

// CachedProvider consults L1 then L2 caches before calling the upstream provider.
// Empty series and errors are never cached.
type CachedProvider struct {
	upstream Provider
	l1       HistoryCache
	l2       HistoryCache
	clock    util.MarketClock
	now      func() time.Time
}

// NewCachedProvider wraps upstream; l2 may be nil
func NewCachedProvider(upstream Provider, l1, l2 HistoryCache, clock util.MarketClock) *CachedProvider {
	return &CachedProvider{
		upstream: upstream,
		l1:       l1,
		l2:       l2,
		clock:    clock,
		now:      time.Now,
	}
}

// Name reports the upstream provider's name
func (p *CachedProvider) Name() string {
	return p.upstream.Name()
}

// GetHistory implements Provider. It returns ErrNoData for empty upstream answers.
func (p *CachedProvider) GetHistory(ctx context.Context, symbol string, window models.Window) ([]models.PricePoint, error) {
	if data, ok := p.l1.GetHistory(ctx, symbol, window); ok {
		return data, nil
	}

	expiresAt := p.clock.NextMarketDate(p.now())
	if p.l2 != nil {
		if data, ok := p.l2.GetHistory(ctx, symbol, window); ok {
			p.l1.SetHistory(ctx, symbol, window, data, expiresAt)
			return data, nil
		}
	}

	defer util.TrackTime("marketdata.GetHistory "+symbol, time.Now())
	data, err := p.upstream.GetHistory(ctx, symbol, window)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoData)
	}

	log.Debugf("caching %d points for %s/%s until %s", len(data), symbol, window, expiresAt.Format(time.RFC3339))
	p.l1.SetHistory(ctx, symbol, window, data, expiresAt)
	if p.l2 != nil {
		p.l2.SetHistory(ctx, symbol, window, data, expiresAt)
	}
	return data, nil
}
