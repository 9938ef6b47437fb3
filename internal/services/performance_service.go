package services

import (
	"context"
	"errors"
	"time"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/marketdata"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PerformanceService fetches and normalizes price histories, one result per ticker
type PerformanceService struct {
	provider     marketdata.Provider
	maxParallel  int
	fetchTimeout time.Duration
}

// NewPerformanceService creates a service fetching at most maxParallel tickers at once
func NewPerformanceService(provider marketdata.Provider, maxParallel int, fetchTimeout time.Duration) *PerformanceService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &PerformanceService{
		provider:     provider,
		maxParallel:  maxParallel,
		fetchTimeout: fetchTimeout,
	}
}

// Evaluate returns one result per ticker in input order. A failing or empty
// ticker becomes a failed result plus a warning; it never affects the others.
func (s *PerformanceService) Evaluate(ctx context.Context, tickers []string, window models.Window) []models.InstrumentPerformance {
	defer util.TrackTime("PerformanceService.Evaluate", time.Now())

	results := make([]models.InstrumentPerformance, len(tickers))
	var g errgroup.Group
	g.SetLimit(s.maxParallel)

	for i, ticker := range tickers {
		g.Go(func() error {
			results[i] = s.evaluateOne(ctx, ticker, window)
			return nil
		})
	}
	g.Wait()

	for _, r := range results {
		if r.OK() {
			continue
		}
		code := models.WarnPriceFetchFailed
		if r.Reason == engine.NoDataReason {
			code = models.WarnNoPriceData
		}
		Warnf(ctx, code, "%s: %s", r.Ticker, r.Reason)
	}
	return results
}

func (s *PerformanceService) evaluateOne(ctx context.Context, ticker string, window models.Window) (result models.InstrumentPerformance) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("panic fetching %s from %s: %v", ticker, s.provider.Name(), rec)
			result = engine.Failed(ticker, "internal error")
		}
	}()

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	series, err := s.provider.GetHistory(fetchCtx, ticker, window)
	switch {
	case errors.Is(err, marketdata.ErrNoData):
		return engine.Failed(ticker, engine.NoDataReason)
	case errors.Is(err, context.DeadlineExceeded):
		log.Warnf("%s fetch for %s timed out after %s", s.provider.Name(), ticker, s.fetchTimeout)
		return engine.Failed(ticker, "timed out")
	case err != nil:
		log.Warnf("%s fetch for %s failed: %v", s.provider.Name(), ticker, err)
		return engine.Failed(ticker, err.Error())
	}
	return engine.Evaluate(ticker, series)
}
