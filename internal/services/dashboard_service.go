package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/portfolio-tracker/internal/auth"
	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/util"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidWindow is returned for a window outside 1mo..5y
var ErrInvalidWindow = errors.New("invalid window")

// DashboardInput overrides parts of the session state for one computation.
// Nil texts fall back to the session drafts, then to stored holdings.
type DashboardInput struct {
	ETF    *string
	SCPI   *string
	Window string
}

// DashboardService assembles allocation, classification and performance
type DashboardService struct {
	holdings    *HoldingsService
	performance *PerformanceService
	sessions    auth.SessionStore
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(holdings *HoldingsService, performance *PerformanceService, sessions auth.SessionStore) *DashboardService {
	return &DashboardService{
		holdings:    holdings,
		performance: performance,
		sessions:    sessions,
	}
}

// ComputeForSession resolves the inputs for a session, remembers any new drafts
// on it and computes the dashboard.
func (s *DashboardService) ComputeForSession(ctx context.Context, sess *models.Session, in DashboardInput) (*models.DashboardResponse, error) {
	h, window, err := s.Resolve(ctx, sess, in)
	if err != nil {
		return nil, err
	}
	return s.Compute(ctx, h, window), nil
}

// Resolve picks the holdings and window a session's dashboard is built from:
// request values first, then the session drafts, then stored holdings.
// Request values are remembered on the session.
func (s *DashboardService) Resolve(ctx context.Context, sess *models.Session, in DashboardInput) (*models.UserHoldings, models.Window, error) {
	window, err := resolveWindow(in.Window, sess.Window)
	if err != nil {
		return nil, "", err
	}

	texts := s.resolveTexts(ctx, sess, in)

	if in.ETF != nil || in.SCPI != nil || in.Window != "" {
		sess.Drafts = &texts
		sess.Window = window
		if err := s.sessions.Save(ctx, sess); err != nil {
			// the dashboard is still valid; only the draft memory is lost
			log.Warnf("failed to remember drafts for session %s: %v", sess.ID, err)
		}
	}

	return ParseTexts(ctx, texts), window, nil
}

// RememberDrafts stores texts as the session's current editor contents
func (s *DashboardService) RememberDrafts(ctx context.Context, sess *models.Session, texts models.HoldingsTexts) error {
	sess.Drafts = &texts
	return s.sessions.Save(ctx, sess)
}

// Compute builds the dashboard for already-parsed holdings
func (s *DashboardService) Compute(ctx context.Context, h *models.UserHoldings, window models.Window) *models.DashboardResponse {
	defer util.TrackTime("DashboardService.Compute", time.Now())

	resp := Summarize(h)
	resp.Window = window
	resp.Performance = s.performance.Evaluate(ctx, h.ETF.Names(), window)
	return resp
}

// Summarize computes everything that needs no market data
func Summarize(h *models.UserHoldings) *models.DashboardResponse {
	alloc := engine.Allocate([]engine.CategoryHoldings{
		{Category: models.CategoryETF, Holdings: h.ETF},
		{Category: models.CategorySCPI, Holdings: h.SCPI},
	})
	shares := engine.CategoryShares(alloc)

	summary := models.Summary{
		TotalETF:  alloc.TotalsByCategory[models.CategoryETF],
		TotalSCPI: alloc.TotalsByCategory[models.CategorySCPI],
		Total:     alloc.GrandTotal,
		ETFShare:  decimal.Zero,
		SCPIShare: decimal.Zero,
	}
	if alloc.GrandTotal.IsPositive() {
		etfShare := shares.Shares[models.CategoryETF]
		scpiShare := shares.Shares[models.CategorySCPI]
		summary.ETFShare = etfShare.Round(2)
		summary.SCPIShare = scpiShare.Round(2)
		summary.Classification = engine.Classify(etfShare, scpiShare)
	}

	return &models.DashboardResponse{
		Summary:     summary,
		Allocation:  alloc.Rows,
		Categories:  shares.Rows,
		Performance: []models.InstrumentPerformance{},
	}
}

func resolveWindow(requested string, remembered models.Window) (models.Window, error) {
	if requested == "" {
		if remembered != "" {
			return remembered, nil
		}
		return models.DefaultWindow, nil
	}
	w, err := models.ParseWindow(requested)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	return w, nil
}

func (s *DashboardService) resolveTexts(ctx context.Context, sess *models.Session, in DashboardInput) models.HoldingsTexts {
	etf, scpi := in.ETF, in.SCPI
	if sess.Drafts != nil {
		if etf == nil {
			etf = &sess.Drafts.ETF
		}
		if scpi == nil {
			scpi = &sess.Drafts.SCPI
		}
	}

	if etf == nil || scpi == nil {
		stored := s.holdings.Load(ctx, sess.UserID).Texts()
		if etf == nil {
			etf = &stored.ETF
		}
		if scpi == nil {
			scpi = &stored.SCPI
		}
	}
	return models.HoldingsTexts{ETF: *etf, SCPI: *scpi}
}
