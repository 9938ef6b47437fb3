package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/repository"
	"github.com/epeers/portfolio-tracker/internal/util"
	log "github.com/sirupsen/logrus"
)

// ErrSaveFailed is returned when storage rejects a save; the previous holdings remain
var ErrSaveFailed = errors.New("failed to save holdings")

// LoadedHoldings is the result of HoldingsService.Load
type LoadedHoldings struct {
	Holdings   *models.UserHoldings
	ETFSource  models.HoldingsSource
	SCPISource models.HoldingsSource
}

// Texts renders both sets as editor text
func (l *LoadedHoldings) Texts() models.HoldingsTexts {
	return models.HoldingsTexts{
		ETF:  engine.Format(l.Holdings.ETF),
		SCPI: engine.Format(l.Holdings.SCPI),
	}
}

// HoldingsService loads and saves a user's holdings
type HoldingsService struct {
	store repository.HoldingsStore
}

// NewHoldingsService creates a new HoldingsService
func NewHoldingsService(store repository.HoldingsStore) *HoldingsService {
	return &HoldingsService{store: store}
}

// Load returns the stored holdings, substituting the built-in defaults for any
// empty category. A storage failure is logged and yields defaults for both.
func (s *HoldingsService) Load(ctx context.Context, userID string) *LoadedHoldings {
	defer util.TrackTime("HoldingsService.Load", time.Now())

	stored, err := s.store.LoadHoldings(ctx, userID)
	if err != nil {
		log.Errorf("Failed to load holdings for %s: %v. Using defaults.", userID, err)
		AddWarning(ctx, models.Warning{
			Code:    models.WarnHoldingsLoadFailed,
			Message: "saved holdings could not be loaded; showing defaults",
		})
		stored = models.NewUserHoldings()
	}

	out := &LoadedHoldings{
		Holdings:   models.NewUserHoldings(),
		ETFSource:  models.SourceStored,
		SCPISource: models.SourceStored,
	}
	for _, c := range models.Categories {
		set := stored.ByCategory(c)
		if set.Len() == 0 {
			set = engine.DefaultHoldings(c)
			if c == models.CategorySCPI {
				out.SCPISource = models.SourceDefault
			} else {
				out.ETFSource = models.SourceDefault
			}
			if err == nil {
				log.Debugf("no stored %s holdings for %s, using defaults", c, userID)
				Warnf(ctx, models.WarnHoldingsDefaulted, "no saved %s holdings; showing defaults", c)
			}
		}
		out.Holdings.SetCategory(c, set)
	}
	return out
}

// Save parses both editor texts and replaces the stored holdings
func (s *HoldingsService) Save(ctx context.Context, userID string, texts models.HoldingsTexts) (*models.UserHoldings, error) {
	defer util.TrackTime("HoldingsService.Save", time.Now())

	h := ParseTexts(ctx, texts)
	if err := s.store.ReplaceHoldings(ctx, userID, h); err != nil {
		log.Errorf("Failed to save holdings for %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	log.Infof("saved %d ETF and %d SCPI holdings for %s", h.ETF.Len(), h.SCPI.Len(), userID)
	return h, nil
}

// ParseTexts parses both editor texts, reporting dropped lines as a warning
func ParseTexts(ctx context.Context, texts models.HoldingsTexts) *models.UserHoldings {
	etf := engine.ParseWithStats(texts.ETF)
	scpi := engine.ParseWithStats(texts.SCPI)
	if dropped := etf.Dropped + scpi.Dropped; dropped > 0 {
		Warnf(ctx, models.WarnLinesDropped, "%d malformed line(s) ignored", dropped)
	}
	return &models.UserHoldings{ETF: etf.Holdings, SCPI: scpi.Holdings}
}
