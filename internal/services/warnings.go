package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epeers/portfolio-tracker/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates non-fatal issues during one request.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext attaches an empty collector to ctx. The caller keeps the
// collector and reads it once the computation is done.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

func collectorFrom(ctx context.Context) *WarningCollector {
	wc, _ := ctx.Value(warningContextKey{}).(*WarningCollector)
	return wc
}

// AddWarning records w on the collector carried by ctx, if there is one.
func AddWarning(ctx context.Context, w models.Warning) {
	wc := collectorFrom(ctx)
	if wc == nil {
		return
	}
	wc.mu.Lock()
	wc.warnings = append(wc.warnings, w)
	wc.mu.Unlock()
}

// Warnf is AddWarning with a formatted message
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of what has been collected so far.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	out := make([]models.Warning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
