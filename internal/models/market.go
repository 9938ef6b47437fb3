package models

import (
	"fmt"
	"time"
)

// Window is a price-history lookback supported by the market-data providers
type Window string

const (
	Window1M Window = "1mo"
	Window3M Window = "3mo"
	Window6M Window = "6mo"
	Window1Y Window = "1y"
	Window2Y Window = "2y"
	Window5Y Window = "5y"

	DefaultWindow = Window1Y
)

// Windows lists the valid windows, shortest first
var Windows = []Window{Window1M, Window3M, Window6M, Window1Y, Window2Y, Window5Y}

// ParseWindow validates a window string. An empty string yields DefaultWindow.
func ParseWindow(s string) (Window, error) {
	if s == "" {
		return DefaultWindow, nil
	}
	for _, w := range Windows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("invalid window %q: must be one of 1mo, 3mo, 6mo, 1y, 2y, 5y", s)
}

// Start returns the first calendar day covered by the window ending at now
func (w Window) Start(now time.Time) time.Time {
	switch w {
	case Window1M:
		return now.AddDate(0, -1, 0)
	case Window3M:
		return now.AddDate(0, -3, 0)
	case Window6M:
		return now.AddDate(0, -6, 0)
	case Window2Y:
		return now.AddDate(-2, 0, 0)
	case Window5Y:
		return now.AddDate(-5, 0, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// PricePoint is one daily closing price
type PricePoint struct {
	Date  FlexibleDate `json:"date"`
	Close float64      `json:"close"`
}

// NormalizedPoint is a price rescaled so the first observation equals 100
type NormalizedPoint struct {
	Date  FlexibleDate `json:"date"`
	Value float64      `json:"value"`
}

// NormalizedSeries is a base-100 series; Points[0].Value is always 100
type NormalizedSeries struct {
	Points []NormalizedPoint `json:"points"`
}

// PerformanceStats summarises a raw price series
type PerformanceStats struct {
	TotalReturnPct float64 `json:"total_return_pct"`
	LatestClose    float64 `json:"latest_close"`
}

// InstrumentStatus is the outcome of processing one instrument
type InstrumentStatus string

const (
	InstrumentOK     InstrumentStatus = "ok"
	InstrumentFailed InstrumentStatus = "failed"
)

// InstrumentPerformance is the per-ticker result of a performance run.
// Series and Stats are set only when Status is InstrumentOK; Reason only when failed.
type InstrumentPerformance struct {
	Ticker string            `json:"ticker"`
	Status InstrumentStatus  `json:"status"`
	Reason string            `json:"reason,omitempty"`
	Series *NormalizedSeries `json:"series,omitempty"`
	Stats  *PerformanceStats `json:"stats,omitempty"`
}

// OK reports whether the instrument produced a series
func (p InstrumentPerformance) OK() bool {
	return p.Status == InstrumentOK
}
