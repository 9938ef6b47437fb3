package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// MarketClock describes when the exchange publishes its daily close
type MarketClock struct {
	Location    *time.Location
	CloseHour   int
	CloseMinute int
}

// NewMarketClock loads a clock for the named timezone.
// An unknown zone falls back to UTC.
func NewMarketClock(zone string, closeHour, closeMinute int) MarketClock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.Errorf("Failed to load location '%s': %v. Falling back to UTC.", zone, err)
		loc = time.UTC
	}
	return MarketClock{Location: loc, CloseHour: closeHour, CloseMinute: closeMinute}
}

// NextMarketDate predicts when the next daily close will be available.
// It returns the next weekday at the clock's close time, in UTC.
func (m MarketClock) NextMarketDate(input time.Time) time.Time {
	loc := m.Location
	if loc == nil {
		loc = time.UTC
	}
	local := input.In(loc)

	next := time.Date(local.Year(), local.Month(), local.Day(), m.CloseHour, m.CloseMinute, 0, 0, loc)
	if local.After(next) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next.UTC()
}
