package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMarketDate(t *testing.T) {
	clock := NewMarketClock("Europe/Paris", 17, 35)
	paris := clock.Location

	testCases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Weekday before close",
			input:    time.Date(2024, 7, 23, 10, 0, 0, 0, paris), // Tuesday
			expected: time.Date(2024, 7, 23, 17, 35, 0, 0, paris),
		},
		{
			name:     "Weekday after close",
			input:    time.Date(2024, 7, 23, 18, 0, 0, 0, paris),
			expected: time.Date(2024, 7, 24, 17, 35, 0, 0, paris),
		},
		{
			name:     "Friday after close",
			input:    time.Date(2024, 7, 26, 18, 0, 0, 0, paris),
			expected: time.Date(2024, 7, 29, 17, 35, 0, 0, paris), // Monday
		},
		{
			name:     "Sunday",
			input:    time.Date(2024, 7, 28, 12, 0, 0, 0, paris),
			expected: time.Date(2024, 7, 29, 17, 35, 0, 0, paris),
		},
		{
			name:     "Exactly at close",
			input:    time.Date(2024, 7, 23, 17, 35, 0, 0, paris),
			expected: time.Date(2024, 7, 23, 17, 35, 0, 0, paris),
		},
		{
			name:     "Input given in UTC",
			input:    time.Date(2024, 7, 23, 16, 0, 0, 0, time.UTC), // 18:00 Paris (CEST)
			expected: time.Date(2024, 7, 24, 17, 35, 0, 0, paris),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := clock.NextMarketDate(tc.input)
			assert.True(t, tc.expected.Equal(got), "expected %v, got %v", tc.expected.UTC(), got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNewMarketClock_UnknownZoneFallsBackToUTC(t *testing.T) {
	clock := NewMarketClock("Not/AZone", 16, 30)
	assert.Equal(t, time.UTC, clock.Location)
	got := clock.NextMarketDate(time.Date(2024, 7, 23, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 7, 23, 16, 30, 0, 0, time.UTC), got)
}
