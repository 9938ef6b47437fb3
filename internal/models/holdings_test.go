package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingsSet_OverwriteKeepsFirstPosition(t *testing.T) {
	h := NewHoldingsSet()
	h.Set("IWDA.AS", decimal.NewFromInt(5000))
	h.Set("CW8.PA", decimal.NewFromInt(3000))
	h.Set("IWDA.AS", decimal.NewFromInt(200))

	assert.Equal(t, []string{"IWDA.AS", "CW8.PA"}, h.Names())
	amount, ok := h.Get("IWDA.AS")
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromInt(200)))
	assert.True(t, h.Total().Equal(decimal.NewFromInt(3200)))
}

func TestHoldingsSet_NilIsEmpty(t *testing.T) {
	var h *HoldingsSet
	assert.Equal(t, 0, h.Len())
	assert.True(t, h.Total().IsZero())
	assert.True(t, h.Equal(NewHoldingsSet()))
}

func TestHoldingsSet_EqualIgnoresOrder(t *testing.T) {
	a := HoldingsFromEntries([]HoldingEntry{
		{Name: "A", Amount: decimal.NewFromInt(1)},
		{Name: "B", Amount: decimal.RequireFromString("2.50")},
	})
	b := HoldingsFromEntries([]HoldingEntry{
		{Name: "B", Amount: decimal.RequireFromString("2.5")},
		{Name: "A", Amount: decimal.NewFromInt(1)},
	})
	assert.True(t, a.Equal(b))

	b.Set("A", decimal.NewFromInt(7))
	assert.False(t, a.Equal(b))
}

func TestHoldingsSet_JSONPreservesOrder(t *testing.T) {
	h := NewHoldingsSet()
	h.Set("Zeta", decimal.NewFromInt(1))
	h.Set("Alpha", decimal.NewFromInt(2))

	b, err := json.Marshal(h)
	require.NoError(t, err)

	var decoded HoldingsSet
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []string{"Zeta", "Alpha"}, decoded.Names())
	assert.True(t, h.Equal(&decoded))
}

func TestHoldingsSet_EmptyMarshalsAsArray(t *testing.T) {
	b, err := json.Marshal(NewHoldingsSet())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, Window1Y, w)

	w, err = ParseWindow("6mo")
	require.NoError(t, err)
	assert.Equal(t, Window6M, w)

	_, err = ParseWindow("10y")
	assert.Error(t, err)
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 15, 12, 0, 0, 0, time.UTC), Window1M.Start(now))
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), Window1Y.Start(now))
	assert.Equal(t, time.Date(2020, 3, 15, 12, 0, 0, 0, time.UTC), Window5Y.Start(now))
}

func TestFlexibleDate_JSON(t *testing.T) {
	var d FlexibleDate
	require.NoError(t, json.Unmarshal([]byte(`"2024-07-23T15:04:05Z"`), &d))
	assert.Equal(t, "2024-07-23", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2024-01-02"`), &d))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(b))
}
