package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func holdings(text string) *models.HoldingsSet {
	return engine.Parse(text)
}

func TestAllocationPie(t *testing.T) {
	alloc := engine.Allocate([]engine.CategoryHoldings{
		{Category: models.CategoryETF, Holdings: holdings("IWDA.AS,5000\nCW8.PA,3000")},
		{Category: models.CategorySCPI, Holdings: holdings("Corum Origin,4000")},
	})

	img, err := AllocationPie(alloc.Rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	img, err = CategoryPie(engine.CategoryShares(alloc).Rows)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestPieNothingToDraw(t *testing.T) {
	_, err := AllocationPie(nil)
	assert.ErrorIs(t, err, ErrNothingToDraw)

	rows := []models.AllocationRow{{Label: "ETF: X", Amount: decimal.NewFromInt(-10)}}
	_, err = AllocationPie(rows)
	assert.ErrorIs(t, err, ErrNothingToDraw)
}

func TestPerformanceLines(t *testing.T) {
	day := func(d int) models.FlexibleDate {
		return models.NewDate(time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC))
	}
	a := engine.Evaluate("AAA", []models.PricePoint{
		{Date: day(1), Close: 10}, {Date: day(2), Close: 11}, {Date: day(4), Close: 12},
	})
	b := engine.Evaluate("BBB", []models.PricePoint{
		{Date: day(2), Close: 50}, {Date: day(3), Close: 45}, {Date: day(4), Close: 55},
	})
	failed := engine.Failed("CCC", engine.NoDataReason)

	img, err := PerformanceLines(engine.Align([]models.InstrumentPerformance{a, failed, b}), models.Window1M)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestPerformanceLinesNothingToDraw(t *testing.T) {
	failed := engine.Failed("CCC", engine.NoDataReason)
	_, err := PerformanceLines(engine.Align([]models.InstrumentPerformance{failed}), models.Window1Y)
	assert.ErrorIs(t, err, ErrNothingToDraw)
}
