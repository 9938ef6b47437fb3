// Package charts renders dashboard figures as PNG images
package charts

import (
	"errors"
	"fmt"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/util"
	"github.com/shopspring/decimal"
	charts "github.com/vicanso/go-charts/v2"
)

// ErrNothingToDraw is returned when no value can be plotted
var ErrNothingToDraw = errors.New("nothing to draw")

const (
	width  = 800
	height = 600
)

// AllocationPie draws every holding's share of the portfolio.
// Rows with a non-positive amount cannot be drawn as slices and are left out.
func AllocationPie(rows []models.AllocationRow) ([]byte, error) {
	return pie("Allocation", rows)
}

// CategoryPie draws the ETF versus SCPI split
func CategoryPie(rows []models.AllocationRow) ([]byte, error) {
	return pie("ETF / SCPI", rows)
}

func pie(title string, rows []models.AllocationRow) ([]byte, error) {
	var values []float64
	var labels []string
	total := decimal.Zero
	for _, r := range rows {
		if !r.Amount.IsPositive() {
			continue
		}
		values = append(values, r.Amount.InexactFloat64())
		labels = append(labels, fmt.Sprintf("%s (%s%%)", r.Label, r.Percentage.StringFixed(1)))
		total = total.Add(r.Amount)
	}
	if len(values) == 0 {
		return nil, ErrNothingToDraw
	}

	p, err := charts.PieRender(
		values,
		charts.TitleTextOptionFunc(title, util.FormatEUR(total)),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: labels,
			Top:  charts.PositionBottom,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", title, err)
	}
	return p.Bytes()
}

// PerformanceLines draws base-100 series on a shared date axis.
// Dates an instrument has no close for are left as gaps.
func PerformanceLines(aligned engine.AlignedSeries, window models.Window) ([]byte, error) {
	if len(aligned.Tickers) == 0 || len(aligned.Dates) == 0 {
		return nil, ErrNothingToDraw
	}

	xLabels := make([]string, len(aligned.Dates))
	for i, d := range aligned.Dates {
		xLabels[i] = d.String()
	}

	values := make([][]float64, len(aligned.Values))
	yMin, yMax := 100.0, 100.0
	for i, row := range aligned.Values {
		values[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				values[i][j] = charts.GetNullValue()
				continue
			}
			values[i][j] = *v
			if *v < yMin {
				yMin = *v
			}
			if *v > yMax {
				yMax = *v
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 1
	}
	yMin -= pad
	yMax += pad

	split := len(xLabels) / 8
	if split < 1 {
		split = 1
	}

	p, err := charts.LineRender(
		values,
		charts.TitleTextOptionFunc("Performance (base 100)", string(window)),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: split,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: aligned.Tickers}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render performance chart: %w", err)
	}
	return p.Bytes()
}
