package engine

import (
	"sort"

	"github.com/epeers/portfolio-tracker/internal/models"
)

// NoDataReason is the failure reason for an instrument with an empty series
const NoDataReason = "no price data"

// Normalize rescales a price series so that its first close maps to exactly 100.
// It returns false for an empty series.
func Normalize(series []models.PricePoint) (models.NormalizedSeries, bool) {
	if len(series) == 0 {
		return models.NormalizedSeries{}, false
	}
	base := series[0].Close
	points := make([]models.NormalizedPoint, len(series))
	points[0] = models.NormalizedPoint{Date: series[0].Date, Value: 100}
	for i := 1; i < len(series); i++ {
		points[i] = models.NormalizedPoint{
			Date:  series[i].Date,
			Value: series[i].Close / base * 100,
		}
	}
	return models.NormalizedSeries{Points: points}, true
}

// Summarize computes the total return over the series and its latest close.
// It returns false for an empty series.
func Summarize(series []models.PricePoint) (models.PerformanceStats, bool) {
	if len(series) == 0 {
		return models.PerformanceStats{}, false
	}
	first := series[0].Close
	last := series[len(series)-1].Close
	return models.PerformanceStats{
		TotalReturnPct: (last/first - 1) * 100,
		LatestClose:    last,
	}, true
}

// Evaluate turns a fetched series into a per-instrument result
func Evaluate(ticker string, series []models.PricePoint) models.InstrumentPerformance {
	normalized, ok := Normalize(series)
	if !ok {
		return Failed(ticker, NoDataReason)
	}
	stats, _ := Summarize(series)
	return models.InstrumentPerformance{
		Ticker: ticker,
		Status: models.InstrumentOK,
		Series: &normalized,
		Stats:  &stats,
	}
}

// Failed builds a failed per-instrument result
func Failed(ticker, reason string) models.InstrumentPerformance {
	return models.InstrumentPerformance{
		Ticker: ticker,
		Status: models.InstrumentFailed,
		Reason: reason,
	}
}

// AlignedSeries is a set of normalized series laid over the union of their dates.
// Values[i][j] is nil where instrument i has no observation on Dates[j].
type AlignedSeries struct {
	Tickers []string
	Dates   []models.FlexibleDate
	Values  [][]*float64
}

// Align places every successful instrument on a shared calendar axis without
// interpolating; dates an instrument did not trade stay nil.
func Align(results []models.InstrumentPerformance) AlignedSeries {
	seen := make(map[string]models.FlexibleDate)
	var out AlignedSeries
	for _, r := range results {
		if !r.OK() {
			continue
		}
		out.Tickers = append(out.Tickers, r.Ticker)
		for _, p := range r.Series.Points {
			seen[p.Date.String()] = p.Date
		}
	}
	for _, d := range seen {
		out.Dates = append(out.Dates, d)
	}
	sort.Slice(out.Dates, func(i, j int) bool { return out.Dates[i].Before(out.Dates[j].Time) })

	index := make(map[string]int, len(out.Dates))
	for i, d := range out.Dates {
		index[d.String()] = i
	}
	for _, r := range results {
		if !r.OK() {
			continue
		}
		row := make([]*float64, len(out.Dates))
		for _, p := range r.Series.Points {
			v := p.Value
			row[index[p.Date.String()]] = &v
		}
		out.Values = append(out.Values, row)
	}
	return out
}
