package engine

import "github.com/shopspring/decimal"

// Diversification labels, in evaluation order
const (
	LabelMarketHeavy     = "heavily market-weighted"
	LabelRealEstateHeavy = "heavily real-estate-weighted"
	LabelBalanced        = "balanced"
	LabelMixed           = "mixed"
)

var (
	heavyThreshold = decimal.NewFromInt(80)
	balancedLow    = decimal.NewFromInt(40)
	balancedHigh   = decimal.NewFromInt(60)
)

// Classify labels a portfolio from the market share (pctMarket) and the
// real-estate share (pctRealEstate), both in percent. The first matching rule wins.
func Classify(pctMarket, pctRealEstate decimal.Decimal) string {
	switch {
	case pctMarket.GreaterThan(heavyThreshold):
		return LabelMarketHeavy
	case pctRealEstate.GreaterThan(heavyThreshold):
		return LabelRealEstateHeavy
	case pctMarket.GreaterThanOrEqual(balancedLow) && pctMarket.LessThanOrEqual(balancedHigh):
		return LabelBalanced
	default:
		return LabelMixed
	}
}
