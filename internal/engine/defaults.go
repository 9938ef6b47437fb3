package engine

import "github.com/epeers/portfolio-tracker/internal/models"

// Editor text used when a user has nothing stored for a category
const (
	DefaultETFText  = "IWDA.AS,5000\nCW8.PA,3000"
	DefaultSCPIText = "Corum Origin,4000\nPrimovie,3000"
)

// DefaultText returns the built-in editor text for a category
func DefaultText(c models.Category) string {
	if c == models.CategorySCPI {
		return DefaultSCPIText
	}
	return DefaultETFText
}

// DefaultHoldings returns the built-in holdings for a category
func DefaultHoldings(c models.Category) *models.HoldingsSet {
	return Parse(DefaultText(c))
}
