// Package engine holds the pure computations behind the dashboard: parsing
// editor text into holdings, allocation shares, base-100 normalization and
// the diversification label. Nothing here performs I/O.
package engine

import (
	"errors"
	"strings"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseAmount for non-numeric input
var ErrInvalidAmount = errors.New("invalid amount")

// ParseResult is the outcome of Parse with the number of lines it skipped
type ParseResult struct {
	Holdings *models.HoldingsSet
	Dropped  int
}

// Parse converts "name,amount" lines into a HoldingsSet.
// Blank lines are ignored. Lines without exactly one comma or with a non-numeric
// amount are dropped. A repeated name overwrites the earlier amount.
func Parse(text string) *models.HoldingsSet {
	return ParseWithStats(text).Holdings
}

// ParseWithStats is Parse that also counts the non-blank lines it dropped
func ParseWithStats(text string) ParseResult {
	result := ParseResult{Holdings: models.NewHoldingsSet()}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			result.Dropped++
			continue
		}
		amount, err := ParseAmount(parts[1])
		if err != nil {
			result.Dropped++
			continue
		}
		result.Holdings.Set(strings.TrimSpace(parts[0]), amount)
	}
	return result
}

// maxAmountDigits bounds the digits an amount may carry on both sides of the dot
const maxAmountDigits = 30

// ParseAmount parses a dot-decimal amount, tolerating surrounding whitespace.
// Negative and zero values are accepted. Exponent forms and amounts longer
// than maxAmountDigits digits are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !isDecimalLiteral(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// isDecimalLiteral matches [+-]digits[.digits] where either side of the dot
// may be empty but not both
func isDecimalLiteral(s string) bool {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && digits <= maxAmountDigits && dots <= 1
}

// Format renders a HoldingsSet back into editor text, one "name,amount" per line
func Format(h *models.HoldingsSet) string {
	entries := h.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Name+","+e.Amount.String())
	}
	return strings.Join(lines, "\n")
}
