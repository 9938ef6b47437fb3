package engine

import (
	"fmt"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryHoldings pairs a category with its holdings
type CategoryHoldings struct {
	Category models.Category
	Holdings *models.HoldingsSet
}

// Allocation is the result of Allocate. Rows is empty whenever GrandTotal is not positive.
type Allocation struct {
	Rows             []models.AllocationRow
	TotalsByCategory map[models.Category]decimal.Decimal
	Categories       []models.Category
	GrandTotal       decimal.Decimal
}

// CategoryAllocation splits an Allocation by category
type CategoryAllocation struct {
	Rows []models.AllocationRow
	// Shares are unrounded percentages of the grand total, for classification
	Shares map[models.Category]decimal.Decimal
}

// Allocate computes per-holding shares of the grand total across categories.
// Rows follow category order then holding insertion order.
func Allocate(categories []CategoryHoldings) Allocation {
	alloc := Allocation{
		TotalsByCategory: make(map[models.Category]decimal.Decimal, len(categories)),
		GrandTotal:       decimal.Zero,
	}
	for _, c := range categories {
		total := c.Holdings.Total()
		if prev, ok := alloc.TotalsByCategory[c.Category]; ok {
			total = total.Add(prev)
		} else {
			alloc.Categories = append(alloc.Categories, c.Category)
		}
		alloc.TotalsByCategory[c.Category] = total
		alloc.GrandTotal = alloc.GrandTotal.Add(c.Holdings.Total())
	}

	if !alloc.GrandTotal.IsPositive() {
		alloc.Rows = []models.AllocationRow{}
		return alloc
	}

	for _, c := range categories {
		for _, e := range c.Holdings.Entries() {
			alloc.Rows = append(alloc.Rows, models.AllocationRow{
				Label:      Label(c.Category, e.Name),
				Category:   c.Category,
				Name:       e.Name,
				Amount:     e.Amount,
				Percentage: percentOf(e.Amount, alloc.GrandTotal).Round(2),
			})
		}
	}
	return alloc
}

// CategoryShares breaks an allocation down by category
func CategoryShares(alloc Allocation) CategoryAllocation {
	out := CategoryAllocation{
		Rows:   []models.AllocationRow{},
		Shares: make(map[models.Category]decimal.Decimal, len(alloc.Categories)),
	}
	if !alloc.GrandTotal.IsPositive() {
		return out
	}
	for _, c := range alloc.Categories {
		total := alloc.TotalsByCategory[c]
		share := percentOf(total, alloc.GrandTotal)
		out.Shares[c] = share
		out.Rows = append(out.Rows, models.AllocationRow{
			Label:      string(c),
			Category:   c,
			Amount:     total,
			Percentage: share.Round(2),
		})
	}
	return out
}

// Label namespaces a holding name under its category, e.g. "ETF: IWDA.AS"
func Label(c models.Category, name string) string {
	return fmt.Sprintf("%s: %s", c, name)
}

func percentOf(amount, total decimal.Decimal) decimal.Decimal {
	return amount.Div(total).Mul(hundred)
}
