package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/util"
)

// printMarkdown renders md for the terminal, falling back to the raw text
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(os.Stdout, md)
		return
	}
	fmt.Fprint(os.Stdout, out)
}

func allocationMarkdown(alloc engine.Allocation) string {
	var b strings.Builder
	b.WriteString("# Allocation\n\n")
	if len(alloc.Rows) == 0 {
		b.WriteString("Nothing to allocate: the total is not positive.\n\n")
	} else {
		b.WriteString("| Holding | Amount | Share |\n|---|---:|---:|\n")
		for _, r := range alloc.Rows {
			fmt.Fprintf(&b, "| %s | %s | %s%% |\n", r.Label, util.FormatEUR(r.Amount), r.Percentage.StringFixed(2))
		}
		b.WriteString("\n")
	}

	shares := engine.CategoryShares(alloc)
	b.WriteString("## Totals\n\n| Category | Amount | Share |\n|---|---:|---:|\n")
	for _, c := range alloc.Categories {
		share := "-"
		if s, ok := shares.Shares[c]; ok {
			share = s.StringFixed(2) + "%"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c, util.FormatEUR(alloc.TotalsByCategory[c]), share)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | |\n\n", util.FormatEUR(alloc.GrandTotal))

	if alloc.GrandTotal.IsPositive() {
		label := engine.Classify(shares.Shares[models.CategoryETF], shares.Shares[models.CategorySCPI])
		fmt.Fprintf(&b, "Diversification: **%s**\n", label)
	}
	return b.String()
}

func performanceMarkdown(window models.Window, results []models.InstrumentPerformance, warnings []models.Warning) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Performance (%s)\n\n", window)
	b.WriteString("| Ticker | Return | Latest close |\n|---|---:|---:|\n")
	for _, r := range results {
		if !r.OK() {
			fmt.Fprintf(&b, "| %s | n/a | %s |\n", r.Ticker, r.Reason)
			continue
		}
		fmt.Fprintf(&b, "| %s | %+.2f%% | %.2f |\n", r.Ticker, r.Stats.TotalReturnPct, r.Stats.LatestClose)
	}
	if len(warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- `%s` %s\n", w.Code, w.Message)
		}
	}
	return b.String()
}
