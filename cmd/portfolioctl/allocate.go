package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/google/subcommands"
)

// allocateCmd holds the flags for the 'allocate' subcommand.
type allocateCmd struct {
	etfFile  string
	scpiFile string
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "print the allocation of ETF and SCPI holdings" }
func (*allocateCmd) Usage() string {
	return `portfolioctl allocate [-etf <file>] [-scpi <file>]

  Reads "name,amount" lines from each file and prints every holding's share,
  the category totals and the diversification label. A missing flag means an
  empty category.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.etfFile, "etf", "", "file with ETF holdings")
	f.StringVar(&c.scpiFile, "scpi", "", "file with SCPI holdings")
}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.etfFile == "" && c.scpiFile == "" {
		fmt.Fprintln(os.Stderr, "at least one of -etf or -scpi is required")
		return subcommands.ExitUsageError
	}

	etf, err := readHoldings(c.etfFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ETF holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	scpi, err := readHoldings(c.scpiFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading SCPI holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	alloc := engine.Allocate([]engine.CategoryHoldings{
		{Category: models.CategoryETF, Holdings: etf},
		{Category: models.CategorySCPI, Holdings: scpi},
	})
	printMarkdown(allocationMarkdown(alloc))
	return subcommands.ExitSuccess
}

func readHoldings(path string) (*models.HoldingsSet, error) {
	if path == "" {
		return models.NewHoldingsSet(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res := engine.ParseWithStats(string(raw))
	if res.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d malformed line(s) ignored\n", path, res.Dropped)
	}
	return res.Holdings, nil
}
