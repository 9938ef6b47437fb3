package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/epeers/portfolio-tracker/internal/marketdata"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/google/subcommands"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	window   string
	provider string
	parallel int
	timeout  time.Duration
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "print the total return of each ticker" }
func (*performanceCmd) Usage() string {
	return `portfolioctl performance [-window 1y] [-provider yahoo] TICKER...

  Fetches daily closes for each ticker and prints its return over the window
  and its latest close. Tickers without data are listed as warnings. The
  alphavantage provider reads its key from AV_KEY.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "window", string(models.DefaultWindow), "one of 1mo, 3mo, 6mo, 1y, 2y, 5y")
	f.StringVar(&c.provider, "provider", "yahoo", "market data provider: yahoo or alphavantage")
	f.IntVar(&c.parallel, "parallel", 4, "maximum concurrent fetches")
	f.DurationVar(&c.timeout, "timeout", 15*time.Second, "per-ticker fetch timeout")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one ticker is required")
		return subcommands.ExitUsageError
	}
	window, err := models.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing window: %v\n", err)
		return subcommands.ExitUsageError
	}

	provider, err := marketdata.New(c.provider, os.Getenv("AV_KEY"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating provider: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, wc := services.NewWarningContext(ctx)
	svc := services.NewPerformanceService(provider, c.parallel, c.timeout)
	results := svc.Evaluate(ctx, f.Args(), window)

	printMarkdown(performanceMarkdown(window, results, wc.GetWarnings()))
	for _, r := range results {
		if r.OK() {
			return subcommands.ExitSuccess
		}
	}
	return subcommands.ExitFailure
}
