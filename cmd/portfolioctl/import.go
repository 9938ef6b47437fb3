package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/epeers/portfolio-tracker/internal/importer"
	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	out string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert a holdings workbook to text files" }
func (*importCmd) Usage() string {
	return `portfolioctl import [-out <dir>] WORKBOOK

  Reads sheets ETF (Ticker, Montant) and SCPI (Nom, Montant) and writes
  etf.txt and scpi.txt with one "name,amount" line per holding.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", ".", "output directory")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one workbook is required")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening workbook: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	res, err := importer.ReadWorkbook(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading workbook: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeTexts(c.out, res.Texts()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("imported %d ETF and %d SCPI holdings (%d rows skipped) into %s\n",
		res.Holdings.ETF.Len(), res.Holdings.SCPI.Len(), res.Skipped, c.out)
	return subcommands.ExitSuccess
}

func writeTexts(dir string, texts models.HoldingsTexts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := map[string]string{"etf.txt": texts.ETF, "scpi.txt": texts.SCPI}
	for name, content := range files {
		if content != "" {
			content += "\n"
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
