// Package importer reads holdings from a two-sheet spreadsheet workbook.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/epeers/portfolio-tracker/internal/engine"
	"github.com/epeers/portfolio-tracker/internal/models"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// sheetLayout names the sheet and columns holding one category
type sheetLayout struct {
	category   models.Category
	sheet      string
	nameColumn string
}

var layouts = []sheetLayout{
	{category: models.CategoryETF, sheet: "ETF", nameColumn: "ticker"},
	{category: models.CategorySCPI, sheet: "SCPI", nameColumn: "nom"},
}

const amountColumn = "montant"

// Result holds the holdings read from a workbook
type Result struct {
	Holdings *models.UserHoldings
	// Skipped counts data rows dropped for a missing or non-numeric value
	Skipped int
}

// Texts renders the imported holdings as editor text
func (r *Result) Texts() models.HoldingsTexts {
	return models.HoldingsTexts{
		ETF:  engine.Format(r.Holdings.ETF),
		SCPI: engine.Format(r.Holdings.SCPI),
	}
}

// ReadWorkbook parses an .xlsx stream. Sheet "ETF" has columns Ticker and
// Montant; sheet "SCPI" has Nom and Montant. Header matching ignores case.
// A missing sheet yields an empty set; a sheet missing a column is an error.
func ReadWorkbook(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	res := &Result{Holdings: models.NewUserHoldings()}
	for _, layout := range layouts {
		set, skipped, err := readSheet(f, layout)
		if err != nil {
			return nil, err
		}
		res.Holdings.SetCategory(layout.category, set)
		res.Skipped += skipped
	}
	return res, nil
}

func readSheet(f *excelize.File, layout sheetLayout) (*models.HoldingsSet, int, error) {
	set := models.NewHoldingsSet()

	idx, err := f.GetSheetIndex(layout.sheet)
	if err != nil || idx < 0 {
		log.Debugf("workbook has no %s sheet", layout.sheet)
		return set, 0, nil
	}

	rows, err := f.GetRows(layout.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet %s: %w", layout.sheet, err)
	}
	if len(rows) == 0 {
		return set, 0, nil
	}

	colIdx := make(map[string]int)
	for i, col := range rows[0] {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{layout.nameColumn, amountColumn} {
		if _, ok := colIdx[col]; !ok {
			return nil, 0, fmt.Errorf("sheet %s: missing required column: %s", layout.sheet, col)
		}
	}

	cell := func(record []string, col string) string {
		i := colIdx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	skipped := 0
	for _, record := range rows[1:] {
		name := cell(record, layout.nameColumn)
		rawAmount := cell(record, amountColumn)
		if name == "" && rawAmount == "" {
			continue
		}
		if name == "" || rawAmount == "" {
			skipped++
			continue
		}
		amount, err := engine.ParseAmount(rawAmount)
		if err != nil {
			skipped++
			continue
		}
		set.Set(name, amount)
	}
	return set, skipped, nil
}
