package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Tab is one sheet of a premium workbook: a header row followed by data rows
type Tab struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook saves tabs as an .xlsx file in a temporary directory and
// returns its path
func WriteWorkbook(t *testing.T, tabs ...Tab) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, tab := range tabs {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", tab.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(tab.Name); err != nil {
			t.Fatalf("create sheet %s: %v", tab.Name, err)
		}
		for r, row := range tab.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(tab.Name, cell, &row); err != nil {
				t.Fatalf("write row %d of %s: %v", r+1, tab.Name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "premios.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// PremiumTabs returns the default soja, milho and ndf tabs with a single
// row each, so that every month up to the given label aligns to it
func PremiumTabs(label string, soybean, corn float64, forwardLabel string, forward float64) []Tab {
	return []Tab{
		{Name: "soja", Rows: [][]interface{}{{"Mes", "Premio"}, {label, soybean}}},
		{Name: "milho", Rows: [][]interface{}{{"Mes", "Premio"}, {label, corn}}},
		{Name: "ndf", Rows: [][]interface{}{{"Vencimento", "NDF"}, {forwardLabel, forward}}},
	}
}

// WriteQuoteFile writes prices as a ticker: price YAML document and returns
// its path. A nil price is written as an explicit missing quote.
func WriteQuoteFile(t *testing.T, prices map[string]*float64) string {
	t.Helper()

	tickers := make([]string, 0, len(prices))
	for ticker := range prices {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	var b strings.Builder
	for _, ticker := range tickers {
		if p := prices[ticker]; p != nil {
			fmt.Fprintf(&b, "%s: %g\n", ticker, *p)
		} else {
			fmt.Fprintf(&b, "%s: ~\n", ticker)
		}
	}

	path := filepath.Join(t.TempDir(), "quotes.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write quote file: %v", err)
	}
	return path
}

// Price returns a pointer to v for quote maps
func Price(v float64) *float64 {
	return &v
}
