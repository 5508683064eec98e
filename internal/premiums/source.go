// Package premiums loads export premium and NDF currency-forward tables from
// a spreadsheet, either a Google Sheets document or a local xlsx workbook.
//
// Each instrument has its own premium tab with "Mês" and "Prêmio" columns.
// The forward tab has a "Vencimento" column and an "NDF" or "Último" column.
// Header matching ignores case, surrounding spaces and accents.
package premiums

import (
	"context"
	"errors"

	"ppecli/internal/alignment"
	"ppecli/pkg/contracts/domain"
)

var (
	// ErrMissingColumn is returned when a tab lacks a required column
	ErrMissingColumn = errors.New("missing column")
	// ErrTabNotFound is returned when a configured tab does not exist
	ErrTabNotFound = errors.New("tab not found")
)

// Tabs names the spreadsheet tabs to read
type Tabs struct {
	Soybean string
	Corn    string
	Forward string
}

// DefaultTabs returns the tab names of the reference spreadsheet
func DefaultTabs() Tabs {
	return Tabs{Soybean: "soja", Corn: "milho", Forward: "ndf"}
}

func (t Tabs) premiumTab(inst domain.Instrument) string {
	if inst == domain.Corn {
		return t.Corn
	}
	return t.Soybean
}

// Tables holds the premium series of each instrument and the NDF series
type Tables struct {
	Premiums map[domain.Instrument]alignment.Series
	Forward  alignment.Series
}

// Premium returns the premium series of inst, empty when unknown
func (t *Tables) Premium(inst domain.Instrument) alignment.Series {
	if t == nil {
		return alignment.Series{}
	}
	return t.Premiums[inst]
}

// Source loads premium and forward tables
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}
