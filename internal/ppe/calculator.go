package ppe

import (
	"errors"
	"fmt"

	"ppecli/internal/alignment"
	"ppecli/internal/curve"
	"ppecli/pkg/contracts/domain"
)

// ErrNoConversionFactor is returned when an instrument has no configured factor
var ErrNoConversionFactor = errors.New("no conversion factor")

// Compute derives every PPE column of one curve month. A missing price,
// premium or forward leaves the columns that depend on it missing.
func Compute(row domain.CurveRow, premium, forward domain.Aligned, c Constants) domain.PPERow {
	out := domain.PPERow{
		CurveRow: row,
		Premium:  premium,
		Forward:  forward,
	}

	factor := domain.Missing
	if f, ok := c.Factor(row.Instrument); ok {
		factor = domain.Some(f)
	}
	ndf := forward.Value

	out.FOBCentsPerBushel = row.Price.Add(premium.Value)
	out.FOBUSDPerTon = out.FOBCentsPerBushel.Mul(factor)
	out.FOBLocalPerTon = out.FOBUSDPerTon.Mul(ndf)
	out.PostHandling = out.FOBLocalPerTon.Offset(-c.HandlingCost)
	out.EXW = out.PostHandling.Offset(-c.DomesticFreight)
	out.OriginPricePerSack = out.EXW.Scale(c.SackFactor)
	out.Basis = out.OriginPricePerSack.
		Div(ndf).
		Div(domain.Some(c.PoundsPerKilo)).
		Sub(row.Price.Scale(0.01)).
		Scale(100)

	if c.OceanFreight != 0 {
		out.CFRUSDPerTon = out.FOBUSDPerTon.Offset(c.OceanFreight)
		out.CFRBasis = out.CFRUSDPerTon.Div(factor).Sub(row.Price)
	}
	return out
}

// BuildTable builds the curve of inst over grid and aligns the premium and
// forward series onto every month before computing the PPE columns.
func BuildTable(
	inst domain.Instrument,
	grid []domain.YearMonth,
	prices curve.PriceMap,
	units curve.Units,
	premium alignment.Series,
	forward alignment.Series,
	c Constants,
) []domain.PPERow {
	rows := curve.Build(inst, grid, prices, units)
	out := make([]domain.PPERow, 0, len(rows))
	for _, row := range rows {
		out = append(out, Compute(row, premium.At(row.Period), forward.At(row.Period), c))
	}
	return out
}

// Round returns a copy of rows with every monetary column rounded for display
func Round(rows []domain.PPERow, places int32) []domain.PPERow {
	out := make([]domain.PPERow, len(rows))
	for i, r := range rows {
		r.Price = r.Price.Round(places)
		r.Premium.Value = r.Premium.Value.Round(places)
		r.Forward.Value = r.Forward.Value.Round(places)
		r.FOBCentsPerBushel = r.FOBCentsPerBushel.Round(places)
		r.FOBUSDPerTon = r.FOBUSDPerTon.Round(places)
		r.FOBLocalPerTon = r.FOBLocalPerTon.Round(places)
		r.PostHandling = r.PostHandling.Round(places)
		r.EXW = r.EXW.Round(places)
		r.OriginPricePerSack = r.OriginPricePerSack.Round(places)
		r.Basis = r.Basis.Round(places)
		r.CFRUSDPerTon = r.CFRUSDPerTon.Round(places)
		r.CFRBasis = r.CFRBasis.Round(places)
		out[i] = r
	}
	return out
}

// Sensitivity steps and width of the NDF axis
const (
	sensitivityColumns = 9
	sensitivityStep    = 0.05
	sensitivitySpan    = 0.20
)

// Sensitivity crosses the curve prices of rows with nine NDF levels centred
// on forward, holding premium fixed. Each cell is the origin price per sack.
func Sensitivity(rows []domain.PPERow, premium, forward float64, c Constants, inst domain.Instrument) (domain.SensitivityTable, error) {
	factor, ok := c.Factor(inst)
	if !ok {
		return domain.SensitivityTable{}, fmt.Errorf("sensitivity for %s: %w", inst, ErrNoConversionFactor)
	}

	levels := make([]float64, sensitivityColumns)
	for i := range levels {
		levels[i] = domain.Some(forward - sensitivitySpan + float64(i)*sensitivityStep).Round(4).Or(0)
	}

	table := domain.SensitivityTable{
		Instrument: inst,
		Premium:    premium,
		Forwards:   levels,
		Rows:       make([]domain.SensitivityRow, 0, len(rows)),
	}
	costs := c.DomesticFreight + c.HandlingCost
	for _, r := range rows {
		eq := r.Price.Offset(premium)
		values := make([]domain.Amount, len(levels))
		for i, fx := range levels {
			values[i] = eq.Scale(factor).Scale(fx).Offset(-costs).Scale(c.SackFactor)
		}
		table.Rows = append(table.Rows, domain.SensitivityRow{
			Label:            r.Label,
			Chicago:          r.Price,
			EquivalentBushel: eq,
			Values:           values,
		})
	}
	return table, nil
}
