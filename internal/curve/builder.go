package curve

import (
	"ppecli/internal/futures"
	"ppecli/pkg/contracts/domain"
)

// Build resolves a price for every grid month of inst.
//
// A listed month with its own price uses it and becomes the last confirmed
// price. Any other month borrows the price of the nearest priced month at or
// after it. Months beyond the last priced contract repeat the last confirmed
// price; borrowed prices never become the last confirmed price.
func Build(inst domain.Instrument, grid []domain.YearMonth, prices PriceMap, units Units) []domain.CurveRow {
	nodes := prices.nodes(inst)
	unit := units.Unit(inst)

	rows := make([]domain.CurveRow, 0, len(grid))
	last := domain.Missing
	for _, ym := range grid {
		var price domain.Amount
		if v, ok := prices[domain.ContractKey{Instrument: inst, Period: ym}]; ok && futures.IsListed(inst, ym.Month) {
			price = domain.Some(v)
			last = price
		} else if n, ok := forward(nodes, ym); ok {
			price = domain.Some(n.price)
		} else {
			price = last
		}

		rows = append(rows, domain.CurveRow{
			Instrument: inst,
			Period:     ym,
			Label:      ym.Label(),
			Price:      price,
			Unit:       unit,
		})
	}
	return rows
}

// forward returns the first node at or after target
func forward(nodes []node, target domain.YearMonth) (node, bool) {
	for _, n := range nodes {
		if !n.period.Before(target) {
			return n, true
		}
	}
	return node{}, false
}
