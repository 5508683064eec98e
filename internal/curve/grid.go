package curve

import "ppecli/pkg/contracts/domain"

// DefaultHorizon is the number of calendar months a run covers
const DefaultHorizon = 10

// Grid returns horizon contiguous months starting at start
func Grid(start domain.YearMonth, horizon int) []domain.YearMonth {
	if horizon <= 0 {
		return []domain.YearMonth{}
	}
	out := make([]domain.YearMonth, horizon)
	for i := range out {
		out[i] = start.AddMonths(i)
	}
	return out
}
