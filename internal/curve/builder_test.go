package curve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppecli/pkg/contracts/domain"
)

func cornKey(y int, m time.Month) domain.ContractKey {
	return domain.ContractKey{Instrument: domain.Corn, Period: domain.YearMonth{Year: y, Month: m}}
}

func prices(rows []domain.CurveRow) []domain.Amount {
	out := make([]domain.Amount, len(rows))
	for i, r := range rows {
		out[i] = r.Price
	}
	return out
}

func TestBuildForwardCarryAndStaleFallback(t *testing.T) {
	pm := PriceMap{
		cornKey(2026, time.March): 495,
		cornKey(2026, time.May):   502,
	}
	grid := Grid(domain.YearMonth{Year: 2026, Month: time.January}, 6)

	rows := Build(domain.Corn, grid, pm, Units{domain.Corn: DefaultUnit})
	require.Len(t, rows, 6)

	expected := []domain.Amount{
		domain.Some(495), domain.Some(495), domain.Some(495),
		domain.Some(502), domain.Some(502), domain.Some(502),
	}
	assert.Equal(t, expected, prices(rows))

	assert.Equal(t, "01/2026", rows[0].Label)
	assert.Equal(t, "c$/bu", rows[0].Unit)
	assert.Equal(t, domain.Corn, rows[5].Instrument)
}

func TestBuildNeverMissingBeforeFirstNode(t *testing.T) {
	pm := PriceMap{cornKey(2027, time.July): 510}
	grid := Grid(domain.YearMonth{Year: 2025, Month: time.October}, 12)

	for _, row := range Build(domain.Corn, grid, pm, nil) {
		v, ok := row.Price.Get()
		assert.True(t, ok, row.Label)
		assert.Equal(t, 510.0, v, row.Label)
	}
}

func TestBuildExplicitListedPriceWins(t *testing.T) {
	pm := PriceMap{
		cornKey(2026, time.March): 495,
		cornKey(2026, time.May):   502,
		cornKey(2026, time.July):  489,
	}
	grid := []domain.YearMonth{{Year: 2026, Month: time.May}}

	rows := Build(domain.Corn, grid, pm, nil)
	assert.Equal(t, domain.Some(502), rows[0].Price)
}

func TestBuildBorrowedPriceDoesNotBecomeStale(t *testing.T) {
	// April borrows May, but the trailing months repeat March, the last
	// listed month that carried its own price inside the grid.
	pm := PriceMap{
		cornKey(2026, time.March): 495,
		cornKey(2026, time.May):   502,
	}
	grid := []domain.YearMonth{
		{Year: 2026, Month: time.March},
		{Year: 2026, Month: time.April},
		{Year: 2026, Month: time.June},
	}

	rows := Build(domain.Corn, grid, pm, nil)
	assert.Equal(t, []domain.Amount{domain.Some(495), domain.Some(502), domain.Some(495)}, prices(rows))
}

func TestBuildWithoutPricesIsMissing(t *testing.T) {
	pm := PriceMap{cornKey(2026, time.March): 495}
	grid := Grid(domain.YearMonth{Year: 2026, Month: time.January}, 3)

	for _, row := range Build(domain.Soybean, grid, pm, nil) {
		assert.False(t, row.Price.Valid(), row.Label)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	pm := PriceMap{
		cornKey(2025, time.December): 430,
		cornKey(2026, time.March):    445,
		cornKey(2026, time.July):     452,
	}
	grid := Grid(domain.YearMonth{Year: 2025, Month: time.October}, 14)

	first := Build(domain.Corn, grid, pm, nil)
	second := Build(domain.Corn, grid, pm, nil)
	assert.Equal(t, first, second)
}
