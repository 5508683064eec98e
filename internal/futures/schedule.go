package futures

import (
	"time"

	"ppecli/pkg/contracts/domain"
)

// listedMonths holds the delivery months of each root, strictly increasing
var listedMonths = map[domain.Instrument][]time.Month{
	domain.Corn:    {time.March, time.May, time.July, time.September, time.December},
	domain.Soybean: {time.January, time.March, time.May, time.July, time.August, time.September, time.November},
}

// ListedMonths returns a copy of the instrument's delivery months
func ListedMonths(inst domain.Instrument) []time.Month {
	listed := listedMonths[inst]
	out := make([]time.Month, len(listed))
	copy(out, listed)
	return out
}

// IsListed reports whether the exchange lists a contract for inst in month m
func IsListed(inst domain.Instrument, m time.Month) bool {
	for _, lm := range listedMonths[inst] {
		if lm == m {
			return true
		}
	}
	return false
}

// Anchor returns the first listed month at or after from.Month in from.Year,
// or the earliest listed month of the following year when none remain.
func Anchor(inst domain.Instrument, from domain.YearMonth) domain.YearMonth {
	listed := listedMonths[inst]
	if len(listed) == 0 {
		return from
	}
	for _, m := range listed {
		if m >= from.Month {
			return domain.YearMonth{Year: from.Year, Month: m}
		}
	}
	return domain.YearMonth{Year: from.Year + 1, Month: listed[0]}
}

// NextTwo returns the two nearest upcoming listed months starting at the
// anchor. These back the generic front-month and second-month quotes.
func NextTwo(inst domain.Instrument, from domain.YearMonth) [2]domain.YearMonth {
	first := Anchor(inst, from)
	listed := listedMonths[inst]
	if len(listed) == 0 {
		return [2]domain.YearMonth{first, first}
	}

	pos := cyclePosition(listed, first.Month)
	second := domain.YearMonth{Year: first.Year, Month: listed[(pos+1)%len(listed)]}
	if pos+1 >= len(listed) {
		second.Year++
	}
	return [2]domain.YearMonth{first, second}
}

// ExplicitTickers generates n sequential contract tickers starting at the
// anchor month, cycling the listing calendar and incrementing the year each
// time the cycle wraps.
func ExplicitTickers(inst domain.Instrument, from domain.YearMonth, n int) []string {
	keys := Schedule(inst, from, n)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, Ticker(k))
	}
	return out
}

// Schedule is ExplicitTickers without the rendering step
func Schedule(inst domain.Instrument, from domain.YearMonth, n int) []domain.ContractKey {
	listed := listedMonths[inst]
	if len(listed) == 0 || n <= 0 {
		return nil
	}

	start := Anchor(inst, from)
	year, pos := start.Year, cyclePosition(listed, start.Month)

	out := make([]domain.ContractKey, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ContractKey{
			Instrument: inst,
			Period:     domain.YearMonth{Year: year, Month: listed[pos]},
		})
		pos++
		if pos >= len(listed) {
			pos = 0
			year++
		}
	}
	return out
}

// cyclePosition finds m in the listing cycle. A month that is not listed
// starts at the first listed month after it, or wraps to the head of the list.
func cyclePosition(listed []time.Month, m time.Month) int {
	for i, lm := range listed {
		if lm >= m {
			return i
		}
	}
	return 0
}
