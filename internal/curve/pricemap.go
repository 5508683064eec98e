package curve

import (
	"sort"

	"ppecli/internal/futures"
	"ppecli/pkg/contracts/domain"
)

// DefaultUnit is the quoting unit of CBOT grain futures
const DefaultUnit = "c$/bu"

// PriceMap holds the known settlement price of each contract
type PriceMap map[domain.ContractKey]float64

// Units maps an instrument to the unit its prices are quoted in
type Units map[domain.Instrument]string

// Unit returns the unit of inst, falling back to DefaultUnit
func (u Units) Unit(inst domain.Instrument) string {
	if s, ok := u[inst]; ok && s != "" {
		return s
	}
	return DefaultUnit
}

type node struct {
	period domain.YearMonth
	price  float64
}

// nodes returns the priced months of inst in ascending order
func (p PriceMap) nodes(inst domain.Instrument) []node {
	var out []node
	for k, v := range p {
		if k.Instrument == inst {
			out = append(out, node{period: k.Period, price: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].period.Before(out[j].period)
	})
	return out
}

// Option configures BuildPriceMap
type Option func(*buildOptions)

type buildOptions struct {
	frontMonths bool
	asOf        domain.YearMonth
}

// WithFrontMonths maps continuous front-month quotes (ZC1!, ZC2!) onto the
// two nearest listed contracts as of asOf. An explicit contract quote for the
// same month always wins.
func WithFrontMonths(asOf domain.YearMonth) Option {
	return func(o *buildOptions) {
		o.frontMonths = true
		o.asOf = asOf
	}
}

// BuildPriceMap turns raw ticker quotes into a price map. Tickers that do not
// parse and quotes that are missing are skipped.
func BuildPriceMap(quotes map[string]domain.Amount, opts ...Option) (PriceMap, Units) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	prices := make(PriceMap, len(quotes))
	var generics []string
	for ticker, q := range quotes {
		v, ok := q.Get()
		if !ok {
			continue
		}
		key, ok := futures.ParseTicker(ticker)
		if !ok {
			if o.frontMonths {
				generics = append(generics, ticker)
			}
			continue
		}
		prices[key] = v
	}

	// sorted so ZC1! and ZC2! resolve in a stable order
	sort.Strings(generics)
	for _, ticker := range generics {
		key, ok := futures.ResolveGeneric(ticker, o.asOf)
		if !ok {
			continue
		}
		if _, exists := prices[key]; exists {
			continue
		}
		v, _ := quotes[ticker].Get()
		prices[key] = v
	}

	units := make(Units, len(domain.Instruments))
	for _, inst := range domain.Instruments {
		units[inst] = DefaultUnit
	}
	return prices, units
}
