// Package alignment projects labelled monthly series, such as export
// premiums and currency forwards, onto the months of a futures curve.
package alignment

import (
	"sort"

	"ppecli/pkg/contracts/domain"
)

// Series is a labelled monthly series in ascending period order
type Series struct {
	entries []domain.SeriesEntry
}

// NewSeries copies and sorts entries by period. Entries sharing a period keep
// their input order.
func NewSeries(entries []domain.SeriesEntry) Series {
	sorted := make([]domain.SeriesEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Period.Before(sorted[j].Period)
	})
	return Series{entries: sorted}
}

// Len returns the number of entries
func (s Series) Len() int { return len(s.entries) }

// Entries returns a copy of the sorted entries
func (s Series) Entries() []domain.SeriesEntry {
	out := make([]domain.SeriesEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// First returns the earliest entry
func (s Series) First() (domain.SeriesEntry, bool) {
	if len(s.entries) == 0 {
		return domain.SeriesEntry{}, false
	}
	return s.entries[0], true
}

// At returns the first entry at or after target. When the series ends before
// target it falls back to the last entry at or before it. An empty series
// yields a missing value.
func (s Series) At(target domain.YearMonth) domain.Aligned {
	i := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].Period.Before(target)
	})
	if i < len(s.entries) {
		return aligned(s.entries[i])
	}
	if n := len(s.entries); n > 0 {
		return aligned(s.entries[n-1])
	}
	return domain.Aligned{}
}

func aligned(e domain.SeriesEntry) domain.Aligned {
	return domain.Aligned{Value: domain.Some(e.Value), Source: e.Label}
}
