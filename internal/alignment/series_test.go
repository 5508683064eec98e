package alignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ppecli/pkg/contracts/domain"
)

func entry(y int, m time.Month, v float64, label string) domain.SeriesEntry {
	return domain.SeriesEntry{Period: domain.YearMonth{Year: y, Month: m}, Value: v, Label: label}
}

func TestSeriesAt(t *testing.T) {
	s := NewSeries([]domain.SeriesEntry{
		entry(2026, time.January, 22, "Jan/26"),
		entry(2025, time.September, 20, "Set/25"),
	})

	tests := []struct {
		name     string
		target   domain.YearMonth
		expected domain.Aligned
	}{
		{"nearest future wins", domain.YearMonth{Year: 2025, Month: time.November}, domain.Aligned{Value: domain.Some(22), Source: "Jan/26"}},
		{"exact match", domain.YearMonth{Year: 2025, Month: time.September}, domain.Aligned{Value: domain.Some(20), Source: "Set/25"}},
		{"before first entry", domain.YearMonth{Year: 2025, Month: time.March}, domain.Aligned{Value: domain.Some(20), Source: "Set/25"}},
		{"past last entry falls back", domain.YearMonth{Year: 2026, Month: time.June}, domain.Aligned{Value: domain.Some(22), Source: "Jan/26"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.At(tt.target))
		})
	}
}

func TestSeriesAtEmpty(t *testing.T) {
	got := NewSeries(nil).At(domain.YearMonth{Year: 2026, Month: time.January})
	assert.False(t, got.Value.Valid())
	assert.Empty(t, got.Source)
}

func TestNewSeriesSortsWithoutMutatingInput(t *testing.T) {
	in := []domain.SeriesEntry{
		entry(2026, time.March, 3, "Mar/26"),
		entry(2025, time.December, 1, "Dez/25"),
		entry(2026, time.January, 2, "Jan/26"),
	}
	s := NewSeries(in)

	assert.Equal(t, "Mar/26", in[0].Label)
	labels := []string{}
	for _, e := range s.Entries() {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"Dez/25", "Jan/26", "Mar/26"}, labels)

	first, ok := s.First()
	assert.True(t, ok)
	assert.Equal(t, 1.0, first.Value)
	assert.Equal(t, 3, s.Len())
}
