package alignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ppecli/pkg/contracts/domain"
)

func TestNormalizePremiumLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ago./25", "Ago/25"},
		{"Ago/25", "Ago/25"},
		{" SET/25 ", "Set/25"},
		{"dez-25", "Dez/25"},
		{"fev 26", "Fev/26"},
		{"janeiro/2026", "Jan/2026"},
		{"Sep/25", "Set/25"},
		{"n/a", "n/a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePremiumLabel(tt.input))
		})
	}
}

func TestParsePremiumLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.YearMonth
		ok       bool
	}{
		{"Set/25", domain.YearMonth{Year: 2025, Month: time.September}, true},
		{"ago./25", domain.YearMonth{Year: 2025, Month: time.August}, true},
		{"Jan/2026", domain.YearMonth{Year: 2026, Month: time.January}, true},
		{"Mai/26", domain.YearMonth{Year: 2026, Month: time.May}, true},
		{"Xyz/26", domain.YearMonth{}, false},
		{"Set", domain.YearMonth{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePremiumLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseForwardLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.YearMonth
		ok       bool
	}{
		{"setembro/2025", domain.YearMonth{Year: 2025, Month: time.September}, true},
		{"Março/2026", domain.YearMonth{Year: 2026, Month: time.March}, true},
		{"Out/25", domain.YearMonth{Year: 2025, Month: time.October}, true},
		{"dezembro / 2025", domain.YearMonth{Year: 2025, Month: time.December}, true},
		{"11/2025", domain.YearMonth{Year: 2025, Month: time.November}, true},
		{"2026-02-01", domain.YearMonth{Year: 2026, Month: time.February}, true},
		{"13/2025", domain.YearMonth{}, false},
		{"vencimento", domain.YearMonth{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseForwardLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Set/25", MonthLabel(domain.YearMonth{Year: 2025, Month: time.September}))
	assert.Equal(t, "Jan/06", MonthLabel(domain.YearMonth{Year: 2106, Month: time.January}))
}

func TestParsePremiumValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"+20", 20, true},
		{"-15,5", -15.5, true},
		{" 110 ", 110, true},
		{"", 0, false},
		{"n/d", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePremiumValue(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseForwardValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"5,40", 5.4, true},
		{"54,0", 5.4, true},
		{"5 432", 5.43, true},
		{"5.4567", 5.46, true},
		{"19.99", 19.99, true},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseForwardValue(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "premio", Fold(" Prêmio "))
	assert.Equal(t, "ultimo", Fold("Último"))
	assert.Equal(t, "mes", Fold("Mês"))
}
