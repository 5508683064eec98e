package domain

import (
	"fmt"
	"time"
)

// YearMonth is a calendar month without a day component
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the calendar month of t in t's own location
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// AddMonths moves the period n months forward (or backward when n is negative)
func (ym YearMonth) AddMonths(n int) YearMonth {
	total := ym.Year*12 + int(ym.Month) - 1 + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return YearMonth{Year: y, Month: time.Month(m + 1)}
}

// Compare returns -1, 0 or +1 ordering by year first, then month
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year < other.Year:
		return -1
	case ym.Year > other.Year:
		return 1
	case ym.Month < other.Month:
		return -1
	case ym.Month > other.Month:
		return 1
	default:
		return 0
	}
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// After reports whether ym is strictly later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}

// Label renders the period as MM/YYYY, the "vencimento" column format
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%02d/%d", int(ym.Month), ym.Year)
}

// String implements fmt.Stringer
func (ym YearMonth) String() string {
	return ym.Label()
}
