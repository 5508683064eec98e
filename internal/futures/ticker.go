package futures

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ppecli/pkg/contracts/domain"
)

// ErrUnknownInstrument is returned when a root symbol is not supported
var ErrUnknownInstrument = errors.New("unknown instrument")

// Standard futures month-code alphabet
var monthCodes = map[time.Month]byte{
	time.January:   'F',
	time.February:  'G',
	time.March:     'H',
	time.April:     'J',
	time.May:       'K',
	time.June:      'M',
	time.July:      'N',
	time.August:    'Q',
	time.September: 'U',
	time.October:   'V',
	time.November:  'X',
	time.December:  'Z',
}

var codeMonths = func() map[byte]time.Month {
	out := make(map[byte]time.Month, len(monthCodes))
	for m, c := range monthCodes {
		out[c] = m
	}
	return out
}()

var (
	explicitRe = regexp.MustCompile(`^(ZC|ZS)([FGHJKMNQUVXZ])(\d{4})$`)
	genericRe  = regexp.MustCompile(`^(ZC|ZS)([12])!?$`)
)

// MonthCode returns the single-letter code of a calendar month
func MonthCode(m time.Month) (byte, bool) {
	c, ok := monthCodes[m]
	return c, ok
}

// ParseInstrument resolves a root symbol or display name
func ParseInstrument(s string) (domain.Instrument, error) {
	inst, ok := domain.LookupInstrument(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownInstrument, s)
	}
	return inst, nil
}

// Ticker renders a contract as <ROOT><MONTH-CODE><YYYY>, e.g. ZCH2026
func Ticker(k domain.ContractKey) string {
	code, ok := MonthCode(k.Period.Month)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s%c%04d", k.Instrument, code, k.Period.Year)
}

// normalizeTicker trims whitespace, strips surrounding parentheses and upper-cases
func normalizeTicker(s string) string {
	return strings.ToUpper(strings.Trim(strings.TrimSpace(s), "()"))
}

// ParseTicker decodes an explicit contract ticker such as "ZCH2026" or
// "(zsf2026)". Any deviation from the pattern is reported as no match.
func ParseTicker(s string) (domain.ContractKey, bool) {
	m := explicitRe.FindStringSubmatch(normalizeTicker(s))
	if m == nil {
		return domain.ContractKey{}, false
	}
	month, ok := codeMonths[m[2][0]]
	if !ok {
		return domain.ContractKey{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return domain.ContractKey{}, false
	}
	return domain.ContractKey{
		Instrument: domain.Instrument(m[1]),
		Period:     domain.YearMonth{Year: year, Month: month},
	}, true
}

// ParseGeneric decodes a continuous front-month symbol such as "ZC1!" or
// "(ZS2)" into its root and slot (1 = front month, 2 = second month).
func ParseGeneric(s string) (domain.Instrument, int, bool) {
	m := genericRe.FindStringSubmatch(normalizeTicker(s))
	if m == nil {
		return "", 0, false
	}
	return domain.Instrument(m[1]), int(m[2][0] - '0'), true
}

// ResolveGeneric maps a continuous front-month symbol onto the contract it
// refers to as of the given month.
func ResolveGeneric(s string, asOf domain.YearMonth) (domain.ContractKey, bool) {
	inst, slot, ok := ParseGeneric(s)
	if !ok {
		return domain.ContractKey{}, false
	}
	next := NextTwo(inst, asOf)
	return domain.ContractKey{Instrument: inst, Period: next[slot-1]}, true
}

// GenericTickers returns the front and second month symbols of inst
func GenericTickers(inst domain.Instrument) []string {
	return []string{string(inst) + "1!", string(inst) + "2!"}
}
