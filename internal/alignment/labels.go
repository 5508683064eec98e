package alignment

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"ppecli/pkg/contracts/domain"
)

// Portuguese three-letter month abbreviations, January first
var ptMonths = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// monthByPrefix resolves a lower-case three-letter prefix. English prefixes
// are accepted for sheets exported with an English locale.
var monthByPrefix = func() map[string]time.Month {
	out := map[string]time.Month{
		"feb": time.February,
		"apr": time.April,
		"may": time.May,
		"aug": time.August,
		"sep": time.September,
		"oct": time.October,
		"dec": time.December,
	}
	for i, abbr := range ptMonths {
		out[strings.ToLower(abbr)] = time.Month(i + 1)
	}
	return out
}()

var (
	premiumLabelRe = regexp.MustCompile(`^([A-Za-z]{3,})[/\s\-]?(\d{2}|\d{4})$`)
	forwardLabelRe = regexp.MustCompile(`^([a-z]{3,})\.?\s*[/\s\-]\s*(\d{2}|\d{4})$`)
	numericLabelRe = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// Fold lower-cases s, trims it and strips diacritics ("Prêmio " -> "premio")
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// MonthLabel renders a period as the Portuguese "Mmm/YY" premium label
func MonthLabel(ym domain.YearMonth) string {
	return fmt.Sprintf("%s/%02d", ptMonths[ym.Month-1], ym.Year%100)
}

// NormalizePremiumLabel canonicalises a premium month label, e.g.
// "ago./25" -> "Ago/25". Unrecognised labels are returned unchanged.
func NormalizePremiumLabel(label string) string {
	s := strings.ReplaceAll(Fold(label), ".", "")
	m := premiumLabelRe.FindStringSubmatch(s)
	if m == nil {
		return label
	}
	name := m[1]
	month, ok := monthByPrefix[name[:3]]
	abbr := cases.Title(language.BrazilianPortuguese).String(name[:3])
	if ok {
		abbr = ptMonths[month-1]
	}
	return abbr + "/" + m[2]
}

// ParsePremiumLabel decodes a premium label such as "Set/25" or "ago./2026".
// Two-digit years are taken as 20YY.
func ParsePremiumLabel(label string) (domain.YearMonth, bool) {
	s := strings.ReplaceAll(Fold(label), ".", "")
	m := premiumLabelRe.FindStringSubmatch(s)
	if m == nil {
		return domain.YearMonth{}, false
	}
	return resolve(m[1], m[2])
}

// ParseForwardLabel decodes a currency-forward maturity. It accepts full
// month names ("setembro/2025", "Março/2026"), abbreviations ("Out/25"),
// numeric "MM/YYYY" and ISO dates.
func ParseForwardLabel(label string) (domain.YearMonth, bool) {
	s := Fold(label)
	if m := forwardLabelRe.FindStringSubmatch(s); m != nil {
		return resolve(m[1], m[2])
	}
	if m := numericLabelRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return domain.YearMonth{}, false
		}
		return domain.YearMonth{Year: year, Month: time.Month(month)}, true
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", "2006-01", "01-02-06", "1/2/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.YearMonth{Year: t.Year(), Month: t.Month()}, true
		}
	}
	return domain.YearMonth{}, false
}

func resolve(name, year string) (domain.YearMonth, bool) {
	month, ok := monthByPrefix[name[:3]]
	if !ok {
		return domain.YearMonth{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return domain.YearMonth{}, false
	}
	if len(year) == 2 {
		y += 2000
	}
	return domain.YearMonth{Year: y, Month: month}, true
}

// ParsePremiumValue cleans a premium cell: "+20" -> 20, "-15,5" -> -15.5
func ParsePremiumValue(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "+", ""))
	s = strings.ReplaceAll(s, ",", ".")
	return parseFinite(s)
}

// ParseForwardValue cleans a currency-forward cell. Quotes typed without a
// decimal separator ("540" or "54,0") are scaled down by ten until below 20,
// then rounded to two decimals.
func ParseForwardValue(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, ok := parseFinite(s)
	if !ok {
		return 0, false
	}
	for v >= 20 {
		v /= 10
	}
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded, true
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
