package domain

import "strings"

// Instrument identifies a CBOT grain futures root symbol
type Instrument string

const (
	// Corn is the CBOT corn futures root (ZC)
	Corn Instrument = "ZC"
	// Soybean is the CBOT soybean futures root (ZS)
	Soybean Instrument = "ZS"
)

// Instruments lists every supported instrument in display order
var Instruments = []Instrument{Soybean, Corn}

// Name returns the Portuguese display name used on the PPE tables
func (i Instrument) Name() string {
	switch i {
	case Corn:
		return "Milho"
	case Soybean:
		return "Soja"
	default:
		return string(i)
	}
}

// Valid reports whether the instrument is one of the supported roots
func (i Instrument) Valid() bool {
	return i == Corn || i == Soybean
}

// LookupInstrument resolves a root symbol or a display name, case-insensitively.
// "zc", "milho" and "corn" all resolve to Corn.
func LookupInstrument(s string) (Instrument, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zc", "milho", "corn":
		return Corn, true
	case "zs", "soja", "soybean", "soybeans":
		return Soybean, true
	default:
		return "", false
	}
}

// ContractKey identifies one delivery obligation: an instrument in a given month
type ContractKey struct {
	Instrument Instrument `json:"instrument"`
	Period     YearMonth  `json:"period"`
}
