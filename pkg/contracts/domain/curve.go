package domain

// CurveRow is one month of a dense monthly futures curve
type CurveRow struct {
	Instrument Instrument `json:"instrument"`
	Period     YearMonth  `json:"period"`
	Label      string     `json:"vencimento"`
	Price      Amount     `json:"price"`
	Unit       string     `json:"unit"`
}

// SeriesEntry is one labelled point of a premium or currency-forward series
type SeriesEntry struct {
	Period YearMonth `json:"period"`
	Value  float64   `json:"value"`
	Label  string    `json:"label"`
}

// Aligned is a series value projected onto a curve month, with the label of
// the entry that supplied it. Source is empty when Value is missing.
type Aligned struct {
	Value  Amount `json:"value"`
	Source string `json:"source,omitempty"`
}
