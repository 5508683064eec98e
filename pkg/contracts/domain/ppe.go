package domain

import "time"

// PPERow is a curve month extended with premium, NDF forward and the
// export-parity columns derived from them.
type PPERow struct {
	CurveRow

	Premium Aligned `json:"premium"`
	Forward Aligned `json:"ndf"`

	FOBCentsPerBushel  Amount `json:"fob_cents_bu"`    // c$/bu
	FOBUSDPerTon       Amount `json:"fob_usd_ton"`     // US$/t
	FOBLocalPerTon     Amount `json:"fob_brl_ton"`     // R$/t
	PostHandling       Amount `json:"sobre_rodas"`     // R$/t
	EXW                Amount `json:"exw"`             // R$/t
	OriginPricePerSack Amount `json:"ppe_origem_saca"` // R$/sc
	Basis              Amount `json:"basis_cents_bu"`  // c$/bu

	CFRUSDPerTon Amount `json:"cfr_usd_ton"`
	CFRBasis     Amount `json:"cfr_basis_cents_bu"`
}

// Report is the result of one PPE run
type Report struct {
	RunID   string                  `json:"run_id"`
	AsOf    time.Time               `json:"as_of"`
	Grid    []YearMonth             `json:"grid"`
	Tickers []string                `json:"tickers"`
	Missing []string                `json:"missing_tickers"`
	Tables  map[Instrument][]PPERow `json:"tables"`
}

// SensitivityTable crosses curve prices (rows) with NDF levels (columns)
type SensitivityTable struct {
	Instrument Instrument       `json:"instrument"`
	Premium    float64          `json:"premium"`
	Forwards   []float64        `json:"ndf"`
	Rows       []SensitivityRow `json:"rows"`
}

// SensitivityRow holds origin prices per sack for one curve month
type SensitivityRow struct {
	Label            string   `json:"vencimento"`
	Chicago          Amount   `json:"chicago"`
	EquivalentBushel Amount   `json:"eq_bushel"`
	Values           []Amount `json:"values"`
}
