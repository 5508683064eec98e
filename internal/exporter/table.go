package exporter

import "ppecli/pkg/contracts/domain"

type column struct {
	header string
	value  func(r domain.PPERow) string
}

var ppeColumns = []column{
	{"instrument", func(r domain.PPERow) string { return string(r.Instrument) }},
	{"vencimento", func(r domain.PPERow) string { return r.Label }},
	{"price", func(r domain.PPERow) string { return formatAmount(r.Price) }},
	{"unit", func(r domain.PPERow) string { return r.Unit }},
	{"premium", func(r domain.PPERow) string { return formatAmount(r.Premium.Value) }},
	{"premium_ref", func(r domain.PPERow) string { return r.Premium.Source }},
	{"ndf", func(r domain.PPERow) string { return formatAmount(r.Forward.Value) }},
	{"ndf_ref", func(r domain.PPERow) string { return r.Forward.Source }},
	{"fob_cents_bu", func(r domain.PPERow) string { return formatAmount(r.FOBCentsPerBushel) }},
	{"fob_usd_ton", func(r domain.PPERow) string { return formatAmount(r.FOBUSDPerTon) }},
	{"fob_brl_ton", func(r domain.PPERow) string { return formatAmount(r.FOBLocalPerTon) }},
	{"sobre_rodas", func(r domain.PPERow) string { return formatAmount(r.PostHandling) }},
	{"exw", func(r domain.PPERow) string { return formatAmount(r.EXW) }},
	{"ppe_origem_saca", func(r domain.PPERow) string { return formatAmount(r.OriginPricePerSack) }},
	{"basis_cents_bu", func(r domain.PPERow) string { return formatAmount(r.Basis) }},
	{"cfr_usd_ton", func(r domain.PPERow) string { return formatAmount(r.CFRUSDPerTon) }},
	{"cfr_basis_cents_bu", func(r domain.PPERow) string { return formatAmount(r.CFRBasis) }},
}

// PPEHeaders returns the column headers of a PPE table
func PPEHeaders() []string {
	out := make([]string, len(ppeColumns))
	for i, c := range ppeColumns {
		out[i] = c.header
	}
	return out
}

// PPERecords flattens rows into string records in PPEHeaders order
func PPERecords(rows []domain.PPERow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := make([]string, len(ppeColumns))
		for i, c := range ppeColumns {
			rec[i] = c.value(r)
		}
		out = append(out, rec)
	}
	return out
}

// SensitivityHeaders returns the headers of a sensitivity table; one column
// per NDF level
func SensitivityHeaders(t domain.SensitivityTable) []string {
	out := []string{"vencimento", "chicago", "eq_bushel"}
	for _, fx := range t.Forwards {
		out = append(out, formatLevel(fx))
	}
	return out
}

// SensitivityRecords flattens a sensitivity table into string records
func SensitivityRecords(t domain.SensitivityTable) [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := []string{r.Label, formatAmount(r.Chicago), formatAmount(r.EquivalentBushel)}
		for _, v := range r.Values {
			rec = append(rec, formatAmount(v))
		}
		out = append(out, rec)
	}
	return out
}
