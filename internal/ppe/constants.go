// Package ppe computes the export-parity price (Preço de Paridade de
// Exportação) of a futures curve: FOB in cents per bushel, dollars and reais
// per ton, the price on wheels after port handling, EXW after domestic
// freight, the origin price per 60 kg sack and the basis against CBOT.
package ppe

import "ppecli/pkg/contracts/domain"

// Default run constants
const (
	DefaultHandlingCost    = 40.0     // R$/t, port elevation (fobbings)
	DefaultDomesticFreight = 342.0    // R$/t, interior to port
	DefaultOceanFreight    = 38.04    // US$/t, Santos to Asia
	SackFactor             = 0.06     // t per 60 kg sack
	PoundsPerKilo          = 2.204    // lb per kg
	SoybeanFactor          = 0.367437 // US$/t per c$/bu
	CornFactor             = 0.393687 // US$/t per c$/bu
)

// Constants parameterise one PPE run
type Constants struct {
	HandlingCost      float64
	DomesticFreight   float64
	OceanFreight      float64
	SackFactor        float64
	PoundsPerKilo     float64
	ConversionFactors map[domain.Instrument]float64
}

// DefaultConstants returns the constants used when nothing is configured
func DefaultConstants() Constants {
	return Constants{
		HandlingCost:    DefaultHandlingCost,
		DomesticFreight: DefaultDomesticFreight,
		OceanFreight:    DefaultOceanFreight,
		SackFactor:      SackFactor,
		PoundsPerKilo:   PoundsPerKilo,
		ConversionFactors: map[domain.Instrument]float64{
			domain.Soybean: SoybeanFactor,
			domain.Corn:    CornFactor,
		},
	}
}

// Factor returns the c$/bu to US$/t conversion factor of inst
func (c Constants) Factor(inst domain.Instrument) (float64, bool) {
	f, ok := c.ConversionFactors[inst]
	return f, ok && f != 0
}
