package material

import "github.com/katalvlaran/lvshield/units"

// Reference material names.
const (
	UltraPureCopper   = "UltraPureCopper"
	ImpureCopper      = "ImpureCopper"
	LowBackgroundLead = "LowBackgroundLead"
	ImpureLead        = "ImpureLead"
)

// Reference returns the built-in materials of the shielding assembly.
// A fresh slice is returned on every call.
func Reference() []Material {
	copper := units.GramPerCm3(8.96)
	lead := units.GramPerCm3(11.34)

	return []Material{
		{Name: UltraPureCopper, Density: copper},
		{
			Name:            ImpureCopper,
			Density:         copper,
			NominalActivity: 1.2,
			Impurities: []Impurity{
				{Isotope: "U238", MassFraction: 1e-10},  // ~0.1 Bq/kg
				{Isotope: "Th232", MassFraction: 1e-10}, // ~0.1 Bq/kg
				{Isotope: "Co60", MassFraction: 1e-9},   // ~1 Bq/kg
			},
		},
		{
			Name:            LowBackgroundLead,
			Density:         lead,
			NominalActivity: 10,
			Impurities:      []Impurity{{Isotope: "Pb210", MassFraction: 1e-10}},
		},
		{
			Name:            ImpureLead,
			Density:         lead,
			NominalActivity: 1000,
			Impurities:      []Impurity{{Isotope: "Pb210", MassFraction: 1e-5}},
		},
	}
}
