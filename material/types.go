package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvshield/mass"
)

// ErrMaterialNotFound is returned for names absent from the database.
var ErrMaterialNotFound = mass.ErrMaterialNotFound

// ErrInvalidMaterial is returned by Validate and by catalog writes.
var ErrInvalidMaterial = errors.New("material: invalid record")

// Impurity is a trace contaminant with its mass fraction (0..1).
type Impurity struct {
	Isotope      string  `json:"isotope" yaml:"isotope"`
	MassFraction float64 `json:"mass_fraction" yaml:"mass_fraction"`
}

// Material is one entry of the database.
type Material struct {
	Name    string  `json:"name" yaml:"name"`
	Density float64 `json:"density_kg_m3" yaml:"density_kg_m3"`
	// NominalActivity is the approximate total specific activity of the
	// impurities in Bq/kg. Informational; layers carry their own activity.
	NominalActivity float64    `json:"nominal_activity_bq_kg" yaml:"nominal_activity_bq_kg"`
	Impurities      []Impurity `json:"impurities,omitempty" yaml:"impurities,omitempty"`
}

// Validate reports whether m can be stored: a name, a finite positive
// density, a finite non-negative nominal activity and impurity fractions
// in [0,1].
func (m Material) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidMaterial)
	}
	if !(m.Density > 0) || math.IsInf(m.Density, 0) {
		return fmt.Errorf("%s: density %g must be finite and positive: %w", m.Name, m.Density, ErrInvalidMaterial)
	}
	if !(m.NominalActivity >= 0) || math.IsInf(m.NominalActivity, 0) {
		return fmt.Errorf("%s: nominal activity %g must be finite and non-negative: %w", m.Name, m.NominalActivity, ErrInvalidMaterial)
	}
	for _, imp := range m.Impurities {
		if !(imp.MassFraction >= 0 && imp.MassFraction <= 1) {
			return fmt.Errorf("%s: impurity %s fraction %g outside [0,1]: %w", m.Name, imp.Isotope, imp.MassFraction, ErrInvalidMaterial)
		}
	}

	return nil
}
