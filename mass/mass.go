package mass

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvshield/units"
)

// ShellVolume returns the volume in mm³ of a hollow cube with the given
// inner and outer half-extents: 8·(outer³ − inner³).
func ShellVolume(inner, outer float64) (float64, error) {
	if math.IsNaN(inner) || math.IsNaN(outer) || inner < 0 || !(outer > inner) || math.IsInf(outer, 0) {
		return 0, fmt.Errorf("inner=%g outer=%g: %w", inner, outer, ErrInvalidShell)
	}

	return 8 * (outer*outer*outer - inner*inner*inner), nil
}

// ShellMass returns the mass in kg of a hollow cube shell made of a material
// with density in kg/m³.
func ShellMass(inner, outer, density float64) (float64, error) {
	if !(density > 0) || math.IsInf(density, 0) {
		return 0, fmt.Errorf("density=%g: %w", density, ErrInvalidDensity)
	}
	v, err := ShellVolume(inner, outer)
	if err != nil {
		return 0, err
	}

	return density * units.VolumeMM3ToM3(v), nil
}
