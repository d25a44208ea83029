package layout

import "fmt"

// validateInputs checks the three Compute inputs in order: crystal, margin,
// thicknesses. The first violation wins.
func validateInputs(crystal Crystal, margin Vec3, thicknesses []Thickness) error {
	if crystal == nil {
		return fmt.Errorf("crystal is nil: %w", ErrNonPositiveExtent)
	}
	if err := validateCrystal(crystal.HalfExtents()); err != nil {
		return err
	}
	if err := validateMargin(margin); err != nil {
		return err
	}

	return validateThicknesses(thicknesses)
}

func validateCrystal(e Vec3) error {
	for _, a := range axes(e) {
		if !finite(a.v) {
			return fmt.Errorf("crystal %s=%g: %w", a.name, a.v, ErrNotFinite)
		}
		if a.v <= 0 {
			return fmt.Errorf("crystal %s=%g: %w", a.name, a.v, ErrNonPositiveExtent)
		}
	}

	return nil
}

func validateMargin(m Vec3) error {
	for _, a := range axes(m) {
		if !finite(a.v) {
			return fmt.Errorf("margin %s=%g: %w", a.name, a.v, ErrNotFinite)
		}
		if a.v < 0 {
			return fmt.Errorf("margin %s=%g: %w", a.name, a.v, ErrNegativeMargin)
		}
	}

	return nil
}

func validateThicknesses(ts []Thickness) error {
	if len(ts) == 0 {
		return ErrNoLayers
	}
	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%q: %w", t.Name, ErrDuplicateLayer)
		}
		seen[t.Name] = struct{}{}
		if !finite(t.Value) {
			return fmt.Errorf("%s thickness=%g: %w", t.Name, t.Value, ErrNotFinite)
		}
		if t.Value <= 0 {
			return fmt.Errorf("%s thickness=%g: %w", t.Name, t.Value, ErrNonPositiveThickness)
		}
	}

	return nil
}

type axisValue struct {
	name string
	v    float64
}

func axes(v Vec3) [3]axisValue {
	return [3]axisValue{{"x", v.X}, {"y", v.Y}, {"z", v.Z}}
}
