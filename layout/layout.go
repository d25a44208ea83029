package layout

import (
	"fmt"
	"math"
)

// InnerBoundary returns the half-extent of the smallest cube that contains
// the crystal plus its cavity margin on every axis.
func InnerBoundary(crystal Crystal, margin Vec3) float64 {
	return crystal.HalfExtents().Add(margin).Max()
}

// Compute builds the shell layout for the given crystal, cavity margin and
// ordered layer thicknesses.
//
// Algorithm:
//  1. Validate every input (finite, positive extents and thicknesses,
//     non-negative margin, unique names).
//  2. b = InnerBoundary(crystal, margin).
//  3. For each layer i: inner = b, outer = inner + t[i], b = outer.
//
// Complexity: O(N) time and space for N layers.
func Compute(crystal Crystal, margin Vec3, thicknesses []Thickness) (Layout, error) {
	if err := validateInputs(crystal, margin, thicknesses); err != nil {
		return Layout{}, err
	}

	var (
		boundary = InnerBoundary(crystal, margin)
		shells   = make([]Shell, len(thicknesses))
		inner    = boundary
	)
	for i, t := range thicknesses {
		outer := inner + t.Value
		if !(outer > inner) {
			// t is positive but lost below the resolution of inner.
			return Layout{}, fmt.Errorf("layer %q: thickness %g vanishes at %g mm: %w",
				t.Name, t.Value, inner, ErrNonPositiveThickness)
		}
		if math.IsInf(outer, 0) {
			return Layout{}, fmt.Errorf("layer %q: outer half-extent overflows: %w", t.Name, ErrNotFinite)
		}
		shells[i] = Shell{
			Name:  t.Name,
			Index: i,
			Inner: inner,
			Outer: outer,
		}
		inner = outer // next shell starts where this one ends
	}

	return Layout{InnerBoundary: boundary, Shells: shells}, nil
}

// Shell returns the shell with the given name.
func (l Layout) Shell(name string) (Shell, error) {
	for _, s := range l.Shells {
		if s.Name == name {
			return s, nil
		}
	}

	return Shell{}, fmt.Errorf("%q: %w", name, ErrLayerNotFound)
}

// Outer returns the outer half-extent of the outermost shell, or the inner
// boundary for an empty layout.
func (l Layout) Outer() float64 {
	if len(l.Shells) == 0 {
		return l.InnerBoundary
	}

	return l.Shells[len(l.Shells)-1].Outer
}

// Names returns shell names innermost first.
func (l Layout) Names() []string {
	out := make([]string, len(l.Shells))
	for i, s := range l.Shells {
		out[i] = s.Name
	}

	return out
}

// Validate re-checks strict nesting and contiguity of a layout.
func (l Layout) Validate() error {
	prev := l.InnerBoundary
	for i, s := range l.Shells {
		if s.Inner != prev || !(s.Inner < s.Outer) || s.Index != i {
			return fmt.Errorf("shell %d (%s): inner=%g outer=%g expected inner=%g: %w",
				i, s.Name, s.Inner, s.Outer, prev, ErrBrokenNesting)
		}
		prev = s.Outer
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
