package mass

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvshield/layout"
)

// DensityLookup resolves a material name to its density in kg/m³.
// Implementations report unknown names with an error.
type DensityLookup interface {
	Density(material string) (float64, error)
}

// DensityFunc adapts a plain function to DensityLookup.
type DensityFunc func(material string) (float64, error)

// Density implements DensityLookup.
func (f DensityFunc) Density(material string) (float64, error) { return f(material) }

// LayerMass is the mass of one named shell.
type LayerMass struct {
	Layer    string
	Material string
	Density  float64 // kg/m³
	Volume   float64 // mm³
	Mass     float64 // kg
}

// Model computes masses for the shells of a fixed layout.
type Model struct {
	layout    layout.Layout
	materials map[string]string
	lookup    DensityLookup
}

// NewModel binds lay to a layer→material assignment and a density source.
// The assignment map is copied.
func NewModel(lay layout.Layout, materials map[string]string, lookup DensityLookup) *Model {
	m := make(map[string]string, len(materials))
	for k, v := range materials {
		m[k] = v
	}

	return &Model{layout: lay, materials: m, lookup: lookup}
}

// Mass returns the mass of the named layer.
//
// Errors:
//   - ErrLayerNotFound: name is not a shell of the layout.
//   - ErrMaterialNotFound: no material assigned, no lookup, or lookup failed.
func (m *Model) Mass(name string) (LayerMass, error) {
	shell, err := m.layout.Shell(name)
	if err != nil {
		return LayerMass{}, err
	}
	material, ok := m.materials[name]
	if !ok || material == "" {
		return LayerMass{}, fmt.Errorf("layer %s has no material: %w", name, ErrMaterialNotFound)
	}
	density, err := m.density(material)
	if err != nil {
		return LayerMass{}, fmt.Errorf("layer %s: %w", name, err)
	}
	vol, err := ShellVolume(shell.Inner, shell.Outer)
	if err != nil {
		return LayerMass{}, fmt.Errorf("layer %s: %w", name, err)
	}
	kg, err := ShellMass(shell.Inner, shell.Outer, density)
	if err != nil {
		return LayerMass{}, fmt.Errorf("layer %s: %w", name, err)
	}

	return LayerMass{Layer: name, Material: material, Density: density, Volume: vol, Mass: kg}, nil
}

// Masses returns the mass of every shell, innermost first. The first failure
// aborts the whole computation.
func (m *Model) Masses() ([]LayerMass, error) {
	out := make([]LayerMass, 0, len(m.layout.Shells))
	for _, s := range m.layout.Shells {
		lm, err := m.Mass(s.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, lm)
	}

	return out, nil
}

func (m *Model) density(material string) (float64, error) {
	if m.lookup == nil {
		return 0, fmt.Errorf("%q: no material database: %w", material, ErrMaterialNotFound)
	}
	d, err := m.lookup.Density(material)
	if err != nil {
		if errors.Is(err, ErrMaterialNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%q: %w: %w", material, ErrMaterialNotFound, err)
	}

	return d, nil
}
