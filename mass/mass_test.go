package mass_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/mass"
	"github.com/katalvlaran/lvshield/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const copperDensity = 8960.0 // kg/m³

// TestShellVolume_Reference pins the factor of 8: the Cu1 shell of the
// reference assembly (235 → 240 mm) has 8·(240³−235³) = 6,769,000 mm³.
func TestShellVolume_Reference(t *testing.T) {
	v, err := mass.ShellVolume(235, 240)
	require.NoError(t, err)
	assert.Equal(t, 6_769_000.0, v)
}

// TestShellMass_Reference pins the mm³ → m³ conversion: the same shell in
// copper weighs ≈60.65 kg. A missing or doubled conversion would be off by
// orders of magnitude.
func TestShellMass_Reference(t *testing.T) {
	m, err := mass.ShellMass(235, 240, units.GramPerCm3(8.96))
	require.NoError(t, err)
	assert.InDelta(t, 60.65, m, 0.01)
	assert.InDelta(t, 60.65024, m, 1e-6)
}

func TestShellMass_MonotonicInThickness(t *testing.T) {
	prev := 0.0
	for thick := 0.5; thick <= 200; thick += 0.5 {
		m, err := mass.ShellMass(235, 235+thick, copperDensity)
		require.NoError(t, err)
		assert.Greater(t, m, prev, "thickness %g", thick)
		prev = m
	}
}

func TestShellMass_LinearInDensity(t *testing.T) {
	base, err := mass.ShellMass(100, 130, 1000)
	require.NoError(t, err)
	for _, k := range []float64{0.5, 2, 3.7, 11.34} {
		m, err := mass.ShellMass(100, 130, 1000*k)
		require.NoError(t, err)
		assert.InDelta(t, base*k, m, base*k*1e-12)
	}
}

func TestShellVolume_Invalid(t *testing.T) {
	for _, tc := range []struct{ inner, outer float64 }{
		{-1, 5},
		{5, 5},
		{6, 5},
	} {
		_, err := mass.ShellVolume(tc.inner, tc.outer)
		assert.ErrorIs(t, err, mass.ErrInvalidShell, "inner=%g outer=%g", tc.inner, tc.outer)
	}
	_, err := mass.ShellMass(1, 2, 0)
	assert.ErrorIs(t, err, mass.ErrInvalidDensity)
}

func referenceModel(t *testing.T, lookup mass.DensityLookup) *mass.Model {
	t.Helper()
	lay, err := layout.Compute(
		layout.Box{HalfX: 115, HalfY: 225, HalfZ: 115},
		layout.Vec3{X: 50, Y: 10, Z: 50},
		[]layout.Thickness{{Name: "Cu1", Value: 5}, {Name: "Pb1", Value: 50}},
	)
	require.NoError(t, err)

	return mass.NewModel(lay, map[string]string{"Cu1": "Copper", "Pb1": "Lead"}, lookup)
}

var densities = mass.DensityFunc(func(name string) (float64, error) {
	switch name {
	case "Copper":
		return 8960, nil
	case "Lead":
		return 11340, nil
	}
	return 0, errors.New("no such material")
})

func TestModel_Mass(t *testing.T) {
	m := referenceModel(t, densities)

	lm, err := m.Mass("Cu1")
	require.NoError(t, err)
	assert.Equal(t, "Copper", lm.Material)
	assert.Equal(t, 6_769_000.0, lm.Volume)
	assert.InDelta(t, 60.65, lm.Mass, 0.01)

	all, err := m.Masses()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Pb1", all[1].Layer)
	assert.Greater(t, all[1].Mass, all[0].Mass)
}

func TestModel_LayerNotFound(t *testing.T) {
	m := referenceModel(t, densities)
	_, err := m.Mass("Cu9")
	assert.ErrorIs(t, err, mass.ErrLayerNotFound)
	assert.ErrorIs(t, err, layout.ErrLayerNotFound)
}

func TestModel_MaterialNotFound(t *testing.T) {
	t.Run("lookup fails", func(t *testing.T) {
		m := referenceModel(t, mass.DensityFunc(func(string) (float64, error) {
			return 0, errors.New("db offline")
		}))
		lm, err := m.Mass("Cu1")
		assert.ErrorIs(t, err, mass.ErrMaterialNotFound)
		assert.Zero(t, lm.Mass)
		assert.Contains(t, err.Error(), "db offline")
	})
	t.Run("no lookup", func(t *testing.T) {
		m := referenceModel(t, nil)
		_, err := m.Mass("Cu1")
		assert.ErrorIs(t, err, mass.ErrMaterialNotFound)
	})
	t.Run("unassigned layer", func(t *testing.T) {
		lay, err := layout.Compute(layout.Box{HalfX: 1, HalfY: 1, HalfZ: 1}, layout.Vec3{},
			[]layout.Thickness{{Name: "Cu1", Value: 1}})
		require.NoError(t, err)
		m := mass.NewModel(lay, nil, densities)
		_, err = m.Masses()
		assert.ErrorIs(t, err, mass.ErrMaterialNotFound)
	})
}
