// Package mass turns shell half-extents and material densities into shell
// masses.
//
// A shell with inner half-extent a and outer half-extent b (mm) has volume
//
//	V = (2b)³ − (2a)³ = 8·(b³ − a³)   [mm³]
//
// and mass m = ρ · V · 1e-9 with ρ in kg/m³, giving kilograms. The factor of
// 8 converts half-extents to full edges; the 1e-9 converts mm³ to m³. Both
// steps live in exactly one place (ShellVolume and ShellMass) and are pinned
// by tests against a hand-computed reference shell.
//
// Model binds a computed layout to a layer→material assignment and a
// DensityLookup (the external material database). Unknown layers surface as
// ErrLayerNotFound, unresolvable materials as ErrMaterialNotFound; neither is
// ever turned into a zero mass.
package mass
