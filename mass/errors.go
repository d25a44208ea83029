// SPDX-License-Identifier: MIT
// Package: lvshield/mass
//
// errors.go: sentinel errors for the mass package.

package mass

import (
	"errors"

	"github.com/katalvlaran/lvshield/layout"
)

// ErrLayerNotFound indicates a mass query for a layer the model does not
// know. It is the same value as layout.ErrLayerNotFound so that one
// errors.Is check covers both packages.
var ErrLayerNotFound = layout.ErrLayerNotFound

// ErrMaterialNotFound indicates that a layer has no material assigned or the
// density lookup could not resolve it.
var ErrMaterialNotFound = errors.New("mass: material not found")

// ErrInvalidShell indicates inner/outer half-extents that do not describe a
// hollow shell (inner < 0 or outer <= inner).
var ErrInvalidShell = errors.New("mass: invalid shell extents")

// ErrInvalidDensity indicates a density that is not strictly positive.
var ErrInvalidDensity = errors.New("mass: density must be positive")
