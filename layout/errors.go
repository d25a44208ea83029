// SPDX-License-Identifier: MIT
// Package: lvshield/layout
//
// errors.go: sentinel errors for the layout package.
//
// Callers branch with errors.Is; context is attached with %w at the
// return site, never baked into the sentinel text.

package layout

import "errors"

// ErrNoLayers indicates that Compute received an empty thickness list.
var ErrNoLayers = errors.New("layout: at least one layer is required")

// ErrNonPositiveExtent indicates a crystal half-extent that is zero or negative.
var ErrNonPositiveExtent = errors.New("layout: crystal half-extent must be positive")

// ErrNegativeMargin indicates a cavity margin below zero on some axis.
var ErrNegativeMargin = errors.New("layout: cavity margin must be non-negative")

// ErrNonPositiveThickness indicates a layer thickness that is zero, negative
// or too small to change the half-extent it is added to.
var ErrNonPositiveThickness = errors.New("layout: layer thickness must be positive")

// ErrDuplicateLayer indicates two layers sharing the same name.
var ErrDuplicateLayer = errors.New("layout: duplicate layer name")

// ErrNotFinite indicates a NaN or infinite input value.
var ErrNotFinite = errors.New("layout: value must be finite")

// ErrLayerNotFound indicates a lookup for a shell name absent from the layout.
var ErrLayerNotFound = errors.New("layout: layer not found")

// ErrBrokenNesting indicates a layout whose shells are not strictly nested
// and contiguous. Compute never produces one; Validate reports it for layouts
// assembled by hand.
var ErrBrokenNesting = errors.New("layout: shells are not nested and contiguous")
