package activity

import (
	"fmt"
	"math"
)

// Yield returns mass·activity·exposure, the expected number of decays.
func Yield(mass, activity, exposure float64) (float64, error) {
	for _, f := range [...]struct {
		name string
		v    float64
	}{{"mass", mass}, {"activity", activity}, {"exposure", exposure}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return 0, fmt.Errorf("%s=%g: %w", f.name, f.v, ErrNotFinite)
		}
		if f.v < 0 {
			return 0, fmt.Errorf("%s=%g: %w", f.name, f.v, ErrNegativeInput)
		}
	}

	y := mass * activity * exposure
	if math.IsInf(y, 0) {
		return 0, fmt.Errorf("yield %g·%g·%g overflows: %w", mass, activity, exposure, ErrNotFinite)
	}

	return y, nil
}

// Contribution is one accumulated layer yield.
type Contribution struct {
	Layer    string
	Mass     float64 // kg
	Activity float64 // Bq/kg
	Exposure float64 // s
	Yield    float64 // decays
}

// Budget holds the exposure time and the running decay total.
// The zero value is ready to use: no exposure, zero total.
// Budget is not safe for concurrent mutation; the owner serialises writers.
type Budget struct {
	exposure      float64
	total         float64
	contributions []Contribution
}

// Exposure returns the configured exposure time in seconds.
func (b *Budget) Exposure() float64 { return b.exposure }

// SetExposure sets the exposure time. Negative or non-finite values are
// rejected and leave the previous value in place.
func (b *Budget) SetExposure(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("exposure=%g: %w", seconds, ErrNotFinite)
	}
	if seconds < 0 {
		return fmt.Errorf("exposure=%g: %w", seconds, ErrNegativeInput)
	}
	b.exposure = seconds

	return nil
}

// AddLayerYield computes the yield of one layer with the current exposure
// time and accumulates it. The total and the breakdown are untouched on
// error.
func (b *Budget) AddLayerYield(layer string, activity, mass float64) (float64, error) {
	y, err := Yield(mass, activity, b.exposure)
	if err != nil {
		return 0, fmt.Errorf("layer %s: %w", layer, err)
	}
	if !b.Accumulate(y) {
		return 0, fmt.Errorf("layer %s: yield %g: %w", layer, y, ErrNotFinite)
	}
	b.contributions = append(b.contributions, Contribution{
		Layer:    layer,
		Mass:     mass,
		Activity: activity,
		Exposure: b.exposure,
		Yield:    y,
	})

	return y, nil
}

// Accumulate adds y to the total. Negative, NaN or infinite yields, and
// yields that would overflow the total, are ignored and reported with false.
func (b *Budget) Accumulate(y float64) bool {
	if !(y >= 0) || math.IsInf(b.total+y, 0) {
		return false
	}
	b.total += y

	return true
}

// SetTotal overrides the total with max(x, 0) and drops the per-layer
// breakdown, which no longer explains the total. NaN counts as zero.
func (b *Budget) SetTotal(x float64) float64 {
	if !(x > 0) {
		x = 0
	}
	b.total = x
	b.contributions = nil

	return x
}

// Total returns the running decay total.
func (b *Budget) Total() float64 { return b.total }

// Contributions returns a copy of the layer yields accumulated since the
// last SetTotal or Reset.
func (b *Budget) Contributions() []Contribution {
	return append([]Contribution(nil), b.contributions...)
}

// Reset zeroes the total and the breakdown, keeping the exposure time.
func (b *Budget) Reset() {
	b.total = 0
	b.contributions = nil
}
