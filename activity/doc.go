// Package activity turns shell masses into expected decay counts and keeps
// the running total that sizes a simulation run.
//
// For a layer of mass m (kg) with specific activity A (Bq/kg) observed for
// an exposure time T (s):
//
//	yield = m · A · T
//
// The source is treated as non-depleting over T, so the yield is an
// expectation value, not a random draw. It is exactly zero whenever any
// factor is zero, which includes an exposure time that was never set.
//
// Budget owns the exposure time and the total. Accumulate only ever adds
// non-negative yields; SetTotal overrides the total and clamps it to zero
// from below.
package activity
