// Package engine owns the state of one shielding assembly and keeps its
// geometry consistent with the latest configuration.
//
// An Engine holds the crystal, the cavity margin, the four shell layers
// (Cu1, Cu2, Pb1, Pb2) and the decay budget. There is no global instance:
// callers create an Engine and pass it to whoever needs it (command front
// end, config loader, launch driver).
//
// Lifecycle:
//
//	            setter touching crystal / cavity / layer geometry
//	  ┌────────┐ ─────────────────────────────────────────► ┌───────┐
//	  │Current │                                            │ Stale │ (initial)
//	  └────────┘ ◄───────────────────────────────────────── └───────┘
//	               RequestGeometry: full rebuild succeeded
//
// Setters never rebuild; they only store the value and mark the geometry
// Stale. The next RequestGeometry rebuilds every shell, since each shell is
// placed relative to all shells inside it. A rebuild is committed as a
// single pointer swap under the write lock, so readers see either the old
// or the new geometry, never a partial one.
//
// Invalid values are recovered locally: thickness, margin and crystal
// extents fall back to their named defaults, negative activities and decay
// totals clamp to zero, a negative exposure time is ignored. Each recovery
// logs a warning with the parameter name, the rejected value and what was
// used instead.
package engine
