// Package lvshield derives the geometry and the radioactivity budget of a
// concentric shielding assembly around a low-background crystal detector.
//
// 🚀 What is lvshield?
//
//	A small, thread-safe engine that answers three questions for a
//	Cu/Pb onion shield:
//		• Layout: where does every shell start and end?
//		• Mass: how heavy is each shell, given its material?
//		• Budget: how many decays does trace contamination produce over
//		  an exposure time, and how many primary events must a run simulate?
//
// ✨ Parameters are forgiving
//
//   - Invalid thicknesses and extents fall back to the reference values with
//     a warning, so a bad macro line never leaves the assembly half-built.
//   - Geometry is rebuilt lazily: edits mark it stale and the next query
//     rebuilds exactly once.
//   - A run with an empty decay budget is refused, never launched with zero
//     events.
//
// Packages:
//
//	units/:       length, time and density conversions (mm, s, kg/m³)
//	layout/:      crystal shapes, cavity margin and nested shell extents
//	mass/:        shell volume and mass from a density lookup
//	material/:    material catalog (built-in reference or SQLite)
//	activity/:    decay yield and the per-layer decay ledger
//	engine/:      parameters, lazy geometry lifecycle, budgets and run launch
//	command/:     macro command table and script dispatcher
//	config/:      YAML configuration, environment overrides, zap logging
//	metrics/:     Prometheus recorder for rebuilds, fallbacks and launches
//	cmd/lvshield: the command-line front end
//
// Reference assembly (half-extents, mm):
//
//	crystal 115 × 225 × 115  +  cavity 50 / 10 / 50  ⇒  inner boundary 235
//
//	235 ─ Cu1 ─ 240 ─ Cu2 ─ 260 ─ Pb1 ─ 310 ─ Pb2 ─ 460
//
//	go install github.com/katalvlaran/lvshield/cmd/lvshield@latest
package lvshield
