// Package layout derives the half-extents of every concentric cubic shell
// in a shielding assembly from the crystal geometry, the cavity margin
// around it and an ordered list of layer thicknesses.
//
// 🚀 What does it compute?
//
//	innerBoundary = max over axis a of (crystal[a] + margin[a])
//	inner[0]      = innerBoundary
//	inner[i]      = outer[i-1]
//	outer[i]      = inner[i] + thickness[i]
//
// The anisotropic cavity collapses into the smallest cube that still
// contains the crystal plus its margin on every axis; each shell is then a
// hollow cube described by two half-extents only.
//
// ✨ Guarantees:
//   - inner[i] < outer[i] for every shell
//   - shells are contiguous: outer[i] == inner[i+1]
//   - Compute is pure: no globals, safe to call repeatedly
//
// ⚙️ Usage:
//
//	crystal := layout.Box{HalfX: 115, HalfY: 225, HalfZ: 115}
//	margin := layout.Vec3{X: 50, Y: 10, Z: 50}
//	lay, err := layout.Compute(crystal, margin, []layout.Thickness{
//		{Name: "Cu1", Value: 5},
//		{Name: "Cu2", Value: 20},
//	})
//
// All lengths are millimetres (see package units).
package layout
