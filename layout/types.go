package layout

import "math"

// Vec3 holds one value per spatial axis, in millimetres.
type Vec3 struct {
	X, Y, Z float64
}

// Max returns the largest component.
func (v Vec3) Max() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Add returns the component-wise sum v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Shape names a crystal representation.
type Shape string

const (
	// ShapeBox is the rectangular crystal used by the reference assembly.
	ShapeBox Shape = "box"
	// ShapeCylinder is the alternate cylindrical crystal, axis along Z.
	ShapeCylinder Shape = "cylinder"
)

// Crystal is the innermost sensitive volume. Only its bounding half-extents
// matter to the shell calculation.
type Crystal interface {
	Shape() Shape
	HalfExtents() Vec3
}

// Box is a rectangular crystal given by three half-extents.
type Box struct {
	HalfX, HalfY, HalfZ float64
}

// Shape implements Crystal.
func (Box) Shape() Shape { return ShapeBox }

// HalfExtents implements Crystal.
func (b Box) HalfExtents() Vec3 {
	return Vec3{X: b.HalfX, Y: b.HalfY, Z: b.HalfZ}
}

// Cylinder is a cylindrical crystal whose axis is aligned with Z.
// Its bounding box is {Radius, Radius, HalfHeight}.
type Cylinder struct {
	Radius     float64
	HalfHeight float64
}

// Shape implements Crystal.
func (Cylinder) Shape() Shape { return ShapeCylinder }

// HalfExtents implements Crystal.
func (c Cylinder) HalfExtents() Vec3 {
	return Vec3{X: c.Radius, Y: c.Radius, Z: c.HalfHeight}
}

// Thickness pairs a layer name with its radial thickness.
type Thickness struct {
	Name  string
	Value float64
}

// Shell is one hollow cube of the assembly.
type Shell struct {
	Name  string  // layer name, e.g. "Cu1"
	Index int     // position from the inside, starting at 0
	Inner float64 // inner half-extent
	Outer float64 // outer half-extent
}

// Thickness returns Outer-Inner.
func (s Shell) Thickness() float64 {
	return s.Outer - s.Inner
}

// Layout is the ordered result of Compute, innermost shell first.
type Layout struct {
	// InnerBoundary is the half-extent of the cubic cavity that the first
	// shell wraps.
	InnerBoundary float64
	Shells        []Shell
}
