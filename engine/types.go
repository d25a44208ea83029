package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvshield/activity"
	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/material"
)

// Layer names of the reference assembly, innermost first.
const (
	LayerCu1 = "Cu1"
	LayerCu2 = "Cu2"
	LayerPb1 = "Pb1"
	LayerPb2 = "Pb2"
)

// Named defaults, in millimetres. Invalid setter input falls back to these.
const (
	DefaultCu1Thickness = 5.0
	DefaultCu2Thickness = 20.0
	DefaultPb1Thickness = 50.0
	DefaultPb2Thickness = 150.0

	DefaultCavityHalfX = 50.0
	DefaultCavityHalfY = 10.0
	DefaultCavityHalfZ = 50.0

	DefaultCrystalHalfX = 115.0
	DefaultCrystalHalfY = 225.0
	DefaultCrystalHalfZ = 115.0
)

// DefaultCrystal returns the reference HPGe crystal.
func DefaultCrystal() layout.Box {
	return layout.Box{HalfX: DefaultCrystalHalfX, HalfY: DefaultCrystalHalfY, HalfZ: DefaultCrystalHalfZ}
}

// DefaultCavity returns the reference cavity margin.
func DefaultCavity() layout.Vec3 {
	return layout.Vec3{X: DefaultCavityHalfX, Y: DefaultCavityHalfY, Z: DefaultCavityHalfZ}
}

// DefaultLayers returns the four reference layers with zero activity.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: LayerCu1, Thickness: DefaultCu1Thickness, Material: material.UltraPureCopper},
		{Name: LayerCu2, Thickness: DefaultCu2Thickness, Material: material.ImpureCopper},
		{Name: LayerPb1, Thickness: DefaultPb1Thickness, Material: material.LowBackgroundLead},
		{Name: LayerPb2, Thickness: DefaultPb2Thickness, Material: material.ImpureLead},
	}
}

// State is the geometry lifecycle state.
type State int

const (
	// Stale means the stored parameters changed since the last rebuild.
	Stale State = iota
	// Current means the committed geometry matches the stored parameters.
	Current
)

func (s State) String() string {
	if s == Current {
		return "current"
	}

	return "stale"
}

// Axis selects one cavity margin component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}

	return "?"
}

// Layer is a snapshot of one shell layer's parameters.
type Layer struct {
	Name      string
	Thickness float64 // mm
	Material  string
	Activity  float64 // Bq/kg
}

// Placement is one shell handed to the geometry kernel.
type Placement struct {
	Name     string
	Material string
	Density  float64 // kg/m³
	Inner    float64 // mm
	Outer    float64 // mm
}

// Geometry is a committed rebuild. It is immutable once returned.
type Geometry struct {
	Generation uint64
	Crystal    layout.Crystal
	Cavity     layout.Vec3
	Layout     layout.Layout
	Placements []Placement
}

// VolumeBuilder is the geometry kernel collaborator. Build receives every
// rebuilt geometry and replaces whatever volumes it constructed before.
//
// Build runs while the engine holds its write lock. It must use only the
// Geometry it is given and must not call back into the Engine, which would
// deadlock.
type VolumeBuilder interface {
	Build(ctx context.Context, g *Geometry) error
}

// VolumeBuilderFunc adapts a function to VolumeBuilder.
type VolumeBuilderFunc func(ctx context.Context, g *Geometry) error

// Build implements VolumeBuilder.
func (f VolumeBuilderFunc) Build(ctx context.Context, g *Geometry) error { return f(ctx, g) }

type nopBuilder struct{}

func (nopBuilder) Build(context.Context, *Geometry) error { return nil }

// Runner is the run-launch collaborator.
type Runner interface {
	BeamOn(ctx context.Context, events int64) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, events int64) error

// BeamOn implements Runner.
func (f RunnerFunc) BeamOn(ctx context.Context, events int64) error { return f(ctx, events) }

// LaunchDecision records an accepted launch.
type LaunchDecision struct {
	RunID  uuid.UUID
	Events int64
	Total  float64
}

// Snapshot is a read-only copy of the engine parameters and budget.
type Snapshot struct {
	State         State
	Crystal       layout.Crystal
	Cavity        layout.Vec3
	Layers        []Layer
	Exposure      float64 // s
	Total         float64
	Contributions []activity.Contribution
}
