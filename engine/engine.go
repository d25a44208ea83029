package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/lvshield/activity"
	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/mass"
	"github.com/katalvlaran/lvshield/material"
	"github.com/katalvlaran/lvshield/metrics"
	"go.uber.org/zap"
)

type layerState struct {
	Layer
	defaultThickness float64
	defaultMaterial  string
}

// Engine is the shell geometry and activity budget engine.
// All methods are safe for concurrent use; mutation is serialised by an
// internal lock.
type Engine struct {
	mu sync.RWMutex

	log       *zap.Logger
	rec       metrics.Recorder
	materials mass.DensityLookup
	builder   VolumeBuilder

	initCrystal layout.Crystal
	crystal     layout.Crystal
	cavity      layout.Vec3
	layers      []*layerState
	index       map[string]int
	budget      activity.Budget

	state      State
	geom       *Geometry
	generation uint64
}

// New returns an engine holding the reference assembly in the Stale state.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:       zap.NewNop(),
		rec:       metrics.Nop{},
		materials: material.NewReferenceCatalog(),
		builder:   nopBuilder{},
		crystal:   DefaultCrystal(),
		cavity:    DefaultCavity(),
		index:     make(map[string]int, 4),
		state:     Stale,
	}
	for i, l := range DefaultLayers() {
		e.layers = append(e.layers, &layerState{
			Layer:            l,
			defaultThickness: l.Thickness,
			defaultMaterial:  l.Material,
		})
		e.index[l.Name] = i
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.initCrystal != nil {
		e.SetCrystal(e.initCrystal)
	}

	return e
}

// State returns the geometry lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.state
}

// Geometry returns the last committed geometry, or nil when none is
// committed. It never triggers a rebuild.
func (e *Engine) Geometry() *Geometry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.geom
}

// RequestGeometry returns the geometry for the current parameters.
// When Current it returns the cached geometry unchanged. When Stale it
// discards the previous geometry, resolves every layer material, recomputes
// every shell, hands the result to the VolumeBuilder and commits it.
//
// A failed rebuild (unknown material, invalid layout, builder error) leaves
// the engine Stale with no committed geometry; it can be retried after the
// cause is fixed. The VolumeBuilder is called under the engine lock.
func (e *Engine) RequestGeometry(ctx context.Context) (*Geometry, error) {
	e.mu.RLock()
	if e.state == Current && e.geom != nil {
		g := e.geom
		e.mu.RUnlock()
		return g, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Current && e.geom != nil {
		return e.geom, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.geom = nil
	g, err := e.rebuildLocked(ctx)
	if err != nil {
		e.rec.RebuildFailed()
		e.log.Error("geometry rebuild failed", zap.Error(err))
		return nil, err
	}
	e.geom = g
	e.state = Current
	e.rec.GeometryRebuilt()
	e.log.Debug("geometry rebuilt",
		zap.Uint64("generation", g.Generation),
		zap.Float64("inner_boundary_mm", g.Layout.InnerBoundary),
		zap.Float64("outer_mm", g.Layout.Outer()))

	return g, nil
}

// rebuildLocked computes a complete new geometry from the stored
// parameters. The caller holds the write lock.
func (e *Engine) rebuildLocked(ctx context.Context) (*Geometry, error) {
	thicknesses := make([]layout.Thickness, len(e.layers))
	densities := make([]float64, len(e.layers))
	for i, l := range e.layers {
		thicknesses[i] = layout.Thickness{Name: l.Name, Value: l.Thickness}
		d, err := e.materials.Density(l.Material)
		if err != nil {
			return nil, fmt.Errorf("layer %s material %q: %w", l.Name, l.Material, wrapMaterial(err))
		}
		densities[i] = d
	}

	lay, err := layout.Compute(e.crystal, e.cavity, thicknesses)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}

	g := &Geometry{
		Generation: e.generation + 1,
		Crystal:    e.crystal,
		Cavity:     e.cavity,
		Layout:     lay,
		Placements: make([]Placement, len(lay.Shells)),
	}
	for i, s := range lay.Shells {
		g.Placements[i] = Placement{
			Name:     s.Name,
			Material: e.layers[i].Material,
			Density:  densities[i],
			Inner:    s.Inner,
			Outer:    s.Outer,
		}
	}
	if err := e.builder.Build(ctx, g); err != nil {
		return nil, fmt.Errorf("build volumes: %w", err)
	}
	e.generation = g.Generation

	return g, nil
}

// markStaleLocked records a geometry-affecting change.
func (e *Engine) markStaleLocked() {
	e.state = Stale
}

func (e *Engine) layerLocked(name string) (*layerState, error) {
	i, ok := e.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrLayerNotFound)
	}

	return e.layers[i], nil
}

// Layers returns a snapshot of the layer parameters, innermost first.
func (e *Engine) Layers() []Layer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Layer, len(e.layers))
	for i, l := range e.layers {
		out[i] = l.Layer
	}

	return out
}

// Layer returns the parameters of one layer.
func (e *Engine) Layer(name string) (Layer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	l, err := e.layerLocked(name)
	if err != nil {
		return Layer{}, err
	}

	return l.Layer, nil
}

// Snapshot returns a copy of the parameters and the budget.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	layers := make([]Layer, len(e.layers))
	for i, l := range e.layers {
		layers[i] = l.Layer
	}

	return Snapshot{
		State:         e.state,
		Crystal:       e.crystal,
		Cavity:        e.cavity,
		Layers:        layers,
		Exposure:      e.budget.Exposure(),
		Total:         e.budget.Total(),
		Contributions: e.budget.Contributions(),
	}
}

func wrapMaterial(err error) error {
	if errors.Is(err, ErrMaterialNotFound) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrMaterialNotFound, err)
}
