package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/lvshield/engine"
	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/mass"
	"github.com/katalvlaran/lvshield/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingBuilder records every geometry handed to the kernel.
type countingBuilder struct {
	builds []*engine.Geometry
	err    error
}

func (b *countingBuilder) Build(_ context.Context, g *engine.Geometry) error {
	if b.err != nil {
		return b.err
	}
	b.builds = append(b.builds, g)
	return nil
}

func newObserved(t *testing.T, opts ...engine.Option) (*engine.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	return engine.New(append([]engine.Option{engine.WithLogger(zap.New(core))}, opts...)...), logs
}

func TestNew_StartsStale(t *testing.T) {
	e := engine.New()
	assert.Equal(t, engine.Stale, e.State())
	assert.Nil(t, e.Geometry())

	names := make([]string, 0, 4)
	for _, l := range e.Layers() {
		names = append(names, l.Name)
		assert.Zero(t, l.Activity, "%s activity defaults to zero", l.Name)
	}
	assert.Equal(t, []string{"Cu1", "Cu2", "Pb1", "Pb2"}, names)
}

func TestRequestGeometry_Reference(t *testing.T) {
	b := &countingBuilder{}
	e := engine.New(engine.WithVolumeBuilder(b))

	g, err := e.RequestGeometry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, engine.Current, e.State())
	assert.Equal(t, uint64(1), g.Generation)
	assert.Equal(t, 235.0, g.Layout.InnerBoundary)

	want := []engine.Placement{
		{Name: "Cu1", Material: material.UltraPureCopper, Inner: 235, Outer: 240},
		{Name: "Cu2", Material: material.ImpureCopper, Inner: 240, Outer: 260},
		{Name: "Pb1", Material: material.LowBackgroundLead, Inner: 260, Outer: 310},
		{Name: "Pb2", Material: material.ImpureLead, Inner: 310, Outer: 460},
	}
	ignoreDensity := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Density"
	}, cmp.Ignore())
	if diff := cmp.Diff(want, g.Placements, ignoreDensity); diff != "" {
		t.Fatalf("placements mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, b.builds, 1)
	assert.Same(t, g, b.builds[0])
}

// TestRequestGeometry_Idempotent: a second request without a configuration
// change returns the cached geometry and does not rebuild.
func TestRequestGeometry_Idempotent(t *testing.T) {
	b := &countingBuilder{}
	e := engine.New(engine.WithVolumeBuilder(b))
	ctx := context.Background()

	g1, err := e.RequestGeometry(ctx)
	require.NoError(t, err)
	g2, err := e.RequestGeometry(ctx)
	require.NoError(t, err)

	assert.Same(t, g1, g2)
	assert.Empty(t, cmp.Diff(g1.Layout, g2.Layout))
	assert.Len(t, b.builds, 1, "no second rebuild")
}

// TestRequestGeometry_RebuildIsTotal: changing the innermost thickness
// shifts every outer shell and rebuilds all of them.
func TestRequestGeometry_RebuildIsTotal(t *testing.T) {
	b := &countingBuilder{}
	e := engine.New(engine.WithVolumeBuilder(b))
	ctx := context.Background()

	before, err := e.RequestGeometry(ctx)
	require.NoError(t, err)

	_, err = e.SetLayerThickness(engine.LayerCu1, 15)
	require.NoError(t, err)
	assert.Equal(t, engine.Stale, e.State())
	assert.Same(t, before, e.Geometry(), "setters never rebuild")

	after, err := e.RequestGeometry(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), after.Generation)
	for i := range after.Placements {
		if i == 0 {
			continue
		}
		assert.Equal(t, before.Placements[i].Inner+10, after.Placements[i].Inner)
		assert.Equal(t, before.Placements[i].Outer+10, after.Placements[i].Outer)
	}
	assert.Len(t, b.builds, 2)
	assert.NoError(t, after.Layout.Validate())
}

func TestRequestGeometry_MaterialNotFoundAbortsBuild(t *testing.T) {
	e, logs := newObserved(t)
	ctx := context.Background()
	_, err := e.RequestGeometry(ctx)
	require.NoError(t, err)

	_, err = e.SetLayerMaterial(engine.LayerPb2, "Unobtainium")
	require.NoError(t, err)

	g, err := e.RequestGeometry(ctx)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, engine.ErrMaterialNotFound)
	assert.Equal(t, engine.Stale, e.State())
	assert.Nil(t, e.Geometry(), "previous geometry is discarded")
	assert.Equal(t, 1, logs.FilterMessage("geometry rebuild failed").Len())

	_, err = e.LayerMass(ctx, engine.LayerCu1)
	assert.ErrorIs(t, err, engine.ErrMaterialNotFound, "no mass from a failed build")

	// fixing the material lets the rebuild be retried
	_, err = e.SetLayerMaterial(engine.LayerPb2, material.ImpureLead)
	require.NoError(t, err)
	g, err = e.RequestGeometry(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), g.Generation)
}

// TestRequestGeometry_BuilderGetsCommittedGeometry: the kernel works from
// the geometry it is handed, which is the one the engine commits.
func TestRequestGeometry_BuilderGetsCommittedGeometry(t *testing.T) {
	b := &countingBuilder{}
	e := engine.New(engine.WithVolumeBuilder(b))

	g, err := e.RequestGeometry(context.Background())
	require.NoError(t, err)
	require.Len(t, b.builds, 1)
	assert.Same(t, g, b.builds[0])
	assert.Same(t, g, e.Geometry())
	assert.Equal(t, uint64(1), b.builds[0].Generation)
}

func TestRequestGeometry_BuilderFailure(t *testing.T) {
	b := &countingBuilder{err: errors.New("kernel busy")}
	e := engine.New(engine.WithVolumeBuilder(b))
	_, err := e.RequestGeometry(context.Background())
	assert.ErrorContains(t, err, "kernel busy")
	assert.Equal(t, engine.Stale, e.State())
}

func TestRequestGeometry_CancelledContext(t *testing.T) {
	e := engine.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.RequestGeometry(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithCrystal_Cylinder(t *testing.T) {
	e := engine.New(engine.WithCrystal(layout.Cylinder{Radius: 40, HalfHeight: 60}))
	g, err := e.RequestGeometry(context.Background())
	require.NoError(t, err)
	// max(40+50, 40+10, 60+50) = 110
	assert.Equal(t, 110.0, g.Layout.InnerBoundary)
	assert.Equal(t, layout.ShapeCylinder, g.Crystal.Shape())
}

func TestWithMaterials_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := material.OpenSQLite(ctx, "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e := engine.New(engine.WithMaterials(db))
	lm, err := e.LayerMass(ctx, engine.LayerCu1)
	require.NoError(t, err)
	assert.InDelta(t, 60.65, lm.Mass, 0.01)
}

func TestLayerMass(t *testing.T) {
	e := engine.New()
	ctx := context.Background()

	lm, err := e.LayerMass(ctx, engine.LayerCu1)
	require.NoError(t, err)
	assert.Equal(t, 6_769_000.0, lm.Volume)
	assert.InDelta(t, 60.65, lm.Mass, 0.01)
	assert.Equal(t, engine.Current, e.State(), "mass query triggers the lazy rebuild")

	_, err = e.LayerMass(ctx, "Fe1")
	assert.ErrorIs(t, err, engine.ErrLayerNotFound)
	assert.ErrorIs(t, err, mass.ErrLayerNotFound)

	all, err := e.LayerMasses(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Mass, all[i-1].Mass)
	}
}

func TestSnapshot(t *testing.T) {
	e := engine.New()
	e.SetExposureTime(3600)
	_, err := e.SetLayerActivity(engine.LayerPb1, 10)
	require.NoError(t, err)

	s := e.Snapshot()
	assert.Equal(t, engine.Stale, s.State)
	assert.Equal(t, 3600.0, s.Exposure)
	assert.Equal(t, engine.DefaultCavity(), s.Cavity)
	assert.Equal(t, 10.0, s.Layers[2].Activity)
	assert.Equal(t, layout.ShapeBox, s.Crystal.Shape())
}

func TestOptions_PanicOnNil(t *testing.T) {
	assert.Panics(t, func() { engine.WithLogger(nil) })
	assert.Panics(t, func() { engine.WithMaterials(nil) })
	assert.Panics(t, func() { engine.WithRecorder(nil) })
	assert.Panics(t, func() { engine.WithVolumeBuilder(nil) })
	assert.Panics(t, func() { engine.WithCrystal(nil) })
}
