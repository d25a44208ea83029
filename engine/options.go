package engine

import (
	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/mass"
	"github.com/katalvlaran/lvshield/metrics"
	"go.uber.org/zap"
)

// Option customises an Engine at construction.
// Option constructors panic on nil arguments; the engine itself never panics
// on user input.
type Option func(*Engine)

// WithLogger sets the logger for warnings and rebuild events.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(e *Engine) {
		e.log = l
	}
}

// WithMaterials sets the material database used to resolve densities.
func WithMaterials(db mass.DensityLookup) Option {
	if db == nil {
		panic("engine: WithMaterials(nil)")
	}
	return func(e *Engine) {
		e.materials = db
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic("engine: WithRecorder(nil)")
	}
	return func(e *Engine) {
		e.rec = r
	}
}

// WithVolumeBuilder sets the geometry kernel that receives rebuilds.
func WithVolumeBuilder(b VolumeBuilder) Option {
	if b == nil {
		panic("engine: WithVolumeBuilder(nil)")
	}
	return func(e *Engine) {
		e.builder = b
	}
}

// WithCrystal replaces the reference crystal. Invalid crystals are handled
// like SetCrystal input and fall back to DefaultCrystal.
func WithCrystal(c layout.Crystal) Option {
	if c == nil {
		panic("engine: WithCrystal(nil)")
	}
	return func(e *Engine) {
		e.initCrystal = c
	}
}
