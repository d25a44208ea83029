package engine

import (
	"github.com/katalvlaran/lvshield/layout"
	"go.uber.org/zap"
)

// SetLayerThickness stores a layer thickness in mm and marks the geometry
// Stale. A non-positive or non-finite value is replaced by the layer's
// default thickness with a warning. It returns the value actually stored.
func (e *Engine) SetLayerThickness(name string, mm float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, err := e.layerLocked(name)
	if err != nil {
		return 0, err
	}
	if !finite(mm) || mm <= 0 {
		e.fallbackLocked(name+".thickness", mm, l.defaultThickness)
		mm = l.defaultThickness
	}
	l.Thickness = mm
	e.markStaleLocked()

	return mm, nil
}

// SetCavityHalf stores one cavity margin component in mm and marks the
// geometry Stale. A non-positive or non-finite value is replaced by that
// axis' default with a warning. An unknown axis is ignored with a warning
// and 0 is returned.
func (e *Engine) SetCavityHalf(axis Axis, mm float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	var (
		def    float64
		target *float64
	)
	switch axis {
	case AxisX:
		def, target = DefaultCavityHalfX, &e.cavity.X
	case AxisY:
		def, target = DefaultCavityHalfY, &e.cavity.Y
	case AxisZ:
		def, target = DefaultCavityHalfZ, &e.cavity.Z
	default:
		e.log.Warn("unknown cavity axis, ignoring",
			zap.Int("axis", int(axis)),
			zap.Float64("rejected", mm))
		return 0
	}
	if !finite(mm) || mm <= 0 {
		e.fallbackLocked("cavity.half"+axis.String(), mm, def)
		mm = def
	}
	*target = mm
	e.markStaleLocked()

	return mm
}

// SetCavity stores all three margin components; see SetCavityHalf.
func (e *Engine) SetCavity(m layout.Vec3) layout.Vec3 {
	return layout.Vec3{
		X: e.SetCavityHalf(AxisX, m.X),
		Y: e.SetCavityHalf(AxisY, m.Y),
		Z: e.SetCavityHalf(AxisZ, m.Z),
	}
}

// SetCrystal replaces the crystal and marks the geometry Stale. A nil
// crystal or one with a non-positive extent is replaced by DefaultCrystal
// with a warning.
func (e *Engine) SetCrystal(c layout.Crystal) layout.Crystal {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !validCrystal(c) {
		def := DefaultCrystal()
		fields := []zap.Field{zap.String("param", "crystal"), zap.Any("default", def)}
		if c != nil {
			fields = append(fields, zap.String("shape", string(c.Shape())), zap.Any("rejected", c.HalfExtents()))
		}
		e.log.Warn("invalid crystal, using default", fields...)
		e.rec.ParameterFallback("crystal")
		c = def
	}
	e.crystal = c
	e.markStaleLocked()

	return c
}

func validCrystal(c layout.Crystal) bool {
	if c == nil {
		return false
	}
	h := c.HalfExtents()
	for _, v := range [...]float64{h.X, h.Y, h.Z} {
		if !finite(v) || v <= 0 {
			return false
		}
	}

	return true
}

// SetLayerMaterial assigns a material to a layer and marks the geometry
// Stale. The name is resolved on the next rebuild; an empty name restores
// the layer's default material with a warning.
func (e *Engine) SetLayerMaterial(name, materialName string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, err := e.layerLocked(name)
	if err != nil {
		return "", err
	}
	if materialName == "" {
		e.log.Warn("empty material, using default",
			zap.String("param", name+".material"),
			zap.String("default", l.defaultMaterial))
		e.rec.ParameterFallback(name + ".material")
		materialName = l.defaultMaterial
	}
	l.Material = materialName
	e.markStaleLocked()

	return materialName, nil
}

// SetLayerActivity stores a layer's specific activity in Bq/kg. Negative
// values are clamped to zero with a warning. Activity does not affect the
// geometry, so the lifecycle state is unchanged.
func (e *Engine) SetLayerActivity(name string, bqPerKg float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, err := e.layerLocked(name)
	if err != nil {
		return 0, err
	}
	l.Activity = e.clampLocked(name+".activity", bqPerKg)

	return l.Activity, nil
}

// SetExposureTime stores the exposure time in seconds. A negative or
// non-finite value is ignored with a warning; the previous value stays.
// It returns the exposure time in effect.
func (e *Engine) SetExposureTime(seconds float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.budget.SetExposure(seconds); err != nil {
		e.log.Warn("invalid exposure time, keeping previous value",
			zap.String("param", "exposure_time"),
			zap.Float64("rejected", seconds),
			zap.Float64("kept", e.budget.Exposure()),
			zap.Error(err))
		e.rec.ParameterFallback("exposure_time")
	}

	return e.budget.Exposure()
}

// ExposureTime returns the exposure time in seconds.
func (e *Engine) ExposureTime() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.budget.Exposure()
}

// SetTotalDecays overrides the decay total, clamping negative input to
// zero with a warning. It returns the stored total.
func (e *Engine) SetTotalDecays(n float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := e.budget.SetTotal(e.clampLocked("total_decays", n))
	e.rec.TotalDecays(total)

	return total
}

// AddDecays adds n decays to the total. Negative or non-finite n is
// ignored with a warning.
func (e *Engine) AddDecays(n float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.budget.Accumulate(n) {
		e.log.Warn("ignoring invalid decay increment",
			zap.String("param", "decays"),
			zap.Float64("rejected", n))
		e.rec.ParameterFallback("decays")
		return e.budget.Total()
	}
	e.rec.DecaysAccumulated("manual", n)
	e.rec.TotalDecays(e.budget.Total())

	return e.budget.Total()
}

// TotalDecays returns the running decay total.
func (e *Engine) TotalDecays() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.budget.Total()
}

// ResetDecays zeroes the total and its per-layer breakdown.
func (e *Engine) ResetDecays() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.budget.Reset()
	e.rec.TotalDecays(0)
}

func (e *Engine) fallbackLocked(param string, rejected, def float64) {
	e.log.Warn("invalid parameter, using default",
		zap.String("param", param),
		zap.Float64("rejected", rejected),
		zap.Float64("default", def))
	e.rec.ParameterFallback(param)
}

// clampLocked returns v, or 0 with a warning when v is negative or NaN.
func (e *Engine) clampLocked(param string, v float64) float64 {
	if v >= 0 && finite(v) {
		return v
	}
	e.log.Warn("invalid parameter, clamping to zero",
		zap.String("param", param),
		zap.Float64("rejected", v),
		zap.Float64("default", 0))
	e.rec.ParameterFallback(param)

	return 0
}
