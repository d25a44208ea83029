package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/lvshield/activity"
	"github.com/katalvlaran/lvshield/mass"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// model builds a mass model over a committed geometry. Densities come from
// the placements, which were resolved when the geometry was built.
func (g *Geometry) model() *mass.Model {
	materials := make(map[string]string, len(g.Placements))
	densities := make(map[string]float64, len(g.Placements))
	for _, p := range g.Placements {
		materials[p.Name] = p.Material
		densities[p.Material] = p.Density
	}

	return mass.NewModel(g.Layout, materials, mass.DensityFunc(func(name string) (float64, error) {
		d, ok := densities[name]
		if !ok {
			return 0, fmt.Errorf("%q: %w", name, ErrMaterialNotFound)
		}
		return d, nil
	}))
}

// Mass returns the mass of one shell of g.
func (g *Geometry) Mass(layer string) (mass.LayerMass, error) {
	return g.model().Mass(layer)
}

// LayerMass returns the mass of the named layer, rebuilding the geometry
// first if it is Stale. Unknown names fail with ErrLayerNotFound before any
// rebuild is attempted.
func (e *Engine) LayerMass(ctx context.Context, name string) (mass.LayerMass, error) {
	if _, err := e.Layer(name); err != nil {
		return mass.LayerMass{}, err
	}
	g, err := e.RequestGeometry(ctx)
	if err != nil {
		return mass.LayerMass{}, err
	}

	return g.Mass(name)
}

// LayerMasses returns the mass of every layer, innermost first.
func (e *Engine) LayerMasses(ctx context.Context) ([]mass.LayerMass, error) {
	g, err := e.RequestGeometry(ctx)
	if err != nil {
		return nil, err
	}

	return g.model().Masses()
}

// ComputeLayerDecays computes the yield of one layer from its mass, its
// stored activity and the exposure time, adds it to the total and returns
// it. On error the total is unchanged.
func (e *Engine) ComputeLayerDecays(ctx context.Context, name string) (float64, error) {
	lm, err := e.LayerMass(ctx, name)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	l, err := e.layerLocked(name)
	if err != nil {
		return 0, err
	}

	return e.addYieldLocked(name, l.Activity, lm.Mass)
}

// ComputeLayerDecaysWith stores activity for the layer and then computes
// and accumulates its yield, in one call.
func (e *Engine) ComputeLayerDecaysWith(ctx context.Context, name string, bqPerKg float64) (float64, error) {
	if _, err := e.SetLayerActivity(name, bqPerKg); err != nil {
		return 0, err
	}

	return e.ComputeLayerDecays(ctx, name)
}

// ComputeAllDecays computes every layer's yield and adds them to the total
// in layer order. Masses are computed concurrently over the same committed
// geometry. Nothing is accumulated if any layer fails.
func (e *Engine) ComputeAllDecays(ctx context.Context) (float64, error) {
	g, err := e.RequestGeometry(ctx)
	if err != nil {
		return 0, err
	}

	model := g.model()
	masses := make([]float64, len(g.Placements))
	var eg errgroup.Group
	for i, p := range g.Placements {
		eg.Go(func() error {
			lm, err := model.Mass(p.Name)
			if err != nil {
				return err
			}
			masses[i] = lm.Mass
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	activities := make([]float64, len(g.Placements))
	sum := e.budget.Total()
	for i, p := range g.Placements {
		l, err := e.layerLocked(p.Name)
		if err != nil {
			return 0, err
		}
		y, err := activity.Yield(masses[i], l.Activity, e.budget.Exposure())
		if err != nil {
			return 0, fmt.Errorf("layer %s: %w", p.Name, err)
		}
		if sum += y; math.IsInf(sum, 0) {
			return 0, fmt.Errorf("layer %s: decay total overflows: %w", p.Name, activity.ErrNotFinite)
		}
		activities[i] = l.Activity
	}

	var added float64
	for i, p := range g.Placements {
		y, err := e.addYieldLocked(p.Name, activities[i], masses[i])
		if err != nil {
			return added, err
		}
		added += y
	}

	return added, nil
}

func (e *Engine) addYieldLocked(name string, bqPerKg, kg float64) (float64, error) {
	y, err := e.budget.AddLayerYield(name, bqPerKg, kg)
	if err != nil {
		return 0, err
	}
	e.rec.DecaysAccumulated(name, y)
	e.rec.TotalDecays(e.budget.Total())
	e.log.Info("layer decays accumulated",
		zap.String("layer", name),
		zap.Float64("mass_kg", kg),
		zap.Float64("activity_bq_kg", bqPerKg),
		zap.Float64("exposure_s", e.budget.Exposure()),
		zap.Float64("decays", y),
		zap.Float64("total", e.budget.Total()))

	return y, nil
}
