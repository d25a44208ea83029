package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/katalvlaran/lvshield/metrics"
	"go.uber.org/zap"
)

// EventCount converts a decay total into a primary event count by rounding
// to the nearest integer.
func EventCount(total float64) (int64, error) {
	if !(total > 0) {
		return 0, ErrZeroDecayBudget
	}
	n := math.Round(total)
	if n >= math.MaxInt64 || math.IsInf(n, 0) {
		return 0, fmt.Errorf("total=%g: %w", total, ErrEventCountOverflow)
	}
	if n < 1 {
		return 0, fmt.Errorf("total=%g: %w", total, ErrZeroDecayBudget)
	}

	return int64(n), nil
}

// Launch sizes a run from the decay total and hands it to r.
//
// When the total rounds to fewer than one event the launch is refused: a
// warning is logged, r is not called and ErrZeroDecayBudget is returned.
// Otherwise the geometry is brought up to date and r.BeamOn receives the
// event count.
func (e *Engine) Launch(ctx context.Context, r Runner) (LaunchDecision, error) {
	if r == nil {
		return LaunchDecision{}, ErrNilRunner
	}
	total := e.TotalDecays()
	events, err := EventCount(total)
	if err != nil {
		e.rec.Launch(metrics.LaunchRefused)
		e.log.Warn("launch refused: set an exposure time and layer activities, or a decay total",
			zap.Float64("total_decays", total),
			zap.Error(err))
		return LaunchDecision{}, err
	}

	if _, err := e.RequestGeometry(ctx); err != nil {
		e.rec.Launch(metrics.LaunchFailed)
		return LaunchDecision{}, fmt.Errorf("launch: %w", err)
	}

	d := LaunchDecision{RunID: uuid.New(), Events: events, Total: total}
	e.log.Info("launching run",
		zap.String("run_id", d.RunID.String()),
		zap.Int64("events", events),
		zap.Float64("total_decays", total))
	if err := r.BeamOn(ctx, events); err != nil {
		e.rec.Launch(metrics.LaunchFailed)
		return LaunchDecision{}, fmt.Errorf("run %s: %w", d.RunID, err)
	}
	e.rec.Launch(metrics.LaunchStarted)

	return d, nil
}
