package engine

import (
	"errors"

	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/mass"
)

var (
	// ErrLayerNotFound indicates a layer name the engine does not manage.
	ErrLayerNotFound = layout.ErrLayerNotFound

	// ErrMaterialNotFound indicates a layer material the database cannot
	// resolve. It aborts the current rebuild; the geometry stays Stale.
	ErrMaterialNotFound = mass.ErrMaterialNotFound

	// ErrZeroDecayBudget indicates a launch request while the decay total
	// rounds to less than one event. Nothing is launched and no state
	// changes; the caller may configure activities and retry.
	ErrZeroDecayBudget = errors.New("engine: decay budget is empty")

	// ErrEventCountOverflow indicates a decay total too large for an int64
	// event count.
	ErrEventCountOverflow = errors.New("engine: decay budget exceeds event count range")

	// ErrNilRunner indicates Launch was called without a run collaborator.
	ErrNilRunner = errors.New("engine: runner is nil")
)
