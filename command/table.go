package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvshield/engine"
	"github.com/katalvlaran/lvshield/layout"
	"github.com/katalvlaran/lvshield/units"
)

// Handler executes one parsed command and returns a short report.
type Handler func(ctx context.Context, d *Dispatcher, args []string) (string, error)

// Command is one table entry.
type Command struct {
	Name    string
	Usage   string
	Help    string
	MinArgs int
	MaxArgs int
	Run     Handler
}

func defaultTable() []Command {
	return []Command{
		{
			Name: "/shield/crystal/box", Usage: "hx hy hz [unit]", MinArgs: 3, MaxArgs: 4,
			Help: "Set a box crystal by half-extents.",
			Run:  setCrystalBox,
		},
		{
			Name: "/shield/crystal/cylinder", Usage: "radius halfHeight [unit]", MinArgs: 2, MaxArgs: 3,
			Help: "Set a cylindrical crystal, axis along z.",
			Run:  setCrystalCylinder,
		},
		{
			Name: "/shield/cavity/halfX", Usage: "value [unit]", MinArgs: 1, MaxArgs: 2,
			Help: "Set the cavity margin along x.",
			Run:  setCavity(engine.AxisX),
		},
		{
			Name: "/shield/cavity/halfY", Usage: "value [unit]", MinArgs: 1, MaxArgs: 2,
			Help: "Set the cavity margin along y.",
			Run:  setCavity(engine.AxisY),
		},
		{
			Name: "/shield/cavity/halfZ", Usage: "value [unit]", MinArgs: 1, MaxArgs: 2,
			Help: "Set the cavity margin along z.",
			Run:  setCavity(engine.AxisZ),
		},
		{
			Name: "/shield/layer/thickness", Usage: "layer value [unit]", MinArgs: 2, MaxArgs: 3,
			Help: "Set a layer thickness.",
			Run:  setThickness,
		},
		{
			Name: "/shield/layer/material", Usage: "layer material", MinArgs: 2, MaxArgs: 2,
			Help: "Assign a material to a layer.",
			Run:  setMaterial,
		},
		{
			Name: "/shield/layer/activity", Usage: "layer Bq/kg", MinArgs: 2, MaxArgs: 2,
			Help: "Set a layer's specific activity.",
			Run:  setActivity,
		},
		{
			Name: "/shield/time", Usage: "value [unit]", MinArgs: 1, MaxArgs: 2,
			Help: "Set the exposure time.",
			Run:  setTime,
		},
		{
			Name: "/shield/decays/compute", Usage: "layer [Bq/kg]", MinArgs: 1, MaxArgs: 2,
			Help: "Compute one layer's decays and add them to the total.",
			Run:  computeLayer,
		},
		{
			Name: "/shield/decays/computeAll", MinArgs: 0, MaxArgs: 0,
			Help: "Compute every layer's decays and add them to the total.",
			Run:  computeAll,
		},
		{
			Name: "/shield/decays/add", Usage: "n", MinArgs: 1, MaxArgs: 1,
			Help: "Add decays to the total.",
			Run:  addDecays,
		},
		{
			Name: "/shield/decays/set", Usage: "n", MinArgs: 1, MaxArgs: 1,
			Help: "Override the decay total.",
			Run:  setDecays,
		},
		{
			Name: "/shield/decays/reset", MinArgs: 0, MaxArgs: 0,
			Help: "Zero the decay total.",
			Run:  resetDecays,
		},
		{
			Name: "/shield/geometry/update", MinArgs: 0, MaxArgs: 0,
			Help: "Rebuild the geometry if it is stale.",
			Run:  updateGeometry,
		},
		{
			Name: "/run/beamOn", MinArgs: 0, MaxArgs: 0,
			Help: "Launch a run sized by the decay total.",
			Run:  beamOn,
		},
	}
}

func setCrystalBox(_ context.Context, d *Dispatcher, args []string) (string, error) {
	unit := optional(args, 3)
	var v [3]float64
	for i := range v {
		x, err := parseLength(args[i], unit)
		if err != nil {
			return "", err
		}
		v[i] = x
	}
	c := d.eng.SetCrystal(layout.Box{HalfX: v[0], HalfY: v[1], HalfZ: v[2]})

	return fmt.Sprintf("crystal %s %+v mm", c.Shape(), c.HalfExtents()), nil
}

func setCrystalCylinder(_ context.Context, d *Dispatcher, args []string) (string, error) {
	unit := optional(args, 2)
	r, err := parseLength(args[0], unit)
	if err != nil {
		return "", err
	}
	hh, err := parseLength(args[1], unit)
	if err != nil {
		return "", err
	}
	c := d.eng.SetCrystal(layout.Cylinder{Radius: r, HalfHeight: hh})

	return fmt.Sprintf("crystal %s %+v mm", c.Shape(), c.HalfExtents()), nil
}

func setCavity(axis engine.Axis) Handler {
	return func(_ context.Context, d *Dispatcher, args []string) (string, error) {
		v, err := parseLength(args[0], optional(args, 1))
		if err != nil {
			return "", err
		}
		got := d.eng.SetCavityHalf(axis, v)

		return fmt.Sprintf("cavity half%s = %g mm", axis, got), nil
	}
}

func setThickness(_ context.Context, d *Dispatcher, args []string) (string, error) {
	v, err := parseLength(args[1], optional(args, 2))
	if err != nil {
		return "", err
	}
	got, err := d.eng.SetLayerThickness(args[0], v)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s thickness = %g mm", args[0], got), nil
}

func setMaterial(_ context.Context, d *Dispatcher, args []string) (string, error) {
	got, err := d.eng.SetLayerMaterial(args[0], args[1])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s material = %s", args[0], got), nil
}

func setActivity(_ context.Context, d *Dispatcher, args []string) (string, error) {
	a, err := parseNumber(args[1])
	if err != nil {
		return "", err
	}
	got, err := d.eng.SetLayerActivity(args[0], a)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s activity = %g Bq/kg", args[0], got), nil
}

func setTime(_ context.Context, d *Dispatcher, args []string) (string, error) {
	v, err := parseNumber(args[0])
	if err != nil {
		return "", err
	}
	s, err := units.ParseTime(v, optional(args, 1))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadArguments, err)
	}

	return fmt.Sprintf("exposure time = %g s", d.eng.SetExposureTime(s)), nil
}

func computeLayer(ctx context.Context, d *Dispatcher, args []string) (string, error) {
	var (
		y   float64
		err error
	)
	if len(args) == 2 {
		a, perr := parseNumber(args[1])
		if perr != nil {
			return "", perr
		}
		y, err = d.eng.ComputeLayerDecaysWith(ctx, args[0], a)
	} else {
		y, err = d.eng.ComputeLayerDecays(ctx, args[0])
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s decays = %.6g, total = %.6g", args[0], y, d.eng.TotalDecays()), nil
}

func computeAll(ctx context.Context, d *Dispatcher, _ []string) (string, error) {
	y, err := d.eng.ComputeAllDecays(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("all layers decays = %.6g, total = %.6g", y, d.eng.TotalDecays()), nil
}

func addDecays(_ context.Context, d *Dispatcher, args []string) (string, error) {
	n, err := parseNumber(args[0])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("total = %.6g", d.eng.AddDecays(n)), nil
}

func setDecays(_ context.Context, d *Dispatcher, args []string) (string, error) {
	n, err := parseNumber(args[0])
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("total = %.6g", d.eng.SetTotalDecays(n)), nil
}

func resetDecays(_ context.Context, d *Dispatcher, _ []string) (string, error) {
	d.eng.ResetDecays()

	return "total = 0", nil
}

func updateGeometry(ctx context.Context, d *Dispatcher, _ []string) (string, error) {
	g, err := d.eng.RequestGeometry(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("geometry generation %d, outer half-extent %g mm", g.Generation, g.Layout.Outer()), nil
}

func beamOn(ctx context.Context, d *Dispatcher, _ []string) (string, error) {
	dec, err := d.eng.Launch(ctx, d.runner)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("run %s: %d events", dec.RunID, dec.Events), nil
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}

	return ""
}

func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", tok, ErrBadArguments)
	}

	return v, nil
}

func parseLength(tok, unit string) (float64, error) {
	v, err := parseNumber(tok)
	if err != nil {
		return 0, err
	}
	mm, err := units.ParseLength(v, unit)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadArguments, err)
	}

	return mm, nil
}
