package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/lvshield/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// layoutCmd prints the shell placements handed to the geometry kernel.
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the inner/outer half-extent of every shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := app.engine.RequestGeometry(cmd.Context())
		if err != nil {
			return err
		}
		h := g.Crystal.HalfExtents()
		fmt.Fprintf(cmd.OutOrStdout(), "crystal %s half-extents %g × %g × %g mm, cavity boundary %g mm\n",
			g.Crystal.Shape(), h.X, h.Y, h.Z, g.Layout.InnerBoundary)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LAYER\tMATERIAL\tINNER [mm]\tOUTER [mm]\tTHICKNESS [mm]")
		for _, p := range g.Placements {
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\n", p.Name, p.Material, p.Inner, p.Outer, p.Outer-p.Inner)
		}
		return w.Flush()
	},
}

var massCmd = &cobra.Command{
	Use:   "mass [layer...]",
	Short: "Print shell masses",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LAYER\tMATERIAL\tDENSITY [kg/m³]\tVOLUME [mm³]\tMASS [kg]")
		if len(args) == 0 {
			ms, err := app.engine.LayerMasses(ctx)
			if err != nil {
				return err
			}
			for _, m := range ms {
				fmt.Fprintf(w, "%s\t%s\t%g\t%.0f\t%.3f\n", m.Layer, m.Material, m.Density, m.Volume, m.Mass)
			}
			return w.Flush()
		}
		for _, name := range args {
			m, err := app.engine.LayerMass(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%g\t%.0f\t%.3f\n", m.Layer, m.Material, m.Density, m.Volume, m.Mass)
		}
		return w.Flush()
	},
}

// budgetCmd computes every layer's decays from the configured activities.
var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Compute the decay budget of all layers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.engine.ComputeAllDecays(cmd.Context()); err != nil {
			return err
		}
		s := app.engine.Snapshot()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "exposure time\t%g s\n", s.Exposure)
		fmt.Fprintln(w, "LAYER\tMASS [kg]\tACTIVITY [Bq/kg]\tDECAYS")
		for _, c := range s.Contributions {
			fmt.Fprintf(w, "%s\t%.3f\t%g\t%.6g\n", c.Layer, c.Mass, c.Activity, c.Yield)
		}
		fmt.Fprintf(w, "TOTAL\t\t\t%.6g\n", s.Total)
		if err := w.Flush(); err != nil {
			return err
		}

		events, err := engine.EventCount(s.Total)
		if errors.Is(err, engine.ErrZeroDecayBudget) {
			logger.Warn("decay budget is empty; a run would be refused",
				zap.Float64("exposure_s", s.Exposure))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "events for a run: %d\n", events)
		return nil
	},
}
