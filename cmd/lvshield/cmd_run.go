package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/katalvlaran/lvshield/command"
	"github.com/katalvlaran/lvshield/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCmd executes a macro file of engine commands.
var runCmd = &cobra.Command{
	Use:   "run [macro]",
	Short: "Execute a command macro (reads stdin when no file is given)",
	Long: `Executes one command per line against the configured assembly, e.g.

  /shield/layer/thickness Cu1 5 mm
  /shield/time 1 d
  /shield/decays/compute Cu1 0.1
  /run/beamOn

Malformed lines, unknown layers and refused launches are reported and
skipped; any other failure stops the macro.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open macro: %w", err)
			}
			defer f.Close()
			in = f
		}

		out := cmd.OutOrStdout()
		d := command.New(app.engine,
			command.WithLogger(logger),
			command.WithRunner(logRunner(logger)))
		res, err := d.ExecuteScript(cmd.Context(), in)
		for _, line := range res.Output {
			fmt.Fprintln(out, line)
		}
		logger.Info("macro finished",
			zap.Int("executed", res.Executed),
			zap.Int("rejected", res.Rejected))

		return err
	},
}

// logRunner stands in for the transport engine: it reports the event count
// it would simulate.
func logRunner(l *zap.Logger) engine.Runner {
	return engine.RunnerFunc(func(_ context.Context, events int64) error {
		l.Info("beamOn", zap.Int64("events", events))
		return nil
	})
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the macro commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range command.New(app.engine).Commands() {
			fmt.Fprintf(w, "%s %s\t%s\n", c.Name, c.Usage, c.Help)
		}
		return w.Flush()
	},
}
