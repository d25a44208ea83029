package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/katalvlaran/lvshield/engine"
	"go.uber.org/zap"
)

// Dispatcher routes command lines to table handlers bound to one engine.
type Dispatcher struct {
	eng    *engine.Engine
	runner engine.Runner
	log    *zap.Logger
	table  map[string]Command
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for rejected script lines.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("command: WithLogger(nil)")
	}
	return func(d *Dispatcher) { d.log = l }
}

// WithRunner sets the run collaborator used by /run/beamOn.
func WithRunner(r engine.Runner) Option {
	if r == nil {
		panic("command: WithRunner(nil)")
	}
	return func(d *Dispatcher) { d.runner = r }
}

// New returns a dispatcher over e with the default command table.
func New(e *engine.Engine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		eng:   e,
		log:   zap.NewNop(),
		table: make(map[string]Command),
	}
	for _, c := range defaultTable() {
		d.table[c.Name] = c
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Engine returns the engine the dispatcher drives.
func (d *Dispatcher) Engine() *engine.Engine { return d.eng }

// Commands returns the table sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.table))
	for _, c := range d.table {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Execute parses and runs one command line.
func (d *Dispatcher) Execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty line: %w", ErrBadArguments)
	}
	c, ok := d.table[fields[0]]
	if !ok {
		return "", fmt.Errorf("%q: %w", fields[0], ErrUnknownCommand)
	}
	args := fields[1:]
	if len(args) < c.MinArgs || len(args) > c.MaxArgs {
		return "", fmt.Errorf("%s expects %s, got %d argument(s): %w",
			c.Name, usage(c), len(args), ErrBadArguments)
	}

	return c.Run(ctx, d, args)
}

// ScriptResult summarises an ExecuteScript call.
type ScriptResult struct {
	Executed int
	Rejected int
	Output   []string
}

// ExecuteScript runs a macro: one command per line, blank lines and lines
// starting with '#' skipped. Requests the front end rejects (malformed
// input, unknown layer, refused launch) are logged and dropped; any other
// error stops the script and is returned with its line number.
func (d *Dispatcher) ExecuteScript(ctx context.Context, r io.Reader) (ScriptResult, error) {
	var (
		res    ScriptResult
		sc     = bufio.NewScanner(r)
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		out, err := d.Execute(ctx, line)
		if err != nil {
			if recoverable(err) {
				res.Rejected++
				d.log.Warn("command rejected",
					zap.Int("line", lineNo),
					zap.String("command", line),
					zap.Error(err))
				continue
			}
			return res, fmt.Errorf("line %d %q: %w", lineNo, line, err)
		}
		res.Executed++
		res.Output = append(res.Output, out)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read script: %w", err)
	}

	return res, nil
}

func recoverable(err error) bool {
	return errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrBadArguments) ||
		errors.Is(err, engine.ErrLayerNotFound) ||
		errors.Is(err, engine.ErrZeroDecayBudget)
}

func usage(c Command) string {
	if c.Usage == "" {
		return "no arguments"
	}

	return "'" + c.Usage + "'"
}
