package command_test

import (
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/lvshield/command"
	"github.com/katalvlaran/lvshield/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newDispatcher(t *testing.T, opts ...command.Option) (*command.Dispatcher, *[]int64) {
	t.Helper()
	var launched []int64
	runner := engine.RunnerFunc(func(_ context.Context, n int64) error {
		launched = append(launched, n)
		return nil
	})

	return command.New(engine.New(), append([]command.Option{command.WithRunner(runner)}, opts...)...), &launched
}

func TestExecute_SettersWithUnits(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()
	e := d.Engine()

	_, err := d.Execute(ctx, "/shield/layer/thickness Cu2 3 cm")
	require.NoError(t, err)
	l, err := e.Layer("Cu2")
	require.NoError(t, err)
	assert.Equal(t, 30.0, l.Thickness)

	_, err = d.Execute(ctx, "/shield/cavity/halfY 2 cm")
	require.NoError(t, err)
	_, err = d.Execute(ctx, "/shield/time 2 h")
	require.NoError(t, err)
	assert.Equal(t, 7200.0, e.ExposureTime())

	_, err = d.Execute(ctx, "/shield/crystal/box 11.5 22.5 11.5 cm")
	require.NoError(t, err)
	g, err := e.RequestGeometry(ctx)
	require.NoError(t, err)
	// max(115+50, 225+20, 115+50) = 245
	assert.Equal(t, 245.0, g.Layout.InnerBoundary)

	_, err = d.Execute(ctx, "/shield/crystal/cylinder 40 60")
	require.NoError(t, err)
	assert.Equal(t, engine.Stale, e.State())

	_, err = d.Execute(ctx, "/shield/layer/material Pb1 ImpureLead")
	require.NoError(t, err)
	l, err = e.Layer("Pb1")
	require.NoError(t, err)
	assert.Equal(t, "ImpureLead", l.Material)
}

func TestExecute_MalformedNeverReachesEngine(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()

	cases := []struct {
		line string
		want error
	}{
		{"/shield/warp 9", command.ErrUnknownCommand},
		{"", command.ErrBadArguments},
		{"/shield/layer/thickness Cu1", command.ErrBadArguments},
		{"/shield/layer/thickness Cu1 5 mm extra", command.ErrBadArguments},
		{"/shield/layer/thickness Cu1 five", command.ErrBadArguments},
		{"/shield/layer/thickness Cu1 5 parsec", command.ErrBadArguments},
		{"/shield/time 1 mm", command.ErrBadArguments},
		{"/shield/decays/computeAll now", command.ErrBadArguments},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			_, err := d.Execute(ctx, tc.line)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	l, err := d.Engine().Layer("Cu1")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultCu1Thickness, l.Thickness)
}

func TestExecute_UnknownLayer(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Execute(context.Background(), "/shield/layer/activity Fe1 3")
	assert.ErrorIs(t, err, engine.ErrLayerNotFound)
}

func TestExecute_ComputeAndLaunch(t *testing.T) {
	d, launched := newDispatcher(t)
	ctx := context.Background()

	_, err := d.Execute(ctx, "/run/beamOn")
	assert.ErrorIs(t, err, engine.ErrZeroDecayBudget)
	assert.Empty(t, *launched)

	for _, line := range []string{
		"/shield/time 1 d",
		"/shield/decays/compute Cu1 0.1",
	} {
		_, err := d.Execute(ctx, line)
		require.NoError(t, err, line)
	}
	assert.InDelta(t, 524_016, d.Engine().TotalDecays(), 25)

	out, err := d.Execute(ctx, "/run/beamOn")
	require.NoError(t, err)
	assert.Contains(t, out, "524018 events")
	assert.Equal(t, []int64{524018}, *launched)
}

func TestExecute_DecayOverrides(t *testing.T) {
	d, _ := newDispatcher(t)
	ctx := context.Background()
	e := d.Engine()

	_, err := d.Execute(ctx, "/shield/decays/set -5")
	require.NoError(t, err)
	assert.Zero(t, e.TotalDecays())
	_, err = d.Execute(ctx, "/shield/decays/add 1e3")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, e.TotalDecays())
	_, err = d.Execute(ctx, "/shield/decays/reset")
	require.NoError(t, err)
	assert.Zero(t, e.TotalDecays())
}

func TestExecuteScript(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d, launched := newDispatcher(t, command.WithLogger(zap.New(core)))

	script := `
# reference run, one day
/shield/layer/thickness Cu1 -3 mm
/shield/layer/activity Cu1 0.1
/shield/layer/activity Pb2 1000
/shield/layer/activity Fe1 5
/shield/bogus
/shield/time 1 d
/shield/geometry/update
/shield/decays/computeAll
/run/beamOn
`
	res, err := d.ExecuteScript(context.Background(), strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, 7, res.Executed)
	assert.Equal(t, 2, res.Rejected)
	assert.Len(t, res.Output, 7)
	assert.Equal(t, 2, logs.FilterMessage("command rejected").Len())
	require.Len(t, *launched, 1)
	assert.Greater(t, (*launched)[0], int64(524_000))
}

func TestExecuteScript_HardErrorStops(t *testing.T) {
	d, launched := newDispatcher(t)
	script := "/shield/decays/add 10\n/shield/layer/material Pb1 Unobtainium\n/shield/geometry/update\n/run/beamOn\n"

	res, err := d.ExecuteScript(context.Background(), strings.NewReader(script))
	assert.ErrorIs(t, err, engine.ErrMaterialNotFound)
	assert.ErrorContains(t, err, "line 3")
	assert.Equal(t, 2, res.Executed)
	assert.Empty(t, *launched)
}

func TestCommands_Table(t *testing.T) {
	d, _ := newDispatcher(t)
	cmds := d.Commands()
	require.NotEmpty(t, cmds)
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
	for _, c := range cmds {
		assert.NotNil(t, c.Run, c.Name)
		assert.LessOrEqual(t, c.MinArgs, c.MaxArgs, c.Name)
		assert.NotEmpty(t, c.Help, c.Name)
	}
}
