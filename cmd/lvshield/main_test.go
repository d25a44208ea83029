package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with a fresh set of global flags.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	configPath, verbose, materialsDB, metricsFile = "", false, "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func TestLayoutCommand(t *testing.T) {
	out := execute(t, "layout")
	assert.Contains(t, out, "cavity boundary 235 mm")
	assert.Regexp(t, `Cu1\s+UltraPureCopper\s+235\s+240\s+5`, out)
	assert.Regexp(t, `Pb2\s+ImpureLead\s+310\s+460\s+150`, out)
}

func TestMassCommand(t *testing.T) {
	out := execute(t, "mass", "Cu1")
	assert.Regexp(t, `Cu1\s+UltraPureCopper\s+8960\s+6769000\s+60\.650`, out)
}

func TestBudgetCommand_EmptyBudget(t *testing.T) {
	out := execute(t, "budget")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "events for a run")
}

func TestRunCommand_MacroAndMetrics(t *testing.T) {
	dir := t.TempDir()
	macro := filepath.Join(dir, "day.mac")
	require.NoError(t, os.WriteFile(macro, []byte(`# one day of Cu1 at 0.1 Bq/kg
/shield/time 1 d
/shield/decays/compute Cu1 0.1
/shield/layer/thickness Cu9 5
/run/beamOn
`), 0o644))
	metrics := filepath.Join(dir, "metrics.prom")

	out := execute(t, "--metrics-file", metrics, "run", macro)
	assert.Regexp(t, `run [0-9a-f-]{36}: 524018 events`, out)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lvshield_launches_total{outcome="started"} 1`)
	assert.Contains(t, string(data), "lvshield_geometry_rebuilds_total 1")
}

func TestCommandsCommand(t *testing.T) {
	out := execute(t, "commands")
	assert.Contains(t, out, "/run/beamOn")
	assert.Contains(t, out, "/shield/layer/thickness")
}
