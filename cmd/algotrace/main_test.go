package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algotrace/internal/algorithms"
	"github.com/san-kum/algotrace/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	for _, k := range algorithms.Kinds() {
		assert.Contains(t, out, k.String())
	}
	assert.Contains(t, out, "O(log n)")
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets", "binary-search")
	require.NoError(t, err)
	assert.Contains(t, out, "scenario-b")
	assert.Contains(t, out, "default")

	_, err = execute(t, "presets", "bogo-sort")
	assert.ErrorIs(t, err, algorithms.ErrUnknownAlgorithm)
}

func TestRun_PrintsEveryStep(t *testing.T) {
	out, err := execute(t, "run", "linear-search", "--preset", "scenario-a")
	require.NoError(t, err)
	for _, id := range []string{"init", "compare-0", "compare-1", "compare-2", "found"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "result: found at 2")
}

func TestRun_SetOverridesPreset(t *testing.T) {
	out, err := execute(t, "run", "binary-search", "--set", "array=[1,3,5,7]", "--set", "target=7")
	require.NoError(t, err)
	assert.Contains(t, out, "result: found at 3")

	_, err = execute(t, "run", "binary-search", "--set", "target")
	assert.Error(t, err)

	_, err = execute(t, "run", "binary-search", "--set", "colour=red")
	assert.ErrorIs(t, err, algorithms.ErrBadInput)
}

func TestRun_InvalidInputIsNotAnError(t *testing.T) {
	out, err := execute(t, "run", "kmp", "--set", "pattern=''")
	require.NoError(t, err)
	assert.Contains(t, out, "result: invalid (pattern is empty)")
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algotrace.yaml")
	cfg := config.DefaultConfig()
	cfg.Algorithm = "fibonacci"
	cfg.Params = map[string]any{"n": 10}
	require.NoError(t, config.Save(path, cfg))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "result: 55")

	_, err = execute(t, "run", "--config", path, "--speed", "100")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExport(t *testing.T) {
	out, err := execute(t, "export", "bubble-sort", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "step,id,comparisons,swaps,accesses,description")

	out, err = execute(t, "export", "bubble-sort", "--format", "svg")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	out, err = execute(t, "export", "lcs", "--format", "svg")
	require.NoError(t, err)
	assert.Contains(t, out, "<path")

	path := filepath.Join(t.TempDir(), "trace.json")
	_, err = execute(t, "export", "kmp", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"algorithm": "kmp"`)

	_, err = execute(t, "export", "kmp", "--format", "xml")
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	out, err := execute(t, "plot", "insertion-sort")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: insertion-sort")
	assert.Contains(t, out, "accesses")
}

func TestScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: demo
runs:
  - algorithm: quick-sort
  - algorithm: dijkstra
`), 0644))

	out, err := execute(t, "scenario", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario: demo")
	assert.Contains(t, out, "quick-sort")
	assert.Contains(t, out, "dijkstra")

	out, err = execute(t, "scenario", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: quick-sort")
}

func TestSweep(t *testing.T) {
	out, err := execute(t, "sweep", "selection-sort", "--min", "4", "--max", "16", "--steps", "3", "--trials", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "SIZE")
	assert.Contains(t, out, "mean comparisons")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	_, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"array=[1, 2]", "text=hello", "n=7", "pattern="})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got["array"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, 7, got["n"])
	assert.Equal(t, "", got["pattern"])

	_, err = parseParams([]string{"=1"})
	assert.Error(t, err)
}

func TestSaveHistoryAndPlotRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")

	out, err := execute(t, "history", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no runs found")

	out, err = execute(t, "run", "selection-sort", "--save", "--data", dir)
	require.NoError(t, err)
	require.Contains(t, out, "saved run selection-sort_")

	id := out[strings.Index(out, "selection-sort_"):]
	id = strings.TrimSpace(id)

	out, err = execute(t, "history", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "sorted")

	out, err = execute(t, "plot", "--run", id, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "algorithm: selection-sort")

	_, err = execute(t, "plot", "--run", "missing", "--data", dir)
	assert.Error(t, err)
}
