package experiment

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"featureselect/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const separableText = `1 0.0 0.5
1 0.1 0.0
2 0.9 0.4
2 1.0 1.0
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultNormalization, config.Experiment.Normalization)
	assert.Equal(t, []string{"forward", "backward", "bidirectional"}, config.Experiment.Strategies)
	assert.Equal(t, DefaultOutput, config.Experiment.Output)
	assert.False(t, config.Experiment.SaveTraces)
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.yaml", `experiment:
  datasets: [a.txt, b.csv]
  normalization: raw
  strategies: [forward]
  output: out
  save_traces: true
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.csv"}, config.Experiment.Datasets)
	assert.Equal(t, "raw", config.Experiment.Normalization)
	assert.Equal(t, []string{"forward"}, config.Experiment.Strategies)
	assert.Equal(t, "out", config.Experiment.Output)
	assert.True(t, config.Experiment.SaveTraces)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "experiment: [unclosed")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestRunAllExperiments(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "separable.txt", separableText)

	runner, err := NewRunner(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	runner.Config.Experiment.Datasets = []string{dataset}
	runner.Config.Experiment.Normalization = "raw"
	runner.Config.Experiment.Strategies = []string{"forward", "backward"}
	runner.Config.Experiment.Output = filepath.Join(dir, "out")
	runner.Config.Experiment.SaveTraces = true

	var events int
	runner.Observer = func(search.Event) { events++ }

	records, err := runner.RunAllExperiments(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Positive(t, events)

	assert.Equal(t, search.StrategyForward, records[0].Result.Strategy)
	assert.Equal(t, search.Subset{1, 2}, records[0].Result.Selected)
	assert.Equal(t, search.StrategyBackward, records[1].Result.Strategy)
	assert.Equal(t, 4, records[1].Instances)
	assert.Equal(t, 2, records[1].Features)
	assert.Equal(t, "raw", records[1].Normalization)

	assert.FileExists(t, filepath.Join(dir, "out", "separable_forward", "trace.csv"))
	assert.FileExists(t, filepath.Join(dir, "out", "separable_backward", "summary.txt"))

	f, err := os.Open(filepath.Join(dir, "out", ResultsLogName))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "forward", rows[1][2])
	assert.Equal(t, "backward", rows[2][2])
}

func TestRunAllExperimentsErrors(t *testing.T) {
	dir := t.TempDir()

	runner := &ExperimentRunner{Config: DefaultConfig()}
	_, err := runner.RunAllExperiments(context.Background())
	assert.Error(t, err)

	runner, err = NewRunner(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	runner.Config.Experiment.Datasets = []string{writeFile(t, dir, "d.txt", separableText)}
	runner.Config.Experiment.Strategies = []string{"sideways"}
	_, err = runner.RunAllExperiments(context.Background())
	assert.ErrorIs(t, err, search.ErrUnknownStrategy)

	runner.Config.Experiment.Strategies = []string{"forward"}
	runner.Config.Experiment.Datasets = []string{filepath.Join(dir, "nope.txt")}
	runner.Config.Experiment.Output = filepath.Join(dir, "out")
	_, err = runner.RunAllExperiments(context.Background())
	assert.Error(t, err)
}

func TestRunAllExperimentsKeepsFinishedRunsOnFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "separable.txt", separableText)

	runner, err := NewRunner(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	runner.Config.Experiment.Datasets = []string{good, filepath.Join(dir, "nope.txt")}
	runner.Config.Experiment.Strategies = []string{"forward", "backward"}
	runner.Config.Experiment.Output = filepath.Join(dir, "out")

	records, err := runner.RunAllExperiments(context.Background())
	require.Error(t, err)
	assert.Len(t, records, 2)

	f, err := os.Open(filepath.Join(dir, "out", ResultsLogName))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, good, rows[1][1])
	assert.Equal(t, "backward", rows[2][2])
}
