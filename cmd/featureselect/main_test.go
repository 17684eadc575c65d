package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const separableText = `1 0.0 0.5
1 0.1 0.0
2 0.9 0.4
2 1.0 1.0
`

func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "separable.txt")
	require.NoError(t, os.WriteFile(path, []byte(separableText), 0644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.RunContext(context.Background(), append([]string{"featureselect"}, args...))
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir)
	tracePath := filepath.Join(dir, "trace.csv")
	outDir := filepath.Join(dir, "out")

	out, err := runApp(t, "run", "--data", path, "--algorithm", "2", "--trace", tracePath, "--output", outDir)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out,
		"This dataset has 2 features (not including the class attribute), with 4 instances.\n\n"))
	assert.Contains(t, out, `Using all features and "leave-one-out" evaluation, I get an accuracy of 100.0%`)
	assert.Contains(t, out, "Finished search!! The best feature subset is {1}, which has an accuracy of 100.0%")

	assert.FileExists(t, tracePath)
	assert.FileExists(t, filepath.Join(outDir, "summary.txt"))

	f, err := os.Open(filepath.Join(outDir, "results.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "backward", rows[1][2])
}

func TestRunCommandErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir)

	_, err := runApp(t, "run", "--data", path, "--algorithm", "sideways")
	assert.Error(t, err)

	_, err = runApp(t, "run", "--data", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	_, err = runApp(t, "run")
	assert.Error(t, err)
}

func TestLOOCVCommand(t *testing.T) {
	path := writeDataset(t, t.TempDir())

	out, err := runApp(t, "loocv", "--data", path, "--features", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Using feature(s) {2} accuracy is 0.0% (0/4 correct)")

	out, err = runApp(t, "loocv", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Using feature(s) {1,2} accuracy is 100.0% (4/4 correct)")
	assert.Contains(t, out, "Balanced Accuracy: 1.0000")

	_, err = runApp(t, "loocv", "--data", path, "--features", "3")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir)
	outPath := filepath.Join(dir, "good.csv")

	out, err := runApp(t, "export", "--data", path, "--raw", "--features", "2,1", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Exported 4 instances with features {2,1}")

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Label,Feature2,Feature1", lines[0])
	assert.Equal(t, "1,0.5,0", lines[1])
}

func TestExperimentCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDataset(t, dir)
	outDir := filepath.Join(dir, "results")
	config := filepath.Join(dir, "experiment.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`experiment:
  datasets: [`+path+`]
  strategies: [forward, bidirectional]
  output: `+outDir+`
`), 0644))

	out, err := runApp(t, "experiment", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "forward")
	assert.Contains(t, out, "bidirectional")
	assert.Contains(t, out, "Results written to "+outDir)
	assert.FileExists(t, filepath.Join(outDir, "results.csv"))
}

func TestSetupLoggerLevels(t *testing.T) {
	path := writeDataset(t, t.TempDir())

	for _, level := range []string{"debug", "INFO", "Warn", "error"} {
		t.Run(level, func(t *testing.T) {
			_, err := runApp(t, "--log-level", level, "loocv", "--data", path)
			require.NoError(t, err)
		})
	}

	_, err := runApp(t, "--log-level", "loud", "loocv", "--data", path)
	assert.Error(t, err)
}
