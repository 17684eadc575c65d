package commander

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"featureselect/internal/jobs"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const separableText = `1 0.0 0.5
1 0.1 0.0
2 0.9 0.4
2 1.0 1.0
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "separable.txt")
	require.NoError(t, os.WriteFile(path, []byte(separableText), 0644))
	return path
}

func TestRunClassicForward(t *testing.T) {
	path := writeDataset(t)
	var out bytes.Buffer
	c := NewCommander(strings.NewReader(path+"\n1\n"), &out)

	require.NoError(t, c.RunClassic(context.Background()))

	expected := `Welcome to the Feature Selection Algorithm.
Type in the name of the file to test: This dataset has 2 features (not including the class attribute), with 4 instances.
Type the number of the algorithm you want to run.

1. Forward Selection
2. Backward Elimination
3. Bidirectional Search


Running nearest neighbor with no features (default rate), using "leave-one-out" evaluation, I get an accuracy of 50.0%
Beginning search.
Using feature(s) {1} accuracy is 100.0%
Using feature(s) {2} accuracy is 0.0%
Feature set {1} was best, accuracy is 100.0%
Using feature(s) {1,2} accuracy is 100.0%
Feature set {1,2} was best, accuracy is 100.0%
Finished search!! The best feature subset is {1,2}, which has an accuracy of 100.0%
`
	assert.Equal(t, expected, out.String())
}

func TestRunClassicInvalidChoice(t *testing.T) {
	path := writeDataset(t)
	var out bytes.Buffer
	c := NewCommander(strings.NewReader(path+"\n7\n"), &out)

	err := c.RunClassic(context.Background())
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Contains(t, out.String(), "Invalid choice. Exiting.")
}

func TestRunClassicMissingFile(t *testing.T) {
	var out bytes.Buffer
	c := NewCommander(strings.NewReader("/nonexistent/data.txt\n1\n"), &out)
	assert.Error(t, c.RunClassic(context.Background()))
}

func TestInteractiveSession(t *testing.T) {
	path := writeDataset(t)
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "good.csv")
	saveDir := filepath.Join(dir, "saved")

	script := strings.Join([]string{
		"forward",
		"load " + path + " raw",
		"info",
		"backward",
		"loocv 1",
		"loocv 9",
		"export " + exportPath + " 1",
		"save " + saveDir,
		"bogus",
		"quit",
		"info",
	}, "\n")

	var out bytes.Buffer
	c := NewCommander(strings.NewReader(script), &out)
	c.Start(context.Background())
	got := out.String()

	assert.Contains(t, got, "No data loaded. Use 'load <file>' first")
	assert.Contains(t, got, "✓ Data loaded successfully!")
	assert.Contains(t, got, "Distribution:  1:2 2:2")
	assert.Contains(t, got, "Backward Elimination:")
	assert.Contains(t, got, `Using all features and "leave-one-out" evaluation, I get an accuracy of 100.0%`)
	assert.Contains(t, got, "Accuracy: 100.0% (4/4 correct)")
	assert.Contains(t, got, "invalid feature subset")
	assert.Contains(t, got, "✓ Exported 4 instances with features {1}")
	assert.Contains(t, got, "✓ Results saved to")
	assert.Contains(t, got, "Unknown command: bogus")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(got), "Goodbye!"))

	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(exported), "Label,Feature1\n"))

	assert.FileExists(t, filepath.Join(saveDir, "results.csv"))
	matches, err := filepath.Glob(filepath.Join(saveDir, "backward_*", "trace.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSaveWithoutRun(t *testing.T) {
	var out bytes.Buffer
	c := NewCommander(strings.NewReader(""), &out)
	c.ExecuteCommand(context.Background(), "save", []string{t.TempDir()})
	assert.Contains(t, out.String(), "No search has run yet")
}

func TestBackgroundSearch(t *testing.T) {
	path := writeDataset(t)
	var out bytes.Buffer
	c := NewCommander(strings.NewReader(""), &out)
	ctx := context.Background()

	c.ExecuteCommand(ctx, "load", []string{path})
	c.ExecuteCommand(ctx, "run-bg", []string{"bidirectional"})
	assert.Contains(t, out.String(), "Job submitted: job_bidirectional_1")

	job, ok := c.jobManager.GetJob("job_bidirectional_1")
	require.True(t, ok)
	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, job.Wait(waitCtx))
	assert.Equal(t, jobs.JobCompleted, job.GetStatus())

	out.Reset()
	c.ExecuteCommand(ctx, "job-status", []string{job.ID})
	assert.Contains(t, out.String(), "Status:      completed")
	assert.Contains(t, out.String(), "Result:      {1,2} at 100.0%")

	out.Reset()
	c.ExecuteCommand(ctx, "job-status", nil)
	assert.Contains(t, out.String(), "job_bidirectional_1")

	out.Reset()
	c.ExecuteCommand(ctx, "job-logs", []string{job.ID})
	assert.Contains(t, out.String(), "starting Bidirectional Search over 2 features")

	out.Reset()
	c.ExecuteCommand(ctx, "job-cancel", []string{job.ID})
	assert.Contains(t, out.String(), "is not running")

	out.Reset()
	c.ExecuteCommand(ctx, "run-bg", []string{"sideways"})
	assert.Contains(t, out.String(), "unknown search strategy")
}

func TestStartReturnsOnCancelWithoutInput(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	c := NewCommander(in, &out)
	ctx, cancel := context.WithCancel(context.Background())

	finished := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(finished)
	}()

	cancel()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}
