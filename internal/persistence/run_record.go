package persistence

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"featureselect/internal/search"
)

// RunRecord describes one finished search for the results log and summary.
type RunRecord struct {
	Dataset       string
	Normalization string
	Instances     int
	Features      int
	Duration      time.Duration
	CreatedAt     time.Time
	Result        *search.Result
}

func NewRunRecord(dataset string, result *search.Result) *RunRecord {
	return &RunRecord{
		Dataset:   dataset,
		CreatedAt: time.Now(),
		Result:    result,
	}
}

// SaveTrace writes every evaluation of the run as CSV. Baselines are step 0,
// candidates carry the number of the step they were scanned in.
func (rr *RunRecord) SaveTrace(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write([]string{"Step", "Kind", "Subset", "Size", "Accuracy"})

	res := rr.Result
	for _, b := range res.Baselines {
		writer.Write(traceRow(0, "baseline", b))
	}

	step := 1
	for i, e := range res.Trace {
		for step <= len(res.Steps) && i >= res.Steps[step-1].TraceEnd {
			step++
		}
		writer.Write(traceRow(step, "candidate", e))
	}

	for _, s := range res.Steps {
		writer.Write(traceRow(s.Number, string(s.Action), search.Evaluation{Subset: s.Subset, Accuracy: s.Accuracy}))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}
	return file.Close()
}

func traceRow(step int, kind string, e search.Evaluation) []string {
	return []string{
		strconv.Itoa(step),
		kind,
		e.Subset.String(),
		strconv.Itoa(len(e.Subset)),
		fmt.Sprintf("%.4f", e.Accuracy),
	}
}

func (rr *RunRecord) SaveSummary(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	res := rr.Result
	fmt.Fprintf(file, "Strategy: %s\n", res.Strategy.Title())
	fmt.Fprintf(file, "Dataset: %s\n", rr.Dataset)
	if rr.Normalization != "" {
		fmt.Fprintf(file, "Normalization: %s\n", rr.Normalization)
	}
	fmt.Fprintf(file, "Instances: %d\n", rr.Instances)
	fmt.Fprintf(file, "Features: %d\n", rr.Features)
	fmt.Fprintf(file, "Created: %s\n", rr.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(file, "Duration: %v\n", rr.Duration)
	fmt.Fprintf(file, "Evaluations: %d\n", res.Evaluations())
	fmt.Fprintf(file, "Final subset: %s (%.1f%%)\n", res.Selected, res.Accuracy)
	fmt.Fprintf(file, "Best subset: %s (%.1f%%)\n", res.Best.Subset, res.Best.Accuracy)
	if res.Stopped {
		fmt.Fprintln(file, "Stopped early: no candidate scored above zero")
	}
	fmt.Fprintln(file)
	search.WriteTrace(file, res)

	return file.Close()
}

// Save writes trace.csv and summary.txt into dir, creating it if needed.
func (rr *RunRecord) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := rr.SaveTrace(filepath.Join(dir, "trace.csv")); err != nil {
		return err
	}
	return rr.SaveSummary(filepath.Join(dir, "summary.txt"))
}

var resultsHeader = []string{
	"Timestamp", "Dataset", "Strategy", "Normalization", "Subset",
	"Accuracy", "BestSubset", "BestAccuracy", "Evaluations", "DurationMs",
}

// AppendResultsLog adds one row to a CSV log, writing the header when the
// file is new or empty.
func AppendResultsLog(filename string, records ...*RunRecord) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		writer.Write(resultsHeader)
	}

	for _, rr := range records {
		res := rr.Result
		writer.Write([]string{
			rr.CreatedAt.Format("2006-01-02 15:04:05"),
			rr.Dataset,
			string(res.Strategy),
			rr.Normalization,
			res.Selected.String(),
			fmt.Sprintf("%.4f", res.Accuracy),
			res.Best.Subset.String(),
			fmt.Sprintf("%.4f", res.Best.Accuracy),
			strconv.Itoa(res.Evaluations()),
			strconv.FormatInt(rr.Duration.Milliseconds(), 10),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}
