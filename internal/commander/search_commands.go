package commander

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"featureselect/internal/data"
	"featureselect/internal/evaluation"
	"featureselect/internal/persistence"
	"featureselect/internal/search"
)

// maxPredictionRows caps the per-instance table printed by loocv.
const maxPredictionRows = 20

func (c *Commander) runSearch(ctx context.Context, strategy search.Strategy) {
	if c.dataset == nil {
		c.println(c.red("No data loaded. Use 'load <file>' first"))
		return
	}

	c.println(c.blue("\n" + strategy.Title() + ":"))
	c.println(strings.Repeat("═", 60))

	reporter := search.NewTextReporter(c.out)
	startTime := time.Now()
	res, err := search.Run(ctx, strategy, c.dataset, c.dataset.NumFeatures(),
		search.WithObserver(reporter.Observer()),
		search.WithLogger(c.logger))
	if err != nil {
		c.printf("%s Search failed: %v\n", c.red("✗"), err)
		return
	}

	record := persistence.NewRunRecord(c.dataset.Source, res)
	record.Normalization = c.normalization
	record.Instances = c.dataset.Len()
	record.Features = c.dataset.NumFeatures()
	record.Duration = time.Since(startTime)
	c.lastRun = record

	c.println(strings.Repeat("─", 60))
	c.printf("%s %d evaluations in %s\n", c.green("✓"), res.Evaluations(), record.Duration.Round(time.Millisecond))
	if !sameSubset(res.Best.Subset, res.Selected) {
		c.printf("%s Peak accuracy %.1f%% was reached earlier with %s\n",
			c.yellow("⚠"), res.Best.Accuracy, res.Best.Subset)
	}
	c.println("Use 'save [dir]' to keep the trace")
}

func sameSubset(a, b search.Subset) bool {
	return a.String() == b.String()
}

// parseFeatures joins args so "1,3", "1 3" and "{1,3}" all work.
func (c *Commander) parseFeatures(args []string) (search.Subset, error) {
	subset, err := search.ParseSubset(strings.Join(args, " "))
	if err != nil {
		return nil, fmt.Errorf("invalid feature list: %w", err)
	}
	if err := c.dataset.CheckSubset(subset); err != nil {
		return nil, err
	}
	return subset, nil
}

func (c *Commander) evaluateSubset(args []string) {
	if c.dataset == nil {
		c.println(c.red("No data loaded. Use 'load <file>' first"))
		return
	}

	subset := search.FullSubset(c.dataset.NumFeatures())
	if len(args) > 0 {
		var err error
		subset, err = c.parseFeatures(args)
		if err != nil {
			c.printf("%s %v\n", c.red("✗"), err)
			return
		}
	}

	cv, err := evaluation.NewLOOCV(c.dataset)
	if err != nil {
		c.printf("%s %v\n", c.red("✗"), err)
		return
	}
	report, err := cv.Evaluate(subset)
	if err != nil {
		c.printf("%s %v\n", c.red("✗"), err)
		return
	}

	c.println(c.blue(fmt.Sprintf("\nLeave-One-Out Evaluation of %s:", subset)))
	c.println(strings.Repeat("═", 60))
	c.printf("%-10s %-12s %-12s %-10s\n", "Instance", "Actual", "Predicted", "Distance")
	c.println(strings.Repeat("─", 60))

	shown := 0
	for _, p := range report.Predictions {
		if shown == maxPredictionRows {
			c.printf("... %d more\n", len(report.Predictions)-shown)
			break
		}
		mark := c.green("✓")
		if !p.Correct {
			mark = c.red("✗")
		}
		c.printf("%-10d %-12s %-12s %-10.4f %s\n", p.Index+1,
			c.dataset.ClassName(p.Actual), c.dataset.ClassName(p.Predicted), p.Distance, mark)
		shown++
	}

	c.println(strings.Repeat("─", 60))
	c.printf("Accuracy: %.1f%% (%d/%d correct)\n", report.Accuracy, report.Correct, report.Total)

	metrics := report.Metrics()
	if metrics == nil {
		return
	}
	c.printConfusionMatrix(metrics)
	c.println(c.cyan("\nSummary:"))
	fmt.Fprint(c.out, metrics.FormatMetrics())
}

func (c *Commander) printConfusionMatrix(metrics *evaluation.ClassificationMetrics) {
	c.println(c.cyan("\nConfusion Matrix:"))
	c.println("(Rows = Actual, Columns = Predicted)")
	c.printf("%-18s", "")
	for _, class := range metrics.Classes {
		name := c.dataset.ClassName(class)
		if len(name) > 8 {
			name = name[:8]
		}
		c.printf("%-10s", name)
	}
	c.println()

	for i, actual := range metrics.Classes {
		c.printf("%-18s", c.dataset.ClassName(actual))
		for j := range metrics.Classes {
			count := metrics.ConfusionMatrix[i][j]
			cell := fmt.Sprintf("%-10d", count)
			switch {
			case i == j:
				cell = c.green(cell)
			case count > 0:
				cell = c.red(cell)
			}
			c.printf("%s", cell)
		}
		c.println()
	}
}

func (c *Commander) exportProjection(filename string, args []string) {
	if c.dataset == nil {
		c.println(c.red("No data loaded. Use 'load <file>' first"))
		return
	}

	subset, err := c.parseFeatures(args)
	if err != nil {
		c.printf("%s %v\n", c.red("✗"), err)
		return
	}
	if len(subset) == 0 {
		c.println(c.red("Usage: export <filename> <feature> [feature...]"))
		return
	}

	if err := data.ExportProjectionFile(filename, c.dataset, subset); err != nil {
		c.printf("%s Export failed: %v\n", c.red("✗"), err)
		return
	}
	c.printf("%s Exported %d instances with features %s to %s\n",
		c.green("✓"), c.dataset.Len(), subset, filename)
}

func (c *Commander) saveResults(dir string) {
	if c.lastRun == nil {
		c.println(c.red("No search has run yet. Use 'forward', 'backward' or 'bidirectional' first"))
		return
	}

	runDir := filepath.Join(dir, fmt.Sprintf("%s_%s",
		string(c.lastRun.Result.Strategy), c.lastRun.CreatedAt.Format("20060102_150405")))
	if err := c.lastRun.Save(runDir); err != nil {
		c.printf("%s Failed to save: %v\n", c.red("✗"), err)
		return
	}
	if err := persistence.AppendResultsLog(filepath.Join(dir, "results.csv"), c.lastRun); err != nil {
		c.printf("%s Failed to update results log: %v\n", c.red("✗"), err)
		return
	}

	c.printf("%s Results saved to %s\n", c.green("✓"), runDir)
	c.println("  • trace.csv - Every evaluated subset")
	c.println("  • summary.txt - Human-readable summary")
	c.printf("  • %s - Run log\n", filepath.Join(dir, "results.csv"))
}
