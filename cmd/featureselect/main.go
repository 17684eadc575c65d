package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"featureselect/internal/data"
	"featureselect/internal/evaluation"
	"featureselect/internal/experiment"
	"featureselect/internal/persistence"
	"featureselect/internal/search"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
		os.Exit(1)
	}
}

func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Dataset file (.csv or whitespace-separated text)",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Skip min-max normalization",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "featureselect",
		Usage: "Nearest-neighbor feature subset search with leave-one-out evaluation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run a feature search and print its trace",
				Action: runCommand,
				Flags: append(dataFlags(),
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "Search strategy (forward, backward, bidirectional or 1-3)",
						Value:   "forward",
					},
					&cli.StringFlag{
						Name:  "trace",
						Usage: "Write every evaluated subset to this CSV file",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Directory for trace.csv, summary.txt and results.csv",
					},
				),
			},
			{
				Name:   "loocv",
				Usage:  "Leave-one-out accuracy of one feature subset",
				Action: loocvCommand,
				Flags: append(dataFlags(),
					&cli.StringFlag{
						Name:    "features",
						Aliases: []string{"f"},
						Usage:   "Comma-separated 1-based features (default: all)",
					},
				),
			},
			{
				Name:   "export",
				Usage:  "Write the label and selected features to CSV",
				Action: exportCommand,
				Flags: append(dataFlags(),
					&cli.StringFlag{
						Name:     "features",
						Aliases:  []string{"f"},
						Usage:    "Comma-separated 1-based features",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output CSV file",
						Required: true,
					},
				),
			},
			{
				Name:   "experiment",
				Usage:  "Run every configured strategy on every configured dataset",
				Action: experimentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML experiment configuration",
						Value:   "config/experiment.yaml",
					},
				},
			},
		},
	}
}

func normalization(c *cli.Context) string {
	if c.Bool("raw") {
		return "raw"
	}
	return "normalized"
}

func loadDataset(c *cli.Context) (*data.Dataset, error) {
	ds, err := data.LoadDataset(c.String("data"), normalization(c))
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded",
		"path", ds.Source,
		"instances", ds.Len(),
		"features", ds.NumFeatures())
	return ds, nil
}

func runCommand(c *cli.Context) error {
	strategy, err := search.ParseStrategy(c.String("algorithm"))
	if err != nil {
		return err
	}
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "This dataset has %d features (not including the class attribute), with %d instances.\n\n",
		ds.NumFeatures(), ds.Len())

	startTime := time.Now()
	res, err := search.Run(c.Context, strategy, ds, ds.NumFeatures(),
		search.WithObserver(search.NewTextReporter(out).Observer()),
		search.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	record := persistence.NewRunRecord(ds.Source, res)
	record.Normalization = normalization(c)
	record.Instances = ds.Len()
	record.Features = ds.NumFeatures()
	record.Duration = time.Since(startTime)

	if path := c.String("trace"); path != "" {
		if err := record.SaveTrace(path); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	if dir := c.String("output"); dir != "" {
		if err := record.Save(dir); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		if err := persistence.AppendResultsLog(filepath.Join(dir, "results.csv"), record); err != nil {
			return fmt.Errorf("failed to write results log: %w", err)
		}
	}
	return nil
}

func loocvCommand(c *cli.Context) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}

	subset := search.FullSubset(ds.NumFeatures())
	if text := c.String("features"); text != "" {
		if subset, err = search.ParseSubset(text); err != nil {
			return fmt.Errorf("invalid --features: %w", err)
		}
	}

	cv, err := evaluation.NewLOOCV(ds)
	if err != nil {
		return err
	}
	report, err := cv.Evaluate(subset)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Using feature(s) %s accuracy is %.1f%% (%d/%d correct)\n",
		subset, report.Accuracy, report.Correct, report.Total)
	if metrics := report.Metrics(); metrics != nil {
		fmt.Fprint(out, metrics.FormatMetrics())
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	ds, err := loadDataset(c)
	if err != nil {
		return err
	}

	subset, err := search.ParseSubset(c.String("features"))
	if err != nil {
		return fmt.Errorf("invalid --features: %w", err)
	}
	if len(subset) == 0 {
		return fmt.Errorf("invalid --features: no features given")
	}

	if err := data.ExportProjectionFile(c.String("out"), ds, subset); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s Exported %d instances with features %s to %s\n",
		color.GreenString("✓"), ds.Len(), subset, c.String("out"))
	return nil
}

func experimentCommand(c *cli.Context) error {
	runner, err := experiment.NewRunner(c.String("config"))
	if err != nil {
		return err
	}
	runner.Logger = slog.Default()

	records, err := runner.RunAllExperiments(c.Context)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%-30s %-14s %-14s %-10s %s\n", "Dataset", "Strategy", "Subset", "Accuracy", "Duration")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, rr := range records {
		fmt.Fprintf(out, "%-30s %-14s %-14s %-10s %s\n",
			rr.Dataset,
			rr.Result.Strategy,
			rr.Result.Selected,
			fmt.Sprintf("%.1f%%", rr.Result.Accuracy),
			rr.Duration.Round(time.Millisecond))
	}
	fmt.Fprintf(out, "\n%s Results written to %s\n", color.GreenString("✓"), runner.Config.Experiment.Output)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
