package experiment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"featureselect/internal/data"
	"featureselect/internal/persistence"
	"featureselect/internal/search"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNormalization = "normalized"
	DefaultOutput        = "results"
	ResultsLogName       = "results.csv"
)

type ExperimentConfig struct {
	Experiment struct {
		Datasets      []string `yaml:"datasets"`
		Normalization string   `yaml:"normalization"`
		Strategies    []string `yaml:"strategies"`
		Output        string   `yaml:"output"`
		SaveTraces    bool     `yaml:"save_traces"`
	} `yaml:"experiment"`
}

// DefaultConfig runs every strategy on normalized data into ./results.
func DefaultConfig() *ExperimentConfig {
	config := &ExperimentConfig{}
	config.applyDefaults()
	return config
}

func (c *ExperimentConfig) applyDefaults() {
	if c.Experiment.Normalization == "" {
		c.Experiment.Normalization = DefaultNormalization
	}
	if len(c.Experiment.Strategies) == 0 {
		for _, s := range search.Strategies {
			c.Experiment.Strategies = append(c.Experiment.Strategies, string(s))
		}
	}
	if c.Experiment.Output == "" {
		c.Experiment.Output = DefaultOutput
	}
}

// LoadConfig reads a YAML config. A missing file yields the defaults.
func LoadConfig(configFile string) (*ExperimentConfig, error) {
	config := &ExperimentConfig{}

	raw, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configFile, err)
		}
	}

	config.applyDefaults()
	return config, nil
}

type ExperimentRunner struct {
	Config *ExperimentConfig
	Logger *slog.Logger
	// Observer, when set, receives the events of every run.
	Observer search.Observer
}

func NewRunner(configFile string) (*ExperimentRunner, error) {
	config, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return &ExperimentRunner{Config: config, Logger: slog.New(slog.DiscardHandler)}, nil
}

func (r *ExperimentRunner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *ExperimentRunner) strategies() ([]search.Strategy, error) {
	strategies := make([]search.Strategy, 0, len(r.Config.Experiment.Strategies))
	for _, name := range r.Config.Experiment.Strategies {
		s, err := search.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}

// RunAllExperiments runs every configured strategy on every dataset. Each
// run is appended to the results log in the output directory as soon as it
// finishes, so runs completed before a failure stay logged.
func (r *ExperimentRunner) RunAllExperiments(ctx context.Context) ([]*persistence.RunRecord, error) {
	cfg := r.Config.Experiment
	if len(cfg.Datasets) == 0 {
		return nil, errors.New("no datasets configured")
	}

	strategies, err := r.strategies()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logPath := filepath.Join(cfg.Output, ResultsLogName)
	var records []*persistence.RunRecord
	for _, path := range cfg.Datasets {
		ds, err := data.LoadDataset(path, cfg.Normalization)
		if err != nil {
			return records, fmt.Errorf("dataset %s: %w", path, err)
		}
		r.logger().Info("dataset loaded",
			"path", path,
			"instances", ds.Len(),
			"features", ds.NumFeatures())

		for _, strategy := range strategies {
			record, err := r.runOne(ctx, path, ds, strategy)
			if err != nil {
				return records, fmt.Errorf("%s on %s: %w", strategy, path, err)
			}
			records = append(records, record)

			if err := persistence.AppendResultsLog(logPath, record); err != nil {
				return records, fmt.Errorf("failed to write results log: %w", err)
			}
		}
	}

	return records, nil
}

func (r *ExperimentRunner) runOne(ctx context.Context, path string, ds *data.Dataset, strategy search.Strategy) (*persistence.RunRecord, error) {
	opts := []search.Option{search.WithLogger(r.logger())}
	if r.Observer != nil {
		opts = append(opts, search.WithObserver(r.Observer))
	}

	startTime := time.Now()
	res, err := search.Run(ctx, strategy, ds, ds.NumFeatures(), opts...)
	if err != nil {
		return nil, err
	}

	record := persistence.NewRunRecord(path, res)
	record.Normalization = r.Config.Experiment.Normalization
	record.Instances = ds.Len()
	record.Features = ds.NumFeatures()
	record.Duration = time.Since(startTime)

	r.logger().Info("run finished",
		"dataset", path,
		"strategy", string(strategy),
		"subset", res.Selected.String(),
		"accuracy", res.Accuracy,
		"duration", record.Duration)

	if r.Config.Experiment.SaveTraces {
		dir := filepath.Join(r.Config.Experiment.Output, runDirName(path, strategy))
		if err := record.Save(dir); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
	}

	return record, nil
}

// runDirName is <dataset base name>_<strategy>.
func runDirName(path string, strategy search.Strategy) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_" + string(strategy)
}
