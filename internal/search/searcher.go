package search

import (
	"context"
	"fmt"
	"log/slog"

	"featureselect/internal/data"
	"featureselect/internal/evaluation"
)

// searcher carries the per-run state shared by the strategies.
type searcher struct {
	ctx      context.Context
	strategy Strategy
	scorer   evaluation.Scorer
	observer Observer
	logger   *slog.Logger
	result   *Result
}

func newSearcher(ctx context.Context, strategy Strategy, ds *data.Dataset, totalFeatures int, opts []Option) (*searcher, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if totalFeatures <= 0 {
		return nil, fmt.Errorf("%s: %w (got %d)", strategy, ErrNoFeatures, totalFeatures)
	}

	if o.scorer == nil {
		if ds == nil {
			return nil, fmt.Errorf("%s: no dataset and no scorer", strategy)
		}
		loocv, err := evaluation.NewLOOCV(ds)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strategy, err)
		}
		o.scorer = loocv
	}
	if ds != nil && totalFeatures > ds.NumFeatures() {
		return nil, fmt.Errorf("%s: %w: %d > %d", strategy, ErrTooManyFeatures, totalFeatures, ds.NumFeatures())
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &searcher{
		ctx:      ctx,
		strategy: strategy,
		scorer:   o.scorer,
		observer: o.observer,
		logger:   o.logger.With("strategy", string(strategy)),
		result:   &Result{Strategy: strategy},
	}, nil
}

func (s *searcher) emit(e Event) {
	if s.observer == nil {
		return
	}
	e.Strategy = s.strategy
	s.observer(e)
}

func (s *searcher) score(subset Subset) (float64, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", s.strategy, err)
	}
	acc, err := s.scorer.Score(subset)
	if err != nil {
		return 0, fmt.Errorf("%s: scoring %s: %w", s.strategy, subset, err)
	}
	return acc, nil
}

// baseline scores a starting subset. Baselines are not part of the trace.
func (s *searcher) baseline(subset Subset) (float64, error) {
	acc, err := s.score(subset)
	if err != nil {
		return 0, err
	}
	s.result.Baselines = append(s.result.Baselines, Evaluation{Subset: subset.Clone(), Accuracy: acc})
	s.emit(Event{Kind: EventBaseline, Subset: subset, Accuracy: acc})
	return acc, nil
}

// candidate scores a subset and appends it to the trace.
func (s *searcher) candidate(subset Subset) (float64, error) {
	acc, err := s.score(subset)
	if err != nil {
		return 0, err
	}
	s.result.Trace = append(s.result.Trace, Evaluation{Subset: subset, Accuracy: acc})
	s.emit(Event{Kind: EventEvaluated, Subset: subset, Accuracy: acc})
	return acc, nil
}

func (s *searcher) start(initial Subset, accuracy float64) {
	s.result.Best = Evaluation{Subset: initial.Clone(), Accuracy: accuracy}
	s.emit(Event{Kind: EventStarted})
}

func (s *searcher) commit(action Action, feature int, subset Subset, accuracy, previous float64) {
	step := Step{
		Number:    len(s.result.Steps) + 1,
		Action:    action,
		Feature:   feature,
		Subset:    subset.Clone(),
		Accuracy:  accuracy,
		Decreased: accuracy < previous,
		TraceEnd:  len(s.result.Trace),
	}
	s.result.Steps = append(s.result.Steps, step)
	if accuracy > s.result.Best.Accuracy {
		s.result.Best = Evaluation{Subset: step.Subset, Accuracy: accuracy}
	}

	s.logger.Debug("step committed",
		"step", step.Number,
		"action", string(action),
		"feature", feature,
		"subset", subset.String(),
		"accuracy", accuracy)
	s.emit(Event{Kind: EventCommitted, Subset: step.Subset, Accuracy: accuracy, Step: &step})
}

func (s *searcher) noImprovement() {
	s.result.Stopped = true
	s.logger.Debug("no candidate scored above zero", "steps", len(s.result.Steps))
	s.emit(Event{Kind: EventNoImprovement})
}

func (s *searcher) finish(selected Subset, accuracy float64) *Result {
	s.result.Selected = selected.Clone()
	s.result.Accuracy = accuracy
	s.logger.Debug("search finished",
		"subset", selected.String(),
		"accuracy", accuracy,
		"evaluations", len(s.result.Trace))
	s.emit(Event{Kind: EventFinished, Subset: s.result.Selected, Accuracy: accuracy})
	return s.result
}
