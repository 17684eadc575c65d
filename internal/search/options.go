package search

import (
	"log/slog"

	"featureselect/internal/evaluation"
)

// Observer receives progress events as a search runs.
type Observer func(Event)

type options struct {
	scorer   evaluation.Scorer
	observer Observer
	logger   *slog.Logger
}

type Option func(*options)

// WithScorer replaces the default leave-one-out scorer.
func WithScorer(scorer evaluation.Scorer) Option {
	return func(o *options) {
		o.scorer = scorer
	}
}

// WithObserver registers a progress callback. Several observers may be given.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if o.observer == nil {
			o.observer = observer
			return
		}
		prev := o.observer
		o.observer = func(e Event) {
			prev(e)
			observer(e)
		}
	}
}

// WithLogger logs committed steps at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
