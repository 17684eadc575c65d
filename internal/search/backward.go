package search

import (
	"context"

	"featureselect/internal/data"
)

// BackwardElimination starts from all features and, for each step, removes
// the feature whose removal scores highest, until one feature is left. The
// last feature is never removed. A step whose candidates all score zero
// stops the search with a no-improvement event.
func BackwardElimination(ctx context.Context, ds *data.Dataset, totalFeatures int, opts ...Option) (*Result, error) {
	s, err := newSearcher(ctx, StrategyBackward, ds, totalFeatures, opts)
	if err != nil {
		return nil, err
	}

	selected := FullSubset(totalFeatures)
	bestAccuracy, err := s.baseline(selected)
	if err != nil {
		return nil, err
	}
	s.start(selected, bestAccuracy)

	for len(selected) > 1 {
		worstFeature := -1
		maxAccuracy := 0.0

		for _, feature := range selected {
			accuracy, err := s.candidate(selected.Without(feature))
			if err != nil {
				return nil, err
			}
			if accuracy > maxAccuracy {
				maxAccuracy = accuracy
				worstFeature = feature
			}
		}

		if worstFeature == -1 {
			s.noImprovement()
			break
		}

		selected = selected.Without(worstFeature)
		s.commit(ActionRemove, worstFeature, selected, maxAccuracy, bestAccuracy)
		bestAccuracy = maxAccuracy
	}

	return s.finish(selected, bestAccuracy), nil
}
