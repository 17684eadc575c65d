package search

import (
	"context"

	"featureselect/internal/data"
)

// ForwardSelection starts from the empty subset and, for each step, adds the
// unselected feature whose addition scores highest. It runs until every
// feature is selected, even when accuracy drops; such steps are flagged as
// Decreased. A step whose candidates all score zero ends the search early.
func ForwardSelection(ctx context.Context, ds *data.Dataset, totalFeatures int, opts ...Option) (*Result, error) {
	s, err := newSearcher(ctx, StrategyForward, ds, totalFeatures, opts)
	if err != nil {
		return nil, err
	}

	defaultRate, err := s.baseline(Subset{})
	if err != nil {
		return nil, err
	}
	s.start(Subset{}, defaultRate)

	selected := Subset{}
	bestOverall := 0.0

	for step := 1; step <= totalFeatures; step++ {
		bestFeature := -1
		bestAccuracy := 0.0

		for feature := 1; feature <= totalFeatures; feature++ {
			if selected.Contains(feature) {
				continue
			}

			accuracy, err := s.candidate(selected.With(feature))
			if err != nil {
				return nil, err
			}
			if accuracy > bestAccuracy {
				bestAccuracy = accuracy
				bestFeature = feature
			}
		}

		if bestFeature == -1 {
			s.result.Stopped = true
			break
		}

		selected = selected.With(bestFeature)
		s.commit(ActionAdd, bestFeature, selected, bestAccuracy, bestOverall)
		bestOverall = bestAccuracy
	}

	return s.finish(selected, bestOverall), nil
}
