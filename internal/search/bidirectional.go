package search

import (
	"context"

	"featureselect/internal/data"
)

// BidirectionalSearch keeps a growing forward subset and a shrinking
// backward subset. Each round it finds the best feature to add to the
// forward side and the best feature to remove from the backward side, then
// commits whichever scores higher, removal winning ties:
//
//   - an addition is appended to the forward side and dropped from the
//     backward side;
//   - a removal is dropped from the backward side and from the forward side.
//
// The search ends once the backward side is empty and the forward side holds
// every feature, or when neither side has a candidate scoring above zero.
// The result is the side committed last with that round's score.
func BidirectionalSearch(ctx context.Context, ds *data.Dataset, totalFeatures int, opts ...Option) (*Result, error) {
	s, err := newSearcher(ctx, StrategyBidirectional, ds, totalFeatures, opts)
	if err != nil {
		return nil, err
	}

	forward := Subset{}
	backward := FullSubset(totalFeatures)

	defaultRate, err := s.baseline(forward)
	if err != nil {
		return nil, err
	}
	fullRate, err := s.baseline(backward)
	if err != nil {
		return nil, err
	}

	selected, accuracy := backward.Clone(), fullRate
	if defaultRate > fullRate {
		s.start(forward, defaultRate)
	} else {
		s.start(backward, fullRate)
	}

	previous := 0.0
	for len(backward) > 0 || len(forward) < totalFeatures {
		addFeature, addAccuracy, err := s.bestAddition(forward, totalFeatures)
		if err != nil {
			return nil, err
		}
		removeFeature, removeAccuracy, err := s.bestRemoval(backward)
		if err != nil {
			return nil, err
		}

		switch {
		case addFeature != -1 && addAccuracy > removeAccuracy:
			forward = forward.With(addFeature)
			backward = backward.Without(addFeature)
			selected, accuracy = forward.Clone(), addAccuracy
			s.commit(ActionAdd, addFeature, forward, addAccuracy, previous)
		case removeFeature != -1:
			backward = backward.Without(removeFeature)
			forward = forward.Without(removeFeature)
			selected, accuracy = backward.Clone(), removeAccuracy
			s.commit(ActionRemove, removeFeature, backward, removeAccuracy, previous)
		default:
			s.noImprovement()
			return s.finish(selected, accuracy), nil
		}
		previous = accuracy
	}

	return s.finish(selected, accuracy), nil
}

// bestAddition scans features missing from forward in ascending order.
func (s *searcher) bestAddition(forward Subset, totalFeatures int) (int, float64, error) {
	bestFeature := -1
	bestAccuracy := 0.0

	for feature := 1; feature <= totalFeatures; feature++ {
		if forward.Contains(feature) {
			continue
		}
		accuracy, err := s.candidate(forward.With(feature))
		if err != nil {
			return -1, 0, err
		}
		if accuracy > bestAccuracy {
			bestAccuracy = accuracy
			bestFeature = feature
		}
	}
	return bestFeature, bestAccuracy, nil
}

// bestRemoval scans members of backward in their current order.
func (s *searcher) bestRemoval(backward Subset) (int, float64, error) {
	bestFeature := -1
	bestAccuracy := 0.0

	for _, feature := range backward {
		accuracy, err := s.candidate(backward.Without(feature))
		if err != nil {
			return -1, 0, err
		}
		if accuracy > bestAccuracy {
			bestAccuracy = accuracy
			bestFeature = feature
		}
	}
	return bestFeature, bestAccuracy, nil
}
