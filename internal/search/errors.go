package search

import "errors"

var (
	// ErrNoFeatures indicates a search over zero features.
	ErrNoFeatures = errors.New("total features must be positive")

	// ErrTooManyFeatures indicates totalFeatures exceeds the dataset width.
	ErrTooManyFeatures = errors.New("total features exceeds dataset width")

	// ErrUnknownStrategy indicates a strategy name that ParseStrategy does not know.
	ErrUnknownStrategy = errors.New("unknown search strategy")
)
