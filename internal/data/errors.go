package data

import "errors"

var (
	// ErrEmptyDataset indicates a source produced no instances.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrRaggedRow indicates rows with different feature counts.
	ErrRaggedRow = errors.New("inconsistent feature count")

	// ErrNoFeatures indicates rows that carry a label but no features.
	ErrNoFeatures = errors.New("features cannot be empty")

	// ErrInvalidSubset indicates a feature index outside [1, NumFeatures] or a repeated index.
	ErrInvalidSubset = errors.New("invalid feature subset")
)
