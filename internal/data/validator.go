package data

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

func (dv *DataValidator) ValidateDataset(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}

	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	nFeatures := len(X[0])
	if nFeatures == 0 {
		return ErrNoFeatures
	}

	for i, sample := range X {
		if len(sample) != nFeatures {
			return fmt.Errorf("%w at sample %d: expected %d, got %d", ErrRaggedRow, i, nFeatures, len(sample))
		}
	}

	return nil
}

// FeatureStats summarises one column of the table.
type FeatureStats struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
}

// DatasetStats is what the info command prints.
type DatasetStats struct {
	Samples           int
	Features          int
	ClassDistribution map[int]int
	FeatureStats      []FeatureStats
}

// SortedClasses returns the labels of ClassDistribution in ascending order.
func (s DatasetStats) SortedClasses() []int {
	classes := make([]int, 0, len(s.ClassDistribution))
	for class := range s.ClassDistribution {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes
}

func (dv *DataValidator) GetDatasetStats(ds *Dataset) DatasetStats {
	stats := DatasetStats{
		Samples:           ds.Len(),
		Features:          ds.NumFeatures(),
		ClassDistribution: make(map[int]int),
	}
	if ds.Len() == 0 {
		return stats
	}

	for _, inst := range ds.Instances {
		stats.ClassDistribution[inst.Label]++
	}

	stats.FeatureStats = make([]FeatureStats, stats.Features)
	for j := 0; j < stats.Features; j++ {
		fs := FeatureStats{
			Name: ds.FeatureNames[j],
			Min:  ds.Instances[0].Features[j],
			Max:  ds.Instances[0].Features[j],
		}
		sum := 0.0
		for _, inst := range ds.Instances {
			v := inst.Features[j]
			if v < fs.Min {
				fs.Min = v
			}
			if v > fs.Max {
				fs.Max = v
			}
			sum += v
		}
		fs.Mean = sum / float64(ds.Len())
		stats.FeatureStats[j] = fs
	}

	return stats
}
