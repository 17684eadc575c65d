package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"featureselect/internal/preprocessing"

	"github.com/shopspring/decimal"
)

// Instance is one labelled row of the feature table.
type Instance struct {
	Features []float64
	Label    int
}

// Dataset is the normalized, read-only instance table handed to the search.
type Dataset struct {
	Instances    []Instance
	FeatureNames []string
	Classes      []string
	Source       string
}

// NewDataset builds a Dataset from a scaled feature matrix. Feature names
// default to Feature1..FeatureN when headers is shorter than the row width.
func NewDataset(X [][]float64, y []int, headers []string) (*Dataset, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, ErrEmptyDataset
	}

	nFeatures := len(X[0])
	instances := make([]Instance, len(X))
	for i, row := range X {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("%w at sample %d: expected %d, got %d", ErrRaggedRow, i, nFeatures, len(row))
		}
		instances[i] = Instance{Features: row, Label: y[i]}
	}

	names := make([]string, nFeatures)
	for j := range names {
		if j < len(headers) && strings.TrimSpace(headers[j]) != "" {
			names[j] = headers[j]
		} else {
			names[j] = fmt.Sprintf("Feature%d", j+1)
		}
	}

	return &Dataset{Instances: instances, FeatureNames: names}, nil
}

func (d *Dataset) Len() int {
	return len(d.Instances)
}

func (d *Dataset) NumFeatures() int {
	if len(d.Instances) == 0 {
		return 0
	}
	return len(d.Instances[0].Features)
}

func (d *Dataset) Labels() []int {
	y := make([]int, len(d.Instances))
	for i, inst := range d.Instances {
		y[i] = inst.Label
	}
	return y
}

// CheckSubset reports ErrInvalidSubset for an index outside
// [1, NumFeatures] or an index listed twice.
func (d *Dataset) CheckSubset(subset []int) error {
	n := d.NumFeatures()
	seen := make(map[int]bool, len(subset))
	for _, f := range subset {
		if f < 1 || f > n {
			return fmt.Errorf("%w: feature %d outside [1, %d]", ErrInvalidSubset, f, n)
		}
		if seen[f] {
			return fmt.Errorf("%w: feature %d listed twice", ErrInvalidSubset, f)
		}
		seen[f] = true
	}
	return nil
}

// Project returns every instance's features restricted to subset, in subset
// order. Index k maps to Features[k-1].
func (d *Dataset) Project(subset []int) ([][]float64, error) {
	if err := d.CheckSubset(subset); err != nil {
		return nil, err
	}

	X := make([][]float64, len(d.Instances))
	for i, inst := range d.Instances {
		row := make([]float64, len(subset))
		for k, f := range subset {
			row[k] = inst.Features[f-1]
		}
		X[i] = row
	}
	return X, nil
}

// ClassName returns the display name of a label.
func (d *Dataset) ClassName(label int) string {
	if label >= 0 && label < len(d.Classes) {
		return d.Classes[label]
	}
	return fmt.Sprintf("%d", label)
}

// Loader is implemented by every dataset reader.
type Loader interface {
	LoadData() ([][]decimal.Decimal, []int, []string, error)
}

// NewLoader picks the reader by file extension: .csv files use the CSV
// reader, everything else the whitespace text reader.
func NewLoader(filename string) Loader {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return &CSVReader{filename: filename}
	}
	return &TextReader{filename: filename}
}

// LoadDataset reads, validates and (unless method is "raw") min-max
// normalizes a dataset file.
func LoadDataset(filename, method string) (*Dataset, error) {
	loader := NewLoader(filename)
	X, y, headers, err := loader.LoadData()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}

	if err := NewDataValidator().ValidateDataset(X, y); err != nil {
		return nil, fmt.Errorf("validation of %s failed: %w", filename, err)
	}

	if method == "" {
		method = "normalized"
	}
	scaler := preprocessing.NewScaler(method)
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, fmt.Errorf("preprocessing %s failed: %w", filename, err)
	}

	ds, err := NewDataset(XScaled, y, headers)
	if err != nil {
		return nil, err
	}
	ds.Source = filename
	if cr, ok := loader.(*CSVReader); ok {
		ds.Classes = cr.Classes()
	}
	return ds, nil
}
