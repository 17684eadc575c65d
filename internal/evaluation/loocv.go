package evaluation

import (
	"fmt"

	"featureselect/internal/data"
	"featureselect/internal/models"
)

// Scorer returns the accuracy percentage of a feature subset.
type Scorer interface {
	Score(subset []int) (float64, error)
}

// LOOCV scores feature subsets by leave-one-out cross-validation with a
// 1-nearest-neighbor classifier. Instances are held out in table order.
type LOOCV struct {
	data   *data.Dataset
	labels []int
	calls  int
}

func NewLOOCV(ds *data.Dataset) (*LOOCV, error) {
	if ds == nil || ds.Len() < 2 {
		return nil, ErrTooFewInstances
	}
	return &LOOCV{data: ds, labels: ds.Labels()}, nil
}

// Prediction is the outcome for one held-out instance.
type Prediction struct {
	Index     int
	Predicted int
	Actual    int
	Distance  float64
	Correct   bool
}

// Report is the per-instance breakdown of one leave-one-out pass.
type Report struct {
	Subset      []int
	Predictions []Prediction
	Correct     int
	Total       int
	Accuracy    float64
}

// Score returns 100 * correct / total for subset. An empty subset projects
// every instance to a zero-length vector, so each held-out instance is
// labelled like the first other instance in the table.
func (cv *LOOCV) Score(subset []int) (float64, error) {
	report, err := cv.Evaluate(subset)
	if err != nil {
		return 0, err
	}
	return report.Accuracy, nil
}

func (cv *LOOCV) Evaluate(subset []int) (*Report, error) {
	X, err := cv.data.Project(subset)
	if err != nil {
		return nil, err
	}
	cv.calls++

	nn := models.NewNearestNeighbor()
	if err := nn.Fit(X, cv.labels); err != nil {
		return nil, err
	}

	report := &Report{
		Subset:      append([]int(nil), subset...),
		Predictions: make([]Prediction, len(X)),
		Total:       len(X),
	}

	for i, sample := range X {
		neighbor, err := nn.PredictExcluding(sample, i)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i+1, err)
		}

		p := Prediction{
			Index:     i,
			Predicted: neighbor.Label,
			Actual:    cv.labels[i],
			Distance:  neighbor.Distance,
		}
		p.Correct = p.Predicted == p.Actual
		if p.Correct {
			report.Correct++
		}
		report.Predictions[i] = p
	}

	report.Accuracy = float64(report.Correct) / float64(report.Total) * 100.0
	return report, nil
}

// Calls is the number of subsets evaluated so far.
func (cv *LOOCV) Calls() int {
	return cv.calls
}

// Metrics summarises the report as classification metrics.
func (r *Report) Metrics() *ClassificationMetrics {
	yTrue := make([]int, len(r.Predictions))
	yPred := make([]int, len(r.Predictions))
	for i, p := range r.Predictions {
		yTrue[i] = p.Actual
		yPred[i] = p.Predicted
	}
	return CalculateMetrics(yTrue, yPred, models.ExtractClasses(yTrue))
}
