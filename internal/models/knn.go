package models

// Neighbor is the training row closest to a query.
type Neighbor struct {
	Index    int
	Label    int
	Distance float64
}

// NearestNeighbor is a 1-NN classifier over Euclidean distance.
// When several training rows share the minimum distance the earliest one wins.
type NearestNeighbor struct {
	BaseModel
	XTrain [][]float64
	yTrain []int
}

var _ Classifier = (*NearestNeighbor)(nil)

func NewNearestNeighbor() *NearestNeighbor {
	return &NearestNeighbor{
		BaseModel: BaseModel{
			Name: "NearestNeighbor",
			Params: map[string]any{
				"k":        1,
				"distance": "euclidean",
			},
		},
	}
}

// Fit stores the training rows by reference; callers must not mutate them afterwards.
func (nn *NearestNeighbor) Fit(X [][]float64, y []int) error {
	if len(X) != len(y) {
		return ErrLengthMismatch
	}

	nn.XTrain = X
	nn.yTrain = y
	nn.Classes = ExtractClasses(y)
	return nil
}

func (nn *NearestNeighbor) Predict(sample []float64) (Neighbor, error) {
	return nn.PredictExcluding(sample, -1)
}

// PredictExcluding scans every training row except skip. A negative skip
// scans them all.
func (nn *NearestNeighbor) PredictExcluding(sample []float64, skip int) (Neighbor, error) {
	best := Neighbor{Index: -1, Label: -1}

	for i, row := range nn.XTrain {
		if i == skip {
			continue
		}
		// the first row scanned is always taken, even at +Inf
		dist := Euclidean(sample, row)
		if best.Index < 0 || dist < best.Distance {
			best = Neighbor{Index: i, Label: nn.yTrain[i], Distance: dist}
		}
	}

	if best.Index < 0 {
		return Neighbor{}, ErrEmptyTrainingSet
	}
	return best, nil
}

func (nn *NearestNeighbor) Len() int {
	return len(nn.XTrain)
}

func (nn *NearestNeighbor) Reset() {
	nn.XTrain = nil
	nn.yTrain = nil
	nn.Classes = nil
}
