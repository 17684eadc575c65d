package evaluation

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"featureselect/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDataset(labels []int, rows ...[]float64) *data.Dataset {
	ds := &data.Dataset{}
	for i, row := range rows {
		ds.Instances = append(ds.Instances, data.Instance{Features: row, Label: labels[i]})
	}
	return ds
}

func TestLOOCVThreeInstanceScenario(t *testing.T) {
	ds := makeDataset([]int{1, 2, 2}, []float64{0.0}, []float64{1.0}, []float64{0.9})

	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	report, err := cv.Evaluate([]int{1})
	require.NoError(t, err)

	require.Len(t, report.Predictions, 3)
	assert.Equal(t, 2, report.Predictions[0].Predicted)
	assert.False(t, report.Predictions[0].Correct)
	assert.InDelta(t, 0.9, report.Predictions[0].Distance, 1e-12)
	assert.True(t, report.Predictions[1].Correct)
	assert.InDelta(t, 0.1, report.Predictions[1].Distance, 1e-12)
	assert.True(t, report.Predictions[2].Correct)
	assert.InDelta(t, 0.1, report.Predictions[2].Distance, 1e-12)

	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 3, report.Total)
	assert.InDelta(t, 66.6667, report.Accuracy, 1e-3)
}

func TestLOOCVEmptySubsetUsesFirstOtherInstance(t *testing.T) {
	ds := makeDataset([]int{1, 2, 2, 1},
		[]float64{0.1}, []float64{0.2}, []float64{0.3}, []float64{0.4})

	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	first, err := cv.Score(nil)
	require.NoError(t, err)
	assert.Equal(t, 25.0, first)

	second, err := cv.Score([]int{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, cv.Calls())
}

func TestLOOCVScoreRange(t *testing.T) {
	ds := makeDataset([]int{1, 1, 2, 2, 1},
		[]float64{0.0, 0.9}, []float64{0.1, 0.2}, []float64{0.9, 0.4},
		[]float64{1.0, 0.0}, []float64{0.5, 1.0})

	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	for _, subset := range [][]int{{1}, {2}, {1, 2}, {2, 1}} {
		score, err := cv.Score(subset)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}

	score, err := cv.Score([]int{1})
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}

func TestLOOCVErrors(t *testing.T) {
	_, err := NewLOOCV(nil)
	assert.ErrorIs(t, err, ErrTooFewInstances)

	_, err = NewLOOCV(makeDataset([]int{1}, []float64{0.5}))
	assert.ErrorIs(t, err, ErrTooFewInstances)

	cv, err := NewLOOCV(makeDataset([]int{1, 2}, []float64{0.5}, []float64{0.7}))
	require.NoError(t, err)

	_, err = cv.Score([]int{2})
	assert.ErrorIs(t, err, data.ErrInvalidSubset)
	_, err = cv.Score([]int{0})
	assert.ErrorIs(t, err, data.ErrInvalidSubset)
	assert.Equal(t, 0, cv.Calls())
}

func TestReportMetrics(t *testing.T) {
	ds := makeDataset([]int{1, 2, 2}, []float64{0.0}, []float64{1.0}, []float64{0.9})
	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	report, err := cv.Evaluate([]int{1})
	require.NoError(t, err)

	m := report.Metrics()
	require.NotNil(t, m)
	assert.Equal(t, []int{1, 2}, m.Classes)
	assert.Equal(t, [][]int{{0, 1}, {0, 2}}, m.ConfusionMatrix)
	assert.InDelta(t, 2.0/3.0, m.Accuracy, 1e-12)
	assert.Equal(t, 0.0, m.PerClassMetrics[1].Recall)
	assert.Equal(t, 1.0, m.PerClassMetrics[2].Recall)
	assert.InDelta(t, 2.0/3.0, m.PerClassMetrics[2].Precision, 1e-12)
	assert.InDelta(t, 0.5, m.BalancedAccuracy, 1e-12)
	assert.Contains(t, m.FormatMetrics(), "Accuracy: 0.6667")
}

func TestCalculateMetricsInvalid(t *testing.T) {
	assert.Nil(t, CalculateMetrics([]int{1}, []int{1, 2}, []int{1, 2}))
	assert.Nil(t, CalculateMetrics(nil, nil, []int{1}))
}

func loadText(t *testing.T, content, method string) *data.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	ds, err := data.LoadDataset(path, method)
	require.NoError(t, err)
	return ds
}

func TestLOOCVNormalizedNearTies(t *testing.T) {
	ds := loadText(t, `2 2.2 2.7
1 2.2 1.2
2 0.4 3.0
2 2.1 0.8
2 1.4 2.8
1 3.0 2.8
`, "normalized")

	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	acc, err := cv.Score([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "33.3", fmt.Sprintf("%.1f", acc))
}

func TestLOOCVOverflowingDistances(t *testing.T) {
	ds := loadText(t, "1 1e200\n2 -1e200\n", "raw")

	cv, err := NewLOOCV(ds)
	require.NoError(t, err)

	report, err := cv.Evaluate([]int{1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Accuracy)
	assert.Equal(t, 2, report.Predictions[0].Predicted)
	assert.Equal(t, 1, report.Predictions[1].Predicted)
}
