package evaluation

import (
	"fmt"
	"math"
)

type ClassificationMetrics struct {
	Accuracy         float64
	BalancedAccuracy float64
	MacroPrecision   float64
	MacroRecall      float64
	MacroF1          float64
	PerClassMetrics  map[int]ClassMetrics
	ConfusionMatrix  [][]int
	Classes          []int
	NumSamples       int
}

type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1Score   float64
	Support   int
}

// CalculateMetrics compares true and predicted labels. Rows of the
// confusion matrix are true classes, columns predicted, both in the order
// of classes.
func CalculateMetrics(yTrue, yPred []int, classes []int) *ClassificationMetrics {
	if len(yTrue) != len(yPred) || len(yTrue) == 0 || len(classes) == 0 {
		return nil
	}

	confusionMatrix := buildConfusionMatrix(yTrue, yPred, classes)

	classSupport := make(map[int]int)
	for _, class := range yTrue {
		classSupport[class]++
	}

	perClassMetrics := make(map[int]ClassMetrics)
	var macroPrec, macroRec, macroF1 float64

	for i, class := range classes {
		tp := confusionMatrix[i][i]
		fp := 0
		fn := 0
		for j := range classes {
			if j != i {
				fp += confusionMatrix[j][i]
				fn += confusionMatrix[i][j]
			}
		}

		precision := safeDivide(float64(tp), float64(tp+fp))
		recall := safeDivide(float64(tp), float64(tp+fn))
		f1 := safeDivide(2*precision*recall, precision+recall)

		perClassMetrics[class] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1Score:   f1,
			Support:   classSupport[class],
		}

		macroPrec += precision
		macroRec += recall
		macroF1 += f1
	}

	numClasses := float64(len(classes))

	correct := 0
	for i, pred := range yPred {
		if pred == yTrue[i] {
			correct++
		}
	}

	return &ClassificationMetrics{
		Accuracy:         float64(correct) / float64(len(yTrue)),
		BalancedAccuracy: macroRec / numClasses,
		MacroPrecision:   macroPrec / numClasses,
		MacroRecall:      macroRec / numClasses,
		MacroF1:          macroF1 / numClasses,
		PerClassMetrics:  perClassMetrics,
		ConfusionMatrix:  confusionMatrix,
		Classes:          classes,
		NumSamples:       len(yTrue),
	}
}

func buildConfusionMatrix(yTrue, yPred []int, classes []int) [][]int {
	numClasses := len(classes)
	matrix := make([][]int, numClasses)
	for i := range matrix {
		matrix[i] = make([]int, numClasses)
	}

	classToIdx := make(map[int]int)
	for i, class := range classes {
		classToIdx[class] = i
	}

	for i := range yTrue {
		trueIdx, trueOk := classToIdx[yTrue[i]]
		predIdx, predOk := classToIdx[yPred[i]]
		if trueOk && predOk {
			matrix[trueIdx][predIdx]++
		}
	}

	return matrix
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}

func (m *ClassificationMetrics) FormatMetrics() string {
	result := fmt.Sprintf("Accuracy: %.4f\n", m.Accuracy)
	result += fmt.Sprintf("Balanced Accuracy: %.4f\n", m.BalancedAccuracy)
	result += fmt.Sprintf("Macro Avg - Precision: %.4f, Recall: %.4f, F1: %.4f\n",
		m.MacroPrecision, m.MacroRecall, m.MacroF1)
	return result
}
