package models

import (
	"errors"
	"sort"
)

var (
	ErrEmptyTrainingSet = errors.New("training set is empty")
	ErrLengthMismatch   = errors.New("feature matrix and labels have different lengths")
)

// Classifier is a model that labels a single feature vector.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(sample []float64) (Neighbor, error)
	GetName() string
	GetParams() map[string]any
	GetClasses() []int
	Reset()
}

type BaseModel struct {
	Name    string
	Params  map[string]any
	Classes []int
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}

func (bm *BaseModel) GetClasses() []int {
	return bm.Classes
}

// ExtractClasses returns the distinct labels in ascending order.
func ExtractClasses(y []int) []int {
	classMap := make(map[int]bool)
	for _, label := range y {
		classMap[label] = true
	}

	classes := make([]int, 0, len(classMap))
	for class := range classMap {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	return classes
}
