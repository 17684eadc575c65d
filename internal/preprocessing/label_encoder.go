package preprocessing

import (
	"fmt"
)

// LabelEncoder maps class names to consecutive integers in the order the
// names first appear.
type LabelEncoder struct {
	ClassToInt map[string]int
	IntToClass map[int]string
	IsFitted   bool
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		ClassToInt: make(map[string]int),
		IntToClass: make(map[int]string),
		IsFitted:   false,
	}
}

func (le *LabelEncoder) Fit(labels []string) {
	le.ClassToInt = make(map[string]int)
	le.IntToClass = make(map[int]string)

	for _, label := range labels {
		if _, ok := le.ClassToInt[label]; ok {
			continue
		}
		idx := len(le.ClassToInt)
		le.ClassToInt[label] = idx
		le.IntToClass[idx] = label
	}

	le.IsFitted = true
}

func (le *LabelEncoder) Transform(labels []string) ([]int, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("LabelEncoder must be fitted before transform")
	}

	result := make([]int, len(labels))
	for i, label := range labels {
		if val, ok := le.ClassToInt[label]; ok {
			result[i] = val
		} else {
			return nil, fmt.Errorf("unknown label: %s", label)
		}
	}

	return result, nil
}

func (le *LabelEncoder) FitTransform(labels []string) ([]int, error) {
	le.Fit(labels)
	return le.Transform(labels)
}

func (le *LabelEncoder) InverseTransform(encoded []int) ([]string, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("LabelEncoder must be fitted before inverse transform")
	}

	result := make([]string, len(encoded))
	for i, val := range encoded {
		if label, ok := le.IntToClass[val]; ok {
			result[i] = label
		} else {
			return nil, fmt.Errorf("unknown encoding: %d", val)
		}
	}

	return result, nil
}

// Classes returns the class names indexed by their code.
func (le *LabelEncoder) Classes() []string {
	classes := make([]string, len(le.IntToClass))
	for idx, label := range le.IntToClass {
		classes[idx] = label
	}
	return classes
}
