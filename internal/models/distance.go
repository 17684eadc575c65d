package models

import (
	"fmt"
	"math"
)

// Euclidean returns the L2 distance between two equal-length vectors.
// Vectors of different length are a caller bug and cause a panic.
func Euclidean(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("models: distance between vectors of length %d and %d", len(a), len(b)))
	}

	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
