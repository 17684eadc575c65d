package preprocessing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scaler rescales each feature column. "normalized" (alias "minmax") maps
// the column onto [0,1]; a constant column maps to 0. "raw" (alias "none")
// copies values unchanged.
type Scaler struct {
	ScaleType  string
	IsFitted   bool
	FeatureMin []decimal.Decimal
	FeatureMax []decimal.Decimal
}

func NewScaler(scaleType string) *Scaler {
	return &Scaler{
		ScaleType: scaleType,
		IsFitted:  false,
	}
}

func (s *Scaler) Fit(X [][]decimal.Decimal) error {
	if len(X) == 0 {
		return fmt.Errorf("empty dataset")
	}

	switch s.ScaleType {
	case "minmax", "normalized":
		s.fitMinMax(X)
	case "raw", "none":
	default:
		return fmt.Errorf("unknown scale type: %s", s.ScaleType)
	}

	s.IsFitted = true
	return nil
}

// Transform converts X to float64, rescaling each column when the scaler is
// min-max. Bounds are found on the decimals; the subtraction and division
// run in float64 so results match a plain double computation bit for bit.
func (s *Scaler) Transform(X [][]decimal.Decimal) ([][]float64, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	raw := s.ScaleType == "raw" || s.ScaleType == "none"
	result := make([][]float64, len(X))
	for i := range X {
		result[i] = make([]float64, len(X[i]))
		if !raw && len(X[i]) != len(s.FeatureMin) {
			return nil, fmt.Errorf("sample %d has %d features, scaler was fitted on %d", i, len(X[i]), len(s.FeatureMin))
		}
		for j, v := range X[i] {
			if raw {
				result[i][j] = v.InexactFloat64()
				continue
			}
			result[i][j] = s.transformMinMax(v.InexactFloat64(), j)
		}
	}

	return result, nil
}

func (s *Scaler) FitTransform(X [][]decimal.Decimal) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *Scaler) fitMinMax(X [][]decimal.Decimal) {
	nFeatures := len(X[0])
	s.FeatureMin = make([]decimal.Decimal, nFeatures)
	s.FeatureMax = make([]decimal.Decimal, nFeatures)

	for j := 0; j < nFeatures; j++ {
		s.FeatureMin[j] = X[0][j]
		s.FeatureMax[j] = X[0][j]

		for i := 1; i < len(X); i++ {
			if X[i][j].LessThan(s.FeatureMin[j]) {
				s.FeatureMin[j] = X[i][j]
			}
			if X[i][j].GreaterThan(s.FeatureMax[j]) {
				s.FeatureMax[j] = X[i][j]
			}
		}
	}
}

func (s *Scaler) transformMinMax(value float64, featureIndex int) float64 {
	lo := s.FeatureMin[featureIndex].InexactFloat64()
	hi := s.FeatureMax[featureIndex].InexactFloat64()
	if hi-lo == 0 {
		return 0
	}
	return (value - lo) / (hi - lo)
}
