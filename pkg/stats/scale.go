package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers and scales each column to zero mean and unit
// variance. Fit on the training partition, then Transform every partition
// with the training moments.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes per-column mean and standard deviation, ignoring NaN entries.
// Constant columns get unit scale so Transform stays finite.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("stats: empty matrix")
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	buf := make([]float64, 0, len(X))
	for j := 0; j < cols; j++ {
		buf = buf[:0]
		for i := range X {
			if !math.IsNaN(X[i][j]) {
				buf = append(buf, X[i][j])
			}
		}
		if len(buf) == 0 {
			s.Mean[j], s.Std[j] = 0, 1
			continue
		}
		mean, std := stat.MeanStdDev(buf, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j], s.Std[j] = mean, std
	}
	s.fit = true
	return nil
}

// Transform returns a scaled copy of X using the fitted moments. NaN entries
// stay NaN.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fit {
		return nil, errors.New("stats: scaler not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, errors.New("stats: column count differs from fitted data")
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on X and returns the scaled copy.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
