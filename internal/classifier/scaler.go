package classifier

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes each feature column to zero mean and unit variance.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler learns column means and population standard deviations.
// A constant column keeps a scale of 1.
func FitScaler(x [][]float64) *Scaler {
	if len(x) == 0 {
		return &Scaler{}
	}
	cols := len(x[0])
	s := &Scaler{Mean: make([]float64, cols), Scale: make([]float64, cols)}
	column := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		mean, std := stat.PopMeanStdDev(column, nil)
		s.Mean[j] = mean
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Scale[j] = std
	}
	return s
}

// Transform returns a standardized copy of one row.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		if j >= len(s.Mean) {
			out[j] = v
			continue
		}
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// TransformAll standardizes every row.
func (s *Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Transform(row)
	}
	return out
}
