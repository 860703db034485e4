package classifier

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/yourusername/hoops-edge/internal/models"
)

// Logistic is an L2-regularized binary logistic regression with an unpenalized intercept.
type Logistic struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	C         float64   `json:"c"`
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logOnePlusExp computes log(1+e^z) without overflow.
func logOnePlusExp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

// BalancedWeights returns per-sample weights n/(2*count(class)).
func BalancedWeights(y []bool) []float64 {
	var pos int
	for _, v := range y {
		if v {
			pos++
		}
	}
	neg := len(y) - pos
	weights := make([]float64, len(y))
	for i, v := range y {
		count := neg
		if v {
			count = pos
		}
		if count > 0 {
			weights[i] = float64(len(y)) / (2 * float64(count))
		}
	}
	return weights
}

// FitLogistic minimizes 0.5*|w|^2 + C*sum(s_i * logloss_i) with L-BFGS.
func FitLogistic(x [][]float64, y []bool, sampleWeights []float64, c float64, maxIterations int) (*Logistic, error) {
	if len(x) == 0 || len(x) != len(y) || len(y) != len(sampleWeights) {
		return nil, fmt.Errorf("mismatched training data: %w", models.ErrInvalidInput)
	}
	cols := len(x[0])
	target := make([]float64, len(y))
	for i, v := range y {
		if v {
			target[i] = 1
		}
	}

	// params holds the weights followed by the intercept.
	margins := make([]float64, len(x))
	computeMargins := func(params []float64) {
		w, b := params[:cols], params[cols]
		for i, row := range x {
			margins[i] = floats.Dot(w, row) + b
		}
	}

	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			computeMargins(params)
			w := params[:cols]
			loss := 0.5 * floats.Dot(w, w)
			for i, z := range margins {
				loss += c * sampleWeights[i] * (logOnePlusExp(z) - target[i]*z)
			}
			return loss
		},
		Grad: func(grad, params []float64) {
			computeMargins(params)
			copy(grad[:cols], params[:cols])
			grad[cols] = 0
			for i, z := range margins {
				residual := c * sampleWeights[i] * (sigmoid(z) - target[i])
				floats.AddScaled(grad[:cols], residual, x[i])
				grad[cols] += residual
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   maxIterations,
		GradientThreshold: 1e-6,
	}
	result, err := optimize.Minimize(problem, make([]float64, cols+1), settings, &optimize.LBFGS{})
	if result == nil {
		if err == nil {
			err = errors.New("optimizer returned no result")
		}
		return nil, fmt.Errorf("failed to fit logistic regression: %w", err)
	}
	// A stalled line search still leaves the best point found.
	if err != nil && !isFinite(result.X) {
		return nil, fmt.Errorf("failed to fit logistic regression: %w", err)
	}

	weights := make([]float64, cols)
	copy(weights, result.X[:cols])
	return &Logistic{Weights: weights, Intercept: result.X[cols], C: c}, nil
}

// Probability returns P(over) for a standardized row.
func (l *Logistic) Probability(row []float64) float64 {
	return sigmoid(floats.Dot(l.Weights, row) + l.Intercept)
}

func isFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
