// Package classifier predicts the probability that a player's points clear a prop line.
package classifier

import (
	"fmt"

	"github.com/yourusername/hoops-edge/internal/models"
)

// Params configures training.
type Params struct {
	Folds             int
	TestSize          float64
	Seed              int64
	Cs                []float64
	MaxIterations     int
	DecisionThreshold float64
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		Folds:             5,
		TestSize:          0.2,
		Seed:              40,
		Cs:                LogSpace(-4, 4, 10),
		MaxIterations:     200,
		DecisionThreshold: 0.55,
	}
}

// Sample is one labelled prop.
type Sample struct {
	Prop     models.PropLine
	Features Features
	Over     bool
}

// Model is a fitted scaler plus logistic regression.
type Model struct {
	Scaler    *Scaler   `json:"scaler"`
	Logit     *Logistic `json:"logit"`
	Threshold float64   `json:"threshold"`
}

// Train standardizes the features, picks C by stratified cross-validated recall with
// balanced class weights, refits on the training split and scores the holdout.
func Train(samples []Sample, params Params) (*Model, Evaluation, error) {
	if len(samples) < 2*params.Folds {
		return nil, Evaluation{}, fmt.Errorf("%d samples for %d folds: %w", len(samples), params.Folds, models.ErrInsufficientSample)
	}
	if len(params.Cs) == 0 {
		return nil, Evaluation{}, fmt.Errorf("empty regularization grid: %w", models.ErrInvalidInput)
	}

	trainIdx, testIdx := TrainTestSplit(len(samples), params.TestSize, params.Seed)

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]bool, len(trainIdx))
	var overs int
	for k, i := range trainIdx {
		trainX[k] = samples[i].Features.Vector(samples[i].Prop.OverLine)
		trainY[k] = samples[i].Over
		if trainY[k] {
			overs++
		}
	}
	if overs == 0 || overs == len(trainY) {
		return nil, Evaluation{}, fmt.Errorf("training split holds a single class: %w", models.ErrInsufficientSample)
	}

	scaler := FitScaler(trainX)
	scaledX := scaler.TransformAll(trainX)

	best, err := selectC(scaledX, trainY, params.Cs, params.Folds, params.MaxIterations)
	if err != nil {
		return nil, Evaluation{}, fmt.Errorf("failed to cross-validate: %w", err)
	}
	logit, err := FitLogistic(scaledX, trainY, BalancedWeights(trainY), best.C, params.MaxIterations)
	if err != nil {
		return nil, Evaluation{}, err
	}

	model := &Model{Scaler: scaler, Logit: logit, Threshold: params.DecisionThreshold}

	actual := make([]bool, len(testIdx))
	probabilities := make([]float64, len(testIdx))
	for k, i := range testIdx {
		actual[k] = samples[i].Over
		probabilities[k] = model.OverProbability(samples[i].Features, samples[i].Prop.OverLine)
	}
	eval := Evaluate(actual, probabilities, params.DecisionThreshold)
	eval.Samples = len(samples)
	eval.TrainSamples = len(trainIdx)
	eval.C = best.C
	eval.CVRecall = best.Recall

	return model, eval, nil
}

// OverProbability returns P(points > line).
func (m *Model) OverProbability(f Features, line float64) float64 {
	return m.Logit.Probability(m.Scaler.Transform(f.Vector(line)))
}

// Predict returns the predicted class at line and the probability of that class.
func (m *Model) Predict(f Features, line float64) models.Prediction {
	p := m.OverProbability(f, line)
	over := p >= 0.5
	if !over {
		p = 1 - p
	}
	return models.Prediction{
		Line:        line,
		Over:        over,
		Probability: p,
		Confident:   p > m.Threshold,
	}
}
