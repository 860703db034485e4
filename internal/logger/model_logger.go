package logger

import (
	"github.com/sirupsen/logrus"
)

// ModelLogger provides dedicated logging for classifier training and scoring.
type ModelLogger struct {
	*logrus.Entry
}

// NewModelLogger creates a new model logger.
func NewModelLogger(baseLogger *logrus.Logger) *ModelLogger {
	return &ModelLogger{
		Entry: baseLogger.WithField("component", "classifier"),
	}
}

// LogDatasetBuilt logs how many labelled samples survived labelling and feature building.
func (ml *ModelLogger) LogDatasetBuilt(propType string, props, labelled, samples int, overRate float64) {
	ml.WithFields(logrus.Fields{
		"prop_type": propType,
		"props":     props,
		"labelled":  labelled,
		"samples":   samples,
		"over_rate": overRate,
	}).Info("Training dataset built")
}

// LogModelTraining logs model training events.
func (ml *ModelLogger) LogModelTraining(trainingDuration float64, regularization float64, cvRecall float64, metrics map[string]float64) {
	ml.WithFields(logrus.Fields{
		"training_duration": trainingDuration,
		"c":                 regularization,
		"cv_recall":         cvRecall,
		"metrics":           metrics,
	}).Info("Model training completed")
}

// LogPredictionSkipped logs a prop the classifier declined to score.
func (ml *ModelLogger) LogPredictionSkipped(player string, line float64, reason string) {
	ml.WithFields(logrus.Fields{
		"player": player,
		"line":   line,
		"reason": reason,
	}).Debug("Prediction skipped")
}
