package logger

import (
	"github.com/sirupsen/logrus"
)

// EngineLogger provides dedicated logging for feature derivation and projection.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger creates a new engine logger.
func NewEngineLogger(baseLogger *logrus.Logger) *EngineLogger {
	return &EngineLogger{
		Entry: baseLogger.WithField("component", "engine"),
	}
}

// LogOutlierDropped logs a game removed by the outlier filter.
func (el *EngineLogger) LogOutlierDropped(player, attribute string, value, zScore float64) {
	el.WithFields(logrus.Fields{
		"player":    player,
		"attribute": attribute,
		"value":     value,
		"z_score":   zScore,
	}).Debug("Removing outlier")
}

// LogGameLogSkipped logs a game log that could not be mapped to context.
func (el *EngineLogger) LogGameLogSkipped(player, team, gameDate, reason string) {
	el.WithFields(logrus.Fields{
		"player":    player,
		"team":      team,
		"game_date": gameDate,
		"reason":    reason,
	}).Warn("Skipping game log")
}

// LogProfileWritten logs a stored correlation profile.
func (el *EngineLogger) LogProfileWritten(player, team string, games int, zeroed bool) {
	el.WithFields(logrus.Fields{
		"player": player,
		"team":   team,
		"games":  games,
		"zeroed": zeroed,
	}).Info("Correlation profile stored")
}

// LogProjection logs a computed projection and the adjustments that fired.
func (el *EngineLogger) LogProjection(player, opponent string, base, projection float64, adjustments map[string]float64) {
	el.WithFields(logrus.Fields{
		"player":      player,
		"opponent":    opponent,
		"base_mean":   base,
		"projection":  projection,
		"adjustments": adjustments,
	}).Debug("Projection computed")
}

// LogPlayerFailed logs a player whose row was aborted.
func (el *EngineLogger) LogPlayerFailed(player, team string, err error) {
	el.WithFields(logrus.Fields{
		"player": player,
		"team":   team,
		"error":  err.Error(),
	}).Error("Player derivation failed")
}

// LogCorrelationSummary logs the league-wide mean of each correlation field.
func (el *EngineLogger) LogCorrelationSummary(profiles int, means map[string]float64) {
	fields := logrus.Fields{"profiles": profiles}
	for name, mean := range means {
		fields[name] = mean
	}
	el.WithFields(fields).Info("Correlation summary")
}
