package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestEngineLoggerGameLogSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogGameLogSkipped("jayson-tatum", "boston-celtics", "Fri 12/16", "unknown opponent code XYZ")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "engine", logEntry["component"])
	assert.Equal(t, "jayson-tatum", logEntry["player"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestEngineLoggerPlayerFailed(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogPlayerFailed("luka-doncic", "dallas-mavericks", errors.New("store unavailable"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "store unavailable", logEntry["error"])
	assert.Equal(t, "error", logEntry["level"])
}

func TestEngineLoggerCorrelationSummary(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogCorrelationSummary(12, map[string]float64{"pace_corr": 0.125})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(12), logEntry["profiles"])
	assert.Equal(t, 0.125, logEntry["pace_corr"])
}

func TestModelLoggerTraining(t *testing.T) {
	log, buf := setupTestLogger()
	modelLogger := NewModelLogger(log)

	modelLogger.LogModelTraining(1.5, 0.01, 0.62, map[string]float64{"recall": 0.6})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "classifier", logEntry["component"])
	assert.Equal(t, 0.01, logEntry["c"])
}
