package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
)

var projectionBounds = Bounds{Lower: -2.5, Upper: 3}

func logsWithMinutes(minutes ...int) []models.GameLog {
	logs := make([]models.GameLog, len(minutes))
	for i, m := range minutes {
		logs[i] = models.GameLog{PlayerName: "test-player", MinutesPlayed: m, Points: i}
	}
	return logs
}

func TestRemoveOutliersShortInput(t *testing.T) {
	for _, logs := range [][]models.GameLog{nil, logsWithMinutes(), logsWithMinutes(12)} {
		kept, dropped := FilterGameLogs(logs, AttrMinutes, projectionBounds)
		assert.Equal(t, logs, kept)
		assert.Empty(t, dropped)
	}
}

func TestRemoveOutliersZeroMAD(t *testing.T) {
	logs := logsWithMinutes(30, 30, 30, 30)
	kept, dropped := FilterGameLogs(logs, AttrMinutes, projectionBounds)
	assert.Len(t, kept, 4)
	assert.Empty(t, dropped)
}

func TestRemoveOutliersDropsShortenedGame(t *testing.T) {
	logs := logsWithMinutes(30, 32, 31, 33, 5)
	kept, dropped := FilterGameLogs(logs, AttrMinutes, projectionBounds)

	require.Len(t, kept, 4)
	require.Len(t, dropped, 1)
	assert.Equal(t, 4, dropped[0].Index)
	assert.Equal(t, 5.0, dropped[0].Value)
	assert.InDelta(t, -17.537, dropped[0].ZScore, 0.001)
	for _, gl := range kept {
		assert.NotEqual(t, 5, gl.MinutesPlayed)
	}
	assert.Equal(t, 5, logs[4].MinutesPlayed, "input must not be modified")
}

func TestRemoveOutliersInclusiveBounds(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4}
	// median 2, MAD 1, z(4) = 1.349
	kept, _ := RemoveOutliers(values, func(v float64) float64 { return v }, Bounds{Lower: -1.349, Upper: 1.349})
	assert.Len(t, kept, 5)

	kept, dropped := RemoveOutliers(values, func(v float64) float64 { return v }, Bounds{Lower: -1, Upper: 1})
	assert.Equal(t, []float64{1, 2, 3}, kept)
	assert.Len(t, dropped, 2)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 3, 2}))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 1.0, Correlation(x, []float64{2, 4, 6, 8, 10}))
	assert.Equal(t, -1.0, Correlation(x, []float64{10, 8, 6, 4, 2}))
	assert.Equal(t, 0.8, Correlation(x, []float64{2, 1, 4, 3, 5}))
	assert.Equal(t, 0.0, Correlation(x, []float64{7, 7, 7, 7, 7}))
	assert.Equal(t, 0.0, Correlation(x[:1], []float64{1}))

	r := Correlation([]float64{1, 5, 2, 8, 3, 9}, []float64{12, 30, 18, 25, 20, 31})
	assert.GreaterOrEqual(t, r, -1.0)
	assert.LessOrEqual(t, r, 1.0)
	assert.InDelta(t, math.Round(r*1000), r*1000, 1e-9)
}

func TestMeanAndStdDev(t *testing.T) {
	mean, ok := Mean([]float64{10, 20, 30})
	require.True(t, ok)
	assert.Equal(t, 20.0, mean)

	std, ok := PopStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 2.0, std, 1e-9)

	_, ok = Mean(nil)
	assert.False(t, ok)
}

func TestShootingFrequencies(t *testing.T) {
	logs := []models.GameLog{
		{FGAttempted: 10, FGMade: 5, ThreePtAttempted: 6, ThreePtMade: 2},
		{FGAttempted: 10, FGMade: 4, ThreePtAttempted: 4, ThreePtMade: 2},
	}
	assert.InDelta(t, 50.0, ThreePointFrequency(logs), 1e-9)
	assert.InDelta(t, 50.0, TwoPointFrequency(logs), 1e-9)
	assert.InDelta(t, 0.55, EffectiveFieldGoal(logs), 1e-9)

	empty := []models.GameLog{{}}
	assert.Equal(t, 0.0, ThreePointFrequency(empty))
	assert.Equal(t, 0.0, TwoPointFrequency(empty))
	assert.Equal(t, 0.0, EffectiveFieldGoal(empty))
}

func TestHitRate(t *testing.T) {
	logs := []models.GameLog{{Points: 10}, {Points: 20}, {Points: 25}, {Points: 19}}
	rate, ok := HitRate(logs, 19.5)
	require.True(t, ok)
	assert.Equal(t, "50.0%", rate)

	_, ok = HitRate(nil, 19.5)
	assert.False(t, ok)
}

func TestRestDays(t *testing.T) {
	day := time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)
	others := []time.Time{
		day,
		day.AddDate(0, 0, -2),
		day.AddDate(0, 0, -5),
		day.AddDate(0, 0, 1),
	}
	assert.Equal(t, 2, RestDays(day, others, 4))
	assert.Equal(t, 4, RestDays(day, others[2:], 4))
	assert.Equal(t, 4, RestDays(day, nil, 4))
}
