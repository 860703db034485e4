package correlation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/testutil"
)

const player = "test-guard"

func codeFor(t *testing.T, team string) string {
	t.Helper()
	code, ok := nba.TeamCode(team)
	require.True(t, ok, team)
	return code
}

// linearLogs plays the player's team (names[0]) against teams 1..n, scoring more against faster teams.
func linearLogs(t *testing.T, n int) []models.GameLog {
	names := nba.TeamNames()
	logs := make([]models.GameLog, n)
	for i := 0; i < n; i++ {
		logs[i] = testutil.GameLog(player, names[0], codeFor(t, names[i+1]), 12, 1+2*i, 32, 10+2*i)
	}
	return logs
}

func TestComputeRequiresTwoGames(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	_, _, err := engine.Compute(player, names[0], linearLogs(t, 1))
	assert.True(t, errors.Is(err, models.ErrInsufficientSample))
}

func TestComputeSmallSampleIsZero(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	for _, n := range []int{2, 3, 4} {
		profile, skipped, err := engine.Compute(player, names[0], linearLogs(t, n))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		for _, signal := range models.AllSignals {
			assert.Equal(t, 0.0, profile.Get(signal), "%d games %s", n, signal)
		}
	}
}

func TestComputeLinearSignals(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	profile, skipped, err := engine.Compute(player, names[0], linearLogs(t, 8))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, 8, profile.Games)
	assert.Equal(t, testutil.Season, profile.Season)

	assert.Equal(t, 1.0, profile.Pace)
	assert.Equal(t, 1.0, profile.DefRtg)
	assert.Equal(t, 1.0, profile.TwoPt)
	assert.Equal(t, 1.0, profile.ThreePt)
	assert.Equal(t, 1.0, profile.DefReboundPer)
	assert.Equal(t, -1.0, profile.OffReboundPer, "rank runs opposite to the raw value")

	for _, signal := range models.AllSignals {
		v := profile.Get(signal)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.InDelta(t, math.Round(v*1000), v*1000, 1e-9)
	}
}

func TestComputeSkipsUnresolvedOpponent(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	logs := linearLogs(t, 7)
	logs[2].Opponent = "vsXYZ"
	logs[4].Result = "postponed"

	profile, skipped, err := engine.Compute(player, names[0], logs)
	require.NoError(t, err)
	require.Len(t, skipped, 2)
	assert.True(t, errors.Is(skipped[0].Err, models.ErrMissingContext))
	assert.Equal(t, logs[2].GameDate, skipped[0].GameDate)
	assert.Equal(t, 5, profile.Games)
	assert.Equal(t, 1.0, profile.Pace)
}

func TestComputeSkippedGamesCountTowardSmallSample(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	logs := linearLogs(t, 5)
	for i := 2; i < 5; i++ {
		logs[i].Opponent = "vsXYZ"
	}

	profile, skipped, err := engine.Compute(player, names[0], logs)
	require.NoError(t, err)
	assert.Len(t, skipped, 3)
	assert.Equal(t, 2, profile.Games)
	for _, signal := range models.AllSignals {
		assert.Equal(t, 0.0, profile.Get(signal), string(signal))
	}
}

func TestComputeUnknownTeam(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())

	_, _, err := engine.Compute(player, "seattle-supersonics", linearLogs(t, 6))
	assert.True(t, errors.Is(err, models.ErrMissingContext))
}

func TestComputeRestSeries(t *testing.T) {
	engine := NewEngine(testutil.League(t), DefaultParams())
	names := nba.TeamNames()

	days := []int{1, 2, 6, 7, 12, 13}
	points := []int{10, 20, 11, 21, 12, 22}
	logs := make([]models.GameLog, len(days))
	for i := range days {
		logs[i] = testutil.GameLog(player, names[0], codeFor(t, names[1]), 12, days[i], 30, points[i])
	}

	profile, _, err := engine.Compute(player, names[0], logs)
	require.NoError(t, err)
	// back-to-backs score more; the first game of each pair carries a capped 4.
	assert.Equal(t, -0.987, profile.Rest)
	assert.Equal(t, 0.0, profile.Pace, "constant opponent has no defined correlation")
}

func TestSummarize(t *testing.T) {
	profiles := []models.CorrelationProfile{
		{Pace: 0.2, Rest: -0.1},
		{Pace: 0.4, Rest: 0.3},
	}
	means := Summarize(profiles)
	assert.InDelta(t, 0.3, means["pace_corr"], 1e-9)
	assert.InDelta(t, 0.1, means["rest_corr"], 1e-9)
	assert.Equal(t, 0.0, means["total_corr"])
	assert.Empty(t, Summarize(nil))
}
