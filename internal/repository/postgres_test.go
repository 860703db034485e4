package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/testutil"
)

func setupRepositories(t *testing.T) (*Repositories, context.Context) {
	t.Helper()
	db := database.SetupTestDB(t)
	database.TruncateAll(t, db)

	repos, err := NewRepositories(db, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return repos, ctx
}

func TestPostgresGameLogRoundTrip(t *testing.T) {
	repos, ctx := setupRepositories(t)

	logs := []models.GameLog{
		testutil.GameLog("a", "boston-celtics", "MIA", 1, 3, 30, 20),
		testutil.GameLog("a", "boston-celtics", "NY", 12, 20, 30, 25),
	}
	n, err := repos.GameLogs.UpsertBatch(ctx, logs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	logs[0].Points = 33
	_, err = repos.GameLogs.UpsertBatch(ctx, logs[:1])
	require.NoError(t, err)

	got, err := repos.GameLogs.ListByPlayerTeam(ctx, "a", "boston-celtics", testutil.Season)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Fri 12/20", got[0].GameDate)
	assert.Equal(t, 33, got[1].Points)

	players, err := repos.GameLogs.ListPlayers(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestPostgresTeamStatsAndProps(t *testing.T) {
	repos, ctx := setupRepositories(t)

	require.NoError(t, repos.TeamStats.ReplaceSeason(ctx, testutil.Season, testutil.LeagueRows()))
	rows, err := repos.TeamStats.ListBySeason(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Len(t, rows, 30)

	props := []models.PropLine{
		testutil.PropLine("a", "miami-heat", "boston-celtics", "12-20-2022", 20.5),
		testutil.PropLine("a", "miami-heat", "boston-celtics", "12-20-2022", 21.5),
	}
	n, err := repos.Props.InsertBatch(ctx, props)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repos.Props.ListByDate(ctx, testutil.Season, models.PropPoints, "12-20-2022")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPostgresCorrelationsAndRuns(t *testing.T) {
	repos, ctx := setupRepositories(t)

	_, err := repos.Correlations.Get(ctx, "a", "miami-heat")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	profile := &models.CorrelationProfile{PlayerName: "a", TeamName: "miami-heat", Season: testutil.Season, Games: 12, Rest: -0.4}
	require.NoError(t, repos.Correlations.Upsert(ctx, profile))
	got, err := repos.Correlations.Get(ctx, "a", "miami-heat")
	require.NoError(t, err)
	assert.Equal(t, -0.4, got.Rest)
	assert.Equal(t, 12, got.Games)

	report := &models.Report{PropDate: "12-20-2022", PropType: models.PropPoints, CreatedAt: time.Now().UTC()}
	require.NoError(t, repos.ReportRuns.Save(ctx, report.Summary()))
	runs, err := repos.ReportRuns.Latest(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
