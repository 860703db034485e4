package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/testutil"
)

func TestMemoryGameLogsUpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	logs := []models.GameLog{
		testutil.GameLog("a", "boston-celtics", "MIA", 1, 3, 30, 20),
		testutil.GameLog("a", "boston-celtics", "NY", 12, 20, 30, 25),
		testutil.GameLog("a", "boston-celtics", "ATL", 11, 2, 30, 18),
		testutil.GameLog("b", "miami-heat", "BOS", 11, 2, 30, 12),
	}
	n, err := store.GameLogs.UpsertBatch(ctx, logs)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	replacement := testutil.GameLog("a", "boston-celtics", "ATL", 11, 2, 30, 40)
	_, err = store.GameLogs.UpsertBatch(ctx, []models.GameLog{replacement})
	require.NoError(t, err)

	got, err := store.GameLogs.ListByPlayerTeam(ctx, "a", "boston-celtics", testutil.Season)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Fri 11/2", "Fri 12/20", "Fri 1/3"},
		[]string{got[0].GameDate, got[1].GameDate, got[2].GameDate}, "january belongs to the second year")
	assert.Equal(t, 40, got[0].Points)

	players, err := store.GameLogs.ListPlayers(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Equal(t, []models.PlayerTeam{
		{PlayerName: "a", TeamName: "boston-celtics"},
		{PlayerName: "b", TeamName: "miami-heat"},
	}, players)
}

func TestMemoryTeamStatsReplaceSeason(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.TeamStats.ReplaceSeason(ctx, testutil.Season, testutil.LeagueRows()))
	rows, err := store.TeamStats.ListBySeason(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Len(t, rows, 30)

	require.NoError(t, store.TeamStats.ReplaceSeason(ctx, testutil.Season, testutil.LeagueRows()[:2]))
	rows, err = store.TeamStats.ListBySeason(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	err = store.TeamStats.ReplaceSeason(ctx, "2021-22", testutil.LeagueRows())
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestMemoryPropsAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	props := []models.PropLine{
		testutil.PropLine("a", "miami-heat", "boston-celtics", "12-20-2022", 20.5),
		testutil.PropLine("b", "boston-celtics", "miami-heat", "12-20-2022", 18.5),
		testutil.PropLine("a", "miami-heat", "boston-celtics", "12-20-2022", 21.5),
		testutil.PropLine("c", "boston-celtics", "miami-heat", "12-21-2022", 10.5),
	}
	_, err := store.Props.InsertBatch(ctx, props)
	require.NoError(t, err)
	assert.NotEqual(t, props[0].ID, props[2].ID, "snapshots are never merged")

	got, err := store.Props.ListByDate(ctx, testutil.Season, models.PropPoints, "12-20-2022")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "boston-celtics", got[0].TeamName)
	assert.Equal(t, 20.5, got[1].OverLine)
	assert.Equal(t, 21.5, got[2].OverLine)

	all, err := store.Props.ListBySeason(ctx, testutil.Season, models.PropPoints)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryCorrelations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Correlations.Get(ctx, "a", "miami-heat")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	profile := &models.CorrelationProfile{PlayerName: "a", TeamName: "miami-heat", Season: testutil.Season, Pace: 0.4}
	require.NoError(t, store.Correlations.Upsert(ctx, profile))
	profile.Pace = 0.9
	require.NoError(t, store.Correlations.Upsert(ctx, profile))

	got, err := store.Correlations.Get(ctx, "a", "miami-heat")
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Pace)

	list, err := store.Correlations.ListBySeason(ctx, testutil.Season)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryReportRunsLatest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.ReportRuns.Save(ctx, models.ReportRun{PropDate: "01-01-2023", Rows: i, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	runs, err := store.ReportRuns.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Rows)
	assert.Equal(t, 1, runs[1].Rows)
}

type mockGameLogs struct {
	mock.Mock
}

func (m *mockGameLogs) UpsertBatch(ctx context.Context, logs []models.GameLog) (int, error) {
	args := m.Called(ctx, logs)
	return args.Int(0), args.Error(1)
}

func (m *mockGameLogs) ListByPlayerTeam(ctx context.Context, player, team, season string) ([]models.GameLog, error) {
	args := m.Called(ctx, player, team, season)
	return args.Get(0).([]models.GameLog), args.Error(1)
}

func (m *mockGameLogs) ListByPlayer(ctx context.Context, player, season string) ([]models.GameLog, error) {
	args := m.Called(ctx, player, season)
	return args.Get(0).([]models.GameLog), args.Error(1)
}

func (m *mockGameLogs) ListPlayers(ctx context.Context, season string) ([]models.PlayerTeam, error) {
	args := m.Called(ctx, season)
	return args.Get(0).([]models.PlayerTeam), args.Error(1)
}

func TestCachedGameLogRepository(t *testing.T) {
	ctx := context.Background()
	logs := []models.GameLog{testutil.GameLog("a", "miami-heat", "BOS", 12, 1, 30, 20)}

	next := &mockGameLogs{}
	next.On("ListByPlayerTeam", ctx, "a", "miami-heat", testutil.Season).Return(logs, nil).Twice()
	next.On("UpsertBatch", ctx, mock.Anything).Return(1, nil).Once()

	cached := NewCachedGameLogRepository(next, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := cached.ListByPlayerTeam(ctx, "a", "miami-heat", testutil.Season)
		require.NoError(t, err)
		assert.Equal(t, logs, got)
	}
	hits, misses, _ := cached.Stats.Ratio()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)

	_, err := cached.UpsertBatch(ctx, logs)
	require.NoError(t, err)
	_, err = cached.ListByPlayerTeam(ctx, "a", "miami-heat", testutil.Season)
	require.NoError(t, err)

	next.AssertExpectations(t)
}

func TestCachedGameLogRepositoryDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &mockGameLogs{}
	next.On("ListByPlayer", ctx, "a", testutil.Season).Return([]models.GameLog(nil), errors.New("boom")).Twice()

	cached := NewCachedGameLogRepository(next, time.Minute)
	_, err := cached.ListByPlayer(ctx, "a", testutil.Season)
	assert.Error(t, err)
	_, err = cached.ListByPlayer(ctx, "a", testutil.Season)
	assert.Error(t, err)
	next.AssertExpectations(t)
}

func TestCachedCorrelationRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cached := NewCachedCorrelationRepository(store.Correlations, time.Minute)

	_, err := cached.Get(ctx, "a", "miami-heat")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = cached.Get(ctx, "a", "miami-heat")
	assert.True(t, errors.Is(err, models.ErrNotFound), "misses are cached too")

	require.NoError(t, cached.Upsert(ctx, &models.CorrelationProfile{PlayerName: "a", TeamName: "miami-heat", Pace: 0.3}))
	got, err := cached.Get(ctx, "a", "miami-heat")
	require.NoError(t, err)
	assert.Equal(t, 0.3, got.Pace)

	got.Pace = 1
	again, err := cached.Get(ctx, "a", "miami-heat")
	require.NoError(t, err)
	assert.Equal(t, 0.3, again.Pace, "callers get copies")

	hits, misses, _ := cached.Stats.Ratio()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(2), misses)
}
