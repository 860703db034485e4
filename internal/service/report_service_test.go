package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/classifier"
	"github.com/yourusername/hoops-edge/internal/correlation"
	"github.com/yourusername/hoops-edge/internal/logger"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/projection"
	"github.com/yourusername/hoops-edge/internal/repository"
	"github.com/yourusername/hoops-edge/internal/stats"
	"github.com/yourusername/hoops-edge/internal/testutil"
)

const reportDate = "12-31-2022"

type reportFixture struct {
	repos    *repository.Repositories
	team     string
	opponent string
}

// seedSeason stores a season where "scorer" plays every day from 11/1 to 12/30 against two
// alternating opponents and scores about 25. From 11/10 each game carries a prop whose line
// alternates between 10 (over) and 40 (under).
func seedSeason(t *testing.T) reportFixture {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	seedLeague(t, repos)

	names := nba.TeamNames()
	f := reportFixture{repos: repos, team: names[0], opponent: names[5]}
	opponents := []string{names[5], names[6]}

	var logs []models.GameLog
	var props []models.PropLine
	game := 0
	for _, month := range []struct{ month, days int }{{11, 30}, {12, 30}} {
		for day := 1; day <= month.days; day++ {
			opp := opponents[game%2]
			logs = append(logs, testutil.GameLog("scorer", f.team, teamCode(t, opp), month.month, day, 32, 24+game%3))
			if month.month == 12 || day >= 10 {
				line := 10.0
				if game%2 == 1 {
					line = 40
				}
				props = append(props, testutil.PropLine("scorer", f.team, opp, fmt.Sprintf("%02d-%02d-2022", month.month, day), line))
			}
			game++
		}
	}
	// "bench" has games, but never against the report opponent.
	for day := 1; day <= 5; day++ {
		logs = append(logs, testutil.GameLog("bench", f.team, teamCode(t, names[9]), 12, day, 20, 8))
	}

	_, err := repos.GameLogs.UpsertBatch(ctx, logs)
	require.NoError(t, err)

	props = append(props,
		testutil.PropLine("scorer", f.team, f.opponent, reportDate, 10),
		testutil.PropLine("bench", f.team, f.opponent, reportDate, 7.5),
		testutil.PropLine("ghost", f.team, f.opponent, reportDate, 12.5),
	)
	_, err = repos.Props.InsertBatch(ctx, props)
	require.NoError(t, err)
	return f
}

func newTestReportService(repos *repository.Repositories) *ReportService {
	base := quietLogger()
	classifierParams := classifier.DefaultParams()
	classifierParams.Cs = classifier.LogSpace(-2, 2, 5)

	training := NewTrainingService(
		repos,
		Seasons{Current: testutil.Season, Last: "2021-22"},
		classifier.DefaultFeatureParams(),
		classifierParams,
		logger.NewModelLogger(base),
	)
	return NewReportService(training, ReportParams{
		Projection:    projection.DefaultParams(),
		HitRateBounds: stats.Bounds{Lower: -2.6, Upper: 3},
		AltLines:      []float64{14.5, 19.5, 24.5, 29.5},
		RestCeiling:   4,
	}, logger.NewEngineLogger(base), logger.NewModelLogger(base))
}

func TestTrainingDataset(t *testing.T) {
	f := seedSeason(t)
	svc := newTestReportService(f.repos)

	samples, err := svc.training.Dataset(context.Background(), testutil.League(t), models.PropPoints)
	require.NoError(t, err)
	// 51 game-day props; the report-day props have no game log yet.
	require.Len(t, samples, 51)
	for _, s := range samples {
		assert.Equal(t, s.Prop.OverLine == 10, s.Over, s.Prop.ScrapedDate)
	}
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()
	f := seedSeason(t)

	corr := NewCorrelationService(f.repos, correlation.DefaultParams(), logger.NewEngineLogger(quietLogger()))
	_, err := corr.Run(ctx, testutil.Season)
	require.NoError(t, err)

	svc := newTestReportService(f.repos)
	report, err := svc.Generate(ctx, ReportRequest{PropDate: reportDate, PropType: models.PropPoints})
	require.NoError(t, err)

	assert.Equal(t, reportDate, report.PropDate)
	require.Len(t, report.Teams, 1)
	team := report.Teams[0]
	assert.Equal(t, f.team, team.TeamName)
	assert.Equal(t, -3.5, team.Spread)

	require.Len(t, team.Rows, 1, "bench has no history against the opponent and is dropped")
	row := team.Rows[0]
	assert.Equal(t, "scorer", row.PlayerName)
	assert.Equal(t, report.RunID, row.RunID)
	assert.Equal(t, "Pick Over", row.Class)
	assert.True(t, strings.HasSuffix(row.Probability, "%"))
	assert.True(t, strings.HasSuffix(row.Edge, "%"))
	assert.Equal(t, "100.0%", row.HitRate)
	assert.NotEmpty(t, row.Projection)
	require.Len(t, row.AltLines, 4)
	for _, alt := range row.AltLines {
		assert.NotEmpty(t, alt.Class)
		assert.NotEmpty(t, alt.Probability)
	}

	require.Len(t, report.Failures, 1)
	assert.Contains(t, report.Failures[0], "ghost")

	runs, err := f.repos.ReportRuns.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, report.RunID, runs[0].RunID)
	assert.Equal(t, 1, runs[0].Rows)
	assert.Equal(t, 1, runs[0].Failures)
}

func TestGenerateReportWithoutProps(t *testing.T) {
	f := seedSeason(t)
	svc := newTestReportService(f.repos)

	_, err := svc.Generate(context.Background(), ReportRequest{PropDate: "01-15-2023", PropType: models.PropPoints})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Generate(context.Background(), ReportRequest{PropDate: "2023-01-15", PropType: models.PropPoints})
	assert.Error(t, err)
}

func TestGamesBefore(t *testing.T) {
	day, err := nba.PropDate("12-03-2022")
	require.NoError(t, err)

	logs := []models.GameLog{
		testutil.GameLog("p", "boston-celtics", "MIA", 12, 1, 30, 10),
		testutil.GameLog("p", "boston-celtics", "MIA", 12, 3, 30, 20),
		testutil.GameLog("p", "boston-celtics", "MIA", 1, 2, 30, 30),
	}
	prior, dates := gamesBefore(logs, day)
	require.Len(t, prior, 1)
	assert.Equal(t, 10, prior[0].Points)
	assert.Len(t, dates, 1)
}
