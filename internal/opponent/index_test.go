package opponent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
)

const season = "2022-23"

func leagueRows() []models.TeamSeasonStat {
	names := nba.TeamNames()
	rows := make([]models.TeamSeasonStat, len(names))
	for i, team := range names {
		f := float64(i)
		rows[i] = models.TeamSeasonStat{
			TeamName:      team,
			Season:        season,
			Pace:          95 + 0.5*f,
			DefRtg:        105 + 0.5*f,
			OffReboundPer: 20 + f,
			DefReboundPer: 70 + 0.5*f,
			TwoPtMade:     30 + 0.2*f,
			ThreePtMade:   11 + 0.1*f,
		}
	}
	return rows
}

func TestTopAndBottomDirection(t *testing.T) {
	names := nba.TeamNames()

	pace, err := NewIndex(models.StatPace, season, leagueRows())
	require.NoError(t, err)
	assert.Equal(t, []string{names[29], names[28], names[27]}, pace.Top(3))
	assert.Equal(t, []string{names[0], names[1], names[2]}, pace.Bottom(3))

	def, err := NewIndex(models.StatDefRtg, season, leagueRows())
	require.NoError(t, err)
	assert.Equal(t, []string{names[0], names[1]}, def.Top(2), "lowest rating is the best defense")
	assert.Equal(t, []string{names[29], names[28]}, def.Bottom(2))
}

func TestTopBottomDisjoint(t *testing.T) {
	for _, stat := range models.AllStats {
		idx, err := NewIndex(stat, season, leagueRows())
		require.NoError(t, err)

		top := idx.Top(5)
		bottom := idx.Bottom(5)
		assert.Len(t, top, 5)
		assert.Len(t, bottom, 5)

		seen := map[string]bool{}
		for _, team := range append(top, bottom...) {
			assert.False(t, seen[team], "%s listed twice for %s", team, stat)
			seen[team] = true
		}
	}
}

func TestTopClampsToLeague(t *testing.T) {
	idx, err := NewIndex(models.StatPace, season, leagueRows())
	require.NoError(t, err)
	assert.Len(t, idx.Top(50), 30)
	assert.Empty(t, idx.Bottom(-1))
}

func TestRankAndBucket(t *testing.T) {
	names := nba.TeamNames()
	idx, err := NewIndex(models.StatOffReboundPer, season, leagueRows())
	require.NoError(t, err)

	rank, ok := idx.Rank(names[29])
	require.True(t, ok)
	assert.Equal(t, 0, rank)
	rank, _ = idx.Rank(names[0])
	assert.Equal(t, 29, rank)

	assert.Equal(t, BucketTop, idx.Bucket(names[27], 5))
	assert.Equal(t, BucketBottom, idx.Bucket(names[3], 5))
	assert.Equal(t, BucketNone, idx.Bucket(names[15], 5))
	assert.Equal(t, BucketNone, idx.Bucket("unknown-team", 5))
}

func TestBucketMatchesTopAndBottom(t *testing.T) {
	idx, err := NewIndex(models.StatDefRtg, season, leagueRows())
	require.NoError(t, err)

	for _, n := range []int{1, 4, 5, 15, 20} {
		top, bottom := idx.Top(n), idx.Bottom(n)
		for _, team := range nba.TeamNames() {
			want := BucketNone
			switch {
			case contains(top, team):
				want = BucketTop
			case contains(bottom, team):
				want = BucketBottom
			}
			assert.Equal(t, want, idx.Bucket(team, n), "n=%d %s", n, team)
		}
	}
	assert.Equal(t, BucketNone, idx.Bucket(nba.TeamNames()[0], 0))
}

func TestNearest(t *testing.T) {
	names := nba.TeamNames()
	idx, err := NewIndex(models.StatPace, season, leagueRows())
	require.NoError(t, err)

	tests := []struct {
		name  string
		value float64
		want  []string
	}{
		{name: "middle excludes reference", value: 95 + 0.5*10, want: []string{names[8], names[9], names[11], names[12]}},
		{name: "low end clamps", value: 95, want: []string{names[1], names[2], names[3], names[4]}},
		{name: "high end clamps", value: 95 + 0.5*29, want: []string{names[25], names[26], names[27], names[28]}},
		{name: "value between teams", value: 95 + 0.5*10 + 0.1, want: []string{names[9], names[10], names[11], names[12]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Nearest(tt.value))
		})
	}
}

func TestNearestTies(t *testing.T) {
	rows := leagueRows()
	rows[11].Pace = rows[10].Pace

	idx, err := NewIndex(models.StatPace, season, rows)
	require.NoError(t, err)

	similar, ok := idx.NearestTo(rows[11].TeamName)
	require.True(t, ok)
	assert.Len(t, similar, 4)
	assert.NotContains(t, similar, rows[11].TeamName)
	assert.Contains(t, similar, rows[10].TeamName)
}

func TestNewIndexErrors(t *testing.T) {
	_, err := NewIndex(models.StatName("bogus"), season, leagueRows())
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = NewIndex(models.StatPace, "2021-22", leagueRows())
	assert.True(t, errors.Is(err, models.ErrMissingContext))

	rows := append(leagueRows(), leagueRows()[0])
	_, err = NewIndex(models.StatPace, season, rows)
	assert.True(t, errors.Is(err, models.ErrDuplicateKey))
}

func TestContext(t *testing.T) {
	names := nba.TeamNames()
	ctx, err := NewContext(season, leagueRows())
	require.NoError(t, err)

	v, err := ctx.Value(models.StatDefRtg, names[2])
	require.NoError(t, err)
	assert.Equal(t, 106.0, v)

	_, err = ctx.Value(models.StatDefRtg, "seattle-supersonics")
	assert.True(t, errors.Is(err, models.ErrMissingContext))

	similar, err := ctx.Similar(models.StatPace, names[0])
	require.NoError(t, err)
	assert.Equal(t, []string{names[1], names[2], names[3], names[4]}, similar)

	values := ctx.Index(models.StatPace).Values()
	values[names[0]] = 0
	v, _ = ctx.Value(models.StatPace, names[0])
	assert.Equal(t, 95.0, v, "Values returns a copy")
}
