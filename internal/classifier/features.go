package classifier

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/opponent"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// FeatureNames lists the model inputs in vector order.
var FeatureNames = []string{
	"pace_diff",
	"opp_def_rtg",
	"game_total",
	"recent_avg",
	"points_std",
	"avg_points_vs_opp",
	"eff_fg",
	"similar_pace_points",
	"similar_def_points",
	"line",
}

// Features are the engineered inputs for one prop, without the line itself.
type Features struct {
	PaceDiff          float64 `json:"pace_diff"`
	OppDefRtg         float64 `json:"opp_def_rtg"`
	GameTotal         float64 `json:"game_total"`
	RecentAverage     float64 `json:"recent_avg"`
	PointsStdDev      float64 `json:"points_std"`
	AvgVsOpponent     float64 `json:"avg_points_vs_opp"`
	EffectiveFG       float64 `json:"eff_fg"`
	SimilarPacePoints float64 `json:"similar_pace_points"`
	SimilarDefPoints  float64 `json:"similar_def_points"`
}

// Vector returns the model input for a given line.
func (f Features) Vector(line float64) []float64 {
	return []float64{
		f.PaceDiff,
		f.OppDefRtg,
		f.GameTotal,
		f.RecentAverage,
		f.PointsStdDev,
		f.AvgVsOpponent,
		f.EffectiveFG,
		f.SimilarPacePoints,
		f.SimilarDefPoints,
		line,
	}
}

// FeatureParams configures feature engineering.
type FeatureParams struct {
	Bounds stats.Bounds
	// MinutesFloor qualifies a meeting with the opponent.
	MinutesFloor int
	// RecentGames is N in the last-N average.
	RecentGames int
	// RecentMinutesFloor qualifies a game for the last-N average.
	RecentMinutesFloor int
}

// DefaultFeatureParams returns the production defaults.
func DefaultFeatureParams() FeatureParams {
	return FeatureParams{
		Bounds:             stats.Bounds{Lower: -2.5, Upper: 3},
		MinutesFloor:       5,
		RecentGames:        10,
		RecentMinutesFloor: 10,
	}
}

// FeatureBuilder derives classifier features against one season's opponent context.
type FeatureBuilder struct {
	league *opponent.Context
	params FeatureParams
}

// NewFeatureBuilder creates a feature builder.
func NewFeatureBuilder(league *opponent.Context, params FeatureParams) *FeatureBuilder {
	return &FeatureBuilder{league: league, params: params}
}

// Build derives the features for a prop. Only games before the prop date feed the
// season aggregates; the vs-opponent blend drops just the meeting on the prop date. A prop with no usable history against the opponent is excluded with
// ErrInsufficientSample rather than given a default.
func (b *FeatureBuilder) Build(prop models.PropLine, history History) (Features, error) {
	team := nba.NormalizeTeamName(prop.TeamName)
	opp := nba.NormalizeTeamName(prop.OpponentName)

	teamPace, err := b.league.Value(models.StatPace, team)
	if err != nil {
		return Features{}, err
	}
	oppPace, err := b.league.Value(models.StatPace, opp)
	if err != nil {
		return Features{}, err
	}
	oppDef, err := b.league.Value(models.StatDefRtg, opp)
	if err != nil {
		return Features{}, err
	}
	propDay, err := nba.PropDate(prop.ScrapedDate)
	if err != nil {
		return Features{}, err
	}

	var prior []models.GameLog
	for _, gl := range history.Current {
		if d, err := nba.GameDate(gl.Season, gl.GameDate); err == nil && d.Before(propDay) {
			prior = append(prior, gl)
		}
	}
	filtered, _ := stats.FilterGameLogs(prior, stats.AttrMinutes, b.params.Bounds)
	points := stats.Points(filtered)
	mean, ok := stats.Mean(points)
	if !ok {
		return Features{}, fmt.Errorf("no prior games for %s: %w", prop.PlayerName, models.ErrInsufficientSample)
	}
	std, _ := stats.PopStdDev(points)

	recent, ok := b.recentAverage(history.Current, propDay)
	if !ok {
		return Features{}, fmt.Errorf("no recent qualifying games for %s: %w", prop.PlayerName, models.ErrInsufficientSample)
	}

	against := map[string]bool{opp: true}
	vsOpp, ok := BlendHistory(
		pointsAgainst(history.Current, against, prop.ScrapedDate, b.params.MinutesFloor),
		pointsAgainst(history.Last, against, "", b.params.MinutesFloor),
	)
	if !ok {
		return Features{}, fmt.Errorf("no history for %s against %s: %w", prop.PlayerName, opp, models.ErrInsufficientSample)
	}

	return Features{
		PaceDiff:          oppPace - teamPace,
		OppDefRtg:         oppDef,
		GameTotal:         prop.GameTotal,
		RecentAverage:     recent,
		PointsStdDev:      std,
		AvgVsOpponent:     vsOpp,
		EffectiveFG:       stats.EffectiveFieldGoal(filtered),
		SimilarPacePoints: b.similarPoints(models.StatPace, opp, filtered, mean),
		SimilarDefPoints:  b.similarPoints(models.StatDefRtg, opp, filtered, mean),
	}, nil
}

// recentAverage is the mean of the last RecentGames games before day that met the minutes floor.
func (b *FeatureBuilder) recentAverage(logs []models.GameLog, day time.Time) (float64, bool) {
	type dated struct {
		day    time.Time
		points float64
	}
	var games []dated
	for _, gl := range logs {
		if gl.MinutesPlayed < b.params.RecentMinutesFloor {
			continue
		}
		d, err := nba.GameDate(gl.Season, gl.GameDate)
		if err != nil || !d.Before(day) {
			continue
		}
		games = append(games, dated{day: d, points: float64(gl.Points)})
	}
	sort.Slice(games, func(i, j int) bool { return games[i].day.After(games[j].day) })
	if len(games) > b.params.RecentGames {
		games = games[:b.params.RecentGames]
	}
	points := make([]float64, len(games))
	for i, g := range games {
		points[i] = g.points
	}
	return stats.Mean(points)
}

// similarPoints averages points against the teams nearest the opponent on stat,
// falling back to the filtered mean when the player has not met any of them.
func (b *FeatureBuilder) similarPoints(stat models.StatName, opp string, filtered []models.GameLog, mean float64) float64 {
	teams, err := b.league.Similar(stat, opp)
	if err != nil {
		return mean
	}
	set := make(map[string]bool, len(teams))
	for _, team := range teams {
		set[team] = true
	}
	if avg, ok := stats.Mean(pointsAgainst(filtered, set, "", 0)); ok {
		return avg
	}
	return mean
}
