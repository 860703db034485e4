// Package correlation builds per-player correlation profiles between points and game context.
package correlation

import (
	"fmt"
	"time"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/opponent"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// Params configures profile derivation.
type Params struct {
	// MinGames is the smallest game count that yields non-zero coefficients.
	MinGames int
	// RestCeiling caps the rest-day series.
	RestCeiling int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{MinGames: 5, RestCeiling: 4}
}

// Skipped is a game log left out of the series.
type Skipped struct {
	GameDate string
	Err      error
}

// Engine derives correlation profiles against one season's opponent context.
type Engine struct {
	league *opponent.Context
	params Params
}

// NewEngine creates an engine.
func NewEngine(league *opponent.Context, params Params) *Engine {
	return &Engine{league: league, params: params}
}

type sample struct {
	points float64
	values map[models.Signal]float64
}

// Compute derives the profile for one player on one team from that player's game logs.
// Fewer than two logs is ErrInsufficientSample. Game logs whose opponent or result cannot
// be resolved are returned as skipped and left out of every series. A player with fewer
// than MinGames resolved games gets an all-zero profile.
func (e *Engine) Compute(player, team string, logs []models.GameLog) (*models.CorrelationProfile, []Skipped, error) {
	if len(logs) < 2 {
		return nil, nil, fmt.Errorf("%d game logs for %s: %w", len(logs), player, models.ErrInsufficientSample)
	}

	canonicalTeam := nba.NormalizeTeamName(team)
	teamPace, err := e.league.Value(models.StatPace, canonicalTeam)
	if err != nil {
		return nil, nil, err
	}

	season := e.league.Season()
	dates := make([]time.Time, 0, len(logs))
	for _, gl := range logs {
		if d, err := nba.GameDate(gl.Season, gl.GameDate); err == nil {
			dates = append(dates, d)
		}
	}

	var samples []sample
	var skipped []Skipped
	for _, gl := range logs {
		s, err := e.sample(gl, teamPace, dates)
		if err != nil {
			skipped = append(skipped, Skipped{GameDate: gl.GameDate, Err: err})
			continue
		}
		samples = append(samples, s)
	}

	profile := &models.CorrelationProfile{
		PlayerName: player,
		TeamName:   team,
		Season:     season,
		Games:      len(samples),
		UpdatedAt:  time.Now().UTC(),
	}
	if len(samples) < e.params.MinGames || len(samples) < 2 {
		return profile, skipped, nil
	}

	points := make([]float64, len(samples))
	for i, s := range samples {
		points[i] = s.points
	}
	for _, signal := range models.AllSignals {
		series := make([]float64, len(samples))
		for i, s := range samples {
			series[i] = s.values[signal]
		}
		profile.Set(signal, stats.Correlation(points, series))
	}
	return profile, skipped, nil
}

func (e *Engine) sample(gl models.GameLog, teamPace float64, dates []time.Time) (sample, error) {
	opp, err := nba.ParseOpponent(gl.Opponent)
	if err != nil {
		return sample{}, err
	}
	result, err := nba.ParseResult(gl.Result)
	if err != nil {
		return sample{}, err
	}
	day, err := nba.GameDate(gl.Season, gl.GameDate)
	if err != nil {
		return sample{}, err
	}

	values := make(map[models.Signal]float64, len(models.AllSignals))

	oppPace, err := e.league.Value(models.StatPace, opp.Team)
	if err != nil {
		return sample{}, err
	}
	values[models.SignalPace] = oppPace - teamPace

	for signal, stat := range map[models.Signal]models.StatName{
		models.SignalTwoPt:         models.StatTwoPtMade,
		models.SignalThreePt:       models.StatThreePtMade,
		models.SignalDefRtg:        models.StatDefRtg,
		models.SignalDefReboundPer: models.StatDefReboundPer,
	} {
		v, err := e.league.Value(stat, opp.Team)
		if err != nil {
			return sample{}, err
		}
		values[signal] = v
	}

	rank, err := e.league.Rank(models.StatOffReboundPer, opp.Team)
	if err != nil {
		return sample{}, err
	}
	values[models.SignalOffReboundPer] = float64(rank)
	values[models.SignalTotal] = float64(result.Total())
	values[models.SignalRest] = float64(stats.RestDays(day, dates, e.params.RestCeiling))

	return sample{points: float64(gl.Points), values: values}, nil
}

// Summarize returns the mean of every signal across profiles, keyed by column name.
func Summarize(profiles []models.CorrelationProfile) map[string]float64 {
	means := make(map[string]float64, len(models.AllSignals))
	if len(profiles) == 0 {
		return means
	}
	for _, signal := range models.AllSignals {
		values := make([]float64, len(profiles))
		for i := range profiles {
			values[i] = profiles[i].Get(signal)
		}
		mean, _ := stats.Mean(values)
		means[string(signal)] = stats.Round(mean, 3)
	}
	return means
}
