// Package projection turns a player's filtered scoring mean into a matchup-adjusted point projection.
package projection

import (
	"fmt"
	"math"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/opponent"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// Adjustment names
const (
	AdjHighPace     = "high_pace"
	AdjLowPace      = "low_pace"
	AdjTopThreeD    = "top_3pt_def"
	AdjWorstThreeD  = "worst_3pt_def"
	AdjTopTwoD      = "top_2pt_def"
	AdjWorstTwoD    = "worst_2pt_def"
	AdjBigFavorite  = "big_favorite"
	AdjHighTotal    = "high_total"
	AdjLowTotal     = "low_total"
	AdjTopDefRebD   = "top_def_rb"
	AdjWorstDefRebD = "worst_def_rb"
	AdjShortRest    = "short_rest"
	AdjLongRest     = "long_rest"
)

// Params holds the projection thresholds and weighting constants.
type Params struct {
	Bounds            stats.Bounds
	CorrelationCap    float64
	WeightScale       float64
	ThreePointFreq    float64
	TwoPointFreq      float64
	PaceN             int
	ThreePtN          int
	TwoPtN            int
	DefReboundN       int
	BigFavoriteSpread float64
	BigFavoriteWeight float64
	HighTotal         float64
	LowTotal          float64
	ShortRestDays     int
	LongRestDays      int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		Bounds:            stats.Bounds{Lower: -2.5, Upper: 3},
		CorrelationCap:    0.8,
		WeightScale:       25,
		ThreePointFreq:    50,
		TwoPointFreq:      60,
		PaceN:             5,
		ThreePtN:          5,
		TwoPtN:            5,
		DefReboundN:       5,
		BigFavoriteSpread: -10,
		BigFavoriteWeight: -8,
		HighTotal:         228,
		LowTotal:          216,
		ShortRestDays:     1,
		LongRestDays:      3,
	}
}

// Matchup describes the upcoming game.
type Matchup struct {
	Opponent   string
	TeamSpread float64
	GameTotal  float64
	// RestDays is ignored unless RestKnown is set.
	RestDays  int
	RestKnown bool
}

// Result is a projection with the adjustments that produced it.
type Result struct {
	Base        float64
	Projection  float64
	Games       int
	Dropped     []stats.Dropped
	Adjustments map[string]float64
}

// Formatted renders the projection to one decimal place.
func (r *Result) Formatted() string {
	return fmt.Sprintf("%.1f", r.Projection)
}

// Model computes weighted projections against one season's opponent context.
type Model struct {
	league *opponent.Context
	params Params
}

// NewModel creates a projection model.
func NewModel(league *opponent.Context, params Params) *Model {
	return &Model{league: league, params: params}
}

// Project starts from the outlier-filtered points mean and adds every adjustment whose
// context fires. A nil profile skips every correlation-weighted adjustment; the fixed
// big-favorite adjustment still applies.
func (m *Model) Project(logs []models.GameLog, profile *models.CorrelationProfile, matchup Matchup) (*Result, error) {
	filtered, dropped := stats.FilterGameLogs(logs, stats.AttrMinutes, m.params.Bounds)
	mean, ok := stats.Mean(stats.Points(filtered))
	if !ok {
		return nil, fmt.Errorf("no game logs to project from: %w", models.ErrInsufficientSample)
	}

	opp := nba.NormalizeTeamName(matchup.Opponent)
	result := &Result{
		Base:        mean,
		Games:       len(filtered),
		Dropped:     dropped,
		Adjustments: make(map[string]float64),
	}

	weighted := func(name string, signal models.Signal, unfavorable bool) {
		if profile == nil {
			return
		}
		result.Adjustments[name] = m.weight(profile.Get(signal), unfavorable, mean)
	}

	switch m.bucket(models.StatPace, opp, m.params.PaceN) {
	case opponent.BucketBottom:
		weighted(AdjLowPace, models.SignalPace, true)
	case opponent.BucketTop:
		weighted(AdjHighPace, models.SignalPace, false)
	}

	switch {
	case stats.ThreePointFrequency(filtered) >= m.params.ThreePointFreq:
		switch m.bucket(models.StatThreePtMade, opp, m.params.ThreePtN) {
		case opponent.BucketTop:
			weighted(AdjTopThreeD, models.SignalThreePt, true)
		case opponent.BucketBottom:
			weighted(AdjWorstThreeD, models.SignalThreePt, false)
		}
	case stats.TwoPointFrequency(filtered) >= m.params.TwoPointFreq:
		switch m.bucket(models.StatTwoPtMade, opp, m.params.TwoPtN) {
		case opponent.BucketTop:
			weighted(AdjTopTwoD, models.SignalTwoPt, true)
		case opponent.BucketBottom:
			weighted(AdjWorstTwoD, models.SignalTwoPt, false)
		}
	}

	if matchup.TeamSpread <= m.params.BigFavoriteSpread {
		result.Adjustments[AdjBigFavorite] = percentOf(m.params.BigFavoriteWeight, mean)
	}

	if matchup.GameTotal > m.params.HighTotal {
		weighted(AdjHighTotal, models.SignalTotal, false)
	} else if matchup.GameTotal < m.params.LowTotal {
		weighted(AdjLowTotal, models.SignalTotal, true)
	}

	switch m.bucket(models.StatDefReboundPer, opp, m.params.DefReboundN) {
	case opponent.BucketBottom:
		weighted(AdjWorstDefRebD, models.SignalDefReboundPer, false)
	case opponent.BucketTop:
		weighted(AdjTopDefRebD, models.SignalDefReboundPer, true)
	}

	if matchup.RestKnown {
		if matchup.RestDays <= m.params.ShortRestDays {
			weighted(AdjShortRest, models.SignalRest, true)
		} else if matchup.RestDays >= m.params.LongRestDays {
			weighted(AdjLongRest, models.SignalRest, false)
		}
	}

	result.Projection = mean
	for _, adj := range result.Adjustments {
		result.Projection += adj
	}
	return result, nil
}

// weight scales a capped coefficient into a share of the player's mean.
func (m *Model) weight(corr float64, unfavorable bool, mean float64) float64 {
	corr = math.Min(corr, m.params.CorrelationCap)
	if unfavorable {
		corr = -corr
	}
	return percentOf(corr*m.params.WeightScale, mean)
}

func (m *Model) bucket(stat models.StatName, team string, n int) opponent.Bucket {
	idx := m.league.Index(stat)
	if idx == nil {
		return opponent.BucketNone
	}
	return idx.Bucket(team, n)
}

// percentOf returns weight percent of mean.
func percentOf(weight, mean float64) float64 {
	return mean * weight / 100
}
