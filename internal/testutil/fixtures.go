// Package testutil builds league fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/opponent"
)

// Season is the season every fixture is keyed by.
const Season = "2022-23"

// LeagueRows returns one row per team. Team i in sorted name order gets
// pace 95+0.5i, def_rtg 105+0.5i, off/def rebound 20+i / 70+0.5i and
// shots allowed 30+0.2i / 11+0.1i, so every ranking is strict and predictable.
func LeagueRows() []models.TeamSeasonStat {
	names := nba.TeamNames()
	rows := make([]models.TeamSeasonStat, len(names))
	for i, team := range names {
		f := float64(i)
		rows[i] = models.TeamSeasonStat{
			TeamName:         team,
			Season:           Season,
			GamesPlayed:      50,
			Pace:             95 + 0.5*f,
			DefRtg:           105 + 0.5*f,
			OffReboundPer:    20 + f,
			DefReboundPer:    70 + 0.5*f,
			TwoPtMade:        30 + 0.2*f,
			TwoPtAttempted:   60,
			ThreePtMade:      11 + 0.1*f,
			ThreePtAttempted: 35,
		}
	}
	return rows
}

// League returns the opponent context for LeagueRows.
func League(t *testing.T) *opponent.Context {
	t.Helper()
	ctx, err := opponent.NewContext(Season, LeagueRows())
	require.NoError(t, err)
	return ctx
}

// GameLog builds a game log against opponent code opp on month/day.
func GameLog(player, team, opp string, month, day, minutes, points int) models.GameLog {
	return models.GameLog{
		PlayerName:       player,
		TeamName:         team,
		Season:           Season,
		GameDate:         fmt.Sprintf("Fri %d/%d", month, day),
		Opponent:         "vs" + opp,
		Result:           fmt.Sprintf("W%d-%d", 110+points%10, 100+points%7),
		MinutesPlayed:    minutes,
		Points:           points,
		FGMade:           points / 3,
		FGAttempted:      points/3 + 8,
		ThreePtMade:      1,
		ThreePtAttempted: 4,
	}
}

// PropLine builds a points prop.
func PropLine(player, team, opp, date string, line float64) models.PropLine {
	return models.PropLine{
		Season:       Season,
		PropType:     models.PropPoints,
		PlayerName:   player,
		TeamName:     team,
		OpponentName: opp,
		OverLine:     line,
		UnderLine:    line,
		OverOdds:     "-110",
		UnderOdds:    "-110",
		TeamSpread:   -3.5,
		GameTotal:    222.5,
		ScrapedDate:  date,
	}
}
