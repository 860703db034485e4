package classifier

import (
	"fmt"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
	"github.com/yourusername/hoops-edge/internal/stats"
)

// History is the game log record the features for one prop are drawn from.
type History struct {
	// Current holds the player's logs for the prop's season and team.
	Current []models.GameLog
	// Last holds the player's logs for the prior season, any team.
	Last []models.GameLog
}

// BlendHistory combines points scored against an opponent this season and last season.
//
//	this season | last season | result
//	0 or 1      | 0 or 1      | no signal, except 1 and 1 which averages both games
//	>1          | 0           | mean of this season
//	0           | >1          | mean of last season
//	>=1         | >=1         | mean of the two season means
func BlendHistory(current, last []float64) (float64, bool) {
	a, b := len(current), len(last)
	switch {
	case a+b < 2:
		return 0, false
	case a == 1 && b == 1:
		return (current[0] + last[0]) / 2, true
	case b == 0:
		mean, _ := stats.Mean(current)
		return mean, true
	case a == 0:
		mean, _ := stats.Mean(last)
		return mean, true
	}
	curMean, _ := stats.Mean(current)
	lastMean, _ := stats.Mean(last)
	return (curMean + lastMean) / 2, true
}

// Label reports whether the prop's line was exceeded.
// Locked markets, props with no game log on the prop date and games under
// minutesFloor yield no label.
func Label(prop models.PropLine, current []models.GameLog, minutesFloor int) (bool, error) {
	if prop.Locked() {
		return false, fmt.Errorf("prop for %s on %s was locked: %w", prop.PlayerName, prop.ScrapedDate, models.ErrInsufficientSample)
	}
	for _, gl := range current {
		if !nba.SameDay(gl.Season, prop.ScrapedDate, gl.GameDate) {
			continue
		}
		if gl.MinutesPlayed < minutesFloor {
			return false, fmt.Errorf("%s played %d minutes on %s: %w", prop.PlayerName, gl.MinutesPlayed, prop.ScrapedDate, models.ErrInsufficientSample)
		}
		return float64(gl.Points) > prop.OverLine, nil
	}
	return false, fmt.Errorf("no game log for %s on %s: %w", prop.PlayerName, prop.ScrapedDate, models.ErrNotFound)
}

// pointsAgainst collects points from logs against any of teams, skipping the prop's own
// date and games under minutesFloor.
func pointsAgainst(logs []models.GameLog, teams map[string]bool, propDate string, minutesFloor int) []float64 {
	var points []float64
	for _, gl := range logs {
		if gl.MinutesPlayed < minutesFloor {
			continue
		}
		if propDate != "" && nba.SameDay(gl.Season, propDate, gl.GameDate) {
			continue
		}
		opp, err := nba.ParseOpponent(gl.Opponent)
		if err != nil || !teams[opp.Team] {
			continue
		}
		points = append(points, float64(gl.Points))
	}
	return points
}
