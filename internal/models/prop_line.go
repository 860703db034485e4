package models

import (
	"time"

	"github.com/google/uuid"
)

// Prop types offered by the sportsbook.
const (
	PropPoints   = "points"
	PropRebounds = "rebounds"
	PropThrees   = "threes"
)

// PropLine is one captured sportsbook offer. Snapshots are append-only.
// ScrapedDate is "MM-DD-YYYY".
type PropLine struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Season       string    `db:"season" json:"season" validate:"required"`
	PropType     string    `db:"prop_name" json:"prop_name" validate:"required,oneof=points rebounds threes"`
	PlayerName   string    `db:"player_name" json:"player_name" validate:"required"`
	TeamName     string    `db:"team_name" json:"team_name" validate:"required"`
	OpponentName string    `db:"opp_name" json:"opp_name" validate:"required"`
	OverLine     float64   `db:"over_num" json:"over_num" validate:"gte=0"`
	UnderLine    float64   `db:"under_num" json:"under_num" validate:"gte=0"`
	OverOdds     string    `db:"over_odds" json:"over_odds" validate:"required"`
	UnderOdds    string    `db:"under_odds" json:"under_odds" validate:"required"`
	TeamSpread   float64   `db:"team_spread" json:"team_spread"`
	GameTotal    float64   `db:"game_total" json:"game_total" validate:"gte=0"`
	ScrapedDate  string    `db:"prop_scraped" json:"prop_scraped" validate:"required"`
	CapturedAt   time.Time `db:"captured_at" json:"captured_at"`
}

// Locked reports whether the market had no game total when captured.
func (p *PropLine) Locked() bool {
	return p.GameTotal == 0
}
