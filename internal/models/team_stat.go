package models

import "time"

// StatName names a team stat the opponent context index can rank.
type StatName string

// Rankable team stats
const (
	StatPace          StatName = "pace"
	StatDefRtg        StatName = "def_rtg"
	StatDefReboundPer StatName = "def_rebound_per"
	StatOffReboundPer StatName = "off_rebound_per"
	StatTwoPtMade     StatName = "two_pt_made"
	StatThreePtMade   StatName = "three_pt_made"
)

// AllStats lists every rankable stat.
var AllStats = []StatName{
	StatPace,
	StatDefRtg,
	StatDefReboundPer,
	StatOffReboundPer,
	StatTwoPtMade,
	StatThreePtMade,
}

// TeamSeasonStat holds one team's advanced stats and opponent scoring allowed for a season.
type TeamSeasonStat struct {
	TeamName         string    `db:"team_name" json:"team_name" validate:"required"`
	Season           string    `db:"season" json:"season" validate:"required"`
	GamesPlayed      int       `db:"games_played" json:"games_played" validate:"gte=0"`
	Wins             int       `db:"wins" json:"wins" validate:"gte=0"`
	Losses           int       `db:"losses" json:"losses" validate:"gte=0"`
	Pace             float64   `db:"pace" json:"pace" validate:"gte=0"`
	OffRtg           float64   `db:"off_rtg" json:"off_rtg"`
	DefRtg           float64   `db:"def_rtg" json:"def_rtg"`
	NetRtg           float64   `db:"net_rtg" json:"net_rtg"`
	OffReboundPer    float64   `db:"off_rebound_per" json:"off_rebound_per" validate:"gte=0,lte=100"`
	DefReboundPer    float64   `db:"def_rebound_per" json:"def_rebound_per" validate:"gte=0,lte=100"`
	EffFGPer         float64   `db:"eff_fg_per" json:"eff_fg_per"`
	TrueShootingPer  float64   `db:"true_shooting_per" json:"true_shooting_per"`
	TwoPtMade        float64   `db:"two_pt_made" json:"two_pt_made" validate:"gte=0"`
	TwoPtAttempted   float64   `db:"two_pt_att" json:"two_pt_att" validate:"gtefield=TwoPtMade"`
	ThreePtMade      float64   `db:"three_pt_made" json:"three_pt_made" validate:"gte=0"`
	ThreePtAttempted float64   `db:"three_pt_att" json:"three_pt_att" validate:"gtefield=ThreePtMade"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Value returns the named stat.
func (t *TeamSeasonStat) Value(stat StatName) (float64, bool) {
	switch stat {
	case StatPace:
		return t.Pace, true
	case StatDefRtg:
		return t.DefRtg, true
	case StatDefReboundPer:
		return t.DefReboundPer, true
	case StatOffReboundPer:
		return t.OffReboundPer, true
	case StatTwoPtMade:
		return t.TwoPtMade, true
	case StatThreePtMade:
		return t.ThreePtMade, true
	}
	return 0, false
}
