package models

import "time"

// Signal names one contextual series correlated against points.
type Signal string

// Correlation signals
const (
	SignalPace          Signal = "pace_corr"
	SignalRest          Signal = "rest_corr"
	SignalTwoPt         Signal = "two_pt_corr"
	SignalThreePt       Signal = "three_pt_corr"
	SignalDefRtg        Signal = "opp_def_rtg_corr"
	SignalDefReboundPer Signal = "opp_def_rb_per_corr"
	SignalOffReboundPer Signal = "opp_off_rb_per_corr"
	SignalTotal         Signal = "total_corr"
)

// AllSignals lists every signal in profile column order.
var AllSignals = []Signal{
	SignalPace,
	SignalTwoPt,
	SignalThreePt,
	SignalTotal,
	SignalDefRtg,
	SignalDefReboundPer,
	SignalOffReboundPer,
	SignalRest,
}

// CorrelationProfile holds a player's Pearson coefficients between points and each signal.
// Profiles are replaced wholesale on every run.
type CorrelationProfile struct {
	PlayerName    string    `db:"player_name" json:"player_name" validate:"required"`
	TeamName      string    `db:"team_name" json:"team_name" validate:"required"`
	Season        string    `db:"season" json:"season"`
	Games         int       `db:"games" json:"games"`
	Pace          float64   `db:"pace_corr" json:"pace_corr" validate:"gte=-1,lte=1"`
	TwoPt         float64   `db:"two_pt_corr" json:"two_pt_corr" validate:"gte=-1,lte=1"`
	ThreePt       float64   `db:"three_pt_corr" json:"three_pt_corr" validate:"gte=-1,lte=1"`
	Total         float64   `db:"total_corr" json:"total_corr" validate:"gte=-1,lte=1"`
	DefRtg        float64   `db:"opp_def_rtg_corr" json:"opp_def_rtg_corr" validate:"gte=-1,lte=1"`
	DefReboundPer float64   `db:"opp_def_rb_per_corr" json:"opp_def_rb_per_corr" validate:"gte=-1,lte=1"`
	OffReboundPer float64   `db:"opp_off_rb_per_corr" json:"opp_off_rb_per_corr" validate:"gte=-1,lte=1"`
	Rest          float64   `db:"rest_corr" json:"rest_corr" validate:"gte=-1,lte=1"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Get returns the coefficient for a signal.
func (c *CorrelationProfile) Get(signal Signal) float64 {
	switch signal {
	case SignalPace:
		return c.Pace
	case SignalRest:
		return c.Rest
	case SignalTwoPt:
		return c.TwoPt
	case SignalThreePt:
		return c.ThreePt
	case SignalDefRtg:
		return c.DefRtg
	case SignalDefReboundPer:
		return c.DefReboundPer
	case SignalOffReboundPer:
		return c.OffReboundPer
	case SignalTotal:
		return c.Total
	}
	return 0
}

// Set stores the coefficient for a signal.
func (c *CorrelationProfile) Set(signal Signal, value float64) {
	switch signal {
	case SignalPace:
		c.Pace = value
	case SignalRest:
		c.Rest = value
	case SignalTwoPt:
		c.TwoPt = value
	case SignalThreePt:
		c.ThreePt = value
	case SignalDefRtg:
		c.DefRtg = value
	case SignalDefReboundPer:
		c.DefReboundPer = value
	case SignalOffReboundPer:
		c.OffReboundPer = value
	case SignalTotal:
		c.Total = value
	}
}
