package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is the classifier output for one prop at one line.
type Prediction struct {
	Line        float64 `json:"line"`
	Over        bool    `json:"over"`
	Probability float64 `json:"probability"`
	// Confident is set when Probability clears the decision threshold.
	Confident bool `json:"confident"`
}

// Class returns the pick label for the prediction.
func (p Prediction) Class() string {
	if p.Over {
		return "Pick Over"
	}
	return "Pick Under"
}

// AltLine is the classifier's view of an alternate points threshold.
// Empty Class and Probability mean the line could not be scored.
type AltLine struct {
	Line        float64 `json:"line"`
	Class       string  `json:"class"`
	Probability string  `json:"probability"`
}

// ReportRow is the per-prop tuple handed to the report layer.
type ReportRow struct {
	RunID        uuid.UUID `json:"run_id"`
	PlayerName   string    `json:"player_name"`
	TeamName     string    `json:"team_name"`
	OpponentName string    `json:"opp_name"`
	PropType     string    `json:"prop_name"`
	Line         float64   `json:"over_num"`
	OverOdds     string    `json:"over_odds"`
	Projection   string    `json:"projection"`
	HitRate      string    `json:"hit_rate"`
	Class        string    `json:"class"`
	Probability  string    `json:"probability"`
	Edge         string    `json:"edge"`
	Confident    bool      `json:"confident"`
	AltLines     []AltLine `json:"alt_lines"`
}

// TeamReport groups a team's rows under the spread of its first prop.
type TeamReport struct {
	TeamName string      `json:"team_name"`
	Spread   float64     `json:"spread"`
	Rows     []ReportRow `json:"rows"`
}

// Report is one complete report run.
type Report struct {
	RunID     uuid.UUID    `json:"run_id"`
	PropDate  string       `json:"prop_date"`
	PropType  string       `json:"prop_type"`
	CreatedAt time.Time    `json:"created_at"`
	Teams     []TeamReport `json:"teams"`
	Failures  []string     `json:"failures,omitempty"`
}

// RowCount returns the number of rows across every team.
func (r *Report) RowCount() int {
	count := 0
	for _, team := range r.Teams {
		count += len(team.Rows)
	}
	return count
}

// ReportRun is the stored summary of a report run.
type ReportRun struct {
	RunID     uuid.UUID `db:"run_id" json:"run_id"`
	PropDate  string    `db:"prop_date" json:"prop_date"`
	PropType  string    `db:"prop_type" json:"prop_type"`
	Rows      int       `db:"row_count" json:"rows"`
	Failures  int       `db:"failure_count" json:"failures"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Summary returns the stored summary of the report.
func (r *Report) Summary() ReportRun {
	return ReportRun{
		RunID:     r.RunID,
		PropDate:  r.PropDate,
		PropType:  r.PropType,
		Rows:      r.RowCount(),
		Failures:  len(r.Failures),
		CreatedAt: r.CreatedAt,
	}
}
