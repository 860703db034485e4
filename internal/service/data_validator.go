package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/edge"
	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
)

// DataValidator validates feed rows before they are stored
type DataValidator struct {
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateGameLog checks required keys, attempted >= made and the game date.
// Opponent and result strings are left to the correlation engine, which skips
// what it cannot resolve.
func (v *DataValidator) ValidateGameLog(gl *models.GameLog) []string {
	issues := v.structIssues(gl)

	if gl.Season != "" && gl.GameDate != "" {
		if _, err := nba.GameDate(gl.Season, gl.GameDate); err != nil {
			issues = append(issues, fmt.Sprintf("game_date %q: %v", gl.GameDate, err))
		}
	}
	if gl.ThreePtAttempted > gl.FGAttempted {
		issues = append(issues, fmt.Sprintf("three_pt_att %d exceeds fg_att %d", gl.ThreePtAttempted, gl.FGAttempted))
	}

	if len(issues) > 0 {
		v.logger.WithFields(logrus.Fields{
			"player":    gl.PlayerName,
			"game_date": gl.GameDate,
			"issues":    issues,
		}).Debug("Game log failed validation")
	}
	return issues
}

// ValidateTeamStat checks required keys, the season and that the team is known.
func (v *DataValidator) ValidateTeamStat(row *models.TeamSeasonStat) []string {
	issues := v.structIssues(row)

	if row.Season != "" {
		if _, _, err := nba.SeasonYears(row.Season); err != nil {
			issues = append(issues, fmt.Sprintf("season %q: %v", row.Season, err))
		}
	}
	if row.TeamName != "" {
		if _, ok := nba.TeamCode(row.TeamName); !ok {
			issues = append(issues, fmt.Sprintf("unknown team %q", row.TeamName))
		}
	}

	if len(issues) > 0 {
		v.logger.WithFields(logrus.Fields{
			"team":   row.TeamName,
			"issues": issues,
		}).Debug("Team stat failed validation")
	}
	return issues
}

// ValidatePropLine checks required keys, the scrape date, both teams and both odds.
// A locked market (game total 0) is valid; it is excluded later, at labelling.
func (v *DataValidator) ValidatePropLine(prop *models.PropLine) []string {
	issues := v.structIssues(prop)

	if prop.ScrapedDate != "" {
		if _, err := nba.PropDate(prop.ScrapedDate); err != nil {
			issues = append(issues, fmt.Sprintf("prop_scraped %q: %v", prop.ScrapedDate, err))
		}
	}
	for _, team := range []string{prop.TeamName, prop.OpponentName} {
		if team == "" {
			continue
		}
		if _, ok := nba.TeamCode(team); !ok {
			issues = append(issues, fmt.Sprintf("unknown team %q", team))
		}
	}
	for _, odds := range []string{prop.OverOdds, prop.UnderOdds} {
		if odds == "" {
			continue
		}
		if _, err := edge.ParseAmericanOdds(odds); err != nil {
			issues = append(issues, fmt.Sprintf("odds %q: %v", odds, err))
		}
	}

	if len(issues) > 0 {
		v.logger.WithFields(logrus.Fields{
			"player": prop.PlayerName,
			"date":   prop.ScrapedDate,
			"issues": issues,
		}).Debug("Prop line failed validation")
	}
	return issues
}

func (v *DataValidator) structIssues(s interface{}) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	issues := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Param() != "" {
			issues = append(issues, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			issues = append(issues, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return issues
}
