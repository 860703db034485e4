package service

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/testutil"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func hasIssue(issues []string, substr string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, substr) {
			return true
		}
	}
	return false
}

func TestValidateGameLog(t *testing.T) {
	validator := NewDataValidator(quietLogger())

	tests := []struct {
		name       string
		mutate     func(gl *models.GameLog)
		shouldHave string
	}{
		{name: "valid", mutate: func(gl *models.GameLog) {}},
		{
			name:       "missing player",
			mutate:     func(gl *models.GameLog) { gl.PlayerName = "" },
			shouldHave: "PlayerName failed required",
		},
		{
			name:       "made exceeds attempted",
			mutate:     func(gl *models.GameLog) { gl.FGMade = gl.FGAttempted + 1 },
			shouldHave: "FGAttempted failed gtefield=FGMade",
		},
		{
			name:       "free throws made exceed attempted",
			mutate:     func(gl *models.GameLog) { gl.FTMade = 3 },
			shouldHave: "FTAttempted failed gtefield=FTMade",
		},
		{
			name:       "negative minutes",
			mutate:     func(gl *models.GameLog) { gl.MinutesPlayed = -1 },
			shouldHave: "MinutesPlayed failed gte=0",
		},
		{
			name:       "unparseable date",
			mutate:     func(gl *models.GameLog) { gl.GameDate = "Friday" },
			shouldHave: "game_date",
		},
		{
			name: "threes exceed field goals",
			mutate: func(gl *models.GameLog) {
				gl.ThreePtAttempted = gl.FGAttempted + 2
				gl.ThreePtMade = 0
			},
			shouldHave: "exceeds fg_att",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := testutil.GameLog("player", "boston-celtics", "MIA", 12, 1, 30, 21)
			tt.mutate(&gl)
			issues := validator.ValidateGameLog(&gl)
			if tt.shouldHave == "" {
				assert.Empty(t, issues)
				return
			}
			assert.True(t, hasIssue(issues, tt.shouldHave), "expected issue containing %q, got %v", tt.shouldHave, issues)
		})
	}
}

func TestValidateTeamStat(t *testing.T) {
	validator := NewDataValidator(quietLogger())

	tests := []struct {
		name       string
		mutate     func(row *models.TeamSeasonStat)
		shouldHave string
	}{
		{name: "valid", mutate: func(row *models.TeamSeasonStat) {}},
		{
			name:       "unknown team",
			mutate:     func(row *models.TeamSeasonStat) { row.TeamName = "seattle-supersonics" },
			shouldHave: "unknown team",
		},
		{
			name:       "bad season",
			mutate:     func(row *models.TeamSeasonStat) { row.Season = "2022" },
			shouldHave: "season",
		},
		{
			name:       "rebound share over 100",
			mutate:     func(row *models.TeamSeasonStat) { row.DefReboundPer = 101 },
			shouldHave: "DefReboundPer failed lte=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testutil.LeagueRows()[0]
			tt.mutate(&row)
			issues := validator.ValidateTeamStat(&row)
			if tt.shouldHave == "" {
				assert.Empty(t, issues)
				return
			}
			assert.True(t, hasIssue(issues, tt.shouldHave), "expected issue containing %q, got %v", tt.shouldHave, issues)
		})
	}
}

func TestValidatePropLine(t *testing.T) {
	validator := NewDataValidator(quietLogger())

	tests := []struct {
		name       string
		mutate     func(p *models.PropLine)
		shouldHave string
	}{
		{name: "valid", mutate: func(p *models.PropLine) {}},
		{name: "locked market is still stored", mutate: func(p *models.PropLine) { p.GameTotal = 0 }},
		{name: "sportsbook spelling", mutate: func(p *models.PropLine) { p.OpponentName = "los-angeles-clippers" }},
		{
			name:       "unknown prop type",
			mutate:     func(p *models.PropLine) { p.PropType = "steals" },
			shouldHave: "PropType failed oneof",
		},
		{
			name:       "bad scrape date",
			mutate:     func(p *models.PropLine) { p.ScrapedDate = "2022-12-20" },
			shouldHave: "prop_scraped",
		},
		{
			name:       "bad odds",
			mutate:     func(p *models.PropLine) { p.OverOdds = "evens" },
			shouldHave: "odds \"evens\"",
		},
		{
			name:       "unknown opponent",
			mutate:     func(p *models.PropLine) { p.OpponentName = "vancouver-grizzlies" },
			shouldHave: "unknown team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop := testutil.PropLine("player", "boston-celtics", "miami-heat", "12-20-2022", 22.5)
			tt.mutate(&prop)
			issues := validator.ValidatePropLine(&prop)
			if tt.shouldHave == "" {
				assert.Empty(t, issues)
				return
			}
			assert.True(t, hasIssue(issues, tt.shouldHave), "expected issue containing %q, got %v", tt.shouldHave, issues)
		})
	}
}

func TestNormalizer(t *testing.T) {
	n := NewDataNormalizer(quietLogger())

	gl := testutil.GameLog("  Jayson   Tatum ", "Boston Celtics", "MIA", 12, 1, 30, 21)
	gl.GameDate = "Fri  12/1"
	gl.Opponent = "vs MIA"
	got := n.NormalizeGameLog(gl)
	assert.Equal(t, "Jayson Tatum", got.PlayerName)
	assert.Equal(t, "boston-celtics", got.TeamName)
	assert.Equal(t, "Fri 12/1", got.GameDate)
	assert.Equal(t, "vsMIA", got.Opponent)

	prop := testutil.PropLine("Jayson Tatum", "boston-celtics", "Los Angeles Clippers", "12-20-2022", 22.5)
	prop.PropType = " Points "
	gotProp := n.NormalizePropLine(prop)
	assert.Equal(t, "la-clippers", gotProp.OpponentName)
	assert.Equal(t, models.PropPoints, gotProp.PropType)
}
