package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
)

// DataNormalizer maps feed rows onto the canonical spellings the engine keys by
type DataNormalizer struct {
	logger *logrus.Logger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *logrus.Logger) *DataNormalizer {
	return &DataNormalizer{logger: logger}
}

// NormalizeGameLog trims text columns and slugs the team name.
func (n *DataNormalizer) NormalizeGameLog(gl models.GameLog) models.GameLog {
	gl.PlayerName = collapseSpaces(gl.PlayerName)
	gl.TeamName = n.normalizeTeam(gl.TeamName)
	gl.Season = strings.TrimSpace(gl.Season)
	gl.GameDate = collapseSpaces(gl.GameDate)
	gl.Opponent = strings.ReplaceAll(gl.Opponent, " ", "")
	gl.Result = strings.ReplaceAll(gl.Result, " ", "")
	return gl
}

// NormalizeTeamStat slugs the team name.
func (n *DataNormalizer) NormalizeTeamStat(row models.TeamSeasonStat) models.TeamSeasonStat {
	row.TeamName = n.normalizeTeam(row.TeamName)
	row.Season = strings.TrimSpace(row.Season)
	return row
}

// NormalizePropLine slugs both teams and trims the odds and prop type.
func (n *DataNormalizer) NormalizePropLine(prop models.PropLine) models.PropLine {
	prop.PlayerName = collapseSpaces(prop.PlayerName)
	prop.TeamName = n.normalizeTeam(prop.TeamName)
	prop.OpponentName = n.normalizeTeam(prop.OpponentName)
	prop.PropType = strings.ToLower(strings.TrimSpace(prop.PropType))
	prop.Season = strings.TrimSpace(prop.Season)
	prop.OverOdds = strings.TrimSpace(prop.OverOdds)
	prop.UnderOdds = strings.TrimSpace(prop.UnderOdds)
	prop.ScrapedDate = strings.TrimSpace(prop.ScrapedDate)
	return prop
}

// normalizeTeam turns "Los Angeles Clippers" into "la-clippers".
func (n *DataNormalizer) normalizeTeam(team string) string {
	slug := strings.ToLower(collapseSpaces(team))
	slug = strings.ReplaceAll(slug, " ", "-")
	canonical := nba.NormalizeTeamName(slug)
	if canonical != slug {
		n.logger.WithFields(logrus.Fields{
			"team":      team,
			"canonical": canonical,
		}).Debug("Normalized sportsbook team name")
	}
	return canonical
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
