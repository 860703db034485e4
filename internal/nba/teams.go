// Package nba holds league reference data and the parsers for raw game log fields.
package nba

import (
	"sort"
	"strings"
)

// LeagueSize is the number of teams in the league.
const LeagueSize = 30

var codeToTeam = map[string]string{
	"BOS":  "boston-celtics",
	"BKN":  "brooklyn-nets",
	"NY":   "new-york-knicks",
	"PHI":  "philadelphia-76ers",
	"TOR":  "toronto-raptors",
	"CHI":  "chicago-bulls",
	"CLE":  "cleveland-cavaliers",
	"DET":  "detroit-pistons",
	"IND":  "indiana-pacers",
	"MIL":  "milwaukee-bucks",
	"DEN":  "denver-nuggets",
	"MIN":  "minnesota-timberwolves",
	"OKC":  "oklahoma-city-thunder",
	"POR":  "portland-trail-blazers",
	"UTAH": "utah-jazz",
	"GS":   "golden-state-warriors",
	"LAC":  "la-clippers",
	"LAL":  "los-angeles-lakers",
	"PHX":  "phoenix-suns",
	"SAC":  "sacramento-kings",
	"ATL":  "atlanta-hawks",
	"CHA":  "charlotte-hornets",
	"ORL":  "orlando-magic",
	"WSH":  "washington-wizards",
	"DAL":  "dallas-mavericks",
	"HOU":  "houston-rockets",
	"MEM":  "memphis-grizzlies",
	"NO":   "new-orleans-pelicans",
	"SA":   "san-antonio-spurs",
	"MIA":  "miami-heat",
}

var teamToCode = func() map[string]string {
	m := make(map[string]string, len(codeToTeam))
	for code, team := range codeToTeam {
		m[team] = code
	}
	return m
}()

// Sportsbook slugs that differ from the stats site.
var sportsbookNames = map[string]string{
	"los-angeles-clippers": "la-clippers",
}

// TeamName resolves an opponent code such as "GS" to its canonical team slug.
func TeamName(code string) (string, bool) {
	team, ok := codeToTeam[strings.ToUpper(code)]
	return team, ok
}

// TeamCode resolves a team slug, sportsbook spelling included, to its code.
func TeamCode(team string) (string, bool) {
	code, ok := teamToCode[NormalizeTeamName(team)]
	return code, ok
}

// NormalizeTeamName maps sportsbook team slugs onto the canonical slug.
func NormalizeTeamName(team string) string {
	if fixed, ok := sportsbookNames[team]; ok {
		return fixed
	}
	return team
}

// TeamNames returns every canonical team slug in sorted order.
func TeamNames() []string {
	names := make([]string, 0, len(teamToCode))
	for team := range teamToCode {
		names = append(names, team)
	}
	sort.Strings(names)
	return names
}
