package nba

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/hoops-edge/internal/models"
)

var (
	opponentRegex = regexp.MustCompile(`^(@|vs)(\w+)$`)
	resultRegex   = regexp.MustCompile(`^(W|L)(\d{2,3})-(\d{2,3}).*?$`)
	gameDateRegex = regexp.MustCompile(`^.*?(\d{1,2})/(\d{1,2})$`)
	seasonRegex   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
)

const propDateLayout = "01-02-2006"

// Opponent is a parsed opponent column such as "@GS" or "vsBOS".
type Opponent struct {
	Away bool
	Code string
	Team string
}

// ParseOpponent resolves the opponent column through the team code table.
func ParseOpponent(raw string) (Opponent, error) {
	match := opponentRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Opponent{}, fmt.Errorf("unparseable opponent %q: %w", raw, models.ErrMissingContext)
	}
	team, ok := TeamName(match[2])
	if !ok {
		return Opponent{}, fmt.Errorf("unknown opponent code %q: %w", match[2], models.ErrMissingContext)
	}
	return Opponent{
		Away: match[1] == "@",
		Code: strings.ToUpper(match[2]),
		Team: team,
	}, nil
}

// Result is a parsed result column such as "W112-104".
type Result struct {
	Win        bool
	TeamScore  int
	OtherScore int
}

// Total returns the combined final score.
func (r Result) Total() int {
	return r.TeamScore + r.OtherScore
}

// ParseResult parses a result column.
func ParseResult(raw string) (Result, error) {
	match := resultRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return Result{}, fmt.Errorf("unparseable result %q: %w", raw, models.ErrInvalidInput)
	}
	team, _ := strconv.Atoi(match[2])
	other, _ := strconv.Atoi(match[3])
	return Result{Win: match[1] == "W", TeamScore: team, OtherScore: other}, nil
}

// SeasonYears splits a season key such as "2022-23" into its calendar years.
func SeasonYears(season string) (int, int, error) {
	match := seasonRegex.FindStringSubmatch(season)
	if match == nil {
		return 0, 0, fmt.Errorf("invalid season %q: %w", season, models.ErrInvalidInput)
	}
	first, _ := strconv.Atoi(match[1])
	suffix, _ := strconv.Atoi(match[2])
	second := first + 1
	if second%100 != suffix {
		return 0, 0, fmt.Errorf("season %q does not span consecutive years: %w", season, models.ErrInvalidInput)
	}
	return first, second, nil
}

// GameDate resolves a month/day game date such as "Fri 12/16" within a season.
// January games belong to the season's second year; every other month to the first.
func GameDate(season, raw string) (time.Time, error) {
	first, second, err := SeasonYears(season)
	if err != nil {
		return time.Time{}, err
	}
	match := gameDateRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return time.Time{}, fmt.Errorf("unparseable game date %q: %w", raw, models.ErrInvalidInput)
	}
	month, _ := strconv.Atoi(match[1])
	day, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("game date %q out of range: %w", raw, models.ErrInvalidInput)
	}
	year := first
	if month == 1 {
		year = second
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// PropDate parses a prop scrape date such as "02-03-2023".
func PropDate(raw string) (time.Time, error) {
	t, err := time.Parse(propDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid prop date %q: %w", raw, models.ErrInvalidInput)
	}
	return t, nil
}

// FormatPropDate renders t in the prop scrape layout.
func FormatPropDate(t time.Time) string {
	return t.Format(propDateLayout)
}

// PropDateToGameDate turns "02-03-2023" into the "2/3" suffix used by game logs.
func PropDateToGameDate(raw string) (string, error) {
	t, err := PropDate(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day()), nil
}

// SameDay reports whether a prop date and a game log date fall on the same calendar day.
func SameDay(season, propDate, gameDate string) bool {
	p, err := PropDate(propDate)
	if err != nil {
		return false
	}
	g, err := GameDate(season, gameDate)
	if err != nil {
		return false
	}
	return p.Equal(g)
}
