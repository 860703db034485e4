// Package opponent ranks every team on the stats used to classify an opponent.
package opponent

import (
	"fmt"
	"sort"

	"github.com/yourusername/hoops-edge/internal/models"
)

// similarCount is how many neighbouring teams Nearest returns.
const similarCount = 4

// Bucket classifies a team against the top-N and bottom-N of a stat.
type Bucket int

// Buckets
const (
	BucketNone Bucket = iota
	BucketTop
	BucketBottom
)

// topIsHighest records, per stat, whether the "top" team has the highest value.
// A lower defensive rating or fewer shots allowed is the better defense.
var topIsHighest = map[models.StatName]bool{
	models.StatPace:          true,
	models.StatDefRtg:        false,
	models.StatTwoPtMade:     false,
	models.StatThreePtMade:   false,
	models.StatDefReboundPer: true,
	models.StatOffReboundPer: true,
}

type entry struct {
	team  string
	value float64
}

// Index ranks the league on one stat for one season.
type Index struct {
	stat   models.StatName
	season string
	values map[string]float64
	// ranked runs from the top team to the worst.
	ranked []entry
	// ascending runs from the lowest value to the highest.
	ascending []entry
}

// NewIndex builds an index from the season's team rows. Rows of other seasons are ignored.
func NewIndex(stat models.StatName, season string, rows []models.TeamSeasonStat) (*Index, error) {
	highest, ok := topIsHighest[stat]
	if !ok {
		return nil, fmt.Errorf("unknown stat %q: %w", stat, models.ErrInvalidInput)
	}

	idx := &Index{
		stat:   stat,
		season: season,
		values: make(map[string]float64, len(rows)),
	}
	for i := range rows {
		if rows[i].Season != season {
			continue
		}
		value, _ := rows[i].Value(stat)
		team := rows[i].TeamName
		if _, dup := idx.values[team]; dup {
			return nil, fmt.Errorf("duplicate %s row for %s in %s: %w", stat, team, season, models.ErrDuplicateKey)
		}
		idx.values[team] = value
		idx.ascending = append(idx.ascending, entry{team: team, value: value})
	}
	if len(idx.ascending) == 0 {
		return nil, fmt.Errorf("no %s rows for season %s: %w", stat, season, models.ErrMissingContext)
	}

	// Team name order breaks ties so positions are stable between runs.
	sort.Slice(idx.ascending, func(i, j int) bool {
		a, b := idx.ascending[i], idx.ascending[j]
		if a.value != b.value {
			return a.value < b.value
		}
		return a.team < b.team
	})

	idx.ranked = make([]entry, len(idx.ascending))
	copy(idx.ranked, idx.ascending)
	if highest {
		sort.SliceStable(idx.ranked, func(i, j int) bool {
			return idx.ranked[i].value > idx.ranked[j].value
		})
	}
	return idx, nil
}

// Stat returns the indexed stat.
func (i *Index) Stat() models.StatName { return i.stat }

// Season returns the indexed season.
func (i *Index) Season() string { return i.season }

// Len returns the number of teams indexed.
func (i *Index) Len() int { return len(i.ranked) }

// Value returns a team's stat value.
func (i *Index) Value(team string) (float64, bool) {
	v, ok := i.values[team]
	return v, ok
}

// Values returns a copy of the team to value map, for callers exporting the whole table.
func (i *Index) Values() map[string]float64 {
	out := make(map[string]float64, len(i.values))
	for team, v := range i.values {
		out[team] = v
	}
	return out
}

// Top returns the n best teams, best first.
func (i *Index) Top(n int) []string {
	n = i.clamp(n)
	teams := make([]string, 0, n)
	for _, e := range i.ranked[:n] {
		teams = append(teams, e.team)
	}
	return teams
}

// Bottom returns the n worst teams, worst first.
func (i *Index) Bottom(n int) []string {
	n = i.clamp(n)
	teams := make([]string, 0, n)
	for k := len(i.ranked) - 1; k >= len(i.ranked)-n; k-- {
		teams = append(teams, i.ranked[k].team)
	}
	return teams
}

// Rank returns a team's zero-based position from the top.
func (i *Index) Rank(team string) (int, bool) {
	for pos, e := range i.ranked {
		if e.team == team {
			return pos, true
		}
	}
	return 0, false
}

// Bucket classifies a team against the top n and bottom n.
// When the two overlap a team counts as top.
func (i *Index) Bucket(team string, n int) Bucket {
	if n <= 0 {
		return BucketNone
	}
	if contains(i.Top(n), team) {
		return BucketTop
	}
	if contains(i.Bottom(n), team) {
		return BucketBottom
	}
	return BucketNone
}

func contains(teams []string, team string) bool {
	for _, t := range teams {
		if t == team {
			return true
		}
	}
	return false
}

// Nearest is the lookup for callers holding a raw stat value rather than a team.
// It returns the 4 teams adjacent to value in sorted order, two below and two above,
// shifted inward at either end of the table. The first team holding exactly value is
// treated as the reference team and left out.
func (i *Index) Nearest(value float64) []string {
	pos := sort.Search(len(i.ascending), func(k int) bool {
		return i.ascending[k].value >= value
	})
	if pos < len(i.ascending) && i.ascending[pos].value == value {
		return i.window(pos, true)
	}
	return i.window(pos, false)
}

// NearestTo is Nearest anchored on a team's own position, so ties never displace it.
func (i *Index) NearestTo(team string) ([]string, bool) {
	for pos, e := range i.ascending {
		if e.team == team {
			return i.window(pos, true), true
		}
	}
	return nil, false
}

func (i *Index) window(pos int, exclude bool) []string {
	candidates := make([]entry, 0, len(i.ascending))
	candidates = append(candidates, i.ascending[:pos]...)
	if exclude {
		candidates = append(candidates, i.ascending[pos+1:]...)
	} else {
		candidates = append(candidates, i.ascending[pos:]...)
	}

	count := similarCount
	if count > len(candidates) {
		count = len(candidates)
	}
	start := pos - similarCount/2
	if start > len(candidates)-count {
		start = len(candidates) - count
	}
	if start < 0 {
		start = 0
	}

	teams := make([]string, 0, count)
	for _, e := range candidates[start : start+count] {
		teams = append(teams, e.team)
	}
	return teams
}

func (i *Index) clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > len(i.ranked) {
		return len(i.ranked)
	}
	return n
}
