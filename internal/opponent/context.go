package opponent

import (
	"fmt"

	"github.com/yourusername/hoops-edge/internal/models"
)

// Context holds one index per rankable stat for a season. It is built once per run
// and shared read-only by the correlation, projection and classifier stages.
type Context struct {
	season  string
	indexes map[models.StatName]*Index
}

// NewContext builds every stat index from the season's team rows.
func NewContext(season string, rows []models.TeamSeasonStat) (*Context, error) {
	ctx := &Context{
		season:  season,
		indexes: make(map[models.StatName]*Index, len(models.AllStats)),
	}
	for _, stat := range models.AllStats {
		idx, err := NewIndex(stat, season, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s index: %w", stat, err)
		}
		ctx.indexes[stat] = idx
	}
	return ctx, nil
}

// Season returns the context's season.
func (c *Context) Season() string { return c.season }

// Index returns the index for a stat.
func (c *Context) Index(stat models.StatName) *Index {
	return c.indexes[stat]
}

// Value looks up a team's stat and reports a missing team as ErrMissingContext.
func (c *Context) Value(stat models.StatName, team string) (float64, error) {
	idx, ok := c.indexes[stat]
	if !ok {
		return 0, fmt.Errorf("no %s index: %w", stat, models.ErrMissingContext)
	}
	v, ok := idx.Value(team)
	if !ok {
		return 0, fmt.Errorf("team %q has no %s in %s: %w", team, stat, c.season, models.ErrMissingContext)
	}
	return v, nil
}

// Rank returns a team's position from the top of a stat.
func (c *Context) Rank(stat models.StatName, team string) (int, error) {
	idx, ok := c.indexes[stat]
	if !ok {
		return 0, fmt.Errorf("no %s index: %w", stat, models.ErrMissingContext)
	}
	rank, ok := idx.Rank(team)
	if !ok {
		return 0, fmt.Errorf("team %q not ranked on %s: %w", team, stat, models.ErrMissingContext)
	}
	return rank, nil
}

// Similar returns the teams nearest to team on a stat.
func (c *Context) Similar(stat models.StatName, team string) ([]string, error) {
	idx, ok := c.indexes[stat]
	if !ok {
		return nil, fmt.Errorf("no %s index: %w", stat, models.ErrMissingContext)
	}
	teams, ok := idx.NearestTo(team)
	if !ok {
		return nil, fmt.Errorf("team %q has no %s in %s: %w", team, stat, c.season, models.ErrMissingContext)
	}
	return teams, nil
}
