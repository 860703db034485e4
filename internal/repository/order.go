package repository

import (
	"sort"

	"github.com/yourusername/hoops-edge/internal/models"
	"github.com/yourusername/hoops-edge/internal/nba"
)

// sortByGameDate orders logs chronologically. Logs with unparseable dates sort last,
// in their original order.
func sortByGameDate(logs []models.GameLog) {
	type keyed struct {
		unix int64
		ok   bool
	}
	keys := make(map[models.GameLogKey]keyed, len(logs))
	for _, gl := range logs {
		d, err := nba.GameDate(gl.Season, gl.GameDate)
		keys[gl.Key()] = keyed{unix: d.Unix(), ok: err == nil}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		a, b := keys[logs[i].Key()], keys[logs[j].Key()]
		if a.ok != b.ok {
			return a.ok
		}
		return a.unix < b.unix
	})
}
