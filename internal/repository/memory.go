package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/hoops-edge/internal/models"
)

// MemoryStore is an in-memory implementation of every repository, safe for
// concurrent use. Reads return copies.
type MemoryStore struct {
	GameLogs     *MemoryGameLogs
	TeamStats    *MemoryTeamStats
	Props        *MemoryProps
	Correlations *MemoryCorrelations
	ReportRuns   *MemoryReportRuns
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		GameLogs:     &MemoryGameLogs{rows: make(map[models.GameLogKey]models.GameLog)},
		TeamStats:    &MemoryTeamStats{rows: make(map[string][]models.TeamSeasonStat)},
		Props:        &MemoryProps{},
		Correlations: &MemoryCorrelations{rows: make(map[models.PlayerTeam]models.CorrelationProfile)},
		ReportRuns:   &MemoryReportRuns{},
	}
}

// MemoryGameLogs implements GameLogRepository.
type MemoryGameLogs struct {
	mu   sync.RWMutex
	rows map[models.GameLogKey]models.GameLog
}

// UpsertBatch stores logs by natural key.
func (m *MemoryGameLogs) UpsertBatch(_ context.Context, logs []models.GameLog) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, gl := range logs {
		if existing, ok := m.rows[gl.Key()]; ok {
			gl.CreatedAt = existing.CreatedAt
		} else if gl.CreatedAt.IsZero() {
			gl.CreatedAt = time.Now().UTC()
		}
		m.rows[gl.Key()] = gl
	}
	return len(logs), nil
}

// ListByPlayerTeam returns a player's logs for one team and season.
func (m *MemoryGameLogs) ListByPlayerTeam(_ context.Context, player, team, season string) ([]models.GameLog, error) {
	return m.filter(func(gl models.GameLog) bool {
		return gl.PlayerName == player && gl.TeamName == team && gl.Season == season
	}), nil
}

// ListByPlayer returns a player's logs for a season.
func (m *MemoryGameLogs) ListByPlayer(_ context.Context, player, season string) ([]models.GameLog, error) {
	return m.filter(func(gl models.GameLog) bool {
		return gl.PlayerName == player && gl.Season == season
	}), nil
}

// ListPlayers returns the season's player and team pairs ordered by team then player.
func (m *MemoryGameLogs) ListPlayers(_ context.Context, season string) ([]models.PlayerTeam, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[models.PlayerTeam]bool)
	var players []models.PlayerTeam
	for _, gl := range m.rows {
		pt := models.PlayerTeam{PlayerName: gl.PlayerName, TeamName: gl.TeamName}
		if gl.Season != season || seen[pt] {
			continue
		}
		seen[pt] = true
		players = append(players, pt)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].TeamName != players[j].TeamName {
			return players[i].TeamName < players[j].TeamName
		}
		return players[i].PlayerName < players[j].PlayerName
	})
	return players, nil
}

func (m *MemoryGameLogs) filter(keep func(models.GameLog) bool) []models.GameLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var logs []models.GameLog
	for _, gl := range m.rows {
		if keep(gl) {
			logs = append(logs, gl)
		}
	}
	// map iteration is random; fix an order before the stable date sort
	sort.Slice(logs, func(i, j int) bool { return logs[i].GameDate < logs[j].GameDate })
	sortByGameDate(logs)
	return logs
}

// MemoryTeamStats implements TeamStatRepository.
type MemoryTeamStats struct {
	mu   sync.RWMutex
	rows map[string][]models.TeamSeasonStat
}

// ReplaceSeason swaps the season's rows.
func (m *MemoryTeamStats) ReplaceSeason(_ context.Context, season string, rows []models.TeamSeasonStat) error {
	for _, t := range rows {
		if t.Season != season {
			return fmt.Errorf("row for %s is season %q, not %q: %w", t.TeamName, t.Season, season, models.ErrInvalidInput)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	stored := make([]models.TeamSeasonStat, len(rows))
	for i, t := range rows {
		t.UpdatedAt = now
		stored[i] = t
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].TeamName < stored[j].TeamName })
	m.rows[season] = stored
	return nil
}

// ListBySeason returns the season's rows ordered by team.
func (m *MemoryTeamStats) ListBySeason(_ context.Context, season string) ([]models.TeamSeasonStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.TeamSeasonStat(nil), m.rows[season]...), nil
}

// MemoryProps implements PropRepository.
type MemoryProps struct {
	mu   sync.RWMutex
	rows []models.PropLine
}

// InsertBatch appends props.
func (m *MemoryProps) InsertBatch(_ context.Context, props []models.PropLine) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for i := range props {
		if props[i].ID == uuid.Nil {
			props[i].ID = uuid.New()
		}
		if props[i].CapturedAt.IsZero() {
			props[i].CapturedAt = now
		}
		m.rows = append(m.rows, props[i])
	}
	return len(props), nil
}

// ListByDate returns props captured on a date, grouped by team in capture order.
func (m *MemoryProps) ListByDate(_ context.Context, season, propType, date string) ([]models.PropLine, error) {
	props := m.filter(func(p models.PropLine) bool {
		return p.Season == season && p.PropType == propType && p.ScrapedDate == date
	})
	sort.SliceStable(props, func(i, j int) bool { return props[i].TeamName < props[j].TeamName })
	return props, nil
}

// ListBySeason returns a season's props in capture order.
func (m *MemoryProps) ListBySeason(_ context.Context, season, propType string) ([]models.PropLine, error) {
	return m.filter(func(p models.PropLine) bool {
		return p.Season == season && p.PropType == propType
	}), nil
}

func (m *MemoryProps) filter(keep func(models.PropLine) bool) []models.PropLine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var props []models.PropLine
	for _, p := range m.rows {
		if keep(p) {
			props = append(props, p)
		}
	}
	return props
}

// MemoryCorrelations implements CorrelationRepository.
type MemoryCorrelations struct {
	mu   sync.RWMutex
	rows map[models.PlayerTeam]models.CorrelationProfile
}

// Upsert replaces a profile.
func (m *MemoryCorrelations) Upsert(_ context.Context, p *models.CorrelationProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	m.rows[models.PlayerTeam{PlayerName: p.PlayerName, TeamName: p.TeamName}] = stored
	return nil
}

// Get returns a profile or models.ErrNotFound.
func (m *MemoryCorrelations) Get(_ context.Context, player, team string) (*models.CorrelationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.rows[models.PlayerTeam{PlayerName: player, TeamName: team}]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

// ListBySeason returns a season's profiles ordered by team then player.
func (m *MemoryCorrelations) ListBySeason(_ context.Context, season string) ([]models.CorrelationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var profiles []models.CorrelationProfile
	for _, p := range m.rows {
		if p.Season == season {
			profiles = append(profiles, p)
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].TeamName != profiles[j].TeamName {
			return profiles[i].TeamName < profiles[j].TeamName
		}
		return profiles[i].PlayerName < profiles[j].PlayerName
	})
	return profiles, nil
}

// MemoryReportRuns implements ReportRunRepository.
type MemoryReportRuns struct {
	mu   sync.RWMutex
	rows []models.ReportRun
}

// Save records a run.
func (m *MemoryReportRuns) Save(_ context.Context, run models.ReportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, run)
	return nil
}

// Latest returns up to limit runs, newest first.
func (m *MemoryReportRuns) Latest(_ context.Context, limit int) ([]models.ReportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := append([]models.ReportRun(nil), m.rows...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	if limit >= 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
