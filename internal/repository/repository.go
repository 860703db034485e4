// Package repository persists game logs, team stats, props, correlation profiles and report runs.
package repository

import (
	"fmt"
	"time"

	"github.com/yourusername/hoops-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	GameLogs     GameLogRepository
	TeamStats    TeamStatRepository
	Props        PropRepository
	Correlations CorrelationRepository
	ReportRuns   ReportRunRepository
}

// NewRepositories creates and returns all repository implementations. A positive
// cacheTTL puts a read-through cache in front of game log and profile reads.
func NewRepositories(db *database.DB, cacheTTL time.Duration) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	repos := &Repositories{
		GameLogs:     NewPostgresGameLogRepository(db),
		TeamStats:    NewPostgresTeamStatRepository(db),
		Props:        NewPostgresPropRepository(db),
		Correlations: NewPostgresCorrelationRepository(db),
		ReportRuns:   NewPostgresReportRunRepository(db),
	}
	if cacheTTL > 0 {
		repos.GameLogs = NewCachedGameLogRepository(repos.GameLogs, cacheTTL)
		repos.Correlations = NewCachedCorrelationRepository(repos.Correlations, cacheTTL)
	}
	return repos, nil
}

// NewMemoryRepositories backs every repository with one MemoryStore.
func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		GameLogs:     store.GameLogs,
		TeamStats:    store.TeamStats,
		Props:        store.Props,
		Correlations: store.Correlations,
		ReportRuns:   store.ReportRuns,
	}
}
