package repository

import (
	"context"

	"github.com/yourusername/hoops-edge/internal/models"
)

// GameLogRepository defines the interface for player game log access
type GameLogRepository interface {
	// UpsertBatch writes logs keyed by player, team, season and date, returning the rows written.
	UpsertBatch(ctx context.Context, logs []models.GameLog) (int, error)
	// ListByPlayerTeam returns a player's logs for one team and season in date order.
	ListByPlayerTeam(ctx context.Context, player, team, season string) ([]models.GameLog, error)
	// ListByPlayer returns a player's logs for a season across every team.
	ListByPlayer(ctx context.Context, player, season string) ([]models.GameLog, error)
	// ListPlayers returns every player and team with logs in the season.
	ListPlayers(ctx context.Context, season string) ([]models.PlayerTeam, error)
}

// TeamStatRepository defines the interface for team season stat access
type TeamStatRepository interface {
	// ReplaceSeason swaps every row of the season for rows.
	ReplaceSeason(ctx context.Context, season string, rows []models.TeamSeasonStat) error
	ListBySeason(ctx context.Context, season string) ([]models.TeamSeasonStat, error)
}

// PropRepository defines the interface for prop line snapshots
type PropRepository interface {
	// InsertBatch appends snapshots, assigning IDs to any without one.
	InsertBatch(ctx context.Context, props []models.PropLine) (int, error)
	ListByDate(ctx context.Context, season, propType, date string) ([]models.PropLine, error)
	ListBySeason(ctx context.Context, season, propType string) ([]models.PropLine, error)
}

// CorrelationRepository defines the interface for correlation profile access
type CorrelationRepository interface {
	// Upsert replaces the profile for the player and team.
	Upsert(ctx context.Context, profile *models.CorrelationProfile) error
	// Get returns models.ErrNotFound when the player has no profile.
	Get(ctx context.Context, player, team string) (*models.CorrelationProfile, error)
	ListBySeason(ctx context.Context, season string) ([]models.CorrelationProfile, error)
}

// ReportRunRepository records completed report runs.
type ReportRunRepository interface {
	Save(ctx context.Context, run models.ReportRun) error
	Latest(ctx context.Context, limit int) ([]models.ReportRun, error)
}
