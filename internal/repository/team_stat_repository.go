package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
)

var teamStatColumns = []string{
	"team_name", "season", "games_played", "wins", "losses", "pace", "off_rtg", "def_rtg",
	"net_rtg", "off_rebound_per", "def_rebound_per", "eff_fg_per", "true_shooting_per",
	"two_pt_made", "two_pt_att", "three_pt_made", "three_pt_att",
}

// PostgresTeamStatRepository implements TeamStatRepository for PostgreSQL
type PostgresTeamStatRepository struct {
	db *database.DB
}

// NewPostgresTeamStatRepository creates a new team stat repository
func NewPostgresTeamStatRepository(db *database.DB) TeamStatRepository {
	return &PostgresTeamStatRepository{db: db}
}

// ReplaceSeason deletes the season and copies rows in, atomically.
func (r *PostgresTeamStatRepository) ReplaceSeason(ctx context.Context, season string, rows []models.TeamSeasonStat) error {
	source := make([][]any, len(rows))
	for i, t := range rows {
		if t.Season != season {
			return fmt.Errorf("row for %s is season %q, not %q: %w", t.TeamName, t.Season, season, models.ErrInvalidInput)
		}
		source[i] = []any{
			t.TeamName, t.Season, t.GamesPlayed, t.Wins, t.Losses, t.Pace, t.OffRtg, t.DefRtg,
			t.NetRtg, t.OffReboundPer, t.DefReboundPer, t.EffFGPer, t.TrueShootingPer,
			t.TwoPtMade, t.TwoPtAttempted, t.ThreePtMade, t.ThreePtAttempted,
		}
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_season_stats WHERE season = $1`, season); err != nil {
			return err
		}
		count, err := tx.CopyFrom(ctx, pgx.Identifier{"team_season_stats"}, teamStatColumns, pgx.CopyFromRows(source))
		if err != nil {
			return err
		}
		if count != int64(len(rows)) {
			return fmt.Errorf("inserted %d rows, expected %d", count, len(rows))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace team stats for %s: %w", season, err)
	}
	return nil
}

// ListBySeason retrieves every team's stats for a season
func (r *PostgresTeamStatRepository) ListBySeason(ctx context.Context, season string) ([]models.TeamSeasonStat, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT team_name, season, games_played, wins, losses, pace, off_rtg, def_rtg, net_rtg,
		       off_rebound_per, def_rebound_per, eff_fg_per, true_shooting_per,
		       two_pt_made, two_pt_att, three_pt_made, three_pt_att, updated_at
		FROM team_season_stats
		WHERE season = $1
		ORDER BY team_name`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query team stats: %w", err)
	}
	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TeamSeasonStat])
	if err != nil {
		return nil, fmt.Errorf("failed to scan team stats: %w", err)
	}
	return stats, nil
}
