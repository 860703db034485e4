package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
)

const correlationColumns = `player_name, team_name, season, games, pace_corr, two_pt_corr,
	three_pt_corr, total_corr, opp_def_rtg_corr, opp_def_rb_per_corr, opp_off_rb_per_corr,
	rest_corr, updated_at`

// PostgresCorrelationRepository implements CorrelationRepository for PostgreSQL
type PostgresCorrelationRepository struct {
	db *database.DB
}

// NewPostgresCorrelationRepository creates a new correlation profile repository
func NewPostgresCorrelationRepository(db *database.DB) CorrelationRepository {
	return &PostgresCorrelationRepository{db: db}
}

// Upsert replaces a player's profile
func (r *PostgresCorrelationRepository) Upsert(ctx context.Context, p *models.CorrelationProfile) error {
	_, err := r.db.GetPool().Exec(ctx, `
		INSERT INTO player_stat_correlation (
			player_name, team_name, season, games, pace_corr, two_pt_corr, three_pt_corr,
			total_corr, opp_def_rtg_corr, opp_def_rb_per_corr, opp_off_rb_per_corr, rest_corr
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (player_name, team_name) DO UPDATE SET
			season = EXCLUDED.season,
			games = EXCLUDED.games,
			pace_corr = EXCLUDED.pace_corr,
			two_pt_corr = EXCLUDED.two_pt_corr,
			three_pt_corr = EXCLUDED.three_pt_corr,
			total_corr = EXCLUDED.total_corr,
			opp_def_rtg_corr = EXCLUDED.opp_def_rtg_corr,
			opp_def_rb_per_corr = EXCLUDED.opp_def_rb_per_corr,
			opp_off_rb_per_corr = EXCLUDED.opp_off_rb_per_corr,
			rest_corr = EXCLUDED.rest_corr,
			updated_at = NOW()`,
		p.PlayerName, p.TeamName, p.Season, p.Games, p.Pace, p.TwoPt, p.ThreePt, p.Total,
		p.DefRtg, p.DefReboundPer, p.OffReboundPer, p.Rest,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert correlation profile: %w", err)
	}
	return nil
}

// Get retrieves a player's profile
func (r *PostgresCorrelationRepository) Get(ctx context.Context, player, team string) (*models.CorrelationProfile, error) {
	rows, err := r.db.GetPool().Query(ctx, `SELECT `+correlationColumns+`
		FROM player_stat_correlation WHERE player_name = $1 AND team_name = $2`, player, team)
	if err != nil {
		return nil, fmt.Errorf("failed to query correlation profile: %w", err)
	}
	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.CorrelationProfile])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get correlation profile: %w", err)
	}
	return &profile, nil
}

// ListBySeason retrieves every profile of a season
func (r *PostgresCorrelationRepository) ListBySeason(ctx context.Context, season string) ([]models.CorrelationProfile, error) {
	rows, err := r.db.GetPool().Query(ctx, `SELECT `+correlationColumns+`
		FROM player_stat_correlation WHERE season = $1
		ORDER BY team_name, player_name`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query correlation profiles: %w", err)
	}
	profiles, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CorrelationProfile])
	if err != nil {
		return nil, fmt.Errorf("failed to scan correlation profiles: %w", err)
	}
	return profiles, nil
}
