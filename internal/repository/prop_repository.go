package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
)

const propColumnList = `id, season, prop_name, player_name, team_name, opp_name, over_num, under_num,
	over_odds, under_odds, team_spread, game_total, prop_scraped, captured_at`

var propColumns = []string{
	"id", "season", "prop_name", "player_name", "team_name", "opp_name", "over_num", "under_num",
	"over_odds", "under_odds", "team_spread", "game_total", "prop_scraped", "captured_at",
}

// PostgresPropRepository implements PropRepository for PostgreSQL
type PostgresPropRepository struct {
	db *database.DB
}

// NewPostgresPropRepository creates a new prop repository
func NewPostgresPropRepository(db *database.DB) PropRepository {
	return &PostgresPropRepository{db: db}
}

// InsertBatch appends prop snapshots using COPY
func (r *PostgresPropRepository) InsertBatch(ctx context.Context, props []models.PropLine) (int, error) {
	if len(props) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	source := make([][]any, len(props))
	for i := range props {
		p := &props[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CapturedAt.IsZero() {
			p.CapturedAt = now
		}
		source[i] = []any{
			p.ID, p.Season, p.PropType, p.PlayerName, p.TeamName, p.OpponentName, p.OverLine,
			p.UnderLine, p.OverOdds, p.UnderOdds, p.TeamSpread, p.GameTotal, p.ScrapedDate, p.CapturedAt,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"props"}, propColumns, pgx.CopyFromRows(source))
	if err != nil {
		return 0, fmt.Errorf("failed to batch insert props: %w", err)
	}
	return int(count), nil
}

// ListByDate retrieves the props captured on one date
func (r *PostgresPropRepository) ListByDate(ctx context.Context, season, propType, date string) ([]models.PropLine, error) {
	query := `SELECT ` + propColumnList + ` FROM props
		WHERE season = $1 AND prop_name = $2 AND prop_scraped = $3
		ORDER BY team_name, captured_at`
	return r.list(ctx, query, season, propType, date)
}

// ListBySeason retrieves every prop of a type in a season
func (r *PostgresPropRepository) ListBySeason(ctx context.Context, season, propType string) ([]models.PropLine, error) {
	query := `SELECT ` + propColumnList + ` FROM props
		WHERE season = $1 AND prop_name = $2
		ORDER BY captured_at`
	return r.list(ctx, query, season, propType)
}

func (r *PostgresPropRepository) list(ctx context.Context, query string, args ...any) ([]models.PropLine, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query props: %w", err)
	}
	props, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PropLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan props: %w", err)
	}
	return props, nil
}
