package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/hoops-edge/internal/database"
	"github.com/yourusername/hoops-edge/internal/models"
)

const gameLogColumns = `player_name, team_name, season, game_date, opp, result, minutes_played,
	points, rebounds, assists, steals, blocks, fouls, turn_overs, fg_made, fg_att,
	three_pt_made, three_pt_att, ft_made, ft_att, created_at`

const upsertGameLogQuery = `
	INSERT INTO player_gl (
		player_name, team_name, season, game_date, opp, result, minutes_played,
		points, rebounds, assists, steals, blocks, fouls, turn_overs, fg_made, fg_att,
		three_pt_made, three_pt_att, ft_made, ft_att
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	ON CONFLICT (player_name, team_name, season, game_date) DO UPDATE SET
		opp = EXCLUDED.opp,
		result = EXCLUDED.result,
		minutes_played = EXCLUDED.minutes_played,
		points = EXCLUDED.points,
		rebounds = EXCLUDED.rebounds,
		assists = EXCLUDED.assists,
		steals = EXCLUDED.steals,
		blocks = EXCLUDED.blocks,
		fouls = EXCLUDED.fouls,
		turn_overs = EXCLUDED.turn_overs,
		fg_made = EXCLUDED.fg_made,
		fg_att = EXCLUDED.fg_att,
		three_pt_made = EXCLUDED.three_pt_made,
		three_pt_att = EXCLUDED.three_pt_att,
		ft_made = EXCLUDED.ft_made,
		ft_att = EXCLUDED.ft_att`

// PostgresGameLogRepository implements GameLogRepository for PostgreSQL
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new game log repository
func NewPostgresGameLogRepository(db *database.DB) GameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// UpsertBatch writes every log in one transaction.
func (r *PostgresGameLogRepository) UpsertBatch(ctx context.Context, logs []models.GameLog) (int, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, gl := range logs {
		batch.Queue(upsertGameLogQuery,
			gl.PlayerName, gl.TeamName, gl.Season, gl.GameDate, gl.Opponent, gl.Result,
			gl.MinutesPlayed, gl.Points, gl.Rebounds, gl.Assists, gl.Steals, gl.Blocks,
			gl.Fouls, gl.Turnovers, gl.FGMade, gl.FGAttempted, gl.ThreePtMade,
			gl.ThreePtAttempted, gl.FTMade, gl.FTAttempted,
		)
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for range logs {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return err
			}
		}
		return results.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert game logs: %w", err)
	}
	return len(logs), nil
}

// ListByPlayerTeam retrieves a player's logs for one team and season
func (r *PostgresGameLogRepository) ListByPlayerTeam(ctx context.Context, player, team, season string) ([]models.GameLog, error) {
	query := `SELECT ` + gameLogColumns + ` FROM player_gl
		WHERE player_name = $1 AND team_name = $2 AND season = $3`
	return r.list(ctx, query, player, team, season)
}

// ListByPlayer retrieves a player's logs for a season across teams
func (r *PostgresGameLogRepository) ListByPlayer(ctx context.Context, player, season string) ([]models.GameLog, error) {
	query := `SELECT ` + gameLogColumns + ` FROM player_gl
		WHERE player_name = $1 AND season = $2`
	return r.list(ctx, query, player, season)
}

// ListPlayers retrieves the distinct player and team pairs of a season
func (r *PostgresGameLogRepository) ListPlayers(ctx context.Context, season string) ([]models.PlayerTeam, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT DISTINCT player_name, team_name FROM player_gl
		WHERE season = $1
		ORDER BY team_name, player_name`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	players, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PlayerTeam])
	if err != nil {
		return nil, fmt.Errorf("failed to scan players: %w", err)
	}
	return players, nil
}

func (r *PostgresGameLogRepository) list(ctx context.Context, query string, args ...any) ([]models.GameLog, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs: %w", err)
	}
	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.GameLog])
	if err != nil {
		return nil, fmt.Errorf("failed to scan game logs: %w", err)
	}
	sortByGameDate(logs)
	return logs, nil
}
