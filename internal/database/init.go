package database

import (
	"context"
	"fmt"

	"github.com/yourusername/hoops-edge/internal/config"
)

// schema is applied idempotently on startup. Game logs are keyed by player, team,
// season and date; props are append-only snapshots.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS player_gl (
		player_name    TEXT NOT NULL,
		team_name      TEXT NOT NULL,
		season         TEXT NOT NULL,
		game_date      TEXT NOT NULL,
		opp            TEXT NOT NULL,
		result         TEXT NOT NULL,
		minutes_played INTEGER NOT NULL DEFAULT 0,
		points         INTEGER NOT NULL DEFAULT 0,
		rebounds       INTEGER NOT NULL DEFAULT 0,
		assists        INTEGER NOT NULL DEFAULT 0,
		steals         INTEGER NOT NULL DEFAULT 0,
		blocks         INTEGER NOT NULL DEFAULT 0,
		fouls          INTEGER NOT NULL DEFAULT 0,
		turn_overs     INTEGER NOT NULL DEFAULT 0,
		fg_made        INTEGER NOT NULL DEFAULT 0,
		fg_att         INTEGER NOT NULL DEFAULT 0,
		three_pt_made  INTEGER NOT NULL DEFAULT 0,
		three_pt_att   INTEGER NOT NULL DEFAULT 0,
		ft_made        INTEGER NOT NULL DEFAULT 0,
		ft_att         INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (player_name, team_name, season, game_date)
	)`,
	`CREATE INDEX IF NOT EXISTS player_gl_season_idx ON player_gl (season, team_name)`,
	`CREATE TABLE IF NOT EXISTS team_season_stats (
		team_name         TEXT NOT NULL,
		season            TEXT NOT NULL,
		games_played      INTEGER NOT NULL DEFAULT 0,
		wins              INTEGER NOT NULL DEFAULT 0,
		losses            INTEGER NOT NULL DEFAULT 0,
		pace              DOUBLE PRECISION NOT NULL,
		off_rtg           DOUBLE PRECISION NOT NULL DEFAULT 0,
		def_rtg           DOUBLE PRECISION NOT NULL,
		net_rtg           DOUBLE PRECISION NOT NULL DEFAULT 0,
		off_rebound_per   DOUBLE PRECISION NOT NULL,
		def_rebound_per   DOUBLE PRECISION NOT NULL,
		eff_fg_per        DOUBLE PRECISION NOT NULL DEFAULT 0,
		true_shooting_per DOUBLE PRECISION NOT NULL DEFAULT 0,
		two_pt_made       DOUBLE PRECISION NOT NULL,
		two_pt_att        DOUBLE PRECISION NOT NULL DEFAULT 0,
		three_pt_made     DOUBLE PRECISION NOT NULL,
		three_pt_att      DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (team_name, season)
	)`,
	`CREATE TABLE IF NOT EXISTS props (
		id           UUID PRIMARY KEY,
		season       TEXT NOT NULL,
		prop_name    TEXT NOT NULL,
		player_name  TEXT NOT NULL,
		team_name    TEXT NOT NULL,
		opp_name     TEXT NOT NULL,
		over_num     DOUBLE PRECISION NOT NULL,
		under_num    DOUBLE PRECISION NOT NULL,
		over_odds    TEXT NOT NULL,
		under_odds   TEXT NOT NULL,
		team_spread  DOUBLE PRECISION NOT NULL DEFAULT 0,
		game_total   DOUBLE PRECISION NOT NULL DEFAULT 0,
		prop_scraped TEXT NOT NULL,
		captured_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS props_lookup_idx ON props (season, prop_name, prop_scraped)`,
	`CREATE TABLE IF NOT EXISTS player_stat_correlation (
		player_name         TEXT NOT NULL,
		team_name           TEXT NOT NULL,
		season              TEXT NOT NULL,
		games               INTEGER NOT NULL DEFAULT 0,
		pace_corr           DOUBLE PRECISION NOT NULL DEFAULT 0,
		two_pt_corr         DOUBLE PRECISION NOT NULL DEFAULT 0,
		three_pt_corr       DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_corr          DOUBLE PRECISION NOT NULL DEFAULT 0,
		opp_def_rtg_corr    DOUBLE PRECISION NOT NULL DEFAULT 0,
		opp_def_rb_per_corr DOUBLE PRECISION NOT NULL DEFAULT 0,
		opp_off_rb_per_corr DOUBLE PRECISION NOT NULL DEFAULT 0,
		rest_corr           DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (player_name, team_name)
	)`,
	`CREATE TABLE IF NOT EXISTS report_runs (
		run_id        UUID PRIMARY KEY,
		prop_date     TEXT NOT NULL,
		prop_type     TEXT NOT NULL,
		row_count     INTEGER NOT NULL DEFAULT 0,
		failure_count INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Initialize creates a database connection pool and applies the schema.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.ApplySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ApplySchema creates any missing tables and indexes.
func (db *DB) ApplySchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
