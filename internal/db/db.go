// Package db provides a pgxpool-based connection pool with prepared
// statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bayshorevolley/league-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the fixed read set shared by the API
// snapshot refresh and the ingest CLI. Writes use dynamic SQL since their
// SET clauses vary per patch.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Full-table reads (snapshot refresh)
		"list_divisions": "SELECT id, name FROM divisions ORDER BY name",
		"list_teams":     "SELECT id, division_id, name, wins, losses FROM teams",
		"list_players":   "SELECT id, division_id, team_id, player_name, awards, is_captain, position FROM players",

		// Filtered reads and fixed writes (reconciliation)
		"divisions_by_name":    "SELECT id, name FROM divisions WHERE name = ANY($1) ORDER BY name",
		"teams_by_division":    "SELECT id, division_id, name, wins, losses FROM teams WHERE division_id = ANY($1)",
		"players_by_division":  "SELECT id, division_id, team_id, player_name, awards, is_captain, position FROM players WHERE division_id = ANY($1)",
		"players_by_team":      "SELECT id, division_id, team_id, player_name, awards, is_captain, position FROM players WHERE team_id = $1",
		"insert_division":      "INSERT INTO divisions (id, name) VALUES ($1, $2) RETURNING id, name",
		"delete_team":          "DELETE FROM teams WHERE id = $1",
		"delete_player":        "DELETE FROM players WHERE id = $1",
		"release_team_players": "UPDATE players SET team_id = NULL WHERE team_id = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
