package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bayshorevolley/league-data/internal/league"
)

// PG is the Postgres-backed Store. Fixed-shape queries go through prepared
// statements registered by the db package; patch updates and batch inserts
// build their SQL per call.
type PG struct {
	pool *pgxpool.Pool
}

var _ Store = (*PG)(nil)

// New creates a Postgres-backed store over an existing pool.
func New(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

// --------------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------------

func (s *PG) Divisions(ctx context.Context) ([]league.Division, error) {
	return scanDivisions(s.pool.Query(ctx, "list_divisions"))
}

func (s *PG) DivisionsByName(ctx context.Context, names []string) ([]league.Division, error) {
	return scanDivisions(s.pool.Query(ctx, "divisions_by_name", names))
}

func (s *PG) Teams(ctx context.Context) ([]league.Team, error) {
	return scanTeams(s.pool.Query(ctx, "list_teams"))
}

func (s *PG) TeamsByDivision(ctx context.Context, divisionIDs []string) ([]league.Team, error) {
	return scanTeams(s.pool.Query(ctx, "teams_by_division", divisionIDs))
}

func (s *PG) Players(ctx context.Context) ([]league.Player, error) {
	return scanPlayers(s.pool.Query(ctx, "list_players"))
}

func (s *PG) PlayersByDivision(ctx context.Context, divisionIDs []string) ([]league.Player, error) {
	return scanPlayers(s.pool.Query(ctx, "players_by_division", divisionIDs))
}

func (s *PG) PlayersByTeam(ctx context.Context, teamID string) ([]league.Player, error) {
	return scanPlayers(s.pool.Query(ctx, "players_by_team", teamID))
}

func scanDivisions(rows pgx.Rows, err error) ([]league.Division, error) {
	if err != nil {
		return nil, fmt.Errorf("select divisions: %w", err)
	}
	defer rows.Close()

	var out []league.Division
	for rows.Next() {
		var d league.Division
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan division: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanTeams(rows pgx.Rows, err error) ([]league.Team, error) {
	if err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}
	defer rows.Close()

	var out []league.Team
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.ID, &t.DivisionID, &t.Name, &t.Wins, &t.Losses); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanPlayers(rows pgx.Rows, err error) ([]league.Player, error) {
	if err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	defer rows.Close()

	var out []league.Player
	for rows.Next() {
		var (
			p   league.Player
			pos string
		)
		if err := rows.Scan(&p.ID, &p.DivisionID, &p.TeamID, &p.PlayerName,
			&p.Awards, &p.IsCaptain, &pos); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.Position = league.ParsePosition(pos)
		out = append(out, p)
	}
	return out, rows.Err()
}

// --------------------------------------------------------------------------
// Writes
// --------------------------------------------------------------------------

func (s *PG) InsertDivision(ctx context.Context, name string) (league.Division, error) {
	var d league.Division
	err := s.pool.QueryRow(ctx, "insert_division", uuid.NewString(), name).Scan(&d.ID, &d.Name)
	if err != nil {
		return league.Division{}, fmt.Errorf("insert division %q: %w", name, err)
	}
	return d, nil
}

// InsertTeams inserts all rows in a single statement. Rows with an empty ID
// get one assigned here.
func (s *PG) InsertTeams(ctx context.Context, teams []league.Team) error {
	if len(teams) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("INSERT INTO teams (id, division_id, name, wins, losses) VALUES ")
	for i, t := range teams {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, orNewID(t.ID), t.DivisionID, t.Name,
			league.ClampCount(t.Wins), league.ClampCount(t.Losses))
	}

	if _, err := s.pool.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d teams: %w", len(teams), err)
	}
	return nil
}

func (s *PG) UpdateTeam(ctx context.Context, id string, patch league.TeamPatch) error {
	sql, args := teamPatchSQL(id, patch)
	if sql == "" {
		return nil
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update team %s: %w", id, err)
	}
	return nil
}

// RemoveTeamCascade clears the team reference on every player pointing at
// the team, then deletes the team row, in one transaction.
func (s *PG) RemoveTeamCascade(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove team %s: %w", id, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "release_team_players", id); err != nil {
		return fmt.Errorf("release players of team %s: %w", id, err)
	}
	if _, err := tx.Exec(ctx, "delete_team", id); err != nil {
		return fmt.Errorf("delete team %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit remove team %s: %w", id, err)
	}
	return nil
}

// InsertPlayers inserts all rows in a single statement. Callers chunk large
// batches; ids are assigned here when empty.
func (s *PG) InsertPlayers(ctx context.Context, players []league.Player) error {
	if len(players) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString("INSERT INTO players (id, division_id, team_id, player_name, awards, is_captain, position) VALUES ")
	for i, p := range players {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 7
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)
		pos := p.Position
		if pos == "" {
			pos = league.PosOutsideHitter
		}
		args = append(args, orNewID(p.ID), p.DivisionID, p.TeamID, p.PlayerName,
			league.ClampCount(p.Awards), p.IsCaptain, string(pos))
	}

	if _, err := s.pool.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d players: %w", len(players), err)
	}
	return nil
}

func (s *PG) UpdatePlayer(ctx context.Context, id string, patch league.PlayerPatch) error {
	sql, args := playerPatchSQL(id, patch)
	if sql == "" {
		return nil
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update player %s: %w", id, err)
	}
	return nil
}

func (s *PG) DeletePlayer(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, "delete_player", id); err != nil {
		return fmt.Errorf("delete player %s: %w", id, err)
	}
	return nil
}

func orNewID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
