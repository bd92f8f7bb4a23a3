// Package store is the row-level client for the three league tables. It
// exposes typed per-table reads filtered by equality or membership, single
// and batched inserts, patch updates by id, and deletes. Consumers take the
// Store interface so tests can substitute an in-memory fake.
package store

import (
	"context"

	"github.com/bayshorevolley/league-data/internal/league"
)

// Store is the capability the reconciliation engine and snapshot service
// need from the backing row store.
type Store interface {
	// Reads
	Divisions(ctx context.Context) ([]league.Division, error)
	DivisionsByName(ctx context.Context, names []string) ([]league.Division, error)
	Teams(ctx context.Context) ([]league.Team, error)
	TeamsByDivision(ctx context.Context, divisionIDs []string) ([]league.Team, error)
	Players(ctx context.Context) ([]league.Player, error)
	PlayersByDivision(ctx context.Context, divisionIDs []string) ([]league.Player, error)
	PlayersByTeam(ctx context.Context, teamID string) ([]league.Player, error)

	// Writes
	InsertDivision(ctx context.Context, name string) (league.Division, error)
	InsertTeams(ctx context.Context, teams []league.Team) error
	UpdateTeam(ctx context.Context, id string, patch league.TeamPatch) error
	RemoveTeamCascade(ctx context.Context, id string) error
	InsertPlayers(ctx context.Context, players []league.Player) error
	UpdatePlayer(ctx context.Context, id string, patch league.PlayerPatch) error
	DeletePlayer(ctx context.Context, id string) error
}
