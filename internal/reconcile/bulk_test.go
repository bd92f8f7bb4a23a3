package reconcile

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/store/storetest"
)

func testEngine(t *testing.T, chunk int) (*Engine, *storetest.Memory) {
	t.Helper()
	mem := storetest.New()
	return New(mem, slog.New(slog.NewTextHandler(io.Discard, nil)), chunk), mem
}

func seedDesired() Desired {
	return Desired{
		Teams: []DesiredTeam{
			{Division: "Mens - A", Name: "Spikers", Wins: 3, Losses: 1},
			{Division: "Mens - A", Name: "Aces", Wins: 5, Losses: 0},
			{Division: "Womens", Name: "Phoenix", Wins: 2, Losses: 2},
		},
		Players: []DesiredPlayer{
			{Division: "Mens - A", Team: "Spikers", PlayerName: "Sam", Awards: 2, IsCaptain: true, Position: league.PosOutsideHitter},
			{Division: "Mens - A", Team: "Spikers", PlayerName: "Lee", Position: league.PosSetter},
			{Division: "Womens", Team: "", PlayerName: "Eve", Awards: 1},
		},
	}
}

func TestBulkFirstRunInsertsEverything(t *testing.T) {
	engine, mem := testEngine(t, 0)
	mem.AddDivision("Mens - A")
	mem.AddDivision("Womens")

	result, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TeamsInserted)
	assert.Equal(t, 0, result.TeamsUpdated)
	assert.Equal(t, 3, result.PlayersInserted)
	assert.Equal(t, 0, result.PlayersUpdated)

	// Sam ended up linked to the freshly inserted Spikers row.
	players, err := mem.Players(context.Background())
	require.NoError(t, err)
	var sam league.Player
	for _, p := range players {
		if p.PlayerName == "Sam" {
			sam = p
		}
	}
	require.NotNil(t, sam.TeamID)
	team, ok := mem.TeamByID(*sam.TeamID)
	require.True(t, ok)
	assert.Equal(t, "Spikers", team.Name)
	assert.True(t, sam.IsCaptain)
}

func TestBulkIsIdempotent(t *testing.T) {
	engine, mem := testEngine(t, 0)
	mem.AddDivision("Mens - A")
	mem.AddDivision("Womens")

	_, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)
	mem.ResetCounters()

	second, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)
	assert.True(t, second.Empty(), "second run should be a no-op, got %s", second.Summary())
	assert.Equal(t, 0, mem.TeamUpdateCalls)
	assert.Equal(t, 0, mem.PlayerUpdateCalls)
}

func TestBulkUpdatesOnlyChangedRows(t *testing.T) {
	engine, mem := testEngine(t, 0)
	mem.AddDivision("Mens - A")
	mem.AddDivision("Womens")

	_, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)
	mem.ResetCounters()

	// Spikers won again and Sam took another honor.
	changed := seedDesired()
	changed.Teams[0].Wins = 4
	changed.Players[0].Awards = 3

	result, err := engine.Bulk(context.Background(), changed)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TeamsInserted)
	assert.Equal(t, 1, result.TeamsUpdated)
	assert.Equal(t, 0, result.PlayersInserted)
	assert.Equal(t, 1, result.PlayersUpdated)
}

func TestBulkMatchesPlayersCaseInsensitively(t *testing.T) {
	engine, mem := testEngine(t, 0)
	mem.AddDivision("Mens - A")
	mem.AddDivision("Womens")

	_, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)

	recased := seedDesired()
	recased.Players[0].PlayerName = "SAM"

	result, err := engine.Bulk(context.Background(), recased)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PlayersInserted)
}

func TestBulkFailsFastOnMissingDivision(t *testing.T) {
	engine, mem := testEngine(t, 0)
	mem.AddDivision("Mens - A")
	// "Womens" deliberately absent.

	_, err := engine.Bulk(context.Background(), seedDesired())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Womens")

	// Nothing was written before the pre-flight failure.
	teams, _ := mem.Teams(context.Background())
	assert.Empty(t, teams)
}

func TestBulkNeverDeletes(t *testing.T) {
	engine, mem := testEngine(t, 0)
	div := mem.AddDivision("Mens - A")
	mem.AddDivision("Womens")
	mem.AddTeam(div.ID, "Veterans", 0, 9)
	mem.AddPlayer(league.Player{DivisionID: div.ID, PlayerName: "Old Guard"})

	_, err := engine.Bulk(context.Background(), seedDesired())
	require.NoError(t, err)

	teams, _ := mem.TeamsByDivision(context.Background(), []string{div.ID})
	names := make([]string, 0, len(teams))
	for _, tm := range teams {
		names = append(names, tm.Name)
	}
	assert.Contains(t, names, "Veterans")

	players, _ := mem.PlayersByDivision(context.Background(), []string{div.ID})
	found := false
	for _, p := range players {
		if p.PlayerName == "Old Guard" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBulkChunksPlayerInserts(t *testing.T) {
	engine, mem := testEngine(t, 2)
	div := mem.AddDivision("Mens - A")

	desired := Desired{Players: []DesiredPlayer{
		{Division: "Mens - A", PlayerName: "P1"},
		{Division: "Mens - A", PlayerName: "P2"},
		{Division: "Mens - A", PlayerName: "P3"},
		{Division: "Mens - A", PlayerName: "P4"},
		{Division: "Mens - A", PlayerName: "P5"},
	}}

	result, err := engine.Bulk(context.Background(), desired)
	require.NoError(t, err)
	assert.Equal(t, 5, result.PlayersInserted)
	assert.Equal(t, 3, mem.PlayerInsertCalls)

	players, _ := mem.PlayersByDivision(context.Background(), []string{div.ID})
	assert.Len(t, players, 5)
}

func TestBulkEmptyDesiredIsNoOp(t *testing.T) {
	engine, _ := testEngine(t, 0)
	result, err := engine.Bulk(context.Background(), Desired{})
	require.NoError(t, err)
	assert.True(t, result.Empty())
}
