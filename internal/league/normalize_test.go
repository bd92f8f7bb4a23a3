package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDivisions = []Division{
		{ID: "D1", Name: "Mens - A"},
		{ID: "D2", Name: "Womens"},
		{ID: "D3", Name: "Mens - B"},
	}
	testTeams = []Team{
		{ID: "T1", DivisionID: "D1", Name: "Spikers", Wins: 3, Losses: 1},
		{ID: "T2", DivisionID: "D1", Name: "Aces", Wins: 5, Losses: 0},
		{ID: "T3", DivisionID: "D2", Name: "Phoenix", Wins: 2, Losses: 2},
		{ID: "T4", DivisionID: "unknown", Name: "Ghosts", Wins: 9, Losses: 9},
	}
)

func TestNormalizeDivisions(t *testing.T) {
	table := NormalizeDivisions(testDivisions, testTeams)

	// Every division present, even empty ones.
	require.Len(t, table, 3)
	assert.Empty(t, table["Mens - B"])

	// Teams sorted by name within a division.
	mensA := table["Mens - A"]
	require.Len(t, mensA, 2)
	assert.Equal(t, "Aces", mensA[0].Name)
	assert.Equal(t, "Spikers", mensA[1].Name)
	assert.Equal(t, 4, mensA[1].Played())

	// Teams with an unknown division are dropped.
	for _, teams := range table {
		for _, team := range teams {
			assert.NotEqual(t, "Ghosts", team.Name)
		}
	}
}

func TestNormalizeDivisionsClampsCounters(t *testing.T) {
	table := NormalizeDivisions(
		[]Division{{ID: "D1", Name: "Mens - A"}},
		[]Team{{ID: "T1", DivisionID: "D1", Name: "Spikers", Wins: -2, Losses: 1}},
	)
	require.Len(t, table["Mens - A"], 1)
	assert.Equal(t, 0, table["Mens - A"][0].Wins)
}

func TestNormalizePlayers(t *testing.T) {
	teamID := "T1"
	gone := "missing-team"
	players := []Player{
		{ID: "P1", DivisionID: "D1", TeamID: &teamID, PlayerName: "Sam", Awards: 2, IsCaptain: true, Position: PosSetter},
		{ID: "P2", DivisionID: "D1", TeamID: nil, PlayerName: "Lee", Awards: -1},
		{ID: "P3", DivisionID: "nope", TeamID: &gone, PlayerName: "Ghost"},
	}

	out := NormalizePlayers(players, testDivisions, testTeams)
	require.Len(t, out, 3)

	assert.Equal(t, "Spikers", out[0].Team)
	assert.Equal(t, "Mens - A", out[0].Division)
	assert.Equal(t, PosSetter, out[0].Position)

	// Nil team resolves to empty string, negative awards clamp, missing
	// position defaults.
	assert.Equal(t, "", out[1].Team)
	assert.Equal(t, 0, out[1].Awards)
	assert.Equal(t, PosOutsideHitter, out[1].Position)

	// Unresolvable references degrade to empty strings, never errors.
	assert.Equal(t, "", out[2].Team)
	assert.Equal(t, "", out[2].Division)
}
