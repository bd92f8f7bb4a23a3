package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandings(t *testing.T) {
	table := DivisionTable{
		"Mens - A": {
			{ID: "T2", Name: "Aces", Wins: 5, Losses: 0},
			{ID: "T1", Name: "Spikers", Wins: 3, Losses: 1},
			{ID: "T3", Name: "Zephyrs", Wins: 3, Losses: 2},
		},
	}

	rows := Standings(table, "Mens - A")
	require.Len(t, rows, 3)
	assert.Equal(t, "Aces", rows[0].Name)
	// Equal wins keep name order from the normalized table.
	assert.Equal(t, "Spikers", rows[1].Name)
	assert.Equal(t, "Zephyrs", rows[2].Name)
	assert.Equal(t, 4, rows[1].Played)

	assert.Empty(t, Standings(table, "No Such Division"))
}

func TestLeaderboard(t *testing.T) {
	players := []PlayerSummary{
		{PlayerName: "Zed", Division: "Mens - A", Awards: 3},
		{PlayerName: "Bob", Division: "Mens - A", Awards: 5},
		{PlayerName: "Cleo", Division: "Mens - A", Awards: 0},
		{PlayerName: "Amy", Division: "Mens - A", Awards: 5},
		{PlayerName: "Rival", Division: "Womens", Awards: 9},
	}

	leaders := Leaderboard(players, "Mens - A", 0)
	require.Len(t, leaders, 4)
	names := []string{leaders[0].PlayerName, leaders[1].PlayerName, leaders[2].PlayerName, leaders[3].PlayerName}
	assert.Equal(t, []string{"Amy", "Bob", "Zed", "Cleo"}, names)

	top := Leaderboard(players, "Mens - A", 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Amy", top[0].PlayerName)
	assert.Equal(t, "Bob", top[1].PlayerName)
}

func TestRoster(t *testing.T) {
	players := []PlayerSummary{
		{PlayerName: "Zed", Division: "Mens - A", Team: "Spikers"},
		{PlayerName: "", Division: "Mens - A", Team: "Spikers", IsCaptain: true},
		{PlayerName: "Amy", Division: "Mens - A", Team: "Spikers", IsCaptain: true},
		{PlayerName: "Bob", Division: "Mens - A", Team: "Aces"},
		{PlayerName: "Eve", Division: "Womens", Team: "Spikers"},
	}

	roster := Roster(players, "Mens - A", "Spikers")
	require.Len(t, roster, 3)
	// Captains first, then name, blank names always last even when captain.
	assert.Equal(t, "Amy", roster[0].PlayerName)
	assert.Equal(t, "Zed", roster[1].PlayerName)
	assert.Equal(t, "", roster[2].PlayerName)
}

func TestRosterUnassigned(t *testing.T) {
	players := []PlayerSummary{
		{PlayerName: "Free", Division: "Mens - A", Team: ""},
		{PlayerName: "Taken", Division: "Mens - A", Team: "Spikers"},
	}
	roster := Roster(players, "Mens - A", "")
	require.Len(t, roster, 1)
	assert.Equal(t, "Free", roster[0].PlayerName)
}

func TestIsWomensDivision(t *testing.T) {
	for name, want := range map[string]bool{
		"Womens":     true,
		"Women's A":  true,
		"WOMEN":      true,
		"women rec":  true,
		"Mens - A":   false,
		"Co-Ed":      false,
		"Menswomenx": false,
	} {
		assert.Equal(t, want, IsWomensDivision(name), name)
	}
}

func TestHonorLabel(t *testing.T) {
	assert.Equal(t, "Woman of the Match", HonorLabel("Womens"))
	assert.Equal(t, "Man of the Match", HonorLabel("Mens - B"))
}
