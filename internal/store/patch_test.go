package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayshorevolley/league-data/internal/league"
)

func TestTeamPatchSQL(t *testing.T) {
	sql, args := teamPatchSQL("t-1", league.TeamPatch{
		Name: league.StringPtr("Aces"),
		Wins: league.IntPtr(7),
	})
	assert.Equal(t, "UPDATE teams SET name = $1, wins = $2 WHERE id = $3", sql)
	assert.Equal(t, []any{"Aces", 7, "t-1"}, args)
}

func TestTeamPatchSQLClampsCounts(t *testing.T) {
	sql, args := teamPatchSQL("t-1", league.TeamPatch{
		Losses: league.IntPtr(-3),
	})
	assert.Equal(t, "UPDATE teams SET losses = $1 WHERE id = $2", sql)
	assert.Equal(t, []any{0, "t-1"}, args)
}

func TestTeamPatchSQLEmpty(t *testing.T) {
	sql, args := teamPatchSQL("t-1", league.TeamPatch{})
	assert.Equal(t, "", sql)
	assert.Nil(t, args)
}

func TestPlayerPatchSQL(t *testing.T) {
	teamID := "team-9"
	sql, args := playerPatchSQL("p-1", league.PlayerPatch{
		PlayerName: league.StringPtr("Sam"),
		TeamID:     &teamID,
		SetTeamID:  true,
		Awards:     league.IntPtr(2),
		IsCaptain:  league.BoolPtr(true),
		Position:   league.PositionPtr(league.PosSetter),
	})
	assert.Equal(t,
		"UPDATE players SET player_name = $1, team_id = $2, awards = $3, is_captain = $4, position = $5 WHERE id = $6",
		sql)
	require.Len(t, args, 6)
	assert.Equal(t, &teamID, args[1])
	assert.Equal(t, "S", args[4])
	assert.Equal(t, "p-1", args[5])
}

func TestPlayerPatchSQLClearsTeam(t *testing.T) {
	sql, args := playerPatchSQL("p-1", league.PlayerPatch{SetTeamID: true})
	assert.Equal(t, "UPDATE players SET team_id = $1 WHERE id = $2", sql)
	require.Len(t, args, 2)
	// A nil reference writes SQL NULL.
	assert.Nil(t, args[0])
}
