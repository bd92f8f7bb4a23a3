package store

import (
	"fmt"
	"strings"

	"github.com/bayshorevolley/league-data/internal/config"
	"github.com/bayshorevolley/league-data/internal/league"
)

// setBuilder accumulates SET columns and positional args for a patch update.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)+1))
	b.args = append(b.args, v)
}

// sql renders "UPDATE <table> SET ... WHERE id = $n". Returns "" when no
// columns were added.
func (b *setBuilder) sql(table, id string) (string, []any) {
	if len(b.cols) == 0 {
		return "", nil
	}
	args := append(b.args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		table, strings.Join(b.cols, ", "), len(args)), args
}

func teamPatchSQL(id string, patch league.TeamPatch) (string, []any) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Wins != nil {
		b.add("wins", league.ClampCount(*patch.Wins))
	}
	if patch.Losses != nil {
		b.add("losses", league.ClampCount(*patch.Losses))
	}
	return b.sql(config.TeamsTable, id)
}

func playerPatchSQL(id string, patch league.PlayerPatch) (string, []any) {
	var b setBuilder
	if patch.PlayerName != nil {
		b.add("player_name", *patch.PlayerName)
	}
	if patch.DivisionID != nil {
		b.add("division_id", *patch.DivisionID)
	}
	if patch.SetTeamID {
		b.add("team_id", patch.TeamID)
	}
	if patch.Awards != nil {
		b.add("awards", league.ClampCount(*patch.Awards))
	}
	if patch.IsCaptain != nil {
		b.add("is_captain", *patch.IsCaptain)
	}
	if patch.Position != nil {
		b.add("position", string(*patch.Position))
	}
	return b.sql(config.PlayersTable, id)
}
