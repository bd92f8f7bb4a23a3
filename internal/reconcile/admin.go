package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bayshorevolley/league-data/internal/league"
)

var (
	// ErrNotFound is returned when a targeted entity no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a create would violate a natural key.
	ErrDuplicate = errors.New("already exists")
)

// TeamField names an editable team column.
type TeamField string

const (
	TeamFieldName   TeamField = "name"
	TeamFieldWins   TeamField = "wins"
	TeamFieldLosses TeamField = "losses"
)

// PlayerField names an editable player column.
type PlayerField string

const (
	PlayerFieldName     PlayerField = "name"
	PlayerFieldTeam     PlayerField = "team"
	PlayerFieldDivision PlayerField = "division"
	PlayerFieldAwards   PlayerField = "awards"
	PlayerFieldCaptain  PlayerField = "captain"
	PlayerFieldPosition PlayerField = "position"
)

// NewPlayer is the input for creating a player. Team is optional.
type NewPlayer struct {
	Division   string
	Team       string
	PlayerName string
	Position   league.Position
	IsCaptain  bool
	Awards     int
}

// CreateDivision inserts a new division after checking the name is unique.
func (e *Engine) CreateDivision(ctx context.Context, name string) (league.Division, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return league.Division{}, fmt.Errorf("division name is required")
	}

	existing, err := e.store.DivisionsByName(ctx, []string{name})
	if err != nil {
		return league.Division{}, fmt.Errorf("check division %q: %w", name, err)
	}
	if len(existing) > 0 {
		return league.Division{}, fmt.Errorf("division %q: %w", name, ErrDuplicate)
	}

	return e.store.InsertDivision(ctx, name)
}

// CreateTeam inserts a team with a zero record, enforcing uniqueness of
// (division, name).
func (e *Engine) CreateTeam(ctx context.Context, divisionName, teamName string) error {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return fmt.Errorf("team name is required")
	}

	division, err := e.divisionByName(ctx, divisionName)
	if err != nil {
		return err
	}

	teams, err := e.store.TeamsByDivision(ctx, []string{division.ID})
	if err != nil {
		return fmt.Errorf("check teams in %q: %w", divisionName, err)
	}
	for _, t := range teams {
		if t.Name == teamName {
			return fmt.Errorf("team %q in %q: %w", teamName, divisionName, ErrDuplicate)
		}
	}

	return e.store.InsertTeams(ctx, []league.Team{{
		DivisionID: division.ID,
		Name:       teamName,
	}})
}

// CreatePlayer inserts a player, resolving the optional team within the
// player's division. Non-blank names must be unique per division
// (case-insensitively); blank placeholder rows may repeat.
func (e *Engine) CreatePlayer(ctx context.Context, np NewPlayer) error {
	division, err := e.divisionByName(ctx, np.Division)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(np.PlayerName); name != "" {
		key := league.NewPlayerKey(division.ID, name)
		players, err := e.store.PlayersByDivision(ctx, []string{division.ID})
		if err != nil {
			return fmt.Errorf("check players in %q: %w", np.Division, err)
		}
		for _, p := range players {
			if p.Key() == key {
				return fmt.Errorf("player %q in %q: %w", name, np.Division, ErrDuplicate)
			}
		}
	}

	var teamID *string
	if np.Team != "" {
		team, err := e.teamByName(ctx, division.ID, np.Team)
		if err != nil {
			return err
		}
		teamID = &team.ID
	}

	pos := np.Position
	if pos == "" {
		pos = league.PosOutsideHitter
	}
	return e.store.InsertPlayers(ctx, []league.Player{{
		DivisionID: division.ID,
		TeamID:     teamID,
		PlayerName: np.PlayerName,
		Awards:     league.ClampCount(np.Awards),
		IsCaptain:  np.IsCaptain,
		Position:   pos,
	}})
}

// UpdateTeamField applies one edited field to a team. Numeric input coerces
// through the usual rules (unparseable or negative becomes 0). Renames keep
// (division, name) unique, same as CreateTeam.
func (e *Engine) UpdateTeamField(ctx context.Context, teamID string, field TeamField, value string) error {
	var patch league.TeamPatch
	switch field {
	case TeamFieldName:
		name := strings.TrimSpace(value)
		if name == "" {
			return fmt.Errorf("team name cannot be blank")
		}
		team, err := e.teamByID(ctx, teamID)
		if err != nil {
			return err
		}
		siblings, err := e.store.TeamsByDivision(ctx, []string{team.DivisionID})
		if err != nil {
			return fmt.Errorf("check teams: %w", err)
		}
		for _, t := range siblings {
			if t.ID != teamID && t.Name == name {
				return fmt.Errorf("team %q: %w", name, ErrDuplicate)
			}
		}
		patch.Name = &name
	case TeamFieldWins:
		patch.Wins = league.IntPtr(league.CoerceCount(value))
	case TeamFieldLosses:
		patch.Losses = league.IntPtr(league.CoerceCount(value))
	default:
		return fmt.Errorf("unknown team field %q", field)
	}
	return e.store.UpdateTeam(ctx, teamID, patch)
}

// UpdatePlayerField applies one edited field to a player.
//
// Changing the team resolves the team name within activeDivision and also
// re-derives division_id from the resolved team so the two never diverge;
// an empty team or a name matching no team clears the assignment and leaves
// the division alone, while a store error during resolution aborts the edit.
// Changing the division clears the team assignment unless the current team
// already belongs to the new division.
func (e *Engine) UpdatePlayerField(ctx context.Context, playerID string, field PlayerField, value, activeDivision string) error {
	player, err := e.playerByID(ctx, playerID)
	if err != nil {
		return err
	}

	var patch league.PlayerPatch
	switch field {
	case PlayerFieldName:
		// Renames keep non-blank names unique per division, same as
		// CreatePlayer. Blank placeholder rows may repeat.
		if name := strings.TrimSpace(value); name != "" {
			key := league.NewPlayerKey(player.DivisionID, name)
			players, err := e.store.PlayersByDivision(ctx, []string{player.DivisionID})
			if err != nil {
				return fmt.Errorf("check players: %w", err)
			}
			for _, p := range players {
				if p.ID != playerID && p.Key() == key {
					return fmt.Errorf("player %q: %w", name, ErrDuplicate)
				}
			}
		}
		patch.PlayerName = &value
	case PlayerFieldAwards:
		patch.Awards = league.IntPtr(league.CoerceCount(value))
	case PlayerFieldCaptain:
		patch.IsCaptain = league.BoolPtr(league.ParseFlag(value))
	case PlayerFieldPosition:
		patch.Position = league.PositionPtr(league.ParsePosition(value))

	case PlayerFieldTeam:
		patch.SetTeamID = true
		if value != "" {
			division, err := e.divisionByName(ctx, activeDivision)
			if err != nil {
				return err
			}
			team, err := e.teamByName(ctx, division.ID, value)
			switch {
			case err == nil:
				patch.TeamID = &team.ID
				patch.DivisionID = &team.DivisionID
			case errors.Is(err, ErrNotFound):
				// Unknown team name clears the assignment.
			default:
				return err
			}
		}

	case PlayerFieldDivision:
		division, err := e.divisionByName(ctx, value)
		if err != nil {
			return err
		}
		patch.DivisionID = &division.ID
		if player.TeamID != nil {
			teams, err := e.store.TeamsByDivision(ctx, []string{division.ID})
			if err != nil {
				return fmt.Errorf("check teams in %q: %w", value, err)
			}
			stays := false
			for _, t := range teams {
				if t.ID == *player.TeamID {
					stays = true
					break
				}
			}
			if !stays {
				patch.SetTeamID = true // clears
			}
		}

	default:
		return fmt.Errorf("unknown player field %q", field)
	}

	return e.store.UpdatePlayer(ctx, playerID, patch)
}

// RemoveTeam deletes a team, first clearing the team reference on every
// player assigned to it. Players keep their division.
func (e *Engine) RemoveTeam(ctx context.Context, teamID string) error {
	return e.store.RemoveTeamCascade(ctx, teamID)
}

// RemovePlayer deletes a player. No cascading effects.
func (e *Engine) RemovePlayer(ctx context.Context, playerID string) error {
	return e.store.DeletePlayer(ctx, playerID)
}

// --------------------------------------------------------------------------
// Lookups
// --------------------------------------------------------------------------

func (e *Engine) divisionByName(ctx context.Context, name string) (league.Division, error) {
	divisions, err := e.store.DivisionsByName(ctx, []string{name})
	if err != nil {
		return league.Division{}, fmt.Errorf("resolve division %q: %w", name, err)
	}
	if len(divisions) == 0 {
		return league.Division{}, fmt.Errorf("division %q: %w", name, ErrNotFound)
	}
	return divisions[0], nil
}

func (e *Engine) teamByName(ctx context.Context, divisionID, name string) (league.Team, error) {
	teams, err := e.store.TeamsByDivision(ctx, []string{divisionID})
	if err != nil {
		return league.Team{}, fmt.Errorf("resolve team %q: %w", name, err)
	}
	for _, t := range teams {
		if t.Name == name {
			return t, nil
		}
	}
	return league.Team{}, fmt.Errorf("team %q: %w", name, ErrNotFound)
}

func (e *Engine) teamByID(ctx context.Context, id string) (league.Team, error) {
	teams, err := e.store.Teams(ctx)
	if err != nil {
		return league.Team{}, fmt.Errorf("resolve team %s: %w", id, err)
	}
	for _, t := range teams {
		if t.ID == id {
			return t, nil
		}
	}
	return league.Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
}

func (e *Engine) playerByID(ctx context.Context, id string) (league.Player, error) {
	players, err := e.store.Players(ctx)
	if err != nil {
		return league.Player{}, fmt.Errorf("resolve player %s: %w", id, err)
	}
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return league.Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
}
