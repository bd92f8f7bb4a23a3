package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bayshorevolley/league-data/internal/league"
)

// DesiredTeam describes a team as the import source wants it, addressed by
// division name.
type DesiredTeam struct {
	Division string
	Name     string
	Wins     int
	Losses   int
}

// DesiredPlayer describes a player as the import source wants it. Team is a
// team name within the same division; empty means unassigned.
type DesiredPlayer struct {
	Division   string
	Team       string
	PlayerName string
	Awards     int
	IsCaptain  bool
	Position   league.Position
}

// Desired is the full desired state for one bulk reconciliation.
type Desired struct {
	Teams   []DesiredTeam
	Players []DesiredPlayer
}

// divisionNames returns the distinct division names referenced, sorted.
func (d Desired) divisionNames() []string {
	seen := make(map[string]struct{})
	for _, t := range d.Teams {
		seen[t.Division] = struct{}{}
	}
	for _, p := range d.Players {
		seen[p.Division] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Bulk reconciles the desired state against the store: teams first (batch
// insert, per-row updates), then a re-read so fresh team ids are known, then
// players (chunked batch inserts, per-row updates). Divisions are never
// created here; a desired division missing from the store fails the whole
// run before any write. Rows present in the store but absent from the
// desired state are left untouched.
//
// There is no transaction across the run: an error aborts the remaining
// steps but already-committed writes stay committed.
func (e *Engine) Bulk(ctx context.Context, desired Desired) (*Result, error) {
	names := desired.divisionNames()
	if len(names) == 0 {
		return &Result{}, nil
	}

	// Pre-flight: resolve every division by exact name, fail fast on any miss.
	divisions, err := e.store.DivisionsByName(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve divisions: %w", err)
	}
	idByName := make(map[string]string, len(divisions))
	for _, d := range divisions {
		idByName[d.Name] = d.ID
	}
	var missing []string
	for _, n := range names {
		if _, ok := idByName[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("divisions not found (create them first): %s",
			strings.Join(missing, ", "))
	}

	divisionIDs := make([]string, 0, len(divisions))
	for _, d := range divisions {
		divisionIDs = append(divisionIDs, d.ID)
	}

	result := &Result{}

	if err := e.reconcileTeams(ctx, desired.Teams, idByName, divisionIDs, result); err != nil {
		return result, err
	}

	// Re-read teams so freshly inserted ones have ids for player linkage.
	teams, err := e.store.TeamsByDivision(ctx, divisionIDs)
	if err != nil {
		return result, fmt.Errorf("re-read teams: %w", err)
	}
	teamIDByKey := make(map[league.TeamKey]string, len(teams))
	for _, t := range teams {
		teamIDByKey[t.Key()] = t.ID
	}

	if err := e.reconcilePlayers(ctx, desired.Players, idByName, divisionIDs, teamIDByKey, result); err != nil {
		return result, err
	}

	e.logger.Info("Bulk reconciliation complete", "summary", result.Summary())
	return result, nil
}

func (e *Engine) reconcileTeams(ctx context.Context, desired []DesiredTeam,
	idByName map[string]string, divisionIDs []string, result *Result) error {

	existing, err := e.store.TeamsByDivision(ctx, divisionIDs)
	if err != nil {
		return fmt.Errorf("fetch teams: %w", err)
	}
	byKey := make(map[league.TeamKey]league.Team, len(existing))
	for _, t := range existing {
		byKey[t.Key()] = t
	}

	var inserts []league.Team
	type teamUpdate struct {
		id    string
		patch league.TeamPatch
	}
	var updates []teamUpdate

	for _, d := range desired {
		row := league.Team{
			DivisionID: idByName[d.Division],
			Name:       d.Name,
			Wins:       league.ClampCount(d.Wins),
			Losses:     league.ClampCount(d.Losses),
		}
		ex, ok := byKey[row.Key()]
		if !ok {
			inserts = append(inserts, row)
			continue
		}
		if ex.Wins != row.Wins || ex.Losses != row.Losses {
			updates = append(updates, teamUpdate{
				id: ex.ID,
				patch: league.TeamPatch{
					Wins:   league.IntPtr(row.Wins),
					Losses: league.IntPtr(row.Losses),
				},
			})
		}
	}

	if err := e.store.InsertTeams(ctx, inserts); err != nil {
		return err
	}
	result.TeamsInserted = len(inserts)

	for _, u := range updates {
		if err := e.store.UpdateTeam(ctx, u.id, u.patch); err != nil {
			return err
		}
		result.TeamsUpdated++
	}
	return nil
}

func (e *Engine) reconcilePlayers(ctx context.Context, desired []DesiredPlayer,
	idByName map[string]string, divisionIDs []string,
	teamIDByKey map[league.TeamKey]string, result *Result) error {

	existing, err := e.store.PlayersByDivision(ctx, divisionIDs)
	if err != nil {
		return fmt.Errorf("fetch players: %w", err)
	}
	byKey := make(map[league.PlayerKey]league.Player, len(existing))
	for _, p := range existing {
		byKey[p.Key()] = p
	}

	var inserts []league.Player
	type playerUpdate struct {
		id    string
		patch league.PlayerPatch
	}
	var updates []playerUpdate

	for _, d := range desired {
		divisionID := idByName[d.Division]

		// Resolve the team reference inside the same division; unknown or
		// empty team names leave the player unassigned.
		var teamID *string
		if d.Team != "" {
			if id, ok := teamIDByKey[league.TeamKey{DivisionID: divisionID, Name: d.Team}]; ok {
				teamID = &id
			}
		}

		pos := d.Position
		if pos == "" {
			pos = league.PosOutsideHitter
		}
		row := league.Player{
			DivisionID: divisionID,
			TeamID:     teamID,
			PlayerName: d.PlayerName,
			Awards:     league.ClampCount(d.Awards),
			IsCaptain:  d.IsCaptain,
			Position:   pos,
		}

		ex, ok := byKey[row.Key()]
		if !ok {
			inserts = append(inserts, row)
			continue
		}
		if !sameTeamRef(ex.TeamID, row.TeamID) || ex.Awards != row.Awards ||
			ex.IsCaptain != row.IsCaptain || ex.Position != row.Position {
			updates = append(updates, playerUpdate{
				id: ex.ID,
				patch: league.PlayerPatch{
					PlayerName: league.StringPtr(row.PlayerName),
					TeamID:     row.TeamID,
					SetTeamID:  true,
					Awards:     league.IntPtr(row.Awards),
					IsCaptain:  league.BoolPtr(row.IsCaptain),
					Position:   league.PositionPtr(row.Position),
				},
			})
		}
	}

	// Chunked inserts, submitted strictly in order. A failure mid-way leaves
	// earlier chunks committed.
	for i := 0; i < len(inserts); i += e.chunk {
		end := min(i+e.chunk, len(inserts))
		if err := e.store.InsertPlayers(ctx, inserts[i:end]); err != nil {
			return err
		}
		result.PlayersInserted += end - i
	}

	for _, u := range updates {
		if err := e.store.UpdatePlayer(ctx, u.id, u.patch); err != nil {
			return err
		}
		result.PlayersUpdated++
	}
	return nil
}

func sameTeamRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
