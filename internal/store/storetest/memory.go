// Package storetest provides an in-memory Store implementation for tests.
// It mirrors the Postgres store's observable behavior: name-ordered division
// reads, id assignment on insert, patch semantics, and the team-removal
// cascade.
package storetest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/store"
)

// Memory is an in-memory Store. The zero value is not usable; call New.
type Memory struct {
	mu        sync.Mutex
	divisions []league.Division
	teams     []league.Team
	players   []league.Player
	nextID    int

	// Call counters, for asserting reconciliation minimality.
	TeamInsertCalls   int
	TeamUpdateCalls   int
	PlayerInsertCalls int
	PlayerUpdateCalls int

	// Errs injects failures by operation name ("list_teams",
	// "teams_by_division", "insert_teams", "update_team",
	// "insert_players", "update_player", "delete_player", "remove_team").
	Errs map[string]error
}

var _ store.Store = (*Memory)(nil)

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{Errs: make(map[string]error)}
}

func (m *Memory) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// ResetCounters zeroes the call counters between reconciliation runs.
func (m *Memory) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamInsertCalls = 0
	m.TeamUpdateCalls = 0
	m.PlayerInsertCalls = 0
	m.PlayerUpdateCalls = 0
}

// --------------------------------------------------------------------------
// Seeding helpers
// --------------------------------------------------------------------------

// AddDivision inserts a division directly, bypassing uniqueness checks.
func (m *Memory) AddDivision(name string) league.Division {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := league.Division{ID: m.id("div"), Name: name}
	m.divisions = append(m.divisions, d)
	return d
}

// AddTeam inserts a team directly.
func (m *Memory) AddTeam(divisionID, name string, wins, losses int) league.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := league.Team{ID: m.id("team"), DivisionID: divisionID, Name: name, Wins: wins, Losses: losses}
	m.teams = append(m.teams, t)
	return t
}

// AddPlayer inserts a player directly.
func (m *Memory) AddPlayer(p league.Player) league.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.id("player")
	}
	if p.Position == "" {
		p.Position = league.PosOutsideHitter
	}
	m.players = append(m.players, p)
	return p
}

// PlayerByID looks up a player row.
func (m *Memory) PlayerByID(id string) (league.Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.ID == id {
			return p, true
		}
	}
	return league.Player{}, false
}

// TeamByID looks up a team row.
func (m *Memory) TeamByID(id string) (league.Team, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.ID == id {
			return t, true
		}
	}
	return league.Team{}, false
}

// --------------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------------

func (m *Memory) Divisions(ctx context.Context) ([]league.Division, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.divisions)
	slices.SortFunc(out, func(a, b league.Division) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *Memory) DivisionsByName(ctx context.Context, names []string) ([]league.Division, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []league.Division
	for _, d := range m.divisions {
		if slices.Contains(names, d.Name) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b league.Division) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (m *Memory) Teams(ctx context.Context) ([]league.Team, error) {
	if err := m.Errs["list_teams"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.teams), nil
}

func (m *Memory) TeamsByDivision(ctx context.Context, divisionIDs []string) ([]league.Team, error) {
	if err := m.Errs["teams_by_division"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []league.Team
	for _, t := range m.teams {
		if slices.Contains(divisionIDs, t.DivisionID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) Players(ctx context.Context) ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.players), nil
}

func (m *Memory) PlayersByDivision(ctx context.Context, divisionIDs []string) ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []league.Player
	for _, p := range m.players {
		if slices.Contains(divisionIDs, p.DivisionID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) PlayersByTeam(ctx context.Context, teamID string) ([]league.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []league.Player
	for _, p := range m.players {
		if p.TeamID != nil && *p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --------------------------------------------------------------------------
// Writes
// --------------------------------------------------------------------------

func (m *Memory) InsertDivision(ctx context.Context, name string) (league.Division, error) {
	if err := m.Errs["insert_division"]; err != nil {
		return league.Division{}, err
	}
	return m.AddDivision(name), nil
}

func (m *Memory) InsertTeams(ctx context.Context, teams []league.Team) error {
	if err := m.Errs["insert_teams"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(teams) > 0 {
		m.TeamInsertCalls++
	}
	for _, t := range teams {
		if t.ID == "" {
			t.ID = m.id("team")
		}
		t.Wins = league.ClampCount(t.Wins)
		t.Losses = league.ClampCount(t.Losses)
		m.teams = append(m.teams, t)
	}
	return nil
}

func (m *Memory) UpdateTeam(ctx context.Context, id string, patch league.TeamPatch) error {
	if err := m.Errs["update_team"]; err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamUpdateCalls++
	for i := range m.teams {
		if m.teams[i].ID != id {
			continue
		}
		if patch.Name != nil {
			m.teams[i].Name = *patch.Name
		}
		if patch.Wins != nil {
			m.teams[i].Wins = league.ClampCount(*patch.Wins)
		}
		if patch.Losses != nil {
			m.teams[i].Losses = league.ClampCount(*patch.Losses)
		}
	}
	return nil
}

func (m *Memory) RemoveTeamCascade(ctx context.Context, id string) error {
	if err := m.Errs["remove_team"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.players {
		if m.players[i].TeamID != nil && *m.players[i].TeamID == id {
			m.players[i].TeamID = nil
		}
	}
	m.teams = slices.DeleteFunc(m.teams, func(t league.Team) bool { return t.ID == id })
	return nil
}

func (m *Memory) InsertPlayers(ctx context.Context, players []league.Player) error {
	if err := m.Errs["insert_players"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(players) > 0 {
		m.PlayerInsertCalls++
	}
	for _, p := range players {
		if p.ID == "" {
			p.ID = m.id("player")
		}
		if p.Position == "" {
			p.Position = league.PosOutsideHitter
		}
		p.Awards = league.ClampCount(p.Awards)
		m.players = append(m.players, p)
	}
	return nil
}

func (m *Memory) UpdatePlayer(ctx context.Context, id string, patch league.PlayerPatch) error {
	if err := m.Errs["update_player"]; err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerUpdateCalls++
	for i := range m.players {
		if m.players[i].ID != id {
			continue
		}
		if patch.PlayerName != nil {
			m.players[i].PlayerName = *patch.PlayerName
		}
		if patch.DivisionID != nil {
			m.players[i].DivisionID = *patch.DivisionID
		}
		if patch.SetTeamID {
			m.players[i].TeamID = patch.TeamID
		}
		if patch.Awards != nil {
			m.players[i].Awards = league.ClampCount(*patch.Awards)
		}
		if patch.IsCaptain != nil {
			m.players[i].IsCaptain = *patch.IsCaptain
		}
		if patch.Position != nil {
			m.players[i].Position = *patch.Position
		}
	}
	return nil
}

func (m *Memory) DeletePlayer(ctx context.Context, id string) error {
	if err := m.Errs["delete_player"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = slices.DeleteFunc(m.players, func(p league.Player) bool { return p.ID == id })
	return nil
}
