package league

import "time"

// Snapshot is one consistent read of the three tables plus their normalized
// shapes. Consumers never mutate a snapshot; the holder replaces it
// wholesale on every refresh.
type Snapshot struct {
	Divisions []Division
	Teams     []Team
	Players   []Player

	Table     DivisionTable
	Summaries []PlayerSummary

	RefreshedAt time.Time
}

// BuildSnapshot normalizes raw rows into a snapshot. Divisions are expected
// in store order (sorted by name).
func BuildSnapshot(divisions []Division, teams []Team, players []Player) Snapshot {
	return Snapshot{
		Divisions:   divisions,
		Teams:       teams,
		Players:     players,
		Table:       NormalizeDivisions(divisions, teams),
		Summaries:   NormalizePlayers(players, divisions, teams),
		RefreshedAt: time.Now().UTC(),
	}
}

// DivisionNames returns division names in store order.
func (s *Snapshot) DivisionNames() []string {
	names := make([]string, 0, len(s.Divisions))
	for _, d := range s.Divisions {
		names = append(names, d.Name)
	}
	return names
}

// HasDivision reports whether a division with the given name exists.
func (s *Snapshot) HasDivision(name string) bool {
	for _, d := range s.Divisions {
		if d.Name == name {
			return true
		}
	}
	return false
}

// ResolveDivision validates a requested division selection. A selection
// naming a division that no longer exists falls back to the first division;
// with no divisions at all it resolves to "". Selections never go stale and
// never fail.
func (s *Snapshot) ResolveDivision(requested string) string {
	if requested != "" && s.HasDivision(requested) {
		return requested
	}
	if len(s.Divisions) == 0 {
		return ""
	}
	return s.Divisions[0].Name
}

// ResolveSelection validates a division+team selection. When the division
// falls back or the team is gone from it, the team selection clears.
func (s *Snapshot) ResolveSelection(division, team string) (string, string) {
	resolved := s.ResolveDivision(division)
	if resolved != division {
		return resolved, ""
	}
	if team == "" {
		return resolved, ""
	}
	for _, t := range s.Table[resolved] {
		if t.Name == team {
			return resolved, team
		}
	}
	return resolved, ""
}

// TeamSummary looks up one team's summary within a division.
func (s *Snapshot) TeamSummary(division, team string) (TeamSummary, bool) {
	for _, t := range s.Table[division] {
		if t.Name == team {
			return t, true
		}
	}
	return TeamSummary{}, false
}
