package league

import (
	"cmp"
	"slices"
)

// TeamSummary is the denormalized team shape used by standings and roster
// displays.
type TeamSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Played returns the number of games the team has played.
func (t TeamSummary) Played() int { return t.Wins + t.Losses }

// DivisionTable maps a division name to that division's teams, sorted by
// team name.
type DivisionTable map[string][]TeamSummary

// PlayerSummary is the denormalized player shape: division and team resolved
// to names, counters coerced. Team and Division are empty strings when the
// reference is null or cannot be resolved.
type PlayerSummary struct {
	ID         string   `json:"id"`
	PlayerName string   `json:"playerName"`
	Team       string   `json:"team"`
	Division   string   `json:"division"`
	Awards     int      `json:"awards"`
	IsCaptain  bool     `json:"isCaptain"`
	Position   Position `json:"position"`
}

// NormalizeDivisions groups team rows under their division's name. Every
// division appears, with an empty list when it has no teams. Teams whose
// division_id resolves to no known division are dropped. Each division's
// list is sorted by team name. Pure and total: bad references degrade, they
// never fail.
func NormalizeDivisions(divisions []Division, teams []Team) DivisionTable {
	nameByID := make(map[string]string, len(divisions))
	table := make(DivisionTable, len(divisions))
	for _, d := range divisions {
		nameByID[d.ID] = d.Name
		table[d.Name] = []TeamSummary{}
	}

	for _, t := range teams {
		divName, ok := nameByID[t.DivisionID]
		if !ok {
			continue
		}
		table[divName] = append(table[divName], TeamSummary{
			ID:     t.ID,
			Name:   t.Name,
			Wins:   ClampCount(t.Wins),
			Losses: ClampCount(t.Losses),
		})
	}

	for name := range table {
		slices.SortFunc(table[name], func(a, b TeamSummary) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
	return table
}

// NormalizePlayers resolves each player's division and team references to
// names and coerces its counters. Unresolvable references become empty
// strings rather than errors.
func NormalizePlayers(players []Player, divisions []Division, teams []Team) []PlayerSummary {
	divName := make(map[string]string, len(divisions))
	for _, d := range divisions {
		divName[d.ID] = d.Name
	}
	teamName := make(map[string]string, len(teams))
	for _, t := range teams {
		teamName[t.ID] = t.Name
	}

	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		team := ""
		if p.TeamID != nil {
			team = teamName[*p.TeamID]
		}
		pos := p.Position
		if pos == "" {
			pos = PosOutsideHitter
		}
		out = append(out, PlayerSummary{
			ID:         p.ID,
			PlayerName: p.PlayerName,
			Team:       team,
			Division:   divName[p.DivisionID],
			Awards:     ClampCount(p.Awards),
			IsCaptain:  p.IsCaptain,
			Position:   pos,
		})
	}
	return out
}
