package league

import (
	"cmp"
	"regexp"
	"slices"
)

// DefaultLeaderboardSize is how many leaders a division surface shows when
// the caller doesn't ask for a specific count.
const DefaultLeaderboardSize = 5

// StandingRow is one line of a division standings table.
type StandingRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Played int    `json:"played"`
}

// Standings returns the division's teams sorted by wins descending. Ties
// keep the normalized (team-name) order. Unknown divisions yield nil.
func Standings(table DivisionTable, division string) []StandingRow {
	teams := table[division]
	rows := make([]StandingRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, StandingRow{
			ID:     t.ID,
			Name:   t.Name,
			Wins:   t.Wins,
			Losses: t.Losses,
			Played: t.Played(),
		})
	}
	slices.SortStableFunc(rows, func(a, b StandingRow) int {
		return cmp.Compare(b.Wins, a.Wins)
	})
	return rows
}

// Leaderboard returns the division's players sorted by award count
// descending, ties broken by name ascending. limit <= 0 returns everyone.
func Leaderboard(players []PlayerSummary, division string, limit int) []PlayerSummary {
	var leaders []PlayerSummary
	for _, p := range players {
		if p.Division == division {
			leaders = append(leaders, p)
		}
	}
	slices.SortFunc(leaders, func(a, b PlayerSummary) int {
		if c := cmp.Compare(b.Awards, a.Awards); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerName, b.PlayerName)
	})
	if limit > 0 && len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}

// Roster returns the players on one team in one division. An empty team
// selects unassigned players. Order: blank names always last, captains
// first, then name ascending.
func Roster(players []PlayerSummary, division, team string) []PlayerSummary {
	var roster []PlayerSummary
	for _, p := range players {
		if p.Division != division {
			continue
		}
		if p.Team != team {
			continue
		}
		roster = append(roster, p)
	}
	slices.SortFunc(roster, compareRoster)
	return roster
}

func compareRoster(a, b PlayerSummary) int {
	// Blank names sort after everything regardless of captain flag.
	aBlank, bBlank := a.PlayerName == "", b.PlayerName == ""
	if aBlank != bBlank {
		if aBlank {
			return 1
		}
		return -1
	}
	if a.IsCaptain != b.IsCaptain {
		if a.IsCaptain {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.PlayerName, b.PlayerName)
}

// Matches "women", "womens", "women's", any case, as a whole word.
var womenPattern = regexp.MustCompile(`(?i)\bwomen'?s?\b`)

// IsWomensDivision reports whether a division name denotes a women's
// division.
func IsWomensDivision(name string) bool {
	return womenPattern.MatchString(name)
}

// HonorLabel returns the match-honor column label for a division.
func HonorLabel(division string) string {
	if IsWomensDivision(division) {
		return "Woman of the Match"
	}
	return "Man of the Match"
}
