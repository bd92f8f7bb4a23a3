// Package seedfile reads the operator-maintained seed document and turns it
// into the desired state consumed by bulk reconciliation. The document is
// the spreadsheet export the league keeps offline:
//
//	{
//	  "divisionStats": { "mens-a": [{"name": "...", "wins": 3, "losses": 1}] },
//	  "awardData": [{"playerName": "...", "team": "...", "division": "mens-a",
//	                 "awards": 2, "isCaptain": true, "position": "OH"}]
//	}
package seedfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/reconcile"
)

// divisionNames maps document division slugs to the exact stored division
// names. Slugs with no entry pass through verbatim and must then match a
// stored division or the import fails.
var divisionNames = map[string]string{
	"mens-a":   "Mens - A",
	"mens-b":   "Mens - B",
	"womens-a": "Womens",
}

// DivisionName resolves a document slug to the stored division name.
func DivisionName(slug string) string {
	if name, ok := divisionNames[slug]; ok {
		return name
	}
	return slug
}

// TeamStat is one team line under divisionStats.
type TeamStat struct {
	Name   string       `json:"name"`
	Wins   league.Count `json:"wins"`
	Losses league.Count `json:"losses"`
}

// AwardEntry is one player line under awardData.
type AwardEntry struct {
	PlayerName string       `json:"playerName"`
	Team       string       `json:"team"`
	Division   string       `json:"division"`
	Awards     league.Count `json:"awards"`
	IsCaptain  bool         `json:"isCaptain"`
	Position   string       `json:"position"`
}

// Document is the parsed seed file.
type Document struct {
	DivisionStats map[string][]TeamStat `json:"divisionStats"`
	AwardData     []AwardEntry          `json:"awardData"`
}

// Load reads and parses a seed document from disk.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a seed document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &doc, nil
}

// Desired maps the document onto the reconciliation input: slugs resolve to
// stored division names, counters are already coerced, positions default to
// OH.
func (d *Document) Desired() reconcile.Desired {
	var out reconcile.Desired

	slugs := make([]string, 0, len(d.DivisionStats))
	for slug := range d.DivisionStats {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)

	for _, slug := range slugs {
		division := DivisionName(slug)
		for _, t := range d.DivisionStats[slug] {
			out.Teams = append(out.Teams, reconcile.DesiredTeam{
				Division: division,
				Name:     t.Name,
				Wins:     int(t.Wins),
				Losses:   int(t.Losses),
			})
		}
	}

	for _, a := range d.AwardData {
		out.Players = append(out.Players, reconcile.DesiredPlayer{
			Division:   DivisionName(a.Division),
			Team:       a.Team,
			PlayerName: a.PlayerName,
			Awards:     int(a.Awards),
			IsCaptain:  a.IsCaptain,
			Position:   league.ParsePosition(a.Position),
		})
	}

	return out
}
