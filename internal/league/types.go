// Package league defines the row types for divisions, teams, and players,
// plus the pure view-model layer built on top of them: normalization of raw
// rows into display shapes and the standings/leaderboard/roster projections.
package league

import (
	"encoding/json"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Position
// --------------------------------------------------------------------------

// Position is a volleyball court position.
type Position string

const (
	PosOutsideHitter Position = "OH"
	PosMiddleBlocker Position = "MB"
	PosSetter        Position = "S"
	PosRightSide     Position = "RS"
)

// ParsePosition maps free-form input to a Position. Unknown or empty input
// defaults to outside hitter.
func ParsePosition(pos string) Position {
	switch strings.ToUpper(strings.TrimSpace(pos)) {
	case "MB":
		return PosMiddleBlocker
	case "S":
		return PosSetter
	case "RS":
		return PosRightSide
	default:
		return PosOutsideHitter
	}
}

// --------------------------------------------------------------------------
// Numeric coercion
// --------------------------------------------------------------------------

// Count is a win/loss/award counter that tolerates sloppy JSON input:
// null, "", numeric strings, and floats all parse. Anything unparseable
// or negative collapses to 0.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*c = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*c = 0
			return nil
		}
		*c = Count(CoerceCount(str))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		*c = 0
		return nil
	}
	*c = Count(int(f))
	return nil
}

// CoerceCount parses a counter from string input. Empty, unparseable, and
// negative values all coerce to 0.
func CoerceCount(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}

// ClampCount forces a counter to be non-negative.
func ClampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ParseFlag interprets loose boolean input ("true", "1", "on", "yes").
// Anything else is false.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "on", "yes":
		return true
	}
	return false
}

// --------------------------------------------------------------------------
// Rows
// --------------------------------------------------------------------------

// Division is a named competitive grouping, e.g. "Mens - A".
type Division struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a roster entity within one division tracking a win/loss record.
type Team struct {
	ID         string `json:"id"`
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}

// Player belongs to a division and optionally to one team in that division.
// A nil TeamID means the player is unassigned.
type Player struct {
	ID         string   `json:"id"`
	DivisionID string   `json:"division_id"`
	TeamID     *string  `json:"team_id"`
	PlayerName string   `json:"player_name"`
	Awards     int      `json:"awards"`
	IsCaptain  bool     `json:"is_captain"`
	Position   Position `json:"position"`
}

// --------------------------------------------------------------------------
// Natural keys
// --------------------------------------------------------------------------

// TeamKey identifies a team by (division, name). Structural equality, no
// delimiter concatenation, so names containing any character are safe.
type TeamKey struct {
	DivisionID string
	Name       string
}

// Key returns the team's natural key.
func (t Team) Key() TeamKey {
	return TeamKey{DivisionID: t.DivisionID, Name: t.Name}
}

// PlayerKey identifies a player by (division, lowercased name).
type PlayerKey struct {
	DivisionID string
	Name       string
}

// NewPlayerKey builds a player key, folding the name to lower case.
func NewPlayerKey(divisionID, name string) PlayerKey {
	return PlayerKey{DivisionID: divisionID, Name: strings.ToLower(name)}
}

// Key returns the player's natural key.
func (p Player) Key() PlayerKey {
	return NewPlayerKey(p.DivisionID, p.PlayerName)
}

// --------------------------------------------------------------------------
// Patches
// --------------------------------------------------------------------------

// TeamPatch is a partial team update. Nil fields are untouched.
type TeamPatch struct {
	Name   *string
	Wins   *int
	Losses *int
}

// Empty reports whether the patch changes nothing.
func (p TeamPatch) Empty() bool {
	return p.Name == nil && p.Wins == nil && p.Losses == nil
}

// PlayerPatch is a partial player update. Nil fields are untouched. TeamID
// is only written when SetTeamID is true; a nil TeamID with SetTeamID set
// clears the reference.
type PlayerPatch struct {
	PlayerName *string
	DivisionID *string
	Awards     *int
	IsCaptain  *bool
	Position   *Position
	TeamID     *string
	SetTeamID  bool
}

// Empty reports whether the patch changes nothing.
func (p PlayerPatch) Empty() bool {
	return p.PlayerName == nil && p.DivisionID == nil && p.Awards == nil &&
		p.IsCaptain == nil && p.Position == nil && !p.SetTeamID
}

func ptr[T any](v T) *T { return &v }

// StringPtr returns a pointer to s. Convenience for building patches.
func StringPtr(s string) *string { return ptr(s) }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return ptr(n) }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return ptr(b) }

// PositionPtr returns a pointer to p.
func PositionPtr(p Position) *Position { return ptr(p) }
