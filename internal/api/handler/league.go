package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bayshorevolley/league-data/internal/api/respond"
	"github.com/bayshorevolley/league-data/internal/league"
)

// divisionParam extracts and unescapes the {division} path segment.
func divisionParam(r *http.Request) string {
	raw := chi.URLParam(r, "division")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// GetDivisions lists all divisions in store order.
// @Summary List divisions
// @Tags league
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/divisions [get]
func (h *Handler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	snap := h.snap.Current()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"divisions": snap.Divisions,
	})
}

// GetStandings returns a division's teams sorted by wins.
// @Summary Division standings
// @Tags league
// @Param division path string true "Division name"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/standings/{division} [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	snap := h.snap.Current()
	division := snap.ResolveDivision(divisionParam(r))
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"division": division,
		"teams":    league.Standings(snap.Table, division),
	})
}

// GetLeaderboard returns a division's award leaders. limit=0 returns all.
// @Summary Division award leaderboard
// @Tags league
// @Param division path string true "Division name"
// @Param limit query int false "Max rows (default 5, 0 = all)"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/leaderboard/{division} [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := league.DefaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.WriteError(w, http.StatusBadRequest, "BAD_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	snap := h.snap.Current()
	division := snap.ResolveDivision(divisionParam(r))
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"division":    division,
		"honor_label": league.HonorLabel(division),
		"limit":       limit,
		"players":     league.Leaderboard(snap.Summaries, division, limit),
	})
}

// GetRoster returns one team's players within a division. An empty or
// missing team query selects unassigned players.
// @Summary Team roster
// @Tags league
// @Param division path string true "Division name"
// @Param team query string false "Team name (empty = unassigned players)"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/roster/{division} [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	snap := h.snap.Current()
	division, team := snap.ResolveSelection(divisionParam(r), r.URL.Query().Get("team"))

	body := map[string]interface{}{
		"division": division,
		"team":     team,
		"players":  league.Roster(snap.Summaries, division, team),
	}
	if meta, ok := snap.TeamSummary(division, team); ok {
		body["record"] = map[string]interface{}{
			"wins":   meta.Wins,
			"losses": meta.Losses,
			"played": meta.Played(),
		}
	}
	respond.WriteJSON(w, http.StatusOK, body)
}
