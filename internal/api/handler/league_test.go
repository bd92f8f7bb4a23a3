package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/reconcile"
	"github.com/bayshorevolley/league-data/internal/snapshot"
	"github.com/bayshorevolley/league-data/internal/store/storetest"
)

// testRouter wires the endpoints under test against an in-memory store.
func testRouter(t *testing.T) (*chi.Mux, *storetest.Memory) {
	t.Helper()

	mem := storetest.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	snap := snapshot.New(mem, logger)
	engine := reconcile.New(mem, logger, 0)
	h := New(nil, snap, engine, nil)

	div := mem.AddDivision("Mens - A")
	womens := mem.AddDivision("Womens")
	spikers := mem.AddTeam(div.ID, "Spikers", 3, 1)
	mem.AddTeam(div.ID, "Aces", 5, 0)
	mem.AddTeam(womens.ID, "Phoenix", 2, 2)
	mem.AddPlayer(league.Player{DivisionID: div.ID, TeamID: &spikers.ID, PlayerName: "Sam", Awards: 2, IsCaptain: true, Position: league.PosOutsideHitter})
	mem.AddPlayer(league.Player{DivisionID: div.ID, TeamID: &spikers.ID, PlayerName: "Lee", Awards: 5, Position: league.PosSetter})
	mem.AddPlayer(league.Player{DivisionID: div.ID, PlayerName: "Free Agent"})
	require.NoError(t, snap.Refresh(context.Background()))

	r := chi.NewRouter()
	r.Get("/api/v1/divisions", h.GetDivisions)
	r.Get("/api/v1/standings/{division}", h.GetStandings)
	r.Get("/api/v1/leaderboard/{division}", h.GetLeaderboard)
	r.Get("/api/v1/roster/{division}", h.GetRoster)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Post("/divisions", h.CreateDivision)
		r.Post("/teams", h.CreateTeam)
		r.Patch("/teams/{id}", h.UpdateTeam)
		r.Delete("/teams/{id}", h.DeleteTeam)
		r.Post("/players", h.CreatePlayer)
		r.Patch("/players/{id}", h.UpdatePlayer)
		r.Delete("/players/{id}", h.DeletePlayer)
	})
	return r, mem
}

func doJSON(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestGetDivisions(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/divisions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	divisions := body["divisions"].([]interface{})
	require.Len(t, divisions, 2)
	first := divisions[0].(map[string]interface{})
	assert.Equal(t, "Mens - A", first["name"])
}

func TestGetStandings(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/standings/Mens%20-%20A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mens - A", body["division"])

	teams := body["teams"].([]interface{})
	require.Len(t, teams, 2)
	top := teams[0].(map[string]interface{})
	assert.Equal(t, "Aces", top["name"])
	assert.Equal(t, float64(5), top["played"])
}

func TestGetStandingsFallsBackToFirstDivision(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/standings/Retired", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mens - A", body["division"])
}

func TestGetLeaderboard(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/leaderboard/Mens%20-%20A?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Man of the Match", body["honor_label"])

	players := body["players"].([]interface{})
	require.Len(t, players, 1)
	leader := players[0].(map[string]interface{})
	assert.Equal(t, "Lee", leader["playerName"])
}

func TestGetLeaderboardRejectsBadLimit(t *testing.T) {
	r, _ := testRouter(t)
	rec, _ := doJSON(t, r, http.MethodGet, "/api/v1/leaderboard/Mens%20-%20A?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/leaderboard/Mens%20-%20A?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLeaderboardWomensLabel(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/leaderboard/Womens", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Woman of the Match", body["honor_label"])
}

func TestGetRoster(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/roster/Mens%20-%20A?team=Spikers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Spikers", body["team"])

	players := body["players"].([]interface{})
	require.Len(t, players, 2)
	captain := players[0].(map[string]interface{})
	assert.Equal(t, "Sam", captain["playerName"])

	record := body["record"].(map[string]interface{})
	assert.Equal(t, float64(4), record["played"])
}

func TestGetRosterUnknownTeamClearsSelection(t *testing.T) {
	r, _ := testRouter(t)
	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/roster/Mens%20-%20A?team=Disbanded", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", body["team"])

	// The unassigned roster, no record block.
	players := body["players"].([]interface{})
	require.Len(t, players, 1)
	assert.Nil(t, body["record"])
}
