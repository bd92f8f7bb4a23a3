package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bayshorevolley/league-data/internal/api/respond"
	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/reconcile"
)

// refresh refetches the full snapshot after a write. Runs on failure too:
// even a partially applied mutation should leave the served state matching
// the store.
func (h *Handler) refresh(r *http.Request) {
	_ = h.snap.Refresh(r.Context())
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, reconcile.ErrDuplicate):
		respond.WriteError(w, http.StatusConflict, "DUPLICATE", err.Error())
	default:
		respond.WriteError(w, http.StatusBadRequest, "WRITE_FAILED", err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_BODY", "invalid JSON body")
		return false
	}
	return true
}

// fieldEdit is the PATCH body: one changed field on one entity. Values
// arrive as strings and coerce server-side, matching how the admin panel
// submits edits.
type fieldEdit struct {
	Field string `json:"field"`
	Value string `json:"value"`
	// Division scopes team-name resolution for player team edits.
	Division string `json:"division,omitempty"`
}

// CreateDivision creates a division.
// @Summary Create division
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/admin/divisions [post]
func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	division, err := h.engine.CreateDivision(r.Context(), body.Name)
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"division": division})
}

// CreateTeam creates a team with a zero record.
// @Summary Create team
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/admin/teams [post]
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Division string `json:"division"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.engine.CreateTeam(r.Context(), body.Division, body.Name)
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"status": "created"})
}

// UpdateTeam applies a single-field edit to a team.
// @Summary Edit one team field
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/teams/{id} [patch]
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var body fieldEdit
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.engine.UpdateTeamField(r.Context(), chi.URLParam(r, "id"),
		reconcile.TeamField(body.Field), body.Value)
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "updated"})
}

// DeleteTeam removes a team, unassigning its players first.
// @Summary Delete team
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/teams/{id} [delete]
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	err := h.engine.RemoveTeam(r.Context(), chi.URLParam(r, "id"))
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted"})
}

// CreatePlayer creates a player, optionally assigned to a team.
// @Summary Create player
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/admin/players [post]
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Division   string       `json:"division"`
		Team       string       `json:"team"`
		PlayerName string       `json:"playerName"`
		Position   string       `json:"position"`
		IsCaptain  bool         `json:"isCaptain"`
		Awards     league.Count `json:"awards"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.engine.CreatePlayer(r.Context(), reconcile.NewPlayer{
		Division:   body.Division,
		Team:       body.Team,
		PlayerName: body.PlayerName,
		Position:   league.ParsePosition(body.Position),
		IsCaptain:  body.IsCaptain,
		Awards:     int(body.Awards),
	})
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"status": "created"})
}

// UpdatePlayer applies a single-field edit to a player.
// @Summary Edit one player field
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/players/{id} [patch]
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var body fieldEdit
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.engine.UpdatePlayerField(r.Context(), chi.URLParam(r, "id"),
		reconcile.PlayerField(body.Field), body.Value, body.Division)
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "updated"})
}

// DeletePlayer removes a player. No cascading effects.
// @Summary Delete player
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/players/{id} [delete]
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	err := h.engine.RemovePlayer(r.Context(), chi.URLParam(r, "id"))
	h.refresh(r)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "deleted"})
}
