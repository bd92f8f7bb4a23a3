// Package handler provides HTTP handlers for all API endpoints. Reads come
// from the current snapshot; writes go through the reconciliation engine and
// finish with a full snapshot refresh so responses always reflect actual
// store state.
package handler

import (
	"net/http"
	"time"

	"github.com/bayshorevolley/league-data/internal/api/respond"
	"github.com/bayshorevolley/league-data/internal/config"
	"github.com/bayshorevolley/league-data/internal/db"
	"github.com/bayshorevolley/league-data/internal/reconcile"
	"github.com/bayshorevolley/league-data/internal/snapshot"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool   *db.Pool
	snap   *snapshot.Service
	engine *reconcile.Engine
	cfg    *config.Config
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, snap *snapshot.Service, engine *reconcile.Engine, cfg *config.Config) *Handler {
	return &Handler{pool: pool, snap: snap, engine: engine, cfg: cfg}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Bayshore League Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckSnapshot returns snapshot statistics.
// @Summary Snapshot health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/snapshot [get]
func (h *Handler) HealthCheckSnapshot(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"snapshot":  h.snap.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
