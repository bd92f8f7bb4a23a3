// Package snapshot holds the current in-memory view of the league tables.
// There is no incremental cache: every refresh refetches all three tables
// and replaces the snapshot wholesale, so readers always see one consistent
// state. Data volumes are small enough that simplicity wins.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bayshorevolley/league-data/internal/league"
	"github.com/bayshorevolley/league-data/internal/store"
)

// Service owns the current snapshot.
type Service struct {
	store  store.Store
	logger *slog.Logger

	mu  sync.RWMutex
	cur league.Snapshot
}

// New creates a snapshot service. Call Refresh before serving reads.
func New(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Refresh refetches divisions, teams, and players in full and swaps in the
// rebuilt snapshot. On error the previous snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	divisions, err := s.store.Divisions(ctx)
	if err != nil {
		return fmt.Errorf("refresh divisions: %w", err)
	}
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return fmt.Errorf("refresh teams: %w", err)
	}
	players, err := s.store.Players(ctx)
	if err != nil {
		return fmt.Errorf("refresh players: %w", err)
	}

	snap := league.BuildSnapshot(divisions, teams, players)

	s.mu.Lock()
	s.cur = snap
	s.mu.Unlock()
	return nil
}

// Current returns the latest snapshot.
func (s *Service) Current() league.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Stats returns snapshot statistics for the health endpoint.
func (s *Service) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"divisions":    len(s.cur.Divisions),
		"teams":        len(s.cur.Teams),
		"players":      len(s.cur.Players),
		"refreshed_at": s.cur.RefreshedAt.Format(time.RFC3339),
	}
}

// AutoRefresh periodically refreshes the snapshot as a catch-up sweep for
// any change notification that was missed. Blocks until ctx is cancelled;
// intended to be called with `go`.
func (s *Service) AutoRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("Periodic snapshot refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
