package reconcile

import (
	"log/slog"

	"github.com/bayshorevolley/league-data/internal/store"
)

// DefaultChunkSize bounds one batched player insert. Tunable, not a
// protocol requirement.
const DefaultChunkSize = 500

// Engine applies reconciliation decisions through a Store. It keeps no
// state between calls: every decision is re-derived from the current store
// snapshot, which makes repeated runs with unchanged input no-ops.
type Engine struct {
	store  store.Store
	logger *slog.Logger
	chunk  int
}

// New creates an Engine. chunkSize <= 0 uses DefaultChunkSize.
func New(st store.Store, logger *slog.Logger, chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{store: st, logger: logger, chunk: chunkSize}
}
