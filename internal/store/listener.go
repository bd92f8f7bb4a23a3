package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	changeChannel    = "league_changed"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ChangeEvent is the JSON payload from pg_notify('league_changed', ...).
// The tables fire it on any insert, update, or delete.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"`
}

// Listen opens a dedicated connection (not from the pool) and listens on the
// league_changed channel, invoking onChange for every event. Reconnects
// automatically on connection loss. Blocks until ctx is cancelled; intended
// to be called with `go`.
func Listen(ctx context.Context, dbURL string, onChange func(ChangeEvent), logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, onChange, logger)
		if ctx.Err() != nil {
			logger.Info("Change listener stopped (context cancelled)")
			return
		}

		logger.Error("Change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection
// drops or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, onChange func(ChangeEvent), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", changeChannel, err)
	}
	logger.Info("Change listener connected", "channel", changeChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Failed to parse change event",
				"payload", notification.Payload, "error", err)
			continue
		}

		onChange(event)
	}
}
