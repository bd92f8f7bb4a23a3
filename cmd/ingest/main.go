// Command ingest is the league data import CLI.
//
// Usage:
//
//	league-ingest migrate
//	league-ingest import --file data/seed.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bayshorevolley/league-data/internal/config"
	"github.com/bayshorevolley/league-data/internal/db"
	"github.com/bayshorevolley/league-data/internal/reconcile"
	"github.com/bayshorevolley/league-data/internal/seedfile"
	"github.com/bayshorevolley/league-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "league-ingest",
		Short: "League data import CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			start := time.Now()
			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				return err
			}
			logger.Info("Migrations applied", "duration", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Reconcile the seed document against the store",
		Long: "Reads the seed JSON, resolves its division slugs against existing " +
			"divisions, and applies the minimal set of inserts and updates. " +
			"Divisions are never created here; any unresolved division fails the " +
			"whole run before a single write. Re-running with unchanged input " +
			"applies nothing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				doc, err := seedfile.Load(file)
				if err != nil {
					return err
				}
				desired := doc.Desired()
				logger.Info("Seed document loaded",
					"file", file,
					"teams", len(desired.Teams),
					"players", len(desired.Players))

				engine := reconcile.New(store.New(pool.Pool), logger, cfg.ImportChunkSize)

				start := time.Now()
				result, err := engine.Bulk(ctx, desired)
				if err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				logger.Info("Import finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				if result.Empty() {
					logger.Info("Store already matched the seed document; nothing to apply")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "data/seed.json", "Path to the seed JSON document")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
