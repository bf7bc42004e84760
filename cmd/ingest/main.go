// Command ingest is the Spudin Game List cache warming CLI.
//
// Usage:
//
//	gamelist-ingest warm
//	gamelist-ingest warm --search zelda --search portal
//	gamelist-ingest game --id 1942
//	gamelist-ingest search --query "hollow knight"
//	gamelist-ingest series --id 1942
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spudin/gamelist-data/internal/catalog"
	"github.com/spudin/gamelist-data/internal/config"
	"github.com/spudin/gamelist-data/internal/db"
	"github.com/spudin/gamelist-data/internal/gamecache"
	"github.com/spudin/gamelist-data/internal/igdb"
	"github.com/spudin/gamelist-data/internal/warm"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "gamelist-ingest",
		Short: "Spudin Game List cache warming CLI",
	}

	root.AddCommand(warmCmd())
	root.AddCommand(gameCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(seriesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// warm command
// --------------------------------------------------------------------------

func warmCmd() *cobra.Command {
	var searches []string
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Warm trending, new releases, and seed searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, svc *catalog.Service) error {
				queries := searches
				if len(queries) == 0 {
					queries = cfg.WarmSearches
				}
				start := time.Now()
				result := warm.All(ctx, svc, queries, logger)
				logger.Info("Warm finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("warm error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&searches, "search", nil, "Search query to warm (repeatable; defaults to WARM_SEARCHES)")
	return cmd
}

// --------------------------------------------------------------------------
// lookup commands
// --------------------------------------------------------------------------

func gameCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Fetch and cache one game's details",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, svc *catalog.Service) error {
				game, err := svc.GetByID(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(game)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "IGDB game id")
	return cmd
}

func searchCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog and cache the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, svc *catalog.Service) error {
				games, err := svc.Search(ctx, query)
				if err != nil {
					return err
				}
				logger.Info("Search finished", "query", query, "games", len(games))
				return printJSON(games)
			})
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Search text")
	return cmd
}

func seriesCmd() *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Fetch a game's collection and franchise members",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, svc *catalog.Service) error {
				games, err := svc.SeriesByID(ctx, id)
				if err != nil {
					return err
				}
				logger.Info("Series lookup finished", "id", id, "games", len(games))
				return printJSON(games)
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "IGDB game id")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, DB connection, service wiring, and context
// cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, svc *catalog.Service) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasIGDBCredentials() {
		return fmt.Errorf("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET are required")
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	tokens := igdb.NewTokenSource(cfg.TwitchClientID, cfg.TwitchClientSecret, cfg.IGDBTokenURL)
	client := igdb.NewClient(cfg.IGDBBaseURL, cfg.TwitchClientID, tokens, cfg.IGDBRequestsPerSec, logger)
	store := gamecache.NewStore(pool, cfg.CacheEnabled, logger)
	filter := catalog.NewFilter(cfg.FilterEnabled, cfg.BlockedThemes, cfg.BlockedAgeRatings)
	svc := catalog.NewService(client, store, filter, cfg, logger)

	return fn(ctx, cfg, svc)
}
