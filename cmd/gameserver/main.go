package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JorgeBC420/caminosdelafe/internal/config"
	"github.com/JorgeBC420/caminosdelafe/internal/db"
	"github.com/JorgeBC420/caminosdelafe/internal/game/session"
)

const GameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := GameConfigPath
	if p := os.Getenv("CAMINOS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("caminos de la fe server starting", "log_level", cfg.LogLevel)

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	// Run migrations
	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	seed := cfg.CombatSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	name := os.Getenv("CAMINOS_CHARACTER")
	if name == "" {
		name = "Peregrino"
	}
	faction := os.Getenv("CAMINOS_FACTION")
	if faction == "" {
		faction = "Cruzados"
	}

	sess, err := session.Open(ctx, slog.Default(), cfg, database, name, faction, seed, time.Now())
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	slog.Info("session opened", "character", name, "level", sess.Player().Level())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting session loop", "tick", cfg.TickInterval)
		if err := sess.Run(gctx, cfg.TickInterval); err != nil {
			return fmt.Errorf("session loop: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
