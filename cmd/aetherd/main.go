package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Otavioqwert/tarot-game/internal/config"
	"github.com/Otavioqwert/tarot-game/internal/game"
	"github.com/Otavioqwert/tarot-game/internal/rng"
	"github.com/Otavioqwert/tarot-game/internal/server"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

func main() {
	opts, err := config.OptionsFromEnv()
	if err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(opts.LogLevel),
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Error("failed to load config", "path", opts.ConfigPath, "error", err)
			os.Exit(1)
		}
		logger.Info("no config file, using defaults", "path", opts.ConfigPath)
		cfg = config.Default()
	}

	var source rng.RNG = rng.Std{}
	if cfg.SeededRNG.Enabled {
		source = rng.NewSeeded(cfg.SeededRNG.Seed)
		logger.Info("seeded rng enabled", "seed", cfg.SeededRNG.Seed)
	}

	events := telemetry.NewMemoryRepository()
	g := game.New(cfg, source, game.RealClock{}, logger, events)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go g.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(server.RequestIDMiddleware())
	e.Use(server.LoggingMiddleware(logger))
	server.NewHandler(g, events).Register(e)

	go func() {
		logger.Info("starting server", "addr", opts.Addr)
		if err := e.Start(opts.Addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
