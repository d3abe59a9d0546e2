package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"dotdestroyer/game"
	"dotdestroyer/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (json, yaml or toml)")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		telemetry.SetupLogging(game.DefaultConfig().Level(), os.Stderr).
			Fatal().Err(err).Msg("loading config")
	}
	logger := telemetry.SetupLogging(cfg.Level(), os.Stderr)

	shutdown, err := telemetry.SetupMetrics(cfg.Metrics, os.Stdout)
	if err != nil {
		logger.Fatal().Err(err).Msg("setting up metrics")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("flushing metrics")
		}
	}()

	scenario, err := game.ScenarioFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("building scenario")
	}

	metrics, err := game.NewMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("creating metrics")
	}

	sim, err := game.NewSimulation(cfg, scenario,
		game.WithLogger(logger.With().Str("component", "simulation").Logger()),
		game.WithMetrics(metrics),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating simulation")
	}

	// a configured track that cannot be loaded keeps the window from opening
	music, err := newMusic(cfg.Music)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.Music).Msg("loading music")
	}

	g := NewGame(cfg, sim, music, logger)

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Dot Destroyer")
	ebiten.SetTPS(cfg.TicksPerSecond)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error().Err(err).Uint64("frame", sim.Frame()).Msg("game stopped")
		if err := shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("flushing metrics")
		}
		os.Exit(1)
	}
}
