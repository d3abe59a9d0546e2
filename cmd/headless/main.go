package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"dotdestroyer/game"
	"dotdestroyer/internal/telemetry"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a config file (json, yaml or toml)")
	scenarioName := flag.String("scenario", "", "Scenario to run; overrides the config roster")
	frames := flag.Int("frames", 3600, "Maximum number of frames to step")
	dt := flag.Float64("dt", 0, "Seconds per frame (default 1/ticksPerSecond)")
	autopilot := flag.Bool("autopilot", false, "Fly the player ship with the AI")
	profileDir := flag.String("profile", "", "Write a CPU profile and execution trace of the run into this directory")
	flag.Parse()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		bootLogger := telemetry.SetupLogging(game.DefaultConfig().Level(), os.Stderr)
		bootLogger.Fatal().Err(err).Msg("loading config")
	}
	logger := telemetry.SetupLogging(cfg.Level(), os.Stderr)

	if *scenarioName != "" {
		cfg.Scenario = *scenarioName
		cfg.Ships = nil
	}
	step := *dt
	if step <= 0 {
		step = 1 / float64(cfg.TicksPerSecond)
	}

	shutdown, err := telemetry.SetupMetrics(cfg.Metrics, os.Stdout)
	if err != nil {
		logger.Fatal().Err(err).Msg("setting up metrics")
	}

	scenario, err := game.ScenarioFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("building scenario")
	}
	if *autopilot {
		scenario = scenario.WithAutopilot()
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

	logger.Info().
		Str("scenario", scenario.Name).
		Int("frames", *frames).
		Float64("dt", step).
		Bool("autopilot", *autopilot).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Msg("starting headless run")

	var profiler *telemetry.Profiler
	if *profileDir != "" {
		profiler, err = telemetry.StartProfile(*profileDir, "headless-"+scenario.Name, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("starting profiler")
		}
	}

	exitCode := 0
	start := time.Now()
	for i := 0; i < *frames && sim.State() == game.MatchRunning; i++ {
		if err := sim.Step(game.InputState{}, step); err != nil {
			logger.Error().Err(err).Msg("simulation stopped")
			exitCode = 1
			break
		}
	}
	elapsed := time.Since(start)

	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			logger.Error().Err(err).Msg("saving profile")
		}
	}

	snap := sim.Snapshot()
	summary := logger.Info().
		Uint64("frames", sim.Frame()).
		Float64("simSeconds", float64(sim.Frame())*step).
		Dur("wall", elapsed).
		Str("state", sim.State().String()).
		Int("blue", snap.Count(game.EntityKindShip, game.FactionBlue)).
		Int("red", snap.Count(game.EntityKindShip, game.FactionRed))
	if winner, over := sim.Winner(); over {
		summary = summary.Str("winner", winner.String())
	}
	summary.Msg("run finished")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("flushing metrics")
	}
	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
