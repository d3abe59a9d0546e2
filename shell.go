package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"dotdestroyer/game"
)

var colorBackground = color.RGBA{0, 0, 0, 255}

// Game adapts the simulation to ebiten's game loop
type Game struct {
	config game.Config
	sim    *game.Simulation
	camera *Camera
	music  *music
	logger zerolog.Logger

	started        bool
	lastUpdateTime time.Time
}

// NewGame creates the window shell around a simulation
func NewGame(config game.Config, sim *game.Simulation, music *music, logger zerolog.Logger) *Game {
	camera := NewCamera(float64(config.Screen.Width), float64(config.Screen.Height))
	camera.FitArena(config.Bounds())

	return &Game{
		config: config,
		sim:    sim,
		camera: camera,
		music:  music,
		logger: logger,
	}
}

// Update steps the simulation once per tick. An error ends the game loop.
func (g *Game) Update() error {
	now := time.Now()
	if !g.started {
		g.started = true
		g.lastUpdateTime = now
		g.music.Play()
	}

	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > g.config.MaxFrameDelta {
		deltaTime = g.config.MaxFrameDelta
	}

	toggleFullscreen()

	if restartPressed() {
		g.logger.Info().Uint64("frame", g.sim.Frame()).Msg("restarting match")
		g.sim.Reset()
		return nil
	}

	return g.sim.Step(readInput(g.camera), deltaTime)
}

// Draw renders the current snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap := g.sim.Snapshot()
	drawArena(screen, g.camera, snap.Arena)
	for _, view := range snap.Entities {
		drawEntity(screen, g.camera, view)
	}
	drawHUD(screen, snap, g.sim.Scenario().Name)
}

// Layout keeps the configured logical screen size; ebiten scales it to the
// window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Screen.Width, g.config.Screen.Height
}
