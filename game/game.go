package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// MatchState is the state of the whole match
type MatchState int

const (
	MatchRunning MatchState = iota
	MatchOver
)

func (s MatchState) String() string {
	if s == MatchOver {
		return "over"
	}
	return "running"
}

// Option configures a Simulation
type Option func(*Simulation)

// WithLogger sets the simulation logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithMetrics records every step into m
func WithMetrics(m *Metrics) Option {
	return func(s *Simulation) {
		s.metrics = m
	}
}

// Simulation runs the frame pipeline over a world built from a scenario
type Simulation struct {
	config   Config
	scenario Scenario

	world   *World
	systems []System
	events  *EventLog

	logger  zerolog.Logger
	metrics *Metrics

	frame         uint64
	state         MatchState
	winner        Faction
	playerFaction Faction
	contested     bool
}

// NewSimulation validates the config and scenario and spawns the roster
func NewSimulation(cfg Config, scenario Scenario, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		config:   cfg,
		scenario: scenario,
		events:   NewEventLog(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawn()
	return s, nil
}

// spawn builds a fresh world and pipeline from the scenario
func (s *Simulation) spawn() {
	s.world = NewWorld()
	for _, spec := range s.scenario.Ships {
		s.world.SpawnShip(spec, s.config.Arena.ShipDepth)
		if spec.Pilot == PilotPlayer {
			s.playerFaction = spec.Faction
		}
	}

	// order matters: every pass sees the previous passes' writes for this frame
	s.systems = []System{
		NewPlayerIntentSystem(s.world),
		NewAIIntentSystem(s.world),
		NewAccelerationSystem(s.world),
		NewMovementSystem(s.world),
		NewBoundarySystem(s.world),
		NewWeaponSystem(s.world),
		NewCollisionSystem(s.world),
		NewCleanupSystem(s.world),
	}

	blue, red := s.scenario.Factions()
	s.contested = blue && red
	s.frame = 0
	s.state = MatchRunning
	s.winner = s.playerFaction
	s.events.Begin(0)

	s.logger.Info().
		Str("scenario", s.scenario.Name).
		Int("ships", len(s.scenario.Ships)).
		Msg("match started")
}

// Reset discards the world and respawns the scenario from scratch
func (s *Simulation) Reset() {
	s.spawn()
}

// Step advances the simulation by one frame. dt is in seconds; negative or
// non-finite values are treated as zero. A missing player ship while the
// match is running is returned as ErrNoPlayer and leaves the frame half
// applied, so callers should stop stepping.
func (s *Simulation) Step(input InputState, dt float64) error {
	start := time.Now()

	if !(dt >= 0) || math.IsInf(dt, 1) {
		dt = 0
	}

	s.frame++
	s.events.Begin(s.frame)

	ctx := &FrameContext{
		Frame:           s.frame,
		DT:              dt,
		Arena:           s.config.Bounds(),
		Input:           input,
		Events:          s.events,
		MatchOver:       s.state == MatchOver,
		DespawnDistance: s.config.DespawnDistance(),
		ShipDepth:       s.config.Arena.ShipDepth,
		ProjectileDepth: s.config.Arena.ProjectileDepth,
	}

	for _, system := range s.systems {
		if err := system.Update(ctx); err != nil {
			return fmt.Errorf("frame %d: %s: %w", s.frame, system.Name(), err)
		}
	}

	s.logEvents()
	s.updateMatch()
	s.metrics.record(context.Background(), s.events.Events(), time.Since(start))
	return nil
}

// updateMatch ends the match when the player is gone or, in a two-sided
// roster, when no opposing ship is left
func (s *Simulation) updateMatch() {
	if s.state == MatchOver {
		return
	}

	if _, ok := s.world.Player(); !ok {
		s.finish(s.playerFaction.Opposite(), "player destroyed")
		return
	}
	if s.contested && s.world.ShipCount(s.playerFaction.Opposite()) == 0 {
		s.finish(s.playerFaction, "opposition destroyed")
	}
}

func (s *Simulation) finish(winner Faction, reason string) {
	s.state = MatchOver
	s.winner = winner
	s.logger.Info().
		Uint64("frame", s.frame).
		Str("winner", winner.String()).
		Str("reason", reason).
		Msg("match over")
}

// logEvents writes the frame's events to the logger
func (s *Simulation) logEvents() {
	for _, e := range s.events.Events() {
		switch e.Type {
		case EventTypeShipDestroyed:
			s.logger.Info().
				Uint64("frame", e.Frame).
				Uint32("ship", uint32(e.Subject.ID())).
				Uint32("projectile", uint32(e.Other.ID())).
				Str("faction", e.Faction.String()).
				Msg("ship destroyed")
		case EventTypeProjectileHit:
			s.logger.Debug().
				Uint64("frame", e.Frame).
				Uint32("ship", uint32(e.Subject.ID())).
				Uint32("projectile", uint32(e.Other.ID())).
				Float64("damage", e.Amount).
				Msg("projectile hit")
		case EventTypeShotFired:
			s.logger.Trace().
				Uint64("frame", e.Frame).
				Uint32("ship", uint32(e.Subject.ID())).
				Str("faction", e.Faction.String()).
				Msg("shot fired")
		case EventTypeProjectileExpired:
			s.logger.Trace().
				Uint64("frame", e.Frame).
				Uint32("projectile", uint32(e.Subject.ID())).
				Msg("projectile expired")
		}
	}
}

// Events returns the events recorded by the last Step
func (s *Simulation) Events() []Event {
	return s.events.Events()
}

// EventCount returns how many events of a type the last Step recorded
func (s *Simulation) EventCount(t EventType) int {
	return s.events.Count(t)
}

// State returns the match state
func (s *Simulation) State() MatchState {
	return s.state
}

// Winner returns the winning faction once the match is over
func (s *Simulation) Winner() (Faction, bool) {
	return s.winner, s.state == MatchOver
}

// Frame returns the number of steps taken since the last spawn
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// World exposes the entity store
func (s *Simulation) World() *World {
	return s.world
}

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() Config {
	return s.config
}

// Scenario returns the roster the simulation was built from
func (s *Simulation) Scenario() Scenario {
	return s.scenario
}
