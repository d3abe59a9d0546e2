package game

import (
	"errors"

	"github.com/mlange-42/ark/ecs"
)

// ErrNoPlayer is returned when a frame runs without the player ship while
// the match is still in progress. Every frame depends on exactly one player
// ship, so this is not recoverable.
var ErrNoPlayer = errors.New("player ship does not exist")

// InputState is the derived intent supplied by the input collaborator once
// per frame. Up is +Y in world space.
type InputState struct {
	Up, Down, Left, Right bool

	// Pointer is the aim target in world coordinates
	Pointer    Vec3
	HasPointer bool

	// FirePressed and FireReleased are the button edges of this frame;
	// FireHeld is the current button level.
	FirePressed  bool
	FireReleased bool
	FireHeld     bool
}

// Intent is the contract shared by the player and AI producers: the
// acceleration to apply, where to aim and whether to fire.
type Intent struct {
	Accel  Vec3
	Aim    Vec3
	HasAim bool
	Firing bool
}

// apply writes an intent into the ship's components
func (in Intent) apply(acc *Acceleration, weapon *Weapon) {
	acc.Vec3 = in.Accel
	if in.HasAim {
		weapon.Aim = in.Aim
	}
	weapon.Firing = in.Firing
}

// PlayerIntentSystem turns the frame's InputState into the player ship's
// acceleration, aim and firing flag.
type PlayerIntentSystem struct {
	world   *World
	filter  *ecs.Filter5[PlayerPilot, Position, Acceleration, Drive, Weapon]
	targets *targetIndex
}

// NewPlayerIntentSystem creates a new player intent system
func NewPlayerIntentSystem(world *World) *PlayerIntentSystem {
	return &PlayerIntentSystem{
		world:   world,
		filter:  ecs.NewFilter5[PlayerPilot, Position, Acceleration, Drive, Weapon](world.ECS()),
		targets: newTargetIndex(world),
	}
}

// Name implements System
func (s *PlayerIntentSystem) Name() string { return "player_intent" }

// Update implements System
func (s *PlayerIntentSystem) Update(ctx *FrameContext) error {
	if _, ok := s.world.Player(); !ok {
		if ctx.MatchOver {
			return nil
		}
		return ErrNoPlayer
	}

	s.targets.refresh()

	query := s.filter.Query()
	for query.Next() {
		pilot, pos, acc, drive, weapon := query.Get()

		var intent Intent
		if pilot.Autopilot {
			target, found := s.targets.nearestHostile(query.Entity(), pos.Vec3)
			intent = aiIntent(pos.Vec3, drive, weapon, autopilotSettings, target, found)
		} else {
			intent = playerIntent(ctx.Input, pilot.FireMode, pos.Vec3, drive, weapon.Firing)
		}
		intent.apply(acc, weapon)
	}
	return nil
}

// autopilotSettings drive the player ship in headless soak runs
var autopilotSettings = AIPilot{Intercept: true, FirePolicy: FireAlways}

// playerIntent derives the player ship's intent. Acceleration is rebuilt
// from zero every frame, never accumulated.
func playerIntent(input InputState, mode FireMode, pos Vec3, drive *Drive, firing bool) Intent {
	var accel Vec3
	if input.Up {
		accel.Y += drive.BaseAccel
	}
	if input.Down {
		accel.Y -= drive.BaseAccel
	}
	if input.Right {
		accel.X += drive.BaseAccel
	}
	if input.Left {
		accel.X -= drive.BaseAccel
	}

	intent := Intent{Accel: accel}

	if input.HasPointer {
		intent.Aim = ProjectToPlane(input.Pointer).Sub(ProjectToPlane(pos))
		intent.HasAim = true
	}

	switch mode {
	case FireModeHeld:
		intent.Firing = input.FireHeld
	default:
		intent.Firing = firing
		if input.FireReleased {
			intent.Firing = false
		}
		if input.FirePressed {
			intent.Firing = true
		}
	}
	return intent
}
