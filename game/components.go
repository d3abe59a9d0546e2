package game

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"
)

// Position is the entity's world position; Z is the draw depth layer
type Position struct {
	Vec3
}

// Velocity in world units per second
type Velocity struct {
	Vec3
}

// Acceleration in world units per second squared
type Acceleration struct {
	Vec3
}

// Body is the collision circle, colour and side of an entity
type Body struct {
	Radius  float64
	Color   color.RGBA
	Faction Faction
}

// Drive holds a ship's thrust characteristics.
// MaxSpeed <= 0 or +Inf means the ship is never clamped.
type Drive struct {
	BaseAccel float64
	MaxSpeed  float64
}

// Hull tracks ship health. Health may go negative for the frame in which the
// ship is destroyed.
type Hull struct {
	Health    float64
	MaxHealth float64
}

// Weapon is a ship's gun: aim, cooldown timer and firing flag, plus the
// stats copied onto every projectile it spawns.
type Weapon struct {
	Aim              Vec3
	Cooldown         float64 // seconds between shots
	Elapsed          float64 // time accumulated towards the next shot, capped at Cooldown
	Firing           bool
	Damage           float64
	ProjectileSpeed  float64
	ProjectileRadius float64
}

// Ready reports whether the cooldown has fully elapsed
func (w *Weapon) Ready() bool {
	return w.Elapsed >= w.Cooldown
}

// PlayerPilot marks the human-controlled ship
type PlayerPilot struct {
	FireMode FireMode
	// Autopilot drives the player ship with the AI intent logic (headless runs)
	Autopilot bool
}

// AIPilot marks an AI-controlled ship and carries its behaviour settings
type AIPilot struct {
	Target     ecs.Entity
	Intercept  bool
	FirePolicy FirePolicy
	FireRange  float64
}

// Projectile is the damage payload of a shot. Velocity is constant after
// spawn, so projectiles carry no Acceleration.
type Projectile struct {
	Damage float64
}

// Life is the two-phase removal flag. Systems set Dead; only the cleanup
// pass removes entities from the world.
type Life struct {
	Dead bool
}
