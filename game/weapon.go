package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// WeaponSystem ticks every ship's cooldown timer and fires one projectile
// when the timer is ready and the trigger is held. Projectiles are queued
// and only created by the cleanup pass, so a shot can hit nothing in the
// frame it was fired.
type WeaponSystem struct {
	world  *World
	filter *ecs.Filter4[Weapon, Position, Body, Life]
}

// NewWeaponSystem creates a new weapon system
func NewWeaponSystem(world *World) *WeaponSystem {
	return &WeaponSystem{
		world:  world,
		filter: ecs.NewFilter4[Weapon, Position, Body, Life](world.ECS()),
	}
}

// Name implements System
func (s *WeaponSystem) Name() string { return "weapon" }

// Update implements System
func (s *WeaponSystem) Update(ctx *FrameContext) error {
	query := s.filter.Query()
	for query.Next() {
		weapon, pos, body, life := query.Get()
		if life.Dead {
			continue
		}

		if !tickWeapon(weapon, ctx.DT) {
			continue
		}

		spec := projectileFrom(pos, body, weapon, ctx.ProjectileDepth)
		s.world.QueueProjectile(spec)
		ctx.Events.Record(Event{
			Type:    EventTypeShotFired,
			Subject: query.Entity(),
			Faction: body.Faction,
			Amount:  spec.Damage,
		})
	}
	return nil
}

// tickWeapon advances the cooldown timer and reports whether a shot fires
// this frame. The timer runs whether or not the trigger is held, and never
// banks more than one cooldown, so releasing and pressing again cannot fire
// sooner than holding would have.
func tickWeapon(weapon *Weapon, dt float64) bool {
	weapon.Elapsed = math.Min(weapon.Elapsed+dt, weapon.Cooldown)
	if !weapon.Firing || !weapon.Ready() {
		return false
	}
	weapon.Elapsed = 0
	return true
}
