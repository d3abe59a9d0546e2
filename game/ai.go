package game

import (
	"github.com/mlange-42/ark/ecs"
)

// AIIntentSystem steers every AI ship towards the nearest hostile ship,
// aims at it (optionally leading the shot) and applies the ship's fire
// policy.
type AIIntentSystem struct {
	filter  *ecs.Filter6[AIPilot, Position, Acceleration, Drive, Weapon, Life]
	targets *targetIndex
}

// NewAIIntentSystem creates a new AI intent system
func NewAIIntentSystem(world *World) *AIIntentSystem {
	return &AIIntentSystem{
		filter:  ecs.NewFilter6[AIPilot, Position, Acceleration, Drive, Weapon, Life](world.ECS()),
		targets: newTargetIndex(world),
	}
}

// Name implements System
func (s *AIIntentSystem) Name() string { return "ai_intent" }

// Update implements System
func (s *AIIntentSystem) Update(ctx *FrameContext) error {
	s.targets.refresh()

	query := s.filter.Query()
	for query.Next() {
		pilot, pos, acc, drive, weapon, life := query.Get()
		if life.Dead {
			continue
		}

		target, found := s.targets.nearestHostile(query.Entity(), pos.Vec3)
		if found {
			pilot.Target = target.entity
		} else {
			pilot.Target = ecs.Entity{}
		}

		aiIntent(pos.Vec3, drive, weapon, *pilot, target, found).apply(acc, weapon)
	}
	return nil
}

// aiIntent computes an AI ship's intent against a target
func aiIntent(self Vec3, drive *Drive, weapon *Weapon, pilot AIPilot, target shipTarget, found bool) Intent {
	if !found {
		// nothing to chase; only an always-on gun keeps shooting
		return Intent{Firing: pilot.FirePolicy == FireAlways}
	}

	selfPlanar := ProjectToPlane(self)
	toTarget := ProjectToPlane(target.position).Sub(selfPlanar)

	aimAt := AimPoint(target.position, target.velocity, self, weapon.ProjectileSpeed, pilot.Intercept)

	return Intent{
		Accel:  toTarget.Normalize().Scale(drive.BaseAccel),
		Aim:    aimAt.Sub(selfPlanar).Normalize(),
		HasAim: true,
		Firing: shouldFire(pilot, toTarget.Length()),
	}
}

// shouldFire applies the fire policy to the current target distance
func shouldFire(pilot AIPilot, distance float64) bool {
	switch pilot.FirePolicy {
	case FireAlways:
		return true
	case FireInRange:
		return distance <= pilot.FireRange
	default:
		return false
	}
}

// shipTarget is a cached view of a ship for target selection
type shipTarget struct {
	entity   ecs.Entity
	position Vec3
	velocity Vec3
	faction  Faction
}

// targetIndex caches live ships once per pass so intent systems never open
// a second query while iterating their own.
type targetIndex struct {
	filter *ecs.Filter5[Position, Velocity, Body, Hull, Life]
	ships  []shipTarget
}

func newTargetIndex(world *World) *targetIndex {
	return &targetIndex{
		filter: ecs.NewFilter5[Position, Velocity, Body, Hull, Life](world.ECS()),
		ships:  make([]shipTarget, 0, 16),
	}
}

// refresh rebuilds the cache from the current world state
func (t *targetIndex) refresh() {
	t.ships = t.ships[:0]
	query := t.filter.Query()
	for query.Next() {
		pos, vel, body, _, life := query.Get()
		if life.Dead {
			continue
		}
		t.ships = append(t.ships, shipTarget{
			entity:   query.Entity(),
			position: pos.Vec3,
			velocity: vel.Vec3,
			faction:  body.Faction,
		})
	}
}

// nearestHostile returns the closest live ship of the other faction
func (t *targetIndex) nearestHostile(self ecs.Entity, pos Vec3) (shipTarget, bool) {
	var faction Faction
	known := false
	for _, s := range t.ships {
		if s.entity == self {
			faction = s.faction
			known = true
			break
		}
	}
	if !known {
		return shipTarget{}, false
	}

	var best shipTarget
	bestDistSq := 0.0
	found := false
	planar := ProjectToPlane(pos)
	for _, s := range t.ships {
		if !faction.Hostile(s.faction) {
			continue
		}
		distSq := ProjectToPlane(s.position).Sub(planar).LengthSquared()
		if !found || distSq < bestDistSq {
			best = s
			bestDistSq = distSq
			found = true
		}
	}
	return best, found
}
