package game

import (
	"github.com/mlange-42/ark/ecs"
)

// CirclesOverlap reports whether two circles touch on the gameplay plane.
// Depth is ignored and touching counts as overlapping.
func CirclesOverlap(posA Vec3, radiusA float64, posB Vec3, radiusB float64) bool {
	reach := radiusA + radiusB
	return ProjectToPlane(posA).Sub(ProjectToPlane(posB)).LengthSquared() <= reach*reach
}

// CollisionSystem resolves ship against hostile projectile hits. A projectile
// is consumed by the first ship it damages; a ship whose health drops to zero
// or below is marked dead and takes no further hits this frame.
type CollisionSystem struct {
	world       *World
	ships       *ecs.Filter4[Position, Body, Hull, Life]
	projectiles *ecs.Filter4[Position, Body, Projectile, Life]

	live []projectileHit
}

type projectileHit struct {
	entity   ecs.Entity
	position Vec3
	radius   float64
	damage   float64
	faction  Faction
	consumed bool
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(world *World) *CollisionSystem {
	return &CollisionSystem{
		world:       world,
		ships:       ecs.NewFilter4[Position, Body, Hull, Life](world.ECS()),
		projectiles: ecs.NewFilter4[Position, Body, Projectile, Life](world.ECS()),
		live:        make([]projectileHit, 0, 64),
	}
}

// Name implements System
func (s *CollisionSystem) Name() string { return "collision" }

// Update implements System
func (s *CollisionSystem) Update(ctx *FrameContext) error {
	s.collectProjectiles()
	if len(s.live) == 0 {
		return nil
	}

	query := s.ships.Query()
	for query.Next() {
		pos, body, hull, life := query.Get()
		if life.Dead {
			continue
		}
		ship := query.Entity()

		for i := range s.live {
			p := &s.live[i]
			if p.consumed || !body.Faction.Hostile(p.faction) {
				continue
			}
			if !CirclesOverlap(pos.Vec3, body.Radius, p.position, p.radius) {
				continue
			}

			p.consumed = true
			hull.Health -= p.damage
			ctx.Events.Record(Event{
				Type:    EventTypeProjectileHit,
				Subject: ship,
				Other:   p.entity,
				Faction: body.Faction,
				Amount:  p.damage,
			})

			if hull.Health <= 0 {
				life.Dead = true
				ctx.Events.Record(Event{
					Type:    EventTypeShipDestroyed,
					Subject: ship,
					Other:   p.entity,
					Faction: body.Faction,
				})
				break
			}
		}
	}

	for _, p := range s.live {
		if p.consumed {
			s.world.MarkDead(p.entity)
		}
	}
	return nil
}

// collectProjectiles snapshots live projectiles before ships are visited
func (s *CollisionSystem) collectProjectiles() {
	s.live = s.live[:0]
	query := s.projectiles.Query()
	for query.Next() {
		pos, body, payload, life := query.Get()
		if life.Dead {
			continue
		}
		s.live = append(s.live, projectileHit{
			entity:   query.Entity(),
			position: pos.Vec3,
			radius:   body.Radius,
			damage:   payload.Damage,
			faction:  body.Faction,
		})
	}
}

// CleanupSystem removes everything marked dead during the frame, then
// creates the projectiles fired this frame. It always runs last.
type CleanupSystem struct {
	world *World
}

// NewCleanupSystem creates a new cleanup system
func NewCleanupSystem(world *World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

// Name implements System
func (s *CleanupSystem) Name() string { return "cleanup" }

// Update implements System
func (s *CleanupSystem) Update(ctx *FrameContext) error {
	s.world.Cleanup()
	s.world.FlushSpawns()
	return nil
}
