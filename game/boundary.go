package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// BoundarySystem wraps the player ship around the arena edges and expires
// projectiles that fly too far from the centre. It runs straight after
// movement so an expired projectile never reaches collision.
type BoundarySystem struct {
	world       *World
	players     *ecs.Filter3[PlayerPilot, Position, Body]
	projectiles *ecs.Filter3[Projectile, Position, Life]
}

// NewBoundarySystem creates a new boundary system
func NewBoundarySystem(world *World) *BoundarySystem {
	return &BoundarySystem{
		world:       world,
		players:     ecs.NewFilter3[PlayerPilot, Position, Body](world.ECS()),
		projectiles: ecs.NewFilter3[Projectile, Position, Life](world.ECS()),
	}
}

// Name implements System
func (s *BoundarySystem) Name() string { return "boundary" }

// Update implements System
func (s *BoundarySystem) Update(ctx *FrameContext) error {
	players := s.players.Query()
	for players.Next() {
		_, pos, body := players.Get()
		pos.Vec3 = WrapPosition(pos.Vec3, ctx.Arena, body.Radius)
	}

	projectiles := s.projectiles.Query()
	for projectiles.Next() {
		_, pos, life := projectiles.Get()
		if life.Dead || !OutOfBounds(pos.Vec3, ctx.DespawnDistance) {
			continue
		}
		life.Dead = true
		ctx.Events.Record(Event{
			Type:    EventTypeProjectileExpired,
			Subject: projectiles.Entity(),
		})
	}
	return nil
}

// WrapPosition applies toroidal wrap: leaving one edge by more than the
// entity's radius re-enters at the opposite edge. Each wrapped axis ends up
// in [-half-radius, half+radius).
func WrapPosition(pos Vec3, arena Bounds, radius float64) Vec3 {
	hw := arena.HalfWidth()
	hh := arena.HalfHeight()
	return Vec3{
		X: euclidMod(pos.X+hw+radius, arena.Width+2*radius) - hw - radius,
		Y: euclidMod(pos.Y+hh+radius, arena.Height+2*radius) - hh - radius,
		Z: pos.Z,
	}
}

// OutOfBounds reports whether either planar axis lies beyond limit
func OutOfBounds(pos Vec3, limit float64) bool {
	return math.Abs(pos.X) > limit || math.Abs(pos.Y) > limit
}
