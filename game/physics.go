package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
)

// AccelerationSystem integrates acceleration into velocity and applies each
// ship's speed clamp.
type AccelerationSystem struct {
	filter *ecs.Filter3[Velocity, Acceleration, Drive]
}

// NewAccelerationSystem creates a new acceleration system
func NewAccelerationSystem(world *World) *AccelerationSystem {
	return &AccelerationSystem{
		filter: ecs.NewFilter3[Velocity, Acceleration, Drive](world.ECS()),
	}
}

// Name implements System
func (s *AccelerationSystem) Name() string { return "acceleration" }

// Update implements System
func (s *AccelerationSystem) Update(ctx *FrameContext) error {
	query := s.filter.Query()
	for query.Next() {
		vel, acc, drive := query.Get()
		vel.Vec3 = integrateVelocity(vel.Vec3, acc.Vec3, drive.MaxSpeed, ctx.DT)
	}
	return nil
}

// MovementSystem integrates velocity into position for everything that
// moves, ships and projectiles alike.
type MovementSystem struct {
	filter *ecs.Filter2[Position, Velocity]
}

// NewMovementSystem creates a new movement system
func NewMovementSystem(world *World) *MovementSystem {
	return &MovementSystem{
		filter: ecs.NewFilter2[Position, Velocity](world.ECS()),
	}
}

// Name implements System
func (s *MovementSystem) Name() string { return "movement" }

// Update implements System
func (s *MovementSystem) Update(ctx *FrameContext) error {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		pos.Vec3 = integratePosition(pos.Vec3, vel.Vec3, ctx.DT)
	}
	return nil
}

// integrateVelocity returns vel + acc*dt, clamped to maxSpeed when the clamp
// is enabled. The depth axis never moves.
func integrateVelocity(vel, acc Vec3, maxSpeed, dt float64) Vec3 {
	acc = ProjectToPlane(acc)
	vel = vel.Add(acc.Scale(dt))
	if speedLimited(maxSpeed) {
		vel = vel.ClampLength(maxSpeed)
	}
	return vel
}

// integratePosition returns pos + vel*dt on the gameplay plane
func integratePosition(pos, vel Vec3, dt float64) Vec3 {
	step := ProjectToPlane(vel).Scale(dt)
	return pos.Add(step)
}

// speedLimited reports whether maxSpeed describes an actual clamp
func speedLimited(maxSpeed float64) bool {
	return maxSpeed > 0 && !math.IsInf(maxSpeed, 1)
}
