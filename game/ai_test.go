package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIIntentSteersAndAims(t *testing.T) {
	drive := &Drive{BaseAccel: 300}
	weapon := &Weapon{ProjectileSpeed: 200}
	target := shipTarget{position: Vec3{X: 30, Y: 40, Z: 1}}

	intent := aiIntent(Vec3{Z: 1}, drive, weapon, AIPilot{}, target, true)
	assert.InDelta(t, 180.0, intent.Accel.X, 1e-9)
	assert.InDelta(t, 240.0, intent.Accel.Y, 1e-9)
	assert.Zero(t, intent.Accel.Z)
	assert.True(t, intent.HasAim)
	assert.InDelta(t, 0.6, intent.Aim.X, 1e-9)
	assert.InDelta(t, 0.8, intent.Aim.Y, 1e-9)
	assert.True(t, intent.Firing)
}

func TestAIIntentOnTopOfTargetUsesDefaultDirection(t *testing.T) {
	drive := &Drive{BaseAccel: 10}
	weapon := &Weapon{ProjectileSpeed: 200}
	target := shipTarget{position: Vec3{X: 5, Y: 5}}

	intent := aiIntent(Vec3{X: 5, Y: 5}, drive, weapon, AIPilot{Intercept: true}, target, true)
	assert.Equal(t, DefaultDirection.Scale(10), intent.Accel)
	assert.Equal(t, DefaultDirection, intent.Aim)
}

func TestAIIntentLeadsMovingTarget(t *testing.T) {
	drive := &Drive{BaseAccel: 10}
	weapon := &Weapon{ProjectileSpeed: 200}
	target := shipTarget{position: Vec3{X: 100}, velocity: Vec3{Y: 50}}

	plain := aiIntent(Vec3{}, drive, weapon, AIPilot{}, target, true)
	leading := aiIntent(Vec3{}, drive, weapon, AIPilot{Intercept: true}, target, true)

	assert.Equal(t, Vec3{X: 1}, plain.Aim)
	assert.Greater(t, leading.Aim.Y, 0.0)
	assert.InDelta(t, 1.0, leading.Aim.Length(), 1e-9)
}

func TestAIIntentWithoutTarget(t *testing.T) {
	drive := &Drive{BaseAccel: 10}
	weapon := &Weapon{}

	idle := aiIntent(Vec3{}, drive, weapon, AIPilot{FirePolicy: FireInRange, FireRange: 100}, shipTarget{}, false)
	assert.Equal(t, Vec3{}, idle.Accel)
	assert.False(t, idle.HasAim)
	assert.False(t, idle.Firing)

	always := aiIntent(Vec3{}, drive, weapon, AIPilot{FirePolicy: FireAlways}, shipTarget{}, false)
	assert.True(t, always.Firing)
}

func TestShouldFire(t *testing.T) {
	assert.True(t, shouldFire(AIPilot{FirePolicy: FireAlways}, 1e9))
	assert.True(t, shouldFire(AIPilot{FirePolicy: FireInRange, FireRange: 50}, 50))
	assert.False(t, shouldFire(AIPilot{FirePolicy: FireInRange, FireRange: 50}, 50.1))
	assert.False(t, shouldFire(AIPilot{FirePolicy: FireNever}, 0))
}

func TestAIIntentSystemTargetsNearestHostile(t *testing.T) {
	world := NewWorld()
	hunter := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)
	world.SpawnShip(quietShip(FactionRed, PilotAI, 5, 0), 1)
	far := world.SpawnShip(quietShip(FactionBlue, PilotAI, 0, 300), 1)
	near := world.SpawnShip(quietShip(FactionBlue, PilotAI, -100, 0), 1)

	system := NewAIIntentSystem(world)
	require.NoError(t, system.Update(newFrame(0.1)))

	assert.Equal(t, near, world.Pilot(hunter).Target)
	acc := ecs.NewMap[Acceleration](world.ECS()).Get(hunter)
	assert.InDelta(t, -DefaultBaseAccel, acc.X, 1e-9)

	// the nearest hostile is gone, the next one is picked up
	world.MarkDead(near)
	require.NoError(t, system.Update(newFrame(0.1)))
	assert.Equal(t, far, world.Pilot(hunter).Target)
}

func TestAIIntentSystemNoHostilesLeft(t *testing.T) {
	world := NewWorld()
	hunter := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)

	require.NoError(t, NewAIIntentSystem(world).Update(newFrame(0.1)))

	assert.True(t, world.Pilot(hunter).Target.IsZero())
	assert.False(t, world.Weapon(hunter).Firing)
}
