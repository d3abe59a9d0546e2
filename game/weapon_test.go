package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shotFrames runs tickWeapon over a firing pattern and returns the frames
// (1-based) on which a shot fired
func shotFrames(pattern []bool, cooldown, dt float64) []int {
	weapon := &Weapon{Cooldown: cooldown}
	var frames []int
	for i, firing := range pattern {
		weapon.Firing = firing
		if tickWeapon(weapon, dt) {
			frames = append(frames, i+1)
		}
	}
	return frames
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestTickWeaponFiresOncePerCooldown(t *testing.T) {
	assert.Equal(t, []int{4, 8, 12}, shotFrames(repeat(true, 12), 0.5, 0.125))
}

func TestTickWeaponToggleGrantsNoExtraShots(t *testing.T) {
	continuous := shotFrames(repeat(true, 12), 0.5, 0.125)

	toggled := repeat(true, 12)
	toggled[1] = false
	toggled[2] = false
	toggled[5] = false
	assert.Equal(t, continuous, shotFrames(toggled, 0.5, 0.125))
}

func TestTickWeaponDoesNotBankShots(t *testing.T) {
	pattern := append(repeat(false, 20), repeat(true, 8)...)
	// the timer is already full when firing starts, but holds one shot only
	assert.Equal(t, []int{21, 25}, shotFrames(pattern, 0.5, 0.125))
}

func TestWeaponSystemQueuesShotsUntilCleanup(t *testing.T) {
	world := NewWorld()
	spec := quietShip(FactionBlue, PilotAI, 30, -40).
		WithDamage(4).
		WithFiringRate(100 * time.Millisecond)
	spec.ProjectileSpeed = 250
	spec.ProjectileRadius = 3
	ship := world.SpawnShip(spec, 1)

	weapon := world.Weapon(ship)
	weapon.Firing = true
	weapon.Aim = Vec3{Y: 2}

	ctx := newFrame(0.1)
	require.NoError(t, NewWeaponSystem(world).Update(ctx))

	require.Equal(t, 1, ctx.Events.Count(EventTypeShotFired))
	assert.Equal(t, 1, world.PendingSpawns())
	assert.Zero(t, world.ProjectileCount())

	require.NoError(t, NewCleanupSystem(world).Update(ctx))
	require.Equal(t, 1, world.ProjectileCount())
	assert.Zero(t, world.PendingSpawns())

	shot := ctx.Events.Events()[0]
	assert.Equal(t, ship, shot.Subject)

	views := world.Views(nil)
	var projectile EntityView
	for _, v := range views {
		if v.Kind == EntityKindProjectile {
			projectile = v
		}
	}
	assert.Equal(t, Vec3{X: 30, Y: -40, Z: ctx.ProjectileDepth}, projectile.Position)
	assert.Equal(t, 3.0, projectile.Radius)
	assert.Equal(t, FactionBlue, projectile.Faction)

	// stats were copied at spawn time
	weapon.Damage = 99
	assert.Equal(t, 4.0, world.Projectile(projectile.Entity).Damage)
	assert.Equal(t, Vec3{Y: 250}, world.Velocity(projectile.Entity).Vec3)
}

func TestWeaponSystemDegenerateAimUsesDefaultDirection(t *testing.T) {
	world := NewWorld()
	ship := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)
	weapon := world.Weapon(ship)
	weapon.Firing = true
	weapon.Aim = Vec3{}

	ctx := newFrame(DefaultFireRate.Seconds())
	require.NoError(t, NewWeaponSystem(world).Update(ctx))
	require.NoError(t, NewCleanupSystem(world).Update(ctx))

	views := world.Views(nil)
	require.Len(t, views, 2)
	for _, v := range views {
		if v.Kind == EntityKindProjectile {
			assert.Equal(t, DefaultDirection.Scale(DefaultProjectileSpeed), world.Velocity(v.Entity).Vec3)
		}
	}
}

func TestWeaponSystemDeadShipsHoldFire(t *testing.T) {
	world := NewWorld()
	ship := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)
	world.Weapon(ship).Firing = true
	world.MarkDead(ship)

	require.NoError(t, NewWeaponSystem(world).Update(newFrame(10)))
	assert.Zero(t, world.PendingSpawns())
}
