package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCirclesOverlapSymmetric(t *testing.T) {
	tests := []struct {
		a, b   Vec3
		ra, rb float64
	}{
		{Vec3{}, Vec3{X: 3}, 1, 1},
		{Vec3{X: -4, Y: 2}, Vec3{X: 1, Y: -1}, 2, 5},
		{Vec3{X: 10, Z: 1}, Vec3{X: 10.5}, 0.1, 0.1},
		{Vec3{X: 100}, Vec3{Y: 100}, 70, 71},
	}
	for _, tt := range tests {
		assert.Equal(t,
			CirclesOverlap(tt.a, tt.ra, tt.b, tt.rb),
			CirclesOverlap(tt.b, tt.rb, tt.a, tt.ra),
		)
	}
}

func TestCirclesOverlapBoundaryIsInclusive(t *testing.T) {
	assert.True(t, CirclesOverlap(Vec3{}, 2, Vec3{X: 5}, 3))
	assert.True(t, CirclesOverlap(Vec3{}, 2, Vec3{X: 3, Y: 4}, 3))
	assert.False(t, CirclesOverlap(Vec3{}, 2, Vec3{X: 5.001}, 3))
}

func TestCirclesOverlapIgnoresDepth(t *testing.T) {
	assert.True(t, CirclesOverlap(Vec3{Z: 100}, 1, Vec3{X: 1.5, Z: -100}, 1))
}

func TestCollisionFriendlyFireExcluded(t *testing.T) {
	offsets := []Vec3{{}, {X: 2}, {X: -3, Y: 4}, {Y: 8}}
	for _, offset := range offsets {
		world := NewWorld()
		a := world.SpawnShip(quietShip(FactionBlue, PilotAI, 0, 0), 1)
		b := world.SpawnShip(quietShip(FactionBlue, PilotAI, offset.X, offset.Y), 1)
		shot := world.SpawnProjectile(hostileShot(FactionBlue, offset, Vec3{}, 5, 50))

		ctx := newFrame(1.0 / 60)
		require.NoError(t, NewCollisionSystem(world).Update(ctx))

		assert.Equal(t, DefaultShipHealth, world.Hull(a).Health)
		assert.Equal(t, DefaultShipHealth, world.Hull(b).Health)
		assert.True(t, world.Alive(shot))
		assert.Zero(t, ctx.Events.Count(EventTypeProjectileHit))
	}
}

func TestCollisionProjectileIsSingleUse(t *testing.T) {
	world := NewWorld()
	a := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)
	b := world.SpawnShip(quietShip(FactionRed, PilotAI, 1, 0), 1)
	shot := world.SpawnProjectile(hostileShot(FactionBlue, Vec3{X: 0.5}, Vec3{}, 2, 7))

	ctx := newFrame(1.0 / 60)
	require.NoError(t, NewCollisionSystem(world).Update(ctx))

	damaged := 0
	if world.Hull(a).Health < DefaultShipHealth {
		damaged++
	}
	if world.Hull(b).Health < DefaultShipHealth {
		damaged++
	}
	assert.Equal(t, 1, damaged)
	assert.False(t, world.Alive(shot))
	assert.Equal(t, 1, ctx.Events.Count(EventTypeProjectileHit))
}

func TestCollisionSkipsDeadShips(t *testing.T) {
	world := NewWorld()
	ship := world.SpawnShip(quietShip(FactionRed, PilotAI, 0, 0), 1)
	world.MarkDead(ship)
	shot := world.SpawnProjectile(hostileShot(FactionBlue, Vec3{}, Vec3{}, 2, 7))

	ctx := newFrame(1.0 / 60)
	require.NoError(t, NewCollisionSystem(world).Update(ctx))

	assert.Equal(t, DefaultShipHealth, world.Hull(ship).Health)
	assert.True(t, world.Alive(shot))
}

func TestCollisionDestroysShipExactlyOnce(t *testing.T) {
	world := NewWorld()
	spec := quietShip(FactionRed, PilotAI, 0, 0)
	spec.Health = 3
	ship := world.SpawnShip(spec, 1)
	for i := 0; i < 4; i++ {
		world.SpawnProjectile(hostileShot(FactionBlue, Vec3{}, Vec3{}, 1, 2))
	}

	ctx := newFrame(1.0 / 60)
	require.NoError(t, NewCollisionSystem(world).Update(ctx))

	// two hits take it to -1; the remaining shots are not consumed
	assert.Equal(t, 2, ctx.Events.Count(EventTypeProjectileHit))
	assert.Equal(t, 1, ctx.Events.Count(EventTypeShipDestroyed))
	assert.InDelta(t, -1.0, world.Hull(ship).Health, 1e-12)
	assert.False(t, world.Alive(ship))

	world.Cleanup()
	assert.False(t, world.Exists(ship))
	assert.Equal(t, 2, world.ProjectileCount())
}

func TestNoShipWithNonPositiveHealthSurvivesCollision(t *testing.T) {
	world := NewWorld()
	for i := 0; i < 5; i++ {
		spec := quietShip(Faction(i%2), PilotAI, float64(i*4), 0)
		spec.Health = float64(1 + i)
		world.SpawnShip(spec, 1)
	}
	for i := 0; i < 12; i++ {
		world.SpawnProjectile(hostileShot(Faction(i%2), Vec3{X: float64(i)}, Vec3{}, 3, 1.5))
	}

	require.NoError(t, NewCollisionSystem(world).Update(newFrame(1.0/60)))

	query := world.shipFilter.Query()
	for query.Next() {
		_, _, hull, life := query.Get()
		assert.Equal(t, hull.Health <= 0, life.Dead)
	}
}

func TestProjectileDestroysStationaryShip(t *testing.T) {
	ship := NewShipSpec("a", FactionBlue, PilotPlayer)
	ship.Radius = 5
	ship.Health = 10
	sim := newTestSimulation(t, ship)

	sim.World().SpawnProjectile(hostileShot(FactionRed, Vec3{X: 50}, Vec3{X: -400}, 1, 10))

	const dt = 1.0 / 60
	frames := 0
	for ; frames < 60 && sim.State() == MatchRunning; frames++ {
		require.NoError(t, sim.Step(InputState{}, dt))
	}

	// the shot touches at 44 units of travel and has fully arrived by 0.125s
	assert.LessOrEqual(t, frames, int(math.Ceil(0.125/dt)))
	assert.Equal(t, MatchOver, sim.State())
	assert.Zero(t, sim.World().ProjectileCount())
	_, ok := sim.World().Player()
	assert.False(t, ok)

	winner, over := sim.Winner()
	assert.True(t, over)
	assert.Equal(t, FactionRed, winner)
}

func TestShotCannotHitInTheFrameItIsFired(t *testing.T) {
	gunner := NewShipSpec("gunner", FactionBlue, PilotPlayer).
		WithFiringRate(time.Nanosecond).
		At(0, 0)
	sim := newTestSimulation(t, gunner, quietShip(FactionRed, PilotAI, 3, 0))

	aim := InputState{Pointer: Vec3{X: 3}, HasPointer: true}
	trigger := aim
	trigger.FirePressed = true

	require.NoError(t, sim.Step(trigger, 0.01))
	assert.Equal(t, 1, sim.EventCount(EventTypeShotFired))
	assert.Zero(t, sim.EventCount(EventTypeProjectileHit))
	assert.Equal(t, 1, sim.World().ProjectileCount())
	assert.Equal(t, DefaultShipHealth, aiShipView(t, sim).Health)

	// the shot exists now and the target sits inside it
	require.NoError(t, sim.Step(aim, 0.01))
	assert.Positive(t, sim.EventCount(EventTypeProjectileHit))
	assert.Less(t, aiShipView(t, sim).Health, DefaultShipHealth)
}
