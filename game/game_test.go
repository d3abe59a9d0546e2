package game

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulationValidates(t *testing.T) {
	_, err := NewSimulation(DefaultConfig(), Scenario{Name: "empty"})
	assert.ErrorIs(t, err, ErrInvalidScenario)

	cfg := DefaultConfig()
	cfg.Arena.Width = 0
	_, err = NewSimulation(cfg, Scenario{Ships: []ShipSpec{quietShip(FactionBlue, PilotPlayer, 0, 0)}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStepFailsWithoutPlayerWhileRunning(t *testing.T) {
	sim := newTestSimulation(t,
		quietShip(FactionBlue, PilotPlayer, 0, 0),
		quietShip(FactionRed, PilotAI, 100, 0),
	)
	player, ok := sim.World().Player()
	require.True(t, ok)
	sim.World().ECS().RemoveEntity(player)

	err := sim.Step(InputState{}, 0.1)
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestMatchEndsWhenPlayerDestroyed(t *testing.T) {
	var buf bytes.Buffer
	player := quietShip(FactionBlue, PilotPlayer, 0, 0)
	player.Health = 1
	sim, err := NewSimulation(DefaultConfig(),
		Scenario{Name: "test", Ships: []ShipSpec{player, quietShip(FactionRed, PilotAI, 300, 0)}},
		WithLogger(zerolog.New(&buf)),
	)
	require.NoError(t, err)

	sim.World().SpawnProjectile(hostileShot(FactionRed, Vec3{X: 2}, Vec3{}, 1, 5))
	require.NoError(t, sim.Step(InputState{}, 0.01))

	assert.Equal(t, 1, sim.EventCount(EventTypeShipDestroyed))
	assert.Equal(t, MatchOver, sim.State())
	winner, over := sim.Winner()
	assert.True(t, over)
	assert.Equal(t, FactionRed, winner)

	// the missing player is expected from now on
	for i := 0; i < 5; i++ {
		require.NoError(t, sim.Step(InputState{}, 0.01))
	}
	assert.Equal(t, MatchOver, sim.State())

	assert.Contains(t, buf.String(), `"message":"ship destroyed"`)
	assert.Contains(t, buf.String(), `"message":"match over"`)
	assert.Contains(t, buf.String(), `"winner":"red"`)
}

func TestMatchEndsWhenOppositionDestroyed(t *testing.T) {
	enemy := quietShip(FactionRed, PilotAI, 200, 0)
	enemy.Health = 1
	sim := newTestSimulation(t, quietShip(FactionBlue, PilotPlayer, 0, 0), enemy)

	sim.World().SpawnProjectile(hostileShot(FactionBlue, Vec3{X: 200}, Vec3{}, 1, 1))
	require.NoError(t, sim.Step(InputState{}, 0.01))

	winner, over := sim.Winner()
	assert.True(t, over)
	assert.Equal(t, FactionBlue, winner)
}

func TestSandboxNeverEnds(t *testing.T) {
	scenario, err := GetScenario("sandbox")
	require.NoError(t, err)
	sim, err := NewSimulation(DefaultConfig(), scenario)
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		require.NoError(t, sim.Step(InputState{Up: true, FirePressed: i == 0}, 1.0/60))
	}
	assert.Equal(t, MatchRunning, sim.State())
	assert.Equal(t, uint64(40), sim.Frame())
	assert.Positive(t, sim.World().ProjectileCount())
}

func TestResetRespawnsScenario(t *testing.T) {
	scenario, err := GetScenario("duel")
	require.NoError(t, err)
	sim, err := NewSimulation(DefaultConfig(), scenario)
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		require.NoError(t, sim.Step(InputState{Left: true}, 1.0/60))
	}
	before, _ := sim.Snapshot().Player()

	sim.Reset()
	snap := sim.Snapshot()
	after, ok := snap.Player()
	require.True(t, ok)

	assert.Zero(t, snap.Frame)
	assert.Equal(t, MatchRunning, snap.State)
	assert.Len(t, snap.Entities, len(scenario.Ships))
	assert.Equal(t, scenario.Ships[0].X, after.Position.X)
	assert.NotEqual(t, before.Position.X, after.Position.X)
}

func TestStepTreatsBadDeltaAsZero(t *testing.T) {
	sim := newTestSimulation(t, quietShip(FactionBlue, PilotPlayer, 10, 10))
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		require.NoError(t, sim.Step(InputState{Right: true}, dt))
	}
	player, _ := sim.Snapshot().Player()
	assert.Equal(t, 10.0, player.Position.X)
	assert.Equal(t, 10.0, player.Position.Y)
}

func TestAutopilotSkirmishKeepsInvariants(t *testing.T) {
	scenario, err := GetScenario("skirmish")
	require.NoError(t, err)
	sim, err := NewSimulation(DefaultConfig(), scenario.WithAutopilot())
	require.NoError(t, err)

	cfg := DefaultConfig()
	for i := 0; i < 1200 && sim.State() == MatchRunning; i++ {
		require.NoError(t, sim.Step(InputState{}, 1.0/60))

		for _, v := range sim.Snapshot().Entities {
			if v.Kind == EntityKindShip {
				assert.Positive(t, v.Health)
				assert.LessOrEqual(t, v.Health, v.MaxHealth)
				continue
			}
			assert.LessOrEqual(t, math.Abs(v.Position.X), cfg.DespawnDistance())
			assert.LessOrEqual(t, math.Abs(v.Position.Y), cfg.DespawnDistance())
		}
	}
}
