package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newFrame returns a frame context over the default arena
func newFrame(dt float64) *FrameContext {
	cfg := DefaultConfig()
	log := NewEventLog()
	log.Begin(1)
	return &FrameContext{
		Frame:           1,
		DT:              dt,
		Arena:           cfg.Bounds(),
		Events:          log,
		DespawnDistance: cfg.DespawnDistance(),
		ShipDepth:       cfg.Arena.ShipDepth,
		ProjectileDepth: cfg.Arena.ProjectileDepth,
	}
}

// quietShip is a ship that never fires on its own
func quietShip(faction Faction, pilot PilotKind, x, y float64) ShipSpec {
	return NewShipSpec("test", faction, pilot).
		WithFirePolicy(FireNever, 0).
		At(x, y)
}

func hostileShot(faction Faction, pos, vel Vec3, radius, damage float64) ProjectileSpec {
	return ProjectileSpec{
		Position: pos,
		Velocity: vel,
		Radius:   radius,
		Damage:   damage,
		Faction:  faction,
		Color:    GetFactionConfig(faction).Color,
	}
}

func newTestSimulation(t *testing.T, ships ...ShipSpec) *Simulation {
	t.Helper()
	sim, err := NewSimulation(DefaultConfig(), Scenario{Name: "test", Ships: ships})
	require.NoError(t, err)
	return sim
}

// aiShipView returns the first AI ship in the simulation's snapshot
func aiShipView(t *testing.T, sim *Simulation) EntityView {
	t.Helper()
	for _, v := range sim.Snapshot().Entities {
		if v.Kind == EntityKindShip && !v.Player {
			return v
		}
	}
	require.FailNow(t, "no AI ship in snapshot")
	return EntityView{}
}
