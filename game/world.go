package game

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"
)

// World owns every live entity and its components. Structural changes are
// deferred: projectiles spawned during a pass are queued until FlushSpawns,
// and removals are two-phase (MarkDead, then Cleanup) so no system ever
// iterates a half-modified entity set.
type World struct {
	ecs *ecs.World

	playerShips *ecs.Map9[Position, Velocity, Acceleration, Body, Drive, Hull, Weapon, Life, PlayerPilot]
	aiShips     *ecs.Map9[Position, Velocity, Acceleration, Body, Drive, Hull, Weapon, Life, AIPilot]
	projectiles *ecs.Map5[Position, Velocity, Body, Projectile, Life]

	positions  *ecs.Map[Position]
	velocities *ecs.Map[Velocity]
	bodies     *ecs.Map[Body]
	hulls      *ecs.Map[Hull]
	weapons    *ecs.Map[Weapon]
	lives      *ecs.Map[Life]
	players    *ecs.Map[PlayerPilot]
	pilots     *ecs.Map[AIPilot]
	payloads   *ecs.Map[Projectile]

	shipFilter       *ecs.Filter4[Position, Body, Hull, Life]
	projectileFilter *ecs.Filter4[Position, Body, Projectile, Life]
	playerFilter     *ecs.Filter1[PlayerPilot]
	lifeFilter       *ecs.Filter1[Life]
	drawFilter       *ecs.Filter3[Position, Body, Life]

	pending []ProjectileSpec
	removed []ecs.Entity
}

// ProjectileSpec describes a projectile to create. Every field is a copy;
// nothing links the projectile back to the ship that fired it.
type ProjectileSpec struct {
	Position Vec3
	Velocity Vec3
	Radius   float64
	Damage   float64
	Faction  Faction
	Color    color.RGBA
}

// NewWorld creates an empty world
func NewWorld() *World {
	w := ecs.NewWorld()
	return &World{
		ecs: w,

		playerShips: ecs.NewMap9[Position, Velocity, Acceleration, Body, Drive, Hull, Weapon, Life, PlayerPilot](w),
		aiShips:     ecs.NewMap9[Position, Velocity, Acceleration, Body, Drive, Hull, Weapon, Life, AIPilot](w),
		projectiles: ecs.NewMap5[Position, Velocity, Body, Projectile, Life](w),

		positions:  ecs.NewMap[Position](w),
		velocities: ecs.NewMap[Velocity](w),
		bodies:     ecs.NewMap[Body](w),
		hulls:      ecs.NewMap[Hull](w),
		weapons:    ecs.NewMap[Weapon](w),
		lives:      ecs.NewMap[Life](w),
		players:    ecs.NewMap[PlayerPilot](w),
		pilots:     ecs.NewMap[AIPilot](w),
		payloads:   ecs.NewMap[Projectile](w),

		shipFilter:       ecs.NewFilter4[Position, Body, Hull, Life](w),
		projectileFilter: ecs.NewFilter4[Position, Body, Projectile, Life](w),
		playerFilter:     ecs.NewFilter1[PlayerPilot](w),
		lifeFilter:       ecs.NewFilter1[Life](w),
		drawFilter:       ecs.NewFilter3[Position, Body, Life](w),
	}
}

// ECS exposes the underlying ark world so systems can build their own filters
func (w *World) ECS() *ecs.World {
	return w.ecs
}

// SpawnShip creates a ship from its spec. Must not be called while a query
// is open.
func (w *World) SpawnShip(spec ShipSpec, depth float64) ecs.Entity {
	pos := &Position{Vec3{X: spec.X, Y: spec.Y, Z: depth}}
	vel := &Velocity{}
	acc := &Acceleration{}
	body := &Body{Radius: spec.Radius, Color: spec.RGBA(), Faction: spec.Faction}
	drive := &Drive{BaseAccel: spec.BaseAccel, MaxSpeed: spec.MaxSpeed}
	hull := &Hull{Health: spec.Health, MaxHealth: spec.Health}
	weapon := &Weapon{
		Aim:              DefaultDirection,
		Cooldown:         spec.FireRate.Seconds(),
		Elapsed:          0,
		Firing:           spec.AlwaysFiring,
		Damage:           spec.Damage,
		ProjectileSpeed:  spec.ProjectileSpeed,
		ProjectileRadius: spec.ProjectileRadius,
	}
	life := &Life{}

	if spec.Pilot == PilotPlayer {
		return w.playerShips.NewEntity(pos, vel, acc, body, drive, hull, weapon, life, &PlayerPilot{
			FireMode:  spec.FireMode,
			Autopilot: spec.Autopilot,
		})
	}
	return w.aiShips.NewEntity(pos, vel, acc, body, drive, hull, weapon, life, &AIPilot{
		Intercept:  spec.Intercept,
		FirePolicy: spec.FirePolicy,
		FireRange:  spec.FireRange,
	})
}

// SpawnProjectile creates a projectile immediately. Must not be called while
// a query is open; systems use QueueProjectile instead.
func (w *World) SpawnProjectile(spec ProjectileSpec) ecs.Entity {
	return w.projectiles.NewEntity(
		&Position{spec.Position},
		&Velocity{spec.Velocity},
		&Body{Radius: spec.Radius, Color: spec.Color, Faction: spec.Faction},
		&Projectile{Damage: spec.Damage},
		&Life{},
	)
}

// QueueProjectile defers a spawn until FlushSpawns
func (w *World) QueueProjectile(spec ProjectileSpec) {
	w.pending = append(w.pending, spec)
}

// PendingSpawns returns the number of queued projectiles
func (w *World) PendingSpawns() int {
	return len(w.pending)
}

// FlushSpawns creates every queued projectile in queue order
func (w *World) FlushSpawns() []ecs.Entity {
	if len(w.pending) == 0 {
		return nil
	}
	spawned := make([]ecs.Entity, 0, len(w.pending))
	for _, spec := range w.pending {
		spawned = append(spawned, w.SpawnProjectile(spec))
	}
	w.pending = w.pending[:0]
	return spawned
}

// MarkDead flags an entity for removal in the next Cleanup
func (w *World) MarkDead(e ecs.Entity) {
	if !w.Exists(e) || !w.lives.Has(e) {
		return
	}
	w.lives.Get(e).Dead = true
}

// Exists reports whether the entity is still stored, dead or not
func (w *World) Exists(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e)
}

// Alive reports whether the entity is stored and not marked dead
func (w *World) Alive(e ecs.Entity) bool {
	if !w.Exists(e) || !w.lives.Has(e) {
		return false
	}
	return !w.lives.Get(e).Dead
}

// Cleanup physically removes every entity marked dead and returns them
func (w *World) Cleanup() []ecs.Entity {
	w.removed = w.removed[:0]

	query := w.lifeFilter.Query()
	for query.Next() {
		if life := query.Get(); life.Dead {
			w.removed = append(w.removed, query.Entity())
		}
	}

	for _, e := range w.removed {
		w.ecs.RemoveEntity(e)
	}
	return w.removed
}

// Player returns the player ship. ok is false when it does not exist.
func (w *World) Player() (ecs.Entity, bool) {
	var player ecs.Entity
	found := false

	query := w.playerFilter.Query()
	for query.Next() {
		if !found {
			player = query.Entity()
			found = true
		}
	}
	return player, found
}

// IsPlayer reports whether e is the human-controlled ship
func (w *World) IsPlayer(e ecs.Entity) bool {
	return w.Exists(e) && w.players.Has(e)
}

// IsShip reports whether e is a ship
func (w *World) IsShip(e ecs.Entity) bool {
	return w.Exists(e) && w.hulls.Has(e)
}

// IsProjectile reports whether e is a projectile
func (w *World) IsProjectile(e ecs.Entity) bool {
	return w.Exists(e) && w.payloads.Has(e)
}

// ShipCount returns the number of live ships of a faction
func (w *World) ShipCount(faction Faction) int {
	count := 0
	query := w.shipFilter.Query()
	for query.Next() {
		_, body, _, life := query.Get()
		if !life.Dead && body.Faction == faction {
			count++
		}
	}
	return count
}

// ProjectileCount returns the number of stored projectiles, dead or alive
func (w *World) ProjectileCount() int {
	count := 0
	query := w.projectileFilter.Query()
	for query.Next() {
		count++
	}
	return count
}

// Position returns the entity's position component, or nil
func (w *World) Position(e ecs.Entity) *Position {
	if !w.Exists(e) || !w.positions.Has(e) {
		return nil
	}
	return w.positions.Get(e)
}

// Velocity returns the entity's velocity component, or nil
func (w *World) Velocity(e ecs.Entity) *Velocity {
	if !w.Exists(e) || !w.velocities.Has(e) {
		return nil
	}
	return w.velocities.Get(e)
}

// Body returns the entity's body component, or nil
func (w *World) Body(e ecs.Entity) *Body {
	if !w.Exists(e) || !w.bodies.Has(e) {
		return nil
	}
	return w.bodies.Get(e)
}

// Hull returns a ship's hull component, or nil
func (w *World) Hull(e ecs.Entity) *Hull {
	if !w.Exists(e) || !w.hulls.Has(e) {
		return nil
	}
	return w.hulls.Get(e)
}

// Weapon returns a ship's weapon component, or nil
func (w *World) Weapon(e ecs.Entity) *Weapon {
	if !w.Exists(e) || !w.weapons.Has(e) {
		return nil
	}
	return w.weapons.Get(e)
}

// Pilot returns an AI ship's pilot component, or nil
func (w *World) Pilot(e ecs.Entity) *AIPilot {
	if !w.Exists(e) || !w.pilots.Has(e) {
		return nil
	}
	return w.pilots.Get(e)
}

// Projectile returns a projectile's payload component, or nil
func (w *World) Projectile(e ecs.Entity) *Projectile {
	if !w.Exists(e) || !w.payloads.Has(e) {
		return nil
	}
	return w.payloads.Get(e)
}
