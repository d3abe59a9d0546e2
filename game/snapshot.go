package game

import (
	"image/color"
	"sort"

	"github.com/mlange-42/ark/ecs"
)

// EntityView is the read-only draw data for one entity
type EntityView struct {
	Entity   ecs.Entity
	Kind     EntityKind
	Position Vec3
	Radius   float64
	Color    color.RGBA
	Faction  Faction

	// ship only
	Health    float64
	MaxHealth float64
	Aim       Vec3
	Player    bool
}

// Snapshot is everything the render collaborator needs for one frame
type Snapshot struct {
	Frame    uint64
	State    MatchState
	Winner   Faction
	Arena    Bounds
	Entities []EntityView
}

// Player returns the player ship's view
func (s Snapshot) Player() (EntityView, bool) {
	for _, v := range s.Entities {
		if v.Player {
			return v, true
		}
	}
	return EntityView{}, false
}

// Count returns how many views of a kind and faction the snapshot holds
func (s Snapshot) Count(kind EntityKind, faction Faction) int {
	n := 0
	for _, v := range s.Entities {
		if v.Kind == kind && v.Faction == faction {
			n++
		}
	}
	return n
}

// Snapshot copies the draw state of every live entity, ordered by depth
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Frame:    s.frame,
		State:    s.state,
		Winner:   s.winner,
		Arena:    s.config.Bounds(),
		Entities: s.world.Views(nil),
	}
}

// Views appends a view of every live entity to dst, lowest depth first
func (w *World) Views(dst []EntityView) []EntityView {
	start := len(dst)

	query := w.drawFilter.Query()
	for query.Next() {
		pos, body, life := query.Get()
		if life.Dead {
			continue
		}
		e := query.Entity()
		view := EntityView{
			Entity:   e,
			Kind:     w.kindOf(e),
			Position: pos.Vec3,
			Radius:   body.Radius,
			Color:    body.Color,
			Faction:  body.Faction,
		}
		if view.Kind == EntityKindShip {
			hull := w.hulls.Get(e)
			view.Health = hull.Health
			view.MaxHealth = hull.MaxHealth
			view.Aim = w.weapons.Get(e).Aim
			view.Player = w.players.Has(e)
		}
		dst = append(dst, view)
	}

	views := dst[start:]
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Position.Z < views[j].Position.Z
	})
	return dst
}
