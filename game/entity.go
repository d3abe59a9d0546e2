package game

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
)

// Color is an optional ship colour. The zero value means "use the faction
// colour".
type Color struct {
	color.RGBA
	Set bool
}

// ParseColor parses a "#rrggbb" string. An empty string yields the unset
// colour.
func ParseColor(hex string) (Color, error) {
	if hex == "" {
		return Color{}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{RGBA: color.RGBA{R: r, G: g, B: b, A: 255}, Set: true}, nil
}

// RGBA returns the ship's draw colour
func (s ShipSpec) RGBA() color.RGBA {
	if s.Color.Set {
		return s.Color.RGBA
	}
	return GetFactionConfig(s.Faction).Color
}

// EntityKind tells the render collaborator what it is drawing
type EntityKind int

const (
	EntityKindShip EntityKind = iota
	EntityKindProjectile
)

func (k EntityKind) String() string {
	if k == EntityKindProjectile {
		return "projectile"
	}
	return "ship"
}

// kindOf classifies a stored entity
func (w *World) kindOf(e ecs.Entity) EntityKind {
	if w.payloads.Has(e) {
		return EntityKindProjectile
	}
	return EntityKindShip
}

// projectileFrom builds the spawn spec for a shot fired by a ship. Stats are
// copied so later changes to the ship never reach the projectile.
func projectileFrom(pos *Position, body *Body, weapon *Weapon, depth float64) ProjectileSpec {
	dir := ProjectToPlane(weapon.Aim).Normalize()
	return ProjectileSpec{
		Position: Vec3{X: pos.X, Y: pos.Y, Z: depth},
		Velocity: dir.Scale(weapon.ProjectileSpeed),
		Radius:   weapon.ProjectileRadius,
		Damage:   weapon.Damage,
		Faction:  body.Faction,
		Color:    body.Color,
	}
}
