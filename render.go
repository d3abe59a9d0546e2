package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dotdestroyer/game"
)

var (
	colorAimLine    = color.RGBA{255, 255, 255, 90}
	colorHealthBack = color.RGBA{60, 60, 60, 200}
	colorHealth     = color.RGBA{80, 220, 90, 255}
	colorArenaEdge  = color.RGBA{40, 40, 60, 255}
)

const aimLineLength = 18.0

// Camera maps the y-up world, centred on the origin, onto the y-down screen
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := c.Height/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (c.Height/2-sy)/c.Zoom + c.Y
	return wx, wy
}

// FitArena zooms so the whole arena is visible in the viewport
func (c *Camera) FitArena(arena game.Bounds) {
	c.Zoom = min(c.Width/arena.Width, c.Height/arena.Height)
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
}

// drawArena outlines the wrap boundary
func drawArena(screen *ebiten.Image, camera *Camera, arena game.Bounds) {
	x, y := camera.WorldToScreen(-arena.HalfWidth(), arena.HalfHeight())
	w := arena.Width * camera.Zoom
	h := arena.Height * camera.Zoom
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colorArenaEdge, false)
}

// drawEntity draws a ship or projectile as a filled circle. Ships get an aim
// line and, once damaged, a health bar.
func drawEntity(screen *ebiten.Image, camera *Camera, view game.EntityView) {
	sx, sy := camera.WorldToScreen(view.Position.X, view.Position.Y)
	radius := view.Radius * camera.Zoom

	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), view.Color, true)

	if view.Kind != game.EntityKindShip {
		return
	}

	aim := game.ProjectToPlane(view.Aim).Normalize()
	tipX, tipY := camera.WorldToScreen(
		view.Position.X+aim.X*(view.Radius+aimLineLength),
		view.Position.Y+aim.Y*(view.Radius+aimLineLength),
	)
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(tipX), float32(tipY), 1, colorAimLine, true)

	if view.Health >= view.MaxHealth || view.MaxHealth <= 0 {
		return
	}
	barWidth := radius * 2
	barY := sy - radius - 6
	fill := barWidth * max(view.Health, 0) / view.MaxHealth
	vector.DrawFilledRect(screen, float32(sx-radius), float32(barY), float32(barWidth), 3, colorHealthBack, false)
	vector.DrawFilledRect(screen, float32(sx-radius), float32(barY), float32(fill), 3, colorHealth, false)
}
