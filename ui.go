package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"dotdestroyer/game"
)

var (
	hudFace      = text.NewGoXFace(basicfont.Face7x13)
	colorHUD     = color.RGBA{220, 220, 220, 255}
	colorBanner  = color.RGBA{255, 210, 80, 255}
	hudLineSpace = 16.0
)

// drawHUD prints health, fleet sizes and the match result
func drawHUD(screen *ebiten.Image, snap game.Snapshot, scenario string) {
	lines := []string{
		fmt.Sprintf("%s  frame %d", scenario, snap.Frame),
		fmt.Sprintf("blue %d  red %d  shots %d",
			snap.Count(game.EntityKindShip, game.FactionBlue),
			snap.Count(game.EntityKindShip, game.FactionRed),
			snap.Count(game.EntityKindProjectile, game.FactionBlue)+snap.Count(game.EntityKindProjectile, game.FactionRed),
		),
	}
	if player, ok := snap.Player(); ok {
		lines = append(lines, fmt.Sprintf("hull %.0f/%.0f", player.Health, player.MaxHealth))
	}

	for i, line := range lines {
		drawText(screen, line, 8, 8+float64(i)*hudLineSpace, colorHUD)
	}

	if snap.State != game.MatchOver {
		return
	}
	banner := fmt.Sprintf("%s wins - press R to restart", snap.Winner)
	w, _ := text.Measure(banner, hudFace, hudLineSpace)
	bounds := screen.Bounds()
	drawText(screen, banner, (float64(bounds.Dx())-w)/2, float64(bounds.Dy())/2, colorBanner)
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, hudFace, op)
}
