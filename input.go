package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"dotdestroyer/game"
)

// readInput polls keyboard and mouse and derives the frame's input state.
// The cursor is converted to world coordinates through the camera.
func readInput(camera *Camera) game.InputState {
	cx, cy := ebiten.CursorPosition()
	wx, wy := camera.ScreenToWorld(float64(cx), float64(cy))

	return game.InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),

		Pointer:    game.Vec3{X: wx, Y: wy},
		HasPointer: true,

		FirePressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		FireReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || inpututil.IsKeyJustReleased(ebiten.KeySpace),
		FireHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// restartPressed reports the restart key edge
func restartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// toggleFullscreen handles Alt+Enter
func toggleFullscreen() {
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
	if alt && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}
