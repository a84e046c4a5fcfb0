package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/game"
)

// ReadIntent samples WASD and the arrow keys.
func ReadIntent() r2.Vec {
	return game.Intent(
		rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
	)
}

// PausePressed reports whether Escape was pressed this frame.
func PausePressed() bool {
	return rl.IsKeyPressed(rl.KeyEscape)
}

// FullscreenPressed reports whether F11 was pressed this frame.
func FullscreenPressed() bool {
	return rl.IsKeyPressed(rl.KeyF11)
}
