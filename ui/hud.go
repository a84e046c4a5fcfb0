package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the heads-up display shows.
type HUDData struct {
	FPS        int32
	Enemies    int // total rows
	Live       int
	Level      int
	Experience float64
	ToNext     float64
	Health     float64
	MaxHealth  float64
}

// HUD renders the in-game heads-up display in screen space.
type HUD struct {
	Theme Theme
}

// NewHUD creates a HUD with the default theme.
func NewHUD() *HUD {
	return &HUD{Theme: DefaultTheme()}
}

// Draw renders the status lines and the health and experience bars.
func (h *HUD) Draw(data HUDData) {
	t := h.Theme
	x := t.Padding * 2
	y := t.Padding * 2

	rl.DrawText(
		fmt.Sprintf("WASD or Arrows to move | FPS: %d | enemies %d (%d alive)", data.FPS, data.Enemies, data.Live),
		x, y, t.FontSize, t.Text,
	)
	y += t.LineHeight
	rl.DrawText(
		fmt.Sprintf("Level %d | Experience %.0f/%.0f", data.Level, data.Experience, data.ToNext),
		x, y, t.FontSize, t.Text,
	)
	y += t.LineHeight

	// Left text sits outside the bar, so offset the bounds by its width
	barX := float32(x) + 40
	gui.ProgressBar(
		rl.Rectangle{X: barX, Y: float32(y), Width: t.BarWidth, Height: t.BarHeight},
		"HP", fmt.Sprintf("%.0f", data.Health),
		float32(data.Health), 0, float32(data.MaxHealth),
	)
	y += int32(t.BarHeight) + t.Padding
	gui.ProgressBar(
		rl.Rectangle{X: barX, Y: float32(y), Width: t.BarWidth, Height: t.BarHeight},
		"XP", fmt.Sprintf("%.0f%%", 100*fraction(data.Experience, data.ToNext)),
		float32(data.Experience), 0, float32(data.ToNext),
	)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenH int32, controls string) {
	rl.DrawText(controls, h.Theme.Padding, screenH-25, 14, h.Theme.Muted)
}

func fraction(v, of float64) float64 {
	if of <= 0 {
		return 0
	}
	return min(max(v/of, 0), 1)
}
