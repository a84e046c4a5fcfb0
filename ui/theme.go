// Package ui draws the heads-up display and the state screens over the scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme defines colours and sizes shared by every panel.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Title       rl.Color
	Text        rl.Color
	Muted       rl.Color
	Warning     rl.Color

	Padding    int32
	LineHeight int32
	FontSize   int32
	TitleSize  int32
	BarWidth   float32
	BarHeight  float32
}

// DefaultTheme returns the standard dark theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Title:       rl.Yellow,
		Text:        rl.White,
		Muted:       rl.LightGray,
		Warning:     rl.Color{R: 220, G: 90, B: 90, A: 255},
		Padding:     10,
		LineHeight:  30,
		FontSize:    20,
		TitleSize:   40,
		BarWidth:    240,
		BarHeight:   18,
	}
}

// drawPanel draws a bordered panel background.
func (t Theme) drawPanel(r rl.Rectangle) {
	rl.DrawRectangleRec(r, t.PanelBg)
	rl.DrawRectangleLinesEx(r, 1, t.PanelBorder)
}
