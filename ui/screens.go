package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is what the player chose on a state screen.
type Action uint8

const (
	ActionNone Action = iota
	ActionResume
	ActionQuit
)

// Screens draws the centred modal panels for paused, level-up and game-over states.
type Screens struct {
	Theme Theme
}

// NewScreens creates the state screens with the default theme.
func NewScreens() *Screens {
	return &Screens{Theme: DefaultTheme()}
}

// Paused draws the pause panel.
func (s *Screens) Paused(screenW, screenH int32) Action {
	return s.modal(screenW, screenH, "Paused", "", "Resume", "Quit")
}

// LevelUp draws the level-up panel announcing the new level.
func (s *Screens) LevelUp(screenW, screenH int32, level string) Action {
	return s.modal(screenW, screenH, "Level Up!", "Reached level "+level, "Continue", "")
}

// GameOver draws the game-over panel.
func (s *Screens) GameOver(screenW, screenH int32, summary string) Action {
	return s.modal(screenW, screenH, "Game Over", summary, "", "Quit")
}

// modal draws a panel with a title, an optional line of text and up to two buttons.
// Empty button labels are skipped.
func (s *Screens) modal(screenW, screenH int32, title, text, resume, quit string) Action {
	t := s.Theme
	const w, h = 360, 200
	panel := rl.Rectangle{
		X:      float32(screenW-w) / 2,
		Y:      float32(screenH-h) / 2,
		Width:  w,
		Height: h,
	}
	rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{A: 120})
	t.drawPanel(panel)

	titleW := rl.MeasureText(title, t.TitleSize)
	rl.DrawText(title, int32(panel.X)+(w-titleW)/2, int32(panel.Y)+t.Padding*2, t.TitleSize, t.Title)
	if text != "" {
		gui.Label(rl.Rectangle{
			X:      panel.X + float32(t.Padding*2),
			Y:      panel.Y + 80,
			Width:  w - float32(t.Padding*4),
			Height: float32(t.LineHeight),
		}, text)
	}

	btnY := panel.Y + h - 60
	action := ActionNone
	if resume != "" && gui.Button(rl.Rectangle{X: panel.X + 30, Y: btnY, Width: 140, Height: 40}, resume) {
		action = ActionResume
	}
	if quit != "" && gui.Button(rl.Rectangle{X: panel.X + w - 170, Y: btnY, Width: 140, Height: 40}, quit) {
		action = ActionQuit
	}
	return action
}
