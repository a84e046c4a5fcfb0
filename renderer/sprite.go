// Package renderer draws the world through a following camera with raylib.
package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Sprite is a texture with a flat-colour rectangle fallback.
type Sprite struct {
	tex      rl.Texture2D
	loaded   bool
	fallback rl.Color
}

// LoadSprite loads path as a texture. An empty path or a failed load leaves the sprite
// drawing fallback rectangles; failures are logged, never fatal.
// Must be called after the window is created.
func LoadSprite(path string, fallback rl.Color) *Sprite {
	s := &Sprite{fallback: fallback}
	if path == "" {
		return s
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		slog.Warn("texture load failed, using primitives", "path", path)
		return s
	}
	s.tex = tex
	s.loaded = true
	return s
}

// Draw renders the sprite into the box at pos with size, mirrored when facing left.
func (s *Sprite) Draw(pos, size, facing r2.Vec) {
	dst := rl.Rectangle{X: float32(pos.X), Y: float32(pos.Y), Width: float32(size.X), Height: float32(size.Y)}
	if !s.loaded {
		rl.DrawRectangleRec(dst, s.fallback)
		return
	}
	src := rl.Rectangle{Width: float32(s.tex.Width), Height: float32(s.tex.Height)}
	if facing.X < 0 {
		src.Width = -src.Width
	}
	rl.DrawTexturePro(s.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the texture.
func (s *Sprite) Unload() {
	if s.loaded {
		rl.UnloadTexture(s.tex)
		s.loaded = false
	}
}
