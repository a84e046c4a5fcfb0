package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/camera"
	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/config"
	"github.com/pthm-cable/horde/enemies"
	"github.com/pthm-cable/horde/game"
	"github.com/pthm-cable/horde/skills"
)

var (
	worldColor      = rl.Color{R: 30, G: 30, B: 30, A: 255}
	enemyColor      = rl.Color{R: 200, G: 60, B: 60, A: 255}
	playerColor     = rl.Color{R: 80, G: 160, B: 240, A: 255}
	orbColor        = rl.Color{R: 90, G: 220, B: 120, A: 255}
	projectileColor = rl.Color{R: 250, G: 230, B: 120, A: 255}
	fieldColor      = rl.Color{R: 120, G: 180, B: 255, A: 60}
)

// Scene draws the world layer: background, enemies in depth order, player, orbs and
// skill units.
type Scene struct {
	Camera *camera.Camera

	enemy  *Sprite
	player *Sprite
	canvas canvas
}

// New creates a scene renderer and loads its textures.
// Must be called after the window is created.
func New(cfg *config.Config) *Scene {
	return &Scene{
		Camera: camera.New(
			float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()),
			cfg.Derived.WorldW, cfg.Derived.WorldH,
		),
		enemy:  LoadSprite(cfg.Assets.EnemyTexture, enemyColor),
		player: LoadSprite(cfg.Assets.PlayerTexture, playerColor),
	}
}

// Resize propagates a window resize to the camera.
func (s *Scene) Resize(w, h int32) {
	s.Camera.Resize(float64(w), float64(h))
}

// Draw renders g in world space. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw(g *game.Game) {
	p := g.Player()
	s.Camera.Follow(p.Center())

	rl.BeginMode2D(s.camera2D())
	defer rl.EndMode2D()

	cfg := g.Config()
	rl.DrawRectangle(0, 0, int32(cfg.Derived.WorldW), int32(cfg.Derived.WorldH), worldColor)

	drawEnemy := func(_ int, pos, size, facing r2.Vec) {
		if s.Camera.IsVisible(pos, size) {
			s.enemy.Draw(pos, size, facing)
		}
	}
	store := g.Enemies()
	store.Draw(p.Position(), p.Size, enemies.Behind, drawEnemy)
	pos, size := p.Bounds()
	s.player.Draw(pos, size, r2.Vec{X: 1})
	store.Draw(p.Position(), p.Size, enemies.InFront, drawEnemy)

	orb := g.Pickups().OrbSize()
	g.Pickups().Each(func(o components.ExperienceOrb) {
		rl.DrawRectangleRec(rl.Rectangle{
			X: float32(o.Position.X), Y: float32(o.Position.Y), Width: float32(orb), Height: float32(orb),
		}, orbColor)
	})

	g.Skills().Draw(s.canvas)
}

func (s *Scene) camera2D() rl.Camera2D {
	c := s.Camera
	return rl.Camera2D{
		Offset: rl.Vector2{X: float32(c.ViewportW / 2), Y: float32(c.ViewportH / 2)},
		Target: rl.Vector2{X: float32(c.Target.X), Y: float32(c.Target.Y)},
		Zoom:   float32(c.Zoom),
	}
}

// Unload frees textures.
func (s *Scene) Unload() {
	s.enemy.Unload()
	s.player.Unload()
}

// canvas draws skill units as circles.
type canvas struct{}

func (canvas) Circle(center r2.Vec, radius float64, style skills.Style) {
	c := rl.Vector2{X: float32(center.X), Y: float32(center.Y)}
	switch style {
	case skills.StyleField:
		rl.DrawCircleV(c, float32(radius), fieldColor)
		rl.DrawCircleLinesV(c, float32(radius), rl.Fade(fieldColor, 1))
	default:
		rl.DrawCircleV(c, float32(radius), projectileColor)
	}
}
