package skills

import (
	"errors"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/config"
)

type fixedCaster struct{ center r2.Vec }

func (c fixedCaster) Center() r2.Vec { return c.center }

type recordingCanvas struct {
	circles map[Style]int
}

func (c *recordingCanvas) Circle(_ r2.Vec, _ float64, style Style) {
	c.circles[style]++
}

var unit = r2.Vec{X: 10, Y: 10}

// view places a live 10x10 enemy whose centre is at (cx, cy).
func view(cx, cy float64) components.EnemyView {
	return components.EnemyView{Position: r2.Vec{X: cx - 5, Y: cy - 5}, Size: unit, Alive: true}
}

func testProjectile() ProjectileConfig {
	return ProjectileConfig{Damage: 1, Speed: 300, Radius: 5, Life: 2, Cooldown: 0.5}
}

func TestNearestLive(t *testing.T) {
	tests := []struct {
		name  string
		views []components.EnemyView
		want  int
	}{
		{"picks closest", []components.EnemyView{view(50, 0), view(10, 0), view(30, 0)}, 1},
		{"skips dead", func() []components.EnemyView {
			v := []components.EnemyView{view(50, 0), view(10, 0), view(30, 0)}
			v[1].Alive = false
			return v
		}(), 2},
		{"tie keeps lowest index", []components.EnemyView{view(0, 20), view(20, 0)}, 0},
		{"none live", []components.EnemyView{{Alive: false}}, -1},
		{"empty", nil, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearestLive(r2.Vec{}, tc.views); got != tc.want {
				t.Errorf("NearestLive = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestProjectileTargetsNearest(t *testing.T) {
	m := NewProjectileManager(ecs.NewWorld(), testProjectile())
	views := []components.EnemyView{view(50, 0), view(10, 0), view(30, 0)}

	m.Spawn(fixedCaster{}, views)
	if m.Len() != 1 {
		t.Fatalf("expected one projectile, got %d", m.Len())
	}
	if m.Cooldown() != 0.5 {
		t.Errorf("expected cooldown reset to 0.5, got %v", m.Cooldown())
	}

	// Travels along +X toward the enemy at 10
	query := m.filter.Query()
	for query.Next() {
		p := query.Get()
		if math.Abs(p.Direction.X-1) > 1e-9 || math.Abs(p.Direction.Y) > 1e-9 {
			t.Errorf("expected direction (1,0), got %+v", p.Direction)
		}
	}

	// Cooldown blocks another shot
	m.Spawn(fixedCaster{}, views)
	if m.Len() != 1 {
		t.Errorf("expected cooldown to block a second shot, got %d units", m.Len())
	}
}

func TestProjectileWithoutTargetKeepsCooldownElapsed(t *testing.T) {
	m := NewProjectileManager(ecs.NewWorld(), testProjectile())
	dead := []components.EnemyView{{Position: unit, Size: unit, Alive: false}}

	m.Spawn(fixedCaster{}, dead)
	if m.Len() != 0 {
		t.Fatalf("expected no projectile without a live target, got %d", m.Len())
	}
	if m.Cooldown() != 0 {
		t.Errorf("expected cooldown to stay elapsed, got %v", m.Cooldown())
	}

	m.Spawn(fixedCaster{}, []components.EnemyView{view(20, 0)})
	if m.Len() != 1 {
		t.Errorf("expected a shot as soon as a target exists, got %d", m.Len())
	}
}

func TestProjectileHitsAtMostOnce(t *testing.T) {
	m := NewProjectileManager(ecs.NewWorld(), testProjectile())
	// Two overlapping enemies right on top of the origin
	views := []components.EnemyView{view(0, 0), view(1, 0)}
	key := m.Fire(r2.Vec{}, r2.Vec{X: 1})

	hits := m.Update(1.0/60, fixedCaster{}, views, nil)
	if len(hits) != 1 {
		t.Fatalf("expected exactly one hit, got %d", len(hits))
	}
	if hits[0].Enemy != 0 || hits[0].Skill != key || hits[0].Damage != 1 {
		t.Errorf("unexpected hit %+v", hits[0])
	}
	if m.Len() != 0 || m.Alive(key) {
		t.Error("expected the projectile to be removed after its hit")
	}

	hits = m.Update(1.0/60, fixedCaster{}, views, hits[:0])
	if len(hits) != 0 {
		t.Errorf("expected no further hits, got %d", len(hits))
	}
}

func TestProjectileExpires(t *testing.T) {
	cfg := testProjectile()
	cfg.Life = 0.05
	m := NewProjectileManager(ecs.NewWorld(), cfg)
	m.Fire(r2.Vec{}, r2.Vec{X: 1})

	for i := 0; i < 4; i++ {
		m.Update(1.0/60, fixedCaster{}, nil, nil)
	}
	if m.Len() != 0 {
		t.Errorf("expected projectile to expire, %d left", m.Len())
	}
}

func TestProjectileCooldownCountsDown(t *testing.T) {
	m := NewProjectileManager(ecs.NewWorld(), testProjectile())
	views := []components.EnemyView{view(1000, 0)}
	m.Spawn(fixedCaster{}, views)

	for i := 0; i < 40; i++ {
		m.Update(1.0/60, fixedCaster{}, views, nil)
	}
	if m.Cooldown() != 0 {
		t.Errorf("expected cooldown clamped at 0, got %v", m.Cooldown())
	}
}

func TestProjectileKeysAreUnique(t *testing.T) {
	m := NewProjectileManager(ecs.NewWorld(), testProjectile())
	seen := map[ecs.Entity]bool{}
	live := []ecs.Entity{}
	for i := 0; i < 50; i++ {
		e := m.Fire(r2.Vec{}, r2.Vec{X: 1})
		if seen[e] {
			t.Fatalf("key %v reused", e)
		}
		seen[e] = true
		live = append(live, e)
	}

	// Expire all, then fire again: recycled slots carry a new generation
	for m.Len() > 0 {
		m.Update(1, fixedCaster{}, nil, nil)
	}
	for i := 0; i < 50; i++ {
		e := m.Fire(r2.Vec{}, r2.Vec{X: 1})
		if seen[e] {
			t.Fatalf("key %v reused after removal", e)
		}
	}
	for _, e := range live {
		if m.Alive(e) {
			t.Errorf("removed key %v reported alive", e)
		}
	}
}

func TestFieldHitsEveryFrame(t *testing.T) {
	m := NewFieldManager(ecs.NewWorld(), FieldConfig{Damage: 0.05, Radius: 60})
	caster := fixedCaster{center: r2.Vec{X: 100, Y: 100}}
	views := []components.EnemyView{
		{Position: r2.Vec{X: 120, Y: 100}, Size: unit, Alive: true},
		{Position: r2.Vec{X: 400, Y: 400}, Size: unit, Alive: true},
		{Position: r2.Vec{X: 100, Y: 110}, Size: unit, Alive: false},
	}

	const frames = 7
	var hits []components.HitEvent
	for f := 0; f < frames; f++ {
		m.Spawn(caster, views)
		hits = m.Update(1.0/60, caster, views, hits)
	}

	if m.Len() != 1 {
		t.Errorf("expected a single field unit, got %d", m.Len())
	}
	if len(hits) != frames {
		t.Fatalf("expected %d hits, got %d", frames, len(hits))
	}
	for _, h := range hits {
		if h.Enemy != 0 || h.Damage != 0.05 {
			t.Errorf("unexpected hit %+v", h)
		}
	}
}

func TestFieldFollowsCaster(t *testing.T) {
	m := NewFieldManager(ecs.NewWorld(), FieldConfig{Damage: 1, Radius: 10})
	views := []components.EnemyView{{Position: r2.Vec{X: 500, Y: 500}, Size: unit, Alive: true}}

	m.Spawn(fixedCaster{}, views)
	if hits := m.Update(0, fixedCaster{}, views, nil); len(hits) != 0 {
		t.Fatalf("expected no hits away from the enemy, got %d", len(hits))
	}

	moved := fixedCaster{center: r2.Vec{X: 505, Y: 505}}
	if hits := m.Update(0, moved, views, nil); len(hits) != 1 {
		t.Errorf("expected a hit after the caster moved, got %d", len(hits))
	}
}

func TestSystemForwardsToManagers(t *testing.T) {
	world := ecs.NewWorld()
	proj := NewProjectileManager(world, testProjectile())
	field := NewFieldManager(world, FieldConfig{Damage: 1, Radius: 60})
	sys := NewSystem(proj, field)

	caster := fixedCaster{}
	views := []components.EnemyView{view(0, 0)}
	hits := sys.Update(1.0/60, caster, views)

	// Projectile spawned on top of the enemy hits at once, field hits too
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Skill == hits[1].Skill {
		t.Error("expected distinct unit keys across managers")
	}
	if src := sys.Sources(); len(src) != 2 || src[0] != "projectile" || src[1] != "field" {
		t.Errorf("unexpected hit sources %v", src)
	}

	canvas := &recordingCanvas{circles: map[Style]int{}}
	sys.Draw(canvas)
	if canvas.circles[StyleField] != 1 {
		t.Errorf("expected the field to be drawn, got %v", canvas.circles)
	}
	if sys.Units() != 1 {
		t.Errorf("expected 1 unit left, got %d", sys.Units())
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Defaults().Skills
	cfg.Field.Enabled = true
	sys, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	names := []string{}
	for _, m := range sys.Managers() {
		names = append(names, m.Name())
	}
	if len(names) != 2 || names[0] != "projectile" || names[1] != "field" {
		t.Errorf("unexpected managers %v", names)
	}

	cfg.Projectile.Speed = 0
	if _, err := NewFromConfig(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
