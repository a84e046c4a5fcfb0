package player

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/config"
)

func newTestPlayer(pos r2.Vec) *Player {
	cfg := config.Defaults()
	return New(pos, cfg.Player, cfg.Experience)
}

func TestUpdateMovesByIntent(t *testing.T) {
	tests := []struct {
		name   string
		intent r2.Vec
		want   r2.Vec
	}{
		{"idle", r2.Vec{}, r2.Vec{X: 100, Y: 100}},
		{"right", r2.Vec{X: 1}, r2.Vec{X: 105, Y: 100}},
		{"up", r2.Vec{Y: -1}, r2.Vec{X: 100, Y: 95}},
		{"diagonal normalised", r2.Vec{X: 1, Y: 1}, r2.Vec{X: 100 + 5/math.Sqrt2, Y: 100 + 5/math.Sqrt2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPlayer(r2.Vec{X: 100, Y: 100})
			p.Update(tc.intent, 1000, 1000)
			if r2.Norm(r2.Sub(p.Position(), tc.want)) > 1e-9 {
				t.Errorf("position = %+v, want %+v", p.Position(), tc.want)
			}
		})
	}
}

func TestUpdateClampsToWorld(t *testing.T) {
	p := newTestPlayer(r2.Vec{X: 2, Y: 988})
	p.Update(r2.Vec{X: -1, Y: 1}, 1000, 1000)
	if p.Position() != (r2.Vec{X: 0, Y: 990}) {
		t.Errorf("expected clamp to (0, 990), got %+v", p.Position())
	}
}

func TestCenterAndBounds(t *testing.T) {
	p := newTestPlayer(r2.Vec{X: 10, Y: 20})
	if c := p.Center(); c != (r2.Vec{X: 15, Y: 25}) {
		t.Errorf("center = %+v", c)
	}
	pos, size := p.Bounds()
	if pos != (r2.Vec{X: 10, Y: 20}) || size != (r2.Vec{X: 10, Y: 10}) {
		t.Errorf("bounds = %+v %+v", pos, size)
	}
}

func TestDamageAndDeath(t *testing.T) {
	p := newTestPlayer(r2.Vec{})
	p.TakeDamage(40)
	if p.Health() != 60 || p.Dead() {
		t.Fatalf("expected 60 health and alive, got %v dead=%v", p.Health(), p.Dead())
	}
	p.TakeDamage(60)
	if !p.Dead() {
		t.Error("expected player to die at zero health")
	}
}

func TestLevelUpCarriesSurplus(t *testing.T) {
	p := newTestPlayer(r2.Vec{})
	if p.Level() != 1 || p.ExperienceToNext() != 5 {
		t.Fatalf("unexpected start: level %d next %v", p.Level(), p.ExperienceToNext())
	}

	p.AddExperience(6)
	p.LevelUp()
	if p.Level() != 2 {
		t.Errorf("expected level 2, got %d", p.Level())
	}
	if p.Experience() != 1 {
		t.Errorf("expected 1 surplus experience, got %v", p.Experience())
	}
	if p.ExperienceToNext() != 7.5 {
		t.Errorf("expected next threshold 7.5, got %v", p.ExperienceToNext())
	}
}
