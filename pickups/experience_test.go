package pickups

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
)

type fakeCollector struct {
	pos, size r2.Vec
	xp        float64
	toNext    float64
	levels    int
}

func (f *fakeCollector) Bounds() (r2.Vec, r2.Vec) { return f.pos, f.size }
func (f *fakeCollector) AddExperience(amount float64) { f.xp += amount }
func (f *fakeCollector) Experience() float64 { return f.xp }
func (f *fakeCollector) ExperienceToNext() float64 { return f.toNext }
func (f *fakeCollector) LevelUp() {
	f.xp -= f.toNext
	f.levels++
}

func TestUpdateCollectsOverlappingOrbs(t *testing.T) {
	x := New(5)
	c := &fakeCollector{pos: r2.Vec{X: 100, Y: 100}, size: r2.Vec{X: 10, Y: 10}, toNext: 100}

	x.Spawn(r2.Vec{X: 104, Y: 104}, 1) // inside
	x.Spawn(r2.Vec{X: 96, Y: 96}, 2)   // overlaps the corner
	x.Spawn(r2.Vec{X: 95, Y: 100}, 4)  // touching edge only
	x.Spawn(r2.Vec{X: 300, Y: 300}, 8) // far

	if leveled := x.Update(c); leveled {
		t.Error("unexpected level up")
	}
	if c.xp != 3 {
		t.Errorf("expected 3 experience, got %v", c.xp)
	}
	if x.Len() != 2 {
		t.Errorf("expected 2 orbs left, got %d", x.Len())
	}

	// Collected orbs are gone for good
	x.Update(c)
	if c.xp != 3 {
		t.Errorf("orb collected twice: experience %v", c.xp)
	}

	var left []float64
	x.Each(func(orb components.ExperienceOrb) { left = append(left, orb.Value) })
	if len(left) != 2 {
		t.Errorf("expected 2 orbs visited, got %v", left)
	}
	if x.Collected() != 3 {
		t.Errorf("expected 3 collected, got %v", x.Collected())
	}
}

func TestUpdateLevelsUpAtThreshold(t *testing.T) {
	x := New(5)
	c := &fakeCollector{pos: r2.Vec{}, size: r2.Vec{X: 10, Y: 10}, toNext: 5}

	x.Spawn(r2.Vec{X: 2, Y: 2}, 4)
	if x.Update(c) {
		t.Fatal("levelled up below threshold")
	}

	x.Spawn(r2.Vec{X: 2, Y: 2}, 1)
	if !x.Update(c) {
		t.Fatal("expected level up at threshold")
	}
	if c.levels != 1 {
		t.Errorf("expected 1 level, got %d", c.levels)
	}
}

func TestNewDefaultsOrbSize(t *testing.T) {
	if got := New(0).OrbSize(); got != DefaultOrbSize {
		t.Errorf("expected default orb size, got %v", got)
	}
}
