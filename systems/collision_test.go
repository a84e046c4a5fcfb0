package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
)

type fakeTarget struct {
	pos, size r2.Vec
	damage    float64
	calls     int
}

func (f *fakeTarget) Bounds() (r2.Vec, r2.Vec) { return f.pos, f.size }

func (f *fakeTarget) TakeDamage(amount float64) {
	f.damage += amount
	f.calls++
}

func TestOverlaps(t *testing.T) {
	size := r2.Vec{X: 10, Y: 10}
	tests := []struct {
		name string
		b    r2.Vec
		want bool
	}{
		{"same spot", r2.Vec{}, true},
		{"partial", r2.Vec{X: 5, Y: 5}, true},
		{"touching edge", r2.Vec{X: 10, Y: 0}, false},
		{"apart", r2.Vec{X: 30, Y: 30}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(r2.Vec{}, size, tc.b, size); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAABBCollisionDamagesPerOverlap(t *testing.T) {
	target := &fakeTarget{pos: r2.Vec{X: 100, Y: 100}, size: r2.Vec{X: 10, Y: 10}}
	size := r2.Vec{X: 10, Y: 10}
	views := []components.EnemyView{
		{Position: r2.Vec{X: 95, Y: 95}, Size: size, Alive: true},
		{Position: r2.Vec{X: 105, Y: 100}, Size: size, Alive: true},
		{Position: r2.Vec{X: 100, Y: 100}, Size: size, Alive: false}, // dead: ignored
		{Position: r2.Vec{X: 500, Y: 500}, Size: size, Alive: true},  // far away
	}

	c := AABBCollision{Damage: 1}
	if n := c.Resolve(views, target); n != 2 {
		t.Errorf("expected 2 overlaps, got %d", n)
	}
	if target.damage != 2 {
		t.Errorf("expected 2 damage, got %v", target.damage)
	}

	// Damage repeats every frame the overlap persists
	c.Resolve(views, target)
	if target.calls != 4 {
		t.Errorf("expected 4 damage calls over two frames, got %d", target.calls)
	}
}

func TestCircleHitsBox(t *testing.T) {
	boxPos := r2.Vec{X: 10, Y: 10}
	boxSize := r2.Vec{X: 10, Y: 10}
	tests := []struct {
		name   string
		center r2.Vec
		want   bool
	}{
		{"inside", r2.Vec{X: 15, Y: 15}, true},
		{"near edge", r2.Vec{X: 7, Y: 15}, true},
		{"near corner outside radius", r2.Vec{X: 6, Y: 6}, false},
		{"far", r2.Vec{X: 100, Y: 100}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleHitsBox(tc.center, 5, boxPos, boxSize); got != tc.want {
				t.Errorf("CircleHitsBox = %v, want %v", got, tc.want)
			}
		})
	}
}
