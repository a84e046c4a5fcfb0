package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
)

// Damageable is the player-side contract used by collision resolution.
type Damageable interface {
	Bounds() (pos, size r2.Vec)
	TakeDamage(amount float64)
}

// CollisionStrategy tests enemies against the player and applies contact damage.
// Implementations only read the views; they never mutate enemy state.
type CollisionStrategy interface {
	Resolve(views []components.EnemyView, target Damageable) int
}

// AABBCollision damages the target once per overlapping live enemy, every frame the
// overlap persists. There is no invulnerability window.
type AABBCollision struct {
	Damage float64
}

// Resolve implements CollisionStrategy and returns the number of overlapping enemies.
func (c AABBCollision) Resolve(views []components.EnemyView, target Damageable) int {
	pPos, pSize := target.Bounds()
	hits := 0
	for i := range views {
		v := &views[i]
		if !v.Alive {
			continue
		}
		if Overlaps(v.Position, v.Size, pPos, pSize) {
			target.TakeDamage(c.Damage)
			hits++
		}
	}
	return hits
}
