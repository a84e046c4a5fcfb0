// Package pickups manages experience orbs dropped by defeated enemies.
package pickups

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/systems"
)

// DefaultOrbSize is the side of an orb's pickup box.
const DefaultOrbSize = 5

// Collector is the player-side contract for picking up orbs.
type Collector interface {
	Bounds() (pos, size r2.Vec)
	AddExperience(amount float64)
	Experience() float64
	ExperienceToNext() float64
	LevelUp()
}

// Experience stores uncollected orbs as entities.
type Experience struct {
	orbSize float64

	world  *ecs.World
	mapper *ecs.Map1[components.ExperienceOrb]
	filter *ecs.Filter1[components.ExperienceOrb]

	collected []ecs.Entity
	count     int
	total     float64 // value collected over the run
}

// New creates an empty orb store. A non-positive orbSize falls back to DefaultOrbSize.
func New(orbSize float64) *Experience {
	if orbSize <= 0 {
		orbSize = DefaultOrbSize
	}
	world := ecs.NewWorld()
	return &Experience{
		orbSize: orbSize,
		world:   world,
		mapper:  ecs.NewMap1[components.ExperienceOrb](world),
		filter:  ecs.NewFilter1[components.ExperienceOrb](world),
	}
}

// Spawn drops an orb at pos.
func (x *Experience) Spawn(pos r2.Vec, value float64) {
	x.mapper.NewEntity(&components.ExperienceOrb{Position: pos, Value: value})
	x.count++
}

// Update collects every orb overlapping the collector, then levels it up once if
// the threshold is reached. It reports whether a level up happened.
func (x *Experience) Update(c Collector) bool {
	pPos, pSize := c.Bounds()
	orbSize := r2.Vec{X: x.orbSize, Y: x.orbSize}

	query := x.filter.Query()
	for query.Next() {
		orb := query.Get()
		if systems.Overlaps(pPos, pSize, orb.Position, orbSize) {
			c.AddExperience(orb.Value)
			x.total += orb.Value
			x.collected = append(x.collected, query.Entity())
		}
	}
	for _, e := range x.collected {
		x.world.RemoveEntity(e)
		x.count--
	}
	x.collected = x.collected[:0]

	if c.Experience() >= c.ExperienceToNext() {
		c.LevelUp()
		return true
	}
	return false
}

// Len returns the number of uncollected orbs.
func (x *Experience) Len() int { return x.count }

// Collected returns the total value picked up so far.
func (x *Experience) Collected() float64 { return x.total }

// OrbSize returns the side of an orb's box.
func (x *Experience) OrbSize() float64 { return x.orbSize }

// Each visits every uncollected orb.
func (x *Experience) Each(fn func(orb components.ExperienceOrb)) {
	query := x.filter.Query()
	for query.Next() {
		fn(*query.Get())
	}
}
