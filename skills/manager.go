// Package skills implements the player's automatic attacks. Managers own their units,
// pick targets from the frame's enemy snapshot and report hits as events; they never
// touch enemy state directly.
package skills

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
)

// Caster is the player-side contract skills aim from.
type Caster interface {
	Center() r2.Vec
}

// Style tells a Canvas how to draw a skill unit.
type Style uint8

const (
	StyleProjectile Style = iota
	StyleField
)

// Canvas receives skill units during the draw pass.
type Canvas interface {
	Circle(center r2.Vec, radius float64, style Style)
}

// Manager owns one kind of skill unit.
type Manager interface {
	// Name identifies the skill in logs and metrics.
	Name() string
	// Spawn creates new units when the skill is ready.
	Spawn(p Caster, views []components.EnemyView)
	// Update advances units by dt and appends any hits to hits.
	Update(dt float64, p Caster, views []components.EnemyView, hits []components.HitEvent) []components.HitEvent
	// Draw renders the live units.
	Draw(c Canvas)
	// Len returns the number of live units.
	Len() int
}

// System forwards each frame to its managers in registration order.
type System struct {
	managers []Manager
	hits     []components.HitEvent
	sources  []string
}

// NewSystem creates a system over the given managers.
func NewSystem(managers ...Manager) *System {
	return &System{managers: managers}
}

// Add registers another manager.
func (s *System) Add(m Manager) {
	s.managers = append(s.managers, m)
}

// Managers returns the registered managers.
func (s *System) Managers() []Manager {
	return s.managers
}

// Update spawns and advances every manager against the snapshot. The returned slice
// is reused on the next call.
func (s *System) Update(dt float64, p Caster, views []components.EnemyView) []components.HitEvent {
	s.hits = s.hits[:0]
	s.sources = s.sources[:0]
	for _, m := range s.managers {
		m.Spawn(p, views)
		s.hits = m.Update(dt, p, views, s.hits)
		for len(s.sources) < len(s.hits) {
			s.sources = append(s.sources, m.Name())
		}
	}
	return s.hits
}

// Sources returns the manager name for each hit of the last Update, index for index.
func (s *System) Sources() []string {
	return s.sources
}

// Draw renders every manager's units.
func (s *System) Draw(c Canvas) {
	for _, m := range s.managers {
		m.Draw(c)
	}
}

// Units returns the total number of live units.
func (s *System) Units() int {
	n := 0
	for _, m := range s.managers {
		n += m.Len()
	}
	return n
}

// NearestLive returns the index of the live view whose centre is closest to from.
// Ties keep the lowest index. It returns -1 when no view is live.
func NearestLive(from r2.Vec, views []components.EnemyView) int {
	best := -1
	bestD2 := math.Inf(1)
	for i := range views {
		if !views[i].Alive {
			continue
		}
		d2 := r2.Norm2(r2.Sub(views[i].Center(), from))
		if d2 < bestD2 {
			best, bestD2 = i, d2
		}
	}
	return best
}
