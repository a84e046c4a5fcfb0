// Package components defines the plain data types shared between simulation systems.
package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// EnemyStatus is the lifecycle state of an enemy row.
type EnemyStatus uint8

const (
	StatusPending EnemyStatus = iota // Allocated, not yet spawned
	StatusLive                       // Moving, colliding and targetable
	StatusDead                       // Terminal
)

// String returns the status name.
func (s EnemyStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLive:
		return "live"
	case StatusDead:
		return "dead"
	}
	return "unknown"
}

// EnemyView is a read-only per-frame snapshot of one enemy.
// Position is the top-left corner of the bounding box.
type EnemyView struct {
	Position r2.Vec
	Size     r2.Vec
	Alive    bool
}

// Center returns the centre of the view's bounding box.
func (v EnemyView) Center() r2.Vec {
	return r2.Add(v.Position, r2.Scale(0.5, v.Size))
}

// HitEvent reports that a skill unit hit an enemy.
// Skill is the generational key of the unit that landed the hit.
type HitEvent struct {
	Skill  ecs.Entity
	Damage float64
	Enemy  int
}

// Pickup is a request to spawn an experience orb.
type Pickup struct {
	Position r2.Vec
	Value    float64
}

// ExperienceOrb is an uncollected pickup in the world.
type ExperienceOrb struct {
	Position r2.Vec
	Value    float64
}

// Projectile is a straight-flying single-hit skill unit.
type Projectile struct {
	Position  r2.Vec
	Direction r2.Vec // unit vector
	Speed     float64
	Radius    float64
	Life      float64 // seconds remaining
	Active    bool
}

// Expired reports whether the projectile should be removed.
func (p *Projectile) Expired() bool {
	return !p.Active || p.Life <= 0
}

// Field is a player-centred area skill unit that damages continuously.
type Field struct {
	Position r2.Vec
	Radius   float64
	Active   bool
}
