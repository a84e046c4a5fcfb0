// Package player holds the controllable character: position, health and levelling.
package player

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/config"
)

// Player is the character the horde chases. Position is the top-left corner of a
// square of side Size.
type Player struct {
	position r2.Vec
	Size     float64
	Speed    float64 // world units per frame at full intent

	health    float64
	maxHealth float64

	level       int
	experience  float64
	toNext      float64
	levelGrowth float64
}

// New creates a level 1 player at pos.
func New(pos r2.Vec, cfg config.PlayerConfig, xp config.ExperienceConfig) *Player {
	return &Player{
		position:    pos,
		Size:        cfg.Size,
		Speed:       cfg.Speed,
		health:      cfg.MaxHealth,
		maxHealth:   cfg.MaxHealth,
		level:       1,
		toNext:      xp.FirstLevel,
		levelGrowth: xp.LevelGrowth,
	}
}

// Position returns the top-left corner.
func (p *Player) Position() r2.Vec { return p.position }

// Center returns the centre of the player's box.
func (p *Player) Center() r2.Vec {
	return r2.Add(p.position, r2.Vec{X: p.Size / 2, Y: p.Size / 2})
}

// Bounds returns the top-left corner and extent of the player's box.
func (p *Player) Bounds() (pos, size r2.Vec) {
	return p.position, r2.Vec{X: p.Size, Y: p.Size}
}

// Update moves the player by intent and keeps it inside a w x h world. Intent
// components are in [-1, 1]; diagonals are normalised so speed is direction independent.
func (p *Player) Update(intent r2.Vec, w, h float64) {
	if intent.X != 0 && intent.Y != 0 {
		intent = r2.Scale(1/math.Sqrt2, intent)
	}
	p.position = r2.Add(p.position, r2.Scale(p.Speed, intent))
	p.position.X = math.Max(0, math.Min(p.position.X, w-p.Size))
	p.position.Y = math.Max(0, math.Min(p.position.Y, h-p.Size))
}

// TakeDamage lowers health. Health may go negative; Dead reports the outcome.
func (p *Player) TakeDamage(amount float64) {
	p.health -= amount
}

// Health returns current health.
func (p *Player) Health() float64 { return p.health }

// MaxHealth returns the starting health.
func (p *Player) MaxHealth() float64 { return p.maxHealth }

// Dead reports whether health is exhausted.
func (p *Player) Dead() bool { return p.health <= 0 }

// AddExperience credits collected experience.
func (p *Player) AddExperience(amount float64) {
	p.experience += amount
}

// Experience returns experience gathered toward the next level.
func (p *Player) Experience() float64 { return p.experience }

// ExperienceToNext returns the experience required for the next level.
func (p *Player) ExperienceToNext() float64 { return p.toNext }

// Level returns the current level, starting at 1.
func (p *Player) Level() int { return p.level }

// LevelUp consumes one level's worth of experience and raises the next threshold.
// Surplus experience carries over.
func (p *Player) LevelUp() {
	p.experience -= p.toNext
	if p.experience < 0 {
		p.experience = 0
	}
	p.level++
	p.toNext *= p.levelGrowth
	slog.Info("level up", "level", p.level, "next", p.toNext)
}
