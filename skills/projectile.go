package skills

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/systems"
)

// ProjectileConfig configures a ProjectileManager.
type ProjectileConfig struct {
	Damage   float64
	Speed    float64
	Radius   float64
	Life     float64 // seconds
	Cooldown float64 // seconds between shots
}

// ProjectileManager fires single-hit projectiles at the nearest live enemy.
type ProjectileManager struct {
	cfg   ProjectileConfig
	timer float64

	world  *ecs.World
	mapper *ecs.Map1[components.Projectile]
	filter *ecs.Filter1[components.Projectile]

	expired []ecs.Entity
	count   int
}

// NewProjectileManager creates a manager that is ready to fire immediately. Units
// live in world, which may be shared with other managers.
func NewProjectileManager(world *ecs.World, cfg ProjectileConfig) *ProjectileManager {
	return &ProjectileManager{
		cfg:    cfg,
		world:  world,
		mapper: ecs.NewMap1[components.Projectile](world),
		filter: ecs.NewFilter1[components.Projectile](world),
	}
}

// Name implements Manager.
func (m *ProjectileManager) Name() string { return "projectile" }

// Len implements Manager.
func (m *ProjectileManager) Len() int { return m.count }

// Cooldown returns the time left until the next shot.
func (m *ProjectileManager) Cooldown() float64 { return m.timer }

// Spawn fires one projectile when the cooldown has elapsed and a target exists.
// Without a target the cooldown stays elapsed so the next frame can fire.
func (m *ProjectileManager) Spawn(p Caster, views []components.EnemyView) {
	if m.timer > 0 {
		return
	}
	target := NearestLive(p.Center(), views)
	if target < 0 {
		return
	}
	origin := p.Center()
	dir := r2.Sub(views[target].Center(), origin)
	if n := r2.Norm(dir); n > systems.Epsilon {
		dir = r2.Scale(1/n, dir)
	} else {
		dir = r2.Vec{X: 1}
	}

	m.Fire(origin, dir)
	m.timer = m.cfg.Cooldown
}

// Fire creates a projectile at origin travelling along the unit vector dir and
// returns its key.
func (m *ProjectileManager) Fire(origin, dir r2.Vec) ecs.Entity {
	m.count++
	return m.mapper.NewEntity(&components.Projectile{
		Position:  origin,
		Direction: dir,
		Speed:     m.cfg.Speed,
		Radius:    m.cfg.Radius,
		Life:      m.cfg.Life,
		Active:    true,
	})
}

// Update moves each projectile, records at most one hit per projectile over its
// lifetime and removes expired ones after the pass.
func (m *ProjectileManager) Update(dt float64, _ Caster, views []components.EnemyView, hits []components.HitEvent) []components.HitEvent {
	m.timer = math.Max(m.timer-dt, 0)

	query := m.filter.Query()
	for query.Next() {
		e := query.Entity()
		proj := query.Get()

		if proj.Active {
			proj.Position = r2.Add(proj.Position, r2.Scale(proj.Speed*dt, proj.Direction))
			for i := range views {
				v := &views[i]
				if !v.Alive || !systems.CircleHitsBox(proj.Position, proj.Radius, v.Position, v.Size) {
					continue
				}
				hits = append(hits, components.HitEvent{Skill: e, Damage: m.cfg.Damage, Enemy: i})
				proj.Active = false
				break
			}
			proj.Life -= dt
		}

		if proj.Expired() {
			m.expired = append(m.expired, e)
		}
	}

	for _, e := range m.expired {
		m.world.RemoveEntity(e)
		m.count--
	}
	m.expired = m.expired[:0]

	return hits
}

// Draw implements Manager.
func (m *ProjectileManager) Draw(c Canvas) {
	query := m.filter.Query()
	for query.Next() {
		proj := query.Get()
		c.Circle(proj.Position, proj.Radius, StyleProjectile)
	}
}

// Alive reports whether the projectile with key e still exists.
func (m *ProjectileManager) Alive(e ecs.Entity) bool {
	return m.world.Alive(e)
}
