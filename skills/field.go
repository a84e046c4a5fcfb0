package skills

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
)

// FieldConfig configures a FieldManager.
type FieldConfig struct {
	Damage float64 // per frame per enemy
	Radius float64
}

// FieldManager keeps one damage aura centred on the caster. Every enemy inside it is
// hit every frame.
type FieldManager struct {
	cfg FieldConfig

	world   *ecs.World
	mapper  *ecs.Map1[components.Field]
	unit    ecs.Entity
	spawned bool
}

// NewFieldManager creates a field manager in world. The aura appears on the first Spawn.
func NewFieldManager(world *ecs.World, cfg FieldConfig) *FieldManager {
	return &FieldManager{
		cfg:    cfg,
		world:  world,
		mapper: ecs.NewMap1[components.Field](world),
	}
}

// Name implements Manager.
func (m *FieldManager) Name() string { return "field" }

// Len implements Manager.
func (m *FieldManager) Len() int {
	if m.spawned {
		return 1
	}
	return 0
}

// Spawn creates the aura once.
func (m *FieldManager) Spawn(p Caster, _ []components.EnemyView) {
	if m.spawned {
		return
	}
	m.unit = m.mapper.NewEntity(&components.Field{
		Position: p.Center(),
		Radius:   m.cfg.Radius,
		Active:   true,
	})
	m.spawned = true
}

// Update re-centres the aura and hits every live enemy whose position lies inside it.
func (m *FieldManager) Update(_ float64, p Caster, views []components.EnemyView, hits []components.HitEvent) []components.HitEvent {
	if !m.spawned {
		return hits
	}
	field := m.mapper.Get(m.unit)
	field.Position = p.Center()
	if !field.Active {
		return hits
	}

	r2max := field.Radius * field.Radius
	for i := range views {
		v := &views[i]
		if !v.Alive {
			continue
		}
		if r2.Norm2(r2.Sub(v.Position, field.Position)) <= r2max {
			hits = append(hits, components.HitEvent{Skill: m.unit, Damage: m.cfg.Damage, Enemy: i})
		}
	}
	return hits
}

// Unit returns the aura's key and whether it has been spawned.
func (m *FieldManager) Unit() (ecs.Entity, bool) {
	return m.unit, m.spawned && m.world.Alive(m.unit)
}

// Draw implements Manager.
func (m *FieldManager) Draw(c Canvas) {
	if !m.spawned {
		return
	}
	field := m.mapper.Get(m.unit)
	c.Circle(field.Position, field.Radius, StyleField)
}
