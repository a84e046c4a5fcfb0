package skills

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/horde/config"
)

// NewFromConfig builds a System with every skill enabled in cfg, projectile first.
// All managers share one world so unit keys are unique across skills.
func NewFromConfig(cfg config.SkillsConfig) (*System, error) {
	world := ecs.NewWorld()
	sys := NewSystem()

	if p := cfg.Projectile; p.Enabled {
		if p.Speed <= 0 || p.Radius <= 0 || p.Life <= 0 || p.Cooldown < 0 {
			return nil, fmt.Errorf("projectile skill: %w", config.ErrInvalid)
		}
		sys.Add(NewProjectileManager(world, ProjectileConfig{
			Damage:   p.Damage,
			Speed:    p.Speed,
			Radius:   p.Radius,
			Life:     p.Life,
			Cooldown: p.Cooldown,
		}))
	}

	if f := cfg.Field; f.Enabled {
		if f.Radius <= 0 {
			return nil, fmt.Errorf("field skill: %w", config.ErrInvalid)
		}
		sys.Add(NewFieldManager(world, FieldConfig{
			Damage: f.Damage,
			Radius: f.Radius,
		}))
	}

	return sys, nil
}
