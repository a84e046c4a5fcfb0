package main

import "github.com/pthm-cable/horde/config"

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	Get     func(*config.Config) float64
	Set     func(*config.Config, float64)
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the boids parameter set.
func NewParamVector() *ParamVector {
	boids := func(f func(b *config.BoidsConfig) *float64) (func(*config.Config) float64, func(*config.Config, float64)) {
		return func(c *config.Config) float64 { return *f(&c.Movement.Boids) },
			func(c *config.Config, v float64) { *f(&c.Movement.Boids) = v }
	}
	spec := func(name string, lo, hi, def float64, f func(b *config.BoidsConfig) *float64) ParamSpec {
		get, set := boids(f)
		return ParamSpec{Name: name, Min: lo, Max: hi, Default: def, Get: get, Set: set}
	}
	return &ParamVector{
		Specs: []ParamSpec{
			spec("max_speed", 1, 6, 3, func(b *config.BoidsConfig) *float64 { return &b.MaxSpeed }),
			spec("player_weight", 0.1, 2, 0.8, func(b *config.BoidsConfig) *float64 { return &b.PlayerWeight }),
			spec("separation_weight", 0.5, 6, 3.2, func(b *config.BoidsConfig) *float64 { return &b.SeparationWeight }),
			spec("alignment_weight", 0, 3, 1.5, func(b *config.BoidsConfig) *float64 { return &b.AlignmentWeight }),
			spec("cohesion_weight", 0, 1.5, 0.3, func(b *config.BoidsConfig) *float64 { return &b.CohesionWeight }),
			spec("noise_strength", 0, 0.5, 0.05, func(b *config.BoidsConfig) *float64 { return &b.NoiseStrength }),
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds every value to its spec.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].Set(cfg, v)
	}
}

// ExtractFromConfig reads the current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Get(cfg)
	}
	return out
}
