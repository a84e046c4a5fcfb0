package systems

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/config"
)

// Flock is the neighbourhood a movement pass sees.
// Positions is the snapshot taken at the start of the pass; Live masks rows that
// take part in neighbour scans.
type Flock struct {
	Positions []r2.Vec
	Live      []bool
}

// isLive reports whether row j participates in this pass.
func (f Flock) isLive(j int) bool {
	return j < len(f.Live) && f.Live[j]
}

// MovementStrategy computes an enemy's next position.
// t is the accumulated simulation time in seconds.
type MovementStrategy interface {
	Move(pos, target r2.Vec, t float64, index int, flock Flock) r2.Vec
}

// Boids steers enemies with separation, alignment and cohesion among neighbours
// plus a sub-linear attraction toward the player.
type Boids struct {
	VisualRange      float64
	SeparationDist   float64
	MaxSpeed         float64
	PlayerWeight     float64
	PlayerDistance   float64
	NoiseStrength    float64
	SeparationWeight float64
	AlignmentWeight  float64
	CohesionWeight   float64

	// World bounds positions are clamped into
	WorldW, WorldH float64

	// Optional neighbour index. When nil every row is scanned.
	Grid *SpatialGrid

	rng       *rand.Rand
	neighbors []int
}

// NewBoids creates a flocking strategy from config.
func NewBoids(cfg config.BoidsConfig, worldW, worldH float64, rng *rand.Rand) *Boids {
	b := &Boids{
		VisualRange:      cfg.VisualRange,
		SeparationDist:   cfg.SeparationDist,
		MaxSpeed:         cfg.MaxSpeed,
		PlayerWeight:     cfg.PlayerWeight,
		PlayerDistance:   cfg.PlayerDistance,
		NoiseStrength:    cfg.NoiseStrength,
		SeparationWeight: cfg.SeparationWeight,
		AlignmentWeight:  cfg.AlignmentWeight,
		CohesionWeight:   cfg.CohesionWeight,
		WorldW:           worldW,
		WorldH:           worldH,
		rng:              rng,
	}
	if cfg.UseGrid {
		b.Grid = NewSpatialGrid(worldW, worldH, math.Max(cfg.VisualRange, 1))
	}
	return b
}

// SeparationForce returns the separation magnitude for a neighbour at distance d.
// It is zero at or beyond sepDist and grows quadratically to 1 as d approaches 0.
func SeparationForce(d, sepDist float64) float64 {
	if sepDist <= 0 || d >= sepDist {
		return 0
	}
	f := 1 - math.Max(d, 0)/sepDist
	return f * f
}

// PlayerFalloff returns the attraction scale for a player at distance d.
// The square root keeps the pull gradual instead of snapping near the player.
func PlayerFalloff(d, playerDistance float64) float64 {
	if playerDistance <= 0 {
		return 0
	}
	return math.Sqrt(1 - clamp01(d/playerDistance))
}

// BeginPass prepares the neighbour index for a pass over the given flock.
func (b *Boids) BeginPass(flock Flock) {
	if b.Grid == nil {
		return
	}
	b.Grid.Clear()
	for j, p := range flock.Positions {
		if flock.isLive(j) {
			b.Grid.Insert(j, p)
		}
	}
}

// Move implements MovementStrategy.
func (b *Boids) Move(pos, target r2.Vec, _ float64, index int, flock Flock) r2.Vec {
	var separation, alignment, cohesion r2.Vec
	neighbors := 0

	visit := func(j int) {
		if j == index || !flock.isLive(j) {
			return
		}
		other := flock.Positions[j]
		dist := distance(pos, other)
		if dist >= b.VisualRange {
			return
		}

		// Separation: steer away from crowding
		if dist < b.SeparationDist {
			away := r2.Scale(1/math.Max(dist, Epsilon), r2.Sub(pos, other))
			separation = r2.Add(separation, r2.Scale(SeparationForce(dist, b.SeparationDist), away))
		}

		// Alignment: average heading toward neighbours
		toward := r2.Scale(1/math.Max(dist, Epsilon), r2.Sub(other, pos))
		alignment = r2.Add(alignment, toward)

		// Cohesion: average position
		cohesion = r2.Add(cohesion, other)

		neighbors++
	}

	if b.Grid != nil {
		b.neighbors = b.Grid.QueryRadiusInto(b.neighbors[:0], pos, b.VisualRange)
		for _, j := range b.neighbors {
			visit(j)
		}
	} else {
		for j := range flock.Positions {
			visit(j)
		}
	}

	var velocity r2.Vec
	if neighbors > 0 {
		n := float64(neighbors)
		separation = r2.Scale(b.SeparationWeight, normalizeOrZero(separation))
		alignment = r2.Scale(b.AlignmentWeight, normalizeOrZero(r2.Scale(1/n, alignment)))
		cohesion = r2.Scale(b.CohesionWeight, normalizeOrZero(r2.Sub(r2.Scale(1/n, cohesion), pos)))
		velocity = r2.Add(velocity, r2.Add(separation, r2.Add(alignment, cohesion)))
	}

	toPlayer := r2.Sub(target, pos)
	falloff := PlayerFalloff(r2.Norm(toPlayer), b.PlayerDistance)
	velocity = r2.Add(velocity, r2.Scale(b.PlayerWeight*falloff, normalizeOrZero(toPlayer)))

	if b.rng != nil && b.NoiseStrength != 0 {
		noise := r2.Vec{X: b.rng.Float64()*2 - 1, Y: b.rng.Float64()*2 - 1}
		velocity = r2.Add(velocity, r2.Scale(b.NoiseStrength, noise))
	}

	velocity = r2.Scale(b.MaxSpeed, normalizeOrZero(velocity))
	return clampToBounds(r2.Add(pos, velocity), b.WorldW, b.WorldH)
}

// Direct moves straight toward the target at a fixed speed per frame.
type Direct struct {
	Speed float64
}

// Move implements MovementStrategy.
func (d Direct) Move(pos, target r2.Vec, _ float64, _ int, _ Flock) r2.Vec {
	dir := r2.Sub(target, pos)
	dist := math.Max(r2.Norm(dir), Epsilon)
	return r2.Add(pos, r2.Scale(d.Speed/dist, dir))
}

// Sinusoidal chases the target while drifting along a circle traced over time.
type Sinusoidal struct {
	Speed     float64
	Amplitude float64
	Frequency float64
}

// Move implements MovementStrategy.
func (s Sinusoidal) Move(pos, target r2.Vec, t float64, _ int, _ Flock) r2.Vec {
	dir := r2.Sub(target, pos)
	dist := math.Max(r2.Norm(dir), Epsilon)
	wobble := s.Amplitude * s.Frequency
	step := r2.Scale(s.Speed/dist, dir)
	return r2.Vec{
		X: pos.X + step.X + math.Sin(t)*wobble,
		Y: pos.Y + step.Y + math.Cos(t)*wobble,
	}
}

// Zigzag chases the target with a per-enemy phase-shifted vertical oscillation.
type Zigzag struct {
	Speed     float64
	Amplitude float64
	Frequency float64
}

// Move implements MovementStrategy.
func (z Zigzag) Move(pos, target r2.Vec, t float64, index int, _ Flock) r2.Vec {
	dir := r2.Sub(target, pos)
	dist := math.Max(r2.Norm(dir), 0.1)
	zig := math.Sin(t*z.Frequency+float64(index)*0.3) * z.Amplitude
	step := r2.Scale(z.Speed/dist, dir)
	return r2.Vec{X: pos.X + step.X, Y: pos.Y + step.Y + zig}
}

// Orbit places each enemy on a circle around the target, spread by index.
type Orbit struct {
	Radius       float64
	AngularSpeed float64
}

// Move implements MovementStrategy.
func (o Orbit) Move(_, target r2.Vec, t float64, index int, _ Flock) r2.Vec {
	angle := t*o.AngularSpeed + float64(index)*0.1
	return r2.Vec{
		X: target.X + math.Cos(angle)*o.Radius,
		Y: target.Y + math.Sin(angle)*o.Radius,
	}
}

// passPreparer is implemented by strategies that index the flock once per pass.
type passPreparer interface {
	BeginPass(flock Flock)
}

// BeginPass lets s index the flock before a pass when it supports it.
func BeginPass(s MovementStrategy, flock Flock) {
	if p, ok := s.(passPreparer); ok {
		p.BeginPass(flock)
	}
}

// NewMovementStrategy builds the strategy named in cfg.Strategy.
func NewMovementStrategy(cfg config.MovementConfig, worldW, worldH float64, rng *rand.Rand) (MovementStrategy, error) {
	switch cfg.Strategy {
	case "", "boids":
		return NewBoids(cfg.Boids, worldW, worldH, rng), nil
	case "direct":
		return Direct{Speed: cfg.Direct.Speed}, nil
	case "sinusoidal":
		return Sinusoidal{Speed: cfg.Sinusoidal.Speed, Amplitude: cfg.Sinusoidal.Amplitude, Frequency: cfg.Sinusoidal.Frequency}, nil
	case "zigzag":
		return Zigzag{Speed: cfg.Zigzag.Speed, Amplitude: cfg.Zigzag.Amplitude, Frequency: cfg.Zigzag.Frequency}, nil
	case "orbit":
		return Orbit{Radius: cfg.Orbit.Radius, AngularSpeed: cfg.Orbit.AngularSpeed}, nil
	}
	return nil, fmt.Errorf("movement strategy %q: %w", cfg.Strategy, config.ErrInvalid)
}
