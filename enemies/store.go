// Package enemies owns the enemy population: parallel per-row state, its lifecycle
// and the chunked movement pass.
package enemies

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/config"
	"github.com/pthm-cable/horde/systems"
)

// PickupValueDivisor converts an enemy's max health into the value of the orb it drops.
const PickupValueDivisor = 5

// PositionOverlap selects which depth partition Draw visits.
type PositionOverlap uint8

const (
	Behind  PositionOverlap = iota // Drawn before the player
	InFront                        // Drawn after the player
)

// Options configures a new Store.
type Options struct {
	Count     int
	Size      r2.Vec
	MaxHealth float64
	WorldW    float64
	WorldH    float64
	MaxChunks int
}

// OptionsFromConfig builds store options from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Count:     cfg.Enemies.Count,
		Size:      r2.Vec{X: cfg.Enemies.Width, Y: cfg.Enemies.Height},
		MaxHealth: cfg.Enemies.MaxHealth,
		WorldW:    cfg.Derived.WorldW,
		WorldH:    cfg.Derived.WorldH,
		MaxChunks: cfg.Scheduler.MaxChunks,
	}
}

// Store holds enemy rows in parallel slices. Rows are never compacted, so an index
// taken from a snapshot stays valid for the whole run.
type Store struct {
	positions    []r2.Vec
	sizes        []r2.Vec
	status       []components.EnemyStatus
	health       []float64
	maxHealth    []float64
	lastMovement []r2.Vec

	strategy  systems.MovementStrategy
	scheduler *systems.ChunkScheduler

	// Pass scratch, reused across frames
	snapshot []r2.Vec
	live     []bool

	time      float64
	liveCount int
	deadCount int
}

// New allocates count Pending enemies at random positions inside the world.
func New(opts Options, strategy systems.MovementStrategy, rng *rand.Rand) (*Store, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("enemy count %d: %w", opts.Count, config.ErrInvalid)
	}
	if !positive(opts.Size.X) || !positive(opts.Size.Y) || !positive(opts.MaxHealth) {
		return nil, fmt.Errorf("enemy size/health: %w", config.ErrInvalid)
	}
	if !positive(opts.WorldW) || !positive(opts.WorldH) {
		return nil, fmt.Errorf("world bounds: %w", config.ErrInvalid)
	}
	if strategy == nil {
		return nil, fmt.Errorf("movement strategy is nil: %w", config.ErrInvalid)
	}
	if rng == nil {
		return nil, fmt.Errorf("rng is nil: %w", config.ErrInvalid)
	}

	n := opts.Count
	chunks := min(max(opts.MaxChunks, 1), n)

	s := &Store{
		positions:    make([]r2.Vec, n),
		sizes:        make([]r2.Vec, n),
		status:       make([]components.EnemyStatus, n),
		health:       make([]float64, n),
		maxHealth:    make([]float64, n),
		lastMovement: make([]r2.Vec, n),
		strategy:     strategy,
		scheduler:    systems.NewChunkScheduler(n, chunks),
		snapshot:     make([]r2.Vec, n),
		live:         make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s.positions[i] = r2.Vec{X: rng.Float64() * opts.WorldW, Y: rng.Float64() * opts.WorldH}
		s.sizes[i] = opts.Size
		s.status[i] = components.StatusPending
		s.health[i] = opts.MaxHealth
		s.maxHealth[i] = opts.MaxHealth
	}
	return s, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// SpawnAll moves every Pending row to Live. Dead rows are never revived.
func (s *Store) SpawnAll() {
	for i, st := range s.status {
		if st == components.StatusPending {
			s.status[i] = components.StatusLive
			s.liveCount++
		}
	}
}

// Update advances time by dt and recomputes positions for the live rows of the
// current chunk, then advances the scheduler.
func (s *Store) Update(target r2.Vec, dt float64) {
	s.time += dt

	// Neighbour data is the state at the start of the pass
	copy(s.snapshot, s.positions)
	for i, st := range s.status {
		s.live[i] = st == components.StatusLive
	}
	flock := systems.Flock{Positions: s.snapshot, Live: s.live}
	systems.BeginPass(s.strategy, flock)

	lo, hi := s.scheduler.Range()
	for i := lo; i < hi; i++ {
		if !s.live[i] {
			continue
		}
		prev := s.positions[i]
		next := s.strategy.Move(prev, target, s.time, i, flock)
		s.positions[i] = next

		if d := r2.Sub(next, prev); d != (r2.Vec{}) {
			s.lastMovement[i] = r2.Unit(d)
		}
	}

	s.scheduler.Advance()
}

// TakeDamage applies damage to row i. When the hit kills the enemy it returns the
// pickup to spawn and true. Out-of-range and non-Live rows are ignored.
func (s *Store) TakeDamage(i int, amount float64) (components.Pickup, bool) {
	if i < 0 || i >= len(s.status) || s.status[i] != components.StatusLive {
		return components.Pickup{}, false
	}

	s.health[i] -= amount
	if s.health[i] > 0 {
		return components.Pickup{}, false
	}

	s.status[i] = components.StatusDead
	s.liveCount--
	s.deadCount++

	center := r2.Add(s.positions[i], r2.Scale(0.5, s.sizes[i]))
	return components.Pickup{
		Position: center,
		Value:    s.maxHealth[i] / PickupValueDivisor,
	}, true
}

// Views returns a fresh read-only snapshot of every row.
func (s *Store) Views() []components.EnemyView {
	return s.ViewsInto(nil)
}

// ViewsInto writes the snapshot into dst, reusing its capacity.
func (s *Store) ViewsInto(dst []components.EnemyView) []components.EnemyView {
	dst = dst[:0]
	for i := range s.positions {
		dst = append(dst, components.EnemyView{
			Position: s.positions[i],
			Size:     s.sizes[i],
			Alive:    s.status[i] == components.StatusLive,
		})
	}
	return dst
}

// Draw visits live enemies in the requested depth partition in index order.
// An enemy whose bottom edge is at or above the player's bottom edge is Behind.
func (s *Store) Draw(target r2.Vec, targetSize float64, overlap PositionOverlap, fn func(i int, pos, size, facing r2.Vec)) {
	playerBottom := target.Y + targetSize
	for i, st := range s.status {
		if st != components.StatusLive {
			continue
		}
		behind := s.positions[i].Y+s.sizes[i].Y <= playerBottom
		if behind == (overlap == Behind) {
			fn(i, s.positions[i], s.sizes[i], s.lastMovement[i])
		}
	}
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.status) }

// LiveCount returns the number of Live rows.
func (s *Store) LiveCount() int { return s.liveCount }

// DeadCount returns the number of Dead rows.
func (s *Store) DeadCount() int { return s.deadCount }

// Status returns the lifecycle state of row i.
func (s *Store) Status(i int) components.EnemyStatus { return s.status[i] }

// Health returns the current health of row i.
func (s *Store) Health(i int) float64 { return s.health[i] }

// Position returns the top-left corner of row i.
func (s *Store) Position(i int) r2.Vec { return s.positions[i] }

// LastMovement returns the unit direction of row i's most recent move.
func (s *Store) LastMovement(i int) r2.Vec { return s.lastMovement[i] }

// Time returns the accumulated simulation time.
func (s *Store) Time() float64 { return s.time }

// Scheduler exposes the chunk scheduler for inspection.
func (s *Store) Scheduler() *systems.ChunkScheduler { return s.scheduler }

// LiveHealths appends the health of every Live row to dst.
func (s *Store) LiveHealths(dst []float64) []float64 {
	for i, st := range s.status {
		if st == components.StatusLive {
			dst = append(dst, s.health[i])
		}
	}
	return dst
}
