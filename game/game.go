// Package game assembles the horde simulation and steps it one frame at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/config"
	"github.com/pthm-cable/horde/enemies"
	"github.com/pthm-cable/horde/pickups"
	"github.com/pthm-cable/horde/player"
	"github.com/pthm-cable/horde/skills"
	"github.com/pthm-cable/horde/systems"
	"github.com/pthm-cable/horde/telemetry"
)

// State is the high-level game state reported by Step.
type State uint8

const (
	StateRunning  State = iota
	StateLevelUp        // Waiting for the level-up screen to be dismissed
	StatePaused
	StateGameOver // Terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLevelUp:
		return "level_up"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	Metrics        *telemetry.Metrics

	// StatsCallback, if set, receives every closed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	player    *player.Player
	enemies   *enemies.Store
	collision systems.CollisionStrategy
	skills    *skills.System
	pickups   *pickups.Experience

	// Per-frame scratch
	views   []components.EnemyView
	healths []float64

	state State
	tick  int64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	statsCallback func(telemetry.WindowStats)
	logStats      bool
}

// New assembles a game from cfg. The player starts at the world centre and every enemy
// is spawned.
func New(cfg *config.Config, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	worldW, worldH := cfg.Derived.WorldW, cfg.Derived.WorldH

	strategy, err := systems.NewMovementStrategy(cfg.Movement, worldW, worldH, rng)
	if err != nil {
		return nil, fmt.Errorf("movement strategy: %w", err)
	}
	store, err := enemies.New(enemies.OptionsFromConfig(cfg), strategy, rng)
	if err != nil {
		return nil, fmt.Errorf("enemy store: %w", err)
	}
	sk, err := skills.NewFromConfig(cfg.Skills)
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}

	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	g := &Game{
		cfg:       cfg,
		rng:       rng,
		player:    player.New(r2.Vec{X: worldW / 2, Y: worldH / 2}, cfg.Player, cfg.Experience),
		enemies:   store,
		collision: systems.AABBCollision{Damage: cfg.Collision.Damage},
		skills:    sk,
		pickups:   pickups.New(cfg.Experience.OrbSize),

		collector:     telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		outputManager: out,
		metrics:       opts.Metrics,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
	}

	g.enemies.SpawnAll()
	slog.Info("enemy wave spawned",
		"count", g.enemies.Len(),
		"strategy", cfg.Movement.Strategy,
		"chunks", g.enemies.Scheduler().MaxChunks(),
	)

	return g, nil
}

// Resume returns to Running from LevelUp or Paused.
func (g *Game) Resume() {
	if g.state == StateLevelUp || g.state == StatePaused {
		g.state = StateRunning
	}
}

// TogglePause switches between Running and Paused.
func (g *Game) TogglePause() {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
	case StatePaused:
		g.state = StateRunning
	}
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// State returns the current game state.
func (g *Game) State() State { return g.state }

// Tick returns the number of simulated frames.
func (g *Game) Tick() int64 { return g.tick }

// Config returns the config the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// Player returns the player.
func (g *Game) Player() *player.Player { return g.player }

// Enemies returns the enemy store.
func (g *Game) Enemies() *enemies.Store { return g.enemies }

// Skills returns the skill system.
func (g *Game) Skills() *skills.System { return g.skills }

// Pickups returns the experience system.
func (g *Game) Pickups() *pickups.Experience { return g.pickups }

// Perf returns the phase timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }
