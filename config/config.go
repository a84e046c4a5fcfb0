// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Movement   MovementConfig   `yaml:"movement"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Collision  CollisionConfig  `yaml:"collision"`
	Skills     SkillsConfig     `yaml:"skills"`
	Experience ExperienceConfig `yaml:"experience"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Assets     AssetsConfig     `yaml:"assets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; camera handles the viewport.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds the fixed step used by headless runs.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// PlayerConfig holds player parameters.
type PlayerConfig struct {
	Speed     float64 `yaml:"speed"` // world units per frame
	Size      float64 `yaml:"size"`
	MaxHealth float64 `yaml:"max_health"`
}

// EnemiesConfig holds enemy population parameters.
type EnemiesConfig struct {
	Count     int     `yaml:"count"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MaxHealth float64 `yaml:"max_health"`
}

// MovementConfig selects a movement strategy and holds its parameters.
type MovementConfig struct {
	Strategy   string       `yaml:"strategy"` // boids, direct, sinusoidal, zigzag, orbit
	Boids      BoidsConfig  `yaml:"boids"`
	Direct     DirectConfig `yaml:"direct"`
	Sinusoidal WaveConfig   `yaml:"sinusoidal"`
	Zigzag     WaveConfig   `yaml:"zigzag"`
	Orbit      OrbitConfig  `yaml:"orbit"`
}

// BoidsConfig holds flocking parameters.
type BoidsConfig struct {
	VisualRange      float64 `yaml:"visual_range"`
	SeparationDist   float64 `yaml:"separation_dist"`
	MaxSpeed         float64 `yaml:"max_speed"`
	PlayerWeight     float64 `yaml:"player_weight"`
	PlayerDistance   float64 `yaml:"player_distance"`
	NoiseStrength    float64 `yaml:"noise_strength"`
	SeparationWeight float64 `yaml:"separation_weight"`
	AlignmentWeight  float64 `yaml:"alignment_weight"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	UseGrid          bool    `yaml:"use_grid"` // neighbour scan through a uniform grid
}

// DirectConfig holds direct-chase parameters.
type DirectConfig struct {
	Speed float64 `yaml:"speed"`
}

// WaveConfig holds parameters shared by the sinusoidal and zigzag strategies.
type WaveConfig struct {
	Speed     float64 `yaml:"speed"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// OrbitConfig holds orbit parameters.
type OrbitConfig struct {
	Radius       float64 `yaml:"radius"`
	AngularSpeed float64 `yaml:"angular_speed"`
}

// SchedulerConfig holds chunked update parameters.
type SchedulerConfig struct {
	MaxChunks int `yaml:"max_chunks"`
}

// CollisionConfig holds enemy-vs-player contact parameters.
type CollisionConfig struct {
	Damage float64 `yaml:"damage"` // player damage per overlapping enemy per frame
}

// SkillsConfig holds the configured skill managers.
type SkillsConfig struct {
	Projectile ProjectileConfig `yaml:"projectile"`
	Field      FieldConfig      `yaml:"field"`
}

// ProjectileConfig holds nearest-enemy projectile parameters.
type ProjectileConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Damage   float64 `yaml:"damage"`
	Speed    float64 `yaml:"speed"` // world units per second
	Radius   float64 `yaml:"radius"`
	Life     float64 `yaml:"life"`     // seconds
	Cooldown float64 `yaml:"cooldown"` // seconds
}

// FieldConfig holds force field parameters.
type FieldConfig struct {
	Enabled bool    `yaml:"enabled"`
	Damage  float64 `yaml:"damage"` // per enemy per frame
	Radius  float64 `yaml:"radius"`
}

// ExperienceConfig holds progression parameters.
type ExperienceConfig struct {
	OrbSize     float64 `yaml:"orb_size"`
	FirstLevel  float64 `yaml:"first_level"`  // experience needed for level 2
	LevelGrowth float64 `yaml:"level_growth"` // multiplier applied on each level up
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AssetsConfig holds optional texture paths. Missing files fall back to primitives.
type AssetsConfig struct {
	EnemyTexture  string `yaml:"enemy_texture"`
	PlayerTexture string `yaml:"player_texture"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW float64 // Effective world width
	WorldH float64 // Effective world height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}
}

// Validate rejects parameters the simulation cannot run with.
// Chunk counts above the population are clamped later by the scheduler, not rejected here.
func (c *Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"world size", positive(c.Derived.WorldW) && positive(c.Derived.WorldH)},
		{"physics.dt", positive(c.Physics.DT)},
		{"player.size", positive(c.Player.Size)},
		{"player.max_health", positive(c.Player.MaxHealth)},
		{"enemies.count", c.Enemies.Count > 0},
		{"enemies size", positive(c.Enemies.Width) && positive(c.Enemies.Height)},
		{"enemies.max_health", positive(c.Enemies.MaxHealth)},
		{"scheduler.max_chunks", c.Scheduler.MaxChunks > 0},
		{"experience.first_level", positive(c.Experience.FirstLevel)},
		{"experience.level_growth", c.Experience.LevelGrowth >= 1},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%s: %w", chk.name, ErrInvalid)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
