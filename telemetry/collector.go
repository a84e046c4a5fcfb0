// Package telemetry tracks run statistics: windowed event counts, per-phase timing,
// bookmarks, CSV output and Prometheus metrics.
package telemetry

// Collector counts simulation events over fixed windows of ticks.
type Collector struct {
	windowTicks int64
	dt          float64
	windowStart int64

	kills        int
	hits         int
	contacts     int
	playerDamage float64
	xpCollected  float64
	levelUps     int
}

// NewCollector creates a collector whose windows last windowSec simulated seconds.
func NewCollector(windowSec, dt float64) *Collector {
	ticks := int64(1)
	if dt > 0 {
		ticks = max(int64(windowSec/dt), 1)
	}
	return &Collector{windowTicks: ticks, dt: dt}
}

// RecordHits counts skill hits applied this tick.
func (c *Collector) RecordHits(n int) { c.hits += n }

// RecordKill counts an enemy death.
func (c *Collector) RecordKill() { c.kills++ }

// RecordContacts counts enemies touching the player and the damage dealt.
func (c *Collector) RecordContacts(n int, damage float64) {
	c.contacts += n
	c.playerDamage += damage
}

// RecordExperience counts collected experience.
func (c *Collector) RecordExperience(amount float64) { c.xpCollected += amount }

// RecordLevelUp counts a level up.
func (c *Collector) RecordLevelUp() { c.levelUps++ }

// ShouldFlush reports whether the window ending at tick is complete.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStart >= c.windowTicks
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int64 { return c.windowTicks }

// Snapshot is the world state sampled when a window closes.
type Snapshot struct {
	Live, Dead   int
	SkillUnits   int
	Orbs         int
	PlayerHealth float64
	PlayerLevel  int
	EnemyHealths []float64 // live enemies only; reordered by Flush
}

// Flush closes the window at tick and resets the counters.
func (c *Collector) Flush(tick int64, snap Snapshot) WindowStats {
	dist := ComputeDistribution(snap.EnemyHealths)
	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * c.dt,

		Live: snap.Live,
		Dead: snap.Dead,

		Kills:         c.kills,
		Hits:          c.hits,
		Contacts:      c.contacts,
		PlayerDamage:  c.playerDamage,
		XPCollected:   c.xpCollected,
		LevelUps:      c.levelUps,
		ShotsInFlight: snap.SkillUnits,
		OrbsOnGround:  snap.Orbs,

		PlayerHealth: snap.PlayerHealth,
		PlayerLevel:  snap.PlayerLevel,

		HealthMean: dist.Mean,
		HealthStd:  dist.Std,
		HealthP10:  dist.P10,
		HealthP50:  dist.P50,
		HealthP90:  dist.P90,
	}

	*c = Collector{windowTicks: c.windowTicks, dt: c.dt, windowStart: tick}
	return stats
}
