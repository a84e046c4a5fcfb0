package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarises one telemetry window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Live int `csv:"live"`
	Dead int `csv:"dead"`

	// Events during the window
	Kills         int     `csv:"kills"`
	Hits          int     `csv:"hits"`
	Contacts      int     `csv:"contacts"`
	PlayerDamage  float64 `csv:"player_damage"`
	XPCollected   float64 `csv:"xp_collected"`
	LevelUps      int     `csv:"level_ups"`
	ShotsInFlight int     `csv:"skill_units"`
	OrbsOnGround  int     `csv:"orbs"`

	// Player state at window end
	PlayerHealth float64 `csv:"player_health"`
	PlayerLevel  int     `csv:"player_level"`

	// Health distribution over live enemies
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`
}

// Distribution holds the summary statistics of a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeDistribution sorts values in place and summarises them. Empty input
// yields the zero Distribution.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sort.Float64s(values)

	var d Distribution
	d.Mean, d.Std = stat.PopMeanStdDev(values, nil)
	d.P10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	d.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	d.P90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return d
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live", s.Live),
		slog.Int("dead", s.Dead),
		slog.Int("kills", s.Kills),
		slog.Int("hits", s.Hits),
		slog.Int("contacts", s.Contacts),
		slog.Float64("player_damage", s.PlayerDamage),
		slog.Float64("xp_collected", s.XPCollected),
		slog.Int("level_ups", s.LevelUps),
		slog.Float64("player_health", s.PlayerHealth),
		slog.Int("player_level", s.PlayerLevel),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p50", s.HealthP50),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
