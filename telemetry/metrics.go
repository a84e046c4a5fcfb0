package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes live simulation counters to Prometheus. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	gatherer prometheus.Gatherer

	Kills        prometheus.Counter
	Hits         *prometheus.CounterVec
	PlayerDamage prometheus.Counter
	LevelUps     prometheus.Counter

	LiveEnemies prometheus.Gauge
	SkillUnits  prometheus.Gauge
	Orbs        prometheus.Gauge
	PlayerLevel prometheus.Gauge

	TickDuration *prometheus.HistogramVec
}

// NewMetrics registers simulation metrics against reg, defaulting to the global
// registry when nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{gatherer: gatherer}
	var err error

	if m.Kills, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "horde_kills_total",
		Help: "Enemies defeated.",
	})); err != nil {
		return nil, err
	}
	if m.Hits, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "horde_skill_hits_total",
		Help: "Skill hits applied to enemies, labelled by skill.",
	}, []string{"skill"})); err != nil {
		return nil, err
	}
	if m.PlayerDamage, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "horde_player_damage_total",
		Help: "Contact damage taken by the player.",
	})); err != nil {
		return nil, err
	}
	if m.LevelUps, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "horde_level_ups_total",
		Help: "Player level ups.",
	})); err != nil {
		return nil, err
	}
	if m.LiveEnemies, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "horde_live_enemies",
		Help: "Enemies currently alive.",
	})); err != nil {
		return nil, err
	}
	if m.SkillUnits, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "horde_skill_units",
		Help: "Skill units currently in the world.",
	})); err != nil {
		return nil, err
	}
	if m.Orbs, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "horde_experience_orbs",
		Help: "Uncollected experience orbs.",
	})); err != nil {
		return nil, err
	}
	if m.PlayerLevel, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "horde_player_level",
		Help: "Current player level.",
	})); err != nil {
		return nil, err
	}
	if m.TickDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "horde_phase_duration_seconds",
		Help:    "Wall time spent per simulation phase.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}, []string{"phase"})); err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, reusing an already registered collector of the same type.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// RecordHit counts one hit by the named skill.
func (m *Metrics) RecordHit(skill string) {
	if m == nil {
		return
	}
	m.Hits.WithLabelValues(skill).Inc()
}

// RecordKill counts one defeated enemy.
func (m *Metrics) RecordKill() {
	if m == nil {
		return
	}
	m.Kills.Inc()
}

// RecordPlayerDamage adds contact damage.
func (m *Metrics) RecordPlayerDamage(amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.PlayerDamage.Add(amount)
}

// RecordLevelUp counts a level up and updates the level gauge.
func (m *Metrics) RecordLevelUp(level int) {
	if m == nil {
		return
	}
	m.LevelUps.Inc()
	m.PlayerLevel.Set(float64(level))
}

// SetWorld updates the population gauges.
func (m *Metrics) SetWorld(live, skillUnits, orbs int) {
	if m == nil {
		return
	}
	m.LiveEnemies.Set(float64(live))
	m.SkillUnits.Set(float64(skillUnits))
	m.Orbs.Set(float64(orbs))
}

// ObservePerf records the average phase durations of a perf window.
func (m *Metrics) ObservePerf(s PerfStats) {
	if m == nil {
		return
	}
	for _, ph := range Phases() {
		m.TickDuration.WithLabelValues(ph.String()).Observe(s.PhaseAvg[ph].Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (m *Metrics) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
