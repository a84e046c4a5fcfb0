package game

import (
	"log/slog"

	"github.com/pthm-cable/horde/telemetry"
)

// flushTelemetry closes the stats window when it is due and fans the result out to
// logs, CSV output, metrics and the bookmark detector.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	g.healths = g.enemies.LiveHealths(g.healths[:0])
	stats := g.collector.Flush(g.tick, telemetry.Snapshot{
		Live:         g.enemies.LiveCount(),
		Dead:         g.enemies.DeadCount(),
		SkillUnits:   g.skills.Units(),
		Orbs:         g.pickups.Len(),
		PlayerHealth: g.player.Health(),
		PlayerLevel:  g.player.Level(),
		EnemyHealths: g.healths,
	})
	perfStats := g.perfCollector.Stats()
	g.metrics.ObservePerf(perfStats)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
