package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/components"
	"github.com/pthm-cable/horde/telemetry"
)

// Step advances the simulation by one frame of dt seconds and returns the resulting
// state. intent is the player's movement input with components in [-1, 1]. Frames are
// only simulated while Running.
func (g *Game) Step(intent r2.Vec, dt float64) State {
	if g.state != StateRunning {
		return g.state
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhasePlayer)
	g.player.Update(intent, g.cfg.Derived.WorldW, g.cfg.Derived.WorldH)

	g.perfCollector.StartPhase(telemetry.PhaseMovement)
	g.enemies.Update(g.player.Position(), dt)

	// One snapshot serves collision and every skill this frame. Neither mutates
	// enemies, and damage applied below does not change it.
	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.views = g.enemies.ViewsInto(g.views)

	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	g.updateCollision()

	g.perfCollector.StartPhase(telemetry.PhaseSkills)
	hits := g.skills.Update(dt, g.player, g.views)

	g.perfCollector.StartPhase(telemetry.PhaseHits)
	g.resolveHits(hits, g.skills.Sources())

	g.perfCollector.StartPhase(telemetry.PhasePickups)
	g.updatePickups()

	if g.player.Dead() {
		g.state = StateGameOver
		slog.Info("player died",
			"tick", g.tick,
			"level", g.player.Level(),
			"kills", g.enemies.DeadCount(),
		)
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.metrics.SetWorld(g.enemies.LiveCount(), g.skills.Units(), g.pickups.Len())
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return g.state
}

// updateCollision applies contact damage from every live enemy touching the player.
func (g *Game) updateCollision() {
	contacts := g.collision.Resolve(g.views, g.player)
	if contacts == 0 {
		return
	}
	damage := float64(contacts) * g.cfg.Collision.Damage
	g.collector.RecordContacts(contacts, damage)
	g.metrics.RecordPlayerDamage(damage)
}

// resolveHits applies each hit to the store in order and drops an orb for every kill.
// sources names the skill behind each hit.
func (g *Game) resolveHits(hits []components.HitEvent, sources []string) {
	g.collector.RecordHits(len(hits))
	for i, h := range hits {
		if i < len(sources) {
			g.metrics.RecordHit(sources[i])
		}
		pickup, killed := g.enemies.TakeDamage(h.Enemy, h.Damage)
		if !killed {
			continue
		}
		g.pickups.Spawn(pickup.Position, pickup.Value)
		g.collector.RecordKill()
		g.metrics.RecordKill()
	}
}

// updatePickups collects orbs and moves to LevelUp when the threshold is reached.
func (g *Game) updatePickups() {
	before := g.pickups.Collected()
	leveled := g.pickups.Update(g.player)
	if gained := g.pickups.Collected() - before; gained > 0 {
		g.collector.RecordExperience(gained)
	}
	if leveled {
		g.collector.RecordLevelUp()
		g.metrics.RecordLevelUp(g.player.Level())
		g.state = StateLevelUp
	}
}
