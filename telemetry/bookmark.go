package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkKillSpike      BookmarkType = "kill_spike"
	BookmarkSurrounded     BookmarkType = "surrounded"
	BookmarkSwarmHalved    BookmarkType = "swarm_halved"
	BookmarkSwarmCleared   BookmarkType = "swarm_cleared"
	BookmarkPlayerCritical BookmarkType = "player_critical"
)

// Bookmark marks a notable moment of a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark", "type", string(b.Type), "tick", b.Tick, "description", b.Description)
}

// BookmarkDetector watches window stats for notable moments.
type BookmarkDetector struct {
	history []WindowStats
	idx     int
	full    bool

	peakLive   int
	peakHealth float64
	halved     bool
	cleared    bool
	critical   bool
}

// NewBookmarkDetector creates a detector averaging over historySize windows (min 3).
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	return &BookmarkDetector{history: make([]WindowStats, max(historySize, 3))}
}

// Check inspects the latest window and returns any bookmarks it triggers.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			out = append(out, *b)
		}
	}

	add(bd.spike(stats, BookmarkKillSpike, "kills", stats.Kills, func(h WindowStats) int { return h.Kills }, 3))
	add(bd.spike(stats, BookmarkSurrounded, "contacts", stats.Contacts, func(h WindowStats) int { return h.Contacts }, 10))
	add(bd.checkSwarm(stats))
	add(bd.checkPlayer(stats))

	bd.history[bd.idx] = stats
	bd.idx = (bd.idx + 1) % len(bd.history)
	if bd.idx == 0 {
		bd.full = true
	}
	return out
}

func (bd *BookmarkDetector) recent() []WindowStats {
	if bd.full {
		return bd.history
	}
	return bd.history[:bd.idx]
}

// spike fires when value exceeds twice its rolling average and a floor.
func (bd *BookmarkDetector) spike(stats WindowStats, kind BookmarkType, what string, value int, field func(WindowStats) int, floor int) *Bookmark {
	history := bd.recent()
	if len(history) < 3 || value < floor {
		return nil
	}
	total := 0
	for _, h := range history {
		total += field(h)
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(value) <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        kind,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d %s is %.1fx the recent average (%.1f)", value, what, float64(value)/avg, avg),
	}
}

func (bd *BookmarkDetector) checkSwarm(stats WindowStats) *Bookmark {
	bd.peakLive = max(bd.peakLive, stats.Live+stats.Dead)
	if bd.peakLive == 0 {
		return nil
	}

	if !bd.cleared && stats.Live == 0 && stats.Dead > 0 {
		bd.cleared, bd.halved = true, true
		return &Bookmark{
			Type:        BookmarkSwarmCleared,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("All %d enemies defeated", stats.Dead),
		}
	}
	if !bd.halved && stats.Live*2 < bd.peakLive {
		bd.halved = true
		return &Bookmark{
			Type:        BookmarkSwarmHalved,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Swarm down to %d of %d", stats.Live, bd.peakLive),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPlayer(stats WindowStats) *Bookmark {
	if stats.PlayerHealth > bd.peakHealth {
		bd.peakHealth = stats.PlayerHealth
		bd.critical = false
	}
	if bd.critical || bd.peakHealth == 0 || stats.PlayerHealth >= 0.25*bd.peakHealth {
		return nil
	}
	bd.critical = true
	return &Bookmark{
		Type:        BookmarkPlayerCritical,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Player health %.1f below a quarter of %.1f", stats.PlayerHealth, bd.peakHealth),
	}
}
