package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/config"
	"github.com/pthm-cable/horde/game"
	"github.com/pthm-cable/horde/renderer"
	"github.com/pthm-cable/horde/telemetry"
	"github.com/pthm-cable/horde/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = disabled)")
	cpuProfile := flag.String("cpuprofile", "", "Write a CPU profile to this directory")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	enemyCount := flag.Int("enemies", 0, "Enemy count (0 = use config)")
	chunks := flag.Int("chunks", 0, "Movement chunks per pass (0 = use config)")
	strategy := flag.String("strategy", "", "Movement strategy: boids, direct, sinusoidal, zigzag, orbit (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *enemyCount > 0 {
		cfg.Enemies.Count = *enemyCount
	}
	if *chunks > 0 {
		cfg.Scheduler.MaxChunks = *chunks
	}
	if *strategy != "" {
		cfg.Movement.Strategy = *strategy
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.Quiet).Stop()
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		m, err := telemetry.NewMetrics(nil)
		if err != nil {
			slog.Error("failed to register metrics", "error", err)
			os.Exit(1)
		}
		metrics = m
		go serveMetrics(*metricsAddr, m)
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Metrics:        metrics,
	}

	slog.Info("simulation started",
		"seed", rngSeed,
		"headless", *headless,
		"enemies", cfg.Enemies.Count,
		"strategy", cfg.Movement.Strategy,
		"max_ticks", *maxTicks,
	)

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxTicks)
	} else {
		err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, m *telemetry.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	slog.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server stopped", "error", err)
	}
}

// runHeadless steps with a fixed dt and no input. Level ups are dismissed at once.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for {
		switch g.Step(r2.Vec{}, cfg.Physics.DT) {
		case game.StateLevelUp:
			g.Resume()
		case game.StateGameOver:
			slog.Info("game over", "tick", g.Tick(), "kills", g.Enemies().DeadCount())
			return nil
		}
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
}

// runWindow runs the graphical loop: one update pass then one draw pass per frame.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Horde")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape pauses instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	scene := renderer.New(cfg)
	defer scene.Unload()
	hud := ui.NewHUD()
	screens := ui.NewScreens()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			scene.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		if ui.FullscreenPressed() {
			rl.ToggleFullscreen()
		}
		if ui.PausePressed() {
			g.TogglePause()
		}

		g.Step(ui.ReadIntent(), float64(rl.GetFrameTime()))
		g.Perf().RecordFrame()

		if drawFrame(g, scene, hud, screens) == ui.ActionQuit {
			return nil
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			return nil
		}
	}
	return nil
}

func drawFrame(g *game.Game, scene *renderer.Scene, hud *ui.HUD, screens *ui.Screens) ui.Action {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	scene.Draw(g)

	p := g.Player()
	hud.Draw(ui.HUDData{
		FPS:        rl.GetFPS(),
		Enemies:    g.Enemies().Len(),
		Live:       g.Enemies().LiveCount(),
		Level:      p.Level(),
		Experience: p.Experience(),
		ToNext:     p.ExperienceToNext(),
		Health:     p.Health(),
		MaxHealth:  p.MaxHealth(),
	})

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	hud.DrawControls(h, "WASD/Arrows: move | Esc: pause | F11: fullscreen")

	var action ui.Action
	switch g.State() {
	case game.StatePaused:
		action = screens.Paused(w, h)
	case game.StateLevelUp:
		action = screens.LevelUp(w, h, strconv.Itoa(p.Level()))
	case game.StateGameOver:
		action = screens.GameOver(w, h, fmt.Sprintf("Level %d, %d enemies defeated", p.Level(), g.Enemies().DeadCount()))
	}
	if action == ui.ActionResume {
		g.Resume()
	}
	return action
}
