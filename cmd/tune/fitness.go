package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/horde/config"
	"github.com/pthm-cable/horde/game"
	"github.com/pthm-cable/horde/telemetry"
)

// FitnessEvaluator runs headless games with an idle player and scores how close the
// horde comes to killing it at the target time.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	targetSec   float64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu           sync.Mutex
	lastPressure float64 // mean contacts per window from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, targetSec float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetSec:   targetSec,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
	}
}

// LastPressure returns the contact pressure from the most recent evaluation.
func (fe *FitnessEvaluator) LastPressure() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPressure
}

// runResult holds the results from a single game.
type runResult struct {
	survivalSec float64
	windows     []telemetry.WindowStats
}

// Evaluate computes fitness for raw parameter values (lower = better). Every seed runs
// in its own goroutine with its own config copy.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGame(x, s)
		}(i, seed)
	}
	wg.Wait()

	var fitness, pressure float64
	for _, r := range results {
		fitness += fe.computeFitness(r)
		pressure += computePressure(r.windows)
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastPressure = pressure / n
	fe.mu.Unlock()

	return fitness / n
}

// runGame plays one seed until the player dies or maxTicks is reached.
func (fe *FitnessEvaluator) runGame(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.New(cfg, game.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(s telemetry.WindowStats) {
			result.windows = append(result.windows, s)
		},
	})
	if err != nil {
		// Unbuildable parameters score as a run that never pressures the player
		result.survivalSec = float64(fe.maxTicks) * cfg.Physics.DT
		return result
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		switch g.Step(r2.Vec{}, cfg.Physics.DT) {
		case game.StateLevelUp:
			g.Resume()
		case game.StateGameOver:
			result.survivalSec = float64(g.Tick()) * cfg.Physics.DT
			return result
		}
	}
	result.survivalSec = float64(fe.maxTicks) * cfg.Physics.DT
	return result
}

// computeFitness is the relative distance between survival time and the target.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	return math.Abs(r.survivalSec-fe.targetSec) / fe.targetSec
}

// computePressure is the mean number of contacts per stats window.
func computePressure(windows []telemetry.WindowStats) float64 {
	if len(windows) == 0 {
		return 0
	}
	total := 0
	for _, w := range windows {
		total += w.Contacts
	}
	return float64(total) / float64(len(windows))
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
