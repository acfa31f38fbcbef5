package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/telemetry"
)

// FitnessEvaluator scores flocking parameter sets by running headless
// simulations across several seeds and measuring how ordered and
// compact the flock stays.
type FitnessEvaluator struct {
	params      *ParamVector
	baseConfig  *config.Config
	maxTicks    int64
	seeds       []int64
	windowTicks int

	mu          sync.Mutex
	evalCount   int
	bestFitness float64
	bestParams  []float64
}

func NewFitnessEvaluator(params *ParamVector, baseConfig *config.Config, maxTicks int64, seeds []int64, windowTicks int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		baseConfig:  baseConfig,
		maxTicks:    maxTicks,
		seeds:       seeds,
		windowTicks: windowTicks,
		bestFitness: math.Inf(1),
	}
}

// Evaluate runs one parameter set across all seeds in parallel and
// returns the mean fitness. Lower is better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := cloneConfig(fe.baseConfig)
	fe.params.ApplyToConfig(cfg, raw)

	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			results[i] = fe.runSimulation(cfg, seed)
		}(i, seed)
	}
	wg.Wait()

	fitness := stat.Mean(results, nil)

	fe.mu.Lock()
	fe.evalCount++
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestParams = append([]float64(nil), raw...)
	}
	fe.mu.Unlock()

	return fitness
}

// Progress returns the evaluation count and best fitness so far.
func (fe *FitnessEvaluator) Progress() (int, float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.evalCount, fe.bestFitness
}

// BestParams returns a copy of the best raw parameters seen, or nil if
// no evaluation has completed.
func (fe *FitnessEvaluator) BestParams() []float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if fe.bestParams == nil {
		return nil
	}
	return append([]float64(nil), fe.bestParams...)
}

func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) float64 {
	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Seed:             seed,
		Headless:         true,
		StepsPerUpdate:   1,
		StatsWindowTicks: fe.windowTicks,
		Config:           cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		slog.Error("failed to build evaluation run", "seed", seed, "error", err)
		return math.Inf(1)
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return scoreWindows(windows, cfg)
}

// scoreWindows converts window stats to a fitness value. The first
// window is dropped so spawn transients do not dominate. The score
// rewards high, steady polarization and penalizes flocks that spread
// across a large fraction of the world.
func scoreWindows(windows []telemetry.WindowStats, cfg *config.Config) float64 {
	if len(windows) < 3 {
		return math.Inf(1)
	}
	windows = windows[1:]

	pol := make([]float64, len(windows))
	spread := make([]float64, len(windows))
	for i, w := range windows {
		pol[i] = w.Polarization
		spread[i] = w.SpreadRMS
	}

	polMean := stat.Mean(pol, nil)
	polStd := stat.StdDev(pol, nil)

	diag := math.Hypot(cfg.Derived.WorldW, cfg.Derived.WorldH)
	spreadFrac := stat.Mean(spread, nil) / diag

	return -(polMean - 0.5*polStd - 0.3*spreadFrac)
}
