// Package game wires the motion world, scenario config, camera,
// telemetry, and raylib front end into a runnable simulation.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
	"github.com/pthm-cable/drift/vec"
)

// Options configures a Game beyond the loaded config file. Zero
// values fall back to the config.
type Options struct {
	Seed             int64
	Headless         bool
	LogStats         bool
	StepsPerUpdate   int
	StatsWindowTicks int
	OutputDir        string         // "" uses the config, which may disable output
	Config           *config.Config // nil uses the global config
	StatsCallback    func(telemetry.WindowStats)
}

// Game owns one running simulation and its presentation state.
type Game struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	sc  *scenario
	cam *camera.Camera

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	headless       bool
	paused         bool
	stepOnce       bool
	stepsPerUpdate int
	start          time.Time

	// Interaction state, graphics mode only.
	selected   *motion.Agent
	dragged    *motion.Agent
	lastMouse  vec.Vec
	showGlyphs bool
	showHUD    bool
	showPerf   bool
	followSel  bool
	screenW    float32
	screenH    float32

	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector
	tuner     *ui.TunerPanel
	tunerVals ui.TunerValues
}

// NewGame creates a game from the global config with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a game, builds the scenario world, and
// opens run output when an output directory is configured.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate <= 0 {
		stepsPerUpdate = cfg.Simulation.StepsPerUpdate
	}
	windowTicks := opts.StatsWindowTicks
	if windowTicks <= 0 {
		windowTicks = cfg.Telemetry.WindowTicks
	}

	g := &Game{
		cfg:            cfg,
		seed:           seed,
		rng:            rand.New(rand.NewSource(seed)),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
		showHUD:        true,
		screenW:        cfg.Derived.ScreenW32,
		screenH:        cfg.Derived.ScreenH32,
		start:          time.Now(),
	}

	sc, err := buildScenario(cfg, g.rng)
	if err != nil {
		return nil, err
	}
	g.sc = sc

	g.cam = camera.New(g.screenW, g.screenH, float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH))

	g.collector = telemetry.NewCollector(windowTicks)
	g.collector.RecordSpawns(len(sc.world.Agents()))
	g.perfCollector = telemetry.NewPerfCollector(240)

	outputDir := opts.OutputDir
	if outputDir == "" && cfg.Telemetry.Enabled {
		outputDir = cfg.Telemetry.OutputDir
	}
	if outputDir != "" {
		om, err := telemetry.NewOutputManager(outputDir)
		if err != nil {
			return nil, err
		}
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write run config", "error", err)
		}
		slog.Info("run output enabled", "dir", om.Dir(), "run_id", om.RunID())
	}

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 110)
	g.inspector = ui.NewInspector(10, 110, 250)
	g.tuner = ui.NewTunerPanel(240)
	g.syncTuner()

	return g, nil
}

// Update advances one frame in graphics mode: input first, then the
// configured number of simulation steps unless paused.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if g.paused && !g.stepOnce {
		return
	}
	steps := g.stepsPerUpdate
	if g.stepOnce {
		steps = 1
		g.stepOnce = false
	}
	for i := 0; i < steps; i++ {
		g.step()
	}
	g.perfCollector.EndTick()
}

// UpdateHeadless advances the simulation without input or rendering.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.perfCollector.EndTick()
}

// step runs one world tick with phase timing.
func (g *Game) step() {
	g.perfCollector.StartPhase(telemetry.PhaseFields)
	g.sc.advanceFields()

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.sc.world.Step()

	g.perfCollector.StartPhase(telemetry.PhaseSweep)
	if removed := g.sc.world.Sweep(); removed > 0 {
		g.collector.RecordRemovals(removed)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordSensorHits(telemetry.CountSensorHits(g.sc.world))
	g.flushTelemetry()
}

// Reset rebuilds the world from the configured scenario, reseeding
// the generator so runs repeat exactly.
func (g *Game) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	sc, err := buildScenario(g.cfg, g.rng)
	if err != nil {
		slog.Error("failed to rebuild scenario", "error", err)
		return
	}
	g.sc = sc
	g.collector = telemetry.NewCollector(int(g.collector.WindowTicks()))
	g.collector.RecordSpawns(len(sc.world.Agents()))
	g.selected = nil
	g.dragged = nil
	g.cam.Reset()
	g.syncTuner()
}

// Unload finalizes run output. Call before the process exits.
func (g *Game) Unload() {
	if g.outputManager == nil {
		return
	}
	wall := time.Since(g.start).Seconds()
	tps := 0.0
	if wall > 0 {
		tps = float64(g.Tick()) / wall
	}
	summary := telemetry.RunSummary{
		RunID:           g.outputManager.RunID(),
		Ticks:           g.Tick(),
		WallSeconds:     wall,
		TicksPerSec:     tps,
		FinalPopulation: len(g.sc.world.Agents()),
	}
	if err := g.outputManager.WriteSummary(summary); err != nil {
		slog.Error("failed to write run summary", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close run output", "error", err)
	}
}

// Tick returns the current world tick.
func (g *Game) Tick() int64 {
	return g.sc.world.Tick()
}

// World exposes the live world.
func (g *Game) World() *motion.World {
	return g.sc.world
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}
