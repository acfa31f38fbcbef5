package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (empty uses embedded defaults)")
	headless := flag.Bool("headless", false, "run without graphics")
	logStats := flag.Bool("log-stats", false, "log window stats")
	seed := flag.Int64("seed", 0, "simulation seed (0 uses the config seed, then the clock)")
	maxTicks := flag.Int64("max-ticks", 0, "stop after this many ticks (0 uses the config)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "simulation steps per frame (0 uses the config)")
	outputDir := flag.String("output", "", "run output directory (empty uses the config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	runSeed := *seed
	if runSeed == 0 {
		runSeed = cfg.Simulation.Seed
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	limit := *maxTicks
	if limit == 0 {
		limit = cfg.Simulation.MaxTicks
	}

	opts := game.Options{
		Seed:           runSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		StepsPerUpdate: *stepsPerUpdate,
		OutputDir:      *outputDir,
	}

	if *headless {
		runHeadless(opts, limit)
		return
	}
	runGraphics(cfg, opts, limit)
}

func runHeadless(opts game.Options, maxTicks int64) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation", "seed", opts.Seed, "max_ticks", maxTicks)
	for {
		g.UpdateHeadless()
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

func runGraphics(cfg *config.Config, opts game.Options, maxTicks int64) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "drift")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}
