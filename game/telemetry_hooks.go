package game

import "log/slog"

// flushTelemetry emits window stats when the collector's window ends.
// Stats flow to the callback, the log, and run output files, each of
// which is independently optional.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.sc.world.Tick()) {
		return
	}

	stats := g.collector.Flush(g.sc.world.Tick(), g.sc.world)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}
