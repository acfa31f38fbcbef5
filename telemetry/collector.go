package telemetry

import "github.com/pthm-cable/drift/motion"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Event counters for current window
	spawned    int
	removed    int
	sensorHits int

	// Sampling scratch, reused across flushes
	speeds []float64
	xs     []float64
	ys     []float64
	vxs    []float64
	vys    []float64
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordSpawns records n agents entering the world.
func (c *Collector) RecordSpawns(n int) {
	c.spawned += n
}

// RecordRemovals records n agents leaving the world.
func (c *Collector) RecordRemovals(n int) {
	c.removed += n
}

// RecordSensorHits records n sensor activations this tick.
func (c *Collector) RecordSensorHits(n int) {
	c.sensorHits += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush samples the world, produces a WindowStats and resets counters
// for the next window.
func (c *Collector) Flush(currentTick int64, w *motion.World) WindowStats {
	agents := w.Agents()

	c.speeds = c.speeds[:0]
	c.xs = c.xs[:0]
	c.ys = c.ys[:0]
	c.vxs = c.vxs[:0]
	c.vys = c.vys[:0]
	for _, a := range agents {
		vel := a.Velocity()
		loc := a.Location()
		c.speeds = append(c.speeds, vel.Mag())
		c.xs = append(c.xs, loc.X)
		c.ys = append(c.ys, loc.Y)
		c.vxs = append(c.vxs, vel.X)
		c.vys = append(c.vys, vel.Y)
	}

	mean, p10, p50, p90, max := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: len(agents),

		Spawned:    c.spawned,
		Removed:    c.removed,
		SensorHits: c.sensorHits,

		SpeedMean: mean,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
		SpeedMax:  max,

		Polarization: Polarization(c.vxs, c.vys),
		SpreadRMS:    SpreadRMS(c.xs, c.ys),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.removed = 0
	c.sensorHits = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// CountSensorHits returns how many proximity sensors are activated after
// the most recent step.
func CountSensorHits(w *motion.World) int {
	n := 0
	for _, a := range w.Agents() {
		for _, s := range a.Sensors {
			if ps, ok := s.(*motion.ProximitySensor); ok && ps.Activated() {
				n++
			}
		}
	}
	return n
}
