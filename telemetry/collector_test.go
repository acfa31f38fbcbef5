package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/vec"
)

func testWorld(t *testing.T) *motion.World {
	t.Helper()
	w, err := motion.NewWorld(motion.WorldConfig{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewWorld error: %v", err)
	}
	return w
}

func mustSpawn(t *testing.T, w *motion.World, cfg motion.AgentConfig) *motion.Agent {
	t.Helper()
	a, err := w.Spawn(cfg)
	if err != nil {
		t.Fatalf("Spawn error: %v", err)
	}
	return a
}

func TestCollectorFlushSamplesWorld(t *testing.T) {
	w := testWorld(t)

	// Corners of a 200x200 square centered on (200, 200)
	mustSpawn(t, w, motion.AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Velocity: vec.Vec{X: 3}})
	mustSpawn(t, w, motion.AgentConfig{Location: vec.Vec{X: 300, Y: 100}, Velocity: vec.Vec{Y: 4}})
	mustSpawn(t, w, motion.AgentConfig{Location: vec.Vec{X: 100, Y: 300}})
	mustSpawn(t, w, motion.AgentConfig{Location: vec.Vec{X: 300, Y: 300}})

	c := NewCollector(10)
	c.RecordSpawns(4)
	c.RecordRemovals(1)
	c.RecordSensorHits(2)

	stats := c.Flush(10, w)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Population != 4 {
		t.Errorf("Population = %d, want 4", stats.Population)
	}
	if stats.Spawned != 4 || stats.Removed != 1 || stats.SensorHits != 2 {
		t.Errorf("events = %d/%d/%d, want 4/1/2", stats.Spawned, stats.Removed, stats.SensorHits)
	}

	// Speeds are [3, 4, 0, 0]
	if math.Abs(stats.SpeedMean-1.75) > 1e-9 {
		t.Errorf("SpeedMean = %v, want 1.75", stats.SpeedMean)
	}
	if stats.SpeedMax != 4 {
		t.Errorf("SpeedMax = %v, want 4", stats.SpeedMax)
	}

	// Two movers with perpendicular headings
	if math.Abs(stats.Polarization-math.Sqrt2/2) > 1e-9 {
		t.Errorf("Polarization = %v, want %v", stats.Polarization, math.Sqrt2/2)
	}
	if math.Abs(stats.SpreadRMS-100*math.Sqrt2) > 1e-9 {
		t.Errorf("SpreadRMS = %v, want %v", stats.SpreadRMS, 100*math.Sqrt2)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	w := testWorld(t)
	mustSpawn(t, w, motion.AgentConfig{Location: vec.Vec{X: 400, Y: 300}})

	c := NewCollector(10)
	c.RecordSpawns(1)
	c.Flush(10, w)

	stats := c.Flush(20, w)
	if stats.WindowStartTick != 10 || stats.WindowEndTick != 20 {
		t.Errorf("window = [%d, %d], want [10, 20]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Spawned != 0 || stats.Removed != 0 || stats.SensorHits != 0 {
		t.Errorf("counters not reset: %d/%d/%d", stats.Spawned, stats.Removed, stats.SensorHits)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(120)

	if c.ShouldFlush(119) {
		t.Error("ShouldFlush(119) = true before window elapsed")
	}
	if !c.ShouldFlush(120) {
		t.Error("ShouldFlush(120) = false at window boundary")
	}

	w := testWorld(t)
	c.Flush(120, w)
	if c.ShouldFlush(180) {
		t.Error("ShouldFlush(180) = true halfway into second window")
	}
	if !c.ShouldFlush(240) {
		t.Error("ShouldFlush(240) = false at second boundary")
	}
}

func TestCountSensorHits(t *testing.T) {
	w := testWorld(t)

	sensor, err := motion.NewProximitySensor(motion.ProximitySensorConfig{
		TargetKind: "prey",
		Range:      50,
		Response:   motion.ResponseSeek,
	})
	if err != nil {
		t.Fatalf("NewProximitySensor error: %v", err)
	}
	mustSpawn(t, w, motion.AgentConfig{
		Kind:     "hunter",
		Location: vec.Vec{X: 100, Y: 100},
		Sensors:  []motion.Sensor{sensor},
	})
	mustSpawn(t, w, motion.AgentConfig{
		Kind:     "prey",
		Location: vec.Vec{X: 120, Y: 100},
		Static:   true,
	})

	if got := CountSensorHits(w); got != 0 {
		t.Errorf("CountSensorHits before step = %d, want 0", got)
	}

	w.Step()

	if got := CountSensorHits(w); got != 1 {
		t.Errorf("CountSensorHits = %d, want 1", got)
	}
}
