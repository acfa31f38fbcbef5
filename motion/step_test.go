package motion

import (
	"math"
	"testing"

	"github.com/pthm-cable/drift/vec"
)

func TestFrozenAgentHoldsState(t *testing.T) {
	for _, freeze := range []string{"static", "pressed"} {
		t.Run(freeze, func(t *testing.T) {
			w, err := NewWorld(WorldConfig{Width: 800, Height: 600, Gravity: vec.Vec{Y: 1}})
			if err != nil {
				t.Fatalf("NewWorld: %v", err)
			}

			var before, after int
			a := mustSpawn(t, w, AgentConfig{
				Location:   vec.Vec{X: 100, Y: 100},
				Velocity:   vec.Vec{X: 2, Y: 0},
				Lifespan:   5,
				Static:     freeze == "static",
				BeforeStep: func(*Agent) { before++ },
				AfterStep:  func(*Agent) { after++ },
			})
			if freeze == "pressed" {
				a.Pressed = true
			}

			w.Step()

			if !approxVec(a.Location(), vec.Vec{X: 100, Y: 100}) {
				t.Errorf("location = %v, want unchanged (100, 100)", a.Location())
			}
			if !approxVec(a.Velocity(), vec.Vec{X: 2, Y: 0}) {
				t.Errorf("velocity = %v, want unchanged (2, 0)", a.Velocity())
			}
			if a.Lifespan() != 5 {
				t.Errorf("lifespan = %d, want unchanged 5", a.Lifespan())
			}
			if before != 1 || after != 1 {
				t.Errorf("hooks ran %d/%d times, want 1/1", before, after)
			}
		})
	}
}

func TestGravityAndWindIntegration(t *testing.T) {
	w, err := NewWorld(WorldConfig{
		Width:   800,
		Height:  600,
		Gravity: vec.Vec{Y: 0.5},
		Wind:    vec.Vec{X: 0.2},
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Mass: 1})

	w.Step()
	if !approxVec(a.Velocity(), vec.Vec{X: 0.2, Y: 0.5}) {
		t.Errorf("velocity after 1 step = %v, want (0.2, 0.5)", a.Velocity())
	}
	if !approxVec(a.Location(), vec.Vec{X: 100.2, Y: 100.5}) {
		t.Errorf("location after 1 step = %v, want (100.2, 100.5)", a.Location())
	}

	w.Step()
	if !approxVec(a.Velocity(), vec.Vec{X: 0.4, Y: 1}) {
		t.Errorf("velocity after 2 steps = %v, want (0.4, 1)", a.Velocity())
	}
}

func TestFrictionOpposesMotion(t *testing.T) {
	w, err := NewWorld(WorldConfig{Width: 800, Height: 600, C: 0.5})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	a := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 2, Y: 0},
		Mass:     1,
	})
	still := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 300, Y: 300}, Mass: 1})

	w.Step()

	if !approxVec(a.Velocity(), vec.Vec{X: 1.5, Y: 0}) {
		t.Errorf("velocity = %v, want (1.5, 0)", a.Velocity())
	}
	if still.Velocity() != (vec.Vec{}) {
		t.Errorf("velocity at rest = %v, want zero", still.Velocity())
	}
}

func TestMaxSpeedZeroDisablesClamp(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 100, Y: 0},
	})

	w.Step()

	if !approxVec(a.Velocity(), vec.Vec{X: 100, Y: 0}) {
		t.Errorf("velocity = %v, want (100, 0) with no clamp", a.Velocity())
	}
	if !approxVec(a.Location(), vec.Vec{X: 200, Y: 100}) {
		t.Errorf("location = %v, want (200, 100)", a.Location())
	}
}

func TestSpeedClamps(t *testing.T) {
	w := testWorld(t, 800, 600)
	fast := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 3, Y: 4},
		MaxSpeed: 2.5,
	})
	slow := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 300, Y: 100},
		Velocity: vec.Vec{X: 1, Y: 0},
		MaxSpeed: 10,
		MinSpeed: 3,
	})

	w.Step()

	if !approxVec(fast.Velocity(), vec.Vec{X: 1.5, Y: 2}) {
		t.Errorf("clamped velocity = %v, want (1.5, 2)", fast.Velocity())
	}
	if !approxVec(slow.Velocity(), vec.Vec{X: 3, Y: 0}) {
		t.Errorf("scaled-up velocity = %v, want (3, 0)", slow.Velocity())
	}
}

func TestMotorDrivesTowardMotorSpeed(t *testing.T) {
	tests := []struct {
		name    string
		vel     vec.Vec
		wantVel vec.Vec
	}{
		{"accelerates", vec.Vec{X: 0.5, Y: 0}, vec.Vec{X: 2.5, Y: 0}},
		{"brakes when faster", vec.Vec{X: 5, Y: 0}, vec.Vec{X: 3, Y: 0}},
		{"no heading at rest", vec.Vec{}, vec.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, 800, 600)
			a := mustSpawn(t, w, AgentConfig{
				Location:   vec.Vec{X: 100, Y: 100},
				Velocity:   tt.vel,
				Mass:       1,
				MotorSpeed: 2,
			})

			w.Step()

			if !approxVec(a.Velocity(), tt.wantVel) {
				t.Errorf("velocity = %v, want %v", a.Velocity(), tt.wantVel)
			}
		})
	}
}

func TestSensorSuppressesMotor(t *testing.T) {
	w := testWorld(t, 800, 600)
	mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 110, Y: 100}, Static: true})

	sensor, err := NewProximitySensor(ProximitySensorConfig{
		TargetKind: "prey",
		Range:      50,
		Response:   ResponseDecelerate,
		Strength:   0.5,
	})
	if err != nil {
		t.Fatalf("NewProximitySensor: %v", err)
	}
	sensed := mustSpawn(t, w, AgentConfig{
		Location:   vec.Vec{X: 100, Y: 100},
		Velocity:   vec.Vec{X: 1, Y: 0},
		Mass:       1,
		MotorSpeed: 5,
		Sensors:    []Sensor{sensor},
	})
	unsensed := mustSpawn(t, w, AgentConfig{
		Location:   vec.Vec{X: 600, Y: 400},
		Velocity:   vec.Vec{X: 1, Y: 0},
		Mass:       1,
		MotorSpeed: 5,
	})

	w.Step()

	// Activated sensor applies its own force and the motor stays off.
	if !approxVec(sensed.Velocity(), vec.Vec{X: 0.5, Y: 0}) {
		t.Errorf("sensed velocity = %v, want (0.5, 0)", sensed.Velocity())
	}
	if !approxVec(unsensed.Velocity(), vec.Vec{X: 6, Y: 0}) {
		t.Errorf("unsensed velocity = %v, want (6, 0) from the motor", unsensed.Velocity())
	}
}

func TestSensorResponsesThroughStep(t *testing.T) {
	tests := []struct {
		name     string
		response SensorResponse
		wantVel  vec.Vec
	}{
		// Prey 10 away: seek ramps 4*10/400, flee leaves at full speed.
		{"seek", ResponseSeek, vec.Vec{X: 0.1, Y: 0}},
		{"flee", ResponseFlee, vec.Vec{X: -4, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, 800, 600)
			mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 110, Y: 100}, Static: true})

			sensor, err := NewProximitySensor(ProximitySensorConfig{
				TargetKind: "prey",
				Range:      50,
				Response:   tt.response,
			})
			if err != nil {
				t.Fatalf("NewProximitySensor: %v", err)
			}
			a := mustSpawn(t, w, AgentConfig{
				Location: vec.Vec{X: 100, Y: 100},
				Mass:     1,
				MaxSpeed: 4,
				Sensors:  []Sensor{sensor},
			})

			w.Step()

			if !approxVec(a.Velocity(), tt.wantVel) {
				t.Errorf("velocity = %v, want %v", a.Velocity(), tt.wantVel)
			}
		})
	}
}

func TestSensorPlacedAtPolarOffset(t *testing.T) {
	w := testWorld(t, 800, 600)
	mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 100, Y: 130}, Static: true})

	sensor, err := NewProximitySensor(ProximitySensorConfig{
		TargetKind:     "prey",
		Range:          15,
		OffsetDistance: 20,
	})
	if err != nil {
		t.Fatalf("NewProximitySensor: %v", err)
	}
	mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Angle:    90,
		MaxSpeed: 4,
		Sensors:  []Sensor{sensor},
	})

	w.Step()

	// Prey is 30 from the carrier but 10 from the offset sensor.
	if !sensor.Activated() {
		t.Fatal("sensor did not activate")
	}
	if !approxVec(sensor.Location(), vec.Vec{X: 100, Y: 120}) {
		t.Errorf("sensor location = %v, want (100, 120)", sensor.Location())
	}
}

func TestPointToDirection(t *testing.T) {
	tests := []struct {
		name      string
		vel       vec.Vec
		wantAngle float64
	}{
		{"east", vec.Vec{X: 2, Y: 0}, 0},
		{"north", vec.Vec{X: 0, Y: 2}, 90},
		{"west", vec.Vec{X: -2, Y: 0}, 180},
		{"slow keeps angle", vec.Vec{X: 0.05, Y: 0}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, 800, 600)
			a := mustSpawn(t, w, AgentConfig{
				Location:         vec.Vec{X: 400, Y: 300},
				Velocity:         tt.vel,
				Angle:            45,
				PointToDirection: true,
			})

			w.Step()

			if !approxEq(a.Angle(), tt.wantAngle) {
				t.Errorf("angle = %v, want %v", a.Angle(), tt.wantAngle)
			}
		})
	}
}

func TestLifespanInfiniteByDefault(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}})

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if a.Lifespan() != -1 {
		t.Errorf("lifespan = %d, want -1 after stepping", a.Lifespan())
	}
}

func TestAccelerationResetsEachStep(t *testing.T) {
	w, err := NewWorld(WorldConfig{Width: 800, Height: 600, Gravity: vec.Vec{Y: 1}})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Mass: 1})

	a.ApplyForce(vec.Vec{X: 3, Y: 0})
	w.Step()

	if a.Acceleration() != (vec.Vec{}) {
		t.Errorf("acceleration after step = %v, want zero", a.Acceleration())
	}
	if !approxVec(a.Velocity(), vec.Vec{X: 3, Y: 1}) {
		t.Errorf("velocity = %v, want (3, 1)", a.Velocity())
	}

	// The external force is gone; only gravity accumulates again.
	w.Step()
	if !approxVec(a.Velocity(), vec.Vec{X: 3, Y: 2}) {
		t.Errorf("velocity after 2 steps = %v, want (3, 2)", a.Velocity())
	}
}

func TestApplyForceDividesByMass(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Mass: 4})

	a.ApplyForce(vec.Vec{X: 8, Y: 0})
	if !approxVec(a.Acceleration(), vec.Vec{X: 2, Y: 0}) {
		t.Errorf("acceleration = %v, want (2, 0)", a.Acceleration())
	}
}

func TestParentOffset(t *testing.T) {
	w := testWorld(t, 800, 600)
	parent := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 300, Y: 300},
		Angle:    180,
		Static:   true,
	})
	offset := mustSpawn(t, w, AgentConfig{
		Location:       vec.Vec{X: 100, Y: 100},
		Parent:         parent.ID(),
		OffsetDistance: 10,
	})
	copied := mustSpawn(t, w, AgentConfig{
		Location:    vec.Vec{X: 100, Y: 100},
		Parent:      parent.ID(),
		OffsetAngle: 45,
	})
	dangling := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 1, Y: 0},
		Parent:   9999,
	})

	w.Step()

	// Offset rides at parent.angle + offsetAngle: 180 degrees puts it left.
	if !approxVec(offset.Location(), vec.Vec{X: 290, Y: 300}) {
		t.Errorf("offset child location = %v, want (290, 300)", offset.Location())
	}
	// Zero distance copies the parent location exactly.
	if copied.Location() != parent.Location() {
		t.Errorf("copied child location = %v, want exactly %v", copied.Location(), parent.Location())
	}
	// Unresolvable parent leaves the integrated location alone.
	if !approxVec(dangling.Location(), vec.Vec{X: 101, Y: 100}) {
		t.Errorf("dangling child location = %v, want (101, 100)", dangling.Location())
	}
}

func TestParentReadsSnapshot(t *testing.T) {
	w := testWorld(t, 800, 600)
	parent := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 300, Y: 300},
		Velocity: vec.Vec{X: 5, Y: 0},
	})
	child := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Parent:   parent.ID(),
	})

	w.Step()

	// The parent moved this frame; the child sees where it started.
	if !approxVec(parent.Location(), vec.Vec{X: 305, Y: 300}) {
		t.Errorf("parent location = %v, want (305, 300)", parent.Location())
	}
	if !approxVec(child.Location(), vec.Vec{X: 300, Y: 300}) {
		t.Errorf("child location = %v, want the snapshot (300, 300)", child.Location())
	}

	w.Step()
	if !approxVec(child.Location(), vec.Vec{X: 305, Y: 300}) {
		t.Errorf("child location = %v, want (305, 300) one frame behind", child.Location())
	}
}

func TestControlCamera(t *testing.T) {
	w := testWorld(t, 800, 600)
	mustSpawn(t, w, AgentConfig{
		Location:      vec.Vec{X: 400, Y: 300},
		Velocity:      vec.Vec{X: 2, Y: 1},
		ControlCamera: true,
	})

	w.Step()

	if !approxVec(w.Location, vec.Vec{X: -2, Y: -1}) {
		t.Errorf("world location = %v, want (-2, -1)", w.Location)
	}
}

func TestControlCameraAcrossWrap(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{
		Location:      vec.Vec{X: 799, Y: 300},
		Velocity:      vec.Vec{X: 2, Y: 0},
		WrapEdges:     true,
		ControlCamera: true,
	})

	w.Step()

	if !approxEq(a.LocationX(), 0) {
		t.Errorf("agent x = %v, want 0 after wrapping", a.LocationX())
	}
	// Camera moves -velocity, then takes back the wrap displacement:
	// -2 + (801 - 0) = 799.
	if !approxVec(w.Location, vec.Vec{X: 799, Y: 0}) {
		t.Errorf("world location = %v, want (799, 0)", w.Location)
	}
}

func TestLiquidDragThroughStep(t *testing.T) {
	w := testWorld(t, 800, 600)
	if _, err := w.AddLiquid(LiquidConfig{Location: vec.Vec{X: 100, Y: 100}, C: 1}); err != nil {
		t.Fatalf("AddLiquid: %v", err)
	}
	inside := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 5, Y: 0},
		Mass:     1,
	})
	outside := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 500, Y: 400},
		Velocity: vec.Vec{X: 5, Y: 0},
		Mass:     1,
	})

	w.Step()

	if !approxVec(inside.Velocity(), vec.Vec{X: -20, Y: 0}) {
		t.Errorf("velocity in liquid = %v, want (-20, 0)", inside.Velocity())
	}
	if !approxVec(outside.Velocity(), vec.Vec{X: 5, Y: 0}) {
		t.Errorf("velocity outside liquid = %v, want unchanged (5, 0)", outside.Velocity())
	}
}

func TestEmittersThroughStep(t *testing.T) {
	t.Run("attractor pulls", func(t *testing.T) {
		w := testWorld(t, 800, 600)
		if _, err := w.AddAttractor(AttractorConfig{Location: vec.Vec{X: 200, Y: 100}, G: 10}); err != nil {
			t.Fatalf("AddAttractor: %v", err)
		}
		a := mustSpawn(t, w, AgentConfig{
			Location: vec.Vec{X: 100, Y: 100},
			Mass:     1,
			Width:    10,
			Height:   10,
		})

		w.Step()
		if !approxVec(a.Velocity(), vec.Vec{X: 0.1, Y: 0}) {
			t.Errorf("velocity = %v, want (0.1, 0) toward the attractor", a.Velocity())
		}
	})

	t.Run("repeller pushes", func(t *testing.T) {
		w := testWorld(t, 800, 600)
		if _, err := w.AddRepeller(RepellerConfig{Location: vec.Vec{X: 200, Y: 100}}); err != nil {
			t.Fatalf("AddRepeller: %v", err)
		}
		a := mustSpawn(t, w, AgentConfig{
			Location: vec.Vec{X: 100, Y: 100},
			Mass:     1,
			Width:    10,
			Height:   10,
		})

		w.Step()
		if !approxVec(a.Velocity(), vec.Vec{X: -0.1, Y: 0}) {
			t.Errorf("velocity = %v, want (-0.1, 0) away from the repeller", a.Velocity())
		}
	})
}

func TestFollowMouseSeeks(t *testing.T) {
	w := testWorld(t, 800, 600)
	w.SetMouse(vec.Vec{X: 700, Y: 100})
	a := mustSpawn(t, w, AgentConfig{
		Location:    vec.Vec{X: 100, Y: 100},
		Mass:        1,
		MaxSpeed:    4,
		FollowMouse: true,
	})

	w.Step()

	if !approxVec(a.Velocity(), vec.Vec{X: 4, Y: 0}) {
		t.Errorf("velocity = %v, want (4, 0) toward the mouse", a.Velocity())
	}
}

func TestSeekTargetUsesSnapshot(t *testing.T) {
	w := testWorld(t, 800, 600)
	target := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Velocity: vec.Vec{X: 10, Y: 0},
	})
	chaser := mustSpawn(t, w, AgentConfig{
		Location:   vec.Vec{X: 500, Y: 100},
		Mass:       1,
		MaxSpeed:   4,
		SeekTarget: target.ID(),
	})
	lost := mustSpawn(t, w, AgentConfig{
		Location:   vec.Vec{X: 600, Y: 400},
		Mass:       1,
		MaxSpeed:   4,
		SeekTarget: 9999,
	})

	w.Step()

	// Snapshot distance is exactly 400 (half the world width), so the
	// desired speed is full MaxSpeed; the live target at 390 would ramp
	// down to 3.9.
	if !approxVec(chaser.Velocity(), vec.Vec{X: -4, Y: 0}) {
		t.Errorf("chaser velocity = %v, want (-4, 0)", chaser.Velocity())
	}
	if lost.Velocity() != (vec.Vec{}) {
		t.Errorf("lost chaser velocity = %v, want zero for a dangling target", lost.Velocity())
	}
}

func TestFollowTargetUsesRawVector(t *testing.T) {
	w := testWorld(t, 800, 600)
	beacon := mustSpawn(t, w, AgentConfig{
		Kind:     "beacon",
		Location: vec.Vec{X: 0.5, Y: 0.25},
		Static:   true,
	})

	// Two followers far apart get the same force: follow scales the
	// target location directly instead of subtracting its own.
	f1 := mustSpawn(t, w, AgentConfig{
		Location:     vec.Vec{X: 600, Y: 400},
		Mass:         1,
		MaxSpeed:     4,
		FollowTarget: beacon.ID(),
	})
	f2 := mustSpawn(t, w, AgentConfig{
		Location:     vec.Vec{X: 200, Y: 100},
		Mass:         1,
		MaxSpeed:     4,
		FollowTarget: beacon.ID(),
	})

	w.Step()

	want := vec.Vec{X: 2, Y: 1}
	if !approxVec(f1.Velocity(), want) {
		t.Errorf("f1 velocity = %v, want %v", f1.Velocity(), want)
	}
	if !approxVec(f2.Velocity(), want) {
		t.Errorf("f2 velocity = %v, want %v", f2.Velocity(), want)
	}
}

func TestFlockingThroughStep(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{
		Location: vec.Vec{X: 100, Y: 100},
		Mass:     1,
		MaxSpeed: 4,
		Flocking: true,
	})
	mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 105, Y: 100}})

	w.Step()

	// Same net force as calling flock directly: (-1.2 + 0.4) / mass 1.
	if !approxVec(a.Velocity(), vec.Vec{X: -0.8, Y: 0}) {
		t.Errorf("velocity = %v, want (-0.8, 0)", a.Velocity())
	}
}

func TestStepTickAdvances(t *testing.T) {
	w := testWorld(t, 800, 600)
	if w.Tick() != 0 {
		t.Fatalf("initial tick = %d, want 0", w.Tick())
	}
	w.Step()
	w.Step()
	if w.Tick() != 2 {
		t.Errorf("tick = %d, want 2", w.Tick())
	}
}

func TestHeadingAngleMath(t *testing.T) {
	if got := radToDeg(math.Atan2(1, 1)); !approxEq(got, 45) {
		t.Errorf("radToDeg(atan2(1,1)) = %v, want 45", got)
	}
	if got := polarOffset(vec.Vec{X: 10, Y: 10}, 5, 0); !approxVec(got, vec.Vec{X: 15, Y: 10}) {
		t.Errorf("polarOffset east = %v, want (15, 10)", got)
	}
	if got := polarOffset(vec.Vec{X: 10, Y: 10}, 5, 90); !approxVec(got, vec.Vec{X: 10, Y: 15}) {
		t.Errorf("polarOffset north = %v, want (10, 15)", got)
	}
}
