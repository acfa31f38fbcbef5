package motion

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/drift/vec"
)

func testWorld(t *testing.T, width, height float64) *World {
	t.Helper()
	w, err := NewWorld(WorldConfig{Width: width, Height: height})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func mustSpawn(t *testing.T, w *World, cfg AgentConfig) *Agent {
	t.Helper()
	a, err := w.Spawn(cfg)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return a
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVec(v, want vec.Vec) bool {
	return approxEq(v.X, want.X) && approxEq(v.Y, want.Y)
}

func TestNewWorldValidates(t *testing.T) {
	tests := []struct {
		name    string
		cfg     WorldConfig
		wantErr bool
	}{
		{"valid", WorldConfig{Width: 800, Height: 600}, false},
		{"zero width", WorldConfig{Width: 0, Height: 600}, true},
		{"negative height", WorldConfig{Width: 800, Height: -10}, true},
		{"nan gravity", WorldConfig{Width: 800, Height: 600, Gravity: vec.Vec{Y: math.NaN()}}, true},
		{"negative c", WorldConfig{Width: 800, Height: 600, C: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWorld error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewWorldAppliesConfig(t *testing.T) {
	w, err := NewWorld(WorldConfig{
		Width:   800,
		Height:  600,
		Gravity: vec.Vec{Y: 0.1},
		Wind:    vec.Vec{X: 0.2},
		C:       0.01,
		Camera:  vec.Vec{X: 5, Y: -5},
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.Width() != 800 || w.Height() != 600 {
		t.Errorf("size = %v x %v, want 800 x 600", w.Width(), w.Height())
	}
	if w.Gravity.Y != 0.1 || w.Wind.X != 0.2 || w.C != 0.01 {
		t.Errorf("forces = %v %v %v, want gravity 0.1, wind 0.2, c 0.01", w.Gravity, w.Wind, w.C)
	}
	if !approxVec(w.Location, vec.Vec{X: 5, Y: -5}) {
		t.Errorf("Location = %v, want (5, -5)", w.Location)
	}
}

func TestElementIDsSequential(t *testing.T) {
	w := testWorld(t, 800, 600)

	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}})
	at, err := w.AddAttractor(AttractorConfig{Location: vec.Vec{X: 200, Y: 200}})
	if err != nil {
		t.Fatalf("AddAttractor: %v", err)
	}
	lq, err := w.AddLiquid(LiquidConfig{Location: vec.Vec{X: 300, Y: 300}})
	if err != nil {
		t.Fatalf("AddLiquid: %v", err)
	}
	rp, err := w.AddRepeller(RepellerConfig{Location: vec.Vec{X: 400, Y: 400}})
	if err != nil {
		t.Fatalf("AddRepeller: %v", err)
	}
	ff, err := w.AddFlowField(FlowFieldConfig{Resolution: 50})
	if err != nil {
		t.Fatalf("AddFlowField: %v", err)
	}
	b := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 500, Y: 500}})

	ids := []uint32{a.ID(), at.ID(), lq.ID(), rp.ID(), ff.ID(), b.ID()}
	for i, id := range ids {
		if id != uint32(i+1) {
			t.Errorf("id[%d] = %d, want %d", i, id, i+1)
		}
	}
}

func TestAgentsStepInSpawnOrder(t *testing.T) {
	w := testWorld(t, 800, 600)

	var order []uint32
	for i := 0; i < 3; i++ {
		mustSpawn(t, w, AgentConfig{
			Location: vec.Vec{X: float64(100 * (i + 1)), Y: 100},
			BeforeStep: func(a *Agent) {
				order = append(order, a.ID())
			},
		})
	}

	w.Step()

	want := []uint32{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("stepped %d agents, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("step order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	w := testWorld(t, 800, 600)

	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Lifespan: 1})
	b := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 200, Y: 100}})
	c := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 300, Y: 100}, Lifespan: 2})

	w.Step()
	if got := w.Sweep(); got != 1 {
		t.Errorf("Sweep after step 1 = %d, want 1", got)
	}
	agents := w.Agents()
	if len(agents) != 2 || agents[0] != b || agents[1] != c {
		t.Errorf("agents after sweep = %v, want [b c]", agents)
	}
	if a.Lifespan() != 0 {
		t.Errorf("a lifespan = %d, want 0", a.Lifespan())
	}

	w.Step()
	if got := w.Sweep(); got != 1 {
		t.Errorf("Sweep after step 2 = %d, want 1", got)
	}
	if agents := w.Agents(); len(agents) != 1 || agents[0] != b {
		t.Errorf("agents after second sweep = %v, want [b]", agents)
	}
	if b.Lifespan() != -1 {
		t.Errorf("b lifespan = %d, want -1 (infinite)", b.Lifespan())
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	w := testWorld(t, 800, 600)

	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}})
	b := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 200, Y: 100}})
	c := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 300, Y: 100}})

	if !w.Remove(b.ID()) {
		t.Fatal("Remove(b) = false, want true")
	}
	agents := w.Agents()
	if len(agents) != 2 || agents[0] != a || agents[1] != c {
		t.Errorf("agents after remove = %v, want [a c]", agents)
	}
	if w.Remove(9999) {
		t.Error("Remove(unknown) = true, want false")
	}

	at, err := w.AddAttractor(AttractorConfig{Location: vec.Vec{X: 400, Y: 400}})
	if err != nil {
		t.Fatalf("AddAttractor: %v", err)
	}
	if !w.Remove(at.ID()) {
		t.Error("Remove(attractor) = false, want true")
	}
	if len(w.Attractors()) != 0 {
		t.Errorf("attractors after remove = %d, want 0", len(w.Attractors()))
	}
}

func TestSnapshotFreezesState(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}})

	f := w.Snapshot()
	a.MoveTo(vec.Vec{X: 500, Y: 500})

	st, ok := f.Element(a.ID())
	if !ok {
		t.Fatal("Element(a) not found in frame")
	}
	if !approxVec(st.Location, vec.Vec{X: 100, Y: 100}) {
		t.Errorf("snapshot location = %v, want the pre-move (100, 100)", st.Location)
	}
}

func TestFrameElementLookup(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}})
	at, err := w.AddAttractor(AttractorConfig{Location: vec.Vec{X: 300, Y: 300}})
	if err != nil {
		t.Fatalf("AddAttractor: %v", err)
	}

	f := w.Snapshot()

	st, ok := f.Element(a.ID())
	if !ok || st.Kind != "agent" {
		t.Errorf("Element(agent) = %v, %v; want agent snapshot", st, ok)
	}
	st, ok = f.Element(at.ID())
	if !ok || st.Kind != "attractor" || st.Mass != 100 {
		t.Errorf("Element(attractor) = %v, %v; want attractor with mass 100", st, ok)
	}
	if _, ok := f.Element(9999); ok {
		t.Error("Element(unknown) = true, want false")
	}

	ats := f.Attractors()
	if len(ats) != 1 || ats[0].G != 10 {
		t.Errorf("Attractors() = %v, want one with default G 10", ats)
	}
}

func TestValidationListsEveryField(t *testing.T) {
	w := testWorld(t, 800, 600)

	_, err := w.Spawn(AgentConfig{
		Mass:     -1,
		Width:    math.NaN(),
		MaxSpeed: 2,
		MinSpeed: 5,
		Lifespan: -5,
	})
	if err == nil {
		t.Fatal("Spawn with invalid config returned nil error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error %v does not wrap ErrInvalidConfig", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %T is not a *ValidationError", err)
	}
	for _, field := range []string{"mass", "width", "minSpeed", "lifespan"} {
		found := false
		for _, f := range verr.Fields {
			if f.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("validation error missing field %q: %v", field, verr)
		}
	}
}

func TestSpawnDefaults(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, Width: 15})

	if a.Kind != "agent" {
		t.Errorf("Kind = %q, want agent", a.Kind)
	}
	if a.Mass != 10 {
		t.Errorf("Mass = %v, want 10", a.Mass)
	}
	if a.MaxSteeringForce != 5 {
		t.Errorf("MaxSteeringForce = %v, want 5", a.MaxSteeringForce)
	}
	if a.DesiredSeparation != 30 || a.AlignRadius != 30 {
		t.Errorf("separation/align radii = %v/%v, want width*2 = 30", a.DesiredSeparation, a.AlignRadius)
	}
	if a.CohesionRadius != 10 {
		t.Errorf("CohesionRadius = %v, want 10", a.CohesionRadius)
	}
	if a.SeparateStrength != 0.3 || a.AlignStrength != 0.2 || a.CohesionStrength != 0.1 {
		t.Errorf("strengths = %v/%v/%v, want 0.3/0.2/0.1",
			a.SeparateStrength, a.AlignStrength, a.CohesionStrength)
	}
	if a.MaxSpeed != 0 || a.MinSpeed != 0 || a.MotorSpeed != 0 {
		t.Errorf("speeds = %v/%v/%v, want all 0 (disabled)", a.MaxSpeed, a.MinSpeed, a.MotorSpeed)
	}
	if a.Lifespan() != -1 {
		t.Errorf("Lifespan = %d, want -1", a.Lifespan())
	}
}
