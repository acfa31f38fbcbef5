package motion

import (
	"errors"
	"testing"

	"github.com/pthm-cable/drift/vec"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		in      string
		want    SensorResponse
		wantErr bool
	}{
		{"seek", ResponseSeek, false},
		{"flee", ResponseFlee, false},
		{"accelerate", ResponseAccelerate, false},
		{"decelerate", ResponseDecelerate, false},
		{"explode", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResponse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResponse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseResponse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewProximitySensorValidates(t *testing.T) {
	_, err := NewProximitySensor(ProximitySensorConfig{})
	if err == nil {
		t.Fatal("NewProximitySensor with empty config returned nil error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error %v does not wrap ErrInvalidConfig", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %T is not a *ValidationError", err)
	}
	if len(verr.Fields) < 2 {
		t.Errorf("fields = %v, want both targetKind and range rejected", verr.Fields)
	}
}

func TestScanFindsNearestTarget(t *testing.T) {
	w := testWorld(t, 800, 600)
	near := mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 110, Y: 100}, Static: true})
	mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 130, Y: 100}, Static: true})
	mustSpawn(t, w, AgentConfig{Kind: "rock", Location: vec.Vec{X: 105, Y: 100}, Static: true})

	s, err := NewProximitySensor(ProximitySensorConfig{TargetKind: "prey", Range: 50})
	if err != nil {
		t.Fatalf("NewProximitySensor: %v", err)
	}
	s.Place(vec.Vec{X: 100, Y: 100})

	if !s.Scan(w.Snapshot()) {
		t.Fatal("Scan = false, want activation")
	}
	if !s.Activated() {
		t.Error("Activated = false after a positive Scan")
	}
	if !approxVec(s.target, near.Location()) {
		t.Errorf("target = %v, want the nearest prey at %v", s.target, near.Location())
	}
}

func TestScanRange(t *testing.T) {
	w := testWorld(t, 800, 600)
	mustSpawn(t, w, AgentConfig{Kind: "prey", Location: vec.Vec{X: 150, Y: 100}, Static: true})
	f := w.Snapshot()

	s, err := NewProximitySensor(ProximitySensorConfig{TargetKind: "prey", Range: 50})
	if err != nil {
		t.Fatalf("NewProximitySensor: %v", err)
	}

	// Exactly at range still counts.
	s.Place(vec.Vec{X: 100, Y: 100})
	if !s.Scan(f) {
		t.Error("Scan at distance 50 = false, want true")
	}

	s.Place(vec.Vec{X: 99, Y: 100})
	if s.Scan(f) {
		t.Error("Scan at distance 51 = true, want false")
	}
	if s.Activated() {
		t.Error("Activated = true after a negative Scan")
	}
}

func TestActivationForceAtRest(t *testing.T) {
	w := testWorld(t, 800, 600)
	a := mustSpawn(t, w, AgentConfig{Location: vec.Vec{X: 100, Y: 100}, MaxSpeed: 4})

	s, err := NewProximitySensor(ProximitySensorConfig{
		TargetKind: "prey",
		Range:      50,
		Response:   ResponseAccelerate,
		Strength:   2,
	})
	if err != nil {
		t.Fatalf("NewProximitySensor: %v", err)
	}

	// Accelerate has no direction without velocity.
	if got := s.ActivationForce(a); got != (vec.Vec{}) {
		t.Errorf("ActivationForce at rest = %v, want zero", got)
	}

	a.SetVelocity(vec.Vec{X: 1, Y: 0})
	if got := s.ActivationForce(a); !approxVec(got, vec.Vec{X: 2, Y: 0}) {
		t.Errorf("ActivationForce = %v, want (2, 0)", got)
	}
}
