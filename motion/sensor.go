package motion

import (
	"fmt"

	"github.com/pthm-cable/drift/vec"
)

// Sensor is a positioned probe carried by an agent. Every step the agent
// places the sensor at its polar offset, scans it against the frame, and,
// when the sensor activates, applies its force instead of the motor force.
type Sensor interface {
	// Offset returns the polar offset (distance, angle in degrees) from
	// the carrier at which the sensor rides.
	Offset() (distance, angle float64)
	// Place updates the sensor's world position. Called by the carrier
	// every step before Scan.
	Place(loc vec.Vec)
	// Scan re-evaluates the sensor against the frame snapshot and reports
	// whether it activated.
	Scan(f *Frame) bool
	// ActivationForce returns the force the activated sensor exerts on
	// its carrier.
	ActivationForce(carrier *Agent) vec.Vec
}

// SensorResponse selects what an activated ProximitySensor does to its
// carrier.
type SensorResponse uint8

const (
	// ResponseSeek steers the carrier toward the detected element.
	ResponseSeek SensorResponse = iota
	// ResponseFlee steers the carrier away at full speed.
	ResponseFlee
	// ResponseAccelerate pushes the carrier along its current heading.
	ResponseAccelerate
	// ResponseDecelerate pushes against the carrier's current heading.
	ResponseDecelerate
)

// String returns the config-file name of the response.
func (r SensorResponse) String() string {
	switch r {
	case ResponseSeek:
		return "seek"
	case ResponseFlee:
		return "flee"
	case ResponseAccelerate:
		return "accelerate"
	case ResponseDecelerate:
		return "decelerate"
	}
	return "unknown"
}

// ParseResponse maps a config string to a SensorResponse.
func ParseResponse(s string) (SensorResponse, error) {
	switch s {
	case "seek":
		return ResponseSeek, nil
	case "flee":
		return ResponseFlee, nil
	case "accelerate":
		return ResponseAccelerate, nil
	case "decelerate":
		return ResponseDecelerate, nil
	}
	return 0, fmt.Errorf("unknown sensor response %q", s)
}

// ProximitySensorConfig configures NewProximitySensor. TargetKind should
// differ from the carrier's Kind or the sensor will detect its own
// carrier. Strength only applies to the accelerate/decelerate responses
// and defaults to 1.
type ProximitySensorConfig struct {
	TargetKind     string
	Range          float64
	Response       SensorResponse
	Strength       float64
	OffsetDistance float64
	OffsetAngle    float64
}

// ProximitySensor activates when an element of TargetKind comes within
// Range of the sensor's position, remembering the nearest such element.
type ProximitySensor struct {
	TargetKind string
	Range      float64
	Response   SensorResponse
	Strength   float64

	offsetDistance float64
	offsetAngle    float64
	location       vec.Vec
	active         bool
	target         vec.Vec
}

// NewProximitySensor validates cfg and builds the sensor.
func NewProximitySensor(cfg ProximitySensorConfig) (*ProximitySensor, error) {
	if cfg.Strength == 0 {
		cfg.Strength = 1
	}
	v := validator{subject: "proximity sensor"}
	if cfg.TargetKind == "" {
		v.reject("targetKind", "must not be empty")
	}
	v.positive("range", cfg.Range)
	v.positive("strength", cfg.Strength)
	v.nonNegative("offsetDistance", cfg.OffsetDistance)
	v.finite("offsetAngle", cfg.OffsetAngle)
	if err := v.err(); err != nil {
		return nil, err
	}
	return &ProximitySensor{
		TargetKind:     cfg.TargetKind,
		Range:          cfg.Range,
		Response:       cfg.Response,
		Strength:       cfg.Strength,
		offsetDistance: cfg.OffsetDistance,
		offsetAngle:    cfg.OffsetAngle,
	}, nil
}

// Offset returns the polar offset from the carrier.
func (s *ProximitySensor) Offset() (float64, float64) {
	return s.offsetDistance, s.offsetAngle
}

// Place updates the sensor's world position.
func (s *ProximitySensor) Place(loc vec.Vec) {
	s.location = loc
}

// Location returns the sensor's current world position.
func (s *ProximitySensor) Location() vec.Vec {
	return s.location
}

// Activated reports the result of the last Scan.
func (s *ProximitySensor) Activated() bool {
	return s.active
}

// Scan finds the nearest element of TargetKind within Range.
func (s *ProximitySensor) Scan(f *Frame) bool {
	s.active = false
	bestSq := s.Range * s.Range
	for i := range f.elements {
		e := &f.elements[i]
		if e.Kind != s.TargetKind {
			continue
		}
		dx := e.Location.X - s.location.X
		dy := e.Location.Y - s.location.Y
		dSq := dx*dx + dy*dy
		if dSq <= bestSq {
			bestSq = dSq
			s.target = e.Location
			s.active = true
		}
	}
	return s.active
}

// ActivationForce converts the detection into a steering force on the
// carrier.
func (s *ProximitySensor) ActivationForce(carrier *Agent) vec.Vec {
	switch s.Response {
	case ResponseFlee:
		return carrier.flee(s.target)
	case ResponseAccelerate:
		return headingForce(carrier, s.Strength)
	case ResponseDecelerate:
		return headingForce(carrier, -s.Strength)
	default:
		return carrier.seek(s.target)
	}
}

// headingForce returns a force of the given magnitude along the carrier's
// velocity direction. Zero velocity yields a zero force.
func headingForce(a *Agent, magnitude float64) vec.Vec {
	dir := a.velocity
	if dir.MagSq() == 0 {
		return vec.Vec{}
	}
	dir.Normalize()
	dir.Mult(magnitude)
	return dir
}

var _ Sensor = (*ProximitySensor)(nil)
