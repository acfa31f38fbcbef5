// Package motion implements a 2D force-based motion engine. Agents
// accumulate forces from the environment (gravity, wind, friction, liquid
// drag), proximity sources (attractors, repellers), steering behaviors
// (seek, flee, follow, flocking) and sensors, then integrate velocity and
// location once per frame under boundary and parenting policies. A World
// owns the element registries and steps all agents against a per-frame
// snapshot, so every agent observes the previous frame's finalized state
// of every other element.
package motion

import "github.com/pthm-cable/drift/vec"

// Agent is the stepping unit of the engine. Kinematic state (location,
// velocity, acceleration, angle) is owned by the agent and handed out only
// as copies; behavioral knobs are exported so drivers can tune them
// between frames.
type Agent struct {
	Kind string

	id    uint32
	world *World

	location     vec.Vec
	velocity     vec.Vec
	acceleration vec.Vec
	angle        float64 // degrees
	lifespan     int

	Mass   float64
	Width  float64
	Height float64

	MaxSpeed   float64 // 0 disables the max-speed clamp
	MinSpeed   float64 // 0 disables the min-speed scale-up
	MotorSpeed float64 // 0 disables the motor force

	MaxSteeringForce float64
	TurningRadius    float64
	Thrust           float64

	FollowMouse  bool
	SeekTarget   uint32
	FollowTarget uint32
	FlowField    uint32

	Flocking          bool
	DesiredSeparation float64
	AlignRadius       float64
	CohesionRadius    float64
	SeparateStrength  float64
	AlignStrength     float64
	CohesionStrength  float64

	CheckEdges         bool
	WrapEdges          bool
	AvoidEdges         bool
	AvoidEdgesStrength float64
	Bounciness         float64

	Parent         uint32
	OffsetDistance float64
	OffsetAngle    float64

	PointToDirection bool
	ControlCamera    bool

	// Static freezes physics permanently; Pressed freezes it while an
	// external drag holds the agent. Hooks still run for frozen agents.
	Static  bool
	Pressed bool

	Sensors []Sensor

	// BeforeStep and AfterStep run at the boundaries of every step when
	// set, frozen or not.
	BeforeStep func(*Agent)
	AfterStep  func(*Agent)
}

// AgentConfig configures World.Spawn. Zero values mean "default" for
// mass, sizes, steering force, flocking strengths and radii, and
// lifespan; they mean "disabled" for maxSpeed, minSpeed, motorSpeed,
// bounciness and every flag, since zero is meaningful for those.
type AgentConfig struct {
	Kind     string
	Location vec.Vec
	Velocity vec.Vec
	Angle    float64

	Mass   float64
	Width  float64
	Height float64

	MaxSpeed   float64
	MinSpeed   float64
	MotorSpeed float64

	MaxSteeringForce float64
	TurningRadius    float64
	Thrust           float64

	Lifespan int // 0 means infinite (-1); positive counts down per active step

	FollowMouse  bool
	SeekTarget   uint32
	FollowTarget uint32
	FlowField    uint32

	Flocking          bool
	DesiredSeparation float64
	AlignRadius       float64
	CohesionRadius    float64
	SeparateStrength  float64
	AlignStrength     float64
	CohesionStrength  float64

	CheckEdges         bool
	WrapEdges          bool
	AvoidEdges         bool
	AvoidEdgesStrength float64
	Bounciness         float64

	Parent         uint32
	OffsetDistance float64
	OffsetAngle    float64

	PointToDirection bool
	ControlCamera    bool
	Static           bool

	Sensors []Sensor

	BeforeStep func(*Agent)
	AfterStep  func(*Agent)
}

func (cfg AgentConfig) withDefaults() AgentConfig {
	if cfg.Kind == "" {
		cfg.Kind = "agent"
	}
	if cfg.Mass == 0 {
		cfg.Mass = 10
	}
	if cfg.Width == 0 {
		cfg.Width = 10
	}
	if cfg.Height == 0 {
		cfg.Height = 10
	}
	if cfg.MaxSteeringForce == 0 {
		cfg.MaxSteeringForce = 5
	}
	if cfg.DesiredSeparation == 0 {
		cfg.DesiredSeparation = cfg.Width * 2
	}
	if cfg.AlignRadius == 0 {
		cfg.AlignRadius = cfg.Width * 2
	}
	if cfg.CohesionRadius == 0 {
		cfg.CohesionRadius = 10
	}
	if cfg.SeparateStrength == 0 {
		cfg.SeparateStrength = 0.3
	}
	if cfg.AlignStrength == 0 {
		cfg.AlignStrength = 0.2
	}
	if cfg.CohesionStrength == 0 {
		cfg.CohesionStrength = 0.1
	}
	if cfg.AvoidEdgesStrength == 0 {
		cfg.AvoidEdgesStrength = 100
	}
	if cfg.Lifespan == 0 {
		cfg.Lifespan = -1
	}
	return cfg
}

func (cfg AgentConfig) validate() error {
	v := validator{subject: "agent"}
	v.vec("location", cfg.Location)
	v.vec("velocity", cfg.Velocity)
	v.finite("angle", cfg.Angle)
	v.positive("mass", cfg.Mass)
	v.positive("width", cfg.Width)
	v.positive("height", cfg.Height)
	v.nonNegative("maxSpeed", cfg.MaxSpeed)
	v.nonNegative("minSpeed", cfg.MinSpeed)
	v.nonNegative("motorSpeed", cfg.MotorSpeed)
	if cfg.MaxSpeed > 0 && cfg.MinSpeed > cfg.MaxSpeed {
		v.reject("minSpeed", "must not exceed maxSpeed")
	}
	v.positive("maxSteeringForce", cfg.MaxSteeringForce)
	v.nonNegative("turningRadius", cfg.TurningRadius)
	v.nonNegative("thrust", cfg.Thrust)
	if cfg.Lifespan < -1 {
		v.reject("lifespan", "must be -1 (infinite) or positive")
	}
	v.positive("desiredSeparation", cfg.DesiredSeparation)
	v.positive("alignRadius", cfg.AlignRadius)
	v.positive("cohesionRadius", cfg.CohesionRadius)
	v.nonNegative("separateStrength", cfg.SeparateStrength)
	v.nonNegative("alignStrength", cfg.AlignStrength)
	v.nonNegative("cohesionStrength", cfg.CohesionStrength)
	v.nonNegative("avoidEdgesStrength", cfg.AvoidEdgesStrength)
	v.nonNegative("bounciness", cfg.Bounciness)
	v.nonNegative("offsetDistance", cfg.OffsetDistance)
	v.finite("offsetAngle", cfg.OffsetAngle)
	for i, s := range cfg.Sensors {
		if s == nil {
			v.reject(fieldIndex("sensors", i), "must not be nil")
		}
	}
	return v.err()
}

// ID returns the world-assigned element id.
func (a *Agent) ID() uint32 { return a.id }

// Location returns a copy of the agent's position.
func (a *Agent) Location() vec.Vec { return a.location }

// Velocity returns a copy of the agent's velocity.
func (a *Agent) Velocity() vec.Vec { return a.velocity }

// Acceleration returns a copy of the accumulated acceleration. It is zero
// between frames since every step resets it.
func (a *Agent) Acceleration() vec.Vec { return a.acceleration }

// LocationX returns the x coordinate of the agent's position.
func (a *Agent) LocationX() float64 { return a.location.X }

// LocationY returns the y coordinate of the agent's position.
func (a *Agent) LocationY() float64 { return a.location.Y }

// VelocityX returns the x component of the agent's velocity.
func (a *Agent) VelocityX() float64 { return a.velocity.X }

// VelocityY returns the y component of the agent's velocity.
func (a *Agent) VelocityY() float64 { return a.velocity.Y }

// Angle returns the agent's heading in degrees.
func (a *Agent) Angle() float64 { return a.angle }

// Lifespan returns the remaining active steps, -1 meaning infinite.
func (a *Agent) Lifespan() int { return a.lifespan }

// MoveTo places the agent directly, bypassing integration. Intended for
// external drag drivers while the agent is Pressed.
func (a *Agent) MoveTo(loc vec.Vec) { a.location = loc }

// SetVelocity overwrites the agent's velocity, e.g. to throw a dragged
// agent on release.
func (a *Agent) SetVelocity(vel vec.Vec) { a.velocity = vel }

// ApplyForce accumulates an external force into the agent's acceleration,
// divided by mass.
func (a *Agent) ApplyForce(force vec.Vec) {
	force.Div(a.Mass)
	a.acceleration.Add(force)
}

func (a *Agent) state() ElementState {
	return ElementState{
		ID:       a.id,
		Kind:     a.Kind,
		Location: a.location,
		Velocity: a.velocity,
		Angle:    a.angle,
		Width:    a.Width,
		Height:   a.Height,
		Mass:     a.Mass,
	}
}
