package motion

import "github.com/pthm-cable/drift/vec"

// ElementState is the frame snapshot of one element's observable state.
// Agents read these instead of live elements so every step within a frame
// sees the previous frame's finalized values.
type ElementState struct {
	ID       uint32
	Kind     string
	Location vec.Vec
	Velocity vec.Vec
	Angle    float64
	Width    float64
	Height   float64
	Mass     float64
}

// EmitterState extends an element snapshot with the gravitational constant
// of an attractor or repeller.
type EmitterState struct {
	ElementState
	G float64
}

// LiquidState extends an element snapshot with a drag coefficient.
type LiquidState struct {
	ElementState
	C float64
}

// Attractor pulls agents toward itself with an inverse-square force.
// A negative G turns it into a push; Repeller exists so scenarios read
// naturally and registries stay separate.
type Attractor struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	Mass     float64
	G        float64

	id uint32
}

// ID returns the world-assigned element id.
func (at *Attractor) ID() uint32 { return at.id }

func (at *Attractor) state() EmitterState {
	return EmitterState{
		ElementState: ElementState{
			ID:       at.id,
			Kind:     at.Kind,
			Location: at.Location,
			Width:    at.Width,
			Height:   at.Height,
			Mass:     at.Mass,
		},
		G: at.G,
	}
}

// Repeller pushes agents away from itself. Same force law as Attractor
// with the sign carried by G.
type Repeller struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	Mass     float64
	G        float64

	id uint32
}

// ID returns the world-assigned element id.
func (r *Repeller) ID() uint32 { return r.id }

func (r *Repeller) state() EmitterState {
	return EmitterState{
		ElementState: ElementState{
			ID:       r.id,
			Kind:     r.Kind,
			Location: r.Location,
			Width:    r.Width,
			Height:   r.Height,
			Mass:     r.Mass,
		},
		G: r.G,
	}
}

// Liquid is a rectangular drag region. Agents whose bounding box overlaps
// it are slowed by quadratic drag proportional to C.
type Liquid struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	C        float64

	id uint32
}

// ID returns the world-assigned element id.
func (l *Liquid) ID() uint32 { return l.id }

func (l *Liquid) state() LiquidState {
	return LiquidState{
		ElementState: ElementState{
			ID:       l.id,
			Kind:     l.Kind,
			Location: l.Location,
			Width:    l.Width,
			Height:   l.Height,
		},
		C: l.C,
	}
}

// AttractorConfig configures AddAttractor. Zero values fall back to
// defaults: kind "attractor", size 100x100, mass 100, G 10.
type AttractorConfig struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	Mass     float64
	G        float64
}

func (cfg AttractorConfig) withDefaults() AttractorConfig {
	if cfg.Kind == "" {
		cfg.Kind = "attractor"
	}
	if cfg.Width == 0 {
		cfg.Width = 100
	}
	if cfg.Height == 0 {
		cfg.Height = 100
	}
	if cfg.Mass == 0 {
		cfg.Mass = 100
	}
	if cfg.G == 0 {
		cfg.G = 10
	}
	return cfg
}

func (cfg AttractorConfig) validate() error {
	v := validator{subject: "attractor"}
	v.vec("location", cfg.Location)
	v.positive("width", cfg.Width)
	v.positive("height", cfg.Height)
	v.positive("mass", cfg.Mass)
	v.finite("g", cfg.G)
	return v.err()
}

// RepellerConfig configures AddRepeller. Defaults mirror AttractorConfig
// with kind "repeller" and G -10.
type RepellerConfig struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	Mass     float64
	G        float64
}

func (cfg RepellerConfig) withDefaults() RepellerConfig {
	if cfg.Kind == "" {
		cfg.Kind = "repeller"
	}
	if cfg.Width == 0 {
		cfg.Width = 100
	}
	if cfg.Height == 0 {
		cfg.Height = 100
	}
	if cfg.Mass == 0 {
		cfg.Mass = 100
	}
	if cfg.G == 0 {
		cfg.G = -10
	}
	return cfg
}

func (cfg RepellerConfig) validate() error {
	v := validator{subject: "repeller"}
	v.vec("location", cfg.Location)
	v.positive("width", cfg.Width)
	v.positive("height", cfg.Height)
	v.positive("mass", cfg.Mass)
	v.finite("g", cfg.G)
	return v.err()
}

// LiquidConfig configures AddLiquid. Zero values fall back to kind
// "liquid", size 100x100, c 1.
type LiquidConfig struct {
	Kind     string
	Location vec.Vec
	Width    float64
	Height   float64
	C        float64
}

func (cfg LiquidConfig) withDefaults() LiquidConfig {
	if cfg.Kind == "" {
		cfg.Kind = "liquid"
	}
	if cfg.Width == 0 {
		cfg.Width = 100
	}
	if cfg.Height == 0 {
		cfg.Height = 100
	}
	if cfg.C == 0 {
		cfg.C = 1
	}
	return cfg
}

func (cfg LiquidConfig) validate() error {
	v := validator{subject: "liquid"}
	v.vec("location", cfg.Location)
	v.positive("width", cfg.Width)
	v.positive("height", cfg.Height)
	v.nonNegative("c", cfg.C)
	return v.err()
}
