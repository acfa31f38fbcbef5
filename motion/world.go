package motion

import "github.com/pthm-cable/drift/vec"

// WorldConfig sets the dimensions and ambient forces of a world.
// Gravity, Wind and C all default to zero, meaning disabled.
type WorldConfig struct {
	Width   float64
	Height  float64
	Gravity vec.Vec
	Wind    vec.Vec
	C       float64
	Camera  vec.Vec
}

func (cfg WorldConfig) validate() error {
	v := validator{subject: "world"}
	v.positive("width", cfg.Width)
	v.positive("height", cfg.Height)
	v.nonNegative("c", cfg.C)
	v.vec("gravity", cfg.Gravity)
	v.vec("wind", cfg.Wind)
	v.vec("camera", cfg.Camera)
	return v.err()
}

// World owns every element and drives the simulation. Location is the
// camera offset; agents with ControlCamera write it during their step,
// and it is the only cross-element state that mutates mid-frame.
type World struct {
	Gravity  vec.Vec
	Wind     vec.Vec
	C        float64
	Location vec.Vec

	width  float64
	height float64
	mouse  vec.Vec
	tick   int64
	nextID uint32

	agents     []*Agent
	attractors []*Attractor
	repellers  []*Repeller
	liquids    []*Liquid
	fields     []*FlowField

	grid  *spatialGrid
	frame Frame
}

// NewWorld validates cfg and builds an empty world.
func NewWorld(cfg WorldConfig) (*World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &World{
		Gravity:  cfg.Gravity,
		Wind:     cfg.Wind,
		C:        cfg.C,
		Location: cfg.Camera,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

func (w *World) Width() float64 { return w.width }

func (w *World) Height() float64 { return w.height }

func (w *World) Tick() int64 { return w.tick }

// SetMouse records the pointer position sampled into the next frame.
func (w *World) SetMouse(loc vec.Vec) { w.mouse = loc }

func (w *World) Mouse() vec.Vec { return w.mouse }

// Spawn validates cfg, fills defaults and registers a new agent. Agents
// step in spawn order.
func (w *World) Spawn(cfg AgentConfig) (*Agent, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w.nextID++
	a := &Agent{
		id:    w.nextID,
		world: w,

		Kind:     cfg.Kind,
		Mass:     cfg.Mass,
		Width:    cfg.Width,
		Height:   cfg.Height,
		location: cfg.Location,
		velocity: cfg.Velocity,
		angle:    cfg.Angle,
		lifespan: cfg.Lifespan,

		MaxSpeed:         cfg.MaxSpeed,
		MinSpeed:         cfg.MinSpeed,
		MotorSpeed:       cfg.MotorSpeed,
		MaxSteeringForce: cfg.MaxSteeringForce,
		TurningRadius:    cfg.TurningRadius,
		Thrust:           cfg.Thrust,

		FollowMouse:  cfg.FollowMouse,
		SeekTarget:   cfg.SeekTarget,
		FollowTarget: cfg.FollowTarget,
		FlowField:    cfg.FlowField,

		Flocking:          cfg.Flocking,
		DesiredSeparation: cfg.DesiredSeparation,
		AlignRadius:       cfg.AlignRadius,
		CohesionRadius:    cfg.CohesionRadius,
		SeparateStrength:  cfg.SeparateStrength,
		AlignStrength:     cfg.AlignStrength,
		CohesionStrength:  cfg.CohesionStrength,

		CheckEdges:         cfg.CheckEdges,
		WrapEdges:          cfg.WrapEdges,
		AvoidEdges:         cfg.AvoidEdges,
		AvoidEdgesStrength: cfg.AvoidEdgesStrength,
		Bounciness:         cfg.Bounciness,

		Parent:           cfg.Parent,
		OffsetDistance:   cfg.OffsetDistance,
		OffsetAngle:      cfg.OffsetAngle,
		PointToDirection: cfg.PointToDirection,
		ControlCamera:    cfg.ControlCamera,
		Static:           cfg.Static,

		Sensors:    cfg.Sensors,
		BeforeStep: cfg.BeforeStep,
		AfterStep:  cfg.AfterStep,
	}
	w.agents = append(w.agents, a)
	return a, nil
}

// AddAttractor registers an attracting mass.
func (w *World) AddAttractor(cfg AttractorConfig) (*Attractor, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w.nextID++
	at := &Attractor{
		Kind:     cfg.Kind,
		Location: cfg.Location,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Mass:     cfg.Mass,
		G:        cfg.G,
		id:       w.nextID,
	}
	w.attractors = append(w.attractors, at)
	return at, nil
}

// AddRepeller registers a repelling mass.
func (w *World) AddRepeller(cfg RepellerConfig) (*Repeller, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w.nextID++
	rp := &Repeller{
		Kind:     cfg.Kind,
		Location: cfg.Location,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Mass:     cfg.Mass,
		G:        cfg.G,
		id:       w.nextID,
	}
	w.repellers = append(w.repellers, rp)
	return rp, nil
}

// AddLiquid registers a drag region.
func (w *World) AddLiquid(cfg LiquidConfig) (*Liquid, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w.nextID++
	lq := &Liquid{
		Kind:     cfg.Kind,
		Location: cfg.Location,
		Width:    cfg.Width,
		Height:   cfg.Height,
		C:        cfg.C,
		id:       w.nextID,
	}
	w.liquids = append(w.liquids, lq)
	return lq, nil
}

// AddFlowField registers an explicit direction grid.
func (w *World) AddFlowField(cfg FlowFieldConfig) (*FlowField, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	field := cfg.Field
	if field == nil {
		field = make(map[int]map[int]vec.Vec)
	}
	w.nextID++
	ff := &FlowField{Resolution: cfg.Resolution, Field: field, id: w.nextID}
	w.fields = append(w.fields, ff)
	return ff, nil
}

// AddNoiseFlowField builds a simplex-noise direction grid covering the
// world and registers it.
func (w *World) AddNoiseFlowField(cfg NoiseFieldConfig) (*FlowField, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w.nextID++
	ff := &FlowField{
		Resolution: cfg.Resolution,
		Field:      BuildNoiseGrid(cfg, w.width, w.height),
		id:         w.nextID,
	}
	w.fields = append(w.fields, ff)
	return ff, nil
}

func (w *World) Agents() []*Agent { return w.agents }

func (w *World) Attractors() []*Attractor { return w.attractors }

func (w *World) Repellers() []*Repeller { return w.repellers }

func (w *World) Liquids() []*Liquid { return w.liquids }

func (w *World) Fields() []*FlowField { return w.fields }

// Snapshot freezes the current state of every element into the world's
// frame buffer. The returned frame aliases world-owned storage and is
// invalidated by the next Snapshot or Step.
func (w *World) Snapshot() *Frame {
	f := &w.frame
	f.Tick = w.tick
	f.Mouse = w.mouse
	f.world = w
	f.indexed = false

	f.elements = f.elements[:0]
	for _, a := range w.agents {
		f.elements = append(f.elements, a.state())
	}
	f.attractors = f.attractors[:0]
	for _, at := range w.attractors {
		s := at.state()
		f.attractors = append(f.attractors, s)
		f.elements = append(f.elements, s.ElementState)
	}
	f.repellers = f.repellers[:0]
	for _, rp := range w.repellers {
		s := rp.state()
		f.repellers = append(f.repellers, s)
		f.elements = append(f.elements, s.ElementState)
	}
	f.liquids = f.liquids[:0]
	for _, lq := range w.liquids {
		s := lq.state()
		f.liquids = append(f.liquids, s)
		f.elements = append(f.elements, s.ElementState)
	}

	if f.byID == nil {
		f.byID = make(map[uint32]int, len(f.elements))
	} else {
		clear(f.byID)
	}
	for i := range f.elements {
		f.byID[f.elements[i].ID] = i
	}

	if f.fields == nil {
		f.fields = make(map[uint32]*FlowField, len(w.fields))
	} else {
		clear(f.fields)
	}
	for _, ff := range w.fields {
		f.fields[ff.id] = ff
	}
	return f
}

// Step advances the simulation one tick: snapshot, then step every agent
// in registration order against that snapshot.
func (w *World) Step() {
	w.tick++
	f := w.Snapshot()
	for _, a := range w.agents {
		a.Step(f)
	}
}

// Sweep removes agents whose lifespan has run out, preserving the
// stepping order of the rest. It returns the number removed.
func (w *World) Sweep() int {
	kept := w.agents[:0]
	for _, a := range w.agents {
		if a.lifespan == 0 {
			continue
		}
		kept = append(kept, a)
	}
	removed := len(w.agents) - len(kept)
	for i := len(kept); i < len(w.agents); i++ {
		w.agents[i] = nil
	}
	w.agents = kept
	return removed
}

// Remove deletes the element with the given id from whichever registry
// holds it, preserving order. References to the id held by other agents
// go dangling and are skipped at step time.
func (w *World) Remove(id uint32) bool {
	for i, a := range w.agents {
		if a.id == id {
			copy(w.agents[i:], w.agents[i+1:])
			w.agents[len(w.agents)-1] = nil
			w.agents = w.agents[:len(w.agents)-1]
			return true
		}
	}
	for i, at := range w.attractors {
		if at.id == id {
			copy(w.attractors[i:], w.attractors[i+1:])
			w.attractors[len(w.attractors)-1] = nil
			w.attractors = w.attractors[:len(w.attractors)-1]
			return true
		}
	}
	for i, rp := range w.repellers {
		if rp.id == id {
			copy(w.repellers[i:], w.repellers[i+1:])
			w.repellers[len(w.repellers)-1] = nil
			w.repellers = w.repellers[:len(w.repellers)-1]
			return true
		}
	}
	for i, lq := range w.liquids {
		if lq.id == id {
			copy(w.liquids[i:], w.liquids[i+1:])
			w.liquids[len(w.liquids)-1] = nil
			w.liquids = w.liquids[:len(w.liquids)-1]
			return true
		}
	}
	for i, ff := range w.fields {
		if ff.id == id {
			copy(w.fields[i:], w.fields[i+1:])
			w.fields[len(w.fields)-1] = nil
			w.fields = w.fields[:len(w.fields)-1]
			return true
		}
	}
	return false
}
