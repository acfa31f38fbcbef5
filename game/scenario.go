package game

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/vec"
)

// group tracks the spawned members of one scenario group along with
// the config they came from, so rendering and live tuning can reach
// them without scanning the whole world.
type group struct {
	cfg    config.GroupConfig
	color  rl.Color
	agents []*motion.Agent
}

// fieldState holds one flow field together with its animation epoch.
// Animated fields rebuild their grid every tick with an advancing epoch.
type fieldState struct {
	entry config.FlowFieldEntry
	field *motion.FlowField
	epoch float64
}

// scenario is a built world plus the bookkeeping the game layer needs.
// Rendering iterates the world's live agents and resolves colors by
// ID, so members removed by the sweep never draw.
type scenario struct {
	world  *motion.World
	groups []group
	fields []fieldState
	colors map[uint32]rl.Color
}

// buildScenario constructs a world from the configured scenario. Flow
// fields are added first so groups can reference them by name, then
// groups spawn their members, then targets and parents are wired in a
// second pass once every agent exists.
func buildScenario(cfg *config.Config, rng *rand.Rand) (*scenario, error) {
	world, err := motion.NewWorld(motion.WorldConfig{
		Width:   cfg.Derived.WorldW,
		Height:  cfg.Derived.WorldH,
		Gravity: vec.Vec{X: cfg.World.Gravity.X, Y: cfg.World.Gravity.Y},
		Wind:    vec.Vec{X: cfg.World.Wind.X, Y: cfg.World.Wind.Y},
		C:       cfg.World.C,
	})
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	sc := &scenario{
		world:  world,
		colors: make(map[uint32]rl.Color),
	}

	fieldIDs := make(map[string]uint32, len(cfg.Scenario.FlowFields))
	for _, entry := range cfg.Scenario.FlowFields {
		ff, err := world.AddNoiseFlowField(motion.NoiseFieldConfig{
			Resolution: entry.Resolution,
			Seed:       entry.Seed,
			Scale:      entry.Scale,
			Magnitude:  entry.Magnitude,
		})
		if err != nil {
			return nil, fmt.Errorf("flow field %q: %w", entry.Name, err)
		}
		fieldIDs[entry.Name] = ff.ID()
		sc.fields = append(sc.fields, fieldState{entry: entry, field: ff})
	}

	for _, gc := range cfg.Scenario.Groups {
		g, err := spawnGroup(world, gc, fieldIDs, rng)
		if err != nil {
			return nil, err
		}
		for _, a := range g.agents {
			sc.colors[a.ID()] = g.color
		}
		sc.groups = append(sc.groups, g)
	}

	if err := sc.wireTargets(cfg); err != nil {
		return nil, err
	}

	for i, entry := range cfg.Scenario.Attractors {
		_, err := world.AddAttractor(motion.AttractorConfig{
			Location: vec.Vec{X: entry.At.X, Y: entry.At.Y},
			Width:    entry.Width,
			Height:   entry.Height,
			Mass:     entry.Mass,
			G:        entry.G,
		})
		if err != nil {
			return nil, fmt.Errorf("attractor %d: %w", i, err)
		}
	}
	for i, entry := range cfg.Scenario.Repellers {
		_, err := world.AddRepeller(motion.RepellerConfig{
			Location: vec.Vec{X: entry.At.X, Y: entry.At.Y},
			Width:    entry.Width,
			Height:   entry.Height,
			Mass:     entry.Mass,
			G:        entry.G,
		})
		if err != nil {
			return nil, fmt.Errorf("repeller %d: %w", i, err)
		}
	}
	for i, entry := range cfg.Scenario.Liquids {
		_, err := world.AddLiquid(motion.LiquidConfig{
			Location: vec.Vec{X: entry.At.X, Y: entry.At.Y},
			Width:    entry.Width,
			Height:   entry.Height,
			C:        entry.C,
		})
		if err != nil {
			return nil, fmt.Errorf("liquid %d: %w", i, err)
		}
	}

	return sc, nil
}

// spawnGroup spawns the members of one group. Placement scatters
// within Spread of Center; a zero Spread with a set Center pins the
// member there, and a fully zero placement covers the whole world.
func spawnGroup(world *motion.World, gc config.GroupConfig, fieldIDs map[string]uint32, rng *rand.Rand) (group, error) {
	g := group{
		cfg:   gc,
		color: rl.Color{R: gc.Color.R, G: gc.Color.G, B: gc.Color.B, A: 255},
	}

	var fieldID uint32
	if gc.FlowField != "" {
		id, ok := fieldIDs[gc.FlowField]
		if !ok {
			return group{}, fmt.Errorf("group %q: unknown flow field %q", gc.Name, gc.FlowField)
		}
		fieldID = id
	}

	for i := 0; i < gc.Count; i++ {
		var loc vec.Vec
		switch {
		case gc.Spread > 0:
			loc = vec.Vec{
				X: gc.Center.X + (rng.Float64()*2-1)*gc.Spread,
				Y: gc.Center.Y + (rng.Float64()*2-1)*gc.Spread,
			}
		case gc.Center != (config.VecConfig{}):
			loc = vec.Vec{X: gc.Center.X, Y: gc.Center.Y}
		default:
			loc = vec.Vec{
				X: rng.Float64() * world.Width(),
				Y: rng.Float64() * world.Height(),
			}
		}

		var velocity vec.Vec
		if gc.Speed > 0 {
			theta := rng.Float64() * 2 * math.Pi
			velocity = vec.Vec{X: math.Cos(theta) * gc.Speed, Y: math.Sin(theta) * gc.Speed}
		}

		sensors, err := buildSensors(gc)
		if err != nil {
			return group{}, err
		}

		agent, err := world.Spawn(motion.AgentConfig{
			Kind:     gc.Kind,
			Location: loc,
			Velocity: velocity,
			Lifespan: gc.Lifespan,

			Mass:             gc.Mass,
			Width:            gc.Width,
			Height:           gc.Height,
			MaxSpeed:         gc.MaxSpeed,
			MinSpeed:         gc.MinSpeed,
			MotorSpeed:       gc.MotorSpeed,
			MaxSteeringForce: gc.MaxSteeringForce,

			FollowMouse: gc.FollowMouse,
			FlowField:   fieldID,

			Flocking:          gc.Flocking,
			DesiredSeparation: gc.DesiredSeparation,
			AlignRadius:       gc.AlignRadius,
			CohesionRadius:    gc.CohesionRadius,
			SeparateStrength:  gc.SeparateStrength,
			AlignStrength:     gc.AlignStrength,
			CohesionStrength:  gc.CohesionStrength,

			CheckEdges:         gc.CheckEdges,
			WrapEdges:          gc.WrapEdges,
			AvoidEdges:         gc.AvoidEdges,
			AvoidEdgesStrength: gc.AvoidEdgesStrength,
			Bounciness:         gc.Bounciness,

			PointToDirection: gc.PointToDirection,
			Static:           gc.Static,

			OffsetDistance: gc.OffsetDistance,
			OffsetAngle:    gc.OffsetAngle,

			Sensors: sensors,
		})
		if err != nil {
			return group{}, fmt.Errorf("group %q member %d: %w", gc.Name, i, err)
		}
		g.agents = append(g.agents, agent)
	}

	return g, nil
}

// buildSensors constructs fresh sensors for one member. Sensors carry
// per-instance activation state, so members never share them.
func buildSensors(gc config.GroupConfig) ([]motion.Sensor, error) {
	if len(gc.Sensors) == 0 {
		return nil, nil
	}
	sensors := make([]motion.Sensor, 0, len(gc.Sensors))
	for i, entry := range gc.Sensors {
		response, err := motion.ParseResponse(entry.Response)
		if err != nil {
			return nil, fmt.Errorf("group %q sensor %d: %w", gc.Name, i, err)
		}
		s, err := motion.NewProximitySensor(motion.ProximitySensorConfig{
			TargetKind:     entry.Target,
			Range:          entry.Range,
			Response:       response,
			Strength:       entry.Strength,
			OffsetDistance: entry.OffsetDistance,
			OffsetAngle:    entry.OffsetAngle,
		})
		if err != nil {
			return nil, fmt.Errorf("group %q sensor %d: %w", gc.Name, i, err)
		}
		sensors = append(sensors, s)
	}
	return sensors, nil
}

// wireTargets resolves group name references once all members exist.
// Seek and follow targets cycle through the named group's members;
// parents attach round-robin, fanning the offset angle when several
// children share one parent group.
func (sc *scenario) wireTargets(cfg *config.Config) error {
	for gi := range sc.groups {
		gc := &sc.groups[gi].cfg
		agents := sc.groups[gi].agents

		if gc.Seek != "" {
			targets, err := sc.membersOf(gc.Seek)
			if err != nil {
				return fmt.Errorf("group %q seek: %w", gc.Name, err)
			}
			for i, a := range agents {
				a.SeekTarget = targets[i%len(targets)].ID()
			}
		}

		if gc.Follow != "" {
			targets, err := sc.membersOf(gc.Follow)
			if err != nil {
				return fmt.Errorf("group %q follow: %w", gc.Name, err)
			}
			for i, a := range agents {
				a.FollowTarget = targets[i%len(targets)].ID()
			}
		}

		if gc.Parent != "" {
			parents, err := sc.membersOf(gc.Parent)
			if err != nil {
				return fmt.Errorf("group %q parent: %w", gc.Name, err)
			}
			for i, a := range agents {
				a.Parent = parents[i%len(parents)].ID()
				if len(agents) > 1 {
					a.OffsetAngle = gc.OffsetAngle + 360*float64(i)/float64(len(agents))
				}
			}
		}
	}
	return nil
}

// membersOf returns the agents of the named group.
func (sc *scenario) membersOf(name string) ([]*motion.Agent, error) {
	for i := range sc.groups {
		if sc.groups[i].cfg.Name == name {
			if len(sc.groups[i].agents) == 0 {
				return nil, fmt.Errorf("group %q has no members", name)
			}
			return sc.groups[i].agents, nil
		}
	}
	return nil, fmt.Errorf("unknown group %q", name)
}

// colorOf returns the render color for an agent, defaulting to gray
// for agents outside any group.
func (sc *scenario) colorOf(id uint32) rl.Color {
	if c, ok := sc.colors[id]; ok {
		return c
	}
	return rl.Color{R: 200, G: 200, B: 200, A: 255}
}

// advanceFields rebuilds animated flow field grids with an advancing
// epoch, sliding the noise pattern over time.
func (sc *scenario) advanceFields() {
	for i := range sc.fields {
		fs := &sc.fields[i]
		if !fs.entry.Animate {
			continue
		}
		fs.epoch += fs.entry.Drift
		fs.field.Field = motion.BuildNoiseGrid(motion.NoiseFieldConfig{
			Resolution: fs.entry.Resolution,
			Seed:       fs.entry.Seed,
			Scale:      fs.entry.Scale,
			Epoch:      fs.epoch,
			Magnitude:  fs.entry.Magnitude,
		}, sc.world.Width(), sc.world.Height())
	}
}
