// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Input      InputConfig      `yaml:"input"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Scenario   ScenarioConfig   `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display parameters.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world bounds and ambient forces. Width and
// height of 0 inherit the screen dimensions.
type WorldConfig struct {
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Gravity VecConfig `yaml:"gravity"`
	Wind    VecConfig `yaml:"wind"`
	C       float64   `yaml:"c"` // ambient friction coefficient, 0 disables
}

// SimulationConfig holds stepping parameters.
type SimulationConfig struct {
	Seed           int64 `yaml:"seed"`
	StepsPerUpdate int   `yaml:"steps_per_update"`
	MaxTicks       int64 `yaml:"max_ticks"` // 0 runs until closed
}

// InputConfig holds interaction tuning.
type InputConfig struct {
	ThrowScale float64 `yaml:"throw_scale"` // fraction of drag distance imparted as velocity on release
	PanSpeed   float64 `yaml:"pan_speed"`   // camera pan per frame with arrow keys
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	OutputDir   string `yaml:"output_dir"`
	WindowTicks int    `yaml:"window_ticks"` // stats window size in ticks
}

// ScenarioConfig describes the initial population of the world.
type ScenarioConfig struct {
	Groups     []GroupConfig    `yaml:"groups"`
	Attractors []AttractorEntry `yaml:"attractors"`
	Repellers  []RepellerEntry  `yaml:"repellers"`
	Liquids    []LiquidEntry    `yaml:"liquids"`
	FlowFields []FlowFieldEntry `yaml:"flow_fields"`
}

// GroupConfig spawns Count agents sharing one configuration. Members
// scatter uniformly within Spread of Center (Spread 0 covers the whole
// world) and start at Speed along random headings.
type GroupConfig struct {
	Name  string      `yaml:"name"`
	Kind  string      `yaml:"kind"`
	Count int         `yaml:"count"`
	Color ColorConfig `yaml:"color"`

	Center VecConfig `yaml:"center"`
	Spread float64   `yaml:"spread"`
	Speed  float64   `yaml:"speed"`

	Mass             float64 `yaml:"mass"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MinSpeed         float64 `yaml:"min_speed"`
	MotorSpeed       float64 `yaml:"motor_speed"`
	MaxSteeringForce float64 `yaml:"max_steering_force"`
	Lifespan         int     `yaml:"lifespan"`

	FollowMouse bool   `yaml:"follow_mouse"`
	Seek        string `yaml:"seek"`       // group name; members cycle through that group's agents
	Follow      string `yaml:"follow"`     // group name; raw direction pursuit
	FlowField   string `yaml:"flow_field"` // flow field name

	Flocking          bool    `yaml:"flocking"`
	DesiredSeparation float64 `yaml:"desired_separation"`
	AlignRadius       float64 `yaml:"align_radius"`
	CohesionRadius    float64 `yaml:"cohesion_radius"`
	SeparateStrength  float64 `yaml:"separate_strength"`
	AlignStrength     float64 `yaml:"align_strength"`
	CohesionStrength  float64 `yaml:"cohesion_strength"`

	CheckEdges         bool    `yaml:"check_edges"`
	WrapEdges          bool    `yaml:"wrap_edges"`
	AvoidEdges         bool    `yaml:"avoid_edges"`
	AvoidEdgesStrength float64 `yaml:"avoid_edges_strength"`
	Bounciness         float64 `yaml:"bounciness"`

	PointToDirection bool `yaml:"point_to_direction"`
	Static           bool `yaml:"static"`

	// Parent attaches members to the named group's agents round-robin;
	// a group with Count > 1 fans members evenly around OffsetAngle.
	Parent         string  `yaml:"parent"`
	OffsetDistance float64 `yaml:"offset_distance"`
	OffsetAngle    float64 `yaml:"offset_angle"`

	Sensors []SensorEntry `yaml:"sensors"`
}

// SensorEntry configures one proximity sensor on every member of a group.
type SensorEntry struct {
	Target         string  `yaml:"target"` // kind the sensor reacts to
	Range          float64 `yaml:"range"`
	Response       string  `yaml:"response"` // seek, flee, accelerate, decelerate
	Strength       float64 `yaml:"strength"`
	OffsetDistance float64 `yaml:"offset_distance"`
	OffsetAngle    float64 `yaml:"offset_angle"`
}

// AttractorEntry places one gravitational attractor.
type AttractorEntry struct {
	At     VecConfig `yaml:"at"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Mass   float64   `yaml:"mass"`
	G      float64   `yaml:"g"`
}

// RepellerEntry places one repeller.
type RepellerEntry struct {
	At     VecConfig `yaml:"at"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Mass   float64   `yaml:"mass"`
	G      float64   `yaml:"g"`
}

// LiquidEntry places one drag volume.
type LiquidEntry struct {
	At     VecConfig `yaml:"at"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	C      float64   `yaml:"c"`
}

// FlowFieldEntry builds one noise-driven flow field covering the world.
type FlowFieldEntry struct {
	Name       string  `yaml:"name"`
	Resolution float64 `yaml:"resolution"`
	Seed       int64   `yaml:"seed"`
	Scale      float64 `yaml:"scale"`
	Magnitude  float64 `yaml:"magnitude"`
	Animate    bool    `yaml:"animate"` // rebuild each tick with an advancing epoch
	Drift      float64 `yaml:"drift"`   // epoch advance per tick when animating
}

// VecConfig is a 2D vector in YAML form.
type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ColorConfig is an RGB triple for rendering a group.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32        // Screen.Width as float32
	ScreenH32  float32        // Screen.Height as float32
	WorldW     float64        // effective world width
	WorldH     float64        // effective world height
	GroupIndex map[string]int // name -> index into Scenario.Groups
	FieldIndex map[string]int // name -> index into Scenario.FlowFields
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = float64(c.Screen.Width)
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = float64(c.Screen.Height)
	}
	c.Derived.WorldW = worldW
	c.Derived.WorldH = worldH

	if c.Simulation.StepsPerUpdate < 1 {
		c.Simulation.StepsPerUpdate = 1
	}

	// Synthesize a default scenario if none specified
	if len(c.Scenario.Groups) == 0 {
		c.Scenario.Groups = []GroupConfig{
			{
				Name:             "drifters",
				Kind:             "drifter",
				Count:            60,
				Color:            ColorConfig{R: 120, G: 200, B: 190},
				Speed:            2,
				MaxSpeed:         3,
				MotorSpeed:       1,
				Flocking:         true,
				WrapEdges:        true,
				PointToDirection: true,
			},
		}
	}

	// Apply defaults to groups that don't specify all fields
	for i := range c.Scenario.Groups {
		g := &c.Scenario.Groups[i]
		if g.Count == 0 {
			g.Count = 1
		}
		if g.Kind == "" {
			g.Kind = g.Name
		}
		if (g.Color == ColorConfig{}) {
			g.Color = ColorConfig{R: 220, G: 220, B: 220}
		}
	}

	// Build name indexes for fast lookup
	c.Derived.GroupIndex = make(map[string]int, len(c.Scenario.Groups))
	for i, g := range c.Scenario.Groups {
		c.Derived.GroupIndex[g.Name] = i
	}
	c.Derived.FieldIndex = make(map[string]int, len(c.Scenario.FlowFields))
	for i, f := range c.Scenario.FlowFields {
		c.Derived.FieldIndex[f.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
