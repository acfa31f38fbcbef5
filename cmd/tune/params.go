package main

import (
	"fmt"

	"github.com/pthm-cable/drift/config"
)

// ParamSpec describes one tunable flocking parameter and its search range.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector maps between the optimizer's normalized [0,1] space and
// raw flocking parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewFlockingParams builds the parameter set, seeding defaults from the
// first flocking group in the config. Zero-valued fields fall back to
// the engine defaults so the search starts from a sane point.
func NewFlockingParams(cfg *config.Config) (*ParamVector, error) {
	base := firstFlockingGroup(cfg)
	if base == nil {
		return nil, fmt.Errorf("config has no flocking group to tune")
	}
	return &ParamVector{Specs: []ParamSpec{
		{Name: "separate_strength", Min: 0, Max: 2, Default: orDefault(base.SeparateStrength, 0.3)},
		{Name: "align_strength", Min: 0, Max: 2, Default: orDefault(base.AlignStrength, 0.2)},
		{Name: "cohesion_strength", Min: 0, Max: 2, Default: orDefault(base.CohesionStrength, 0.1)},
		{Name: "desired_separation", Min: 5, Max: 80, Default: orDefault(base.DesiredSeparation, 24)},
		{Name: "align_radius", Min: 10, Max: 150, Default: orDefault(base.AlignRadius, 60)},
		{Name: "cohesion_radius", Min: 10, Max: 150, Default: orDefault(base.CohesionRadius, 60)},
	}}, nil
}

func firstFlockingGroup(cfg *config.Config) *config.GroupConfig {
	for i := range cfg.Scenario.Groups {
		if cfg.Scenario.Groups[i].Flocking {
			return &cfg.Scenario.Groups[i]
		}
	}
	return nil
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

// Dim returns the number of tuned parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Names returns the parameter names in spec order.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.Specs))
	for i, s := range pv.Specs {
		names[i] = s.Name
	}
	return names
}

// DefaultVector returns the normalized starting point for the search.
func (pv *ParamVector) DefaultVector() []float64 {
	x := make([]float64, pv.Dim())
	for i, s := range pv.Specs {
		x[i] = clamp01((s.Default - s.Min) / (s.Max - s.Min))
	}
	return x
}

// Denormalize maps a normalized vector back to raw parameter values,
// clamping each into its spec range.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		raw[i] = s.Min + clamp01(x[i])*(s.Max-s.Min)
	}
	return raw
}

// ApplyToConfig writes raw parameter values onto every flocking group.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i := range cfg.Scenario.Groups {
		g := &cfg.Scenario.Groups[i]
		if !g.Flocking {
			continue
		}
		g.SeparateStrength = raw[0]
		g.AlignStrength = raw[1]
		g.CohesionStrength = raw[2]
		g.DesiredSeparation = raw[3]
		g.AlignRadius = raw[4]
		g.CohesionRadius = raw[5]
	}
}

// cloneConfig copies the config deeply enough that group parameters can
// be mutated per evaluation without touching the base.
func cloneConfig(cfg *config.Config) *config.Config {
	clone := *cfg
	clone.Scenario.Groups = make([]config.GroupConfig, len(cfg.Scenario.Groups))
	copy(clone.Scenario.Groups, cfg.Scenario.Groups)
	return &clone
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
