package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/ui"
)

const controlsLegend = "Space pause | N step | , . speed | R reset | G glyphs | H panels | P timing | F follow | arrows pan | wheel zoom | Home reset view"

// drawPanels renders the HUD text block and the interactive panels.
func (g *Game) drawPanels() {
	if !g.showHUD {
		return
	}

	w := g.sc.world
	g.hud.Draw(ui.HUDData{
		Title:        "drift",
		Tick:         g.Tick(),
		Agents:       len(w.Agents()),
		Attractors:   len(w.Attractors()),
		Repellers:    len(w.Repellers()),
		Liquids:      len(w.Liquids()),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenW),
		ScreenHeight: int32(g.screenH),
	})
	g.hud.DrawControls(int32(g.screenW), int32(g.screenH), controlsLegend)

	if g.showPerf {
		g.perfPanel.SetPosition(10, 110)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	actions := g.tuner.Draw(int32(g.screenW), &g.tunerVals, g.paused, g.showGlyphs)
	g.applyTuner()
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Reset {
		g.Reset()
	}
	if actions.ToggleGlyphs {
		g.showGlyphs = !g.showGlyphs
	}

	if g.selected != nil {
		inspY := int32(110)
		if g.showPerf {
			inspY = 240
		}
		g.inspector.SetPosition(10, inspY)
		g.inspector.Draw(g.inspectorData())
	}
}

// syncTuner copies live world parameters into the tuning panel, used
// at startup and after a reset.
func (g *Game) syncTuner() {
	w := g.sc.world
	g.tunerVals.WindX = float32(w.Wind.X)
	g.tunerVals.WindY = float32(w.Wind.Y)
	g.tunerVals.GravityX = float32(w.Gravity.X)
	g.tunerVals.GravityY = float32(w.Gravity.Y)
	g.tunerVals.Drag = float32(w.C)

	g.tunerVals.HasFlock = false
	for i := range g.sc.groups {
		gr := &g.sc.groups[i]
		if gr.cfg.Flocking && len(gr.agents) > 0 {
			a := gr.agents[0]
			g.tunerVals.HasFlock = true
			g.tunerVals.Separate = float32(a.SeparateStrength)
			g.tunerVals.Align = float32(a.AlignStrength)
			g.tunerVals.Cohere = float32(a.CohesionStrength)
			break
		}
	}
}

// applyTuner writes panel values back onto the live world.
func (g *Game) applyTuner() {
	w := g.sc.world
	w.Wind.X = float64(g.tunerVals.WindX)
	w.Wind.Y = float64(g.tunerVals.WindY)
	w.Gravity.X = float64(g.tunerVals.GravityX)
	w.Gravity.Y = float64(g.tunerVals.GravityY)
	w.C = float64(g.tunerVals.Drag)

	if !g.tunerVals.HasFlock {
		return
	}
	for i := range g.sc.groups {
		if !g.sc.groups[i].cfg.Flocking {
			continue
		}
		for _, a := range g.sc.groups[i].agents {
			a.SeparateStrength = float64(g.tunerVals.Separate)
			a.AlignStrength = float64(g.tunerVals.Align)
			a.CohesionStrength = float64(g.tunerVals.Cohere)
		}
	}
}

// inspectorData assembles the panel data for the selected agent.
func (g *Game) inspectorData() ui.InspectorData {
	a := g.selected
	loc := a.Location()
	vel := a.Velocity()

	data := ui.InspectorData{
		ID:       a.ID(),
		Kind:     a.Kind,
		Color:    g.sc.colorOf(a.ID()),
		X:        loc.X,
		Y:        loc.Y,
		VelX:     vel.X,
		VelY:     vel.Y,
		Speed:    vel.Mag(),
		MaxSpeed: a.MaxSpeed,
		Angle:    a.Angle(),
		Mass:     a.Mass,
		Lifespan: a.Lifespan(),
		LifeFrac: -1,
	}

	if a.Lifespan() > 0 {
		if gc := g.groupConfigOf(a); gc != nil && gc.Lifespan > 0 {
			data.LifeFrac = float32(a.Lifespan()) / float32(gc.Lifespan)
		}
	}

	data.Behaviors = behaviorTags(a)
	for _, s := range a.Sensors {
		ps, ok := s.(*motion.ProximitySensor)
		if !ok {
			continue
		}
		data.Sensors = append(data.Sensors, ui.SensorStatus{
			Target:    ps.TargetKind,
			Range:     ps.Range,
			Response:  ps.Response.String(),
			Activated: ps.Activated(),
		})
	}
	return data
}

// groupConfigOf finds the scenario group an agent was spawned from.
func (g *Game) groupConfigOf(a *motion.Agent) *config.GroupConfig {
	for i := range g.sc.groups {
		for _, member := range g.sc.groups[i].agents {
			if member == a {
				return &g.sc.groups[i].cfg
			}
		}
	}
	return nil
}

// behaviorTags lists the active steering behaviors for display.
func behaviorTags(a *motion.Agent) []string {
	var tags []string
	if a.Static {
		tags = append(tags, "static")
	}
	if a.FollowMouse {
		tags = append(tags, "follow mouse")
	}
	if a.Flocking {
		tags = append(tags, "flocking")
	}
	if a.SeekTarget != 0 {
		tags = append(tags, fmt.Sprintf("seek #%d", a.SeekTarget))
	}
	if a.FollowTarget != 0 {
		tags = append(tags, fmt.Sprintf("follow #%d", a.FollowTarget))
	}
	if a.FlowField != 0 {
		tags = append(tags, "flow field")
	}
	if a.Parent != 0 {
		tags = append(tags, fmt.Sprintf("child of #%d", a.Parent))
	}
	if a.WrapEdges {
		tags = append(tags, "wrap edges")
	}
	if a.CheckEdges {
		tags = append(tags, "bounce edges")
	}
	if a.AvoidEdges {
		tags = append(tags, "avoid edges")
	}
	return tags
}
