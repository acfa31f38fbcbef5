package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/vec"
)

// maxPickDistance is the screen-space radius in pixels for selecting
// an agent with a click.
const maxPickDistance = 20.0

// handleInput processes keyboard and mouse for one frame.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		g.stepOnce = true
	}

	// Simulation speed control
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.showGlyphs = !g.showGlyphs
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.followSel = !g.followSel
	}

	g.handleCameraInput()
	g.handleMouse()

	if g.selected != nil && g.staleAgent(g.selected) {
		g.selected = nil
	}
	if g.followSel && g.selected != nil {
		loc := g.selected.Location()
		g.cam.Follow(float32(loc.X+g.sc.world.Location.X), float32(loc.Y+g.sc.world.Location.Y))
	}
}

// handleResize keeps the camera viewport in sync with the window.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w != g.screenW || h != g.screenH {
		g.screenW = w
		g.screenH = h
		g.cam.Resize(w, h)
	}
}

// handleCameraInput pans with the arrow keys and zooms with the mouse
// wheel or the +/- keys.
func (g *Game) handleCameraInput() {
	panSpeed := float32(g.cfg.Input.PanSpeed) / g.cam.Zoom
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}

	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		zoomFactor := float32(1.0) + wheelMove*0.1
		g.cam.ZoomBy(zoomFactor)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}

// handleMouse feeds the engine's pointer position, picks agents on
// click, and drags the picked agent with a throw on release.
func (g *Game) handleMouse() {
	mouse := g.mouseToWorld(rl.GetMousePosition())
	g.sc.world.SetMouse(mouse)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		g.selected = g.pickAgent(mouse)
		if g.selected != nil {
			g.dragged = g.selected
			g.dragged.Pressed = true
		}
	}

	if g.dragged != nil && g.staleAgent(g.dragged) {
		g.dragged = nil
	}

	if g.dragged != nil {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			g.dragged.MoveTo(mouse)
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			throw := vec.Subtract(mouse, g.lastMouse)
			throw.Mult(g.cfg.Input.ThrowScale)
			g.dragged.SetVelocity(throw)
			g.dragged.Pressed = false
			g.dragged = nil
		}
	}

	g.lastMouse = mouse
}

// mouseToWorld converts a screen position to engine world coordinates,
// unwinding the camera transform and the world's own scroll offset.
func (g *Game) mouseToWorld(pos rl.Vector2) vec.Vec {
	wx, wy := g.cam.ScreenToWorld(pos.X, pos.Y)
	return vec.Vec{
		X: float64(wx) - g.sc.world.Location.X,
		Y: float64(wy) - g.sc.world.Location.Y,
	}
}

// pickAgent returns the agent nearest the given world position, or nil
// when none is within picking range.
func (g *Game) pickAgent(mouse vec.Vec) *motion.Agent {
	closestDist := float64(maxPickDistance) / float64(g.cam.Zoom)
	var closest *motion.Agent
	for _, a := range g.sc.world.Agents() {
		d := a.Location().Distance(mouse)
		if d < closestDist {
			closestDist = d
			closest = a
		}
	}
	return closest
}

// staleAgent reports whether the sweep has removed the agent.
func (g *Game) staleAgent(a *motion.Agent) bool {
	return a.Lifespan() == 0
}
