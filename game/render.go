package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/motion"
)

var (
	backgroundColor = rl.Color{R: 14, G: 16, B: 22, A: 255}
	attractorColor  = rl.Color{R: 240, G: 196, B: 90, A: 255}
	repellerColor   = rl.Color{R: 235, G: 105, B: 95, A: 255}
	liquidColor     = rl.Color{R: 70, G: 130, B: 200, A: 255}
	glyphColor      = rl.Color{R: 120, G: 160, B: 140, A: 90}
)

// Draw renders one frame.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawLiquids()
	if g.showGlyphs {
		g.drawFieldGlyphs()
	}
	g.drawEmitters()
	g.drawAgents()
	g.drawSelection()
	g.drawPanels()

	rl.EndDrawing()
}

// project converts an engine world location to screen coordinates,
// applying the world's scroll offset before the camera transform.
func (g *Game) project(x, y float64) (float32, float32, float32, float32) {
	wx := float32(x + g.sc.world.Location.X)
	wy := float32(y + g.sc.world.Location.Y)
	sx, sy := g.cam.WorldToScreen(wx, wy)
	return sx, sy, wx, wy
}

func (g *Game) drawLiquids() {
	for _, l := range g.sc.world.Liquids() {
		sx, sy, wx, wy := g.project(l.Location.X, l.Location.Y)
		halfW := float32(l.Width/2) * g.cam.Zoom
		halfH := float32(l.Height/2) * g.cam.Zoom
		if !g.cam.IsVisible(wx, wy, float32(math.Max(l.Width, l.Height)/2)) {
			continue
		}
		rect := rl.Rectangle{X: sx - halfW, Y: sy - halfH, Width: halfW * 2, Height: halfH * 2}
		fill := liquidColor
		fill.A = 50
		rl.DrawRectangleRec(rect, fill)
		border := liquidColor
		border.A = 140
		rl.DrawRectangleLinesEx(rect, 1, border)
	}
}

func (g *Game) drawEmitters() {
	for _, a := range g.sc.world.Attractors() {
		g.drawEmitter(a.Location.X, a.Location.Y, a.Width/2, attractorColor)
	}
	for _, r := range g.sc.world.Repellers() {
		g.drawEmitter(r.Location.X, r.Location.Y, r.Width/2, repellerColor)
	}
}

func (g *Game) drawEmitter(x, y, radius float64, color rl.Color) {
	sx, sy, wx, wy := g.project(x, y)
	if !g.cam.IsVisible(wx, wy, float32(radius)) {
		return
	}
	r := float32(radius) * g.cam.Zoom
	fill := color
	fill.A = 40
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, fill)
	rl.DrawCircleLines(int32(sx), int32(sy), r, color)
}

// drawFieldGlyphs renders one arrow per flow field cell inside the
// visible bounds.
func (g *Game) drawFieldGlyphs() {
	minX, minY, maxX, maxY := g.cam.VisibleWorldBounds()
	for i := range g.sc.fields {
		ff := g.sc.fields[i].field
		res := ff.Resolution
		for col, rows := range ff.Field {
			cx := (float64(col) + 0.5) * res
			if float32(cx) < minX-float32(res) || float32(cx) > maxX+float32(res) {
				continue
			}
			for row, v := range rows {
				cy := (float64(row) + 0.5) * res
				if float32(cy) < minY-float32(res) || float32(cy) > maxY+float32(res) {
					continue
				}
				mag := v.Mag()
				if mag == 0 {
					continue
				}
				scale := res * 0.35 / mag
				sx, sy, _, _ := g.project(cx, cy)
				ex, ey, _, _ := g.project(cx+v.X*scale, cy+v.Y*scale)
				rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, glyphColor)
				rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, 1.5, glyphColor)
			}
		}
	}
}

func (g *Game) drawAgents() {
	for _, a := range g.sc.world.Agents() {
		loc := a.Location()
		sx, sy, wx, wy := g.project(loc.X, loc.Y)
		radius := float32(a.Width / 2)
		if !g.cam.IsVisible(wx, wy, radius*2) {
			continue
		}
		color := g.sc.colorOf(a.ID())
		screenRadius := radius * g.cam.Zoom
		if a.PointToDirection {
			heading := float32(a.Angle() * math.Pi / 180)
			drawOrientedTriangle(sx, sy, screenRadius, heading, color)
		} else {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, screenRadius, color)
		}
	}
}

// drawOrientedTriangle draws a triangle pointing along the heading.
func drawOrientedTriangle(cx, cy, radius, heading float32, color rl.Color) {
	front := float64(heading)
	backLeft := float64(heading) + math.Pi*0.8
	backRight := float64(heading) - math.Pi*0.8

	v1 := rl.Vector2{
		X: cx + float32(math.Cos(front))*radius*1.5,
		Y: cy + float32(math.Sin(front))*radius*1.5,
	}
	v2 := rl.Vector2{
		X: cx + float32(math.Cos(backLeft))*radius,
		Y: cy + float32(math.Sin(backLeft))*radius,
	}
	v3 := rl.Vector2{
		X: cx + float32(math.Cos(backRight))*radius,
		Y: cy + float32(math.Sin(backRight))*radius,
	}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

// drawSelection highlights the selected agent with a pulsing ring and
// shows its sensor ranges.
func (g *Game) drawSelection() {
	if g.selected == nil {
		return
	}
	loc := g.selected.Location()
	sx, sy, _, _ := g.project(loc.X, loc.Y)

	pulse := float32(math.Sin(float64(g.Tick())*0.1))*0.3 + 0.7
	alpha := uint8(255 * pulse)
	radius := (float32(g.selected.Width/2) + 6) * g.cam.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Color{R: 255, G: 255, B: 255, A: alpha})
	rl.DrawCircleLines(int32(sx), int32(sy), radius+1, rl.Color{R: 255, G: 255, B: 255, A: alpha / 2})

	for _, s := range g.selected.Sensors {
		ps, ok := s.(*motion.ProximitySensor)
		if !ok {
			continue
		}
		sloc := ps.Location()
		px, py, _, _ := g.project(sloc.X, sloc.Y)
		ringColor := rl.Color{R: 120, G: 120, B: 120, A: 120}
		if ps.Activated() {
			ringColor = rl.Color{R: 235, G: 105, B: 95, A: 180}
		}
		rl.DrawCircleLines(int32(px), int32(py), float32(ps.Range)*g.cam.Zoom, ringColor)
	}
}
