package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SensorStatus describes one proximity sensor on the inspected agent.
type SensorStatus struct {
	Target    string
	Range     float64
	Response  string
	Activated bool
}

// InspectorData holds all the data needed to render the inspector panel.
type InspectorData struct {
	ID       uint32
	Kind     string
	Color    rl.Color
	X, Y     float64
	VelX     float64
	VelY     float64
	Speed    float64
	MaxSpeed float64
	Angle    float64
	Mass     float64
	Lifespan int     // -1 means infinite
	LifeFrac float32 // remaining fraction, negative when infinite

	Behaviors []string
	Sensors   []SensorStatus
}

// Inspector renders the selected-agent panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	lh := r.Theme.LineHeight

	panelHeight := padding*2 + 26 + lh*5 + (lh + 2)
	if data.LifeFrac >= 0 {
		panelHeight += lh + 2
	}
	if len(data.Behaviors) > 0 {
		panelHeight += lh * int32(1+len(data.Behaviors))
	}
	if len(data.Sensors) > 0 {
		panelHeight += lh * int32(1+len(data.Sensors))
	}

	r.DrawPanel(ins.x, ins.y, ins.width, panelHeight)

	x := ins.x + padding
	y := ins.y + padding
	contentWidth := ins.width - padding*2

	rl.DrawText(fmt.Sprintf("%s #%d", data.Kind, data.ID), x, y, 18, data.Color)
	y += 26

	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", data.X, data.Y))
	y = r.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("(%.2f, %.2f)", data.VelX, data.VelY))
	y = r.DrawBar(x, y, "Speed", speedFrac(data.Speed, data.MaxSpeed), contentWidth)
	y = r.DrawLabelValue(x, y, "Heading", fmt.Sprintf("%.0f deg", data.Angle))
	y = r.DrawLabelValue(x, y, "Mass", fmt.Sprintf("%.1f", data.Mass))
	if data.Lifespan < 0 {
		y = r.DrawLabelValue(x, y, "Lifespan", "inf")
	} else {
		y = r.DrawLabelValue(x, y, "Lifespan", fmt.Sprintf("%d", data.Lifespan))
		if data.LifeFrac >= 0 {
			y = r.DrawBar(x, y, "Remaining", data.LifeFrac, contentWidth)
		}
	}

	if len(data.Behaviors) > 0 {
		y = r.DrawSectionHeader(x, y, "Behavior")
		for _, b := range data.Behaviors {
			r.DrawLabel(x, y, b)
			y += lh
		}
	}

	if len(data.Sensors) > 0 {
		y = r.DrawSectionHeader(x, y, "Sensors")
		for _, s := range data.Sensors {
			statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
			if s.Activated {
				statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
			}
			rl.DrawRectangle(x, y+2, 8, 8, statusColor)
			r.DrawLabel(x+14, y, fmt.Sprintf("%s %s r=%.0f", s.Response, s.Target, s.Range))
			y += lh
		}
	}

	return ins.y + panelHeight
}

func speedFrac(speed, maxSpeed float64) float32 {
	if maxSpeed <= 0 {
		return 0
	}
	return float32(speed / maxSpeed)
}
