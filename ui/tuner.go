package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TunerValues holds the live-adjustable world parameters. The game
// copies world state in before drawing and applies the values back
// after, so slider writes take effect on the running simulation.
type TunerValues struct {
	WindX    float32
	WindY    float32
	GravityX float32
	GravityY float32
	Drag     float32

	// Flocking weights, shown only when the scenario has a flock.
	HasFlock bool
	Separate float32
	Align    float32
	Cohere   float32
}

// TunerActions reports one-shot button presses from the panel.
type TunerActions struct {
	TogglePause  bool
	Reset        bool
	ToggleGlyphs bool
}

// TunerPanel renders slider controls bound to the live world.
type TunerPanel struct {
	renderer *Renderer
	width    int32
}

// NewTunerPanel creates a tuning panel of the given width.
func NewTunerPanel(width int32) *TunerPanel {
	return &TunerPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Draw renders the panel anchored to the top-right corner. Slider
// writes mutate v in place; button presses come back in the actions.
func (t *TunerPanel) Draw(screenW int32, v *TunerValues, paused, glyphs bool) TunerActions {
	var actions TunerActions
	r := t.renderer
	padding := r.Theme.Padding

	sliders := int32(5)
	if v.HasFlock {
		sliders += 3
	}
	panelHeight := padding*2 + 30 + sliders*46 + 90

	panelX := screenW - t.width - 10
	panelY := int32(10)
	r.DrawPanel(panelX, panelY, t.width, panelHeight)

	x := panelX + padding
	y := panelY + padding

	rl.DrawText("World Tuning", x, y, 16, rl.White)
	y += 30

	v.WindX, y = t.slider(x, y, "Wind X", v.WindX, -0.5, 0.5)
	v.WindY, y = t.slider(x, y, "Wind Y", v.WindY, -0.5, 0.5)
	v.GravityX, y = t.slider(x, y, "Gravity X", v.GravityX, -1, 1)
	v.GravityY, y = t.slider(x, y, "Gravity Y", v.GravityY, -1, 1)
	v.Drag, y = t.slider(x, y, "Drag", v.Drag, 0, 0.2)

	if v.HasFlock {
		v.Separate, y = t.slider(x, y, "Separation", v.Separate, 0, 1)
		v.Align, y = t.slider(x, y, "Alignment", v.Align, 0, 1)
		v.Cohere, y = t.slider(x, y, "Cohesion", v.Cohere, 0, 1)
	}

	buttonW := float32(t.width-padding*2-10) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: buttonW, Height: 30}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + buttonW + 10, Y: float32(y), Width: buttonW, Height: 30}, "Reset") {
		actions.Reset = true
	}
	y += 45

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: buttonW, Height: 30}, toggleText(glyphs, "Glyphs: ON", "Glyphs: OFF")) {
		actions.ToggleGlyphs = true
	}

	return actions
}

// slider draws one labeled slider row and returns the new value and Y.
func (t *TunerPanel) slider(x, y int32, caption string, value, minVal, maxVal float32) (float32, int32) {
	r := t.renderer
	r.DrawLabel(x, y, caption)
	y += 16

	sliderW := float32(t.width - r.Theme.Padding*2 - 56)
	newValue := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: sliderW, Height: 16},
		"", "",
		value, minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf("%.2f", newValue), x+int32(sliderW)+8, y+1, 14, r.Theme.ValueColor)

	return newValue, y + 30
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
