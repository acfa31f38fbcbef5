// Flow field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/motion"
	"github.com/pthm-cable/drift/vec"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// FieldParams holds the noise flow field parameters.
type FieldParams struct {
	Resolution int
	Scale      float32
	Magnitude  float32
	Drift      float32
	Seed       int64
}

func defaultParams() FieldParams {
	return FieldParams{
		Resolution: 48,
		Scale:      0.004,
		Magnitude:  0.9,
		Drift:      0.004,
		Seed:       9,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	var epoch float32 = 0
	animating := false

	field := buildField(params, epoch)
	needsRegen := false

	for !rl.WindowShouldClose() {
		// Epoch advances by drift per frame, matching the simulation's
		// per-tick rebuild of animated fields.
		if animating {
			epoch += params.Drift
			needsRegen = true
		}

		if needsRegen {
			field = buildField(params, epoch)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.NewColor(14, 16, 22, 255))
		drawField(field, float64(params.Resolution))
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats. Coherence is the mean resultant length of the
		// cell headings: 1 when every cell points the same way.
		var sumX, sumY float64
		cells := 0
		for _, rows := range field {
			for _, v := range rows {
				m := v.Mag()
				if m == 0 {
					continue
				}
				sumX += v.X / m
				sumY += v.Y / m
				cells++
			}
		}
		coherence := 0.0
		meanHeading := 0.0
		if cells > 0 {
			coherence = math.Hypot(sumX, sumY) / float64(cells)
			meanHeading = math.Atan2(sumY, sumX) * 180 / math.Pi
		}

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Cells: %d  Coherence: %.3f  Mean heading: %.0f deg", cells, coherence, meanHeading), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Epoch: %.2f", epoch), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Resolution slider
		rl.DrawText("Resolution (cell size in world units)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newResolution := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"16", "96",
			float32(params.Resolution), 16, 96,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Resolution), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newResolution) != params.Resolution {
			params.Resolution = int(newResolution)
			needsRegen = true
		}
		panelY += 35

		// Scale slider
		rl.DrawText("Scale (noise frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.02",
			params.Scale, 0.001, 0.02,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 35

		// Magnitude slider
		rl.DrawText("Magnitude (cell vector strength)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMagnitude := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "3.0",
			params.Magnitude, 0.1, 3.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Magnitude), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newMagnitude != params.Magnitude {
			params.Magnitude = newMagnitude
			needsRegen = true
		}
		panelY += 35

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Animation section
		rl.DrawText("Animation", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		// Drift slider
		rl.DrawText("Drift (epoch advance per tick)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDrift := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.02",
			params.Drift, 0, 0.02,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.Drift), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newDrift != params.Drift {
			params.Drift = newDrift
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Epoch") {
			epoch = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			epoch = 0
			animating = false
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"flow_fields:",
			"  - name: breeze",
			fmt.Sprintf("    resolution: %d", params.Resolution),
			fmt.Sprintf("    seed: %d", params.Seed),
			fmt.Sprintf("    scale: %.4f", params.Scale),
			fmt.Sprintf("    magnitude: %.2f", params.Magnitude),
			fmt.Sprintf("    animate: %t", params.Drift > 0),
			fmt.Sprintf("    drift: %.4f", params.Drift),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`flow_fields:
  - name: breeze
    resolution: %d
    seed: %d
    scale: %.4f
    magnitude: %.2f
    animate: %t
    drift: %.4f`,
				params.Resolution, params.Seed, params.Scale,
				params.Magnitude, params.Drift > 0, params.Drift)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// buildField regenerates the grid covering the preview area.
func buildField(params FieldParams, epoch float32) map[int]map[int]vec.Vec {
	return motion.BuildNoiseGrid(motion.NoiseFieldConfig{
		Resolution: float64(params.Resolution),
		Seed:       params.Seed,
		Scale:      float64(params.Scale),
		Epoch:      float64(epoch),
		Magnitude:  float64(params.Magnitude),
	}, previewSize, previewSize)
}

// drawField renders one arrow per cell inside the preview rectangle.
func drawField(field map[int]map[int]vec.Vec, res float64) {
	glyph := rl.NewColor(120, 160, 140, 230)
	for col, rows := range field {
		cx := (float64(col) + 0.5) * res
		for row, v := range rows {
			cy := (float64(row) + 0.5) * res
			mag := v.Mag()
			if mag == 0 {
				continue
			}
			scale := res * 0.35 / mag
			sx := float32(10 + cx)
			sy := float32(10 + cy)
			ex := float32(10 + cx + v.X*scale)
			ey := float32(10 + cy + v.Y*scale)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, glyph)
			rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, 1.5, glyph)
		}
	}
}
