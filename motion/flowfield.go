package motion

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/drift/vec"
)

// FlowField maps grid cells to direction vectors. Agents referencing a
// field steer along the cell under their location. The field is sparse:
// columns and rows may be missing, and the stepping code treats the two
// cases differently (missing column applies nothing, missing row in a
// present column steers toward the agent's own location).
type FlowField struct {
	Resolution float64
	Field      map[int]map[int]vec.Vec

	id uint32
}

// ID returns the world-assigned field id.
func (ff *FlowField) ID() uint32 { return ff.id }

// Cell returns the vector stored for (col, row) if both the column and the
// row exist.
func (ff *FlowField) Cell(col, row int) (vec.Vec, bool) {
	column, ok := ff.Field[col]
	if !ok {
		return vec.Vec{}, false
	}
	v, ok := column[row]
	return v, ok
}

// FlowFieldConfig configures AddFlowField with caller-supplied cells.
type FlowFieldConfig struct {
	Resolution float64
	Field      map[int]map[int]vec.Vec
}

func (cfg FlowFieldConfig) validate() error {
	v := validator{subject: "flow field"}
	v.positive("resolution", cfg.Resolution)
	return v.err()
}

// NoiseFieldConfig configures a coherent-noise flow field. Scale is the
// noise frequency, Epoch selects a slice through the noise volume so a
// field can be regenerated over time, Magnitude scales the cell vectors.
type NoiseFieldConfig struct {
	Resolution float64
	Seed       int64
	Scale      float64
	Epoch      float64
	Magnitude  float64
}

func (cfg NoiseFieldConfig) withDefaults() NoiseFieldConfig {
	if cfg.Scale == 0 {
		cfg.Scale = 0.005
	}
	if cfg.Magnitude == 0 {
		cfg.Magnitude = 1
	}
	return cfg
}

func (cfg NoiseFieldConfig) validate() error {
	v := validator{subject: "noise field"}
	v.positive("resolution", cfg.Resolution)
	v.positive("scale", cfg.Scale)
	v.positive("magnitude", cfg.Magnitude)
	v.finite("epoch", cfg.Epoch)
	return v.err()
}

// BuildNoiseGrid samples opensimplex noise at every cell center covering
// width x height and converts the value to a direction. Columns run
// 0..ceil(width/resolution)-1, rows likewise, so the grid is dense over
// the world.
func BuildNoiseGrid(cfg NoiseFieldConfig, width, height float64) map[int]map[int]vec.Vec {
	cfg = cfg.withDefaults()
	noise := opensimplex.New(cfg.Seed)

	cols := int(math.Ceil(width / cfg.Resolution))
	rows := int(math.Ceil(height / cfg.Resolution))
	field := make(map[int]map[int]vec.Vec, cols)
	for col := 0; col < cols; col++ {
		column := make(map[int]vec.Vec, rows)
		cx := (float64(col) + 0.5) * cfg.Resolution
		for row := 0; row < rows; row++ {
			cy := (float64(row) + 0.5) * cfg.Resolution
			sample := noise.Eval3(cx*cfg.Scale, cy*cfg.Scale, cfg.Epoch)
			theta := (sample + 1) * math.Pi
			cell := vec.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
			cell.Mult(cfg.Magnitude)
			column[row] = cell
		}
		field[col] = column
	}
	return field
}
