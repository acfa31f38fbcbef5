package motion

import "github.com/pthm-cable/drift/vec"

// spatialCellSize is the default grid cell edge in world units.
const spatialCellSize = 64

// spatialGrid provides cell-based neighbor lookups over a frame's element
// snapshot. Queries are exact: every element within the radius is
// returned (no result cap), so a grid query is interchangeable with a
// full scan filtered by distance. Distances are plain euclidean; flocking
// ignores edge wrapping.
type spatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int // indices into the frame's element slice
}

// newSpatialGrid creates a grid covering the given world size.
func newSpatialGrid(width, height, cellSize float64) *spatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &spatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// clear removes all entries from the grid.
func (g *spatialGrid) clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// rebuild clears the grid and inserts every element of the snapshot.
func (g *spatialGrid) rebuild(elems []ElementState) {
	g.clear()
	for i := range elems {
		idx := g.cellIndex(elems[i].Location)
		g.cells[idx] = append(g.cells[idx], i)
	}
}

// queryRadiusInto appends the indices of all elements within radius of loc
// to dst and returns the updated slice. Reuse dst across calls to avoid
// allocations.
func (g *spatialGrid) queryRadiusInto(dst []int, loc vec.Vec, radius float64, elems []ElementState) []int {
	cellRadius := int(radius/g.cellSize) + 1

	// Inserts clamp out-of-world elements into edge cells; clamp the
	// origin the same way so those cells stay reachable.
	centerCol := clampInt(int(loc.X/g.cellSize), 0, g.cols-1)
	centerRow := clampInt(int(loc.Y/g.cellSize), 0, g.rows-1)

	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}

			for _, i := range g.cells[row*g.cols+col] {
				dx := elems[i].Location.X - loc.X
				dy := elems[i].Location.Y - loc.Y
				if dx*dx+dy*dy <= radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}

	return dst
}

// cellIndex returns the flat cell index for a world position, clamped to
// the grid so out-of-bounds elements (parented offsets can leave the
// world) still land in an edge cell.
func (g *spatialGrid) cellIndex(loc vec.Vec) int {
	col := int(loc.X / g.cellSize)
	row := int(loc.Y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
