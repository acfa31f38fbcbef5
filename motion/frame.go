package motion

import "github.com/pthm-cable/drift/vec"

// Frame is the read snapshot handed to every Agent.Step within one world
// tick. Element states are frozen at frame start, so all cross-element
// reads (flocking, targets, parents, proximity forces) observe the
// previous frame's finalized values no matter the stepping order. A Frame
// is owned by its World and reused; it stays valid until the next
// Snapshot or Step call.
type Frame struct {
	Tick  int64
	Mouse vec.Vec

	elements   []ElementState
	liquids    []LiquidState
	attractors []EmitterState
	repellers  []EmitterState
	byID       map[uint32]int
	fields     map[uint32]*FlowField

	world   *World
	indexed bool
	idxBuf  []int
	nbrBuf  []ElementState
}

// Element looks up the snapshot of any registered element by id.
func (f *Frame) Element(id uint32) (ElementState, bool) {
	i, ok := f.byID[id]
	if !ok {
		return ElementState{}, false
	}
	return f.elements[i], true
}

// Elements returns all element snapshots. Treat as read-only.
func (f *Frame) Elements() []ElementState { return f.elements }

// Liquids returns the liquid snapshots in registration order.
func (f *Frame) Liquids() []LiquidState { return f.liquids }

// Attractors returns the attractor snapshots in registration order.
func (f *Frame) Attractors() []EmitterState { return f.attractors }

// Repellers returns the repeller snapshots in registration order.
func (f *Frame) Repellers() []EmitterState { return f.repellers }

// Field resolves a flow field by id. Fields are shared, not copied; they
// must not be mutated during a frame.
func (f *Frame) Field(id uint32) (*FlowField, bool) {
	ff, ok := f.fields[id]
	return ff, ok
}

// Neighbors returns snapshots of every element within radius of loc,
// backed by the frame's spatial grid. The returned slice is scratch,
// overwritten by the next Neighbors call.
func (f *Frame) Neighbors(loc vec.Vec, radius float64) []ElementState {
	w := f.world
	if w.grid == nil {
		w.grid = newSpatialGrid(w.width, w.height, spatialCellSize)
	}
	if !f.indexed {
		w.grid.rebuild(f.elements)
		f.indexed = true
	}
	f.idxBuf = w.grid.queryRadiusInto(f.idxBuf[:0], loc, radius, f.elements)
	f.nbrBuf = f.nbrBuf[:0]
	for _, i := range f.idxBuf {
		f.nbrBuf = append(f.nbrBuf, f.elements[i])
	}
	return f.nbrBuf
}

// neighborsOf gathers flocking candidates for a: everything within the
// largest of its three behavior radii. Each behavior applies its own
// tighter filter, so the result matches a full population scan.
func (f *Frame) neighborsOf(a *Agent) []ElementState {
	r := a.DesiredSeparation
	if a.AlignRadius > r {
		r = a.AlignRadius
	}
	if a.CohesionRadius > r {
		r = a.CohesionRadius
	}
	return f.Neighbors(a.location, r)
}
