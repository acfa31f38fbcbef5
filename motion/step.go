package motion

import (
	"math"

	"github.com/pthm-cable/drift/vec"
)

// Step advances the agent one tick against the frame snapshot. Forces
// accumulate in a fixed order, then integrate once. Frozen agents
// (Static or Pressed) run only their hooks; their motion state is left
// untouched.
func (a *Agent) Step(f *Frame) {
	if a.BeforeStep != nil {
		a.BeforeStep(a)
	}
	if a.Static || a.Pressed {
		if a.AfterStep != nil {
			a.AfterStep(a)
		}
		return
	}

	a.applyLiquids(f)
	a.applyEmitters(f)
	if !a.applySensors(f) {
		a.applyMotor()
	}
	a.applyEnvironment()
	a.applyTargets(f)
	a.applyFlowField(f)
	if a.Flocking {
		a.flock(f.neighborsOf(a))
	}
	if a.AvoidEdges {
		a.avoidWorldEdges()
	}

	a.integrate()

	if a.PointToDirection && a.velocity.Mag() > 0.1 {
		a.angle = radToDeg(a.velocity.Heading())
	}
	if a.ControlCamera {
		a.world.Location.Sub(a.velocity)
	}
	if a.CheckEdges || a.WrapEdges {
		var diff vec.Vec
		if a.checkWorldEdges(&diff) && a.ControlCamera {
			a.world.Location.Add(diff)
		}
	}
	a.applyParent(f)

	if a.AfterStep != nil {
		a.AfterStep(a)
	}
	a.acceleration = vec.Vec{}
	if a.lifespan > 0 {
		a.lifespan--
	}
}

func (a *Agent) applyLiquids(f *Frame) {
	for _, lq := range f.liquids {
		if lq.ID == a.id {
			continue
		}
		if isInside(a, lq.ElementState) {
			a.ApplyForce(drag(a, lq))
		}
	}
}

// applyEmitters runs repellers before attractors, each in registration
// order.
func (a *Agent) applyEmitters(f *Frame) {
	for _, rp := range f.repellers {
		if rp.ID == a.id {
			continue
		}
		a.ApplyForce(attract(a, rp))
	}
	for _, at := range f.attractors {
		if at.ID == a.id {
			continue
		}
		a.ApplyForce(attract(a, at))
	}
}

// applySensors places each sensor at its polar offset, scans the frame
// and applies activation forces. Reports whether any sensor fired.
func (a *Agent) applySensors(f *Frame) bool {
	activated := false
	for _, s := range a.Sensors {
		dist, ang := s.Offset()
		s.Place(polarOffset(a.location, dist, a.angle+ang))
		if s.Scan(f) {
			a.ApplyForce(s.ActivationForce(a))
			activated = true
		}
	}
	return activated
}

// applyMotor pushes the agent toward MotorSpeed along its current
// heading, braking when it is already faster.
func (a *Agent) applyMotor() {
	if a.MotorSpeed == 0 {
		return
	}
	desired := a.velocity
	desired.Normalize()
	if a.velocity.Mag() > a.MotorSpeed {
		desired.Mult(-a.MotorSpeed)
	} else {
		desired.Mult(a.MotorSpeed)
	}
	a.ApplyForce(desired)
}

func (a *Agent) applyEnvironment() {
	if a.world.C != 0 {
		friction := a.velocity
		friction.Mult(-1)
		friction.Normalize()
		friction.Mult(a.world.C)
		a.ApplyForce(friction)
	}
	a.ApplyForce(a.world.Wind)
	a.ApplyForce(a.world.Gravity)
}

// applyTargets resolves the mouse, seek and follow targets against the
// frame. Dangling ids are skipped.
func (a *Agent) applyTargets(f *Frame) {
	if a.FollowMouse {
		a.ApplyForce(a.seek(f.Mouse))
	}
	if a.SeekTarget != 0 {
		if st, ok := f.Element(a.SeekTarget); ok {
			a.ApplyForce(a.seek(st.Location))
		}
	}
	if a.FollowTarget != 0 {
		if st, ok := f.Element(a.FollowTarget); ok {
			a.ApplyForce(a.follow(st.Location))
		}
	}
}

// applyFlowField reads the cell under the agent. A missing column means
// no force; a missing row within a present column degrades to following
// the agent's own location.
func (a *Agent) applyFlowField(f *Frame) {
	if a.FlowField == 0 {
		return
	}
	ff, ok := f.Field(a.FlowField)
	if !ok || ff.Resolution <= 0 {
		return
	}
	col := int(math.Floor(a.location.X / ff.Resolution))
	row := int(math.Floor(a.location.Y / ff.Resolution))
	column, ok := ff.Field[col]
	if !ok {
		return
	}
	cell, ok := column[row]
	if !ok {
		cell = a.location
	}
	a.ApplyForce(a.follow(cell))
}

// integrate folds accumulated acceleration into velocity, clamps speed
// and moves the agent. MaxSpeed zero disables the upper clamp.
func (a *Agent) integrate() {
	a.velocity.Add(a.acceleration)
	if a.MaxSpeed > 0 {
		a.velocity.Limit(a.MaxSpeed)
	}
	if a.MinSpeed > 0 {
		a.velocity.LimitLow(a.MinSpeed)
	}
	a.location.Add(a.velocity)
}

// applyParent overrides the integrated location with the parent's
// snapshot location plus the polar offset. A dangling parent id leaves
// the integrated location in place.
func (a *Agent) applyParent(f *Frame) {
	if a.Parent == 0 {
		return
	}
	p, ok := f.Element(a.Parent)
	if !ok {
		return
	}
	if a.OffsetDistance != 0 {
		a.location = polarOffset(p.Location, a.OffsetDistance, p.Angle+a.OffsetAngle)
	} else {
		a.location = p.Location
	}
}
