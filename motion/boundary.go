package motion

import "github.com/pthm-cable/drift/vec"

// checkWorldEdges applies the wrap or bounce policy against the world
// bounds. Wrap teleports across to the opposite edge; bounce clamps the
// bounding box inside the world and reflects the velocity component
// scaled by Bounciness. Reports whether any edge adjusted the agent; when
// it did and diff is non-nil, diff receives the location displacement
// (before minus after) for camera compensation.
func (a *Agent) checkWorldEdges(diff *vec.Vec) bool {
	w := a.world
	before := a.location
	crossed := false

	if a.WrapEdges {
		if a.location.X > w.width {
			a.location.X = 0
			crossed = true
		} else if a.location.X < 0 {
			a.location.X = w.width
			crossed = true
		}
		if a.location.Y > w.height {
			a.location.Y = 0
			crossed = true
		} else if a.location.Y < 0 {
			a.location.Y = w.height
			crossed = true
		}
	} else {
		halfW := a.Width / 2
		if a.location.X+halfW > w.width {
			a.location.X = w.width - halfW
			a.velocity.X *= -a.Bounciness
			crossed = true
		} else if a.location.X < halfW {
			a.location.X = halfW
			a.velocity.X *= -a.Bounciness
			crossed = true
		}
		halfH := a.Height / 2
		if a.location.Y+halfH > w.height {
			a.location.Y = w.height - halfH
			a.velocity.Y *= -a.Bounciness
			crossed = true
		} else if a.location.Y < halfH {
			a.location.Y = halfH
			a.velocity.Y *= -a.Bounciness
			crossed = true
		}
	}

	if crossed && diff != nil {
		*diff = vec.Subtract(before, a.location)
	}
	return crossed
}

// avoidWorldEdges steers back toward the interior when the agent comes
// within AvoidEdgesStrength of a bound, independently per axis: the
// desired velocity is full MaxSpeed away from the near edge on that axis
// with the other axis left at the current velocity, converted seek-style.
func (a *Agent) avoidWorldEdges() {
	w := a.world

	var targetX float64
	if a.location.X < a.AvoidEdgesStrength {
		targetX = a.MaxSpeed
	} else if a.location.X > w.width-a.AvoidEdgesStrength {
		targetX = -a.MaxSpeed
	}
	if targetX != 0 {
		desired := vec.Vec{X: targetX, Y: a.velocity.Y}
		desired.Sub(a.velocity)
		desired.Limit(a.MaxSteeringForce)
		a.ApplyForce(desired)
	}

	var targetY float64
	if a.location.Y < a.AvoidEdgesStrength {
		targetY = a.MaxSpeed
	} else if a.location.Y > w.height-a.AvoidEdgesStrength {
		targetY = -a.MaxSpeed
	}
	if targetY != 0 {
		desired := vec.Vec{X: a.velocity.X, Y: targetY}
		desired.Sub(a.velocity)
		desired.Limit(a.MaxSteeringForce)
		a.ApplyForce(desired)
	}
}
