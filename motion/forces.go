package motion

import "github.com/pthm-cable/drift/vec"

// attract computes the inverse-square force a point source exerts on the
// agent. Distance is clamped to [agent area / 8, source area] before the
// falloff so the force neither blows up at close range nor reaches past
// the source's footprint. Repulsion is the same law with a negative G.
func attract(a *Agent, source EmitterState) vec.Vec {
	force := vec.Subtract(source.Location, a.location)
	d := force.Mag()
	d = clamp(d, a.Width*a.Height/8, source.Width*source.Height)
	force.Normalize()
	strength := source.G * source.Mass * a.Mass / (d * d)
	force.Mult(strength)
	return force
}

// drag computes quadratic fluid drag opposing the agent's velocity:
// magnitude c * speed^2 against the direction of travel.
func drag(a *Agent, liquid LiquidState) vec.Vec {
	speed := a.velocity.Mag()
	force := a.velocity
	force.Normalize()
	force.Mult(-liquid.C * speed * speed)
	return force
}

// isInside reports whether the agent's bounding box overlaps the
// element's, comparing half extents on both axes.
func isInside(a *Agent, e ElementState) bool {
	return a.location.X+a.Width/2 > e.Location.X-e.Width/2 &&
		a.location.X-a.Width/2 < e.Location.X+e.Width/2 &&
		a.location.Y+a.Height/2 > e.Location.Y-e.Height/2 &&
		a.location.Y-a.Height/2 < e.Location.Y+e.Height/2
}
