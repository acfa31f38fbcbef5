package motion

import "github.com/pthm-cable/drift/vec"

// seek returns a steering force toward target. Inside half the world
// width the desired speed ramps linearly down to zero at the target
// (arrival damping); farther out it is full MaxSpeed. The force is the
// difference from the current velocity, limited to MaxSteeringForce.
func (a *Agent) seek(target vec.Vec) vec.Vec {
	desired := vec.Subtract(target, a.location)
	d := desired.Mag()
	desired.Normalize()

	half := a.world.width / 2
	if d < half {
		desired.Mult(a.MaxSpeed * d / half)
	} else {
		desired.Mult(a.MaxSpeed)
	}

	desired.Sub(a.velocity)
	desired.Limit(a.MaxSteeringForce)
	return desired
}

// flee returns the raw desired velocity pointing away from target at full
// MaxSpeed. Unlike seek it subtracts nothing and clamps nothing.
func (a *Agent) flee(target vec.Vec) vec.Vec {
	desired := vec.Subtract(target, a.location)
	desired.Normalize()
	desired.Mult(-a.MaxSpeed)
	return desired
}

// follow steers along target taken as a raw direction vector rather than
// a position relative to the agent. Flow-field cells already encode a
// direction, which is what this behavior is for.
func (a *Agent) follow(target vec.Vec) vec.Vec {
	desired := target
	desired.Mult(a.MaxSpeed)
	desired.Sub(a.velocity)
	desired.Limit(a.MaxSteeringForce)
	return desired
}

// separate steers away from same-kind neighbors closer than
// DesiredSeparation, weighting each offset by inverse distance. Returns
// the zero vector when no neighbor qualifies.
func (a *Agent) separate(elems []ElementState) vec.Vec {
	var sum vec.Vec
	count := 0

	for i := range elems {
		e := &elems[i]
		if e.Kind != a.Kind || e.ID == a.id {
			continue
		}
		d := a.location.Distance(e.Location)
		if d > 0 && d < a.DesiredSeparation {
			diff := vec.Subtract(a.location, e.Location)
			diff.Normalize()
			diff.Div(d)
			sum.Add(diff)
			count++
		}
	}

	if count == 0 {
		return vec.Vec{}
	}
	sum.Div(float64(count))
	return a.steerToward(sum)
}

// align steers toward the average velocity of same-kind neighbors within
// AlignRadius.
func (a *Agent) align(elems []ElementState) vec.Vec {
	var sum vec.Vec
	count := 0

	for i := range elems {
		e := &elems[i]
		if e.Kind != a.Kind || e.ID == a.id {
			continue
		}
		d := a.location.Distance(e.Location)
		if d > 0 && d < a.AlignRadius {
			sum.Add(e.Velocity)
			count++
		}
	}

	if count == 0 {
		return vec.Vec{}
	}
	sum.Div(float64(count))
	return a.steerToward(sum)
}

// cohesion steers toward the centroid of same-kind neighbors within
// CohesionRadius.
func (a *Agent) cohesion(elems []ElementState) vec.Vec {
	var sum vec.Vec
	count := 0

	for i := range elems {
		e := &elems[i]
		if e.Kind != a.Kind || e.ID == a.id {
			continue
		}
		d := a.location.Distance(e.Location)
		if d > 0 && d < a.CohesionRadius {
			sum.Add(e.Location)
			count++
		}
	}

	if count == 0 {
		return vec.Vec{}
	}
	sum.Div(float64(count))
	sum.Sub(a.location)
	return a.steerToward(sum)
}

// steerToward converts a desired direction into a bounded steering force:
// normalize, scale to MaxSpeed, subtract the current velocity, limit to
// MaxSteeringForce.
func (a *Agent) steerToward(desired vec.Vec) vec.Vec {
	desired.Normalize()
	desired.Mult(a.MaxSpeed)
	desired.Sub(a.velocity)
	desired.Limit(a.MaxSteeringForce)
	return desired
}

// flock applies the three flocking forces, each weighted by its strength
// and accumulated immediately.
func (a *Agent) flock(elems []ElementState) {
	sep := a.separate(elems)
	sep.Mult(a.SeparateStrength)
	a.ApplyForce(sep)

	ali := a.align(elems)
	ali.Mult(a.AlignStrength)
	a.ApplyForce(ali)

	coh := a.cohesion(elems)
	coh.Mult(a.CohesionStrength)
	a.ApplyForce(coh)
}
