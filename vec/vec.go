// Package vec provides the 2D vector type used throughout the engine.
package vec

import "math"

// Vec is a 2D vector. Mutating methods operate on the receiver and return
// it so operations can be chained; copying a Vec is plain assignment.
type Vec struct {
	X float64
	Y float64
}

// Subtract returns a new vector a - b.
func Subtract(a, b Vec) Vec {
	return Vec{X: a.X - b.X, Y: a.Y - b.Y}
}

// Add adds u to v.
func (v *Vec) Add(u Vec) *Vec {
	v.X += u.X
	v.Y += u.Y
	return v
}

// Sub subtracts u from v.
func (v *Vec) Sub(u Vec) *Vec {
	v.X -= u.X
	v.Y -= u.Y
	return v
}

// Mult scales v by s.
func (v *Vec) Mult(s float64) *Vec {
	v.X *= s
	v.Y *= s
	return v
}

// Div divides v by s.
func (v *Vec) Div(s float64) *Vec {
	v.X /= s
	v.Y /= s
	return v
}

// Mag returns the magnitude of v.
func (v Vec) Mag() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagSq returns the squared magnitude of v.
func (v Vec) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the euclidean distance between v and u.
func (v Vec) Distance(u Vec) float64 {
	dx := v.X - u.X
	dy := v.Y - u.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Heading returns the direction of v in radians. A zero vector points
// along the positive x axis.
func (v Vec) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize scales v to unit length. A zero vector is left unchanged.
func (v *Vec) Normalize() *Vec {
	m := v.Mag()
	if m != 0 {
		v.X /= m
		v.Y /= m
	}
	return v
}

// Limit clamps the magnitude of v to at most max, preserving direction.
func (v *Vec) Limit(max float64) *Vec {
	if v.Mag() > max {
		v.Normalize()
		v.Mult(max)
	}
	return v
}

// LimitLow scales v up to at least min magnitude. A zero vector is left
// unchanged since it has no direction to scale along.
func (v *Vec) LimitLow(min float64) *Vec {
	m := v.Mag()
	if m != 0 && m < min {
		v.Normalize()
		v.Mult(min)
	}
	return v
}
