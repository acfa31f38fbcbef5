package motion

import (
	"math"

	"github.com/pthm-cable/drift/vec"
)

// clamp constrains v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// polarOffset returns origin displaced by distance at angleDeg.
func polarOffset(origin vec.Vec, distance, angleDeg float64) vec.Vec {
	theta := degToRad(angleDeg)
	origin.Add(vec.Vec{X: distance * math.Cos(theta), Y: distance * math.Sin(theta)})
	return origin
}

// finite reports whether v is a usable number (not NaN or Inf).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
