// Package telemetry provides windowed simulation stats, performance
// tracking, and per-run CSV output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Spawned    int `csv:"spawned"`
	Removed    int `csv:"removed"`
	SensorHits int `csv:"sensor_hits"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Flock shape (sampled at window end)
	Polarization float64 `csv:"polarization"` // 1 = all headings aligned, 0 = isotropic
	SpreadRMS    float64 `csv:"spread_rms"`   // RMS distance from the population centroid
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, percentiles and max from speed values.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	// Calculate mean
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, p10, p50, p90, max
}

// Polarization measures heading alignment as the magnitude of the mean
// unit velocity. Agents at rest are skipped; returns 0 when every agent
// is at rest.
func Polarization(vxs, vys []float64) float64 {
	var sumX, sumY float64
	n := 0
	for i := range vxs {
		mag := math.Hypot(vxs[i], vys[i])
		if mag == 0 {
			continue
		}
		sumX += vxs[i] / mag
		sumY += vys[i] / mag
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Hypot(sumX, sumY) / float64(n)
}

// SpreadRMS measures dispersion as the root mean square distance from
// the centroid of the given positions.
func SpreadRMS(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}

	var cx, cy float64
	for i := range xs {
		cx += xs[i]
		cy += ys[i]
	}
	cx /= float64(n)
	cy /= float64(n)

	var sqSum float64
	for i := range xs {
		dx := xs[i] - cx
		dy := ys[i] - cy
		sqSum += dx*dx + dy*dy
	}
	return math.Sqrt(sqSum / float64(n))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("spawned", s.Spawned),
		slog.Int("removed", s.Removed),
		slog.Int("sensor_hits", s.SensorHits),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("spread_rms", s.SpreadRMS),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"population", s.Population,
		"spawned", s.Spawned,
		"removed", s.Removed,
		"sensor_hits", s.SensorHits,
		"speed_mean", s.SpeedMean,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"polarization", s.Polarization,
		"spread_rms", s.SpreadRMS,
	)
}
