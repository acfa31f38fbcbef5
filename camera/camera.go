// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into the simulation world.
// Supports pan, zoom and follow with world-bound clamping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (for position clamping)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	// Compute minimum zoom so viewport never exceeds world bounds
	// At zoom Z, visible world area is (viewportW/Z, viewportH/Z)
	// We need viewportW/Z <= worldW AND viewportH/Z <= worldH
	// So Z >= viewportW/worldW AND Z >= viewportH/worldH
	minZoomX := viewportW / worldW
	minZoomY := viewportH / worldH
	minZoom := minZoomX
	if minZoomY > minZoom {
		minZoom = minZoomY
	}

	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   minZoom,
		MaxZoom:   4.0,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	// Apply zoom and center on viewport
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	// Reverse the viewport centering and zoom
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	dx := wx - c.X
	dy := wy - c.Y

	// Half-extents of the visible area in world coords, plus margin for radius
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius

	// Check if within visible bounds
	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	minZoomX := viewportW / c.WorldW
	minZoomY := viewportH / c.WorldH
	c.MinZoom = minZoomX
	if minZoomY > c.MinZoom {
		c.MinZoom = minZoomY
	}
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	c.clampPosition()
}

// Pan moves the camera by the given delta in screen pixels, clamped so
// the view stays inside the world.
func (c *Camera) Pan(dx, dy float32) {
	// Convert screen delta to world delta (inverse of zoom)
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampPosition()
}

// Follow centers the camera on a world position, clamped to the world.
func (c *Camera) Follow(wx, wy float32) {
	c.X = wx
	c.Y = wy
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	// Zooming out widens the view, which can push it past the world edge
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
	c.clampPosition()
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clampPosition keeps the visible area inside the world. When the view
// is wider than the world on an axis, the camera centers on that axis.
func (c *Camera) clampPosition() {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	if halfW >= c.WorldW/2 {
		c.X = c.WorldW / 2
	} else {
		c.X = clamp(c.X, halfW, c.WorldW-halfW)
	}
	if halfH >= c.WorldH/2 {
		c.Y = c.WorldH / 2
	} else {
		c.Y = clamp(c.Y, halfH, c.WorldH-halfH)
	}
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
