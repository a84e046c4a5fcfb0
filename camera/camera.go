// Package camera provides the 2D viewport that follows the player over a bounded world.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera maps world coordinates to screen coordinates.
type Camera struct {
	// Target is the world point shown at the viewport centre.
	Target r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	ViewportW, ViewportH float64
	WorldW, WorldH       float64

	MinZoom, MaxZoom float64
}

// New creates a camera centred on the world at 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		Target:    r2.Vec{X: worldW / 2, Y: worldH / 2},
		Zoom:      1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   4,
	}
	c.updateMinZoom()
	return c
}

// updateMinZoom keeps the visible area no larger than the world.
func (c *Camera) updateMinZoom() {
	c.MinZoom = math.Max(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Follow centres on p, clamped so the view never leaves the world.
func (c *Camera) Follow(p r2.Vec) {
	halfW, halfH := c.halfExtents()
	c.Target = r2.Vec{
		X: clampAxis(p.X, halfW, c.WorldW),
		Y: clampAxis(p.Y, halfH, c.WorldH),
	}
}

// clampAxis clamps v into [half, size-half], centring when the view is wider than size.
func clampAxis(v, half, size float64) float64 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(v, half, size-half)
}

func (c *Camera) halfExtents() (float64, float64) {
	return c.ViewportW / (2 * c.Zoom), c.ViewportH / (2 * c.Zoom)
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	d := r2.Sub(w, c.Target)
	return r2.Vec{X: c.ViewportW/2 + d.X*c.Zoom, Y: c.ViewportH/2 + d.Y*c.Zoom}
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Vec{
		X: c.Target.X + (s.X-c.ViewportW/2)/c.Zoom,
		Y: c.Target.Y + (s.Y-c.ViewportH/2)/c.Zoom,
	}
}

// IsVisible reports whether a box at pos with the given size intersects the view.
func (c *Camera) IsVisible(pos, size r2.Vec) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return pos.X < maxX && pos.X+size.X > minX && pos.Y < maxY && pos.Y+size.Y > minY
}

// Resize updates the viewport and re-derives the zoom limits.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.updateMinZoom()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// VisibleWorldBounds returns the world rectangle currently on screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW, halfH := c.halfExtents()
	return c.Target.X - halfW, c.Target.Y - halfH, c.Target.X + halfW, c.Target.Y + halfH
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}
