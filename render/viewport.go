package render

import "github.com/plus3/adventurer/physics"

// Viewport maps world units (y up) onto a pixel surface (y down).
type Viewport struct {
	PixelsPerUnit float64
	// OriginX and OriginY place the world origin as a fraction of the
	// surface, measured from its top-left corner.
	OriginX, OriginY float64
	Width, Height    int
}

// ToScreen converts a world point to pixel coordinates.
func (v Viewport) ToScreen(p physics.Vec2) (x, y float64) {
	ox := v.OriginX * float64(v.Width)
	oy := v.OriginY * float64(v.Height)
	return ox + p.X*v.PixelsPerUnit, oy - p.Y*v.PixelsPerUnit
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y float64) physics.Vec2 {
	ox := v.OriginX * float64(v.Width)
	oy := v.OriginY * float64(v.Height)
	return physics.Vec2{X: (x - ox) / v.PixelsPerUnit, Y: (oy - y) / v.PixelsPerUnit}
}

// Scale converts a world length to pixels.
func (v Viewport) Scale(d float64) float64 {
	return d * v.PixelsPerUnit
}

// ImageTransform returns the scale and translation that draw an image of
// w×h pixels, stored bottom row first, into dest. The y scale is negative
// so that row 0 lands on the bottom edge of dest.
func (v Viewport) ImageTransform(w, h int, dest Rect) (sx, sy, tx, ty float64) {
	sx = v.Scale(dest.W) / float64(w)
	sy = -v.Scale(dest.H) / float64(h)
	tx, ty = v.ToScreen(dest.Min())
	return sx, sy, tx, ty
}
