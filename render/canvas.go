// Package render defines the 2D drawing surface systems paint on, in world
// units with y pointing up.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/plus3/adventurer/physics"
)

// Rect is an axis-aligned rectangle in world units. X,Y is the bottom-left
// corner.
type Rect struct {
	X, Y, W, H float64
}

// RectXYWH builds a Rect from its bottom-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Min is the bottom-left corner.
func (r Rect) Min() physics.Vec2 { return physics.Vec2{X: r.X, Y: r.Y} }

// Max is the top-right corner.
func (r Rect) Max() physics.Vec2 { return physics.Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// Corners returns the four corners counter-clockwise from bottom-left.
func (r Rect) Corners() [4]physics.Vec2 {
	return [4]physics.Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// String formats the rectangle as [x y w h].
func (r Rect) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f %.3f]", r.X, r.Y, r.W, r.H)
}

// Paint carries the color and stroke width for a draw call.
type Paint struct {
	Color       color.Color
	StrokeWidth float64
	AntiAlias   bool
}

// Fill returns an anti-aliased paint of the given color.
func Fill(c color.Color) Paint {
	return Paint{Color: c, StrokeWidth: 1, AntiAlias: true}
}

var (
	Red   = color.NRGBA{R: 0xff, A: 0xff}
	Green = color.NRGBA{G: 0xff, A: 0xff}
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.NRGBA{A: 0xff}
)

// Canvas is a surface painted in world units.
type Canvas interface {
	Clear(c color.Color)
	Circle(center physics.Vec2, radius float64, p Paint)
	ImageRect(img image.Image, dest Rect, p Paint)
	Line(p1, p2 physics.Vec2, p Paint)
}

// Target is the singleton through which systems reach the canvas of the
// current frame. The host swaps Canvas in place every frame.
type Target struct {
	Canvas Canvas
}

// Outline draws the edges of r as four lines.
func Outline(c Canvas, r Rect, p Paint) {
	corners := r.Corners()
	for i := range corners {
		c.Line(corners[i], corners[(i+1)%len(corners)], p)
	}
}
