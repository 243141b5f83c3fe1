package render

import (
	"image"
	"image/color"

	"github.com/plus3/adventurer/physics"
)

// Op names a recorded canvas call.
type Op int

const (
	OpClear Op = iota
	OpCircle
	OpImageRect
	OpLine
)

// String returns the lower-case op name.
func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpImageRect:
		return "image"
	case OpLine:
		return "line"
	}
	return "unknown"
}

// Call is one recorded canvas call. Only the fields relevant to Op are set.
type Call struct {
	Op     Op
	Color  color.Color
	Center physics.Vec2
	Radius float64
	Image  image.Image
	Dest   Rect
	P1, P2 physics.Vec2
	Paint  Paint
}

// Recorder is a Canvas that records every call. Headless runs and tests
// draw into it.
type Recorder struct {
	Calls []Call
}

// Clear records a clear.
func (r *Recorder) Clear(c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: c})
}

// Circle records a circle.
func (r *Recorder) Circle(center physics.Vec2, radius float64, p Paint) {
	r.Calls = append(r.Calls, Call{Op: OpCircle, Center: center, Radius: radius, Paint: p})
}

// ImageRect records an image draw.
func (r *Recorder) ImageRect(img image.Image, dest Rect, p Paint) {
	r.Calls = append(r.Calls, Call{Op: OpImageRect, Image: img, Dest: dest, Paint: p})
}

// Line records a line.
func (r *Recorder) Line(p1, p2 physics.Vec2, p Paint) {
	r.Calls = append(r.Calls, Call{Op: OpLine, P1: p1, P2: p2, Paint: p})
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of op in order.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
