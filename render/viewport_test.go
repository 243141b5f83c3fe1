package render_test

import (
	"testing"

	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
	"github.com/stretchr/testify/assert"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := render.Viewport{PixelsPerUnit: 100, OriginX: 0.5, OriginY: 0.75, Width: 800, Height: 400}

	x, y := vp.ToScreen(physics.Vec2{})
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	x, y = vp.ToScreen(physics.Vec2{X: 1, Y: 1})
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 200.0, y, "y grows upward in world space")

	p := physics.Vec2{X: -1.25, Y: 0.5}
	x, y = vp.ToScreen(p)
	back := vp.ToWorld(x, y)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestImageTransformFlipsRows(t *testing.T) {
	vp := render.Viewport{PixelsPerUnit: 100, Width: 200, Height: 200, OriginY: 1}

	sx, sy, tx, ty := vp.ImageTransform(50, 25, render.RectXYWH(0, 0, 1, 0.5))
	assert.Equal(t, 2.0, sx)
	assert.Equal(t, -2.0, sy)
	assert.Equal(t, 0.0, tx)
	assert.Equal(t, 200.0, ty)

	// the top row of the image ends up half a unit above the bottom edge
	assert.Equal(t, 150.0, ty+sy*25)
}
