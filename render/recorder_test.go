package render_test

import (
	"image"
	"testing"

	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	rec := &render.Recorder{}
	var c render.Canvas = rec

	c.Clear(render.Black)
	c.Circle(physics.Vec2{X: 1}, 0.5, render.Fill(render.Green))
	c.ImageRect(image.NewNRGBA(image.Rect(0, 0, 2, 2)), render.RectXYWH(0, 0, 1, 1), render.Fill(render.Red))

	assert.Equal(t, 1, rec.Count(render.OpClear))
	assert.Equal(t, 1, rec.Count(render.OpCircle))
	assert.Equal(t, 1, rec.Count(render.OpImageRect))
	assert.Equal(t, 0, rec.Count(render.OpLine))

	circles := rec.Filter(render.OpCircle)
	require.Len(t, circles, 1)
	assert.Equal(t, 0.5, circles[0].Radius)

	rec.Reset()
	assert.Empty(t, rec.Calls)
}

func TestOutlineClosesRect(t *testing.T) {
	rec := &render.Recorder{}
	r := render.RectXYWH(-0.5, -0.5, 1, 1)
	render.Outline(rec, r, render.Fill(render.Red))

	lines := rec.Filter(render.OpLine)
	require.Len(t, lines, 4)
	for i, l := range lines {
		next := lines[(i+1)%4]
		assert.Equal(t, l.P2, next.P1)
	}
	assert.Equal(t, r.Min(), lines[0].P1)
	assert.Equal(t, physics.Vec2{X: 0.5, Y: 0.5}, r.Max())
}
