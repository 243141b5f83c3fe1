// Package ebiten hosts the game in an ebiten window: a render.Canvas over
// an ebiten image, keyboard translation and the ebiten.Game loop.
package ebiten

import (
	"image"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/adventurer/physics"
	"github.com/plus3/adventurer/render"
)

// Canvas draws world-unit primitives onto the current screen image.
type Canvas struct {
	viewport render.Viewport
	screen   *eb.Image
	textures map[image.Image]*eb.Image
}

// NewCanvas creates a canvas; SetTarget must be called before drawing.
func NewCanvas(pixelsPerUnit, originX, originY float64) *Canvas {
	return &Canvas{
		viewport: render.Viewport{PixelsPerUnit: pixelsPerUnit, OriginX: originX, OriginY: originY},
		textures: make(map[image.Image]*eb.Image),
	}
}

// SetTarget points the canvas at the screen of the current frame.
func (c *Canvas) SetTarget(screen *eb.Image) {
	c.screen = screen
	b := screen.Bounds()
	c.viewport.Width, c.viewport.Height = b.Dx(), b.Dy()
}

// Viewport returns the world to pixel mapping of the current target.
func (c *Canvas) Viewport() render.Viewport {
	return c.viewport
}

// Clear fills the whole target with col.
func (c *Canvas) Clear(col color.Color) {
	c.screen.Fill(col)
}

// Circle draws a filled circle.
func (c *Canvas) Circle(center physics.Vec2, radius float64, p render.Paint) {
	x, y := c.viewport.ToScreen(center)
	vector.DrawFilledCircle(c.screen, float32(x), float32(y), float32(c.viewport.Scale(radius)), p.Color, p.AntiAlias)
}

// Line strokes a segment; a zero stroke width draws one pixel wide.
func (c *Canvas) Line(p1, p2 physics.Vec2, p render.Paint) {
	x0, y0 := c.viewport.ToScreen(p1)
	x1, y1 := c.viewport.ToScreen(p2)
	width := p.StrokeWidth
	if width <= 0 {
		width = 1
	}
	vector.StrokeLine(c.screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.Color, p.AntiAlias)
}

// ImageRect draws img stretched over dest. Images are uploaded once and
// cached by identity; clips are immutable so the cache never goes stale.
func (c *Canvas) ImageRect(img image.Image, dest render.Rect, _ render.Paint) {
	tex, ok := c.textures[img]
	if !ok {
		tex = eb.NewImageFromImage(img)
		c.textures[img] = tex
	}

	b := img.Bounds()
	sx, sy, tx, ty := c.viewport.ImageTransform(b.Dx(), b.Dy(), dest)
	op := &eb.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(tx, ty)
	op.Filter = eb.FilterNearest
	c.screen.DrawImage(tex, op)
}
