package sprite_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/plus3/adventurer/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opaque = color.NRGBA{R: 200, G: 40, B: 10, A: 255}

// blob returns a w×h transparent image with an opaque block over r.
func blob(w, h int, r image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, opaque)
		}
	}
	return img
}

func TestSqueezeTrimsEverySide(t *testing.T) {
	img := blob(10, 8, image.Rect(2, 3, 5, 7))

	out := sprite.Squeeze(img)
	assert.Equal(t, image.Rect(0, 0, 3, 4), out.Bounds())
	for y := range 4 {
		for x := range 3 {
			assert.Equal(t, opaque, out.NRGBAAt(x, y))
		}
	}
}

func TestSqueezeKeepsInteriorHoles(t *testing.T) {
	img := blob(6, 6, image.Rect(1, 1, 5, 5))
	img.SetNRGBA(2, 2, color.NRGBA{})

	out := sprite.Squeeze(img)
	assert.Equal(t, image.Rect(0, 0, 4, 4), out.Bounds())
	assert.Equal(t, uint8(0), out.NRGBAAt(1, 1).A)
	assert.Equal(t, uint8(255), out.NRGBAAt(0, 0).A)
}

func TestSqueezeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		img  *image.NRGBA
	}{
		{"centered", blob(10, 10, image.Rect(3, 3, 6, 8))},
		{"corner", blob(7, 5, image.Rect(0, 0, 2, 2))},
		{"full", blob(4, 4, image.Rect(0, 0, 4, 4))},
		{"single pixel", blob(9, 3, image.Rect(8, 2, 9, 3))},
		{"transparent", blob(5, 5, image.Rectangle{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := sprite.Squeeze(tt.img)
			twice := sprite.Squeeze(once)
			assert.Equal(t, once.Bounds(), twice.Bounds())
			assert.Equal(t, once.Pix, twice.Pix)
		})
	}
}

func TestClipRatioMatchesTrimmedImage(t *testing.T) {
	src := blob(50, 37, image.Rect(10, 5, 30, 37))

	c, err := sprite.NewClip(src, src.Bounds(), false, true)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Width())
	assert.Equal(t, 32, c.Height())
	assert.InDelta(t, float64(c.Width())/float64(c.Height()), c.WidthOverHeight, 1e-12)

	raw, err := sprite.NewClip(src, src.Bounds(), false, false)
	require.NoError(t, err)
	assert.InDelta(t, 50.0/37.0, raw.WidthOverHeight, 1e-12)
}

func TestClipFullyTransparentKeepsSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	first, err := sprite.NewClip(src, src.Bounds(), false, true)
	require.NoError(t, err)
	second, err := sprite.NewClip(src, src.Bounds(), false, true)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 10, 10), first.Image.Bounds())
	assert.Equal(t, 1.0, first.WidthOverHeight)
	assert.Equal(t, first.Image.Pix, second.Image.Pix)
}

func TestClipFlipsAndCrops(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	// opaque pixel at top-left of the 2×2 block starting at x=2
	src.SetNRGBA(2, 0, opaque)

	plain, err := sprite.NewClip(src, image.Rect(2, 0, 4, 2), false, false)
	require.NoError(t, err)
	// vertical flip moves the top row to the bottom
	assert.Equal(t, opaque, plain.Image.NRGBAAt(0, 1))
	assert.Equal(t, uint8(0), plain.Image.NRGBAAt(0, 0).A)

	flipped, err := sprite.NewClip(src, image.Rect(2, 0, 4, 2), true, false)
	require.NoError(t, err)
	assert.Equal(t, opaque, flipped.Image.NRGBAAt(1, 1))
}

func TestClipCropOutOfBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	for _, r := range []image.Rectangle{
		image.Rect(5, 5, 15, 8),
		image.Rect(0, 0, 0, 4),
		image.Rect(-1, 0, 3, 3),
	} {
		_, err := sprite.NewClip(src, r, false, false)
		assert.ErrorIs(t, err, sprite.ErrCropOutOfBounds, "rect %v", r)
	}
}
