// Package sprite builds pre-cropped animation frames out of a single sprite
// sheet image.
package sprite

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrCropOutOfBounds is returned when a clip rectangle is empty or does not
// fit inside the source image.
var ErrCropOutOfBounds = errors.New("crop rectangle out of bounds")

// Clip is one decoded frame, stored bottom row first so that it can be drawn
// straight into a y-up world.
type Clip struct {
	Image           *image.NRGBA
	WidthOverHeight float64
}

// NewClip crops rect out of src, mirrors it when flipped, trims transparent
// margins when squeeze is set, then flips it vertically.
func NewClip(src image.Image, rect image.Rectangle, flipped, squeeze bool) (*Clip, error) {
	if rect.Empty() || !rect.In(src.Bounds()) {
		return nil, fmt.Errorf("%w: %v not in %v", ErrCropOutOfBounds, rect, src.Bounds())
	}

	img := imaging.Crop(src, rect)
	if flipped {
		img = imaging.FlipH(img)
	}
	if squeeze {
		img = Squeeze(img)
	}
	img = imaging.FlipV(img)

	b := img.Bounds()
	return &Clip{
		Image:           img,
		WidthOverHeight: float64(b.Dx()) / float64(b.Dy()),
	}, nil
}

// Width and Height of the final image, in pixels.
func (c *Clip) Width() int  { return c.Image.Bounds().Dx() }
func (c *Clip) Height() int { return c.Image.Bounds().Dy() }

// Squeeze trims fully transparent rows and columns from every side of img.
// Each pass drops the leading transparent rows and turns the image 90°
// clockwise, so four passes visit every side and restore the orientation.
// A fully transparent image keeps its size.
func Squeeze(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for range 4 {
		if top := firstOpaqueRow(out); top > 0 {
			b := out.Bounds()
			out = imaging.Crop(out, image.Rect(b.Min.X, b.Min.Y+top, b.Max.X, b.Max.Y))
		}
		out = imaging.Rotate270(out)
	}
	return out
}

// firstOpaqueRow returns the offset of the first row holding a pixel with
// non-zero alpha, or 0 when there is none.
func firstOpaqueRow(img *image.NRGBA) int {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 3; x < len(row); x += 4 {
			if row[x] != 0 {
				return y
			}
		}
	}
	return 0
}
