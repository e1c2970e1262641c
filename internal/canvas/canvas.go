// Package canvas is the pixel surface the preview draws into and its
// terminal encoding.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/kyaoi/artex/internal/preview"
)

// Canvas is an RGBA framebuffer. It implements preview.Backend.
type Canvas struct {
	img    *image.RGBA
	scaler draw.Scaler
}

// New returns a canvas of w×h pixels.
func New(w, h int) *Canvas {
	c := &Canvas{scaler: draw.NearestNeighbor}
	c.Resize(w, h)
	return c
}

// Resize reallocates the framebuffer when the size changes.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if c.img != nil && c.img.Bounds().Dx() == w && c.img.Bounds().Dy() == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// WindowSize implements preview.Backend.
func (c *Canvas) WindowSize() preview.Size {
	return preview.MeasureImage(c.img)
}

// Clear fills the whole surface with col.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// DrawBackground stretches img over the whole surface.
func (c *Canvas) DrawBackground(img image.Image) {
	if img == nil || c.img.Bounds().Empty() {
		return
	}
	c.scaler.Scale(c.img, c.img.Bounds(), img, img.Bounds(), draw.Over, nil)
}

// DrawImage implements preview.Backend. The image is scaled into dst and
// clipped to the surface.
func (c *Canvas) DrawImage(img image.Image, dst preview.Rect) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	r := dst.Image()
	if r.Empty() || !r.Overlaps(c.img.Bounds()) {
		return
	}
	c.scaler.Scale(c.img, r, img, img.Bounds(), draw.Over, nil)
}
