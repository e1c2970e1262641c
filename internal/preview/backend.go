// Package preview renders the sliding "book" preview of the selected entry.
//
// It rasterizes entry names into fill and outline images, keeps the two
// label slots the slide animation needs, derives all geometry from the
// window and image sizes, and drives the timed transition between the
// outgoing and incoming label.
package preview

import (
	"image"
	"time"
)

// Backend is the drawing surface the preview renders into.
type Backend interface {
	// DrawImage scales img into dst. Empty rects must be ignored.
	DrawImage(img image.Image, dst Rect)
	// WindowSize reports the current drawable size in pixels.
	WindowSize() Size
}

// Clock returns the current time.
type Clock func() time.Time

// MeasureImage returns the pixel size of img. A nil image measures zero.
func MeasureImage(img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}
