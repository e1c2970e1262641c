package preview

import (
	"image"
	"math"
)

const (
	propHeightRatio  = 0.8
	labelWidthRatio  = 0.7
	labelLeftRatio   = 0.2
	labelCenterRatio = 0.2
)

// Size is a width/height pair in pixels.
type Size struct {
	W float64
	H float64
}

// Degenerate reports whether either dimension is zero or negative.
func (s Size) Degenerate() bool {
	return s.W <= 0 || s.H <= 0
}

// Rect is a destination rectangle in pixel space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Empty reports whether nothing would be drawn into r.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Image rounds r to integer pixel coordinates.
func (r Rect) Image() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := int(math.Round(r.X + r.W))
	y1 := int(math.Round(r.Y + r.H))
	return image.Rect(x0, y0, x1, y1)
}

// ComputeRects lays out the prop and the label drawn on it.
//
// The prop takes 80% of the window height and keeps the prop image's aspect
// ratio, centred and shifted horizontally by offset. The label spans 70% of
// the prop width, starts 20% in from the prop's left edge and is vertically
// centred on a line 20% down from the prop's top. Degenerate sizes yield
// empty rects.
func ComputeRects(window, prop, label Size, offset float64) (propRect, labelRect Rect) {
	if window.Degenerate() || prop.Degenerate() {
		return Rect{}, Rect{}
	}

	propRect.H = window.H * propHeightRatio
	propRect.W = prop.W * propRect.H / prop.H
	propRect.X = (window.W-propRect.W)/2 + offset
	propRect.Y = (window.H - propRect.H) / 2

	if label.Degenerate() {
		return propRect, Rect{}
	}

	ratio := label.W / label.H
	labelRect.W = propRect.W * labelWidthRatio
	labelRect.H = labelRect.W / ratio
	labelRect.X = propRect.X + propRect.W*labelLeftRatio
	labelRect.Y = propRect.Y + propRect.H*labelCenterRatio - labelRect.H/2
	return propRect, labelRect
}

// OutlineRect returns where the outline image goes so that its glyphs line
// up with the fill image drawn at labelRect. The outline is larger than the
// fill by the stroke thickness on every side; that margin is scaled by the
// same factor as the fill.
func OutlineRect(labelRect Rect, fill, outline Size) Rect {
	if labelRect.Empty() || fill.Degenerate() || outline.Degenerate() {
		return Rect{}
	}
	sx := labelRect.W / fill.W
	sy := labelRect.H / fill.H
	w := outline.W * sx
	h := outline.H * sy
	return Rect{
		X: labelRect.X - (w-labelRect.W)/2,
		Y: labelRect.Y - (h-labelRect.H)/2,
		W: w,
		H: h,
	}
}
