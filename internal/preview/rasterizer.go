package preview

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var errNilFace = errors.New("preview: style has no font face")

// Rasterizer turns a label into renderable images.
type Rasterizer interface {
	Rasterize(text string) (*RasterizedLabel, error)
}

// RasterizedLabel holds the fill and outline images of one label. Both are
// immutable once created.
type RasterizedLabel struct {
	Text    string
	Fill    image.Image
	Outline image.Image
}

// FillSize returns the pixel size of the fill image.
func (l *RasterizedLabel) FillSize() Size {
	if l == nil {
		return Size{}
	}
	return MeasureImage(l.Fill)
}

// OutlineSize returns the pixel size of the outline image.
func (l *RasterizedLabel) OutlineSize() Size {
	if l == nil {
		return Size{}
	}
	return MeasureImage(l.Outline)
}

// Style fixes how labels are rasterized.
type Style struct {
	Face      font.Face
	Fill      color.Color
	Outline   color.Color
	Thickness int
}

// GlyphRasterizer draws labels with a font face.
type GlyphRasterizer struct {
	style Style
}

// NewGlyphRasterizer returns a rasterizer for style.
func NewGlyphRasterizer(style Style) (*GlyphRasterizer, error) {
	if style.Face == nil {
		return nil, errNilFace
	}
	if style.Fill == nil {
		style.Fill = color.White
	}
	if style.Outline == nil {
		style.Outline = color.Black
	}
	if style.Thickness < 0 {
		style.Thickness = 0
	}
	return &GlyphRasterizer{style: style}, nil
}

// Rasterize renders text as a solid fill image and an outline image that is
// Thickness pixels larger on every side. Empty text gives zero-sized images.
func (r *GlyphRasterizer) Rasterize(text string) (*RasterizedLabel, error) {
	mask := r.glyphMask(text)
	if mask == nil {
		empty := image.NewRGBA(image.Rectangle{})
		return &RasterizedLabel{Text: text, Fill: empty, Outline: empty}, nil
	}

	fill := image.NewRGBA(mask.Bounds())
	draw.DrawMask(fill, fill.Bounds(), image.NewUniform(r.style.Fill), image.Point{}, mask, image.Point{}, draw.Over)

	stroke := strokeMask(mask, r.style.Thickness)
	outline := image.NewRGBA(stroke.Bounds())
	draw.DrawMask(outline, outline.Bounds(), image.NewUniform(r.style.Outline), image.Point{}, stroke, image.Point{}, draw.Over)

	return &RasterizedLabel{Text: text, Fill: fill, Outline: outline}, nil
}

// glyphMask draws text into an alpha mask covering both the line box
// (advance by ascent plus descent) and the ink bounds, so glyphs that
// overhang their advance are not clipped. It returns nil when there is
// nothing to draw.
func (r *GlyphRasterizer) glyphMask(text string) *image.Alpha {
	if text == "" {
		return nil
	}
	face := r.style.Face
	metrics := face.Metrics()
	ink, advance := font.BoundString(face, text)

	minX := min(0, ink.Min.X.Floor())
	maxX := max(advance.Ceil(), ink.Max.X.Ceil())
	minY := min(-metrics.Ascent.Ceil(), ink.Min.Y.Floor())
	maxY := max(metrics.Descent.Ceil(), ink.Max.Y.Ceil())
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(text)
	return mask
}

// strokeMask dilates mask by t pixels and removes the original glyph area,
// leaving only the border. The result is 2t pixels larger in each dimension.
func strokeMask(mask *image.Alpha, t int) *image.Alpha {
	b := mask.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, b.Dx()+2*t, b.Dy()+2*t))
	if t == 0 {
		return out
	}

	r2 := (t*2 + 1) * (t*2 + 1)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			a := mask.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			for dy := -t; dy <= t; dy++ {
				for dx := -t; dx <= t; dx++ {
					// disc of radius t+0.5, scaled by 4 to stay in integers
					if 4*(dx*dx+dy*dy) > r2 {
						continue
					}
					ox, oy := x+t+dx, y+t+dy
					if out.AlphaAt(ox, oy).A < a {
						out.SetAlpha(ox, oy, color.Alpha{A: a})
					}
				}
			}
		}
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			inner := mask.AlphaAt(x, y).A
			if inner == 0 {
				continue
			}
			ox, oy := x+t, y+t
			cur := out.AlphaAt(ox, oy).A
			if inner >= cur {
				out.SetAlpha(ox, oy, color.Alpha{})
				continue
			}
			out.SetAlpha(ox, oy, color.Alpha{A: cur - inner})
		}
	}
	return out
}
