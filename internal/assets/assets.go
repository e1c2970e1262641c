// Package assets loads the images and fonts the preview is drawn with.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder for prop and background images
	_ "image/png"  // PNG decoder for prop and background images
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

var errFontSize = errors.New("font size must be positive")

// LoadImage decodes a PNG or JPEG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fit shrinks img so its longest side is at most limit, keeping the aspect
// ratio. Smaller images are returned unchanged.
func Fit(img image.Image, limit int) image.Image {
	if img == nil || limit <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= limit && b.Dy() <= limit {
		return img
	}
	return resize.Thumbnail(uint(limit), uint(limit), img, resize.Lanczos3) //nolint:gosec // limit is positive
}

// LoadFont opens a TrueType/OpenType face at size points. An empty path
// uses the embedded Go Mono font.
func LoadFont(path string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, errFontSize
	}

	data := gomono.TTF
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = raw
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontName(path), err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("open face %s: %w", fontName(path), err)
	}
	return face, nil
}

func fontName(path string) string {
	if path == "" {
		return "gomono"
	}
	return path
}

// Book palette
var (
	bookCover  = color.RGBA{R: 0x8b, G: 0x3a, B: 0x2e, A: 0xff}
	bookSpine  = color.RGBA{R: 0x5e, G: 0x22, B: 0x1a, A: 0xff}
	bookPages  = color.RGBA{R: 0xf2, G: 0xe8, B: 0xcf, A: 0xff}
	bookBorder = color.RGBA{R: 0x2b, G: 0x14, B: 0x10, A: 0xff}
	bookPlate  = color.RGBA{R: 0xc9, G: 0xa2, B: 0x4d, A: 0xff}
)

// DefaultBook draws the built-in prop: a closed book seen from the front
// with a spine on the left, page edges on the right and a title plate near
// the top where the label goes.
func DefaultBook() image.Image {
	const w, h = 400, 500
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fill := func(r image.Rectangle, c color.Color) {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}

	fill(image.Rect(0, 0, w, h), bookBorder)
	fill(image.Rect(w-24, 8, w-4, h-8), bookPages)
	for y := 14; y < h-14; y += 6 {
		fill(image.Rect(w-24, y, w-4, y+1), bookBorder)
	}
	fill(image.Rect(4, 4, w-24, h-4), bookCover)
	fill(image.Rect(4, 4, 40, h-4), bookSpine)
	// title plate: 20% from the left, centred 20% down
	fill(image.Rect(w*18/100, h*20/100-40, w-36, h*20/100+40), bookBorder)
	fill(image.Rect(w*18/100+3, h*20/100-37, w-39, h*20/100+37), bookPlate)
	return img
}
