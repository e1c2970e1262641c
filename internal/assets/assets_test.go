package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func createTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImage(t *testing.T) {
	path := createTestPNG(t, 40, 50)

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestLoadImage_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadImage(garbage)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 1000))

	fitted := Fit(img, 100)
	assert.Equal(t, 80, fitted.Bounds().Dx())
	assert.Equal(t, 100, fitted.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 20, 30))
	assert.Same(t, small, Fit(small, 100))
	assert.Same(t, img, Fit(img, 0))
	assert.Nil(t, Fit(nil, 10))
}

func TestLoadFont(t *testing.T) {
	face, err := LoadFont("", 32)
	require.NoError(t, err)
	assert.Positive(t, face.Metrics().Height.Ceil())

	path := filepath.Join(t.TempDir(), "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	face, err = LoadFont(path, 16)
	require.NoError(t, err)
	assert.NotNil(t, face)
}

func TestLoadFont_Errors(t *testing.T) {
	_, err := LoadFont("", 0)
	assert.ErrorIs(t, err, errFontSize)

	_, err = LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 12)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = LoadFont(bad, 12)
	assert.Error(t, err)
}

func TestDefaultBook(t *testing.T) {
	img := DefaultBook()
	b := img.Bounds()
	assert.Equal(t, 400, b.Dx())
	assert.Equal(t, 500, b.Dy())

	_, _, _, a := img.At(b.Dx()/2, b.Dy()/2).RGBA()
	assert.Equal(t, uint32(0xffff), a, "book is opaque")
}
