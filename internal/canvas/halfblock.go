package canvas

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const upperHalf = "▀"

// Cells returns how many terminal rows and columns the surface occupies.
func (c *Canvas) Cells() (cols, rows int) {
	b := c.img.Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}

// HalfBlocks encodes the surface for a truecolor terminal. Each cell shows
// two vertically stacked pixels: the upper one as the foreground of an
// upper half block, the lower one as its background.
func (c *Canvas) HalfBlocks() string {
	cols, rows := c.Cells()
	if cols == 0 || rows == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(rows * cols * 4)
	for row := 0; row < rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var lastTop, lastBottom color.RGBA
		for x := 0; x < cols; x++ {
			top := c.img.RGBAAt(x, 2*row)
			bottom := c.img.RGBAAt(x, 2*row+1)
			if x == 0 || top != lastTop || bottom != lastBottom {
				sb.WriteString(cellStyle(top, bottom))
				lastTop, lastBottom = top, bottom
			}
			sb.WriteString(upperHalf)
		}
		sb.WriteString(ansi.ResetStyle)
	}
	return sb.String()
}

func cellStyle(top, bottom color.RGBA) string {
	return ansi.Style{}.
		ForegroundColor(trueColor(top)).
		BackgroundColor(trueColor(bottom)).
		String()
}

func trueColor(c color.RGBA) ansi.TrueColor {
	return ansi.TrueColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}
