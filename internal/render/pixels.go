package render

import (
	"image"
	"image/color"
)

// fillRectRGBA paints rect with c in an RGBA buffer of the given row stride.
// rect must already be clipped to the buffer.
func fillRectRGBA(buf []byte, stride int, rect image.Rectangle, c color.RGBA) {
	row := rect.Min.Y*stride + rect.Min.X*4
	n := rect.Dx() * 4
	first := buf[row : row+n]
	for i := 0; i < n; i += 4 {
		first[i+0] = c.R
		first[i+1] = c.G
		first[i+2] = c.B
		first[i+3] = c.A
	}
	for y := rect.Min.Y + 1; y < rect.Max.Y; y++ {
		row += stride
		copy(buf[row:row+n], first)
	}
}

// toRGBA converts any color to 8-bit RGBA.
func toRGBA(c color.Color) color.RGBA {
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
