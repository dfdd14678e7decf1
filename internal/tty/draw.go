// Package tty shows a render session in a terminal, two raster rows per
// text row.
package tty

import (
	"image/color"

	"electric-fields/internal/render"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints its top half in the foreground color and its bottom half
// in the background color.
const halfBlock = '▀'

// CellSetter is the part of tcell.Screen the painter needs.
type CellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// RasterSize returns the raster that fills a cols*rows terminal area.
func RasterSize(cols, rows int) (w, h int) {
	return max(cols, 1), max(rows, 1) * 2
}

// CellColors returns the two pixels shown by the text cell at (col, row).
// Pixels outside the raster are black.
func CellColors(r *render.Raster, col, row int) (top, bottom color.RGBA) {
	return r.RGBAAt(col, 2*row), r.RGBAAt(col, 2*row+1)
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw paints r into a cols*rows area of s.
func Draw(s CellSetter, r *render.Raster, cols, rows int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := CellColors(r, col, row)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			s.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// DrawText writes s on row y starting at column x, clipped to width.
func DrawText(dst CellSetter, x, y, width int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		if col >= x+width {
			return
		}
		dst.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+width; col++ {
		dst.SetContent(col, y, ' ', nil, style)
	}
}
