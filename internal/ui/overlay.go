//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"electric-fields/internal/field"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws charge markers on top of the field view.
type Overlay struct {
	charges *field.Charges
	scale   int
	visible bool
	hover   field.Charge
	hovered bool
}

// NewOverlay constructs an overlay for charges drawn at the given scale.
func NewOverlay(charges *field.Charges, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{charges: charges, scale: scale, visible: true}
}

// Visible reports whether markers are drawn.
func (o *Overlay) Visible() bool { return o.visible }

// Update toggles the markers with F and tracks the charge under the cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.visible = !o.visible
	}
	mx, my := ebiten.CursorPosition()
	o.hover, o.hovered = o.charges.Find(mx/o.scale, my/o.scale)
}

// Draw paints a ring per charge, red for positive and blue for negative. The
// ring radius grows with the magnitude.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible {
		return
	}
	s := float32(o.scale)
	for _, c := range o.charges.Snapshot() {
		cx := (float32(c.X) + 0.5) * s
		cy := (float32(c.Y) + 0.5) * s
		r := markerRadius(c.Size) * s
		col := chargeColor(c.Size)
		vector.StrokeCircle(screen, cx, cy, r, 2, col, true)
		vector.DrawFilledCircle(screen, cx, cy, 2, col, true)
		if o.hovered && c == o.hover {
			vector.StrokeLine(screen, cx-r-4, cy, cx+r+4, cy, 1, color.White, true)
			vector.StrokeLine(screen, cx, cy-r-4, cx, cy+r+4, 1, color.White, true)
		}
	}
}

func markerRadius(size float64) float32 {
	return float32(3 + 2*math.Sqrt(math.Abs(size)))
}

func chargeColor(size float64) color.RGBA {
	if size < 0 {
		return color.RGBA{R: 70, G: 120, B: 255, A: 230}
	}
	return color.RGBA{R: 255, G: 70, B: 60, A: 230}
}
