//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"electric-fields/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the knob panel to the right of the field view.
type HUD struct {
	tunable    core.Tunable
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []hudControlState
	panelOffsetX int
	title        string
	status       string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD driving tunable with the given panel width.
func NewHUD(tunable core.Tunable, width int, title string) *HUD {
	if width < 0 {
		width = 0
	}
	if title == "" {
		title = "Controls"
	}
	h := &HUD{tunable: tunable, width: width, title: title}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if tunable != nil {
		controls := tunable.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
		h.layoutControls()
	}
	return h
}

// Width returns the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetStatus sets the line shown under the controls.
func (h *HUD) SetStatus(s string) {
	if h != nil {
		h.status = s
	}
}

// Update refreshes the control values and handles clicks on the +/- buttons.
// It reports whether the pointer was over the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil || h.tunable == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.refreshControlValues()
	h.handleInput()
	mx, _ := ebiten.CursorPosition()
	return h.width > 0 && mx >= panelOffsetX
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refreshControlValues() {
	values := map[string]float64{}
	for _, p := range h.tunable.Parameters() {
		values[p.Key] = p.Value
	}
	for i := range h.controls {
		state := &h.controls[i]
		v, ok := values[state.control.Key]
		state.hasValue = ok
		if !ok {
			state.value = "--"
			continue
		}
		state.current = v
		state.value = state.control.Format(v)
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := state.control.Adjust(state.current, direction)
	if !ok {
		return
	}
	if h.tunable.SetParameter(state.control.Key, target) {
		state.current = target
		state.value = state.control.Format(target)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", state.hasValue && state.control.CanAdjust(state.current, -1))
		h.drawButton(state.plusRect, "+", state.hasValue && state.control.CanAdjust(state.current, 1))
	}
	if h.status != "" {
		statusY := controlsTop + len(h.controls)*lineHeight + infoSpacing/2
		text.Draw(h.panel, h.status, face, panelPadding, statusY, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

// MinHeight returns the panel height needed to show every control.
func (h *HUD) MinHeight() int {
	if h == nil {
		return 0
	}
	return controlsTop + len(h.controls)*lineHeight + infoSpacing
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type hudControlState struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
