package field

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultDensity is the default number of hue steps per unit of potential.
	DefaultDensity = 1000.0
	// DefaultHues is the default length of the hue cycle.
	DefaultHues = 360.0

	MinDensity = 100
	MaxDensity = 10000
	MinHues    = 10
	MaxHues    = 1000
)

// White is the color of singularities and non-finite potentials.
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Palette controls how potentials map to colors. It is copied into every
// render and never changes while a render runs.
type Palette struct {
	Density    float64
	Hues       float64
	Saturation float32
	Brightness float32
}

// DefaultPalette returns the fully saturated, full brightness palette.
func DefaultPalette() Palette {
	return Palette{Density: DefaultDensity, Hues: DefaultHues, Saturation: 1, Brightness: 1}
}

// Prefs is the integer palette form kept by a preferences store.
type Prefs struct {
	Density int
	Hues    int
}

// DefaultPrefs mirrors DefaultPalette.
func DefaultPrefs() Prefs {
	return Prefs{Density: int(DefaultDensity), Hues: int(DefaultHues)}
}

// Palette converts p to a Palette, clamping density and hues to their
// supported ranges.
func (p Prefs) Palette(saturation, brightness float32) Palette {
	return Palette{
		Density:    float64(clampInt(p.Density, MinDensity, MaxDensity)),
		Hues:       float64(clampInt(p.Hues, MinHues, MaxHues)),
		Saturation: saturation,
		Brightness: brightness,
	}
}

// Hue returns the position of v in the hue cycle, in [0, Hues).
func (p Palette) Hue(v float64) float64 {
	hues := p.Hues
	if hues <= 0 {
		hues = DefaultHues
	}
	h := math.Mod(v*p.Density, hues)
	if h < 0 {
		h += hues
	}
	if h >= hues {
		h = 0
	}
	return h
}

// Color maps the potential v to a pixel color.
func (p Palette) Color(v float64) color.RGBA {
	return MapColor(v, p)
}

// MapColor maps the potential v to a pixel color using a cyclic hue ramp.
// Infinite and NaN potentials are white.
func MapColor(v float64, p Palette) color.RGBA {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return White
	}
	angle := math.Mod(p.Hue(v), 360)
	c := colorful.Hsv(angle, clampUnit(p.Saturation), clampUnit(p.Brightness))
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clampUnit(v float32) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return float64(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
