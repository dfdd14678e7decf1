package app

import (
	"math"
	"time"

	"electric-fields/internal/field"
)

const (
	// SameChargeRadius is the distance in raster pixels within which a click
	// or wheel turn refers to an existing charge.
	SameChargeRadius = 24

	maxPress = time.Second

	// wheelStep is the charge scale factor per wheel notch.
	wheelStep = 1.1
)

// PressSize converts how long a button was held into the size of a new
// charge: 1 plus one unit per 20ms, capped at one second.
func PressSize(d time.Duration) float64 {
	d = min(max(d, 0), maxPress)
	return 1 + float64(d.Milliseconds()/20)
}

// Click inverts the charge near (x, y) or, when there is none, adds one of
// the given size. It reports whether the charges changed.
func Click(charges *field.Charges, x, y int, size float64) bool {
	if _, ok := charges.Invert(x, y); ok {
		return true
	}
	return charges.AddAt(x, y, size)
}

// WheelFactor converts a vertical wheel offset into a charge scale factor.
func WheelFactor(offset float64) float64 {
	return math.Pow(wheelStep, offset)
}
