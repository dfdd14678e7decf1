package field

import "math"

// Potential evaluates the field at pixel (x, y):
//
//	v = 1 + Σ c.Size / |p - c|
//
// A point that coincides with a charge is a singularity and yields +Inf.
func Potential(x, y int, charges []Charge) float64 {
	v := 1.0
	for _, c := range charges {
		dx := x - c.X
		dy := y - c.Y
		r := math.Sqrt(float64(dx*dx + dy*dy))
		if r == 0 {
			return math.Inf(1)
		}
		v += c.Size / r
	}
	return v
}
