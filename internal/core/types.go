package core

// Size describes the dimensions of a raster.
type Size struct {
	W int
	H int
}

// Area returns W*H.
func (s Size) Area() int { return s.W * s.H }

// Scaled multiplies both sides by factor.
func (s Size) Scaled(factor int) Size {
	return Size{W: s.W * factor, H: s.H * factor}
}
