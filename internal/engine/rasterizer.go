package engine

import (
	"image"
	"log/slog"

	"electric-fields/internal/field"
	"electric-fields/internal/render"
)

// InitialResolution returns the largest power of two not above max(w, h)
// and the number of right shifts that reduce max(w, h) to 1.
func InitialResolution(w, h int) (resolution, shifts int) {
	size := max(w, h)
	for size > 1 {
		size >>= 1
		shifts++
	}
	return 1 << shifts, shifts
}

// Rasterizer paints a potential field into a raster through coarse-to-fine
// passes over a power-of-two block pyramid.
//
// The seed pass paints one block of edge res0 from the value at (0, 0).
// Each following level halves the block edge; for every cell of the previous
// level it paints the three sub-blocks that do not share the cell origin.
// The first level runs at res0 with cells of 2*res0 so rasters whose sides
// are not powers of two are covered too. Every pixel is evaluated once, at
// the level where it first becomes a block origin, which makes the final
// picture identical to a per-pixel evaluation.
type Rasterizer struct {
	// LevelSnapshots emits a SnapshotLevel with a cloned frame after each
	// completed level.
	LevelSnapshots bool

	target  *render.Raster
	charges []field.Charge
	palette field.Palette
	blocks  int
}

// NewRasterizer prepares a render of charges into target. The charges are
// copied.
func NewRasterizer(target *render.Raster, charges []field.Charge, pal field.Palette) *Rasterizer {
	return &Rasterizer{
		target:  target,
		charges: append([]field.Charge(nil), charges...),
		palette: pal,
	}
}

// Blocks returns the number of blocks evaluated so far.
func (r *Rasterizer) Blocks() int { return r.blocks }

// Run paints the raster. cancelled is polled after every painted block and
// emit receives snapshots in order. Run reports whether the render reached
// the end of the finest level.
func (r *Rasterizer) Run(cancelled func() bool, emit func(Snapshot)) bool {
	if cancelled() {
		return false
	}
	w, h := r.target.W, r.target.H
	res, shifts := InitialResolution(w, h)
	log := Logger()
	log.Debug("rasterizer seed", slog.Int("w", w), slog.Int("h", h), slog.Int("resolution", res), slog.Int("shifts", shifts))

	r.plot(0, 0, res)
	if cancelled() {
		return false
	}
	emit(Snapshot{Kind: SnapshotSeed, Resolution: res, Raster: r.target})

	var quad [3]image.Point
	for ; res >= 1; res >>= 1 {
		step := res << 1
		for y1 := 0; y1 < h; y1 += step {
			y2 := y1 + res
			painted := false
			for x1 := 0; x1 < w; x1 += step {
				x2 := x1 + res
				quad = [3]image.Point{{X: x1, Y: y2}, {X: x2, Y: y1}, {X: x2, Y: y2}}
				for _, o := range quad {
					if !r.plot(o.X, o.Y, res) {
						continue
					}
					painted = true
					if cancelled() {
						return false
					}
				}
			}
			if painted {
				emit(Snapshot{Kind: SnapshotRow, Resolution: res, Row: y1, Raster: r.target})
			}
		}
		log.Debug("rasterizer level done", slog.Int("resolution", res), slog.Int("blocks", r.blocks))
		if r.LevelSnapshots {
			emit(Snapshot{Kind: SnapshotLevel, Resolution: res, Raster: r.target, Frame: r.target.Clone()})
		}
	}
	emit(Snapshot{Kind: SnapshotFinal, Resolution: 1, Raster: r.target})
	return true
}

// plot paints the size*size block at (x, y) with the color of the field at
// its origin. Blocks whose origin lies outside the raster are skipped.
func (r *Rasterizer) plot(x, y, size int) bool {
	if x >= r.target.W || y >= r.target.H {
		return false
	}
	c := field.MapColor(field.Potential(x, y, r.charges), r.palette)
	r.target.FillRect(x, y, size, size, c)
	r.blocks++
	return true
}
