package engine

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"electric-fields/internal/field"
	"electric-fields/internal/render"
)

func never() bool { return false }

func directRender(w, h int, charges []field.Charge, pal field.Palette) *render.Raster {
	r := render.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.FillRect(x, y, 1, 1, field.MapColor(field.Potential(x, y, charges), pal))
		}
	}
	return r
}

type snapKey struct {
	kind SnapshotKind
	res  int
	row  int
}

func keysOf(snaps []Snapshot) []snapKey {
	keys := make([]snapKey, len(snaps))
	for i, s := range snaps {
		keys[i] = snapKey{s.Kind, s.Resolution, s.Row}
	}
	return keys
}

func TestInitialResolution(t *testing.T) {
	cases := []struct {
		w, h        int
		res, shifts int
	}{
		{1, 1, 1, 0},
		{4, 4, 4, 2},
		{6, 5, 4, 2},
		{3, 9, 8, 3},
		{1080, 1920, 1024, 10},
	}
	for _, tc := range cases {
		res, shifts := InitialResolution(tc.w, tc.h)
		if res != tc.res || shifts != tc.shifts {
			t.Fatalf("InitialResolution(%d,%d) = %d,%d want %d,%d", tc.w, tc.h, res, shifts, tc.res, tc.shifts)
		}
	}
}

func TestRasterizerMatchesDirectEvaluation(t *testing.T) {
	charges := []field.Charge{
		{X: 3, Y: 2, Size: 7.5},
		{X: 11, Y: 9, Size: -4},
		{X: 0, Y: 16, Size: 2.25},
	}
	pal := field.Palette{Density: 997, Hues: 360, Saturation: 0.8, Brightness: 0.9}
	sizes := [][2]int{{1, 1}, {2, 1}, {4, 4}, {6, 5}, {13, 7}, {17, 32}, {33, 20}}
	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%d", sz[0], sz[1]), func(t *testing.T) {
			target := render.NewRaster(sz[0], sz[1])
			rz := NewRasterizer(target, charges, pal)
			if !rz.Run(never, func(Snapshot) {}) {
				t.Fatal("uncancelled run reported incomplete")
			}
			want := directRender(sz[0], sz[1], charges, pal)
			for y := 0; y < sz[1]; y++ {
				for x := 0; x < sz[0]; x++ {
					if got, exp := target.RGBAAt(x, y), want.RGBAAt(x, y); got != exp {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, exp)
					}
				}
			}
			if rz.Blocks() != sz[0]*sz[1] {
				t.Fatalf("evaluated %d blocks for %d pixels", rz.Blocks(), sz[0]*sz[1])
			}
		})
	}
}

func TestRasterizerSingleChargeScenario(t *testing.T) {
	charges := []field.Charge{{X: 0, Y: 0, Size: 5}}
	pal := field.DefaultPalette()
	target := render.NewRaster(4, 4)
	rz := NewRasterizer(target, charges, pal)

	var snaps []Snapshot
	rz.Run(never, func(s Snapshot) {
		if s.Kind == SnapshotSeed {
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					if c := s.Raster.RGBAAt(x, y); c != field.White {
						t.Fatalf("seed pixel (%d,%d) = %v, want white", x, y, c)
					}
				}
			}
		}
		snaps = append(snaps, s)
	})

	if target.RGBAAt(0, 0) != field.White {
		t.Fatalf("singular pixel = %v, want white", target.RGBAAt(0, 0))
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 && y == 0 {
				continue
			}
			v := 1 + 5/math.Sqrt(float64(x*x+y*y))
			if got, want := target.RGBAAt(x, y), field.MapColor(v, pal); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	want := []snapKey{
		{SnapshotSeed, 4, 0},
		{SnapshotRow, 2, 0},
		{SnapshotRow, 1, 0},
		{SnapshotRow, 1, 2},
		{SnapshotFinal, 1, 0},
	}
	if got := keysOf(snaps); !slices.Equal(got, want) {
		t.Fatalf("snapshots = %v, want %v", got, want)
	}
}

func TestRasterizerEmptySetUniform(t *testing.T) {
	pal := field.DefaultPalette()
	target := render.NewRaster(7, 3)
	NewRasterizer(target, nil, pal).Run(never, func(Snapshot) {})
	want := field.MapColor(1, pal)
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			if c := target.RGBAAt(x, y); c != want {
				t.Fatalf("pixel (%d,%d) = %v, want uniform %v", x, y, c, want)
			}
		}
	}
}

func TestRasterizerCancelledBeforeStart(t *testing.T) {
	target := render.NewRaster(8, 8)
	before := target.Clone()
	rz := NewRasterizer(target, []field.Charge{{X: 1, Y: 1, Size: 1}}, field.DefaultPalette())
	snaps := 0
	if rz.Run(func() bool { return true }, func(Snapshot) { snaps++ }) {
		t.Fatal("cancelled run reported complete")
	}
	if snaps != 0 || rz.Blocks() != 0 {
		t.Fatalf("cancelled run produced %d snapshots and %d blocks", snaps, rz.Blocks())
	}
	if !target.Equal(before) {
		t.Fatal("cancelled run painted the raster")
	}
}

func TestRasterizerCancelMidRunIsPrefix(t *testing.T) {
	charges := []field.Charge{{X: 5, Y: 9, Size: 3}, {X: 20, Y: 2, Size: -6}}
	pal := field.DefaultPalette()

	fullTarget := render.NewRaster(24, 18)
	var full []Snapshot
	NewRasterizer(fullTarget, charges, pal).Run(never, func(s Snapshot) { full = append(full, s) })

	for _, limit := range []int{1, 2, 10, 57, 200, 431} {
		target := render.NewRaster(24, 18)
		rz := NewRasterizer(target, charges, pal)
		var snaps []Snapshot
		done := rz.Run(func() bool { return rz.Blocks() >= limit }, func(s Snapshot) { snaps = append(snaps, s) })
		if done {
			t.Fatalf("limit %d: run completed", limit)
		}
		if rz.Blocks() != limit {
			t.Fatalf("limit %d: painted %d blocks after cancellation", limit, rz.Blocks())
		}
		got := keysOf(snaps)
		if len(got) >= len(full) || !slices.Equal(got, keysOf(full)[:len(got)]) {
			t.Fatalf("limit %d: snapshots %v are not a strict prefix", limit, got)
		}
		for _, s := range snaps {
			if s.Kind == SnapshotFinal {
				t.Fatalf("limit %d: final snapshot after cancellation", limit)
			}
		}
	}
}

func TestRasterizerLevelFrames(t *testing.T) {
	charges := []field.Charge{{X: 2, Y: 6, Size: 9}}
	target := render.NewRaster(8, 8)
	rz := NewRasterizer(target, charges, field.DefaultPalette())
	rz.LevelSnapshots = true
	var levels []Snapshot
	var seed *render.Raster
	rz.Run(never, func(s Snapshot) {
		switch s.Kind {
		case SnapshotSeed:
			seed = s.Raster.Clone()
		case SnapshotLevel:
			levels = append(levels, s)
		}
	})
	if len(levels) != 4 {
		t.Fatalf("level snapshots = %d, want 4", len(levels))
	}
	for i, want := range []int{8, 4, 2, 1} {
		if levels[i].Resolution != want || levels[i].Frame == nil {
			t.Fatalf("level %d = %+v", i, levels[i])
		}
	}
	if !levels[0].Frame.Equal(seed) {
		t.Fatal("top level of a power-of-two raster should leave the seed untouched")
	}
	if !levels[3].Frame.Equal(target) {
		t.Fatal("last level frame differs from the final raster")
	}
	if levels[1].Frame.Equal(target) {
		t.Fatal("intermediate frame aliases the live raster")
	}
}
