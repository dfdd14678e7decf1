package field

import (
	"errors"
	"math"
	"slices"
	"testing"

	"electric-fields/pkg/core"
)

func TestPotentialEmptySet(t *testing.T) {
	for _, p := range [][2]int{{0, 0}, {17, 3}, {-4, 9}} {
		if v := Potential(p[0], p[1], nil); v != 1.0 {
			t.Fatalf("empty set potential at %v = %v, want 1", p, v)
		}
	}
}

func TestPotentialSingularity(t *testing.T) {
	charges := []Charge{{X: 10, Y: 10, Size: -3}, {X: 2, Y: 5, Size: 4}}
	if v := Potential(2, 5, charges); !math.IsInf(v, 1) {
		t.Fatalf("potential at a charge = %v, want +Inf", v)
	}
	if c := MapColor(Potential(2, 5, charges), DefaultPalette()); c != White {
		t.Fatalf("singularity color = %v, want white", c)
	}
}

func TestPotentialSum(t *testing.T) {
	charges := []Charge{{X: 0, Y: 0, Size: 5}}
	if v := Potential(3, 4, charges); v != 2.0 {
		t.Fatalf("potential = %v, want 1 + 5/5", v)
	}
}

func TestOppositeChargesCancel(t *testing.T) {
	charges := []Charge{{X: 0, Y: 0, Size: 5}, {X: 4, Y: 0, Size: -5}}
	v := Potential(2, 3, charges)
	if v != 1.0 {
		t.Fatalf("equidistant opposite charges potential = %v, want 1", v)
	}
	pal := DefaultPalette()
	if MapColor(v, pal) != MapColor(Potential(2, 3, nil), pal) {
		t.Fatal("cancelled field does not match empty baseline color")
	}
}

func TestMapColorNonFinite(t *testing.T) {
	pal := DefaultPalette()
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		if c := MapColor(v, pal); c != White {
			t.Fatalf("MapColor(%v) = %v, want white", v, c)
		}
	}
}

func TestMapColorPeriodic(t *testing.T) {
	pal := Palette{Density: 2, Hues: 8, Saturation: 1, Brightness: 1}
	period := pal.Hues / pal.Density
	base := MapColor(1.25, pal)
	for _, k := range []float64{-3, -1, 1, 2, 5} {
		if c := MapColor(1.25+k*period, pal); c != base {
			t.Fatalf("MapColor not periodic for k=%v: %v vs %v", k, c, base)
		}
	}
}

func TestPaletteHueRange(t *testing.T) {
	pal := Palette{Density: 1000, Hues: 360}
	for _, v := range []float64{-7.3, -0.001, 0, 0.5, 1, 123.456} {
		h := pal.Hue(v)
		if h < 0 || h >= pal.Hues {
			t.Fatalf("Hue(%v) = %v outside [0, %v)", v, h, pal.Hues)
		}
	}
}

func TestMapColorPrimaries(t *testing.T) {
	pal := Palette{Density: 1, Hues: 360, Saturation: 1, Brightness: 1}
	cases := []struct {
		v    float64
		r, g uint8
		b    uint8
	}{
		{0, 255, 0, 0},
		{120, 0, 255, 0},
		{240, 0, 0, 255},
	}
	for _, tc := range cases {
		c := MapColor(tc.v, pal)
		if c.R != tc.r || c.G != tc.g || c.B != tc.b || c.A != 255 {
			t.Fatalf("MapColor(%v) = %v, want (%d,%d,%d)", tc.v, c, tc.r, tc.g, tc.b)
		}
	}

	dark := MapColor(0, Palette{Density: 1, Hues: 360, Saturation: 1, Brightness: 0})
	if dark.R != 0 || dark.G != 0 || dark.B != 0 {
		t.Fatalf("zero brightness = %v, want black", dark)
	}
}

func TestPrefsClamp(t *testing.T) {
	pal := Prefs{Density: 5, Hues: 5000}.Palette(0.5, 0.25)
	if pal.Density != MinDensity || pal.Hues != MaxHues {
		t.Fatalf("clamped palette = %+v", pal)
	}
	if pal.Saturation != 0.5 || pal.Brightness != 0.25 {
		t.Fatalf("knobs not carried: %+v", pal)
	}
	def := DefaultPrefs().Palette(1, 1)
	if def != DefaultPalette() {
		t.Fatalf("default prefs palette = %+v, want %+v", def, DefaultPalette())
	}
}

func TestChargesCapacity(t *testing.T) {
	l := NewCharges(4)
	for i := 0; i < MaxCharges; i++ {
		if !l.AddAt(i*10, 0, 1) {
			t.Fatalf("add %d failed below capacity", i)
		}
	}
	before := l.Snapshot()
	if l.AddAt(500, 500, 3) {
		t.Fatal("add beyond MaxCharges succeeded")
	}
	if !slices.Equal(before, l.Snapshot()) {
		t.Fatal("failed add mutated the list")
	}
}

func TestChargesRejectZero(t *testing.T) {
	l := NewCharges(4)
	if l.AddAt(1, 1, 0) {
		t.Fatal("zero-size charge accepted")
	}
	if l.Len() != 0 {
		t.Fatalf("len = %d after rejected add", l.Len())
	}
}

func TestFindCharge(t *testing.T) {
	charges := []Charge{
		{X: 10, Y: 10, Size: 1},
		{X: 14, Y: 10, Size: 2},
		{X: 12, Y: 13, Size: 3},
	}
	if _, ok := FindCharge(charges, 100, 100, 25); ok {
		t.Fatal("found a charge outside the threshold")
	}
	if i, ok := FindCharge(charges, 13, 10, 25); !ok || i != 1 {
		t.Fatalf("nearest = %d,%v want 1", i, ok)
	}
	// (12,10) is 4 from charges 0 and 1; the first one wins.
	if i, ok := FindCharge(charges, 12, 10, 25); !ok || i != 0 {
		t.Fatalf("tie = %d,%v want 0", i, ok)
	}
	if i, ok := FindCharge(charges, 15, 10, 1); !ok || i != 1 {
		t.Fatalf("threshold inclusive = %d,%v want 1", i, ok)
	}
}

func TestChargesInvertAndScale(t *testing.T) {
	l := NewCharges(3)
	l.AddAt(5, 5, 2)
	if _, ok := l.Invert(50, 50); ok {
		t.Fatal("inverted a charge far from the point")
	}
	c, ok := l.Invert(6, 6)
	if !ok || c.Size != -2 {
		t.Fatalf("invert = %v,%v", c, ok)
	}
	c, ok = l.Scale(5, 5, 1.5)
	if !ok || c.Size != -3 {
		t.Fatalf("scale = %v,%v", c, ok)
	}
	if _, ok := l.Scale(5, 5, 0); ok {
		t.Fatal("scale to zero accepted")
	}
	if got := l.Snapshot()[0].Size; got != -3 {
		t.Fatalf("size after refused scale = %v", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	l := NewCharges(3)
	l.AddAt(1, 2, 3)
	snap := l.Snapshot()
	l.Invert(1, 2)
	l.AddAt(7, 7, 1)
	if len(snap) != 1 || snap[0].Size != 3 {
		t.Fatalf("snapshot changed with the list: %v", snap)
	}
	l.Clear()
	if l.Len() != 0 || len(snap) != 1 {
		t.Fatal("clear affected snapshot or left charges")
	}
}

func TestRandomise(t *testing.T) {
	l := NewCharges(3)
	l.AddAt(0, 0, 1)
	l.Randomise(core.NewRNG(99), 64, 48)
	charges := l.Snapshot()
	if len(charges) < MinCharges || len(charges) >= MaxCharges {
		t.Fatalf("randomised count = %d", len(charges))
	}
	for _, c := range charges {
		if c.X < 0 || c.X >= 64 || c.Y < 0 || c.Y >= 48 {
			t.Fatalf("charge outside area: %v", c)
		}
		if c.Size == 0 || c.Size < -randomSizeLimit || c.Size >= randomSizeLimit {
			t.Fatalf("charge size out of range: %v", c)
		}
	}

	other := NewCharges(3)
	other.Randomise(core.NewRNG(99), 64, 48)
	if !slices.Equal(charges, other.Snapshot()) {
		t.Fatal("Randomise not deterministic for a seed")
	}
}

func TestParseScene(t *testing.T) {
	sc, err := ParseScene([]byte(`{"width": 32, "height": 16, "saturation": 0.5,
		"charges": [{"x": 1, "y": 2, "size": 3.5}, {"x": 8, "y": 8, "size": -1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Density != int(DefaultDensity) || sc.Hues != int(DefaultHues) {
		t.Fatalf("defaults not applied: %+v", sc)
	}
	pal := sc.Palette()
	if pal.Saturation != 0.5 || pal.Brightness != 1 {
		t.Fatalf("palette knobs = %+v", pal)
	}
	if len(sc.Charges) != 2 || sc.Charges[0] != (Charge{X: 1, Y: 2, Size: 3.5}) {
		t.Fatalf("charges = %v", sc.Charges)
	}
}

func TestParseSceneValidation(t *testing.T) {
	cases := []struct {
		name string
		json string
		want error
	}{
		{"no size", `{"charges": []}`, ErrBadDimensions},
		{"zero charge", `{"width": 4, "height": 4, "charges": [{"x": 1, "y": 1, "size": 0}]}`, ErrZeroCharge},
		{"too many", `{"width": 4, "height": 4, "charges": [` +
			`{"size":1},{"size":1},{"size":1},{"size":1},{"size":1},{"size":1},` +
			`{"size":1},{"size":1},{"size":1},{"size":1},{"size":1}]}`, ErrTooManyCharges},
	}
	for _, tc := range cases {
		if _, err := ParseScene([]byte(tc.json)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
	if _, err := ParseScene([]byte(`{`)); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestSceneMarshalParses(t *testing.T) {
	bri := float32(0.25)
	sc := Scene{Width: 5, Height: 7, Density: 300, Hues: 90, Brightness: &bri,
		Charges: []Charge{{X: 1, Y: 1, Size: -2}}}
	data, err := sc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseScene(data)
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	if got.Width != 5 || got.Hues != 90 || got.Saturation != nil || *got.Brightness != 0.25 || got.Charges[0] != sc.Charges[0] {
		t.Fatalf("re-parsed scene = %+v", got)
	}
}
