package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if x, y := a.IntN(100), b.IntN(100); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x, y := a.FloatRange(-20, 20), b.FloatRange(-20, 20); x != y {
			t.Fatalf("float draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if v := r.IntRange(2, 10); v < 2 || v >= 10 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
		if v := r.FloatRange(-20, 20); v < -20 || v >= 20 {
			t.Fatalf("FloatRange out of bounds: %v", v)
		}
	}
	if v := r.IntN(0); v != 0 {
		t.Fatalf("IntN(0) = %d, want 0", v)
	}
	if v := r.IntRange(5, 5); v != 5 {
		t.Fatalf("empty IntRange = %d, want 5", v)
	}
}
