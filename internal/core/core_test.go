package core

import (
	"testing"
	"time"
)

func TestParameterControlAdjustInt(t *testing.T) {
	c := ParameterControl{Key: "hues", Type: ParamTypeInt, Step: 10, Min: 10, Max: 1000, HasMin: true, HasMax: true}
	if v, ok := c.Adjust(360, 1); !ok || v != 370 {
		t.Fatalf("Adjust(360, +1) = %v,%v", v, ok)
	}
	if v, ok := c.Adjust(15, -1); !ok || v != 10 {
		t.Fatalf("Adjust(15, -1) = %v,%v, want clamp to 10", v, ok)
	}
	if _, ok := c.Adjust(10, -1); ok {
		t.Fatal("adjusted below the minimum")
	}
	if c.CanAdjust(1000, 1) {
		t.Fatal("can adjust above the maximum")
	}
	if got := c.Format(370.4); got != "370" {
		t.Fatalf("Format = %q", got)
	}
}

func TestParameterControlAdjustFloat(t *testing.T) {
	c := ParameterControl{Type: ParamTypeFloat, Min: 0, Max: 1, HasMin: true, HasMax: true}
	if c.StepSize() != 0.05 {
		t.Fatalf("default float step = %v", c.StepSize())
	}
	v, ok := c.Adjust(0.98, 1)
	if !ok || v != 1 {
		t.Fatalf("Adjust(0.98, +1) = %v,%v", v, ok)
	}
	if _, ok := c.Adjust(1, 1); ok {
		t.Fatal("adjusted past the maximum")
	}
	if _, ok := c.Adjust(0.5, 0); ok {
		t.Fatal("zero direction reported a change")
	}
	if got := c.Format(0.5); got != "0.50" {
		t.Fatalf("Format = %q", got)
	}
	c.Step = 0.5
	if got := c.Format(0.5); got != "0.5" {
		t.Fatalf("Format with coarse step = %q", got)
	}
}

func TestParameterControlUnbounded(t *testing.T) {
	c := ParameterControl{Type: ParamTypeInt}
	if v, ok := c.Adjust(-3, -1); !ok || v != -4 {
		t.Fatalf("unbounded Adjust = %v,%v", v, ok)
	}
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestFixedStep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	fs := NewFixedStep(10)
	fs.Now = clock.Now
	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("step = %v", fs.Step())
	}
	if !fs.ShouldStep() {
		t.Fatal("first call should tick")
	}
	if fs.ShouldStep() {
		t.Fatal("ticked without time passing")
	}
	clock.advance(60 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("ticked before the interval")
	}
	clock.advance(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("no tick after the interval")
	}

	clock.advance(time.Second)
	ticks := 0
	for range 20 {
		if fs.ShouldStep() {
			ticks++
		}
	}
	if ticks != 2 {
		t.Fatalf("replayed %d ticks after a stall, want 2", ticks)
	}

	fs.Force()
	if !fs.ShouldStep() {
		t.Fatal("Force did not schedule a tick")
	}
}

func TestFixedStepDefaults(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("default step = %v", fs.Step())
	}
	fs.SetTPS(-1)
	if fs.Step() != time.Second/60 {
		t.Fatalf("SetTPS(-1) step = %v", fs.Step())
	}
}

func TestSize(t *testing.T) {
	s := Size{W: 4, H: 3}
	if s.Area() != 12 || s.Scaled(2) != (Size{W: 8, H: 6}) {
		t.Fatalf("size helpers: %d %v", s.Area(), s.Scaled(2))
	}
}
