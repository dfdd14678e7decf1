package core

import "time"

// FixedStep helps run updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time

	// Now is the clock source, time.Now unless replaced.
	Now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{Now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether a tick is due. Missed ticks are not replayed:
// at most one tick's worth of lag is carried over.
func (f *FixedStep) ShouldStep() bool {
	now := f.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}

// Force makes the next ShouldStep return true.
func (f *FixedStep) Force() {
	f.accumulator = f.step
}
