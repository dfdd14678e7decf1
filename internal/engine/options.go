package engine

import "time"

// Option configures a Session at creation.
//
// Example:
//
//	s := engine.NewSession(raster,
//	    engine.WithListener(view),
//	    engine.WithSaturation(0.5),
//	    engine.WithBrightness(0.5),
//	)
type Option func(*options)

type options struct {
	listener   Listener
	saturation float32
	brightness float32
	delay      time.Duration
	saveFrames bool
}

func defaultOptions() options {
	return options{saturation: 1, brightness: 1}
}

// WithListener sets the receiver of session events.
func WithListener(l Listener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// WithSaturation sets the initial HSV saturation.
func WithSaturation(v float32) Option {
	return func(o *options) {
		o.saturation = v
	}
}

// WithBrightness sets the initial HSV value.
func WithBrightness(v float32) Option {
	return func(o *options) {
		o.brightness = v
	}
}

// WithStartDelay sets the initial wait before each run's seed pass.
func WithStartDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithSavedFrames keeps a copy of the picture after every level.
func WithSavedFrames(on bool) Option {
	return func(o *options) {
		o.saveFrames = on
	}
}
