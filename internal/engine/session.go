package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"electric-fields/internal/field"
	"electric-fields/internal/render"
)

// cancelToken is the cooperative stop flag of one run. The done channel
// interrupts the start delay; the flag is polled between blocks.
type cancelToken struct {
	flag atomic.Bool
	once sync.Once
	done chan struct{}
}

func newCancelToken() *cancelToken {
	return &cancelToken{done: make(chan struct{})}
}

func (t *cancelToken) cancel() {
	t.once.Do(func() {
		t.flag.Store(true)
		close(t.done)
	})
}

func (t *cancelToken) cancelled() bool { return t.flag.Load() }

// Session renders potential fields into one raster, one run at a time.
type Session struct {
	target   *render.Raster
	listener Listener

	mu         sync.Mutex
	saturation float32
	brightness float32
	delay      time.Duration
	saveFrames bool
	running    bool
	token      *cancelToken
	done       chan struct{}
	frames     []*render.Raster
	runs       uint64
}

// NewSession creates an idle session bound to target.
func NewSession(target *render.Raster, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.listener == nil {
		o.listener = Funcs{}
	}
	return &Session{
		target:     target,
		listener:   o.listener,
		saturation: o.saturation,
		brightness: o.brightness,
		delay:      o.delay,
		saveFrames: o.saveFrames,
	}
}

// Raster returns the target raster.
func (s *Session) Raster() *render.Raster { return s.target }

// Saturation returns the HSV saturation used by the next run.
func (s *Session) Saturation() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saturation
}

// SetSaturation sets the HSV saturation, in [0, 1], for the next run.
func (s *Session) SetSaturation(v float32) {
	s.mu.Lock()
	s.saturation = v
	s.mu.Unlock()
}

// Brightness returns the HSV value used by the next run.
func (s *Session) Brightness() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.brightness
}

// SetBrightness sets the HSV value, in [0, 1], for the next run.
func (s *Session) SetBrightness(v float32) {
	s.mu.Lock()
	s.brightness = v
	s.mu.Unlock()
}

// StartDelay returns the wait before the seed pass of the next run.
func (s *Session) StartDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// SetStartDelay sets the wait before the seed pass of the next run.
func (s *Session) SetStartDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// SetSavedFrames turns per-level frame saving on or off for the next run.
func (s *Session) SetSavedFrames(on bool) {
	s.mu.Lock()
	s.saveFrames = on
	s.mu.Unlock()
}

// Frames returns the per-level frames saved by the latest run.
func (s *Session) Frames() []*render.Raster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*render.Raster(nil), s.frames...)
}

// IsIdle reports whether no run is executing.
func (s *Session) IsIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.running
}

// Start begins rendering charges on a new goroutine and returns at once. It
// returns false, and does nothing, while a run is in progress. The charges
// are copied, and the palette is built from prefs and the session's
// saturation and brightness.
func (s *Session) Start(charges []field.Charge, prefs field.Prefs) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return false
	}
	pal := prefs.Palette(s.saturation, s.brightness)
	rz := NewRasterizer(s.target, charges, pal)
	rz.LevelSnapshots = s.saveFrames
	tok := newCancelToken()
	done := make(chan struct{})
	s.running = true
	s.token = tok
	s.done = done
	s.frames = nil
	s.runs++
	id := s.runs
	delay := s.delay
	s.mu.Unlock()

	go s.run(id, rz, tok, delay, done)
	return true
}

// Cancel asks the current run to stop. It returns immediately; the stop is
// reported by RenderCancelled. Calling it on an idle session does nothing.
func (s *Session) Cancel() {
	s.mu.Lock()
	tok := s.token
	running := s.running
	s.mu.Unlock()
	if running && tok != nil {
		tok.cancel()
	}
}

// Wait blocks until the current run, if any, has delivered its terminal
// event. It must not be called from a Listener method.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Restart cancels the current run, waits for it, and starts a new one.
func (s *Session) Restart(charges []field.Charge, prefs field.Prefs) bool {
	s.Cancel()
	s.Wait()
	return s.Start(charges, prefs)
}

type outcome int

const (
	outcomeFinished outcome = iota
	outcomeCancelled
	outcomeFailed
)

func (s *Session) run(id uint64, rz *Rasterizer, tok *cancelToken, delay time.Duration, done chan struct{}) {
	defer close(done)
	log := Logger().With(slog.Uint64("run", id))
	start := time.Now()
	terminated := false

	finish := func(o outcome, err error) {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		terminated = true
		switch o {
		case outcomeFinished:
			log.Info("render finished", slog.Int("blocks", rz.Blocks()), slog.Duration("elapsed", time.Since(start)))
			s.listener.RenderFinished(s)
		case outcomeCancelled:
			log.Info("render cancelled", slog.Int("blocks", rz.Blocks()), slog.Duration("elapsed", time.Since(start)))
			s.listener.RenderCancelled(s)
		case outcomeFailed:
			log.Warn("render failed", slog.Any("err", err))
			s.listener.RenderFailed(s, err)
		}
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if terminated {
			log.Warn("listener panicked after terminal event", slog.Any("panic", p))
			return
		}
		finish(outcomeFailed, fmt.Errorf("render %d: panic: %v", id, p))
	}()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-tok.done:
			timer.Stop()
		}
	}
	if tok.cancelled() {
		finish(outcomeCancelled, nil)
		return
	}

	log.Info("render started", slog.Int("w", s.target.W), slog.Int("h", s.target.H))
	s.listener.RenderStarted(s)

	completed := rz.Run(tok.cancelled, func(snap Snapshot) {
		if snap.Frame != nil {
			s.mu.Lock()
			s.frames = append(s.frames, snap.Frame)
			s.mu.Unlock()
		}
		s.listener.RenderSnapshot(s, snap)
	})
	if !completed {
		finish(outcomeCancelled, nil)
		return
	}
	finish(outcomeFinished, nil)
}
