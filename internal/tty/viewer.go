package tty

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"electric-fields/internal/app"
	"electric-fields/internal/core"
	"electric-fields/internal/engine"
	"electric-fields/internal/field"
	"electric-fields/internal/render"
	pcore "electric-fields/pkg/core"

	"github.com/gdamore/tcell/v2"
)

// sameChargeCells is the hit radius for clicks, in raster pixels.
const sameChargeCells = 3

// renderEvent carries a session event through the tcell event loop.
type renderEvent struct {
	when  time.Time
	event engine.Event
}

func (e *renderEvent) When() time.Time { return e.when }

// Viewer is an interactive terminal front-end for a render session.
type Viewer struct {
	screen tcell.Screen

	session *engine.Session
	queue   *engine.EventQueue
	charges *field.Charges
	knobs   *app.Knobs
	rng     *pcore.RNG
	redraw  *core.FixedStep

	// pending is set while a snapshot event sits in the screen queue.
	pending atomic.Bool

	cols, rows int
	pressAt    time.Time
	pressed    bool
	state      string
	quit       chan struct{}
}

// NewViewer binds a viewer to an initialised screen. The raster is sized to
// the screen; sc contributes its charges and palette.
func NewViewer(screen tcell.Screen, cfg *app.Config, sc field.Scene) *Viewer {
	v := &Viewer{
		screen:  screen,
		queue:   engine.NewEventQueue(64),
		charges: field.NewCharges(sameChargeCells),
		rng:     cfg.RNG(),
		redraw:  core.NewFixedStep(cfg.TPS),
		state:   "idle",
		quit:    make(chan struct{}),
	}
	for _, c := range sc.Charges {
		v.charges.Add(c)
	}
	v.cols, v.rows = screen.Size()
	w, h := RasterSize(v.cols, v.rows-1)
	opts := append(cfg.SessionOptions(sc), engine.WithListener(v.queue))
	v.session = engine.NewSession(render.NewRaster(w, h), opts...)
	v.knobs = app.NewKnobs(v.session, sc.Prefs())
	return v
}

// Run processes terminal and render events until the user quits.
func (v *Viewer) Run() error {
	v.screen.EnableMouse()
	go v.forward()
	defer close(v.quit)
	defer v.session.Wait()
	defer v.session.Cancel()

	v.restart()
	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.handle(ev) {
			return nil
		}
	}
}

// forward posts session events into the screen's event queue. At most one
// snapshot is queued at a time; lifecycle events are retried until posted.
func (v *Viewer) forward() {
	for {
		select {
		case <-v.quit:
			return
		case e := <-v.queue.C:
			ev := &renderEvent{when: time.Now(), event: e}
			if e.Kind == engine.EventSnapshot {
				if v.pending.Swap(true) {
					continue
				}
				if v.screen.PostEvent(ev) != nil {
					v.pending.Store(false)
				}
				continue
			}
			for v.screen.PostEvent(ev) != nil {
				select {
				case <-v.quit:
					return
				case <-time.After(time.Millisecond):
				}
			}
		}
	}
}

func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *renderEvent:
		if ev.event.Kind == engine.EventSnapshot {
			v.pending.Store(false)
		}
		v.handleRender(ev.event)
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

func (v *Viewer) handleRender(e engine.Event) {
	if e.Session != v.session {
		return
	}
	switch e.Kind {
	case engine.EventStarted:
		v.state = "rendering"
	case engine.EventSnapshot:
		if e.Snapshot.Kind != engine.SnapshotFinal && !v.redraw.ShouldStep() {
			return
		}
	case engine.EventFinished:
		v.state = "finished"
		if v.session.IsIdle() {
			v.charges.Clear()
		}
	case engine.EventCancelled:
		v.state = "cancelled"
	case engine.EventFailed:
		v.state = "failed"
		engine.Logger().Error("render failed", slog.Any("err", e.Err))
	}
	v.draw()
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 'r':
		v.charges.Randomise(v.rng, v.session.Raster().W, v.session.Raster().H)
		v.restart()
	case 'c':
		v.session.Cancel()
		v.charges.Clear()
	case ' ':
		v.restart()
	case '[':
		if v.knobs.Nudge(app.KeyDensity, -1) {
			v.restart()
		}
	case ']':
		if v.knobs.Nudge(app.KeyDensity, 1) {
			v.restart()
		}
	case 's':
		v.save()
	}
	v.draw()
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := col, 2*row
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		if !v.pressed {
			v.pressed = true
			v.pressAt = ev.When()
		}
	case v.pressed:
		v.pressed = false
		if app.Click(v.charges, x, y, app.PressSize(ev.When().Sub(v.pressAt))) {
			v.restart()
		}
	}
	if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
		factor := app.WheelFactor(1)
		if buttons&tcell.WheelDown != 0 {
			factor = app.WheelFactor(-1)
		}
		if _, ok := v.charges.Scale(x, y, factor); ok {
			v.restart()
		}
	}
}

// resize cancels the render, carries the picture over to a raster matching
// the new screen and starts again.
func (v *Viewer) resize() {
	v.screen.Sync()
	cols, rows := v.screen.Size()
	if cols == v.cols && rows == v.rows {
		return
	}
	v.cols, v.rows = cols, rows
	v.session.Cancel()
	v.session.Wait()

	w, h := RasterSize(cols, rows-1)
	raster := v.session.Raster().Resample(w, h)
	opts := []engine.Option{
		engine.WithListener(v.queue),
		engine.WithSaturation(v.session.Saturation()),
		engine.WithBrightness(v.session.Brightness()),
		engine.WithStartDelay(v.session.StartDelay()),
	}
	v.session = engine.NewSession(raster, opts...)
	v.knobs = app.NewKnobs(v.session, v.knobs.Prefs())
	v.restart()
	v.draw()
}

func (v *Viewer) restart() {
	v.session.Restart(v.charges.Snapshot(), v.knobs.Prefs())
	v.redraw.Force()
}

func (v *Viewer) save() {
	name := fmt.Sprintf("electric-%d.png", time.Now().Unix())
	if err := render.SavePNG(name, v.session.Raster(), 1); err != nil {
		v.state = "save failed"
		return
	}
	v.state = "saved " + name
}

func (v *Viewer) draw() {
	Draw(v.screen, v.session.Raster(), v.cols, v.rows-1)
	prefs := v.knobs.Prefs()
	status := fmt.Sprintf(" %d charges  density %d  hues %d  %s  [r]andom [c]lear [s]ave [q]uit",
		v.charges.Len(), prefs.Density, prefs.Hues, v.state)
	DrawText(v.screen, 0, v.rows-1, v.cols, status, tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}
