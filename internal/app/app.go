//go:build ebiten

package app

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"electric-fields/internal/core"
	"electric-fields/internal/engine"
	"electric-fields/internal/field"
	"electric-fields/internal/render"
	"electric-fields/internal/ui"
	pcore "electric-fields/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts a render session to the ebiten.Game interface.
type Game struct {
	session *engine.Session
	charges *field.Charges
	knobs   *Knobs
	rng     *pcore.RNG

	img    *ebiten.Image
	buf    []byte
	upload *core.FixedStep

	hud     *ui.HUD
	overlay *ui.Overlay

	size  core.Size
	scale int

	dirty    atomic.Bool
	finished atomic.Bool
	running  atomic.Bool

	pressTick int
	ticks     int
}

// New constructs a Game showing sc at the configured scale.
func New(cfg *Config, sc field.Scene) *Game {
	raster := render.NewRaster(sc.Width, sc.Height)
	g := &Game{
		charges: field.NewCharges(SameChargeRadius),
		rng:     cfg.RNG(),
		buf:     make([]byte, 4*sc.Width*sc.Height),
		upload:  core.NewFixedStep(cfg.TPS),
		size:    core.Size{W: sc.Width, H: sc.Height},
		scale:   max(cfg.Scale, 1),
	}
	for _, c := range sc.Charges {
		g.charges.Add(c)
	}
	listener := engine.Funcs{
		Started:  func(*engine.Session) { g.running.Store(true) },
		Snapshot: func(*engine.Session, engine.Snapshot) { g.dirty.Store(true) },
		Finished: func(*engine.Session) {
			g.running.Store(false)
			g.dirty.Store(true)
			g.finished.Store(true)
		},
		Cancelled: func(*engine.Session) { g.running.Store(false) },
		Failed: func(_ *engine.Session, err error) {
			g.running.Store(false)
			engine.Logger().Error("render failed", slog.Any("err", err))
		},
	}
	opts := append(cfg.SessionOptions(sc), engine.WithListener(listener))
	g.session = engine.NewSession(raster, opts...)
	g.knobs = NewKnobs(g.session, sc.Prefs())
	g.img = ebiten.NewImage(sc.Width, sc.Height)
	g.hud = ui.NewHUD(g.knobs, hudWidth, "Palette")
	g.overlay = ui.NewOverlay(g.charges, g.scale)
	return g
}

// Start begins the first render.
func (g *Game) Start() {
	g.restart()
}

// Close cancels any render in progress and waits for it.
func (g *Game) Close() {
	g.session.Cancel()
	g.session.Wait()
}

// WindowSize returns the outer window size in device-independent pixels.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

func (g *Game) restart() {
	g.session.Restart(g.charges.Snapshot(), g.knobs.Prefs())
	g.upload.Force()
}

func (g *Game) randomise() {
	g.charges.Randomise(g.rng, g.size.W, g.size.H)
	g.restart()
}

func (g *Game) stop() {
	g.session.Cancel()
	g.charges.Clear()
}

func (g *Game) save() {
	name := fmt.Sprintf("electric-%d.png", time.Now().Unix())
	if err := render.SavePNG(name, g.session.Raster(), 1); err != nil {
		engine.Logger().Error("save failed", slog.Any("err", err))
		return
	}
	engine.Logger().Info("saved picture", slog.String("path", name))
}

// Update handles per-frame input and picks up render progress.
func (g *Game) Update() error {
	g.ticks++
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.finished.Swap(false) && g.session.IsIdle() {
		g.charges.Clear()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.randomise()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) {
		g.knobs.Nudge(KeyDensity, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) {
		g.knobs.Nudge(KeyDensity, 1)
	}

	g.overlay.Update()
	overPanel := g.hud.Update(g.size.W * g.scale)
	if !overPanel {
		g.handlePointer()
	}
	if g.knobs.TakeChanged() {
		g.restart()
	}

	state := "idle"
	if g.running.Load() {
		state = "rendering"
	}
	g.hud.SetStatus(fmt.Sprintf("%d charges, %s", g.charges.Len(), state))
	return nil
}

func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if x < 0 || y < 0 || x >= g.size.W || y >= g.size.H {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressTick = g.ticks
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		held := time.Duration(g.ticks-g.pressTick) * time.Second / time.Duration(ebiten.TPS())
		if Click(g.charges, x, y, PressSize(held)) {
			g.restart()
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		if _, ok := g.charges.Scale(x, y, WheelFactor(dy)); ok {
			g.restart()
		}
	}
}

// Draw uploads the raster, throttled to the configured rate, and paints it
// with the overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.upload.ShouldStep() && g.dirty.Swap(false) {
		g.session.Raster().CopyPixels(g.buf)
		g.img.WritePixels(g.buf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
	g.overlay.Draw(screen)
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.size.W*g.scale, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.size.Scaled(g.scale)
	return s.W + g.hud.Width(), max(s.H, g.hud.MinHeight())
}
