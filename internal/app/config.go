package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"electric-fields/internal/engine"
	"electric-fields/internal/field"
	"electric-fields/pkg/core"
)

// Config represents the command-line parameters shared by the commands.
type Config struct {
	Width      int
	Height     int
	Scale      int
	TPS        int
	Seed       int64
	Scene      string
	Density    int
	Hues       int
	Saturation float64
	Brightness float64
	Delay      time.Duration
	Verbose    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:      480,
		Height:     320,
		Scale:      2,
		TPS:        60,
		Density:    int(field.DefaultDensity),
		Hues:       int(field.DefaultHues),
		Saturation: 1,
		Brightness: 1,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "raster width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "raster height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "picture refreshes per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random charges (0 uses the clock)")
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene JSON file")
	fs.IntVar(&c.Density, "density", c.Density, "hue steps per unit of potential")
	fs.IntVar(&c.Hues, "hues", c.Hues, "length of the hue cycle")
	fs.Float64Var(&c.Saturation, "saturation", c.Saturation, "HSV saturation in [0,1]")
	fs.Float64Var(&c.Brightness, "brightness", c.Brightness, "HSV value in [0,1]")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "wait before each render starts")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log render progress to stderr")
}

// SetupLogging installs a text logger writing to w for the engine when
// Verbose is set.
func (c *Config) SetupLogging(w io.Writer) {
	if !c.Verbose {
		return
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	engine.SetLogger(slog.New(h))
}

// RNG returns a generator seeded from Seed, or from the clock when Seed is
// zero.
func (c *Config) RNG() *core.RNG {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.NewRNG(seed)
}

// LoadScene returns the scene file named by Scene, or a scene of the
// configured size and palette holding random charges.
func (c *Config) LoadScene() (field.Scene, error) {
	if c.Scene != "" {
		sc, err := field.LoadScene(c.Scene)
		if err != nil {
			return field.Scene{}, err
		}
		return sc, nil
	}
	sat, bri := float32(c.Saturation), float32(c.Brightness)
	sc := field.Scene{
		Width:      c.Width,
		Height:     c.Height,
		Density:    c.Density,
		Hues:       c.Hues,
		Saturation: &sat,
		Brightness: &bri,
	}
	if err := sc.Validate(); err != nil {
		return field.Scene{}, fmt.Errorf("config: %w", err)
	}
	charges := field.NewCharges(0)
	charges.Randomise(c.RNG(), sc.Width, sc.Height)
	sc.Charges = charges.Snapshot()
	return sc, nil
}

// SessionOptions returns the session knobs for sc: its saturation and
// brightness when set, the configured ones otherwise, plus the start delay.
func (c *Config) SessionOptions(sc field.Scene) []engine.Option {
	sat, bri := float32(c.Saturation), float32(c.Brightness)
	if sc.Saturation != nil {
		sat = *sc.Saturation
	}
	if sc.Brightness != nil {
		bri = *sc.Brightness
	}
	return []engine.Option{
		engine.WithSaturation(sat),
		engine.WithBrightness(bri),
		engine.WithStartDelay(c.Delay),
	}
}
