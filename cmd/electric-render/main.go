package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"electric-fields/internal/app"
	"electric-fields/internal/engine"
	"electric-fields/internal/render"
)

func main() {
	cfg := app.NewConfig()
	cfg.Scale = 1
	cfg.Bind(flag.CommandLine)
	out := flag.String("o", "electric.png", "output PNG path")
	frames := flag.String("frames", "", "also write the per-level frames to this animated GIF")
	gifDelay := flag.Int("gif-delay", 50, "GIF frame delay in 100ths of a second")
	dump := flag.String("dump-scene", "", "write the rendered scene as JSON to this path")
	flag.Parse()
	cfg.SetupLogging(os.Stderr)

	sc, err := cfg.LoadScene()
	if err != nil {
		log.Fatal(err)
	}
	if *dump != "" {
		data, err := sc.Marshal()
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*dump, data, 0o644); err != nil {
			log.Fatal(err)
		}
	}

	raster := render.NewRaster(sc.Width, sc.Height)
	var failure error
	listener := engine.Funcs{Failed: func(_ *engine.Session, err error) { failure = err }}
	opts := append(cfg.SessionOptions(sc), engine.WithListener(listener), engine.WithSavedFrames(*frames != ""))
	s := engine.NewSession(raster, opts...)

	start := time.Now()
	s.Start(sc.Charges, sc.Prefs())
	s.Wait()
	if failure != nil {
		log.Fatal(failure)
	}
	elapsed := time.Since(start)

	if err := render.SavePNG(*out, raster, cfg.Scale); err != nil {
		log.Fatal(err)
	}
	if *frames != "" {
		if err := render.SaveGIF(*frames, s.Frames(), *gifDelay, cfg.Scale); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("Rendered %d charges at %dx%d in %s -> %s\n",
		len(sc.Charges), sc.Width, sc.Height, elapsed.Round(time.Millisecond), *out)
}
