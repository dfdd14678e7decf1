package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"electric-fields/internal/app"
	"electric-fields/internal/engine"
	"electric-fields/internal/field"
	"electric-fields/internal/render"
)

type variant struct {
	density int
	hues    int
}

func (v variant) String() string {
	return fmt.Sprintf("density=%d hues=%d", v.density, v.hues)
}

type variantResult struct {
	variant variant
	path    string
	elapsed time.Duration
	colors  int
	err     error
}

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 320, 240
	cfg.Bind(flag.CommandLine)
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	out := flag.String("out", "sweep", "output directory")
	flag.Parse()
	cfg.SetupLogging(os.Stderr)

	sc, err := cfg.LoadScene()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	densityOptions := []int{250, 500, 1000, 2000, 4000}
	hueOptions := []int{60, 120, 360, 720}

	var sets []variant
	for _, d := range densityOptions {
		for _, h := range hueOptions {
			sets = append(sets, variant{density: d, hues: h})
		}
	}

	fmt.Printf("Sweeping %d palettes over %d charges (%dx%d, %d workers)\n",
		len(sets), len(sc.Charges), sc.Width, sc.Height, *workers)

	jobs := make(chan variant)
	results := make(chan variantResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				results <- runVariant(cfg, sc, v, *out)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, v := range sets {
			jobs <- v
		}
		close(jobs)
	}()

	start := time.Now()
	var all []variantResult
	for res := range results {
		if res.err != nil {
			log.Printf("%s: %v", res.variant, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].colors > all[j].colors })
	elapsed := time.Since(start)

	fmt.Printf("\nMost colorful palettes (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) colors=%d render=%s %s -> %s\n",
			i+1, res.colors, res.elapsed.Round(time.Millisecond), res.variant, res.path)
	}
}

func runVariant(cfg *app.Config, sc field.Scene, v variant, dir string) variantResult {
	res := variantResult{variant: v}
	raster := render.NewRaster(sc.Width, sc.Height)
	var failure error
	listener := engine.Funcs{Failed: func(_ *engine.Session, err error) { failure = err }}
	s := engine.NewSession(raster, append(cfg.SessionOptions(sc), engine.WithListener(listener))...)

	start := time.Now()
	s.Start(sc.Charges, field.Prefs{Density: v.density, Hues: v.hues})
	s.Wait()
	res.elapsed = time.Since(start)
	if failure != nil {
		res.err = failure
		return res
	}

	res.colors = distinctColors(raster)
	res.path = filepath.Join(dir, fmt.Sprintf("d%05d-h%04d.png", v.density, v.hues))
	res.err = render.SavePNG(res.path, raster, 1)
	return res
}

func distinctColors(r *render.Raster) int {
	seen := map[[3]uint8]struct{}{}
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			c := r.RGBAAt(x, y)
			seen[[3]uint8{c.R, c.G, c.B}] = struct{}{}
		}
	}
	return len(seen)
}
