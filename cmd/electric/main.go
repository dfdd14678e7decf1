//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"electric-fields/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	cfg.SetupLogging(os.Stderr)

	sc, err := cfg.LoadScene()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(cfg, sc)
	defer game.Close()

	ebiten.SetWindowTitle("Electric Fields")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	game.Start()
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
