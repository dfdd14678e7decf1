package main

import (
	"flag"
	"fmt"
	"os"

	"electric-fields/internal/app"
	"electric-fields/internal/tty"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 15
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if cfg.Verbose {
		logFile, err := os.Create("electric-tty.log")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		cfg.SetupLogging(logFile)
	}

	sc, err := cfg.LoadScene()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	if err := tty.NewViewer(screen, cfg, sc).Run(); err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
