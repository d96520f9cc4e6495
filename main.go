// dungeon-map opens the dungeon preview in the local terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dungeon-map/internal/generate"
	"dungeon-map/internal/preview"
	"dungeon-map/internal/render"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := generate.DefaultConfig()
	cfg.Seed = time.Now().UnixNano()
	logPath := flag.String("log", "", "write logs to this file")
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	// The screen owns stdout, so logs only go to a file.
	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	p, err := preview.New(screen, cfg, render.DefaultTheme(), logger)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
