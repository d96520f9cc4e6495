// dungeongen prints generated dungeons to stdout.
//
//	go run ./cmd/dungeongen -seed 42 -stats
//	go run ./cmd/dungeongen -sites 3 -world 64x64 > dungeons.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"dungeon-map/internal/generate"
	"dungeon-map/internal/preview"
	"dungeon-map/internal/render"
	"dungeon-map/internal/sublevel"
	"dungeon-map/internal/world"

	"golang.org/x/term"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logger.Error("dungeongen failed", "err", err)
		}
		os.Exit(1)
	}
}

type options struct {
	level  generate.Config
	theme  render.Theme
	color  string
	stats  bool
	debug  bool
	sites  int
	worldW int
	worldH int

	wallGlyph, wallFg, wallBg    string
	floorGlyph, floorFg, floorBg string
}

func parseFlags(args []string) (options, error) {
	opts := options{level: generate.DefaultConfig(), theme: render.DefaultTheme()}
	opts.level.Seed = time.Now().UnixNano()

	fs := flag.NewFlagSet("dungeongen", flag.ContinueOnError)
	opts.level.BindFlags(fs)
	fs.StringVar(&opts.color, "color", "auto", "colored output: auto, always or never")
	fs.BoolVar(&opts.stats, "stats", false, "log generation statistics")
	fs.BoolVar(&opts.debug, "v", false, "log generator decisions")
	fs.IntVar(&opts.sites, "sites", 0, "place this many dungeons on an overworld instead of printing one")
	worldSize := fs.String("world", "32x32", "overworld size for -sites, as WxH")
	fs.StringVar(&opts.wallGlyph, "wall", "", "wall glyph")
	fs.StringVar(&opts.wallFg, "wall-fg", "", "wall foreground color (name or #rrggbb)")
	fs.StringVar(&opts.wallBg, "wall-bg", "", "wall background color")
	fs.StringVar(&opts.floorGlyph, "floor", "", "floor glyph")
	fs.StringVar(&opts.floorFg, "floor-fg", "", "floor foreground color")
	fs.StringVar(&opts.floorBg, "floor-bg", "", "floor background color")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if _, err := fmt.Sscanf(*worldSize, "%dx%d", &opts.worldW, &opts.worldH); err != nil {
		return opts, fmt.Errorf("bad -world %q: %w", *worldSize, err)
	}
	switch opts.color {
	case "auto", "always", "never":
	default:
		return opts, fmt.Errorf("bad -color %q", opts.color)
	}

	var err error
	if opts.theme.Wall, err = overrideCell(opts.theme.Wall, opts.wallGlyph, opts.wallFg, opts.wallBg); err != nil {
		return opts, err
	}
	if opts.theme.Floor, err = overrideCell(opts.theme.Floor, opts.floorGlyph, opts.floorFg, opts.floorBg); err != nil {
		return opts, err
	}
	if err := opts.theme.Validate(); err != nil {
		return opts, err
	}
	return opts, opts.level.Validate()
}

// overrideCell replaces the parts of c given on the command line.
func overrideCell(c render.Cell, glyph, fg, bg string) (render.Cell, error) {
	if glyph == "" && fg == "" && bg == "" {
		return c, nil
	}
	if glyph == "" {
		glyph = c.Glyph
	}
	parsed, err := render.ParseCell(glyph, fg, bg)
	if err != nil {
		return c, err
	}
	if fg == "" {
		parsed.Fg = c.Fg
	}
	if bg == "" {
		parsed.Bg = c.Bg
	}
	return parsed, nil
}

func run(args []string, stdout *os.File, logger *slog.Logger) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	opts.level.Logger = logger

	mode := colorMode(opts.color, term.IsTerminal(int(stdout.Fd())))
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if opts.sites > 0 {
		return printSites(out, opts, mode, logger)
	}

	m, res, err := sublevel.Generate(opts.level, opts.theme)
	if err != nil {
		return err
	}
	if opts.stats {
		st := res.Stats()
		logger.Info("dungeon",
			"seed", opts.level.Seed,
			"size", fmt.Sprintf("%dx%d", m.Width, m.Height),
			"leaves", st.Leaves,
			"rooms", st.Rooms,
			"buffered", st.Buffered,
			"forced", st.Forced,
			"floor", st.FloorTiles,
			"reachable", st.Reachable,
			"entrance", m.EnterPoint,
			"edge", res.Entrance.Edge,
			"defaulted", res.Entrance.Defaulted,
		)
	}
	return writeLevel(out, m, mode)
}

func printSites(out io.Writer, opts options, mode render.ColorMode, logger *slog.Logger) error {
	ow := world.UniformOverworld(opts.worldW, opts.worldH, "plains")
	cfg := world.PlacementConfig{
		ID:        "dungeon",
		Count:     opts.sites,
		Icon:      preview.DefaultMarker.Glyph,
		IconColor: preview.DefaultMarker.Fg,
		Level:     opts.level,
		Theme:     opts.theme,
	}
	sites, err := world.Place(context.Background(), ow, cfg, rand.New(rand.NewSource(opts.level.Seed)), logger)
	if err != nil {
		return err
	}
	for _, s := range sites {
		if _, err := fmt.Fprintf(out, "site %d,%d seed %d\n", s.X, s.Y, s.Seed); err != nil {
			return err
		}
		if err := writeLevel(out, s.Map, mode); err != nil {
			return err
		}
	}
	return nil
}

// colorMode maps the -color flag to a render mode. "auto" colors only a
// terminal, and then only as far as the terminal supports.
func colorMode(flagValue string, isTerminal bool) render.ColorMode {
	switch {
	case flagValue == "always":
		return render.ColorAlways
	case flagValue == "auto" && isTerminal:
		return render.ColorAuto
	}
	return render.ColorNever
}

// writeLevel prints m with the entrance marked.
func writeLevel(out io.Writer, m *sublevel.Map, mode render.ColorMode) error {
	buf := make([][]render.Cell, len(m.Screen))
	for y, row := range m.Screen {
		buf[y] = append([]render.Cell(nil), row...)
	}
	marker := preview.DefaultMarker
	marker.Bg = buf[m.EnterPoint.Y][m.EnterPoint.X].Bg
	buf[m.EnterPoint.Y][m.EnterPoint.X] = marker
	return render.WriteANSI(out, buf, mode)
}
