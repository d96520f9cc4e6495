// Package world places dungeon entrances on an overworld. It picks legal
// cells, generates one sublevel per cell and hands each to the overworld
// to register. The generator itself never sees biomes.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"

	"dungeon-map/internal/gamemap"
	"dungeon-map/internal/generate"
	"dungeon-map/internal/render"
	"dungeon-map/internal/sublevel"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/sync/errgroup"
)

// SiteKind is the label dungeon sites are registered under.
const SiteKind = "dungeon entrance"

// DefaultAttemptsPerSite bounds random cell picks per requested dungeon.
const DefaultAttemptsPerSite = 1000

var (
	// ErrNoSite means not enough legal cells were found.
	ErrNoSite = errors.New("world: no legal cell for dungeon")
	// ErrOccupied is returned by MemoryOverworld for a cell that already
	// holds a sublevel.
	ErrOccupied = errors.New("world: cell already holds a sublevel")
)

// Overworld is the map dungeons are placed on.
type Overworld interface {
	Size() (width, height int)
	BiomeAt(x, y int) string
	AttachSublevel(site Site) error
}

// Site is one placed dungeon.
type Site struct {
	gamemap.Point
	Kind      string
	OwnerID   string
	Icon      string
	IconColor tcell.Color
	Seed      int64
	Map       *sublevel.Map
}

// PlacementConfig describes a batch of dungeons.
type PlacementConfig struct {
	ID             string
	Count          int
	BiomeException string
	Icon           string
	IconColor      tcell.Color
	Level          generate.Config
	Theme          render.Theme
	// ViewDist overrides sublevel.DefaultViewDist when positive.
	ViewDist int
	// MaxAttempts bounds random picks for the whole batch; zero means
	// DefaultAttemptsPerSite per dungeon.
	MaxAttempts int
}

func (c PlacementConfig) validate() error {
	if c.Count < 0 {
		return fmt.Errorf("world: negative dungeon count %d", c.Count)
	}
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Theme.Validate()
}

// Place picks cfg.Count distinct cells whose biome differs from
// cfg.BiomeException, generates a sublevel for each and attaches them to
// ow in pick order. Cells and per-dungeon seeds come from rng; the
// sublevels are generated concurrently, each with its own generator.
//
// Attachment is not rolled back: if ow rejects a site, Place returns the
// sites already attached together with the error.
func Place(ctx context.Context, ow Overworld, cfg PlacementConfig, rng *rand.Rand, logger *slog.Logger) ([]Site, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cells, err := pickCells(ow, cfg, rng)
	if err != nil {
		return nil, err
	}
	sites := make([]Site, len(cells))
	for i, p := range cells {
		sites[i] = Site{
			Point:     p,
			Kind:      SiteKind,
			OwnerID:   cfg.ID,
			Icon:      cfg.Icon,
			IconColor: cfg.IconColor,
			Seed:      rng.Int63(),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range sites {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lvl := cfg.Level
			lvl.Seed = sites[i].Seed
			lvl.Rand = rand.New(rand.NewSource(sites[i].Seed))
			lvl.Logger = logger.With("site", i)
			m, _, err := sublevel.Generate(lvl, cfg.Theme)
			if err != nil {
				return fmt.Errorf("generate dungeon at %v: %w", sites[i].Point, err)
			}
			if cfg.ViewDist > 0 {
				m.ViewDist = cfg.ViewDist
			}
			sites[i].Map = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, s := range sites {
		if err := ow.AttachSublevel(s); err != nil {
			return sites[:i], fmt.Errorf("attach dungeon at %v: %w", s.Point, err)
		}
		logger.Info("dungeon placed", "id", cfg.ID, "x", s.X, "y", s.Y, "seed", s.Seed, "entrance", s.Map.EnterPoint)
	}
	return sites, nil
}

func pickCells(ow Overworld, cfg PlacementConfig, rng *rand.Rand) ([]gamemap.Point, error) {
	w, h := ow.Size()
	if cfg.Count > 0 && (w <= 0 || h <= 0) {
		return nil, fmt.Errorf("%w: overworld is %dx%d", ErrNoSite, w, h)
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultAttemptsPerSite * cfg.Count
	}
	taken := mapset.New[gamemap.Point]()
	cells := make([]gamemap.Point, 0, cfg.Count)
	for len(cells) < cfg.Count {
		if attempts == 0 {
			return nil, fmt.Errorf("%w: placed %d of %d", ErrNoSite, len(cells), cfg.Count)
		}
		attempts--
		p := gamemap.Point{X: rng.Intn(w), Y: rng.Intn(h)}
		if taken.Has(p) || ow.BiomeAt(p.X, p.Y) == cfg.BiomeException {
			continue
		}
		taken.Put(p)
		cells = append(cells, p)
	}
	return cells, nil
}
