// Package preview is an interactive terminal viewer for generated dungeons.
// It runs on any tcell.Screen, so the same loop serves a local terminal and
// an SSH session.
package preview

import (
	"fmt"
	"log/slog"
	"math/rand"

	"dungeon-map/internal/generate"
	"dungeon-map/internal/render"
	"dungeon-map/internal/sublevel"

	"github.com/gdamore/tcell/v2"
)

// panStep is how many tiles one pan key scrolls.
const panStep = 4

const helpLine = "hjkl pan  c center  v sight  r new  q quit"

// DefaultMarker marks the entrance on screen. Its background is replaced
// by the background of the tile it covers.
var DefaultMarker = render.Cell{Glyph: "@", Fg: tcell.ColorYellow, Bg: tcell.NewRGBColor(60, 60, 60)}

// Preview owns one screen and the dungeon currently shown on it.
type Preview struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      generate.Config
	theme    render.Theme
	marker   render.Cell
	logger   *slog.Logger
	seeds    *rand.Rand

	seed   int64
	level  *sublevel.Map
	result *generate.Result
	// sight limits drawing to what is visible from the entrance.
	sight   bool
	visible [][]bool
}

// New builds the first dungeon from cfg.Seed and prepares the screen, which
// must already be initialized. Later regenerations draw their seeds from a
// source seeded with cfg.Seed.
func New(screen tcell.Screen, cfg generate.Config, theme render.Theme, logger *slog.Logger) (*Preview, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Preview{
		screen:   screen,
		renderer: render.NewRenderer(screen, theme.ColumnsPerTile()),
		cfg:      cfg,
		theme:    theme,
		marker:   DefaultMarker,
		logger:   logger,
		seeds:    rand.New(rand.NewSource(cfg.Seed)),
	}
	if err := p.Regenerate(cfg.Seed); err != nil {
		return nil, err
	}
	return p, nil
}

// Regenerate replaces the current dungeon with one built from seed and
// recenters the view on its entrance.
func (p *Preview) Regenerate(seed int64) error {
	cfg := p.cfg
	cfg.Seed = seed
	cfg.Rand = nil
	cfg.Logger = p.logger
	level, res, err := sublevel.Generate(cfg, p.theme)
	if err != nil {
		return fmt.Errorf("preview: seed %d: %w", seed, err)
	}
	p.seed, p.level, p.result = seed, level, res
	p.visible = level.FieldOfView(level.EnterPoint, level.ViewDist)
	p.renderer.CenterOn(level.EnterPoint)
	st := res.Stats()
	p.logger.Info("dungeon generated", "seed", seed, "rooms", st.Rooms, "forced", st.Forced, "floor", st.FloorTiles)
	return nil
}

// Seed returns the seed of the dungeon on screen.
func (p *Preview) Seed() int64 { return p.seed }

// Level returns the dungeon on screen.
func (p *Preview) Level() *sublevel.Map { return p.level }

// Run draws and handles input until the user quits. It finalizes the screen
// on return.
func (p *Preview) Run() error {
	defer p.screen.Fini()

	for {
		p.draw()

		ev := p.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
			p.renderer.Resize()
			p.renderer.CenterOn(p.level.EnterPoint)
		case *tcell.EventKey:
			quit, err := p.apply(keyToAction(ev))
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// apply performs one action and reports whether the viewer should exit.
func (p *Preview) apply(a Action) (bool, error) {
	switch a {
	case ActionQuit:
		return true, nil
	case ActionCenter:
		p.renderer.CenterOn(p.level.EnterPoint)
	case ActionSight:
		p.sight = !p.sight
	case ActionRegenerate:
		return false, p.Regenerate(p.seeds.Int63())
	default:
		if dx, dy := panDelta(a); dx != 0 || dy != 0 {
			p.renderer.Pan(dx, dy)
		}
	}
	return false, nil
}

func (p *Preview) draw() {
	var visible [][]bool
	if p.sight {
		visible = p.visible
	}
	p.renderer.DrawFrame(p.level.Screen, visible, p.level.EnterPoint, p.entranceMarker())
	p.renderer.DrawStatus(p.statusLine(), helpLine)
	p.renderer.Show()
}

// entranceMarker returns the marker over the entrance tile's background.
func (p *Preview) entranceMarker() render.Cell {
	m := p.marker
	e := p.level.EnterPoint
	m.Bg = p.level.Screen[e.Y][e.X].Bg
	return m
}

func (p *Preview) statusLine() string {
	st := p.result.Stats()
	e := p.result.Entrance
	return fmt.Sprintf("seed %d  %dx%d  rooms %d  corridors %d+%d forced  floor %d  door %d,%d %s",
		p.seed, p.level.Width, p.level.Height, st.Rooms, st.Buffered, st.Forced, st.FloorTiles, e.X, e.Y, e.Edge)
}
