// Package sublevel packages a carved dungeon into the map the overworld
// links to: passability flags, a colored screen buffer and the single
// door used both to enter and to leave.
package sublevel

import (
	"fmt"

	"dungeon-map/internal/gamemap"
	"dungeon-map/internal/generate"
	"dungeon-map/internal/render"
)

// DefaultViewDist is the sight radius a player starts with inside a dungeon.
const DefaultViewDist = 8

// Map is a traversal-ready dungeon level.
type Map struct {
	Height, Width int
	// Walkable is indexed [y][x]; true means floor.
	Walkable   [][]bool
	EnterPoint gamemap.Point
	ExitPoint  gamemap.Point
	Screen     [][]render.Cell
	ViewDist   int
}

// Assemble builds a Map from a finished grid. It does no geometry: the
// grid is copied as is and the entrance doubles as the exit.
func Assemble(grid *gamemap.Grid, entrance gamemap.Point, theme render.Theme) (*Map, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	if !grid.InBounds(entrance.X, entrance.Y) {
		return nil, fmt.Errorf("sublevel: entrance %v outside %dx%d grid", entrance, grid.Width, grid.Height)
	}
	m := &Map{
		Height:     grid.Height,
		Width:      grid.Width,
		Walkable:   grid.Walkable(),
		EnterPoint: entrance,
		ExitPoint:  entrance,
		Screen:     make([][]render.Cell, grid.Height),
		ViewDist:   DefaultViewDist,
	}
	for y := range m.Screen {
		row := make([]render.Cell, grid.Width)
		for x := range row {
			if m.Walkable[y][x] {
				row[x] = theme.Floor
			} else {
				row[x] = theme.Wall
			}
		}
		m.Screen[y] = row
	}
	return m, nil
}

// Generate carves a level with cfg and assembles it with theme.
func Generate(cfg generate.Config, theme render.Theme) (*Map, *generate.Result, error) {
	res, err := generate.Generate(cfg)
	if err != nil {
		return nil, nil, err
	}
	m, err := Assemble(res.Grid, res.Entrance.Point, theme)
	if err != nil {
		return nil, nil, err
	}
	return m, res, nil
}

// IsWalkable reports whether (x, y) is in bounds and floor.
func (m *Map) IsWalkable(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Walkable[y][x]
}
