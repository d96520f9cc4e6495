package generate

import (
	"math/rand"

	"dungeon-map/internal/gamemap"
)

// Edge is a side of the level.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	}
	return "right"
}

// Entrance is the single door between the level and the outside world.
type Entrance struct {
	gamemap.Point
	Edge Edge
	// Channel lists the cells carved to reach the dungeon, starting at
	// the entrance.
	Channel []gamemap.Point
	// Defaulted is set when no edge could reach any floor and the origin
	// was used instead.
	Defaulted bool
}

// carveEntrance opens a straight channel from a random point on a random
// edge towards the interior, stopping just before existing floor. Edges
// whose channel would cross the whole level without meeting floor are
// skipped and left uncarved. When every random start misses, each edge is
// scanned cell by cell, so the origin is only used for a level without
// any floor. Buffers are not checked.
func carveEntrance(grid *gamemap.Grid, rng *rand.Rand) Entrance {
	edges := []Edge{EdgeTop, EdgeBottom, EdgeLeft, EdgeRight}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })

	for _, e := range edges {
		start, dx, dy := edgeStart(e, grid.Width, grid.Height, rng)
		if ent, ok := tryChannel(grid, e, start, dx, dy); ok {
			return ent
		}
	}
	if grid.FloorCount() == 0 {
		return Entrance{Defaulted: true}
	}
	for _, e := range edges {
		n := grid.Width
		if e == EdgeLeft || e == EdgeRight {
			n = grid.Height
		}
		for i := range n {
			start, dx, dy := edgeCell(e, i, grid.Width, grid.Height)
			if ent, ok := tryChannel(grid, e, start, dx, dy); ok {
				return ent
			}
		}
	}
	return Entrance{Defaulted: true}
}

// tryChannel walks inward from start and carves the channel only if it meets floor.
func tryChannel(grid *gamemap.Grid, e Edge, start gamemap.Point, dx, dy int) (Entrance, bool) {
	if grid.IsFloor(start.X, start.Y) {
		return Entrance{Point: start, Edge: e}, true
	}
	channel := []gamemap.Point{start}
	for cur := start; ; cur = cur.Add(dx, dy) {
		next := cur.Add(dx, dy)
		if !grid.InBounds(next.X, next.Y) {
			return Entrance{}, false
		}
		if grid.IsFloor(next.X, next.Y) {
			break
		}
		channel = append(channel, next)
	}
	for _, p := range channel {
		grid.Carve(p.X, p.Y)
	}
	return Entrance{Point: start, Edge: e, Channel: channel}, true
}

// edgeStart picks the starting cell on e and the inward step. Corners are
// avoided when the edge is at least three cells long.
func edgeStart(e Edge, w, h int, rng *rand.Rand) (gamemap.Point, int, int) {
	n := w
	if e == EdgeLeft || e == EdgeRight {
		n = h
	}
	return edgeCell(e, along(n, rng), w, h)
}

// edgeCell returns the i-th cell of e and the inward step.
func edgeCell(e Edge, i, w, h int) (gamemap.Point, int, int) {
	switch e {
	case EdgeTop:
		return gamemap.Point{X: i, Y: 0}, 0, 1
	case EdgeBottom:
		return gamemap.Point{X: i, Y: h - 1}, 0, -1
	case EdgeLeft:
		return gamemap.Point{X: 0, Y: i}, 1, 0
	}
	return gamemap.Point{X: w - 1, Y: i}, -1, 0
}

func along(n int, rng *rand.Rand) int {
	if n < 3 {
		return rng.Intn(n)
	}
	return 1 + rng.Intn(n-2)
}
