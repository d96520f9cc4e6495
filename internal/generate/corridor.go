package generate

import (
	"math/rand"

	"dungeon-map/internal/gamemap"
)

// PathOrder selects which leg of an L-shaped corridor comes first.
type PathOrder uint8

const (
	HorizontalFirst PathOrder = iota
	VerticalFirst
)

func (o PathOrder) String() string {
	if o == VerticalFirst {
		return "vertical-first"
	}
	return "horizontal-first"
}

// ConnectionResult tells how a corridor was carved.
type ConnectionResult uint8

const (
	// ConnectionBuffered corridors passed the collision check and reserved
	// their buffer.
	ConnectionBuffered ConnectionResult = iota
	// ConnectionForced corridors failed the check in both orders and were
	// carved anyway, reserving only their own cells.
	ConnectionForced
)

func (r ConnectionResult) String() string {
	if r == ConnectionForced {
		return "forced"
	}
	return "buffered"
}

// Connection records the corridor carved for one internal node.
type Connection struct {
	Node     NodeID
	From, To Anchor
	Order    PathOrder
	Result   ConnectionResult
	Path     []gamemap.Point
}

// LPath walks from a to b one cell at a time with a single turn. The
// horizontal-first path runs along a.Y then down b.X; vertical-first runs
// along a.X then across b.Y.
func LPath(a, b gamemap.Point, order PathOrder) []gamemap.Point {
	path := make([]gamemap.Point, 0, abs(a.X-b.X)+abs(a.Y-b.Y)+1)
	path = append(path, a)
	cur := a
	if order == HorizontalFirst {
		path = runH(path, &cur, b.X)
		path = runV(path, &cur, b.Y)
	} else {
		path = runV(path, &cur, b.Y)
		path = runH(path, &cur, b.X)
	}
	return path
}

func runH(path []gamemap.Point, cur *gamemap.Point, toX int) []gamemap.Point {
	step := sign(toX - cur.X)
	for cur.X != toX {
		cur.X += step
		path = append(path, *cur)
	}
	return path
}

func runV(path []gamemap.Point, cur *gamemap.Point, toY int) []gamemap.Point {
	step := sign(toY - cur.Y)
	for cur.Y != toY {
		cur.Y += step
		path = append(path, *cur)
	}
	return path
}

type corridorCarver struct {
	grid *gamemap.Grid
	mask *gamemap.ReservedMask
	buf  int
	rng  *rand.Rand
	// exemptRooms also skips reservations owned by the anchors' rooms.
	exemptRooms bool
}

// connect joins a and b for node. A path is buffered when no cell other
// than a and b has a reserved cell within the buffer; otherwise the first
// order is carved anyway and tagged forced.
func (c *corridorCarver) connect(node NodeID, a, b Anchor) Connection {
	orders := [2]PathOrder{HorizontalFirst, VerticalFirst}
	if c.rng.Intn(2) == 0 {
		orders[0], orders[1] = orders[1], orders[0]
	}
	var related func(gamemap.Owner) bool
	if c.exemptRooms {
		related = func(o gamemap.Owner) bool { return o == a.Room || o == b.Room }
	}

	for _, order := range orders {
		path := LPath(a.Point, b.Point, order)
		if !c.clear(path, a.Point, b.Point, related) {
			continue
		}
		for _, p := range path {
			c.grid.Carve(p.X, p.Y)
			c.mask.Reserve(gamemap.Rect{X: p.X, Y: p.Y, W: 1, H: 1}.Expand(c.buf), node.Owner())
		}
		return Connection{Node: node, From: a, To: b, Order: order, Result: ConnectionBuffered, Path: path}
	}

	path := LPath(a.Point, b.Point, orders[0])
	for _, p := range path {
		c.grid.Carve(p.X, p.Y)
		c.mask.ReserveCell(p, node.Owner())
	}
	return Connection{Node: node, From: a, To: b, Order: orders[0], Result: ConnectionForced, Path: path}
}

func (c *corridorCarver) clear(path []gamemap.Point, a, b gamemap.Point, related func(gamemap.Owner) bool) bool {
	for _, p := range path {
		if p == a || p == b {
			continue
		}
		around := gamemap.Rect{X: p.X, Y: p.Y, W: 1, H: 1}.Expand(c.buf)
		if c.mask.Collides(around, related) {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
