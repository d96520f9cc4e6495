package generate

import (
	"math/rand"
	"testing"

	"dungeon-map/internal/gamemap"
)

// stepsAreAdjacent checks that consecutive path cells are 4-neighbours.
func stepsAreAdjacent(path []gamemap.Point) bool {
	for i := 1; i < len(path); i++ {
		if abs(path[i].X-path[i-1].X)+abs(path[i].Y-path[i-1].Y) != 1 {
			return false
		}
	}
	return true
}

func containsPoint(path []gamemap.Point, p gamemap.Point) bool {
	for _, q := range path {
		if q == p {
			return true
		}
	}
	return false
}

func TestLPath(t *testing.T) {
	a, b := gamemap.Point{X: 2, Y: 2}, gamemap.Point{X: 6, Y: 5}
	cases := []struct {
		name   string
		order  PathOrder
		corner gamemap.Point
	}{
		{"horizontal first", HorizontalFirst, gamemap.Point{X: 6, Y: 2}},
		{"vertical first", VerticalFirst, gamemap.Point{X: 2, Y: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := LPath(a, b, tc.order)
			if len(path) != 8 {
				t.Fatalf("len = %d, want 8", len(path))
			}
			if path[0] != a || path[len(path)-1] != b {
				t.Errorf("path runs %v..%v, want %v..%v", path[0], path[len(path)-1], a, b)
			}
			if !containsPoint(path, tc.corner) {
				t.Errorf("path should turn at %v: %v", tc.corner, path)
			}
			if !stepsAreAdjacent(path) {
				t.Errorf("path is not 4-connected: %v", path)
			}
		})
	}
}

func TestLPathReversedAndDegenerate(t *testing.T) {
	path := LPath(gamemap.Point{X: 9, Y: 7}, gamemap.Point{X: 3, Y: 1}, VerticalFirst)
	if len(path) != 13 || !stepsAreAdjacent(path) {
		t.Errorf("reversed path wrong: %v", path)
	}
	same := LPath(gamemap.Point{X: 4, Y: 4}, gamemap.Point{X: 4, Y: 4}, HorizontalFirst)
	if len(same) != 1 {
		t.Errorf("path between equal points = %v, want one cell", same)
	}
}

func newCarver(w, h, buf int, seed int64) *corridorCarver {
	return &corridorCarver{
		grid: gamemap.NewGrid(w, h),
		mask: gamemap.NewReservedMask(w, h),
		buf:  buf,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func TestConnectBufferedOnOpenGround(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		c := newCarver(20, 20, 1, seed)
		a := Anchor{Point: gamemap.Point{X: 3, Y: 3}, Room: 1}
		b := Anchor{Point: gamemap.Point{X: 12, Y: 9}, Room: 2}
		conn := c.connect(5, a, b)

		if conn.Result != ConnectionBuffered {
			t.Fatalf("seed=%d: result = %v, want buffered", seed, conn.Result)
		}
		for _, p := range conn.Path {
			if !c.grid.IsFloor(p.X, p.Y) {
				t.Errorf("seed=%d: path cell %v not carved", seed, p)
			}
		}
		// The buffer ring around the midpoint of the path is reserved too.
		mid := conn.Path[len(conn.Path)/2]
		for _, d := range [][2]int{{1, 1}, {-1, -1}} {
			q := mid.Add(d[0], d[1])
			if c.mask.OwnerAt(q) != NodeID(5).Owner() {
				t.Errorf("seed=%d: buffer cell %v owner = %d, want %d", seed, q, c.mask.OwnerAt(q), NodeID(5).Owner())
			}
		}
	}
}

// twoReservedRooms carves and reserves two 6x6 rooms the way the room
// carver does, owned by 1 and 2.
func twoReservedRooms(c *corridorCarver) (Anchor, Anchor) {
	roomA := gamemap.Rect{X: 2, Y: 2, W: 6, H: 6}
	roomB := gamemap.Rect{X: 18, Y: 10, W: 6, H: 6}
	c.grid.CarveRect(roomA)
	c.grid.CarveRect(roomB)
	c.mask.Reserve(roomA.Expand(c.buf), 1)
	c.mask.Reserve(roomB.Expand(c.buf), 2)
	return Anchor{Point: roomA.Center(), Room: 1}, Anchor{Point: roomB.Center(), Room: 2}
}

func TestConnectLeavingABufferedRoomIsForced(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		c := newCarver(30, 20, 1, seed)
		a, b := twoReservedRooms(c)

		conn := c.connect(0, a, b)
		if conn.Result != ConnectionForced {
			t.Errorf("seed=%d: result = %v, want forced", seed, conn.Result)
		}
		// The first step out of a is inside a's own reservation.
		step := gamemap.Rect{X: conn.Path[1].X, Y: conn.Path[1].Y, W: 1, H: 1}.Expand(c.buf)
		if conn.Path[1] == b.Point || !c.mask.Collides(step, nil) {
			t.Errorf("seed=%d: step %v should sit in a reserved window", seed, conn.Path[1])
		}
		if c.grid.Components() != 1 {
			t.Errorf("seed=%d: rooms should be joined, got %d components", seed, c.grid.Components())
		}
	}
}

func TestConnectExemptAnchorRooms(t *testing.T) {
	c := newCarver(30, 20, 1, 3)
	c.exemptRooms = true
	a, b := twoReservedRooms(c)

	conn := c.connect(0, a, b)
	if conn.Result != ConnectionBuffered {
		t.Errorf("with anchor rooms exempt the corridor should be buffered, got %v", conn.Result)
	}
	if c.grid.Components() != 1 {
		t.Errorf("rooms should be joined, got %d components", c.grid.Components())
	}
}

func TestConnectForcedWhenBothOrdersBlocked(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		c := newCarver(20, 20, 1, seed)
		// An unrelated wall of reservations crossing both L shapes.
		blocker := gamemap.Rect{X: 8, Y: 0, W: 1, H: 20}
		c.mask.Reserve(blocker, 99)

		a := Anchor{Point: gamemap.Point{X: 2, Y: 2}, Room: 1}
		b := Anchor{Point: gamemap.Point{X: 15, Y: 15}, Room: 2}
		conn := c.connect(4, a, b)

		if conn.Result != ConnectionForced {
			t.Fatalf("seed=%d: result = %v, want forced", seed, conn.Result)
		}
		if conn.Order != HorizontalFirst && conn.Order != VerticalFirst {
			t.Fatalf("seed=%d: unknown order %v", seed, conn.Order)
		}
		for _, p := range conn.Path {
			if !c.grid.IsFloor(p.X, p.Y) {
				t.Errorf("seed=%d: forced path cell %v not carved", seed, p)
			}
		}
		// Only the exact path cells are reserved; the crossing cell keeps
		// the blocker as owner.
		want := blocker.Area() + len(conn.Path) - 1
		if got := c.mask.Count(); got != want {
			t.Errorf("seed=%d: reserved %d cells, want %d", seed, got, want)
		}
		if c.grid.Components() != 1 {
			t.Errorf("seed=%d: forced corridor must still connect", seed)
		}
	}
}

func TestConnectPrefersTheClearOrder(t *testing.T) {
	// Block only the horizontal-first corner; vertical-first must win
	// whichever order is tried first.
	for seed := int64(0); seed < 10; seed++ {
		c := newCarver(20, 20, 1, seed)
		c.mask.Reserve(gamemap.Rect{X: 14, Y: 0, W: 4, H: 4}, 77)
		a := Anchor{Point: gamemap.Point{X: 2, Y: 2}, Room: 1}
		b := Anchor{Point: gamemap.Point{X: 15, Y: 15}, Room: 2}
		conn := c.connect(1, a, b)
		if conn.Result != ConnectionBuffered || conn.Order != VerticalFirst {
			t.Errorf("seed=%d: got %v/%v, want buffered vertical-first", seed, conn.Result, conn.Order)
		}
	}
}
