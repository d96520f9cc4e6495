// Package gamemap holds the tile grid a dungeon is carved into and the
// occupancy mask used to keep carved structures apart while generating.
package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
)

func (k TileKind) String() string {
	if k == TileFloor {
		return "floor"
	}
	return "wall"
}

// Grid is a fixed-size tile grid addressed by (x, y), stored row-major.
// A new Grid is solid wall.
type Grid struct {
	Width, Height int
	tiles         []TileKind
}

// NewGrid creates a Grid filled with walls.
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, tiles: make([]TileKind, width*height)}
}

// Bounds returns the rectangle covered by the grid.
func (g *Grid) Bounds() Rect { return Rect{W: g.Width, H: g.Height} }

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Out-of-bounds cells read as wall.
func (g *Grid) At(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.tiles[y*g.Width+x]
}

// IsFloor reports whether (x, y) is in bounds and carved.
func (g *Grid) IsFloor(x, y int) bool { return g.At(x, y) == TileFloor }

// Carve turns (x, y) into floor. Carving never reverts a floor tile and
// ignores out-of-bounds cells; it reports whether the tile changed.
func (g *Grid) Carve(x, y int) bool {
	if !g.InBounds(x, y) || g.tiles[y*g.Width+x] == TileFloor {
		return false
	}
	g.tiles[y*g.Width+x] = TileFloor
	return true
}

// CarveRect carves every in-bounds cell of r.
func (g *Grid) CarveRect(r Rect) {
	r = r.Clip(g.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Carve(x, y)
		}
	}
}

// FloorCount returns the number of carved tiles.
func (g *Grid) FloorCount() int {
	n := 0
	for _, t := range g.tiles {
		if t == TileFloor {
			n++
		}
	}
	return n
}

// Walkable returns a fresh [y][x] copy of the grid as passability flags.
func (g *Grid) Walkable() [][]bool {
	out := make([][]bool, g.Height)
	for y := range out {
		out[y] = make([]bool, g.Width)
		for x := range out[y] {
			out[y][x] = g.tiles[y*g.Width+x] == TileFloor
		}
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, tiles: make([]TileKind, len(g.tiles))}
	copy(c.tiles, g.tiles)
	return c
}

// Equal reports whether two grids have the same size and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != other.tiles[i] {
			return false
		}
	}
	return true
}

// String draws the grid with '#' for walls and '.' for floor, one row per line.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.Width+1)*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.tiles[y*g.Width+x] == TileFloor {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
