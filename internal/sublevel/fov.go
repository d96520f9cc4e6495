package sublevel

import "dungeon-map/internal/gamemap"

// octant transform matrices for recursive shadowcasting.
// A sweep offset (dx, dy) maps to a map offset via:
//
//	x = cx + dx*xx + dy*xy
//	y = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// FieldOfView returns the tiles visible from origin within radius, indexed
// [y][x]. Walls are opaque but are themselves lit when seen. The origin is
// always visible if it lies on the map.
func (m *Map) FieldOfView(origin gamemap.Point, radius int) [][]bool {
	vis := make([][]bool, m.Height)
	for y := range vis {
		vis[y] = make([]bool, m.Width)
	}
	if !m.inBounds(origin.X, origin.Y) {
		return vis
	}
	vis[origin.Y][origin.X] = true
	for _, o := range octants {
		m.castLight(vis, origin.X, origin.Y, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}
	return vis
}

// castLight lights one octant row by row, recursing past each wall run
// with a narrowed slope window.
func (m *Map) castLight(vis [][]bool, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && m.inBounds(wx, wy) {
				vis[wy][wx] = true
			}

			opaque := !m.IsWalkable(wx, wy)
			switch {
			case blocked && opaque:
				newStart = rSlope
			case blocked:
				blocked = false
				start = newStart
			case opaque && j < radius:
				blocked = true
				m.castLight(vis, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}
