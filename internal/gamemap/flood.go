package gamemap

import "github.com/zyedidia/generic/mapset"

var dirs4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Reachable returns the set of floor tiles 4-connected to start. A start
// that is not floor yields an empty set.
func (g *Grid) Reachable(start Point) mapset.Set[Point] {
	seen := mapset.New[Point]()
	if !g.IsFloor(start.X, start.Y) {
		return seen
	}
	seen.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs4 {
			next := cur.Add(d[0], d[1])
			if !g.IsFloor(next.X, next.Y) || seen.Has(next) {
				continue
			}
			seen.Put(next)
			queue = append(queue, next)
		}
	}
	return seen
}

// Components returns the number of 4-connected floor regions.
func (g *Grid) Components() int {
	seen := mapset.New[Point]()
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{X: x, Y: y}
			if !g.IsFloor(x, y) || seen.Has(p) {
				continue
			}
			n++
			region := g.Reachable(p)
			region.Each(func(q Point) { seen.Put(q) })
		}
	}
	return n
}
