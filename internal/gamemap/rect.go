package gamemap

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle covering [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Area returns W*H, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Center returns the integer midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.X + r.Right()) / 2, Y: (r.Y + r.Bottom()) / 2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether r and other share at least one cell.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Expand grows the rectangle by n cells on every side.
func (r Rect) Expand(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect { return r.Expand(-n) }

// Clip returns the part of r that lies inside bounds.
func (r Rect) Clip(bounds Rect) Rect {
	x1, y1 := max(r.X, bounds.X), max(r.Y, bounds.Y)
	x2, y2 := min(r.Right(), bounds.Right()), min(r.Bottom(), bounds.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// OnBorder reports whether p lies on the outermost ring of r.
func (r Rect) OnBorder(p Point) bool {
	if !r.Contains(p) {
		return false
	}
	return p.X == r.X || p.X == r.Right()-1 || p.Y == r.Y || p.Y == r.Bottom()-1
}

// Chebyshev returns the king-move distance between the nearest cells of
// two rectangles; overlapping rectangles are at distance 0.
func (r Rect) Chebyshev(other Rect) int {
	dx := max(other.X-(r.Right()-1), r.X-(other.Right()-1), 0)
	dy := max(other.Y-(r.Bottom()-1), r.Y-(other.Bottom()-1), 0)
	return max(dx, dy)
}
