package render

// Camera translates between map coordinates and screen coordinates.
// Each map tile spans TileCols terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	TileCols   int
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH, tileCols int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH, TileCols: max(tileCols, 1)}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that map position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/c.TileCols)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Pan moves the view by (dx, dy) tiles.
func (c *Camera) Pan(dx, dy int) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// Resize changes the viewport, keeping the current center.
func (c *Camera) Resize(viewW, viewH int) {
	cx := c.OffsetX + (c.ViewWidth/c.TileCols)/2
	cy := c.OffsetY + c.ViewHeight/2
	c.ViewWidth, c.ViewHeight = viewW, viewH
	c.Center(cx, cy)
}

// WorldToScreen converts map (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * c.TileCols
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+c.TileCols <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to map coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/c.TileCols + c.OffsetX, sy + c.OffsetY
}
