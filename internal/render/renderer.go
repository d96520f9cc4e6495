package render

import (
	"dungeon-map/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// statusRows is how many rows at the bottom are kept for the status bar.
const statusRows = 2

// Renderer draws a map's screen buffer onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen. tileCols is the
// column width of one map tile, usually Theme.ColumnsPerTile.
func NewRenderer(screen tcell.Screen, tileCols int) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, max(h-statusRows, 1), tileCols),
	}
}

// CenterOn recenters the camera on map position p.
func (r *Renderer) CenterOn(p gamemap.Point) { r.camera.Center(p.X, p.Y) }

// Pan scrolls the view by whole tiles.
func (r *Renderer) Pan(dx, dy int) { r.camera.Pan(dx, dy) }

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Resize(w, max(h-statusRows, 1))
}

// WorldToScreen converts map coordinates to screen coordinates.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame clears the screen and draws buf with a marker on the entrance.
// When visible is non-nil only tiles it marks true are drawn.
func (r *Renderer) DrawFrame(buf [][]Cell, visible [][]bool, entrance gamemap.Point, marker Cell) {
	r.screen.Clear()
	for y, row := range buf {
		for x, c := range row {
			if visible != nil && !visible[y][x] {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			if x == entrance.X && y == entrance.Y {
				c = marker
			}
			r.putGlyph(sx, sy, c.Glyph, c.Style())
		}
	}
}

// DrawStatus writes two lines of text below the map view.
func (r *Renderer) DrawStatus(line1, line2 string) {
	_, h := r.screen.Size()
	y := h - statusRows
	r.drawHLine(y, tcell.ColorGray)
	r.drawText(0, y+1, line1, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if line2 != "" {
		w, _ := r.screen.Size()
		r.drawText(w-runewidth.StringWidth(line2)-1, y+1, line2, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	// Pad narrow glyphs so every tile fills its columns.
	for col := runewidth.StringWidth(glyph); col < r.camera.TileCols; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := max(x, 0)
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
