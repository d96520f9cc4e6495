package render

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrInvalidTheme is wrapped by Theme validation failures.
var ErrInvalidTheme = errors.New("render: invalid theme")

// Cell is one glyph of a screen buffer with its colors.
type Cell struct {
	Glyph string
	Fg    tcell.Color
	Bg    tcell.Color
}

// Style returns the tcell style for the cell's colors.
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}

// Width returns how many terminal columns the glyph occupies.
func (c Cell) Width() int { return runewidth.StringWidth(c.Glyph) }

// Theme maps the two tile kinds to their look. It is passed by value to
// whoever assembles or draws a map.
type Theme struct {
	Floor Cell
	Wall  Cell
}

// DefaultTheme draws floor as a blank dark tile and walls as shaded blocks.
func DefaultTheme() Theme {
	return Theme{
		Floor: Cell{Glyph: " ", Fg: tcell.NewRGBColor(180, 180, 180), Bg: tcell.NewRGBColor(60, 60, 60)},
		Wall:  Cell{Glyph: "▓", Fg: tcell.NewRGBColor(180, 180, 180), Bg: tcell.NewRGBColor(120, 120, 120)},
	}
}

// Validate checks that each glyph fills one or two terminal columns.
func (t Theme) Validate() error {
	for name, c := range map[string]Cell{"floor": t.Floor, "wall": t.Wall} {
		if w := c.Width(); w < 1 || w > 2 {
			return fmt.Errorf("%w: %s glyph %q is %d columns wide", ErrInvalidTheme, name, c.Glyph, w)
		}
	}
	return nil
}

// ColumnsPerTile is the widest glyph of the theme; every tile is drawn
// that many columns wide so the grid stays aligned.
func (t Theme) ColumnsPerTile() int {
	return max(t.Floor.Width(), t.Wall.Width(), 1)
}

// ParseCell builds a Cell from a glyph and two color names or #rrggbb values.
func ParseCell(glyph, fg, bg string) (Cell, error) {
	c := Cell{Glyph: glyph, Fg: tcell.GetColor(fg), Bg: tcell.GetColor(bg)}
	if fg != "" && c.Fg == tcell.ColorDefault {
		return Cell{}, fmt.Errorf("%w: unknown color %q", ErrInvalidTheme, fg)
	}
	if bg != "" && c.Bg == tcell.ColorDefault {
		return Cell{}, fmt.Errorf("%w: unknown color %q", ErrInvalidTheme, bg)
	}
	return c, nil
}
