package render

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"
)

// ColorMode selects how WriteANSI colors its output.
type ColorMode uint8

const (
	// ColorNever writes glyphs only.
	ColorNever ColorMode = iota
	// ColorAuto colors as far as the detected terminal supports.
	ColorAuto
	// ColorAlways writes truecolor escapes regardless of the environment.
	ColorAlways
)

// colorMu guards gookit's package-level color level while it is forced.
var colorMu sync.Mutex

// WriteANSI prints buf one row per line, coloring each glyph per mode.
func WriteANSI(w io.Writer, buf [][]Cell, mode ColorMode) error {
	colored := mode != ColorNever
	if mode == ColorAlways {
		colorMu.Lock()
		defer colorMu.Unlock()
		enabled := color.Enable
		color.Enable = true
		level := color.ForceColor()
		defer func() {
			color.ForceSetColorLevel(level)
			color.Enable = enabled
		}()
	}

	bw := bufio.NewWriter(w)
	styles := make(map[Cell]*color.RGBStyle)
	for _, row := range buf {
		var line strings.Builder
		for _, c := range row {
			if !colored {
				line.WriteString(c.Glyph)
				continue
			}
			key := Cell{Fg: c.Fg, Bg: c.Bg}
			st, ok := styles[key]
			if !ok {
				st = rgbStyle(c)
				styles[key] = st
			}
			if st == nil {
				line.WriteString(c.Glyph)
				continue
			}
			line.WriteString(st.Sprint(c.Glyph))
		}
		line.WriteByte('\n')
		if _, err := bw.WriteString(line.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// rgbStyle converts tcell colors to a gookit style; default colors have
// no RGB value and yield nil.
func rgbStyle(c Cell) *color.RGBStyle {
	if c.Fg == tcell.ColorDefault {
		return nil
	}
	fr, fg, fb := c.Fg.RGB()
	fgc := color.RGB(uint8(fr), uint8(fg), uint8(fb))
	if c.Bg == tcell.ColorDefault {
		return color.NewRGBStyle(fgc)
	}
	br, bgg, bb := c.Bg.RGB()
	return color.NewRGBStyle(fgc, color.RGB(uint8(br), uint8(bgg), uint8(bb), true))
}
