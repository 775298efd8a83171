package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/sketchpad/internal/shape"
)

// brailleBuf is a canvas of 2x4 micro-pixels per terminal cell. Each cell
// remembers the colour of the last stroke that touched it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]string
	pen  string
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink}
}

var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.ink[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath strokes pts, scaled down by scale drawing units per micro-pixel.
func (b *brailleBuf) drawPath(pts []shape.Point, closed bool, scale float64) {
	micro := func(p shape.Point) (int, int) {
		return int(math.Round(p.X / scale)), int(math.Round(p.Y / scale))
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := micro(pts[i-1])
		x1, y1 := micro(pts[i])
		b.drawLineMicro(x0, y0, x1, y1)
	}
	if closed && len(pts) > 2 {
		x0, y0 := micro(pts[len(pts)-1])
		x1, y1 := micro(pts[0])
		b.drawLineMicro(x0, y0, x1, y1)
	}
}

// render turns the buffer into styled lines, grouping runs of equal ink.
func (b *brailleBuf) render(bg lipgloss.Color) []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		ink := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg)
			if ink != "" {
				st = st.Foreground(lipgloss.Color(ink))
			}
			sb.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			r := ' '
			cellInk := ""
			if mask := b.m[y][x]; mask != 0 {
				r = rune(0x2800 + int(mask))
				cellInk = b.ink[y][x]
			}
			if cellInk != ink {
				flush()
				ink = cellInk
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// toLines returns the buffer without styling.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
