package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/raycastview/internal/overlay"
)

// Canvas is a pixel grid that grows to fit what is drawn. Two pixel rows
// share one terminal row.
type Canvas struct {
	title  string
	pixels [][]color.RGBA
	width  int
}

func (c *Canvas) reset() {
	c.title = ""
	c.pixels = c.pixels[:0]
	c.width = 0
}

func (c *Canvas) Begin(title string) {
	c.title = title
}

func (c *Canvas) WindowPos() overlay.Vec2 { return overlay.Vec2{} }

func (c *Canvas) AddRectFilled(min, max overlay.Vec2, col color.RGBA) {
	x0, y0 := int(math.Floor(float64(min.X))), int(math.Floor(float64(min.Y)))
	x1, y1 := int(math.Ceil(float64(max.X))), int(math.Ceil(float64(max.Y)))
	if x0 < 0 || y0 < 0 {
		return
	}
	for y := y0; y < y1; y++ {
		for y >= len(c.pixels) {
			c.pixels = append(c.pixels, nil)
		}
		row := c.pixels[y]
		for len(row) < x1 {
			row = append(row, color.RGBA{})
		}
		for x := x0; x < x1; x++ {
			row[x] = col
		}
		c.pixels[y] = row
	}
	if x1 > c.width {
		c.width = x1
	}
}

func (c *Canvas) End() {}

// At returns the pixel at (x, y), or transparent black outside the drawn
// area.
func (c *Canvas) At(x, y int) color.RGBA {
	if y < 0 || y >= len(c.pixels) || x < 0 || x >= len(c.pixels[y]) {
		return color.RGBA{}
	}
	return c.pixels[y][x]
}

func (c *Canvas) Size() (width, height int) { return c.width, len(c.pixels) }

func (c *Canvas) View() string {
	var b strings.Builder
	b.WriteString(white.Render(c.title))
	b.WriteString("\n")
	for y := 0; y < len(c.pixels); y += 2 {
		for x := 0; x < c.width; x++ {
			top, bottom := c.At(x, y), c.At(x, y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
