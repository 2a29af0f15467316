package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/raycastview/internal/platform"
)

const (
	mapWidth  = 40
	mapHeight = 14
	mapScale  = 6.0 // cells per metre horizontally
)

// Renderer draws a front view of the world (X right, Z up) as characters.
type Renderer struct {
	win    *Window
	bodies []platform.Body
	grid   [mapHeight][mapWidth]rune
	styles [mapHeight][mapWidth]lipgloss.Style
}

func (r *Renderer) Render(v platform.SceneView) error {
	r.bodies = v.Scene.Bodies(v.World, r.bodies[:0])

	for y := range r.grid {
		for x := range r.grid[y] {
			r.grid[y][x] = ' '
			r.styles[y][x] = dimmer
		}
	}
	for x := range r.grid[mapHeight-1] {
		r.grid[mapHeight-1][x] = '─'
	}

	for _, b := range r.bodies {
		bx, by := project(b.Center.X(), b.Center.Z())
		if b.Tethered {
			ax, ay := project(b.Anchor.X(), b.Anchor.Z())
			r.line(ax, ay, bx, by, '·', dim)
			r.set(ax, ay, '+', dim)
		}
		r.set(bx, by, '●', lipgloss.NewStyle().Foreground(hex(b.Color)))
	}

	label := "free camera"
	if v.View >= 0 {
		label = fmt.Sprintf("camera %d", v.View)
	}

	var b strings.Builder
	b.WriteString(white.Render(fmt.Sprintf("world %d", v.World)))
	b.WriteString(dim.Render("  " + label))
	b.WriteString("\n")
	for y := range r.grid {
		for x := range r.grid[y] {
			b.WriteString(r.styles[y][x].Render(string(r.grid[y][x])))
		}
		b.WriteString("\n")
	}
	pos := v.Camera.Position
	b.WriteString(dimmer.Render(fmt.Sprintf("eye %.1f %.1f %.1f", pos.X(), pos.Y(), pos.Z())))

	r.win.scene = b.String()
	return nil
}

// project maps world X and Z to grid cells; the ground sits on the last row.
func project(x, z float32) (int, int) {
	cx := mapWidth/2 + int(x*mapScale)
	cy := mapHeight - 1 - int(z*mapScale/2)
	return cx, cy
}

func (r *Renderer) set(x, y int, c rune, st lipgloss.Style) {
	if x >= 0 && x < mapWidth && y >= 0 && y < mapHeight {
		r.grid[y][x] = c
		r.styles[y][x] = st
	}
}

func (r *Renderer) line(x1, y1, x2, y2 int, c rune, st lipgloss.Style) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c, st)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
