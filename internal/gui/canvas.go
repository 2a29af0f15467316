package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/raycastview/internal/overlay"
)

const (
	titleFontSize = 20
	panelPadding  = 6
)

// Canvas is a fixed-position panel. Begin draws the title; End frames
// whatever was drawn in between.
type Canvas struct {
	pos      overlay.Vec2
	min, max overlay.Vec2
	drawn    bool
}

func (c *Canvas) Begin(title string) {
	c.drawn = false
	rl.DrawText(title, int32(c.pos.X)+panelPadding, int32(c.pos.Y)+panelPadding, titleFontSize, ColText)
}

func (c *Canvas) WindowPos() overlay.Vec2 { return c.pos }

func (c *Canvas) AddRectFilled(min, max overlay.Vec2, col color.RGBA) {
	if !c.drawn {
		c.min, c.max, c.drawn = min, max, true
	}
	c.min.X, c.min.Y = minf(c.min.X, min.X), minf(c.min.Y, min.Y)
	c.max.X, c.max.Y = maxf(c.max.X, max.X), maxf(c.max.Y, max.Y)

	rl.DrawRectangleV(
		rl.NewVector2(min.X, min.Y),
		rl.NewVector2(max.X-min.X, max.Y-min.Y),
		rl.NewColor(col.R, col.G, col.B, col.A),
	)
}

func (c *Canvas) End() {
	if !c.drawn {
		return
	}
	x, y := c.pos.X, c.pos.Y
	rl.DrawRectangleLinesEx(
		rl.NewRectangle(x, y, c.max.X-x+panelPadding, c.max.Y-y+panelPadding),
		1, ColTextDim,
	)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
