// Package overlay rebuilds raycast images from the flat sensor buffer and
// rasterizes them, one filled rectangle per sample, onto an immediate-mode
// canvas.
package overlay

import "image/color"

type Vec2 struct {
	X, Y float32
}

// Canvas is the drawing surface of one named panel. Begin and End bracket
// every panel; WindowPos is only meaningful between them.
type Canvas interface {
	Begin(title string)
	WindowPos() Vec2
	AddRectFilled(min, max Vec2, c color.RGBA)
	End()
}
