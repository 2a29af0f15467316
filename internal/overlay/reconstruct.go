package overlay

import (
	"image/color"

	"github.com/san-kum/raycastview/internal/raycast"
)

const DefaultTitle = "Raycast"

type Options struct {
	Title          string
	PixelScale     float32
	VerticalOffset float32
}

func DefaultOptions() Options {
	return Options{
		Title:          DefaultTitle,
		PixelScale:     3,
		VerticalOffset: 70,
	}
}

// Reconstructor draws the selected camera image every frame. Cost is
// O(resolution²) rectangles per call, which bounds the practical resolution
// at interactive rates.
type Reconstructor struct {
	layout raycast.Layout
	reader raycast.Reader
	opts   Options
}

func NewReconstructor(buf *raycast.Buffer, opts Options) *Reconstructor {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	return &Reconstructor{
		layout: buf.Layout(),
		reader: raycast.NewReader(buf),
		opts:   opts,
	}
}

func (r *Reconstructor) Options() Options       { return r.opts }
func (r *Reconstructor) Layout() raycast.Layout { return r.layout }

// Scratch exposes the host readback copy; nil for host-resident buffers.
func (r *Reconstructor) Scratch() []byte { return r.reader.Scratch() }

// Extent is the on-screen size of one reconstructed image.
func (r *Reconstructor) Extent() Vec2 {
	side := r.opts.PixelScale * float32(r.layout.Resolution)
	return Vec2{side, side}
}

// Draw reads image (world, view) and paints it into a panel on c. A failed
// readback returns before the panel is opened so an undefined scratch copy
// is never shown.
func (r *Reconstructor) Draw(c Canvas, world, view int) error {
	pixels, err := r.reader.Image(r.layout.ImageIndex(world, view))
	if err != nil {
		return err
	}

	c.Begin(r.opts.Title)
	defer c.End()

	origin := c.WindowPos()
	scale := r.opts.PixelScale
	top := origin.Y + r.opts.VerticalOffset
	res := r.layout.Resolution

	for i := 0; i < res; i++ {
		x0 := origin.X + float32(i)*scale
		x1 := origin.X + float32(i+1)*scale
		for j := 0; j < res; j++ {
			p := r.layout.PixelOffset(i, j)
			c.AddRectFilled(
				Vec2{x0, top + float32(j)*scale},
				Vec2{x1, top + float32(j+1)*scale},
				color.RGBA{R: pixels[p], G: pixels[p+1], B: pixels[p+2], A: 255},
			)
		}
	}
	return nil
}
