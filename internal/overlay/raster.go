package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ImageCanvas rasterizes panel rectangles into an RGBA image, using screen
// coordinates as pixel coordinates. An Origin of (0, -vertOffset) puts the
// reconstructed image at the top-left corner.
type ImageCanvas struct {
	Img    *image.RGBA
	Origin Vec2
}

func NewImageCanvas(width, height int, origin Vec2) *ImageCanvas {
	return &ImageCanvas{
		Img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		Origin: origin,
	}
}

func (c *ImageCanvas) Begin(string) {}
func (c *ImageCanvas) End()         {}

func (c *ImageCanvas) WindowPos() Vec2 { return c.Origin }

func (c *ImageCanvas) AddRectFilled(min, max Vec2, col color.RGBA) {
	r := image.Rect(
		int(math.Round(float64(min.X))),
		int(math.Round(float64(min.Y))),
		int(math.Round(float64(max.X))),
		int(math.Round(float64(max.Y))),
	)
	draw.Draw(c.Img, r.Intersect(c.Img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// Snapshot renders image (world, view) through r into a fresh RGBA image of
// Extent size.
func Snapshot(r *Reconstructor, world, view int) (*image.RGBA, error) {
	ext := r.Extent()
	canvas := NewImageCanvas(
		int(math.Ceil(float64(ext.X))),
		int(math.Ceil(float64(ext.Y))),
		Vec2{0, -r.opts.VerticalOffset},
	)
	if err := r.Draw(canvas, world, view); err != nil {
		return nil, err
	}
	return canvas.Img, nil
}
