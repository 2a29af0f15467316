package raycast

import (
	"fmt"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// BytesPerPixel is the size of one RGB sample.
const BytesPerPixel = 3

type Layout struct {
	NumWorlds  int
	NumCams    int
	Resolution int
}

// Validate checks the layout once at setup. Per-frame indexing trusts it.
func (l Layout) Validate() error {
	if l.NumWorlds < 1 || l.NumCams < 1 || l.Resolution < 0 {
		return fmt.Errorf("worlds=%d cams=%d resolution=%d: %w",
			l.NumWorlds, l.NumCams, l.Resolution, dynamo.ErrInvalidLayout)
	}
	return nil
}

func (l Layout) NumImages() int     { return l.NumWorlds * l.NumCams }
func (l Layout) BytesPerImage() int { return BytesPerPixel * l.Resolution * l.Resolution }
func (l Layout) Len() int           { return l.NumImages() * l.BytesPerImage() }

// ImageIndex maps a view selection to an image. Negative views select the
// world's first camera.
func (l Layout) ImageIndex(world, view int) int {
	return world*l.NumCams + max(view, 0)
}

func (l Layout) Offset(image int) int {
	return image * l.BytesPerImage()
}

// PixelOffset is the byte offset of sample (i, j) inside one image. i is
// the horizontal screen axis, j the vertical one.
func (l Layout) PixelOffset(i, j int) int {
	return BytesPerPixel * (j + i*l.Resolution)
}
