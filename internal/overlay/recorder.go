package overlay

import "image/color"

type Rect struct {
	Min, Max Vec2
	Color    color.RGBA
}

// Recorder is a Canvas that keeps every call. Used by tests and the bench
// command, where no window exists.
type Recorder struct {
	Origin Vec2
	Titles []string
	Rects  []Rect
	Begins int
	Ends   int
}

func (r *Recorder) Begin(title string) {
	r.Begins++
	r.Titles = append(r.Titles, title)
}

func (r *Recorder) WindowPos() Vec2 { return r.Origin }

func (r *Recorder) AddRectFilled(min, max Vec2, c color.RGBA) {
	r.Rects = append(r.Rects, Rect{Min: min, Max: max, Color: c})
}

func (r *Recorder) End() { r.Ends++ }

// Reset clears recorded calls but keeps the backing arrays.
func (r *Recorder) Reset() {
	r.Titles = r.Titles[:0]
	r.Rects = r.Rects[:0]
	r.Begins, r.Ends = 0, 0
}
