package platform

import (
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/overlay"
)

// Headless is a windowless platform. Its window closes after Frames frames
// (never when Frames is 0) and replays Script one entry per frame.
type Headless struct {
	Frames     int
	Script     []Input
	DeviceKind compute.Kind
	// Trace, when set, receives "begin", "render" and "end" as the window
	// and renderer are driven.
	Trace func(event string)

	closed bool
}

func (h *Headless) Name() string { return "headless" }

func (h *Headless) OpenWindow(title string, width, height int) (Window, error) {
	return &HeadlessWindow{
		Title:    title,
		Width:    width,
		Height:   height,
		Recorder: &overlay.Recorder{},
		platform: h,
	}, nil
}

func (h *Headless) OpenDevice(id int, w Window) (compute.Device, error) {
	kind := h.DeviceKind
	if kind == "" || kind == compute.KindAuto {
		kind = compute.KindHost
	}
	return compute.Open(kind, id)
}

func (h *Headless) NewRenderer(w Window, dev compute.Device) (SceneRenderer, error) {
	return &HeadlessRenderer{trace: h.trace}, nil
}

func (h *Headless) Close() error {
	h.closed = true
	return nil
}

func (h *Headless) Closed() bool { return h.closed }

func (h *Headless) trace(event string) {
	if h.Trace != nil {
		h.Trace(event)
	}
}

// HeadlessWindow records overlay draws of the current frame in Recorder.
type HeadlessWindow struct {
	Title         string
	Width, Height int
	Recorder      *overlay.Recorder
	FramesDone    int
	Closed        bool

	platform *Headless
	close    bool
}

// RequestClose makes ShouldClose report true from the next check on.
func (w *HeadlessWindow) RequestClose() { w.close = true }

func (w *HeadlessWindow) ShouldClose() bool {
	return w.close || (w.platform.Frames > 0 && w.FramesDone >= w.platform.Frames)
}

func (w *HeadlessWindow) PollInput() Input {
	if w.FramesDone < len(w.platform.Script) {
		return w.platform.Script[w.FramesDone]
	}
	return Input{}
}

func (w *HeadlessWindow) BeginFrame() {
	w.Recorder.Reset()
	w.platform.trace("begin")
}

func (w *HeadlessWindow) EndFrame() {
	w.FramesDone++
	w.platform.trace("end")
}

func (w *HeadlessWindow) Canvas() overlay.Canvas { return w.Recorder }

func (w *HeadlessWindow) Close() error {
	w.Closed = true
	return nil
}

// HeadlessRenderer counts renders and remembers the last view.
type HeadlessRenderer struct {
	Renders int
	Last    SceneView

	trace func(string)
}

func (r *HeadlessRenderer) Render(v SceneView) error {
	r.Renders++
	r.Last = v
	r.trace("render")
	return nil
}
