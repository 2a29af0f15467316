// Package tui is a terminal backend. A bubbletea program owns the terminal;
// each tick runs one viewer frame, and the overlay is drawn with half-block
// cells so one character covers two sensor rows.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// OverlayOptions maps one sensor pixel to one canvas pixel, which is half a
// terminal cell.
func OverlayOptions() overlay.Options {
	return overlay.Options{Title: overlay.DefaultTitle, PixelScale: 1, VerticalOffset: 0}
}

type Platform struct {
	DeviceKind compute.Kind
}

func New(kind compute.Kind) *Platform {
	return &Platform{DeviceKind: kind}
}

func (p *Platform) Name() string { return "terminal" }

// OpenWindow sizes the window in terminal cells.
func (p *Platform) OpenWindow(title string, width, height int) (platform.Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("terminal window %dx%d", width, height)
	}
	return &Window{
		title:  title,
		width:  width,
		height: height,
		canvas: &Canvas{},
	}, nil
}

func (p *Platform) OpenDevice(id int, w platform.Window) (compute.Device, error) {
	kind := p.DeviceKind
	if kind == compute.KindOpenGL {
		return nil, fmt.Errorf("terminal has no GL context: %w", dynamo.ErrDeviceUnavailable)
	}
	return compute.Open(kind, id)
}

func (p *Platform) NewRenderer(w platform.Window, dev compute.Device) (platform.SceneRenderer, error) {
	win, ok := w.(*Window)
	if !ok {
		return nil, fmt.Errorf("terminal renderer needs a terminal window, got %T", w)
	}
	return &Renderer{win: win}, nil
}

func (p *Platform) Close() error { return nil }

// Window buffers key presses between frames. Terminals report no key
// releases, so a key is down only in the frame after it was pressed.
type Window struct {
	title         string
	width, height int
	canvas        *Canvas
	scene         string
	pending       platform.Input
	lastPoll      time.Time
	closing       bool
}

func (w *Window) press(k platform.Key, shift bool) {
	w.pending.Pressed = w.pending.Pressed.With(k)
	w.pending.Down = w.pending.Down.With(k)
	if shift {
		w.pending.Down = w.pending.Down.With(platform.KeyShift)
	}
}

func (w *Window) RequestClose() { w.closing = true }

func (w *Window) ShouldClose() bool { return w.closing }

func (w *Window) PollInput() platform.Input {
	in := w.pending
	w.pending = platform.Input{}

	now := time.Now()
	if !w.lastPoll.IsZero() {
		in.Dt = float32(now.Sub(w.lastPoll).Seconds())
	}
	w.lastPoll = now
	in.MouseDelta = mgl32.Vec2{}
	return in
}

func (w *Window) BeginFrame() {
	w.canvas.reset()
	w.scene = ""
}

func (w *Window) EndFrame() {}

func (w *Window) Canvas() overlay.Canvas { return w.canvas }

func (w *Window) Close() error {
	w.closing = true
	return nil
}

// View lays out the last completed frame.
func (w *Window) View() string {
	var b strings.Builder
	b.WriteString(cyan.Render(w.title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, w.canvas.View(), "  ", w.scene))
	b.WriteString("\n")
	b.WriteString(dimmer.Render("wasd/qe move  ←/→ view  pgup/pgdn world  space pause  esc free cam  ctrl+c quit"))
	return b.String()
}
