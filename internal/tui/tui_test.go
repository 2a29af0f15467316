package tui

import (
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/raycastview/internal/batch"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/session"
	"github.com/san-kum/raycastview/internal/viewer"
)

func newTestViewer(t *testing.T) (*viewer.Viewer, *Window, *batch.Manager) {
	t.Helper()

	sess, err := session.Create(New(compute.KindHost), 100, 40, 0)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	cfg := batch.DefaultConfig()
	cfg.NumWorlds, cfg.NumCams, cfg.Resolution = 2, 2, 8
	mgr, err := batch.New(cfg, nil)
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	vc := viewer.DefaultConfig()
	vc.Overlay = OverlayOptions()
	v, err := viewer.NewVisualizer(sess, mgr, viewer.WithConfig(vc))
	if err != nil {
		t.Fatalf("viewer: %v", err)
	}
	t.Cleanup(v.Close)

	h, _ := sess.Handles()
	return v, h.Window.(*Window), mgr
}

func TestTickRunsFrame(t *testing.T) {
	v, win, mgr := newTestViewer(t)

	m := newModel(win, func() error { return v.Frame(viewer.Hooks{Step: mgr.Step}) }, time.Millisecond)
	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected another tick to be scheduled")
	}
	if v.Frames() != 1 || mgr.Steps() != 1 {
		t.Errorf("expected one frame and one step, got %d and %d", v.Frames(), mgr.Steps())
	}

	w, h := win.canvas.Size()
	if w != 8 || h != 8 {
		t.Errorf("expected an 8x8 overlay, got %dx%d", w, h)
	}
	view := next.View()
	if !strings.Contains(view, "Raycast") || !strings.Contains(view, "world 0") {
		t.Errorf("view missing title or world label:\n%s", view)
	}
}

func TestKeysReachViewer(t *testing.T) {
	v, win, _ := newTestViewer(t)

	m := newModel(win, func() error { return v.Frame(viewer.Hooks{}) }, time.Millisecond)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	next.Update(tickMsg(time.Now()))

	if world, view := v.Selection(); world != 1 || view != 1 {
		t.Errorf("expected world 1 view 1, got %d %d", world, view)
	}
}

func TestShiftedLetterHoldsShift(t *testing.T) {
	win := &Window{canvas: &Canvas{}}
	m := newModel(win, nil, time.Millisecond)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'W'}})

	in := win.PollInput()
	if !in.Down.Has(platform.KeyW) || !in.Down.Has(platform.KeyShift) {
		t.Errorf("expected W and shift down, got %b", in.Down)
	}
	if !win.PollInput().Down.Empty() {
		t.Error("input should be consumed by the poll")
	}
}

func TestCtrlCQuits(t *testing.T) {
	win := &Window{canvas: &Canvas{}}
	m := newModel(win, nil, time.Millisecond)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !win.ShouldClose() {
		t.Error("window should be closing")
	}
}

func TestStoppedViewerQuits(t *testing.T) {
	v, win, _ := newTestViewer(t)

	step := func() error { return viewer.ErrStop }
	m := newModel(win, func() error {
		if err := v.Frame(viewer.Hooks{Step: step}); err != nil {
			return err
		}
		if v.State() == viewer.Stopped {
			return viewer.ErrStopped
		}
		return nil
	}, time.Millisecond)

	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if err := next.(model).err; err != nil {
		t.Errorf("clean stop should not record an error, got %v", err)
	}
}

func TestCanvasGrowsAndRenders(t *testing.T) {
	c := &Canvas{}
	c.Begin("Raycast")
	c.AddRectFilled(overlay.Vec2{X: 2, Y: 1}, overlay.Vec2{X: 3, Y: 2}, color.RGBA{255, 0, 0, 255})
	c.End()

	w, h := c.Size()
	if w != 3 || h != 2 {
		t.Errorf("expected 3x2, got %dx%d", w, h)
	}
	if c.At(2, 1) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("unexpected pixel %v", c.At(2, 1))
	}
	if c.At(9, 9) != (color.RGBA{}) {
		t.Error("outside pixels should be empty")
	}
	if got := strings.Count(c.View(), "▀"); got != 3 {
		t.Errorf("expected 3 half blocks, got %d", got)
	}

	c.reset()
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("reset should clear the canvas, got %dx%d", w, h)
	}
}

func TestOpenGLUnavailableInTerminal(t *testing.T) {
	_, err := session.Create(New(compute.KindOpenGL), 80, 24, 0)
	if err == nil {
		t.Fatal("expected device error")
	}
}
