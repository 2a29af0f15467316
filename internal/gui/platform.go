// Package gui is the desktop backend: a raylib window with a 3D scene view
// of the selected world and an immediate-mode panel for the raycast overlay.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
)

// Theme colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColPanel   = rl.NewColor(20, 20, 20, 230)
)

// Platform opens one raylib window per process. The compute device is
// opened after the window so an OpenGL device finds a current context.
type Platform struct {
	DeviceKind compute.Kind
	PanelPos   overlay.Vec2

	open bool
}

func New(kind compute.Kind, panel overlay.Vec2) *Platform {
	return &Platform{DeviceKind: kind, PanelPos: panel}
}

func (p *Platform) Name() string { return "raylib" }

func (p *Platform) OpenWindow(title string, width, height int) (platform.Window, error) {
	if p.open {
		return nil, fmt.Errorf("raylib supports a single window")
	}
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("raylib window %dx%d did not initialize", width, height)
	}
	rl.SetExitKey(0)
	p.open = true

	return &Window{
		canvas: &Canvas{pos: p.PanelPos},
	}, nil
}

func (p *Platform) OpenDevice(id int, w platform.Window) (compute.Device, error) {
	return compute.Open(p.DeviceKind, id)
}

func (p *Platform) NewRenderer(w platform.Window, dev compute.Device) (platform.SceneRenderer, error) {
	return &Renderer{}, nil
}

func (p *Platform) Close() error { return nil }
