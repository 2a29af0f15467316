package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
)

var keyMap = []struct {
	rl  int32
	key platform.Key
}{
	{rl.KeyW, platform.KeyW},
	{rl.KeyA, platform.KeyA},
	{rl.KeyS, platform.KeyS},
	{rl.KeyD, platform.KeyD},
	{rl.KeyQ, platform.KeyQ},
	{rl.KeyE, platform.KeyE},
	{rl.KeyLeftShift, platform.KeyShift},
	{rl.KeySpace, platform.KeySpace},
	{rl.KeyLeft, platform.KeyLeft},
	{rl.KeyRight, platform.KeyRight},
	{rl.KeyUp, platform.KeyUp},
	{rl.KeyDown, platform.KeyDown},
	{rl.KeyPageUp, platform.KeyPageUp},
	{rl.KeyPageDown, platform.KeyPageDown},
	{rl.KeyEscape, platform.KeyEscape},
	{rl.KeyR, platform.KeyR},
}

type Window struct {
	canvas *Canvas
	closed bool
}

func (w *Window) ShouldClose() bool { return rl.WindowShouldClose() }

func (w *Window) PollInput() platform.Input {
	var in platform.Input
	for _, k := range keyMap {
		if rl.IsKeyPressed(k.rl) {
			in.Pressed = in.Pressed.With(k.key)
		}
		if rl.IsKeyDown(k.rl) {
			in.Down = in.Down.With(k.key)
		}
	}
	if rl.IsKeyDown(rl.KeyRightShift) {
		in.Down = in.Down.With(platform.KeyShift)
	}

	in.Look = rl.IsMouseButtonDown(rl.MouseRightButton)
	d := rl.GetMouseDelta()
	in.MouseDelta = mgl32.Vec2{d.X, d.Y}
	in.Dt = rl.GetFrameTime()
	return in
}

func (w *Window) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
}

func (w *Window) EndFrame() {
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
	rl.EndDrawing()
}

func (w *Window) Canvas() overlay.Canvas { return w.canvas }

func (w *Window) Close() error {
	if !w.closed {
		w.closed = true
		rl.CloseWindow()
	}
	return nil
}
