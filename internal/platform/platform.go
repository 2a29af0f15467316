// Package platform holds the contracts between the viewer and its
// windowing, GPU and rendering backends, plus a scriptable headless backend.
package platform

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/overlay"
)

// Platform creates the native resources of a session. The session closes
// what it opens in reverse order: device, window, platform.
type Platform interface {
	Name() string
	OpenWindow(title string, width, height int) (Window, error)
	OpenDevice(id int, w Window) (compute.Device, error)
	NewRenderer(w Window, dev compute.Device) (SceneRenderer, error)
	Close() error
}

type Window interface {
	ShouldClose() bool
	PollInput() Input
	BeginFrame()
	EndFrame()
	Canvas() overlay.Canvas
	Close() error
}

type SceneRenderer interface {
	Render(v SceneView) error
}

// Camera uses a Z-up, +Y-forward convention.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	FovY     float32
}

func (c Camera) Forward() mgl32.Vec3 { return c.Rotation.Rotate(mgl32.Vec3{0, 1, 0}) }
func (c Camera) Right() mgl32.Vec3   { return c.Rotation.Rotate(mgl32.Vec3{1, 0, 0}) }
func (c Camera) Up() mgl32.Vec3      { return c.Rotation.Rotate(mgl32.Vec3{0, 0, 1}) }

// Body is a sphere, optionally tethered to an anchor point.
type Body struct {
	Center   mgl32.Vec3
	Radius   float32
	Color    color.RGBA
	Anchor   mgl32.Vec3
	Tethered bool
}

// Scene exposes what a renderer may draw. Bodies appends world's bodies to
// dst and returns it.
type Scene interface {
	Bodies(world int, dst []Body) []Body
}

type SceneView struct {
	Scene  Scene
	World  int
	View   int
	Camera Camera
}
