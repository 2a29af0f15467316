package viewer_test

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/raycast"
)

type fakeManager struct {
	buf          *raycast.Buffer
	worlds, cams int
	agents       int
}

// newFakeManager fills every byte of image k with k.
func newFakeManager(worlds, cams, res int) *fakeManager {
	l := raycast.Layout{NumWorlds: worlds, NumCams: cams, Resolution: res}
	buf, err := raycast.NewHostBuffer(l)
	if err != nil {
		panic(err)
	}
	for k := 0; k < l.NumImages(); k++ {
		img := buf.Host()[l.Offset(k) : l.Offset(k)+l.BytesPerImage()]
		for i := range img {
			img[i] = byte(k)
		}
	}
	return &fakeManager{buf: buf, worlds: worlds, cams: cams, agents: 2}
}

func (m *fakeManager) NumWorlds() int                 { return m.worlds }
func (m *fakeManager) NumCams() int                   { return m.cams }
func (m *fakeManager) NumAgents() int                 { return m.agents }
func (m *fakeManager) ExecMode() raycast.ExecMode     { return m.buf.Mode() }
func (m *fakeManager) RaycastBuffer() *raycast.Buffer { return m.buf }

func (m *fakeManager) Bodies(world int, dst []platform.Body) []platform.Body { return dst }

func (m *fakeManager) CameraPose(world, cam int) platform.Camera {
	return platform.Camera{Position: mgl32.Vec3{float32(world), float32(cam), 0}}
}

// tracingCanvas records an "overlay" event when a panel opens.
type tracingCanvas struct {
	overlay.Recorder
	trace func(string)
}

func (c *tracingCanvas) Begin(title string) {
	c.trace("overlay")
	c.Recorder.Begin(title)
}

type fakeClock struct {
	now   time.Time
	slept []time.Duration
	cost  time.Duration
}

// Now advances by cost on every call to simulate frame work.
func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.cost)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

type failingRenderer struct{}

var errContextLost = errors.New("context lost")

func (failingRenderer) Render(platform.SceneView) error { return errContextLost }

func pressed(keys ...platform.Key) platform.Input {
	return platform.Input{Pressed: platform.Keys(keys...)}
}
