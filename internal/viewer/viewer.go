package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/logging"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/raycast"
	"github.com/san-kum/raycastview/internal/session"
)

// ErrStop ends the loop cleanly when returned by a step callback.
var ErrStop = errors.New("viewer: stop requested")

// ErrStopped is returned by Frame after the viewer has stopped.
var ErrStopped = errors.New("viewer: stopped")

// Manager is the viewer's handle on the simulation.
type Manager interface {
	platform.Scene
	NumWorlds() int
	NumCams() int
	NumAgents() int
	ExecMode() raycast.ExecMode
	RaycastBuffer() *raycast.Buffer
	// CameraPose is the pose of camera cam in world, as seen by the
	// raycast sensor.
	CameraPose(world, cam int) platform.Camera
}

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type (
	WorldInputFn func(world int, in platform.Input)
	AgentInputFn func(world, agent int, in platform.Input)
	StepFn       func() error
)

type Hooks struct {
	WorldInput WorldInputFn
	AgentInput AgentInputFn
	Step       StepFn
}

type Viewer struct {
	sess     *session.Context
	mgr      Manager
	window   platform.Window
	canvas   overlay.Canvas
	renderer platform.SceneRenderer
	recon    *overlay.Reconstructor
	camera   *FlyCamera
	clock    Clock
	log      logging.Logger
	cfg      Config

	worldInput WorldInputFn
	agentInput AgentInputFn

	state  State
	world  int
	view   int
	paused bool
	frame  int
	closed bool
}

type Option func(*Viewer)

func WithConfig(cfg Config) Option {
	return func(v *Viewer) { v.cfg = cfg }
}

func WithClock(c Clock) Option {
	return func(v *Viewer) { v.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithCanvas draws the overlay on c instead of the window's canvas.
func WithCanvas(c overlay.Canvas) Option {
	return func(v *Viewer) { v.canvas = c }
}

// WithRenderer replaces the platform's scene renderer.
func WithRenderer(r platform.SceneRenderer) Option {
	return func(v *Viewer) { v.renderer = r }
}

// NewVisualizer builds a viewer over the session's window and device. The
// session is retained until Close. The raycast layout is validated here and
// trusted on every frame afterwards.
func NewVisualizer(sess *session.Context, mgr Manager, opts ...Option) (*Viewer, error) {
	v := &Viewer{
		sess:  sess,
		mgr:   mgr,
		cfg:   DefaultConfig(),
		clock: systemClock{},
		log:   logging.Nop{},
	}
	for _, opt := range opts {
		opt(v)
	}

	buf := mgr.RaycastBuffer()
	if err := buf.Layout().Validate(); err != nil {
		return nil, err
	}
	if buf.Layout().NumWorlds != mgr.NumWorlds() || buf.Layout().NumCams != mgr.NumCams() {
		return nil, fmt.Errorf("buffer %+v does not match %d worlds x %d cams: %w",
			buf.Layout(), mgr.NumWorlds(), mgr.NumCams(), dynamo.ErrInvalidLayout)
	}
	if buf.Mode() != mgr.ExecMode() {
		return nil, fmt.Errorf("buffer is %s resident but manager runs %s: %w",
			buf.Mode(), mgr.ExecMode(), dynamo.ErrInvalidLayout)
	}

	if err := sess.Retain(); err != nil {
		return nil, err
	}
	h, err := sess.Handles()
	if err != nil {
		sess.Release()
		return nil, err
	}

	v.window = h.Window
	if v.canvas == nil {
		v.canvas = h.Window.Canvas()
	}
	if v.renderer == nil {
		r, err := sess.Platform().NewRenderer(h.Window, h.Device)
		if err != nil {
			sess.Release()
			return nil, fmt.Errorf("creating scene renderer: %w", err)
		}
		v.renderer = r
	}

	v.recon = overlay.NewReconstructor(buf, v.cfg.Overlay)
	v.camera = NewFlyCamera(v.cfg)
	v.log.Debugf("viewer ready: %d worlds, %d cams, %s mode", mgr.NumWorlds(), mgr.NumCams(), mgr.ExecMode())
	return v, nil
}

func (v *Viewer) State() State                          { return v.state }
func (v *Viewer) Paused() bool                          { return v.paused }
func (v *Viewer) Frames() int                           { return v.frame }
func (v *Viewer) Config() Config                        { return v.cfg }
func (v *Viewer) FlyCamera() *FlyCamera                 { return v.camera }
func (v *Viewer) Reconstructor() *overlay.Reconstructor { return v.recon }

// HandleInput installs input handlers used by frames whose Hooks leave them
// unset.
func (v *Viewer) HandleInput(world WorldInputFn, agent AgentInputFn) {
	v.worldInput = world
	v.agentInput = agent
}

// Selection returns the current world and view. View -1 is the free camera.
func (v *Viewer) Selection() (world, view int) { return v.world, v.view }

// Select sets the current world and view, wrapping the world into range and
// clamping the view to [-1, NumCams).
func (v *Viewer) Select(world, view int) {
	n := v.mgr.NumWorlds()
	v.world = ((world % n) + n) % n
	v.view = min(max(view, -1), v.mgr.NumCams()-1)
}

// Loop runs frames until the window closes, ctx is cancelled or the step
// callback stops it.
func (v *Viewer) Loop(ctx context.Context, h Hooks) error {
	if v.state == Stopped {
		return ErrStopped
	}
	v.state = Running
	v.log.Debugf("viewer running")
	defer v.stop()

	period := time.Duration(0)
	if v.cfg.TickRate > 0 {
		period = time.Duration(float64(time.Second) / v.cfg.TickRate)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if v.window.ShouldClose() {
			return nil
		}

		start := v.clock.Now()
		if err := v.frameOnce(h); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		if elapsed := v.clock.Now().Sub(start); elapsed < period {
			v.clock.Sleep(period - elapsed)
		}
	}
}

// Frame runs exactly one frame without pacing, for drivers that own the
// cadence.
func (v *Viewer) Frame(h Hooks) error {
	switch v.state {
	case Stopped:
		return ErrStopped
	case Idle:
		v.state = Running
	}

	err := v.frameOnce(h)
	if err != nil {
		v.stop()
		if errors.Is(err, ErrStop) {
			return nil
		}
	}
	return err
}

func (v *Viewer) frameOnce(h Hooks) error {
	v.frame++

	in := v.window.PollInput()
	v.applyControls(in)

	worldInput, agentInput := h.WorldInput, h.AgentInput
	if worldInput == nil {
		worldInput = v.worldInput
	}
	if agentInput == nil {
		agentInput = v.agentInput
	}
	if worldInput != nil {
		worldInput(v.world, in)
	}
	if agentInput != nil {
		for agent := 0; agent < v.mgr.NumAgents(); agent++ {
			agentInput(v.world, agent, in)
		}
	}

	if !v.paused && h.Step != nil {
		if err := h.Step(); err != nil {
			if errors.Is(err, ErrStop) {
				return err
			}
			return &dynamo.FrameError{Frame: v.frame, Phase: dynamo.PhaseStep, Wrapped: err}
		}
	}

	v.window.BeginFrame()
	if err := v.renderer.Render(v.sceneView()); err != nil {
		v.window.EndFrame()
		return &dynamo.FrameError{Frame: v.frame, Phase: dynamo.PhaseRender, Wrapped: err}
	}
	if err := v.recon.Draw(v.canvas, v.world, v.view); err != nil {
		v.window.EndFrame()
		return &dynamo.FrameError{Frame: v.frame, Phase: dynamo.PhaseOverlay, Wrapped: err}
	}
	v.window.EndFrame()
	return nil
}

func (v *Viewer) sceneView() platform.SceneView {
	cam := v.camera.Camera(v.cfg.FovY)
	if v.view >= 0 {
		cam = v.mgr.CameraPose(v.world, v.view)
	}
	return platform.SceneView{
		Scene:  v.mgr,
		World:  v.world,
		View:   v.view,
		Camera: cam,
	}
}

func (v *Viewer) applyControls(in platform.Input) {
	if in.Pressed.Has(platform.KeySpace) {
		v.paused = !v.paused
		v.log.Infof("simulation paused=%t", v.paused)
	}

	switch {
	case in.Pressed.Has(platform.KeyPageDown):
		v.Select(v.world+1, v.view)
	case in.Pressed.Has(platform.KeyPageUp):
		v.Select(v.world-1, v.view)
	}

	cams := v.mgr.NumCams()
	switch {
	case in.Pressed.Has(platform.KeyEscape):
		v.view = -1
	case in.Pressed.Has(platform.KeyRight):
		v.view++
		if v.view >= cams {
			v.view = -1
		}
	case in.Pressed.Has(platform.KeyLeft):
		v.view--
		if v.view < -1 {
			v.view = cams - 1
		}
	}

	if v.view < 0 {
		v.camera.Update(in)
	}
}

func (v *Viewer) stop() {
	if v.state != Stopped {
		v.state = Stopped
		v.log.Debugf("viewer stopped after %d frames", v.frame)
	}
}

// Close releases the session. The viewer cannot be used afterwards.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.stop()
	v.sess.Release()
}
