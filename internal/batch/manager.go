package batch

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/control"
	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/integrators"
	"github.com/san-kum/raycastview/internal/physics"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/raycast"
)

const (
	anchorHeight  = 2.5
	agentSpacing  = 1.2
	bobRadius     = 0.3
	ringRadius    = 4.0
	cameraHeight  = 1.5
	sensorFovY    = 60
	maxTorque     = 20.0
	worldsPerTask = 4
)

var agentPalette = []color.RGBA{
	{230, 80, 60, 255},
	{70, 160, 230, 255},
	{240, 200, 60, 255},
	{120, 210, 110, 255},
	{200, 110, 220, 255},
}

type Config struct {
	NumWorlds  int
	NumCams    int
	NumAgents  int
	Resolution int
	ExecMode   raycast.ExecMode
	Dt         float64
	Seed       int64
	Integrator string
	// Policy names the control.Policy every agent runs on top of user
	// torque.
	Policy string
}

func DefaultConfig() Config {
	return Config{
		NumWorlds:  4,
		NumCams:    2,
		NumAgents:  2,
		Resolution: 64,
		ExecMode:   raycast.HostOnly,
		Dt:         1.0 / 30,
		Seed:       1,
		Integrator: "rk4",
		Policy:     "none",
	}
}

type agent struct {
	anchor  mgl32.Vec3
	state   dynamo.State
	torque  float64
	applied float64
	policy  control.Policy
	color   color.RGBA
}

type world struct {
	pend   *physics.Pendulum
	integ  dynamo.Integrator
	agents []agent
	rng    *rand.Rand
	cams   []platform.Camera
}

type Manager struct {
	cfg     Config
	layout  raycast.Layout
	worlds  []world
	buf     *raycast.Buffer
	staging []byte
	steps   int
	time    float64
}

// New builds the worlds and renders the initial sensor frame. dev is only
// used, and then required, in DeviceAccelerated mode.
func New(cfg Config, dev compute.Device) (*Manager, error) {
	if cfg.NumAgents < 1 {
		return nil, fmt.Errorf("need at least one agent per world, got %d", cfg.NumAgents)
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if _, err := control.New(cfg.Policy, 0); err != nil {
		return nil, err
	}

	layout := raycast.Layout{NumWorlds: cfg.NumWorlds, NumCams: cfg.NumCams, Resolution: cfg.Resolution}

	m := &Manager{cfg: cfg, layout: layout}

	var err error
	switch cfg.ExecMode {
	case raycast.DeviceAccelerated:
		if dev == nil {
			return nil, fmt.Errorf("device mode without a device: %w", dynamo.ErrDeviceUnavailable)
		}
		m.buf, err = raycast.NewDeviceBuffer(layout, dev)
		m.staging = make([]byte, layout.Len())
	default:
		m.buf, err = raycast.NewHostBuffer(layout)
	}
	if err != nil {
		return nil, err
	}

	m.worlds = make([]world, cfg.NumWorlds)
	for w := range m.worlds {
		integ, err := integrators.New(cfg.Integrator)
		if err != nil {
			m.buf.Free()
			return nil, err
		}
		m.worlds[w] = world{
			pend:   physics.NewPendulum(),
			integ:  integ,
			agents: make([]agent, cfg.NumAgents),
			rng:    rand.New(rand.NewSource(cfg.Seed + int64(w))),
			cams:   ringCameras(cfg.NumCams),
		}
		m.Reset(w)
	}

	if err := m.sense(); err != nil {
		m.buf.Free()
		return nil, err
	}
	return m, nil
}

func (m *Manager) NumWorlds() int                 { return m.cfg.NumWorlds }
func (m *Manager) NumCams() int                   { return m.cfg.NumCams }
func (m *Manager) NumAgents() int                 { return m.cfg.NumAgents }
func (m *Manager) ExecMode() raycast.ExecMode     { return m.cfg.ExecMode }
func (m *Manager) RaycastBuffer() *raycast.Buffer { return m.buf }
func (m *Manager) Steps() int                     { return m.steps }
func (m *Manager) Time() float64                  { return m.time }

// Reset starts a new episode in world w: pendulum length and starting
// angles are redrawn from the world's generator.
func (m *Manager) Reset(w int) {
	wd := &m.worlds[w]
	wd.pend.Length = 1.2 + 0.4*wd.rng.Float64()

	n := len(wd.agents)
	for a := range wd.agents {
		x := (float32(a) - float32(n-1)/2) * agentSpacing
		policy, _ := control.New(m.cfg.Policy, wd.rng.Float64()*2*math.Pi)
		wd.agents[a] = agent{
			anchor: mgl32.Vec3{x, 0, anchorHeight},
			state:  dynamo.State{(wd.rng.Float64()*2 - 1) * math.Pi / 2, 0},
			policy: policy,
			color:  agentPalette[a%len(agentPalette)],
		}
	}
}

// ApplyTorque sets the user torque held on an agent's pendulum until
// changed.
func (m *Manager) ApplyTorque(w, a int, torque float64) {
	m.worlds[w].agents[a].torque = clampTorque(torque)
}

// AppliedTorques reports the total torque each agent of world w received in
// the last step.
func (m *Manager) AppliedTorques(w int) []float64 {
	out := make([]float64, len(m.worlds[w].agents))
	for a, ag := range m.worlds[w].agents {
		out[a] = ag.applied
	}
	return out
}

func clampTorque(u float64) float64 {
	return math.Max(-maxTorque, math.Min(maxTorque, u))
}

func (m *Manager) Energy(w int) float64 {
	wd := &m.worlds[w]
	total := 0.0
	for _, ag := range wd.agents {
		total += wd.pend.Energy(ag.state)
	}
	return total
}

// Step advances every world by one tick and refreshes the raycast output.
func (m *Manager) Step() error {
	dt := m.cfg.Dt
	t := m.time
	dynamo.ParallelFor(len(m.worlds), worldsPerTask, func(start, end int) {
		u := dynamo.Control{0}
		for w := start; w < end; w++ {
			wd := &m.worlds[w]
			for a := range wd.agents {
				ag := &wd.agents[a]
				ag.applied = clampTorque(ag.torque + ag.policy.Torque(ag.state, t))
				u[0] = ag.applied
				wd.integ.StepInto(ag.state, wd.pend, ag.state, u, t, dt)
			}
		}
	})

	m.steps++
	m.time += dt

	for w := range m.worlds {
		for _, ag := range m.worlds[w].agents {
			if !ag.state.IsValid() {
				return &dynamo.FrameError{Frame: m.steps, Phase: dynamo.PhaseStep,
					Wrapped: fmt.Errorf("world %d: non-finite pendulum state", w)}
			}
		}
	}

	return m.sense()
}

// AgentStates copies the [theta, omega] state of every agent in world w.
func (m *Manager) AgentStates(w int) [][]float64 {
	out := make([][]float64, 0, len(m.worlds[w].agents))
	for _, ag := range m.worlds[w].agents {
		out = append(out, ag.state.Clone())
	}
	return out
}

func (m *Manager) Bodies(w int, dst []platform.Body) []platform.Body {
	wd := &m.worlds[w]
	for _, ag := range wd.agents {
		dst = append(dst, platform.Body{
			Center:   wd.pend.BobPosition(ag.anchor, ag.state),
			Radius:   bobRadius,
			Color:    ag.color,
			Anchor:   ag.anchor,
			Tethered: true,
		})
	}
	return dst
}

func (m *Manager) CameraPose(w, cam int) platform.Camera {
	return m.worlds[w].cams[cam]
}

func (m *Manager) Close() error {
	return m.buf.Free()
}

// ringCameras spaces n cameras evenly on a circle around the pendulum row,
// camera 0 on the -Y side, all aimed at the row's centre.
func ringCameras(n int) []platform.Camera {
	target := mgl32.Vec3{0, 0, 1}
	cams := make([]platform.Camera, n)
	for c := range cams {
		angle := 2*math.Pi*float64(c)/float64(n) - math.Pi/2
		s, co := math.Sincos(angle)
		pos := mgl32.Vec3{float32(ringRadius * co), float32(ringRadius * s), cameraHeight}
		cams[c] = platform.Camera{
			Position: pos,
			Rotation: lookRotation(pos, target),
			FovY:     sensorFovY,
		}
	}
	return cams
}

// lookRotation turns +Y toward target, keeping the camera's right vector
// horizontal.
func lookRotation(from, to mgl32.Vec3) mgl32.Quat {
	d := to.Sub(from)
	yaw := float32(math.Atan2(float64(-d.X()), float64(d.Y())))
	pitch := float32(math.Atan2(float64(d.Z()), math.Hypot(float64(d.X()), float64(d.Y()))))
	return mgl32.QuatRotate(yaw, mgl32.Vec3{0, 0, 1}).Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
}
