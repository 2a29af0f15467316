package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/batch"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/control"
	"github.com/san-kum/raycastview/internal/integrators"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/raycast"
	"github.com/san-kum/raycastview/internal/viewer"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultTitle      = "raycastview"
	DefaultWorlds     = 4
	DefaultCams       = 2
	DefaultAgents     = 2
	DefaultResolution = 64
	DefaultDt         = 1.0 / 30
	DefaultPanelX     = 10
	DefaultPanelY     = 10
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Device  DeviceConfig  `yaml:"device"`
	Sim     SimConfig     `yaml:"sim"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Overlay OverlayConfig `yaml:"overlay"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type DeviceConfig struct {
	ID      int    `yaml:"id"`
	Backend string `yaml:"backend"`
}

type SimConfig struct {
	Worlds     int     `yaml:"worlds"`
	Cams       int     `yaml:"cams"`
	Agents     int     `yaml:"agents"`
	Resolution int     `yaml:"resolution"`
	ExecMode   string  `yaml:"exec_mode"`
	Dt         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"`
	Integrator string  `yaml:"integrator"`
	Policy     string  `yaml:"policy"`
}

type ViewerConfig struct {
	TickRate        float64    `yaml:"tick_rate"`
	CameraMoveSpeed float32    `yaml:"camera_move_speed"`
	CameraPosition  [3]float32 `yaml:"camera_position"`
	// CameraRotation is a quaternion as [w, x, y, z].
	CameraRotation [4]float32 `yaml:"camera_rotation"`
	FovY           float32    `yaml:"fov_y"`
}

type OverlayConfig struct {
	PixelScale     float32 `yaml:"pixel_scale"`
	VerticalOffset float32 `yaml:"vertical_offset"`
	PanelX         float32 `yaml:"panel_x"`
	PanelY         float32 `yaml:"panel_y"`
}

func DefaultConfig() *Config {
	opts := overlay.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		Device: DeviceConfig{
			Backend: string(compute.KindAuto),
		},
		Sim: SimConfig{
			Worlds:     DefaultWorlds,
			Cams:       DefaultCams,
			Agents:     DefaultAgents,
			Resolution: DefaultResolution,
			ExecMode:   raycast.HostOnly.String(),
			Dt:         DefaultDt,
			Seed:       1,
			Integrator: "rk4",
			Policy:     "none",
		},
		Viewer: ViewerConfig{
			TickRate:        viewer.DefaultTickRate,
			CameraMoveSpeed: viewer.DefaultCameraMoveSpeed,
			CameraPosition:  [3]float32{0, -3, 0},
			CameraRotation:  [4]float32{1, 0, 0, 0},
			FovY:            viewer.DefaultFovY,
		},
		Overlay: OverlayConfig{
			PixelScale:     opts.PixelScale,
			VerticalOffset: opts.VerticalOffset,
			PanelX:         DefaultPanelX,
			PanelY:         DefaultPanelY,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Device.ID < 0 {
		return fmt.Errorf("device id %d must not be negative", c.Device.ID)
	}
	switch compute.Kind(c.Device.Backend) {
	case compute.KindAuto, compute.KindHost, compute.KindOpenGL, compute.KindCUDA:
	default:
		return fmt.Errorf("unknown device backend %q", c.Device.Backend)
	}
	if _, err := raycast.ParseExecMode(c.Sim.ExecMode); err != nil {
		return err
	}
	layout := raycast.Layout{NumWorlds: c.Sim.Worlds, NumCams: c.Sim.Cams, Resolution: c.Sim.Resolution}
	if err := layout.Validate(); err != nil {
		return err
	}
	if c.Sim.Agents < 1 {
		return fmt.Errorf("agents %d must be at least 1", c.Sim.Agents)
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("dt %f must be positive", c.Sim.Dt)
	}
	if _, err := integrators.New(c.Sim.Integrator); err != nil {
		return err
	}
	if _, err := control.New(c.Sim.Policy, 0); err != nil {
		return err
	}
	if c.Viewer.TickRate <= 0 {
		return fmt.Errorf("tick rate %f must be positive", c.Viewer.TickRate)
	}
	if c.Overlay.PixelScale <= 0 {
		return fmt.Errorf("pixel scale %f must be positive", c.Overlay.PixelScale)
	}
	return nil
}

func (c *Config) DeviceKind() compute.Kind {
	return compute.Kind(c.Device.Backend)
}

func (c *Config) Batch() (batch.Config, error) {
	mode, err := raycast.ParseExecMode(c.Sim.ExecMode)
	if err != nil {
		return batch.Config{}, err
	}
	return batch.Config{
		NumWorlds:  c.Sim.Worlds,
		NumCams:    c.Sim.Cams,
		NumAgents:  c.Sim.Agents,
		Resolution: c.Sim.Resolution,
		ExecMode:   mode,
		Dt:         c.Sim.Dt,
		Seed:       c.Sim.Seed,
		Integrator: c.Sim.Integrator,
		Policy:     c.Sim.Policy,
	}, nil
}

func (c *Config) ViewerConfig() viewer.Config {
	vc := viewer.DefaultConfig()
	vc.TickRate = c.Viewer.TickRate
	vc.CameraMoveSpeed = c.Viewer.CameraMoveSpeed
	vc.CameraPosition = mgl32.Vec3(c.Viewer.CameraPosition)
	r := c.Viewer.CameraRotation
	vc.CameraRotation = mgl32.Quat{W: r[0], V: mgl32.Vec3{r[1], r[2], r[3]}}.Normalize()
	vc.FovY = c.Viewer.FovY
	vc.Overlay.PixelScale = c.Overlay.PixelScale
	vc.Overlay.VerticalOffset = c.Overlay.VerticalOffset
	return vc
}
