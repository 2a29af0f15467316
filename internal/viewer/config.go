package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/overlay"
)

const (
	DefaultTickRate        = 30
	DefaultCameraMoveSpeed = 5.0
	DefaultFovY            = 60.0
)

type Config struct {
	TickRate        float64
	CameraMoveSpeed float32
	CameraPosition  mgl32.Vec3
	CameraRotation  mgl32.Quat
	FovY            float32
	// LookSensitivity is radians per pixel of mouse movement.
	LookSensitivity float32
	Overlay         overlay.Options
}

func DefaultConfig() Config {
	return Config{
		TickRate:        DefaultTickRate,
		CameraMoveSpeed: DefaultCameraMoveSpeed,
		CameraPosition:  mgl32.Vec3{0, -3, 0},
		CameraRotation:  mgl32.Quat{W: 1, V: mgl32.Vec3{0, 0, 0}},
		FovY:            DefaultFovY,
		LookSensitivity: 0.003,
		Overlay:         overlay.DefaultOptions(),
	}
}
