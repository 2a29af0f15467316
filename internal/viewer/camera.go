package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/platform"
)

const (
	fastMultiplier = 4
	maxPitch       = 89 * math.Pi / 180
)

// FlyCamera is the free camera used when no agent view is selected. It moves
// in its own horizontal frame and climbs along world Z.
type FlyCamera struct {
	Position    mgl32.Vec3
	Speed       float32
	Sensitivity float32

	base       mgl32.Quat
	yaw, pitch float32
}

func NewFlyCamera(cfg Config) *FlyCamera {
	return &FlyCamera{
		Position:    cfg.CameraPosition,
		Speed:       cfg.CameraMoveSpeed,
		Sensitivity: cfg.LookSensitivity,
		base:        cfg.CameraRotation.Normalize(),
	}
}

func (c *FlyCamera) Rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.yaw, mgl32.Vec3{0, 0, 1})
	pitch := mgl32.QuatRotate(c.pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch).Mul(c.base).Normalize()
}

func (c *FlyCamera) Update(in platform.Input) {
	if in.Look {
		c.yaw -= in.MouseDelta.X() * c.Sensitivity
		c.pitch -= in.MouseDelta.Y() * c.Sensitivity
		c.pitch = mgl32.Clamp(c.pitch, -maxPitch, maxPitch)
	}

	rot := c.Rotation()
	forward := rot.Rotate(mgl32.Vec3{0, 1, 0})
	right := rot.Rotate(mgl32.Vec3{1, 0, 0})
	up := mgl32.Vec3{0, 0, 1}

	var move mgl32.Vec3
	axes := []struct {
		key platform.Key
		dir mgl32.Vec3
	}{
		{platform.KeyW, forward},
		{platform.KeyS, forward.Mul(-1)},
		{platform.KeyD, right},
		{platform.KeyA, right.Mul(-1)},
		{platform.KeyE, up},
		{platform.KeyQ, up.Mul(-1)},
	}
	for _, ax := range axes {
		if in.Down.Has(ax.key) {
			move = move.Add(ax.dir)
		}
	}
	if move.Len() == 0 {
		return
	}

	speed := c.Speed
	if in.Down.Has(platform.KeyShift) {
		speed *= fastMultiplier
	}
	c.Position = c.Position.Add(move.Normalize().Mul(speed * in.Dt))
}

func (c *FlyCamera) Camera(fovY float32) platform.Camera {
	return platform.Camera{
		Position: c.Position,
		Rotation: c.Rotation(),
		FovY:     fovY,
	}
}
