package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/platform"
)

// Renderer draws one world. Scene coordinates are Z-up; raylib is Y-up, so
// (x, y, z) maps to (x, z, -y).
type Renderer struct {
	bodies []platform.Body
}

func toRL(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Z(), -v.Y())
}

func toRLCamera(c platform.Camera) rl.Camera3D {
	return rl.NewCamera3D(
		toRL(c.Position),
		toRL(c.Position.Add(c.Forward())),
		toRL(c.Up()),
		c.FovY,
		rl.CameraPerspective,
	)
}

func (r *Renderer) Render(v platform.SceneView) error {
	r.bodies = v.Scene.Bodies(v.World, r.bodies[:0])

	rl.BeginMode3D(toRLCamera(v.Camera))
	rl.DrawPlane(rl.NewVector3(0, -0.01, 0), rl.NewVector2(20, 20), ColGrid)
	rl.DrawGrid(20, 1)

	for _, b := range r.bodies {
		center := toRL(b.Center)
		if b.Tethered {
			anchor := toRL(b.Anchor)
			rl.DrawLine3D(anchor, center, ColAccent)
			rl.DrawSphere(anchor, 0.05, ColTextDim)
		}
		rl.DrawSphere(center, b.Radius, rl.NewColor(b.Color.R, b.Color.G, b.Color.B, b.Color.A))
	}
	rl.EndMode3D()

	label := "free camera"
	if v.View >= 0 {
		label = fmt.Sprintf("camera %d", v.View)
	}
	rl.DrawText(fmt.Sprintf("world %d  %s", v.World, label), 10, int32(rl.GetScreenHeight())-30, 20, ColText)
	return nil
}
