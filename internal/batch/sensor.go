package batch

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/platform"
)

var (
	lightDir   = mgl32.Vec3{0.4, -0.5, 0.8}.Normalize()
	skyTop     = mgl32.Vec3{90, 140, 210}
	skyHorizon = mgl32.Vec3{200, 220, 240}
	groundA    = mgl32.Vec3{110, 110, 110}
	groundB    = mgl32.Vec3{150, 150, 150}
)

// sense renders every (world, camera) image and publishes the result.
func (m *Manager) sense() error {
	out := m.buf.Host()
	if out == nil {
		out = m.staging
	}

	numCams := m.layout.NumCams
	dynamo.ParallelFor(m.layout.NumImages(), 1, func(start, end int) {
		for img := start; img < end; img++ {
			w, c := img/numCams, img%numCams
			off := m.layout.Offset(img)
			renderImage(out[off:off+m.layout.BytesPerImage()], m.layout.Resolution, m.worlds[w].cams[c], m.Bodies(w, nil))
		}
	})

	if m.staging != nil {
		return m.buf.Device().Upload(m.staging, 0)
	}
	return nil
}

// renderImage writes res*res RGB pixels. Pixel (i, j), with i the column
// and j the row, lands at 3*(j+i*res).
func renderImage(dst []byte, res int, cam platform.Camera, bodies []platform.Body) {
	fwd, right, up := cam.Forward(), cam.Right(), cam.Up()
	half := float32(math.Tan(float64(mgl32.DegToRad(cam.FovY)) / 2))

	for i := 0; i < res; i++ {
		sx := (2*(float32(i)+0.5)/float32(res) - 1) * half
		for j := 0; j < res; j++ {
			sy := (1 - 2*(float32(j)+0.5)/float32(res)) * half
			dir := fwd.Add(right.Mul(sx)).Add(up.Mul(sy)).Normalize()

			rgb := trace(cam.Position, dir, bodies)
			p := 3 * (j + i*res)
			dst[p] = clampByte(rgb[0])
			dst[p+1] = clampByte(rgb[1])
			dst[p+2] = clampByte(rgb[2])
		}
	}
}

func trace(origin, dir mgl32.Vec3, bodies []platform.Body) mgl32.Vec3 {
	best := float32(math.MaxFloat32)
	hit := -1
	for k, b := range bodies {
		if t, ok := hitSphere(origin, dir, b.Center, b.Radius); ok && t < best {
			best, hit = t, k
		}
	}

	groundT := float32(-1)
	if dir.Z() < 0 {
		groundT = -origin.Z() / dir.Z()
	}

	switch {
	case hit >= 0 && (groundT < 0 || best < groundT):
		b := bodies[hit]
		p := origin.Add(dir.Mul(best))
		n := p.Sub(b.Center).Normalize()
		shade := 0.25 + 0.75*float32(math.Max(0, float64(n.Dot(lightDir))))
		base := mgl32.Vec3{float32(b.Color.R), float32(b.Color.G), float32(b.Color.B)}
		return base.Mul(shade)
	case groundT > 0:
		p := origin.Add(dir.Mul(groundT))
		base := groundA
		if (int(math.Floor(float64(p.X())))+int(math.Floor(float64(p.Y()))))&1 == 0 {
			base = groundB
		}
		if shadowed(p, bodies) {
			base = base.Mul(0.55)
		}
		return base
	default:
		t := dir.Z()
		if t < 0 {
			t = 0
		}
		return skyHorizon.Mul(1 - t).Add(skyTop.Mul(t))
	}
}

func shadowed(p mgl32.Vec3, bodies []platform.Body) bool {
	for _, b := range bodies {
		if _, ok := hitSphere(p, lightDir, b.Center, b.Radius); ok {
			return true
		}
	}
	return false
}

// hitSphere returns the nearest positive ray parameter for a unit-length
// dir.
func hitSphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	if t := -b - sq; t > 1e-4 {
		return t, true
	}
	if t := -b + sq; t > 1e-4 {
		return t, true
	}
	return 0, false
}

func clampByte(v float32) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}
