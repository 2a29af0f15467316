package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/raycastview/internal/dynamo"
)

// Pendulum is a damped rigid pendulum swinging in the XZ plane of a Z-up
// world. State is [theta, omega]; theta is measured from straight down.
// Control is a single torque.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) StateDim() int   { return 2 }
func (p *Pendulum) ControlDim() int { return 1 }

func (p *Pendulum) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	theta, omega := x[0], x[1]

	torque := 0.0
	if len(u) > 0 {
		torque = u[0]
	}
	inertia := p.Mass * p.Length * p.Length
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta) + torque) / inertia

	return dynamo.State{omega, alpha}
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

// BobPosition returns the world-space bob centre for a pendulum hanging
// from anchor.
func (p *Pendulum) BobPosition(anchor mgl32.Vec3, x dynamo.State) mgl32.Vec3 {
	s, c := math.Sincos(x[0])
	return anchor.Add(mgl32.Vec3{
		float32(p.Length * s),
		0,
		float32(-p.Length * c),
	})
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
