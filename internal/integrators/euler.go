package integrators

import (
	"fmt"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// SemiImplicitEuler treats the state as interleaved (position, velocity)
// pairs: velocities are updated first and the new velocity moves the
// position. Cheap and stable enough for large batches.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) {
	dx := dyn.Derive(x, u, t)
	for i := 0; i+1 < len(x); i += 2 {
		v := x[i+1] + dt*dx[i+1]
		dst[i+1] = v
		dst[i] = x[i] + dt*v
	}
}

// New returns the integrator registered under name.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "euler":
		return NewSemiImplicitEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
