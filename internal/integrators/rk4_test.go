package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/raycastview/internal/dynamo"
)

type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int   { return 2 }
func (o *oscillator) ControlDim() int { return 0 }

func integrate(integ dynamo.Integrator, steps int, dt float64) dynamo.State {
	x := dynamo.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		integ.StepInto(x, &oscillator{}, x, nil, float64(i)*dt, dt)
	}
	return x
}

func TestRK4Accuracy(t *testing.T) {
	dt, steps := 0.01, 100
	x := integrate(NewRK4(), steps, dt)

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSemiImplicitEulerBounded(t *testing.T) {
	x := integrate(NewSemiImplicitEuler(), 10000, 0.01)

	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if math.Abs(energy-0.5) > 0.01 {
		t.Errorf("energy drifted to %.4f", energy)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "rk4", "euler"} {
		if _, err := New(name); err != nil {
			t.Errorf("%q: unexpected error %v", name, err)
		}
	}
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
