package control

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// Policy computes a torque from a [theta, omega] pendulum state.
type Policy interface {
	Torque(x dynamo.State, t float64) float64
	Reset()
}

// New returns the named policy. phase only affects Sweep, so agents sharing
// a policy need not move in lockstep.
func New(name string, phase float64) (Policy, error) {
	switch name {
	case "", "none":
		return None{}, nil
	case "pid":
		return NewPID(20, 10, 5, 0.5), nil
	case "lqr":
		return NewUprightLQR(), nil
	case "sweep":
		return NewSweep(4, 0.5, phase), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the policies New accepts.
func Names() []string {
	return []string{"none", "pid", "lqr", "sweep"}
}

type None struct{}

func (None) Torque(dynamo.State, float64) float64 { return 0 }
func (None) Reset()                                {}

// wrapAngle maps a to [-π, π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
