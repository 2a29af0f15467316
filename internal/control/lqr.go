package control

import (
	"math"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// LQR is full state feedback u = -K (x - Target), with the angle error
// wrapped so Target may sit at π.
type LQR struct {
	K      [2]float64
	Target dynamo.State
}

var uprightGains = [2]float64{31.62, 10.0}

func NewLQR(k [2]float64, target dynamo.State) *LQR {
	return &LQR{K: k, Target: target}
}

// NewUprightLQR balances a unit pendulum standing on its pivot.
func NewUprightLQR() *LQR {
	return NewLQR(uprightGains, dynamo.State{math.Pi, 0})
}

func (l *LQR) Torque(x dynamo.State, t float64) float64 {
	return -l.K[0]*wrapAngle(x[0]-l.Target[0]) - l.K[1]*(x[1]-l.Target[1])
}

func (l *LQR) Reset() {}
