package control

import "github.com/san-kum/raycastview/internal/dynamo"

// PID drives theta toward Target. The derivative term uses omega directly
// instead of differencing the error.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64

	integral float64
	prevT    float64
	started  bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, Target: target}
}

func (p *PID) Torque(x dynamo.State, t float64) float64 {
	err := wrapAngle(p.Target - x[0])

	if p.started {
		if dt := t - p.prevT; dt > 0 {
			p.integral += err * dt
		}
	}
	p.prevT = t
	p.started = true

	return p.Kp*err + p.Ki*p.integral - p.Kd*x[1]
}

// Reset clears the integral term.
func (p *PID) Reset() {
	p.integral = 0
	p.started = false
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	}
}
