package control

import (
	"math"

	"github.com/san-kum/raycastview/internal/dynamo"
)

// Sweep is open loop: Amplitude * sin(2π Frequency t + Phase).
type Sweep struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

func NewSweep(amplitude, frequency, phase float64) *Sweep {
	return &Sweep{Amplitude: amplitude, Frequency: frequency, Phase: phase}
}

func (s *Sweep) Torque(_ dynamo.State, t float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t+s.Phase)
}

func (s *Sweep) Reset() {}
