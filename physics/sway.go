package physics

import "math"

// Sway is a sinusoidal side offset advanced by elapsed time
type Sway struct {
	Amplitude    float64
	AngularSpeed float64 // rad/s
	Phase        float64
}

// Advance moves the phase by dt seconds, wrapped to one period
func (s *Sway) Advance(dt float64) {
	if s.AngularSpeed == 0 {
		return
	}
	s.Phase = math.Mod(s.Phase+dt*s.AngularSpeed, 2*math.Pi)
}

// Offset returns Amplitude * sin(Phase)
func (s Sway) Offset() float64 {
	return math.Sin(s.Phase) * s.Amplitude
}

// Direction returns the normalized slope of Offset, in [-1, 1]
func (s Sway) Direction() float64 {
	return math.Cos(s.Phase) * math.Copysign(1, s.AngularSpeed)
}
