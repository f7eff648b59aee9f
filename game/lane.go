package game

import (
	"math"
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/physics"
)

// Point is a screen-space position reported by a pointer or touch frontend
type Point struct {
	X, Y float64
}

// DetectSwipe classifies a pointer gesture
// Returns -1 for left, +1 for right, 0 when the gesture is too short or mostly vertical
func DetectSwipe(start, end Point, threshold float64) int {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if math.Abs(dx) <= threshold || math.Abs(dx) <= math.Abs(dy) {
		return 0
	}
	if dx > 0 {
		return 1
	}
	return -1
}

// HorizontalMover owns the player's X offset
type HorizontalMover interface {
	// Shift requests a lane change by dir (-1 or +1); ignored by movers without lanes
	Shift(dir int)
	// Update advances the offset by dt of game time
	Update(dt time.Duration)
	// Snap places the offset on the current target immediately
	Snap()
	Reset()

	Lane() int
	Offset() float64
	Target() float64
	Tilt() float64
}

// NewMover returns the mover selected by the movement mode
func NewMover(cfg config.MovementConfig) HorizontalMover {
	if cfg.Mode == config.MovementOscillate {
		return NewOscillateMover(cfg.Amplitude, cfg.AngularSpeed)
	}
	return NewLaneMover(cfg.LaneWidth, cfg.SmoothTime)
}

// LaneMover snaps the player between three discrete lanes with critically damped smoothing
type LaneMover struct {
	lane     int
	width    float64
	profile  physics.DampProfile
	current  float64
	velocity float64
}

func NewLaneMover(width float64, smooth time.Duration) *LaneMover {
	return &LaneMover{
		width: width,
		profile: physics.DampProfile{
			SmoothTime: smooth.Seconds(),
			DeadZone:   parameter.LaneSettleEpsilon,
		},
	}
}

// Shift clamps into [LaneMin, LaneMax]; a shift during an in-flight change retargets immediately
func (m *LaneMover) Shift(dir int) {
	m.lane = min(max(m.lane+dir, parameter.LaneMin), parameter.LaneMax)
}

func (m *LaneMover) Update(dt time.Duration) {
	m.current, m.velocity = physics.SmoothDamp(m.current, m.Target(), m.velocity, &m.profile, dt.Seconds())
}

func (m *LaneMover) Snap() {
	m.current = m.Target()
	m.velocity = 0
}

func (m *LaneMover) Reset() {
	m.lane = 0
	m.current = 0
	m.velocity = 0
}

func (m *LaneMover) Lane() int         { return m.lane }
func (m *LaneMover) Offset() float64   { return m.current }
func (m *LaneMover) Target() float64   { return float64(m.lane) * m.width }
func (m *LaneMover) Velocity() float64 { return m.velocity }

// Tilt returns a visual lean in degrees toward the target lane, positive to the right
func (m *LaneMover) Tilt() float64 {
	remaining := m.Target() - m.current
	if math.Abs(remaining) < parameter.TiltDeadzone {
		return 0
	}
	ratio := min(math.Abs(remaining)/m.width, 1)
	return math.Copysign(parameter.MaxTiltDegrees*ratio, remaining)
}

// OscillateMover sweeps the player across the road with cos(angle), ignoring lane input
// The sweep is a sway started a quarter period in, so offset = cos(angle) * amplitude
type OscillateMover struct {
	sway physics.Sway
}

func NewOscillateMover(amplitude, angularSpeed float64) *OscillateMover {
	m := &OscillateMover{sway: physics.Sway{Amplitude: amplitude, AngularSpeed: angularSpeed}}
	m.Reset()
	return m
}

func (m *OscillateMover) Shift(int) {}

func (m *OscillateMover) Update(dt time.Duration) {
	m.sway.Advance(dt.Seconds())
}

func (m *OscillateMover) Snap()  {}
func (m *OscillateMover) Reset() { m.sway.Phase = math.Pi / 2 }

func (m *OscillateMover) Lane() int       { return 0 }
func (m *OscillateMover) Offset() float64 { return m.sway.Offset() }
func (m *OscillateMover) Target() float64 { return m.Offset() }

// Tilt follows the sweep direction
func (m *OscillateMover) Tilt() float64 {
	return m.sway.Direction() * parameter.MaxTiltDegrees
}
