package game

import (
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/physics"
)

// SpeedModel tracks forward speed
// Holding accelerates toward max, releasing decelerates toward base
// In progressive mode base grows with game time, capped at max
type SpeedModel struct {
	cfg     config.SpeedConfig
	base    float64
	current float64
	holding bool
}

func NewSpeedModel(cfg config.SpeedConfig) *SpeedModel {
	return &SpeedModel{
		cfg:     cfg,
		base:    cfg.Base,
		current: cfg.Base,
	}
}

func (s *SpeedModel) SetHold(hold bool) {
	s.holding = hold
}

func (s *SpeedModel) Update(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	if s.cfg.Mode == config.SpeedProgressive {
		s.base = min(s.base+s.cfg.IncreaseRate*sec, s.cfg.Max)
	}

	if s.holding {
		s.current = physics.MoveTowards(s.current, s.cfg.Max, s.cfg.Accel*sec)
	} else {
		s.current = physics.MoveTowards(s.current, s.base, s.cfg.Decel*sec)
	}
	// Base can move past current when it grows
	s.current = physics.Clamp(s.current, s.base, s.cfg.Max)
}

// ResetToBase drops the current speed to base, keeping progressive growth
func (s *SpeedModel) ResetToBase() {
	s.current = s.base
}

// Reset restores the run-start state
func (s *SpeedModel) Reset() {
	s.base = s.cfg.Base
	s.current = s.cfg.Base
	s.holding = false
}

func (s *SpeedModel) Current() float64 { return s.current }
func (s *SpeedModel) Base() float64    { return s.base }
func (s *SpeedModel) Max() float64     { return s.cfg.Max }
func (s *SpeedModel) Holding() bool    { return s.holding }

// Normalized returns current speed mapped onto [0,1] between the initial base and max
func (s *SpeedModel) Normalized() float64 {
	span := s.cfg.Max - s.cfg.Base
	if span <= 0 {
		return 0
	}
	return physics.Clamp((s.current-s.cfg.Base)/span, 0, 1)
}
