package engine

import "time"

// PauseReason identifies who is holding the game clock
// The clock stays frozen while any reason is held
type PauseReason uint8

const (
	PauseUser   PauseReason = 1 << iota // Explicit pause from the player or host
	PauseRevive                         // Revive offer pending after the last life
)

// Clock tracks two timelines advanced from the same real delta:
//   - Game time: scaled by TimeScale, frozen while any pause reason is held
//   - Real time: always advances, drives countdowns and UI sequences
//
// Owned by the tick goroutine; not safe for concurrent use
type Clock struct {
	timeScale float64
	held      PauseReason

	gameElapsed   time.Duration
	realElapsed   time.Duration
	pausedElapsed time.Duration // Real time spent with the game clock frozen
}

// NewClock creates a clock at time scale 1
func NewClock() *Clock {
	return &Clock{timeScale: 1}
}

// Advance moves both timelines forward by realDt and returns the game delta
func (c *Clock) Advance(realDt time.Duration) time.Duration {
	if realDt <= 0 {
		return 0
	}
	c.realElapsed += realDt

	scale := c.EffectiveScale()
	if scale == 0 {
		c.pausedElapsed += realDt
		return 0
	}

	gameDt := time.Duration(float64(realDt) * scale)
	c.gameElapsed += gameDt
	return gameDt
}

// Pause holds the game clock for reason
func (c *Clock) Pause(reason PauseReason) {
	c.held |= reason
}

// Resume releases reason; game time restarts only when no reason is held
func (c *Clock) Resume(reason PauseReason) {
	c.held &^= reason
}

// IsPaused returns true while any pause reason is held
func (c *Clock) IsPaused() bool {
	return c.held != 0
}

// IsHeld reports whether a specific reason is held
func (c *Clock) IsHeld(reason PauseReason) bool {
	return c.held&reason != 0
}

// SetTimeScale sets the game time multiplier, negative values clamp to 0
func (c *Clock) SetTimeScale(scale float64) {
	c.timeScale = max(scale, 0)
}

// TimeScale returns the configured multiplier ignoring pause
func (c *Clock) TimeScale() float64 {
	return c.timeScale
}

// EffectiveScale returns the multiplier applied on the next Advance
func (c *Clock) EffectiveScale() float64 {
	if c.held != 0 {
		return 0
	}
	return c.timeScale
}

// GameTime returns elapsed scaled game time
func (c *Clock) GameTime() time.Duration {
	return c.gameElapsed
}

// RealTime returns elapsed real time
func (c *Clock) RealTime() time.Duration {
	return c.realElapsed
}

// PausedTime returns cumulative real time spent with the game clock frozen
func (c *Clock) PausedTime() time.Duration {
	return c.pausedElapsed
}

// Reset returns the clock to its initial state
func (c *Clock) Reset() {
	*c = Clock{timeScale: 1}
}
