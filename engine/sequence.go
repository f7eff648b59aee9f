package engine

import "time"

// Token identifies one run of a Sequence
// Cancel and Start invalidate previously issued tokens
type Token uint64

// Sequence is a resumable staged wait advanced by an elapsed-time delta
// It replaces a suspended coroutine: callers poll Advance each tick and react to the returned steps
//
// One Sequence models one logical slot (e.g. a player's invincibility window);
// starting it again replaces the in-flight run
type Sequence struct {
	duration time.Duration
	step     time.Duration

	elapsed   time.Duration
	stepsDone int
	active    bool
	token     Token
}

// Start begins a new run lasting duration, optionally reporting a step every step interval
// Returns the token of the new run
func (s *Sequence) Start(duration, step time.Duration) Token {
	s.token++
	s.duration = duration
	s.step = step
	s.elapsed = 0
	s.stepsDone = 0
	s.active = true
	return s.token
}

// Cancel stops the in-flight run and invalidates its token
func (s *Sequence) Cancel() {
	if s.active {
		s.token++
	}
	s.active = false
}

// Advance moves the run forward by dt
// Returns the number of step boundaries crossed and whether the run finished in this call
func (s *Sequence) Advance(dt time.Duration) (steps int, done bool) {
	if !s.active || dt < 0 {
		return 0, false
	}

	s.elapsed += dt
	if s.elapsed > s.duration {
		s.elapsed = s.duration
	}

	if s.step > 0 {
		reached := int(s.elapsed / s.step)
		steps = reached - s.stepsDone
		s.stepsDone = reached
	}

	if s.elapsed >= s.duration {
		s.active = false
		return steps, true
	}
	return steps, false
}

// Active returns true while a run is in flight
func (s *Sequence) Active() bool {
	return s.active
}

// Token returns the token of the current or most recent run
func (s *Sequence) Token() Token {
	return s.token
}

// IsCurrent reports whether tok still refers to the in-flight run
func (s *Sequence) IsCurrent(tok Token) bool {
	return s.active && tok == s.token
}

// Elapsed returns time spent in the current run
func (s *Sequence) Elapsed() time.Duration {
	return s.elapsed
}

// Remaining returns time left in the current run, 0 when idle
func (s *Sequence) Remaining() time.Duration {
	if !s.active {
		return 0
	}
	return s.duration - s.elapsed
}

// StepsDone returns the number of step boundaries crossed in the current run
func (s *Sequence) StepsDone() int {
	return s.stepsDone
}

// Progress returns elapsed/duration in [0,1]
func (s *Sequence) Progress() float64 {
	if s.duration <= 0 {
		return 1
	}
	return float64(s.elapsed) / float64(s.duration)
}
