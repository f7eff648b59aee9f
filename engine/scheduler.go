package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-runner/core"
	"github.com/lixenwraith/lane-runner/parameter"
)

// Tickable is advanced by the scheduler with the real time elapsed since the previous tick
type Tickable interface {
	Tick(realDt time.Duration)
}

// Scheduler runs the simulation on a fixed tick from a single goroutine
// Inputs from other goroutines are posted as closures and drained at the start of each tick,
// so the simulation keeps a single writer
type Scheduler struct {
	target   Tickable
	provider TimeProvider
	interval time.Duration

	inputs  chan func()
	onFrame func()

	lastTick time.Time

	tickCount atomic.Uint64
	dropped   atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler ticking target every interval using provider as the real clock
func NewScheduler(target Tickable, provider TimeProvider, interval time.Duration) *Scheduler {
	return &Scheduler{
		target:   target,
		provider: provider,
		interval: interval,
		inputs:   make(chan func(), parameter.InputQueueSize),
		lastTick: provider.Now(),
		stopChan: make(chan struct{}),
	}
}

// OnFrame sets a callback run after every tick on the scheduler goroutine, must be called before Start()
func (s *Scheduler) OnFrame(fn func()) {
	s.onFrame = fn
}

// Post enqueues fn to run on the scheduler goroutine before the next tick
// Returns false when the queue is full and fn was dropped
func (s *Scheduler) Post(fn func()) bool {
	select {
	case s.inputs <- fn:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step drains pending inputs and performs one tick
// Called by the loop; exported for deterministic tests driving a MockTimeProvider
func (s *Scheduler) Step() {
	s.drainInputs()

	now := s.provider.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now
	if dt < 0 {
		dt = 0
	}
	// A stall (suspend, debugger) must not teleport the simulation
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}

	s.target.Tick(dt)
	s.tickCount.Add(1)

	if s.onFrame != nil {
		s.onFrame()
	}
}

func (s *Scheduler) drainInputs() {
	for {
		select {
		case fn := <-s.inputs:
			fn()
		default:
			return
		}
	}
}

// TickCount returns the number of completed ticks
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount.Load()
}

// DroppedInputs returns the number of inputs rejected because the queue was full
func (s *Scheduler) DroppedInputs() uint64 {
	return s.dropped.Load()
}
