package event

import (
	"sync"

	"github.com/lixenwraith/lane-runner/parameter"
)

// EventQueue is a bounded FIFO ring between emitters and the dispatching goroutine
// A full ring drops its oldest pending event so a stalled consumer never blocks the tick
type EventQueue struct {
	mu      sync.Mutex
	ring    []GameEvent
	head    int // Oldest pending slot
	size    int // Pending count
	overrun uint64

	drainMu sync.Mutex  // Serializes Drain so batches reach handlers in order
	scratch []GameEvent // Guarded by drainMu
}

// NewEventQueue creates a queue with the default capacity
func NewEventQueue() *EventQueue {
	return NewEventQueueSize(parameter.EventQueueSize)
}

// NewEventQueueSize creates a queue holding at most capacity pending events
func NewEventQueueSize(capacity int) *EventQueue {
	capacity = max(capacity, 1)
	return &EventQueue{ring: make([]GameEvent, capacity)}
}

// Push appends ev, overwriting the oldest pending event when full
func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	n := len(eq.ring)
	if eq.size == n {
		eq.ring[eq.head] = ev
		eq.head = (eq.head + 1) % n
		eq.overrun++
		return
	}
	eq.ring[(eq.head+eq.size)%n] = ev
	eq.size++
}

// take moves pending events into dst under the lock
func (eq *EventQueue) take(dst []GameEvent) []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	n := len(eq.ring)
	for i := 0; i < eq.size; i++ {
		idx := (eq.head + i) % n
		dst = append(dst, eq.ring[idx])
		eq.ring[idx] = GameEvent{} // Release payload
	}
	eq.head, eq.size = 0, 0
	return dst
}

// Consume returns all pending events in FIFO order, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	out := eq.take(nil)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Drain hands pending events to fn in FIFO order outside the ring lock
// Events pushed by fn are left for the next call; fn must not call Drain
func (eq *EventQueue) Drain(fn func(GameEvent)) int {
	eq.drainMu.Lock()
	defer eq.drainMu.Unlock()

	batch := eq.take(eq.scratch[:0])
	for _, ev := range batch {
		fn(ev)
	}
	clear(batch)
	eq.scratch = batch
	return len(batch)
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.size
}

// Overruns returns how many pending events were dropped
func (eq *EventQueue) Overruns() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.overrun
}
