package input

import (
	"sync"
	"time"
)

// HoldTimer turns repeated key presses into a sustained hold
// Each Press extends the hold; release fires once the repeats stop for timeout
type HoldTimer struct {
	mu      sync.Mutex
	timeout time.Duration
	release func()
	timer   *time.Timer
	held    bool
	gen     uint64 // Invalidates callbacks of superseded timers
}

// NewHoldTimer creates a timer that calls release from its own goroutine
func NewHoldTimer(timeout time.Duration, release func()) *HoldTimer {
	return &HoldTimer{timeout: timeout, release: release}
}

// Press starts or extends the hold, returning true when the hold just began
func (h *HoldTimer) Press() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	gen := h.gen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.timeout, func() { h.expire(gen) })

	began := !h.held
	h.held = true
	return began
}

func (h *HoldTimer) expire(gen uint64) {
	h.mu.Lock()
	if gen != h.gen || !h.held {
		h.mu.Unlock()
		return
	}
	h.held = false
	h.mu.Unlock()

	h.release()
}

// Held reports whether a hold is active
func (h *HoldTimer) Held() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held
}

// Stop cancels a pending release without firing it
func (h *HoldTimer) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.gen++
	h.held = false
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}
