package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the simulation tick interval, one tick per rendered frame
	GameUpdateInterval = FrameUpdateInterval

	// MaxTickDelta clamps a single tick's real delta after a stall (debugger, suspend)
	MaxTickDelta = 250 * time.Millisecond

	// InputQueueSize is the buffered capacity of the scheduler input channel
	InputQueueSize = 256
)

// Event Queue
const (
	// EventQueueSize is the pending capacity of the session event ring
	EventQueueSize = 1024
)
