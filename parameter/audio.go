package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioMinSampleRate keeps every synthesized partial below Nyquist
	AudioMinSampleRate = 8000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MasterVolume is the default linear gain applied to every cue (0.0-1.0)
	MasterVolume = 0.6
)

// Crash Sound
const (
	CrashSoundDuration = 400 * time.Millisecond
	CrashSoundRumbleHz = 70.0
)

// Item Sound
const (
	ItemSoundDuration = 120 * time.Millisecond
	ItemSoundHz       = 880.0
)

// Countdown Tick Sound
const (
	TickSoundDuration = 60 * time.Millisecond
	TickSoundHz       = 440.0
)

// Engine Hum
const (
	// EngineIdleHz is the hum frequency at BaseSpeed; pitch scales with speed ratio
	EngineIdleHz = 55.0
	EngineMaxHz  = 140.0
	EngineGain   = 0.12
)

// Respawn Sound
const (
	RespawnSoundDuration = 250 * time.Millisecond
	RespawnSoundStartHz  = 330.0
	RespawnSoundEndHz    = 990.0
)

// Game Over Sound
const (
	GameOverNoteDuration = 180 * time.Millisecond
)

// Envelope Timing
const (
	SoundAttack = 5 * time.Millisecond
	// CrashDecayRate is the exponential decay constant per second
	CrashDecayRate = 9.0
)

// Engine Hum Glide
const (
	// EngineGlideTime is the time constant for pitch and gain chasing their targets
	EngineGlideTime = 150 * time.Millisecond
	EngineIdleGain  = 0.5 // Fraction of EngineGain at base speed
)
