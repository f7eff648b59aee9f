package audio

import (
	"errors"
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/parameter"
)

// SoundType identifies a one-shot cue
type SoundType int

const (
	SoundCrash SoundType = iota
	SoundItem
	SoundTick
	SoundRespawn
	SoundGameOver
)

var soundNames = [...]string{"crash", "item", "tick", "respawn", "game-over"}

func (s SoundType) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return "unknown"
	}
	return soundNames[s]
}

// ErrBadSampleRate is returned when the configured rate cannot carry the synthesized tones
var ErrBadSampleRate = errors.New("audio: sample rate too low")

// AudioConfig holds the mixer settings for a session
type AudioConfig struct {
	Enabled        bool
	MasterVolume   float64
	SampleRate     int
	BufferDuration time.Duration
	EffectVolumes  map[SoundType]float64
}

// DefaultAudioConfig returns the settings built from parameter constants
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:        true,
		MasterVolume:   parameter.MasterVolume,
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		EffectVolumes: map[SoundType]float64{
			SoundCrash:    1.0,
			SoundItem:     0.6,
			SoundTick:     0.5,
			SoundRespawn:  0.5,
			SoundGameOver: 0.7,
		},
	}
}

// NewAudioConfig overlays the user-facing audio section on the defaults
func NewAudioConfig(c config.AudioConfig) *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.Enabled = c.Enabled
	cfg.MasterVolume = min(max(c.Volume, 0), 1)
	return cfg
}

func (c *AudioConfig) effectVolume(t SoundType) float64 {
	v, ok := c.EffectVolumes[t]
	if !ok {
		v = 1.0
	}
	return v
}
