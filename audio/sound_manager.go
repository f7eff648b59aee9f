package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lane-runner/event"
	"github.com/lixenwraith/lane-runner/parameter"
)

// Speaker entry points, swapped in tests that run without a device
var (
	speakerInit  = speaker.Init
	speakerPlay  = speaker.Play
	speakerClose = speaker.Close
)

// SoundManager owns the mixer graph: one-shot cues and the engine drone feed a master volume
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	initialized bool
	muted       bool

	mixer  *beep.Mixer
	master *effects.Volume
	hum    *HumGenerator
	humCtl *beep.Ctrl
}

// NewSoundManager creates an uninitialized manager; every method is a no-op until Initialize succeeds
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{cfg: cfg}
}

// Initialize opens the speaker and starts the drone
// A disabled config returns nil and leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if sm.cfg.SampleRate < parameter.AudioMinSampleRate {
		return fmt.Errorf("%w: %d", ErrBadSampleRate, sm.cfg.SampleRate)
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speakerInit(rate, rate.N(sm.cfg.BufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.mixer = &beep.Mixer{}
	sm.hum = NewHumGenerator(rate)
	sm.humCtl = &beep.Ctrl{Streamer: sm.hum}
	sm.mixer.Add(sm.humCtl)

	sm.master = newVolume(sm.mixer, sm.cfg.MasterVolume)
	sm.master.Silent = sm.master.Silent || sm.muted

	speakerPlay(sm.master)
	sm.initialized = true
	log.Printf("audio: initialized at %d Hz, volume %.2f", sm.cfg.SampleRate, sm.cfg.MasterVolume)
	return nil
}

// Cleanup stops playback and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speakerClose()
	sm.initialized = false
}

// Play starts a one-shot cue, reporting whether it was queued
func (sm *SoundManager) Play(t SoundType) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	s := GetSoundEffect(t, sm.cfg)
	if s == nil {
		return false
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return true
}

// SetEngineSpeed retargets the drone; safe from any goroutine
func (sm *SoundManager) SetEngineSpeed(normalized float64) {
	sm.mu.Lock()
	hum := sm.hum
	sm.mu.Unlock()
	if hum != nil {
		hum.SetSpeed(normalized)
	}
}

// PauseEngine silences or resumes the drone without touching one-shot cues
func (sm *SoundManager) PauseEngine(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.humCtl.Paused = paused
	speaker.Unlock()
}

// EnginePaused reports the drone state; true before Initialize
func (sm *SoundManager) EnginePaused() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return sm.humCtl.Paused
}

// SetMuted gates the master output; the preference survives re-initialization
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.master.Silent = muted || sm.cfg.MasterVolume <= 0
	speaker.Unlock()
}

// Muted reports the mute preference
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// ActiveStreams counts mixer inputs including the drone
func (sm *SoundManager) ActiveStreams() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}

// HandleEvent maps run events onto cues and drone state
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventPlayerDied:
		sm.Play(SoundCrash)
	case event.EventItemCollected:
		sm.Play(SoundItem)
	case event.EventReviveCountdownTick:
		sm.Play(SoundTick)
	case event.EventPlayerRespawned:
		sm.Play(SoundRespawn)
	case event.EventReviveOffered:
		sm.PauseEngine(true)
	case event.EventRevived, event.EventRestart:
		sm.PauseEngine(false)
	case event.EventGameOver:
		sm.PauseEngine(true)
		sm.Play(SoundGameOver)
	case event.EventPauseChanged:
		if p, ok := ev.Payload.(*event.PausePayload); ok {
			sm.PauseEngine(p.Paused)
		}
	}
}

func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventPlayerDied,
		event.EventItemCollected,
		event.EventReviveCountdownTick,
		event.EventPlayerRespawned,
		event.EventReviveOffered,
		event.EventRevived,
		event.EventRestart,
		event.EventGameOver,
		event.EventPauseChanged,
	}
}
