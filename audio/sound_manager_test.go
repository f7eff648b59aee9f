package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/event"
)

// fakeSpeaker replaces the device entry points for the duration of a test
type fakeSpeaker struct {
	inits   int
	closes  int
	played  []beep.Streamer
	initErr error
}

func installFakeSpeaker(t *testing.T) *fakeSpeaker {
	t.Helper()
	f := &fakeSpeaker{}
	oldInit, oldPlay, oldClose := speakerInit, speakerPlay, speakerClose
	speakerInit = func(beep.SampleRate, int) error {
		f.inits++
		return f.initErr
	}
	speakerPlay = func(s ...beep.Streamer) { f.played = append(f.played, s...) }
	speakerClose = func() { f.closes++ }
	t.Cleanup(func() {
		speakerInit, speakerPlay, speakerClose = oldInit, oldPlay, oldClose
	})
	return f
}

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if sm.Play(SoundCrash) {
		t.Error("Play must report false before Initialize")
	}
	sm.SetEngineSpeed(0.5)
	sm.PauseEngine(true)
	sm.SetMuted(true)
	sm.HandleEvent(event.GameEvent{Type: event.EventGameOver})
	if sm.ActiveStreams() != 0 {
		t.Error("Expected no streams")
	}
	sm.Cleanup()
}

// TestSoundManagerInitialization runs against the real device when one exists
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil)

	// Speaker initialization may fail in CI/test environments without audio devices
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	sm.Cleanup()
}

func TestSoundManagerDoubleInitialization(t *testing.T) {
	f := installFakeSpeaker(t)
	sm := NewSoundManager(nil)

	if err := sm.Initialize(); err != nil {
		t.Fatalf("First initialization: %v", err)
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	if f.inits != 1 || len(f.played) != 1 {
		t.Errorf("Expected one device init and one master stream, got %d/%d", f.inits, len(f.played))
	}

	sm.Cleanup()
	sm.Cleanup()
	if f.closes != 1 {
		t.Errorf("Expected one close, got %d", f.closes)
	}
}

func TestSoundManagerInitFailure(t *testing.T) {
	f := installFakeSpeaker(t)
	f.initErr = errors.New("no device")
	sm := NewSoundManager(nil)

	if err := sm.Initialize(); err == nil {
		t.Fatal("Expected init error")
	}
	if sm.Play(SoundItem) {
		t.Error("Play after failed init must be a no-op")
	}
}

func TestSoundManagerDisabledConfig(t *testing.T) {
	f := installFakeSpeaker(t)
	sm := NewSoundManager(NewAudioConfig(config.AudioConfig{Enabled: false, Volume: 0.5}))

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Disabled audio must not error: %v", err)
	}
	if f.inits != 0 {
		t.Error("Disabled audio must not open the device")
	}
}

func TestSoundManagerBadSampleRate(t *testing.T) {
	installFakeSpeaker(t)
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 1000
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); !errors.Is(err, ErrBadSampleRate) {
		t.Errorf("Expected ErrBadSampleRate, got %v", err)
	}
}

func TestSoundManagerEventsQueueCues(t *testing.T) {
	installFakeSpeaker(t)
	sm := NewSoundManager(nil)
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer sm.Cleanup()

	base := sm.ActiveStreams()
	if base != 1 {
		t.Fatalf("Expected only the drone, got %d", base)
	}

	sm.HandleEvent(event.GameEvent{Type: event.EventPlayerDied})
	sm.HandleEvent(event.GameEvent{Type: event.EventItemCollected})
	sm.HandleEvent(event.GameEvent{Type: event.EventReviveCountdownTick})
	if got := sm.ActiveStreams(); got != base+3 {
		t.Errorf("Expected 3 queued cues, got %d", got-base)
	}
}

func TestSoundManagerEngineFollowsPause(t *testing.T) {
	installFakeSpeaker(t)
	sm := NewSoundManager(nil)
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer sm.Cleanup()

	if sm.EnginePaused() {
		t.Fatal("Drone should start running")
	}
	sm.HandleEvent(event.GameEvent{Type: event.EventPauseChanged, Payload: &event.PausePayload{Paused: true}})
	if !sm.EnginePaused() {
		t.Error("Expected drone paused with the game")
	}
	sm.HandleEvent(event.GameEvent{Type: event.EventPauseChanged, Payload: &event.PausePayload{Paused: false}})
	if sm.EnginePaused() {
		t.Error("Expected drone resumed")
	}

	sm.HandleEvent(event.GameEvent{Type: event.EventReviveOffered})
	if !sm.EnginePaused() {
		t.Error("Expected drone paused during revive offer")
	}
	sm.HandleEvent(event.GameEvent{Type: event.EventRevived})
	if sm.EnginePaused() {
		t.Error("Expected drone resumed after revive")
	}

	sm.HandleEvent(event.GameEvent{Type: event.EventGameOver})
	if !sm.EnginePaused() {
		t.Error("Expected drone stopped at game over")
	}
	sm.HandleEvent(event.GameEvent{Type: event.EventRestart})
	if sm.EnginePaused() {
		t.Error("Expected drone running after restart")
	}
}

func TestSoundManagerMuteSilencesOutput(t *testing.T) {
	f := installFakeSpeaker(t)
	sm := NewSoundManager(nil)
	sm.SetMuted(true)
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer sm.Cleanup()

	buf := make([][2]float64, 512)
	f.played[0].Stream(buf)
	for _, s := range buf {
		if s[0] != 0 || s[1] != 0 {
			t.Fatal("Muted output must be silent")
		}
	}

	sm.SetMuted(false)
	f.played[0].Stream(buf)
	var peak float64
	for _, s := range buf {
		peak = max(peak, abs(s[0]))
	}
	if peak == 0 {
		t.Error("Expected drone audible after unmute")
	}
	if sm.Muted() {
		t.Error("Muted() stale")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
