package game

import (
	"testing"
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/event"
)

type fakeHooks struct {
	respawns int
	frozen   bool
	finished int
	events   []event.GameEvent
}

func (h *fakeHooks) Respawn()      { h.respawns++ }
func (h *fakeHooks) Freeze(f bool) { h.frozen = f }
func (h *fakeHooks) Finish()       { h.finished++ }
func (h *fakeHooks) Emit(et event.EventType, payload any) {
	h.events = append(h.events, event.GameEvent{Type: et, Payload: payload})
}

func (h *fakeHooks) countdown() []int {
	var out []int
	for _, ev := range h.events {
		if ev.Type == event.EventReviveCountdownTick {
			out = append(out, ev.Payload.(*event.CountdownTickPayload).Remaining)
		}
	}
	return out
}

func newTestLife(t *testing.T, mutate func(*config.LifeConfig)) (*LifeMachine, *fakeHooks) {
	t.Helper()
	cfg := config.Default().Life
	if mutate != nil {
		mutate(&cfg)
	}
	h := &fakeHooks{}
	lm, err := NewLifeMachine(cfg, h)
	if err != nil {
		t.Fatalf("NewLifeMachine failed: %v", err)
	}
	return lm, h
}

func TestLifeThreeLivesScenario(t *testing.T) {
	lm, h := newTestLife(t, nil)

	// Two seamless respawns
	for i := 0; i < 2; i++ {
		if !lm.Die(0) {
			t.Fatalf("Death %d not handled", i+1)
		}
		if lm.State() != StateSeamlessRespawn {
			t.Fatalf("Expected SeamlessRespawn after death %d, got %s", i+1, lm.StateName())
		}
		lm.Update(50 * time.Millisecond)
		if h.respawns != i {
			t.Fatal("Respawned before the delay elapsed")
		}
		lm.Update(50 * time.Millisecond)
		if lm.State() != StatePlaying || h.respawns != i+1 {
			t.Fatalf("Expected respawn %d after 100ms, state=%s", i+1, lm.StateName())
		}
	}

	// Last life
	lm.Die(0)
	if lm.State() != StateAwaitingRevive {
		t.Fatalf("Expected AwaitingRevive, got %s", lm.StateName())
	}
	if !h.frozen {
		t.Error("Game clock not frozen during the revive offer")
	}

	// Game time does not move the countdown
	lm.Update(10 * time.Second)
	if lm.State() != StateAwaitingRevive {
		t.Fatal("Countdown advanced on game time")
	}

	for i := 0; i < 5; i++ {
		lm.UpdateReal(time.Second)
	}
	if lm.State() != StateGameOver {
		t.Fatalf("Expected GameOver after timeout, got %s", lm.StateName())
	}
	if lm.Lives() != 0 {
		t.Errorf("Expected 0 lives, got %d", lm.Lives())
	}
	if h.finished != 1 {
		t.Errorf("Expected one finish, got %d", h.finished)
	}
	if h.frozen {
		t.Error("Freeze hold not released on leaving the revive offer")
	}

	want := []int{4, 3, 2, 1, 0}
	got := h.countdown()
	if len(got) != len(want) {
		t.Fatalf("Countdown ticks %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tick %d = %d, want %d", i, got[i], want[i])
		}
	}

	// Terminal
	if lm.Die(0) || lm.GrantRevive() {
		t.Error("GameOver accepted input")
	}
}

func TestLifeReviveGranted(t *testing.T) {
	lm, h := newTestLife(t, func(c *config.LifeConfig) { c.InitialLives = 1 })

	lm.Die(0)
	lm.UpdateReal(2500 * time.Millisecond)
	if lm.CountdownRemaining() != 3 {
		t.Errorf("Expected 3s remaining, got %d", lm.CountdownRemaining())
	}

	if !lm.GrantRevive() {
		t.Fatal("Revive not accepted during countdown")
	}
	if lm.State() != StatePlaying {
		t.Fatalf("Expected Playing after revive, got %s", lm.StateName())
	}
	if lm.Lives() != 1 || h.respawns != 1 {
		t.Errorf("Expected 1 life and a respawn, got lives=%d respawns=%d", lm.Lives(), h.respawns)
	}
	if h.frozen {
		t.Error("Clock still frozen after revive")
	}

	// The cancelled countdown must not time out later
	lm.UpdateReal(10 * time.Second)
	if lm.State() != StatePlaying {
		t.Errorf("Stale countdown fired: %s", lm.StateName())
	}

	revived := false
	for _, ev := range h.events {
		revived = revived || ev.Type == event.EventRevived
	}
	if !revived {
		t.Error("Expected revived event")
	}

	if lm.GrantRevive() {
		t.Error("Revive accepted with no pending offer")
	}
}

func TestLifeReviveDisabledEndsRun(t *testing.T) {
	lm, h := newTestLife(t, func(c *config.LifeConfig) {
		c.InitialLives = 1
		c.ReviveEnabled = false
	})
	lm.Die(0)
	if lm.State() != StateGameOver || h.finished != 1 {
		t.Errorf("Expected immediate GameOver, got %s", lm.StateName())
	}
	if h.frozen {
		t.Error("Clock frozen without a revive offer")
	}
}

func TestLifeDeathEvents(t *testing.T) {
	lm, h := newTestLife(t, nil)
	lm.Die(12.5)

	if len(h.events) < 2 {
		t.Fatalf("Expected life-changed and player-died, got %d events", len(h.events))
	}
	lc, ok := h.events[0].Payload.(*event.LifeChangedPayload)
	if !ok || h.events[0].Type != event.EventLifeChanged || lc.Lives != 2 {
		t.Errorf("Unexpected first event %v %+v", h.events[0].Type, h.events[0].Payload)
	}
	pd, ok := h.events[1].Payload.(*event.PlayerDiedPayload)
	if !ok || pd.Y != 12.5 || pd.Lives != 2 {
		t.Errorf("Unexpected player-died payload %+v", h.events[1].Payload)
	}
}

func TestLifeReset(t *testing.T) {
	lm, _ := newTestLife(t, func(c *config.LifeConfig) { c.InitialLives = 1 })
	lm.Die(0)
	lm.Reset()
	if lm.State() != StatePlaying || lm.Lives() != 1 {
		t.Errorf("Reset left state=%s lives=%d", lm.StateName(), lm.Lives())
	}
	// A fresh countdown must not be pending
	lm.UpdateReal(10 * time.Second)
	if lm.State() != StatePlaying {
		t.Error("Countdown survived reset")
	}
}
