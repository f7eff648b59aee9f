package game

import (
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/engine"
	"github.com/lixenwraith/lane-runner/engine/fsm"
	"github.com/lixenwraith/lane-runner/event"
	"github.com/lixenwraith/lane-runner/parameter"
)

// Life machine states
const (
	StateLifeRoot fsm.StateID = iota + 1
	StatePlaying
	StateSeamlessRespawn
	StateAwaitingRevive
	StateGameOver
)

// LifeHooks are the session side effects driven by the life machine
type LifeHooks interface {
	// Respawn places the player back on the road with a fresh invincibility window
	Respawn()
	// Freeze holds or releases the game clock for the revive offer
	Freeze(frozen bool)
	// Finish ends the run
	Finish()
	Emit(et event.EventType, payload any)
}

// LifeMachine counts lives and sequences death, seamless respawn, revive offer and game over
// Respawn delay runs on game time, the revive countdown on real time
type LifeMachine struct {
	cfg   config.LifeConfig
	hooks LifeHooks
	fsm   *fsm.Machine[*LifeMachine]

	lives int

	respawn      engine.Sequence
	countdown    engine.Sequence
	countdownTok engine.Token
}

func NewLifeMachine(cfg config.LifeConfig, hooks LifeHooks) (*LifeMachine, error) {
	lm := &LifeMachine{
		cfg:   cfg,
		hooks: hooks,
		lives: cfg.InitialLives,
	}

	m := fsm.NewMachine[*LifeMachine]()
	m.AddState(StateLifeRoot, "Life", fsm.StateNone)
	m.AddState(StatePlaying, "Playing", StateLifeRoot)
	m.AddState(StateSeamlessRespawn, "SeamlessRespawn", StateLifeRoot)
	m.AddState(StateAwaitingRevive, "AwaitingRevive", StateLifeRoot)
	m.AddState(StateGameOver, "GameOver", StateLifeRoot)

	// Death routing, evaluated in order
	transitions := []struct {
		src fsm.StateID
		t   fsm.Transition[*LifeMachine]
	}{
		{StatePlaying, fsm.Transition[*LifeMachine]{
			TargetID: StateSeamlessRespawn,
			Event:    event.EventPlayerDied,
			Guard:    func(lm *LifeMachine) bool { return lm.lives > 0 },
		}},
		{StatePlaying, fsm.Transition[*LifeMachine]{
			TargetID: StateAwaitingRevive,
			Event:    event.EventPlayerDied,
			Guard:    func(lm *LifeMachine) bool { return lm.cfg.ReviveEnabled },
		}},
		{StatePlaying, fsm.Transition[*LifeMachine]{
			TargetID: StateGameOver,
			Event:    event.EventPlayerDied,
		}},
		{StateSeamlessRespawn, fsm.Transition[*LifeMachine]{
			TargetID: StatePlaying,
			Event:    event.EventRespawnDue,
			Action:   func(lm *LifeMachine) { lm.hooks.Respawn() },
		}},
		{StateAwaitingRevive, fsm.Transition[*LifeMachine]{
			TargetID: StatePlaying,
			Event:    event.EventReviveGranted,
			Action:   (*LifeMachine).applyRevive,
		}},
		{StateAwaitingRevive, fsm.Transition[*LifeMachine]{
			TargetID: StateGameOver,
			Event:    event.EventReviveTimeout,
		}},
	}
	for _, tr := range transitions {
		if err := m.AddTransition(tr.src, tr.t); err != nil {
			return nil, err
		}
	}

	m.OnEnter(StateSeamlessRespawn, func(lm *LifeMachine) {
		lm.respawn.Start(lm.cfg.RespawnDelay, 0)
	})
	m.OnUpdate(StateSeamlessRespawn, func(lm *LifeMachine, dt time.Duration) {
		if _, done := lm.respawn.Advance(dt); done {
			lm.fsm.HandleEvent(lm, event.EventRespawnDue)
		}
	})
	m.OnExit(StateSeamlessRespawn, func(lm *LifeMachine) {
		lm.respawn.Cancel()
	})

	m.OnEnter(StateAwaitingRevive, func(lm *LifeMachine) {
		lm.hooks.Freeze(true)
		lm.countdownTok = lm.countdown.Start(time.Duration(lm.cfg.ReviveCountdown)*time.Second, time.Second)
		lm.hooks.Emit(event.EventReviveOffered, &event.ReviveOfferedPayload{Seconds: lm.cfg.ReviveCountdown})
	})
	m.OnExit(StateAwaitingRevive, func(lm *LifeMachine) {
		lm.countdown.Cancel()
		lm.hooks.Freeze(false)
	})

	m.OnEnter(StateGameOver, func(lm *LifeMachine) {
		lm.hooks.Finish()
	})

	m.InitialStateID = StatePlaying
	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	lm.fsm = m
	if err := m.Init(lm); err != nil {
		return nil, err
	}
	return lm, nil
}

// Die records a lethal contact: decrements lives and routes to respawn, revive offer or game over
// Returns false outside Playing
func (lm *LifeMachine) Die(y float64) bool {
	if lm.fsm.State() != StatePlaying {
		return false
	}
	lm.lives = max(lm.lives-1, 0)
	lm.hooks.Emit(event.EventLifeChanged, &event.LifeChangedPayload{Lives: lm.lives})
	lm.hooks.Emit(event.EventPlayerDied, &event.PlayerDiedPayload{Y: y, Lives: lm.lives})
	return lm.fsm.HandleEvent(lm, event.EventPlayerDied)
}

// GrantRevive accepts a revive during the countdown, returns false when no offer is pending
func (lm *LifeMachine) GrantRevive() bool {
	return lm.fsm.HandleEvent(lm, event.EventReviveGranted)
}

func (lm *LifeMachine) applyRevive() {
	lm.lives = parameter.ReviveLives
	lm.hooks.Emit(event.EventLifeChanged, &event.LifeChangedPayload{Lives: lm.lives})
	lm.hooks.Respawn()
	lm.hooks.Emit(event.EventRevived, &event.LifeChangedPayload{Lives: lm.lives})
}

// Update advances game-time sequences
func (lm *LifeMachine) Update(gameDt time.Duration) {
	lm.fsm.Update(lm, gameDt)
}

// UpdateReal advances the revive countdown, which keeps running while the game clock is frozen
func (lm *LifeMachine) UpdateReal(realDt time.Duration) {
	if lm.fsm.State() != StateAwaitingRevive {
		return
	}

	steps, done := lm.countdown.Advance(realDt)
	for i := 0; i < steps; i++ {
		remaining := lm.cfg.ReviveCountdown - (lm.countdown.StepsDone() - steps + i + 1)
		lm.hooks.Emit(event.EventReviveCountdownTick, &event.CountdownTickPayload{Remaining: remaining})
	}

	// A grant between Start and completion replaces the token
	if done && lm.countdown.Token() == lm.countdownTok {
		lm.fsm.HandleEvent(lm, event.EventReviveTimeout)
	}
}

// Reset restores full lives and Playing without running exit actions
func (lm *LifeMachine) Reset() {
	lm.respawn.Cancel()
	lm.countdown.Cancel()
	lm.lives = lm.cfg.InitialLives
	if err := lm.fsm.Reset(lm); err != nil {
		panic(err)
	}
}

func (lm *LifeMachine) Lives() int              { return lm.lives }
func (lm *LifeMachine) State() fsm.StateID      { return lm.fsm.State() }
func (lm *LifeMachine) StateName() string       { return lm.fsm.StateName() }
func (lm *LifeMachine) IsGameOver() bool        { return lm.fsm.State() == StateGameOver }
func (lm *LifeMachine) CountdownRemaining() int { return lm.cfg.ReviveCountdown - lm.countdown.StepsDone() }
