package game

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/engine"
	"github.com/lixenwraith/lane-runner/event"
	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/physics"
	"github.com/lixenwraith/lane-runner/prefs"
	"github.com/lixenwraith/lane-runner/status"
)

// PlayerState is the runner as seen by frontends
type PlayerState struct {
	LaneIndex      int
	TargetOffsetX  float64
	CurrentOffsetX float64
	PositionY      float64
	BaseSpeed      float64
	CurrentSpeed   float64
	IsDead         bool
	IsInvincible   bool
	LivesRemaining int

	Tilt    float64 // Degrees, visual only
	Visible bool    // False during the off phase of the invincibility flicker
}

// Deps are the collaborators a Session is built from
type Deps struct {
	Config  *config.Config
	Store   prefs.Store
	Rand    *rand.Rand       // nil seeds from the wall clock
	Probe   ContactSource    // nil uses a LaneProbe with physics.DefaultHitProfile
	Metrics *status.Registry // optional
}

// Session is one player's run: lane and speed models, collision, spawner, lives and score
// All mutation happens under mu; events are dispatched to subscribers after the lock is released
type Session struct {
	mu sync.Mutex

	cfg      *config.Config
	clock    *engine.Clock
	mover    HorizontalMover
	speed    *SpeedModel
	resolver *Resolver
	spawner  *Spawner
	life     *LifeMachine
	score    *ScoreKeeper
	meta     *Meta
	probe    ContactSource

	queue   *event.EventQueue
	router  *event.Router
	metrics *sessionMetrics

	y             float64
	dead          bool
	visible       bool
	invincibility engine.Sequence
	slide         engine.Sequence
	slideSpeed    float64
	frame         int64
}

// NewSession wires a run from deps
// Missing store or obstacle set is a configuration error
func NewSession(deps Deps) (*Session, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("session: nil config: %w", config.ErrInvalid)
	}
	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	score, err := NewScoreKeeper(deps.Store)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	meta, err := NewMeta(deps.Store)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	rng := deps.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	spawner, err := NewSpawner(cfg.Spawner, rng)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	probe := deps.Probe
	if probe == nil {
		probe = NewLaneProbe(physics.DefaultHitProfile, cfg.Movement.LaneWidth)
	}

	queue := event.NewEventQueue()
	s := &Session{
		cfg:      cfg,
		clock:    engine.NewClock(),
		mover:    NewMover(cfg.Movement),
		speed:    NewSpeedModel(cfg.Speed),
		resolver: NewResolver(),
		spawner:  spawner,
		score:    score,
		meta:     meta,
		probe:    probe,
		queue:    queue,
		router:   event.NewRouter(queue),
		visible:  true,
	}
	if deps.Metrics != nil {
		s.metrics = newSessionMetrics(deps.Metrics)
	}

	life, err := NewLifeMachine(cfg.Life, lifeHooks{s})
	if err != nil {
		return nil, fmt.Errorf("session: life machine: %w", err)
	}
	s.life = life

	s.publishMetrics()
	return s, nil
}

// Subscribe registers an event handler; must be called before the first Tick
func (s *Session) Subscribe(h event.Handler) {
	s.router.Register(h)
}

// Tick advances the run by realDt of wall time
// Game-time systems see the scaled delta, the revive countdown sees realDt
func (s *Session) Tick(realDt time.Duration) {
	s.mu.Lock()
	s.frame++
	gameDt := s.clock.Advance(realDt)
	s.life.UpdateReal(realDt)
	if gameDt > 0 {
		s.step(gameDt)
	}
	s.publishMetrics()
	s.mu.Unlock()

	s.router.DispatchAll()
}

func (s *Session) step(dt time.Duration) {
	if s.life.IsGameOver() {
		return
	}

	// Respawn delay completes here
	s.life.Update(dt)

	if s.dead {
		s.updateSlide(dt)
		s.updateSpawner(dt)
		return
	}

	s.speed.Update(dt)
	s.mover.Update(dt)
	s.y += s.speed.Current() * dt.Seconds()

	s.updateInvincibility(dt)
	s.updateSpawner(dt)

	for _, c := range s.probe.Contacts(s.mover.Offset(), s.y, s.spawner.Obstacles()) {
		s.applyContact(c)
	}
}

func (s *Session) updateSlide(dt time.Duration) {
	if !s.slide.Active() {
		return
	}
	// Linear decay of the impact speed over the slide
	v := s.slideSpeed * (1 - s.slide.Progress())
	s.y += v * dt.Seconds()
	s.slide.Advance(dt)
}

func (s *Session) updateInvincibility(dt time.Duration) {
	if !s.invincibility.Active() {
		return
	}
	steps, done := s.invincibility.Advance(dt)
	if steps%2 == 1 {
		s.visible = !s.visible
	}
	if done {
		s.visible = true
		s.resolver.SetAlive()
		s.emit(event.EventInvincibilityEnded, nil)
	}
}

func (s *Session) updateSpawner(dt time.Duration) {
	res := s.spawner.Update(dt, s.y, s.score.Current())
	for _, ob := range res.Spawned {
		s.emit(event.EventSpawnRequest, &event.SpawnRequestPayload{
			ID:       ob.ID,
			Tier:     ob.Tier.String(),
			Kind:     ob.Kind,
			Y:        ob.Y,
			Blocked:  ob.Blocked,
			ItemLane: ob.ItemLane,
			HasItem:  ob.HasItem,
		})
	}
	for _, ob := range res.Culled {
		s.emit(event.EventObstacleCulled, &event.ObstacleCulledPayload{ID: ob.ID})
	}
	if s.metrics != nil {
		s.metrics.spawned.Add(int64(len(res.Spawned)))
		s.metrics.culled.Add(int64(len(res.Culled)))
	}
}

func (s *Session) applyContact(c Contact) {
	switch s.resolver.Resolve(c) {
	case OutcomeDeath:
		s.die()
	case OutcomeItem:
		s.spawner.TakeItem(c.ID)
		newBest := s.score.Increment()
		s.emit(event.EventItemCollected, &event.ItemCollectedPayload{ID: c.ID, Score: s.score.Current()})
		s.emit(event.EventScoreChanged, &event.ScoreChangedPayload{Score: s.score.Current(), Best: s.score.Best()})
		if newBest {
			s.emit(event.EventBestScoreChanged, &event.BestScorePayload{Best: s.score.Best()})
		}
	}
}

func (s *Session) die() {
	s.dead = true
	s.visible = true
	s.invincibility.Cancel()
	if s.cfg.Movement.DeathMotion == config.DeathSlide {
		s.slideSpeed = s.speed.Current()
		s.slide.Start(parameter.DeathSlideDuration, 0)
	}
	s.life.Die(s.y)
}

func (s *Session) emit(et event.EventType, payload any) {
	s.queue.Push(event.GameEvent{Type: et, Payload: payload, Frame: s.frame})
}

// === Inputs ===

// Swipe applies a pointer gesture as a lane change
func (s *Session) Swipe(start, end Point) {
	if dir := DetectSwipe(start, end, s.cfg.Movement.SwipeThreshold); dir != 0 {
		s.Shift(dir)
	}
}

// Shift moves one lane left (-1) or right (+1)
// Ignored while dead, paused or after game over
func (s *Session) Shift(dir int) {
	s.mu.Lock()
	if !s.dead && !s.clock.IsPaused() && !s.life.IsGameOver() {
		s.mover.Shift(dir)
	}
	s.mu.Unlock()
}

// SetHold sets the boost input; the state survives death and respawn
func (s *Session) SetHold(hold bool) {
	s.mu.Lock()
	if !s.life.IsGameOver() {
		s.speed.SetHold(hold)
	}
	s.mu.Unlock()
}

// Contact injects an overlap reported by an external physics source
func (s *Session) Contact(kind ContactKind, id uint64) {
	s.mu.Lock()
	if !s.life.IsGameOver() {
		s.applyContact(Contact{Kind: kind, ID: id})
	}
	s.mu.Unlock()
	s.router.DispatchAll()
}

// GrantRevive accepts the pending revive offer
// Returns false when no offer is pending
func (s *Session) GrantRevive() bool {
	s.mu.Lock()
	ok := s.life.GrantRevive()
	s.mu.Unlock()
	s.router.DispatchAll()
	return ok
}

// Pause freezes game time; the revive countdown keeps running
func (s *Session) Pause() {
	s.mu.Lock()
	if !s.life.IsGameOver() && !s.clock.IsHeld(engine.PauseUser) {
		s.clock.Pause(engine.PauseUser)
		s.emit(event.EventPauseChanged, &event.PausePayload{Paused: true})
	}
	s.mu.Unlock()
	s.router.DispatchAll()
}

// Resume releases a user pause
func (s *Session) Resume() {
	s.mu.Lock()
	if s.clock.IsHeld(engine.PauseUser) {
		s.clock.Resume(engine.PauseUser)
		s.emit(event.EventPauseChanged, &event.PausePayload{Paused: false})
	}
	s.mu.Unlock()
	s.router.DispatchAll()
}

func (s *Session) TogglePause() {
	s.mu.Lock()
	held := s.clock.IsHeld(engine.PauseUser)
	s.mu.Unlock()
	if held {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Restart performs a full reset to run start
func (s *Session) Restart() {
	s.mu.Lock()
	s.clock.Reset()
	s.mover.Reset()
	s.speed.Reset()
	s.resolver.Reset()
	s.spawner.Reset(0)
	s.probe.Reset()
	s.score.Reset()
	s.life.Reset()
	s.invincibility.Cancel()
	s.slide.Cancel()
	s.y = 0
	s.dead = false
	s.visible = true

	s.emit(event.EventRestart, nil)
	s.emit(event.EventScoreChanged, &event.ScoreChangedPayload{Score: 0, Best: s.score.Best()})
	s.emit(event.EventLifeChanged, &event.LifeChangedPayload{Lives: s.life.Lives()})
	s.publishMetrics()
	s.mu.Unlock()

	log.Printf("session: restart, best=%d", s.score.Best())
	s.router.DispatchAll()
}

// Meta exposes the cross-run counters
func (s *Session) Meta() *Meta {
	return s.meta
}

// === Life hooks ===

type lifeHooks struct {
	s *Session
}

func (h lifeHooks) Respawn() {
	s := h.s
	s.invincibility.Cancel()
	s.slide.Cancel()

	s.y += s.cfg.Life.RespawnShift
	s.mover.Snap()
	s.speed.ResetToBase()
	s.dead = false
	s.visible = true

	s.resolver.SetInvincible()
	s.invincibility.Start(s.cfg.Life.Invincibility, s.cfg.Life.FlickerInterval)

	s.emit(event.EventPlayerRespawned, &event.PlayerRespawnedPayload{Y: s.y, Lane: s.mover.Lane()})
}

func (h lifeHooks) Freeze(frozen bool) {
	if frozen {
		h.s.clock.Pause(engine.PauseRevive)
	} else {
		h.s.clock.Resume(engine.PauseRevive)
	}
}

func (h lifeHooks) Finish() {
	s := h.s
	interstitial := s.meta.RecordGameOver()
	s.emit(event.EventGameOver, &event.GameOverPayload{Score: s.score.Current(), Best: s.score.Best()})
	if interstitial {
		s.emit(event.EventInterstitialDue, nil)
	}
	log.Printf("session: game over, score=%d best=%d", s.score.Current(), s.score.Best())
}

func (h lifeHooks) Emit(et event.EventType, payload any) {
	h.s.emit(et, payload)
}
