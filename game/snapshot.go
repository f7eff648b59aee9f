package game

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-runner/engine"
	"github.com/lixenwraith/lane-runner/status"
)

// ObstacleView is a read-only copy of a placed row
type ObstacleView struct {
	ID       uint64
	Kind     string
	Tier     Tier
	Y        float64
	Blocked  []int // Shared with the live row, never mutated after placement
	HasItem  bool
	ItemLane int
	OffsetX  float64 // Side sway applied to every lane of the row
}

// Snapshot is a consistent copy of the run for rendering and inspection
type Snapshot struct {
	Player    PlayerState
	Collision CollisionState
	LifeState string

	// SpeedRatio is current speed mapped onto [0,1] between base and max
	SpeedRatio float64

	Score int
	Best  int

	Obstacles []ObstacleView

	Paused          bool
	AwaitingRevive  bool
	ReviveRemaining int
	GameOver        bool

	GameTime time.Duration
	RealTime time.Duration
	Frame    int64
}

// Snapshot copies the current run state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	obstacles := s.spawner.Obstacles()
	views := make([]ObstacleView, 0, len(obstacles))
	for _, ob := range obstacles {
		views = append(views, ObstacleView{
			ID:       ob.ID,
			Kind:     ob.Kind,
			Tier:     ob.Tier,
			Y:        ob.Y,
			Blocked:  ob.Blocked,
			HasItem:  ob.HasItem && !ob.ItemTaken,
			ItemLane: ob.ItemLane,
			OffsetX:  ob.OffsetX(),
		})
	}

	awaiting := s.life.State() == StateAwaitingRevive
	snap := Snapshot{
		Player:         s.playerState(),
		Collision:      s.resolver.State(),
		LifeState:      s.life.StateName(),
		SpeedRatio:     s.speed.Normalized(),
		Score:          s.score.Current(),
		Best:           s.score.Best(),
		Obstacles:      views,
		Paused:         s.clock.IsHeld(engine.PauseUser),
		AwaitingRevive: awaiting,
		GameOver:       s.life.IsGameOver(),
		GameTime:       s.clock.GameTime(),
		RealTime:       s.clock.RealTime(),
		Frame:          s.frame,
	}
	if awaiting {
		snap.ReviveRemaining = s.life.CountdownRemaining()
	}
	return snap
}

func (s *Session) playerState() PlayerState {
	return PlayerState{
		LaneIndex:      s.mover.Lane(),
		TargetOffsetX:  s.mover.Target(),
		CurrentOffsetX: s.mover.Offset(),
		PositionY:      s.y,
		BaseSpeed:      s.speed.Base(),
		CurrentSpeed:   s.speed.Current(),
		IsDead:         s.dead,
		IsInvincible:   s.resolver.State() == Invincible,
		LivesRemaining: s.life.Lives(),
		Tilt:           s.mover.Tilt(),
		Visible:        s.visible,
	}
}

// sessionMetrics caches registry pointers written after every tick
type sessionMetrics struct {
	score, best, lives *atomic.Int64
	active, spawned    *atomic.Int64
	culled, frame      *atomic.Int64
	speed, y           *status.AtomicFloat
	paused, invincible *atomic.Bool
	state              *status.AtomicString
}

func newSessionMetrics(r *status.Registry) *sessionMetrics {
	return &sessionMetrics{
		score:      r.Ints.Get(status.KeyScore),
		best:       r.Ints.Get(status.KeyBestScore),
		lives:      r.Ints.Get(status.KeyLives),
		active:     r.Ints.Get(status.KeyActiveObstacle),
		spawned:    r.Ints.Get(status.KeySpawned),
		culled:     r.Ints.Get(status.KeyCulled),
		frame:      r.Ints.Get(status.KeyTicks),
		speed:      r.Floats.Get(status.KeySpeed),
		y:          r.Floats.Get(status.KeyPlayerY),
		paused:     r.Bools.Get(status.KeyPaused),
		invincible: r.Bools.Get(status.KeyInvincible),
		state:      r.Strings.Get(status.KeyLifeState),
	}
}

func (s *Session) publishMetrics() {
	m := s.metrics
	if m == nil {
		return
	}
	m.score.Store(int64(s.score.Current()))
	m.best.Store(int64(s.score.Best()))
	m.lives.Store(int64(s.life.Lives()))
	m.active.Store(int64(len(s.spawner.Obstacles())))
	m.frame.Store(s.frame)
	m.speed.Store(s.speed.Current())
	m.y.Store(s.y)
	m.paused.Store(s.clock.IsPaused())
	m.invincible.Store(s.resolver.State() == Invincible)
	m.state.Store(s.life.StateName())
}
