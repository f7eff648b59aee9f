package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/lixenwraith/lane-runner/config"
	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/physics"
)

// ErrNoObstacles is returned when the easy obstacle set is empty
var ErrNoObstacles = config.ErrNoObstacles

// Tier is an obstacle difficulty set
type Tier uint8

const (
	TierEasy Tier = iota
	TierHard
)

func (t Tier) String() string {
	if t == TierHard {
		return "hard"
	}
	return "easy"
}

// Obstacle is one placed row: one or more blocked lanes and an optional item in a free lane
type Obstacle struct {
	ID      uint64
	Kind    string
	Tier    Tier
	Y       float64
	Blocked []int

	ItemLane  int
	HasItem   bool
	ItemTaken bool

	// Sway shifts the whole row, item included, across the road
	Sway physics.Sway
}

// OffsetX is the current side shift of the row in world units
func (o *Obstacle) OffsetX() float64 {
	return o.Sway.Offset()
}

// LaneX returns the world X of a lane center on this row
func (o *Obstacle) LaneX(lane int, laneWidth float64) float64 {
	return float64(lane)*laneWidth + o.Sway.Offset()
}

// Blocks reports whether lane is closed by this row
func (o *Obstacle) Blocks(lane int) bool {
	return slices.Contains(o.Blocked, lane)
}

// SpawnState is the per-run placement bookkeeping
type SpawnState struct {
	LastSpawnY          float64
	Spacing             float64
	SafeZoneDistance    float64
	SpawnDelayRemaining time.Duration
	StartY              float64
	Started             bool
}

// SpawnResult lists what changed during one Update
type SpawnResult struct {
	Spawned []*Obstacle
	Culled  []*Obstacle
}

// Spawner places obstacle rows ahead of the player and culls the ones left behind
type Spawner struct {
	cfg   config.SpawnerConfig
	rng   *rand.Rand
	state SpawnState

	obstacles []*Obstacle
	nextID    uint64
	placed    uint64
	cullAcc   time.Duration
}

// NewSpawner validates the obstacle sets; rng drives tier kind, lane and item selection
func NewSpawner(cfg config.SpawnerConfig, rng *rand.Rand) (*Spawner, error) {
	if len(cfg.Easy) == 0 {
		return nil, fmt.Errorf("spawner: %w", ErrNoObstacles)
	}
	if cfg.Spacing <= 0 {
		return nil, fmt.Errorf("spawner: spacing %v: %w", cfg.Spacing, config.ErrInvalid)
	}
	if cfg.CullInterval <= 0 {
		return nil, fmt.Errorf("spawner: cull interval %v: %w", cfg.CullInterval, config.ErrInvalid)
	}
	if rng == nil {
		return nil, errors.New("spawner: nil random source")
	}
	s := &Spawner{cfg: cfg, rng: rng}
	s.Reset(0)
	return s, nil
}

// Reset discards all rows and restarts the warm-up delay from startY
func (s *Spawner) Reset(startY float64) {
	s.state = SpawnState{
		LastSpawnY:          startY,
		Spacing:             s.cfg.Spacing,
		SafeZoneDistance:    s.cfg.SafeZone,
		SpawnDelayRemaining: s.cfg.Delay,
		StartY:              startY,
	}
	s.obstacles = s.obstacles[:0]
	s.placed = 0
	s.cullAcc = 0
}

// Update advances the spawner by dt of game time for a player at playerY
// Multiple rows may be placed in one call to catch up with a fast player
func (s *Spawner) Update(dt time.Duration, playerY float64, score int) SpawnResult {
	var res SpawnResult

	step := dt.Seconds()
	for _, ob := range s.obstacles {
		ob.Sway.Advance(step)
	}

	if !s.state.Started {
		s.state.SpawnDelayRemaining -= dt
		if s.state.SpawnDelayRemaining > 0 {
			return res
		}
		s.state.SpawnDelayRemaining = 0
		s.state.Started = true
		s.place(s.state.StartY+s.state.SafeZoneDistance, score, &res)
	}

	for playerY+s.cfg.Lookahead > s.state.LastSpawnY+s.state.Spacing {
		s.place(s.state.LastSpawnY+s.state.Spacing, score, &res)
	}

	s.cullAcc += dt
	if s.cullAcc >= s.cfg.CullInterval {
		s.cullAcc %= s.cfg.CullInterval
		res.Culled = s.cull(playerY)
	}

	return res
}

func (s *Spawner) place(y float64, score int, res *SpawnResult) {
	s.state.LastSpawnY = y
	s.placed++
	if s.cfg.Disabled {
		return
	}

	tier := TierEasy
	set := s.cfg.Easy
	if score >= s.cfg.HardScoreThreshold && len(s.cfg.Hard) > 0 {
		tier = TierHard
		set = s.cfg.Hard
	}

	kind := set[s.rng.IntN(len(set))]
	if s.placed == 1 && s.cfg.FirstKind != "" && slices.Contains(s.cfg.Easy, s.cfg.FirstKind) {
		tier = TierEasy
		kind = s.cfg.FirstKind
	}

	blockedCount := parameter.EasyBlockedLanes
	if tier == TierHard {
		blockedCount = parameter.HardBlockedLanes
	}

	lanes := []int{-1, 0, 1}
	s.rng.Shuffle(len(lanes), func(i, j int) { lanes[i], lanes[j] = lanes[j], lanes[i] })

	blocked := slices.Clone(lanes[:blockedCount])
	slices.Sort(blocked)

	s.nextID++
	ob := &Obstacle{
		ID:      s.nextID,
		Kind:    kind,
		Tier:    tier,
		Y:       y,
		Blocked: blocked,
	}
	if s.rng.Float64() < s.cfg.ItemChance {
		ob.HasItem = true
		ob.ItemLane = lanes[blockedCount]
	}
	if sw, ok := s.cfg.Sway[kind]; ok && sw.Amplitude > 0 {
		ob.Sway = physics.Sway{Amplitude: sw.Amplitude, AngularSpeed: sw.AngularSpeed}
	}

	s.obstacles = append(s.obstacles, ob)
	res.Spawned = append(res.Spawned, ob)
}

func (s *Spawner) cull(playerY float64) []*Obstacle {
	var culled []*Obstacle
	kept := s.obstacles[:0]
	for _, ob := range s.obstacles {
		if playerY-ob.Y > s.cfg.CullDistance {
			culled = append(culled, ob)
			continue
		}
		kept = append(kept, ob)
	}
	// Release pointers held past the new length
	clear(s.obstacles[len(kept):])
	s.obstacles = kept
	return culled
}

// Obstacles returns the live rows ordered by Y
func (s *Spawner) Obstacles() []*Obstacle {
	return s.obstacles
}

// Find returns the live row with id
func (s *Spawner) Find(id uint64) *Obstacle {
	for _, ob := range s.obstacles {
		if ob.ID == id {
			return ob
		}
	}
	return nil
}

// TakeItem marks the item on row id as collected
func (s *Spawner) TakeItem(id uint64) bool {
	ob := s.Find(id)
	if ob == nil || !ob.HasItem || ob.ItemTaken {
		return false
	}
	ob.ItemTaken = true
	return true
}

// State returns a copy of the placement bookkeeping
func (s *Spawner) State() SpawnState {
	return s.state
}

// Placed returns the number of rows placed this run, including disabled placements
func (s *Spawner) Placed() uint64 {
	return s.placed
}
