package game

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/lane-runner/config"
)

func newTestSpawner(t *testing.T, mutate func(*config.SpawnerConfig)) *Spawner {
	t.Helper()
	cfg := config.Default().Spawner
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSpawner(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewSpawner failed: %v", err)
	}
	return s
}

func TestSpawnerWarmupAndFirstPlacement(t *testing.T) {
	s := newTestSpawner(t, nil)

	// Nothing during the 1.5s warm-up
	for i := 0; i < 14; i++ {
		if res := s.Update(100*time.Millisecond, 0, 0); len(res.Spawned) != 0 {
			t.Fatalf("Spawned during warm-up at %dms", (i+1)*100)
		}
	}

	res := s.Update(100*time.Millisecond, 0, 0)
	if len(res.Spawned) == 0 {
		t.Fatal("Expected placement once the delay elapsed")
	}
	if res.Spawned[0].Y != 40 {
		t.Errorf("Expected first obstacle at start+40, got %v", res.Spawned[0].Y)
	}
	// Lookahead 130 from y=0 also admits 105
	if len(res.Spawned) != 2 || res.Spawned[1].Y != 105 {
		t.Errorf("Expected second obstacle at 105, got %+v", res.Spawned)
	}
	if s.State().LastSpawnY != 105 {
		t.Errorf("Expected LastSpawnY 105, got %v", s.State().LastSpawnY)
	}
}

func TestSpawnerCatchesUpWithinOneTick(t *testing.T) {
	s := newTestSpawner(t, nil)
	s.Update(1500*time.Millisecond, 0, 0)

	// Player jumped far ahead; rows every 65 up to y+130
	res := s.Update(16*time.Millisecond, 400, 0)
	want := []float64{170, 235, 300, 365, 430, 495}
	if len(res.Spawned) != len(want) {
		t.Fatalf("Expected %d placements, got %d", len(want), len(res.Spawned))
	}
	for i, ob := range res.Spawned {
		if ob.Y != want[i] {
			t.Errorf("Placement %d at %v, want %v", i, ob.Y, want[i])
		}
	}
}

func TestSpawnerTierSelection(t *testing.T) {
	s := newTestSpawner(t, nil)
	cfg := config.Default().Spawner

	easy := s.Update(1500*time.Millisecond, 0, cfg.HardScoreThreshold-1)
	for _, ob := range easy.Spawned {
		if ob.Tier != TierEasy || len(ob.Blocked) != 1 {
			t.Errorf("Expected easy single-lane row below threshold, got tier=%v blocked=%v", ob.Tier, ob.Blocked)
		}
	}

	hard := s.Update(16*time.Millisecond, 300, cfg.HardScoreThreshold)
	if len(hard.Spawned) == 0 {
		t.Fatal("Expected placements")
	}
	for _, ob := range hard.Spawned {
		if ob.Tier != TierHard || len(ob.Blocked) != 2 {
			t.Errorf("Expected hard two-lane row at threshold, got tier=%v blocked=%v", ob.Tier, ob.Blocked)
		}
		found := false
		for _, k := range cfg.Hard {
			found = found || k == ob.Kind
		}
		if !found {
			t.Errorf("Kind %q not in hard set", ob.Kind)
		}
		if ob.HasItem && ob.Blocks(ob.ItemLane) {
			t.Errorf("Item placed in blocked lane %d", ob.ItemLane)
		}
	}
}

func TestSpawnerHardFallsBackToEasy(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) { c.Hard = nil })
	res := s.Update(1500*time.Millisecond, 0, 100)
	for _, ob := range res.Spawned {
		if ob.Tier != TierEasy {
			t.Errorf("Expected easy fallback, got %v", ob.Tier)
		}
	}
}

func TestSpawnerFirstKind(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) { c.FirstKind = "oil" })
	res := s.Update(1500*time.Millisecond, 0, 0)
	if res.Spawned[0].Kind != "oil" {
		t.Errorf("Expected forced first kind oil, got %q", res.Spawned[0].Kind)
	}

	// Unknown first kind is ignored
	s2 := newTestSpawner(t, func(c *config.SpawnerConfig) { c.FirstKind = "tesseract" })
	res2 := s2.Update(1500*time.Millisecond, 0, 0)
	if res2.Spawned[0].Kind == "tesseract" {
		t.Error("First kind outside the easy set must not be placed")
	}
}

func TestSpawnerDisabledKeepsBookkeeping(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) { c.Disabled = true })
	res := s.Update(1500*time.Millisecond, 0, 0)
	if len(res.Spawned) != 0 || len(s.Obstacles()) != 0 {
		t.Errorf("Disabled spawner placed rows: %d", len(res.Spawned))
	}
	if s.Placed() != 2 || s.State().LastSpawnY != 105 {
		t.Errorf("Expected bookkeeping to advance: placed=%d last=%v", s.Placed(), s.State().LastSpawnY)
	}
}

func TestSpawnerCullPolled(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) { c.ItemChance = 0 })
	s.Update(1500*time.Millisecond, 0, 0) // rows at 40, 105; cull poll consumed 1s

	// 0.4s later the poll is not yet due
	res := s.Update(400*time.Millisecond, 200, 0)
	if len(res.Culled) != 0 {
		t.Fatalf("Culled before the poll: %d", len(res.Culled))
	}

	res = s.Update(100*time.Millisecond, 200, 0)
	if len(res.Culled) != 2 {
		t.Fatalf("Expected rows at 40 and 105 culled, got %d", len(res.Culled))
	}
	for _, ob := range s.Obstacles() {
		if 200-ob.Y > 60 {
			t.Errorf("Row at %v survived the cull", ob.Y)
		}
	}
	if s.Find(res.Culled[0].ID) != nil {
		t.Error("Culled row still findable")
	}
}

func TestSpawnerTakeItem(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) { c.ItemChance = 1 })
	res := s.Update(1500*time.Millisecond, 0, 0)
	id := res.Spawned[0].ID

	if !s.TakeItem(id) {
		t.Fatal("Expected item taken")
	}
	if s.TakeItem(id) {
		t.Error("Item taken twice")
	}
	if s.TakeItem(9999) {
		t.Error("Unknown row reported an item")
	}
}

func TestSpawnerReset(t *testing.T) {
	s := newTestSpawner(t, nil)
	s.Update(1500*time.Millisecond, 0, 0)
	s.Reset(50)

	if len(s.Obstacles()) != 0 || s.State().Started {
		t.Error("Reset kept rows or started flag")
	}
	res := s.Update(1500*time.Millisecond, 50, 0)
	if res.Spawned[0].Y != 90 {
		t.Errorf("Expected first row at 50+40, got %v", res.Spawned[0].Y)
	}
}

func TestNewSpawnerRequiresEasySet(t *testing.T) {
	cfg := config.Default().Spawner
	cfg.Easy = nil
	_, err := NewSpawner(cfg, rand.New(rand.NewPCG(1, 2)))
	if !errors.Is(err, ErrNoObstacles) {
		t.Errorf("Expected ErrNoObstacles, got %v", err)
	}
}

func TestNewSpawnerRejectsZeroCullInterval(t *testing.T) {
	cfg := config.Default().Spawner
	cfg.CullInterval = 0
	if _, err := NewSpawner(cfg, rand.New(rand.NewPCG(1, 2))); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected config.ErrInvalid, got %v", err)
	}
}

func TestSpawnerSwaysConfiguredKinds(t *testing.T) {
	s := newTestSpawner(t, func(c *config.SpawnerConfig) {
		c.Easy = []string{"cone"}
		c.Sway = map[string]config.SwayConfig{"cone": {Amplitude: 1.5, AngularSpeed: math.Pi}}
	})

	res := s.Update(1500*time.Millisecond, 0, 0)
	if len(res.Spawned) == 0 {
		t.Fatal("Expected placements after warm-up")
	}
	row := res.Spawned[0]
	if row.OffsetX() != 0 {
		t.Errorf("New row should start centered, got %v", row.OffsetX())
	}

	// Half a second at pi rad/s is a quarter period: full amplitude
	s.Update(500*time.Millisecond, 0, 0)
	if math.Abs(row.OffsetX()-1.5) > 1e-9 {
		t.Errorf("Expected offset 1.5 after a quarter period, got %v", row.OffsetX())
	}
	if x := row.LaneX(-1, 2); math.Abs(x-(-0.5)) > 1e-9 {
		t.Errorf("Expected lane -1 center at -0.5, got %v", x)
	}

	// Kinds without a sway entry stay put
	still := newTestSpawner(t, func(c *config.SpawnerConfig) {
		c.Easy = []string{"barrier"}
		c.Sway = map[string]config.SwayConfig{"cone": {Amplitude: 1.5, AngularSpeed: math.Pi}}
	})
	res = still.Update(1500*time.Millisecond, 0, 0)
	still.Update(500*time.Millisecond, 0, 0)
	if res.Spawned[0].OffsetX() != 0 {
		t.Errorf("Unswayed kind moved to %v", res.Spawned[0].OffsetX())
	}
}

func TestSpawnerDeterministicForSeed(t *testing.T) {
	a := newTestSpawner(t, nil)
	b := newTestSpawner(t, nil)
	ra := a.Update(1500*time.Millisecond, 500, 0)
	rb := b.Update(1500*time.Millisecond, 500, 0)
	if len(ra.Spawned) != len(rb.Spawned) {
		t.Fatal("Placement counts differ")
	}
	for i := range ra.Spawned {
		if ra.Spawned[i].Kind != rb.Spawned[i].Kind || ra.Spawned[i].Blocked[0] != rb.Spawned[i].Blocked[0] {
			t.Errorf("Row %d differs between equal seeds", i)
		}
	}
}
