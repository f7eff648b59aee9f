package physics

import (
	"math"
	"testing"
)

func TestSmoothDampConvergesWithoutOvershoot(t *testing.T) {
	profile := &DampProfile{SmoothTime: 0.1}
	pos, vel := 0.0, 0.0
	target := 2.0

	for i := 0; i < 120; i++ {
		pos, vel = SmoothDamp(pos, target, vel, profile, 1.0/60)
		if pos > target+1e-9 {
			t.Fatalf("Overshoot at step %d: %v", i, pos)
		}
	}
	if math.Abs(pos-target) > 1e-3 {
		t.Errorf("Expected convergence to %v, got %v", target, pos)
	}
}

func TestSmoothDampNegativeDirection(t *testing.T) {
	profile := &DampProfile{SmoothTime: 0.1}
	pos, vel := 2.0, 0.0
	for i := 0; i < 120; i++ {
		pos, vel = SmoothDamp(pos, -2, vel, profile, 1.0/60)
		if pos < -2-1e-9 {
			t.Fatalf("Overshoot at step %d: %v", i, pos)
		}
	}
	if math.Abs(pos+2) > 1e-3 {
		t.Errorf("Expected convergence to -2, got %v", pos)
	}
}

func TestSmoothDampDeadZoneSnaps(t *testing.T) {
	profile := &DampProfile{SmoothTime: 0.1, DeadZone: 0.01}
	pos, vel := SmoothDamp(1.995, 2, 0.1, profile, 1.0/60)
	if pos != 2 || vel != 0 {
		t.Errorf("Expected snap to target, got pos=%v vel=%v", pos, vel)
	}
}

func TestSmoothDampZeroDt(t *testing.T) {
	pos, vel := SmoothDamp(1, 2, 3, &DampProfile{SmoothTime: 0.1}, 0)
	if pos != 1 || vel != 3 {
		t.Errorf("Zero dt must not move: pos=%v vel=%v", pos, vel)
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                   string
		current, target, delta float64
		want                   float64
	}{
		{"step up", 0, 10, 3, 3},
		{"step down", 10, 0, 3, 7},
		{"reach", 9, 10, 3, 10},
		{"no delta", 5, 10, 0, 5},
		{"at target", 10, 10, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveTowards(tt.current, tt.target, tt.delta); got != tt.want {
				t.Errorf("MoveTowards(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.delta, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	a := Box(0, 0, 1, 1)
	if !a.Overlaps(Box(1.5, 0, 1, 1)) {
		t.Error("Expected overlap")
	}
	if a.Overlaps(Box(2, 0, 1, 1)) {
		t.Error("Touching edges should not overlap")
	}
	if a.Overlaps(Box(0, 5, 1, 1)) {
		t.Error("Expected no overlap along Y")
	}
}

func TestDefaultProfileLeavesLaneGap(t *testing.T) {
	p := DefaultHitProfile
	// Runner centered in lane 0 must not touch an obstacle in lane 1
	runner := Box(0, 0, p.PlayerHalfWidth, p.PlayerHalfLength)
	neighbour := Box(2.0, 0, p.ObstacleHalfWidth, p.ObstacleHalfLength)
	if runner.Overlaps(neighbour) {
		t.Error("Runner in a lane overlaps the neighbouring lane obstacle")
	}
}

func TestSwayAdvance(t *testing.T) {
	s := Sway{Amplitude: 3, AngularSpeed: math.Pi}
	if s.Offset() != 0 || s.Direction() != 1 {
		t.Fatalf("Expected centered and moving right, got %v %v", s.Offset(), s.Direction())
	}

	s.Advance(0.5)
	if math.Abs(s.Offset()-3) > 1e-9 {
		t.Errorf("Expected peak after a quarter period, got %v", s.Offset())
	}

	// Wraps to one period
	s.Advance(10)
	if s.Phase < 0 || s.Phase >= 2*math.Pi {
		t.Errorf("Phase not wrapped: %v", s.Phase)
	}

	still := Sway{Amplitude: 3}
	still.Advance(5)
	if still.Offset() != 0 {
		t.Errorf("Zero angular speed should not move, got %v", still.Offset())
	}
}
