package game

import "testing"

func TestResolverDoubleObstacleSingleDeath(t *testing.T) {
	r := NewResolver()

	if got := r.Resolve(Contact{Kind: ContactObstacle, ID: 1}); got != OutcomeDeath {
		t.Fatalf("Expected death, got %v", got)
	}
	if got := r.Resolve(Contact{Kind: ContactObstacle, ID: 2}); got != OutcomeNone {
		t.Errorf("Second obstacle in the same tick must be ignored, got %v", got)
	}
	if r.State() != Dead {
		t.Errorf("Expected Dead, got %v", r.State())
	}
}

func TestResolverInvincibleIgnoresObstacles(t *testing.T) {
	r := NewResolver()
	r.SetInvincible()

	if got := r.Resolve(Contact{Kind: ContactObstacle, ID: 1}); got != OutcomeNone {
		t.Errorf("Expected no-op while invincible, got %v", got)
	}
	if got := r.Resolve(Contact{Kind: ContactItem, ID: 5}); got != OutcomeItem {
		t.Errorf("Items must be collected while invincible, got %v", got)
	}

	r.SetAlive()
	if r.State() != Alive {
		t.Errorf("Expected Alive after invincibility, got %v", r.State())
	}
}

func TestResolverItems(t *testing.T) {
	r := NewResolver()

	if got := r.Resolve(Contact{Kind: ContactItem, ID: 7}); got != OutcomeItem {
		t.Fatalf("Expected item, got %v", got)
	}
	if got := r.Resolve(Contact{Kind: ContactItem, ID: 7}); got != OutcomeNone {
		t.Errorf("Item consumed twice")
	}
	if r.State() != Alive {
		t.Errorf("Item changed state to %v", r.State())
	}

	r.Resolve(Contact{Kind: ContactObstacle, ID: 1})
	if got := r.Resolve(Contact{Kind: ContactItem, ID: 8}); got != OutcomeNone {
		t.Errorf("Item collected while Dead")
	}
}

func TestResolverSetAliveWhileDead(t *testing.T) {
	r := NewResolver()
	r.Resolve(Contact{Kind: ContactObstacle, ID: 1})
	r.SetAlive()
	if r.State() != Dead {
		t.Errorf("SetAlive must not revive, got %v", r.State())
	}

	r.Reset()
	if r.State() != Alive {
		t.Errorf("Expected Alive after reset, got %v", r.State())
	}
	if got := r.Resolve(Contact{Kind: ContactItem, ID: 1}); got != OutcomeItem {
		t.Error("Reset must forget consumed items")
	}
}

func TestResolverUnknownKind(t *testing.T) {
	r := NewResolver()
	if got := r.Resolve(Contact{Kind: "Wall", ID: 1}); got != OutcomeNone {
		t.Errorf("Expected unknown kind ignored, got %v", got)
	}
}
