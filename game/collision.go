package game

import "fmt"

// CollisionState is the runner's collision mode
type CollisionState uint8

const (
	Alive CollisionState = iota
	Invincible
	Dead
)

func (s CollisionState) String() string {
	switch s {
	case Alive:
		return "Alive"
	case Invincible:
		return "Invincible"
	case Dead:
		return "Dead"
	default:
		return fmt.Sprintf("CollisionState(%d)", s)
	}
}

// ContactKind tags what the runner touched
type ContactKind string

const (
	ContactObstacle ContactKind = "Obstacle"
	ContactItem     ContactKind = "Item"
)

// Contact is a single overlap notification
type Contact struct {
	Kind ContactKind
	ID   uint64
}

// Outcome is the resolver's verdict for a contact
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeDeath
	OutcomeItem
)

// Resolver turns contacts into outcomes
// Duplicate and late contacts resolve to OutcomeNone rather than an error
type Resolver struct {
	state    CollisionState
	consumed map[uint64]struct{}
}

func NewResolver() *Resolver {
	return &Resolver{consumed: make(map[uint64]struct{})}
}

// Resolve applies one contact
func (r *Resolver) Resolve(c Contact) Outcome {
	switch c.Kind {
	case ContactObstacle:
		if r.state != Alive {
			return OutcomeNone
		}
		r.state = Dead
		return OutcomeDeath

	case ContactItem:
		if r.state == Dead {
			return OutcomeNone
		}
		if _, ok := r.consumed[c.ID]; ok {
			return OutcomeNone
		}
		r.consumed[c.ID] = struct{}{}
		return OutcomeItem
	}
	return OutcomeNone
}

func (r *Resolver) State() CollisionState { return r.state }

// SetInvincible is entered on respawn and revive
func (r *Resolver) SetInvincible() { r.state = Invincible }

// SetAlive ends invincibility; no-op while Dead
func (r *Resolver) SetAlive() {
	if r.state == Invincible {
		r.state = Alive
	}
}

// Reset restores the run-start state
func (r *Resolver) Reset() {
	r.state = Alive
	clear(r.consumed)
}
