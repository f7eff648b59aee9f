package fsm

import (
	"time"

	"github.com/lixenwraith/lane-runner/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// Machine is a generic hierarchical finite state machine
// T is the context type passed to actions and guards
// Not safe for concurrent use; driven from the tick goroutine
type Machine[T any] struct {
	// Graph data, immutable after CompilePaths
	nodes    map[StateID]*Node[T]
	compiled bool

	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID // Root -> Leaf

	// Guard against transitions issued from inside enter/exit actions
	transitioning bool
	pending       StateID
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup
	Path []StateID

	OnEnter  []ActionFunc[T]
	OnUpdate []UpdateFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // EventTick = evaluated on every Update
	Guard    GuardFunc[T]    // nil = always true
	Action   ActionFunc[T]   // Runs after exit and before enter actions
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)

// UpdateFunc runs every Update while the state is active
type UpdateFunc[T any] func(ctx T, dt time.Duration)
