package fsm

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/lane-runner/event"
)

var (
	ErrUnknownState = errors.New("unknown state")
	ErrNotCompiled  = errors.New("machine paths not compiled")
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter for the chain from root to the initial leaf
func (m *Machine[T]) Init(ctx T) error {
	if !m.compiled {
		return ErrNotCompiled
	}
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state %d: %w", m.InitialStateID, ErrUnknownState)
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	m.transitioning = true
	for _, id := range m.activePath {
		for _, fn := range m.nodes[id].OnEnter {
			fn(ctx)
		}
	}
	m.transitioning = false
	m.flushPending(ctx)
	return nil
}

// Update advances the machine by dt, runs OnUpdate for the leaf and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, fn := range leaf.OnUpdate {
		fn(ctx, dt)
		if m.activeStateID != leaf.ID {
			return
		}
	}

	m.fire(ctx, event.EventTick)
}

// HandleEvent routes an event through the active path, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, et event.EventType) bool {
	if m.activeStateID == StateNone {
		return false
	}
	return m.fire(ctx, et)
}

func (m *Machine[T]) fire(ctx T, et event.EventType) bool {
	// Bubble up: Leaf -> Parent -> Root
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event != et {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID, trans.Action)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// Transition forces a move to targetID, running exit and enter actions
// A call issued from inside an action is deferred until the current transition completes
func (m *Machine[T]) Transition(ctx T, targetID StateID) error {
	if _, ok := m.nodes[targetID]; !ok {
		return fmt.Errorf("transition target %d: %w", targetID, ErrUnknownState)
	}
	m.transition(ctx, targetID, nil)
	return nil
}

func (m *Machine[T]) transition(ctx T, targetID StateID, action ActionFunc[T]) {
	if m.transitioning {
		m.pending = targetID
		return
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	m.transitioning = true

	if m.activeStateID == targetID {
		// Self-transition re-runs the leaf's exit and enter
		leaf := m.nodes[targetID]
		for _, fn := range leaf.OnExit {
			fn(ctx)
		}
		if action != nil {
			action(ctx)
		}
		m.timeInState = 0
		for _, fn := range leaf.OnEnter {
			fn(ctx)
		}
		m.transitioning = false
		m.flushPending(ctx)
		return
	}

	// Find LCA
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit phase: walk up from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		for _, fn := range m.nodes[currentPath[i]].OnExit {
			fn(ctx)
		}
	}

	if action != nil {
		action(ctx)
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter phase: walk down from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, fn := range m.nodes[targetPath[i]].OnEnter {
			fn(ctx)
		}
	}

	m.transitioning = false
	m.flushPending(ctx)
}

func (m *Machine[T]) flushPending(ctx T) {
	if m.pending == StateNone {
		return
	}
	target := m.pending
	m.pending = StateNone
	m.transition(ctx, target, nil)
}

// Reset returns to the initial state without running exit actions of the abandoned path
func (m *Machine[T]) Reset(ctx T) error {
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.pending = StateNone
	return m.Init(ctx)
}

// State returns the active leaf
func (m *Machine[T]) State() StateID {
	return m.activeStateID
}

// StateName returns the active leaf name, empty before Init
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether id is the active leaf or one of its ancestors
func (m *Machine[T]) InState(id StateID) bool {
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// TimeInState returns time accumulated through Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}
