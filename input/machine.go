package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-runner/game"
	"github.com/lixenwraith/lane-runner/parameter"
)

// Machine decodes terminal events into intents
// Tracks the pointer between press and release to recognize drags as swipes
type Machine struct {
	table *KeyTable

	dragging  bool
	dragStart game.Point
}

// NewMachine creates a machine; a nil table uses DefaultKeyTable
func NewMachine(table *KeyTable) *Machine {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Machine{table: table}
}

// Reset drops any in-progress drag
func (m *Machine) Reset() {
	m.dragging = false
	m.dragStart = game.Point{}
}

// Dragging reports whether the primary button is held
func (m *Machine) Dragging() bool {
	return m.dragging
}

// Process decodes one event, returning zero or more intents in order
func (m *Machine) Process(ev tcell.Event) []Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t := m.table.Lookup(ev); t != IntentNone {
			return []Intent{{Type: t}}
		}
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		return []Intent{{Type: IntentResize}}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) []Intent {
	x, y := ev.Position()
	// Cells are roughly twice as tall as wide
	p := game.Point{
		X: float64(x) * parameter.MouseUnitsPerColumn,
		Y: float64(y) * parameter.MouseUnitsPerRow,
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !m.dragging:
		m.dragging = true
		m.dragStart = p
		return []Intent{{Type: IntentHold}}
	case !pressed && m.dragging:
		m.dragging = false
		return []Intent{
			{Type: IntentRelease},
			{Type: IntentSwipe, Start: m.dragStart, End: p},
		}
	}
	return nil
}
