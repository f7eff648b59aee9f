package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns arrow, vi-style and WASD bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentPause,
			tcell.KeyLeft:   IntentShiftLeft,
			tcell.KeyRight:  IntentShiftRight,
			tcell.KeyUp:     IntentHoldKey,
			tcell.KeyEnter:  IntentRevive,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'h': IntentShiftLeft,
			'a': IntentShiftLeft,
			'l': IntentShiftRight,
			'd': IntentShiftRight,
			'k': IntentHoldKey,
			'w': IntentHoldKey,
			' ': IntentHoldKey,
			'p': IntentPause,
			'r': IntentRevive,
			'n': IntentRestart,
			'm': IntentToggleSound,
			'u': IntentRateUs,
		},
	}
}

// Lookup resolves a key event, IntentNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
