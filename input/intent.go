package input

import "github.com/lixenwraith/lane-runner/game"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit
	IntentResize
	IntentToggleSound

	// Movement
	IntentShiftLeft
	IntentShiftRight
	IntentSwipe // Pointer gesture; Start and End carry the scaled endpoints

	// Speed hold
	IntentHoldKey // Keyboard hold, released by timeout since terminals report no key-up
	IntentHold    // Pointer down
	IntentRelease // Pointer up

	// Run flow
	IntentPause
	IntentRevive
	IntentRestart
	IntentRateUs
)

var intentNames = map[IntentType]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentResize:      "resize",
	IntentToggleSound: "toggle-sound",
	IntentShiftLeft:   "shift-left",
	IntentShiftRight:  "shift-right",
	IntentSwipe:       "swipe",
	IntentHoldKey:     "hold-key",
	IntentHold:        "hold",
	IntentRelease:     "release",
	IntentPause:       "pause",
	IntentRevive:      "revive",
	IntentRestart:     "restart",
	IntentRateUs:      "rate-us",
}

func (t IntentType) String() string {
	if n, ok := intentNames[t]; ok {
		return n
	}
	return "unknown"
}

// Intent is one semantic action decoded from a terminal event
type Intent struct {
	Type       IntentType
	Start, End game.Point
}
