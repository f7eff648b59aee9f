package input

import (
	"log"
	"time"

	"github.com/lixenwraith/lane-runner/game"
)

// Controller is the run surface driven by player input
type Controller interface {
	Swipe(start, end game.Point)
	Shift(dir int)
	SetHold(hold bool)
	TogglePause()
	GrantRevive() bool
	Restart()
}

// Dispatcher applies intents to a Controller through post, which runs
// closures on the simulation goroutine
type Dispatcher struct {
	ctrl Controller
	post func(func()) bool
	hold *HoldTimer

	onToggleSound func()
	onRateUs      func()
	onResize      func()
}

// NewDispatcher creates a dispatcher; keyboard holds release after holdTimeout without repeats
func NewDispatcher(ctrl Controller, post func(func()) bool, holdTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{ctrl: ctrl, post: post}
	d.hold = NewHoldTimer(holdTimeout, func() {
		d.send(func() { d.ctrl.SetHold(false) })
	})
	return d
}

// OnToggleSound sets the sound toggle callback, run on the caller goroutine
func (d *Dispatcher) OnToggleSound(fn func()) { d.onToggleSound = fn }

// OnRateUs sets the rate prompt callback, run on the caller goroutine
func (d *Dispatcher) OnRateUs(fn func()) { d.onRateUs = fn }

// OnResize sets the resize callback, run on the caller goroutine
func (d *Dispatcher) OnResize(fn func()) { d.onResize = fn }

// Apply handles one intent, returning false when the player asked to quit
func (d *Dispatcher) Apply(in Intent) bool {
	switch in.Type {
	case IntentQuit:
		return false
	case IntentShiftLeft:
		d.send(func() { d.ctrl.Shift(-1) })
	case IntentShiftRight:
		d.send(func() { d.ctrl.Shift(1) })
	case IntentSwipe:
		start, end := in.Start, in.End
		d.send(func() { d.ctrl.Swipe(start, end) })
	case IntentHoldKey:
		if d.hold.Press() {
			d.send(func() { d.ctrl.SetHold(true) })
		}
	case IntentHold:
		d.hold.Stop()
		d.send(func() { d.ctrl.SetHold(true) })
	case IntentRelease:
		d.hold.Stop()
		d.send(func() { d.ctrl.SetHold(false) })
	case IntentPause:
		d.send(d.ctrl.TogglePause)
	case IntentRevive:
		d.send(func() { d.ctrl.GrantRevive() })
	case IntentRestart:
		d.hold.Stop()
		d.send(d.ctrl.Restart)
	case IntentToggleSound:
		if d.onToggleSound != nil {
			d.onToggleSound()
		}
	case IntentRateUs:
		if d.onRateUs != nil {
			d.onRateUs()
		}
	case IntentResize:
		if d.onResize != nil {
			d.onResize()
		}
	}
	return true
}

// Stop cancels a pending keyboard release
func (d *Dispatcher) Stop() {
	d.hold.Stop()
}

func (d *Dispatcher) send(fn func()) {
	if !d.post(fn) {
		log.Printf("input: queue full, intent dropped")
	}
}
