package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bulletfall/sim"
)

// holdWindow is how long a key counts as held after its last press event. Terminals
// report no key releases, so a held key is one whose autorepeat keeps refreshing it.
const holdWindow = 150 * time.Millisecond

var runeBindings = map[rune]sim.Key{
	'w': sim.KeyUp,
	's': sim.KeyDown,
	'a': sim.KeyLeft,
	'd': sim.KeyRight,
	' ': sim.KeyFire,
}

var keyBindings = map[tcell.Key]sim.Key{
	tcell.KeyUp:    sim.KeyUp,
	tcell.KeyDown:  sim.KeyDown,
	tcell.KeyLeft:  sim.KeyLeft,
	tcell.KeyRight: sim.KeyRight,
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func mapKey(ev *tcell.EventKey) (sim.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		key, ok := runeBindings[r]
		return key, ok
	}
	key, ok := keyBindings[ev.Key()]
	return key, ok
}

// heldKeys is a sim.Input fed by key press events.
type heldKeys struct {
	now    func() time.Time
	pressT map[sim.Key]time.Time
}

func newHeldKeys(now func() time.Time) *heldKeys {
	return &heldKeys{now: now, pressT: make(map[sim.Key]time.Time)}
}

func (h *heldKeys) press(key sim.Key) {
	h.pressT[key] = h.now()
}

func (h *heldKeys) Pressed(key sim.Key) bool {
	at, ok := h.pressT[key]
	return ok && h.now().Sub(at) < holdWindow
}
