package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bulletfall/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCell(t *testing.T) {
	col, row, ok := toCell(0, 0, 80, 24)
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 23, row)

	col, row, ok = toCell(128, 20, 80, 24)
	assert.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, 22, row)

	_, _, ok = toCell(sim.FieldWidth, 20, 80, 24)
	assert.False(t, ok, "right edge is outside the grid")

	_, _, ok = toCell(10, -100, 80, 24)
	assert.False(t, ok)
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want sim.Key
		ok   bool
	}{
		{"w", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), sim.KeyUp, true},
		{"upper D", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), sim.KeyRight, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), sim.KeyFire, true},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), sim.KeyLeft, true},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), sim.KeyDown, true},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := mapKey(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, key)
			}
		})
	}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
}

func TestHeldKeysExpire(t *testing.T) {
	now := time.Unix(1000, 0)
	held := newHeldKeys(func() time.Time { return now })

	assert.False(t, held.Pressed(sim.KeyFire))

	held.press(sim.KeyFire)
	assert.True(t, held.Pressed(sim.KeyFire))
	assert.False(t, held.Pressed(sim.KeyLeft))

	now = now.Add(holdWindow - time.Millisecond)
	assert.True(t, held.Pressed(sim.KeyFire))

	now = now.Add(time.Millisecond)
	assert.False(t, held.Pressed(sim.KeyFire), "released once autorepeat stops")

	held.press(sim.KeyFire)
	assert.True(t, held.Pressed(sim.KeyFire))
}

func TestDrawWorld(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 24)

	s, err := sim.New(sim.DefaultConfig(), nil, sim.KeySet{})
	require.NoError(t, err)

	drawWorld(screen, s)

	mainc, _, _, _ := screen.GetContent(40, 22)
	assert.Equal(t, 'A', mainc, "player glyph at its start cell")

	var score []rune
	for x := range 5 {
		r, _, _, _ := screen.GetContent(x, 0)
		score = append(score, r)
	}
	assert.Equal(t, "00000", string(score))
}

func TestPlayerGlyph(t *testing.T) {
	assert.Equal(t, '<', playerGlyph(0))
	assert.Equal(t, '}', playerGlyph(5))
	assert.Equal(t, 'A', playerGlyph(-1))
	assert.Equal(t, 'A', playerGlyph(6))
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	g := &Game{screen: screen}

	// Nobody reads events, as after the game loop has returned.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		g.pollEvents(events, done)
		close(exited)
	}()

	screen.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("event poller still blocked after the loop stopped")
	}
	_, open := <-events
	assert.False(t, open)
}
