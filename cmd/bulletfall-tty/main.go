// Command bulletfall-tty runs the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/bulletfall/sim"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

type Game struct {
	screen tcell.Screen
	sim    *sim.Simulation
	input  *heldKeys
}

func NewGame(s *sim.Simulation) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	input := newHeldKeys(time.Now)
	s.SetInput(input)
	return &Game{screen: screen, sim: s, input: input}, nil
}

// handleEvent returns false when the player asks to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if key, ok := mapKey(ev); ok {
			g.input.press(key)
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go g.pollEvents(eventChan, done)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !g.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if err := g.sim.Advance(); err != nil {
				return err
			}
			drawWorld(g.screen, g.sim)
			g.screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	seed := flag.Uint64("seed", 0, "Random seed; 0 seeds from the clock.")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	s, err := sim.New(cfg, nil, nil)
	if err != nil {
		log.Fatalf("Failed to build simulation: %v", err)
	}

	game, err := NewGame(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	err = game.run()
	game.screen.Fini()
	if err != nil {
		log.Fatalf("Game stopped: %v", err)
	}
}
