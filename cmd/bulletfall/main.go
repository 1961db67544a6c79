// Command bulletfall runs the game in an ebiten window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/bulletfall/ecs"
	"github.com/plus3/bulletfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/bulletfall/ecs/debugui/ebiten"
	"github.com/plus3/bulletfall/sim"
)

const (
	ScreenWidth  = 512
	ScreenHeight = 768
	DebugWidth   = 1280
)

type Game struct {
	sim *sim.Simulation
	err error

	// Set when the debug overlay is enabled.
	overlay *ecs.Scheduler
	panels  *debugui.Panels
	backend *debugui_ebiten.ImguiBackend
}

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	seed := flag.Uint64("seed", 0, "Random seed; 0 seeds from the clock.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay. Tab toggles it.")
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

	game := &Game{sim: s}
	input := &keyboardInput{pressed: ebiten.IsKeyPressed}

	if *debug {
		game.backend = debugui_ebiten.NewImguiBackend("bulletfall (debug)", DebugWidth, ScreenHeight)
		game.overlay, game.panels = newOverlay(s, input)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("bulletfall")
	}
	s.SetInput(input)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("Game stopped: %v", err)
	}
}

// newOverlay builds the debug overlay store and blocks game input while ImGui has focus.
func newOverlay(s *sim.Simulation, input *keyboardInput) (*ecs.Scheduler, *debugui.Panels) {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	overlay := ecs.NewStorage(registry)

	panels := debugui.Install(overlay, s.Storage(), s.Stats,
		debugui.Gauge{Label: "Tick", Value: func() string { return fmt.Sprint(s.Tick()) }},
		debugui.Gauge{Label: "Score", Value: s.ScoreText},
		debugui.Gauge{Label: "Enemies", Value: func() string { return fmt.Sprint(s.EnemyCount()) }},
	)

	state := ecs.NewSingleton[debugui.ImguiInputState](overlay)
	input.blocked = func() bool { return panels.Visible() && state.Get().WantCaptureKeyboard }

	scheduler := ecs.NewNamedScheduler("overlay", overlay)
	scheduler.Register(&debugui.ImguiSystem{})
	return scheduler, panels
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			g.panels.SetVisible(!g.panels.Visible())
		}
		g.backend.BeginFrame()
		g.overlay.Once(1.0 / 60.0)
		g.backend.EndFrame()
	}

	return g.sim.Step()
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw cannot fail, so a frame error stops the game on the next Update.
	if err := g.sim.Frame(); err != nil {
		g.err = err
		return
	}
	drawWorld(screen, g.sim)

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}
