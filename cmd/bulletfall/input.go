package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bulletfall/sim"
)

var keyBindings = map[sim.Key][]ebiten.Key{
	sim.KeyUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	sim.KeyDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	sim.KeyLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	sim.KeyRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	sim.KeyFire:  {ebiten.KeySpace},
}

// keyboardInput adapts ebiten's key state to sim.Input.
type keyboardInput struct {
	pressed func(ebiten.Key) bool
	// blocked reports that another consumer owns the keyboard. Optional.
	blocked func() bool
}

func (k *keyboardInput) Pressed(key sim.Key) bool {
	if k.blocked != nil && k.blocked() {
		return false
	}
	for _, bound := range keyBindings[key] {
		if k.pressed(bound) {
			return true
		}
	}
	return false
}
