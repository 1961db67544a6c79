package sim

import "github.com/plus3/bulletfall/ecs"

const (
	spriteTurnForce  = 3.0
	spriteBlinkEvery = 15
	spriteBlinkShift = 3
)

// RenderSyncSystem copies every drawable entity's Position into its Drawable.
type RenderSyncSystem struct {
	Drawables ecs.Query[struct {
		*Position
		*Drawable
	}]
}

func (s *RenderSyncSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Drawables.Values() {
		item.Drawable.X = item.Position.X
		item.Drawable.Y = item.Position.Y
	}
}

// PlayerSpriteSystem picks the player's animation frame from its sideways force.
type PlayerSpriteSystem struct {
	Players ecs.Query[struct {
		*Force
		*PlayerSprite
		*Player
	}]
	Tick ecs.Singleton[TickCounter]
}

func (s *PlayerSpriteSystem) Execute(frame *ecs.UpdateFrame) {
	player := onlyPlayer(&s.Players)
	player.PlayerSprite.Index = spriteIndex(player.Force.X, s.Tick.MustGet())
}

// spriteIndex is 0 when turning left, 2 when turning right and 1 otherwise, shifted to the
// second sprite row on blink ticks.
func spriteIndex(forceX float64, tick *TickCounter) int {
	index := 1
	switch {
	case forceX >= spriteTurnForce:
		index = 2
	case forceX <= -spriteTurnForce:
		index = 0
	}
	if tick.IsMultipleOf(spriteBlinkEvery) {
		index += spriteBlinkShift
	}
	return index
}
