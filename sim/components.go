// Package sim is the simulation core of bulletfall: a fixed-step entity update loop, an
// enemy spawn scheduler and collision resolution, built on the ecs package.
//
// The core owns no window, clock or input device. Hosts drive it through Simulation.Step
// (fixed rate) and Simulation.Frame (display rate) and read back positions, sprite indices
// and the score.
package sim

import (
	"math"

	"github.com/plus3/bulletfall/ecs"
)

// Playfield bounds in world units. The y axis points up.
const (
	FieldWidth  = 256.0
	FieldHeight = 384.0
)

// Position is a world coordinate.
type Position struct {
	X, Y float64
}

// Distance returns the euclidean distance between p and o.
func (p Position) Distance(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Velocity is measured in world units per tick.
type Velocity struct {
	X, Y float64
}

// Length returns the magnitude of v.
func (v Velocity) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Force is overwritten by behavior systems every frame and read by kinematics.
type Force struct {
	X, Y float64
}

// Mass must be strictly positive.
type Mass float64

// Phase offsets an enemy's oscillation, in [0, 60).
type Phase uint32

// Player marks the single player entity.
type Player struct{}

// Enemy marks enemy entities.
type Enemy struct{}

// Bullet marks projectiles fired by the player.
type Bullet struct{}

// SpriteKind selects how a host draws a Drawable.
type SpriteKind uint8

const (
	SpritePlayer SpriteKind = iota
	SpriteEnemy
	SpriteBullet
)

func (k SpriteKind) String() string {
	switch k {
	case SpritePlayer:
		return "player"
	case SpriteEnemy:
		return "enemy"
	case SpriteBullet:
		return "bullet"
	}
	return "unknown"
}

// Drawable is the presentation copy of an entity's position. Only the frame pass writes it.
type Drawable struct {
	X, Y float64
	Kind SpriteKind
}

// PlayerSprite is the player's animation frame index.
type PlayerSprite struct {
	Index int
}

// RegisterComponents registers every component type the simulation spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Force](registry)
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Phase](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Drawable](registry)
	ecs.RegisterComponent[PlayerSprite](registry)
}

func playerBundle() []any {
	return []any{
		Player{},
		Position{X: playerStartX, Y: playerStartY},
		Velocity{},
		Force{},
		Mass(1),
		PlayerSprite{Index: 1},
		Drawable{X: playerStartX, Y: playerStartY, Kind: SpritePlayer},
	}
}

func enemyBundle(x float64, phase int) []any {
	return []any{
		Enemy{},
		Position{X: x, Y: enemySpawnY},
		Velocity{},
		Force{},
		Mass(1),
		Phase(phase),
		Drawable{X: x, Y: enemySpawnY, Kind: SpriteEnemy},
	}
}

func bulletBundle(at Position) []any {
	return []any{
		Bullet{},
		at,
		Velocity{X: 0, Y: bulletSpeed},
		Drawable{X: at.X, Y: at.Y, Kind: SpriteBullet},
	}
}
