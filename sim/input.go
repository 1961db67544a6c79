package sim

import "github.com/plus3/bulletfall/ecs"

const bulletSpeed = 10.0

// Key is a logical game control.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	}
	return "unknown"
}

// Input reports which controls are currently held.
type Input interface {
	Pressed(key Key) bool
}

// KeySet is an Input backed by a fixed set of held keys.
type KeySet map[Key]bool

func (k KeySet) Pressed(key Key) bool {
	return k[key]
}

// InputSystem turns held controls into the player's force and fires bullets while the
// fire key is held, once every FireInterval ticks.
type InputSystem struct {
	Input        Input
	PlayerForce  float64
	FireInterval uint32

	Players ecs.Query[struct {
		*Position
		*Force
		*Player
	}]
	Tick ecs.Singleton[TickCounter]

	// The frame pass can run several times per tick; fire at most once per tick value.
	lastShot uint32
	haveShot bool
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	player := onlyPlayer(&s.Players)

	var force Force
	if s.Input.Pressed(KeyRight) {
		force.X += s.PlayerForce
	}
	if s.Input.Pressed(KeyLeft) {
		force.X -= s.PlayerForce
	}
	if s.Input.Pressed(KeyUp) {
		force.Y += s.PlayerForce
	}
	if s.Input.Pressed(KeyDown) {
		force.Y -= s.PlayerForce
	}
	*player.Force = force

	tick := s.Tick.MustGet()
	if !s.Input.Pressed(KeyFire) || !tick.IsMultipleOf(s.FireInterval) {
		return
	}
	if s.haveShot && s.lastShot == tick.Value {
		return
	}
	s.lastShot, s.haveShot = tick.Value, true
	frame.Commands.Spawn(bulletBundle(*player.Position)...)
}
