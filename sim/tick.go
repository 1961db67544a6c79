package sim

import "github.com/plus3/bulletfall/ecs"

// TickCounter counts fixed steps. It wraps at 2^32.
type TickCounter struct {
	Value uint32
}

// Advance increments the counter, wrapping on overflow.
func (t *TickCounter) Advance() {
	t.Value++
}

// IsMultipleOf reports whether the current tick is a multiple of n.
func (t *TickCounter) IsMultipleOf(n uint32) bool {
	return t.Value%n == 0
}

// TickSystem advances the tick counter. It runs first in the fixed pass.
type TickSystem struct {
	Tick ecs.Singleton[TickCounter]
}

func (s *TickSystem) Execute(frame *ecs.UpdateFrame) {
	s.Tick.MustGet().Advance()
}
