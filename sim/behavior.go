package sim

import (
	"math"

	"github.com/plus3/bulletfall/ecs"
)

const (
	enemyFall      = -2.0
	enemySwayForce = 6.0
)

// EnemyBehaviorSystem recomputes enemy forces: a constant downward pull and a sideways
// sway driven by the tick and each enemy's phase.
type EnemyBehaviorSystem struct {
	Enemies ecs.Query[struct {
		*Force
		*Phase
		*Enemy
	}]
	Tick ecs.Singleton[TickCounter]
}

func (s *EnemyBehaviorSystem) Execute(frame *ecs.UpdateFrame) {
	tick := s.Tick.MustGet().Value
	for enemy := range s.Enemies.Values() {
		t := float64((tick + uint32(*enemy.Phase)) % phasePeriod)
		enemy.Force.Y = enemyFall
		enemy.Force.X = enemySwayForce * math.Sin(t)
	}
}
