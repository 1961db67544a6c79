package sim

import "github.com/plus3/bulletfall/ecs"

const (
	enemyPruneY  = -10.0
	bulletPruneY = 500.0
)

// PlayerBoundSystem keeps the player inside the playfield. Leaving it on an axis stops the
// player on that axis.
type PlayerBoundSystem struct {
	Players ecs.Query[struct {
		*Position
		*Velocity
		*Player
	}]
}

func (s *PlayerBoundSystem) Execute(frame *ecs.UpdateFrame) {
	player := onlyPlayer(&s.Players)
	enforceBounds(player.Position, player.Velocity)
}

// enforceBounds clamps p to the playfield and zeroes v on every axis that was clamped.
// It leaves in-bounds positions untouched.
func enforceBounds(p *Position, v *Velocity) {
	if p.X < 0 || p.X > FieldWidth {
		v.X = 0
		p.X = clamp(p.X, 0, FieldWidth)
	}
	if p.Y < 0 || p.Y > FieldHeight {
		v.Y = 0
		p.Y = clamp(p.Y, 0, FieldHeight)
	}
}

// PruneSystem deletes enemies that fell below the playfield and bullets that left it
// through the top.
type PruneSystem struct {
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Enemy
		Bullet *Bullet `ecs:"without"`
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Position
		*Bullet
		Enemy *Enemy `ecs:"without"`
	}]
}

func (s *PruneSystem) Execute(frame *ecs.UpdateFrame) {
	for enemy := range s.Enemies.Values() {
		if enemy.Position.Y < enemyPruneY {
			frame.Commands.Delete(enemy.EntityId)
		}
	}
	for bullet := range s.Bullets.Values() {
		if bullet.Position.Y > bulletPruneY {
			frame.Commands.Delete(bullet.EntityId)
		}
	}
}
