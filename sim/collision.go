package sim

import "github.com/plus3/bulletfall/ecs"

const (
	bulletHitRadius = 15.0
	playerHitRadius = 10.0
	bulletReward    = 100
)

// BulletCollisionSystem pairs bullets with enemies. Each bullet, in iteration order, claims
// the nearest unclaimed enemy closer than bulletHitRadius. Both are deleted and the score
// is awarded once per pair.
type BulletCollisionSystem struct {
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Position
		*Bullet
		Enemy *Enemy `ecs:"without"`
	}]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Enemy
		Bullet *Bullet `ecs:"without"`
	}]
	Score ecs.Singleton[Score]

	targets []target
}

type target struct {
	id      ecs.EntityId
	pos     Position
	claimed bool
}

func (s *BulletCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	s.targets = s.targets[:0]
	for enemy := range s.Enemies.Values() {
		s.targets = append(s.targets, target{id: enemy.EntityId, pos: *enemy.Position})
	}
	if len(s.targets) == 0 {
		return
	}

	score := s.Score.MustGet()
	for bullet := range s.Bullets.Values() {
		nearest := -1
		nearestDist := bulletHitRadius
		for i := range s.targets {
			if s.targets[i].claimed {
				continue
			}
			// Strict comparison keeps the earliest enemy on ties.
			if d := bullet.Position.Distance(s.targets[i].pos); d < nearestDist {
				nearest, nearestDist = i, d
			}
		}
		if nearest == -1 {
			continue
		}

		s.targets[nearest].claimed = true
		frame.Commands.Delete(s.targets[nearest].id)
		frame.Commands.Delete(bullet.EntityId)
		score.Award(bulletReward)
	}
}

// PlayerCollisionSystem resets the round when any enemy touches the player: every enemy
// is deleted, the score drops to zero and the player returns to its start position.
type PlayerCollisionSystem struct {
	Players ecs.Query[struct {
		*Position
		*Player
	}]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Enemy
		Player *Player `ecs:"without"`
	}]
	Score ecs.Singleton[Score]
}

func (s *PlayerCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	player := onlyPlayer(&s.Players)

	hit := false
	for enemy := range s.Enemies.Values() {
		if enemy.Position.Distance(*player.Position) < playerHitRadius {
			hit = true
			break
		}
	}
	if !hit {
		return
	}

	for enemy := range s.Enemies.Values() {
		frame.Commands.Delete(enemy.EntityId)
	}
	s.Score.MustGet().Reset()
	*player.Position = Position{X: playerStartX, Y: playerStartY}
}
