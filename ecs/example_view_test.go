package ecs_test

import (
	"fmt"

	"github.com/plus3/bulletfall/ecs"
)

// ExampleView shows a one-off lookup outside of any system.
func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Position{X: 10, Y: 20}, Velocity{DX: 1, DY: 0}, Health{Current: 3, Max: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	if item := view.Get(ship); item != nil {
		fmt.Printf("ship at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// ship at (10, 20) moving (1, 0)
}

// ExampleView_without uses an excluded component to split entities by role, the way a
// game separates projectiles from targets that share a Position.
func ExampleView_without() {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Tag("target"))
	storage.Spawn(Position{X: 2}, Projectile{})
	storage.Spawn(Position{X: 3}, Tag("target"))

	targets := ecs.NewView[struct {
		*Position
		Projectile *Projectile `ecs:"without"`
	}](storage)

	for item := range targets.Values() {
		fmt.Printf("target at x=%.0f\n", item.Position.X)
	}

	// Output:
	// target at x=1
	// target at x=3
}

// ExampleView_optional matches entities whether or not they carry Health.
func ExampleView_optional() {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 10}, Health{Current: 50, Max: 100})
	storage.Spawn(Position{X: 30})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	for item := range view.Values() {
		if item.Health != nil {
			fmt.Printf("x=%.0f health %d/%d\n", item.Position.X, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("x=%.0f invulnerable\n", item.Position.X)
		}
	}

	// Output:
	// x=10 health 50/100
	// x=30 invulnerable
}
