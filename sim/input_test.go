package sim

import (
	"testing"

	"github.com/plus3/bulletfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputForce(t *testing.T) {
	cases := []struct {
		keys KeySet
		want Force
	}{
		{KeySet{}, Force{}},
		{KeySet{KeyRight: true}, Force{X: 10}},
		{KeySet{KeyLeft: true, KeyUp: true}, Force{X: -10, Y: 10}},
		{KeySet{KeyDown: true}, Force{Y: -10}},
		{KeySet{KeyLeft: true, KeyRight: true, KeyUp: true, KeyDown: true}, Force{}},
	}

	for _, tc := range cases {
		storage := newWorld(t)
		setTick(storage, 1)
		player := spawnPlayer(storage, Position{X: 50, Y: 50})
		*ecs.ReadComponent[Force](storage, player) = Force{X: 3, Y: 3}

		schedule(storage, &InputSystem{Input: tc.keys, PlayerForce: 10, FireInterval: 12}).Once(0)

		assert.Equal(t, tc.want, *ecs.ReadComponent[Force](storage, player), "keys %v", tc.keys)
	}
}

func TestInputFiring(t *testing.T) {
	storage := newWorld(t)
	spawnPlayer(storage, Position{X: 40, Y: 70})
	input := &InputSystem{Input: KeySet{KeyFire: true}, PlayerForce: 10, FireInterval: 12}
	scheduler := schedule(storage, input)

	bullets := ecs.NewView[struct {
		*Position
		*Velocity
		*Drawable
		*Bullet
	}](storage)

	setTick(storage, 11)
	scheduler.Once(0)
	assert.Equal(t, 0, bullets.Count())

	setTick(storage, 12)
	scheduler.Once(0)
	scheduler.Once(0)
	require.Equal(t, 1, bullets.Count(), "one shot per tick")

	for bullet := range bullets.Values() {
		assert.Equal(t, Position{X: 40, Y: 70}, *bullet.Position)
		assert.Equal(t, Velocity{X: 0, Y: 10}, *bullet.Velocity)
		assert.Equal(t, SpriteBullet, bullet.Drawable.Kind)
	}

	setTick(storage, 24)
	input.Input = KeySet{}
	scheduler.Once(0)
	assert.Equal(t, 1, bullets.Count(), "no shot without the fire key")

	input.Input = KeySet{KeyFire: true}
	scheduler.Once(0)
	assert.Equal(t, 2, bullets.Count())
}
