package ecs_test

import (
	"testing"

	"github.com/plus3/bulletfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Clock struct {
	Ticks uint32
}

func TestSingleton(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	clock := ecs.NewSingleton[Clock](storage, Clock{Ticks: 3})
	clock.Get().Ticks++

	again := ecs.NewSingleton[Clock](storage, Clock{Ticks: 100})
	assert.Equal(t, uint32(4), again.Get().Ticks, "initializer ignored when singleton exists")

	var read *Clock
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, clock.Get(), read)

	// Replacing the value keeps accessors pointed at the same cell.
	storage.AddSingleton(Clock{Ticks: 9})
	assert.Equal(t, uint32(9), clock.Get().Ticks)
}

func TestSingletonMissing(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var accessor ecs.Singleton[Clock]
	accessor.Init(storage)
	assert.False(t, accessor.Exists())
	assert.Nil(t, accessor.Get())
	assert.Panics(t, func() { accessor.MustGet() })

	var read *Clock
	assert.False(t, storage.ReadSingleton(&read))
	assert.Panics(t, func() { storage.ReadSingleton(read) })

	storage.AddSingleton(Clock{Ticks: 1})
	assert.True(t, accessor.Exists())
	assert.Equal(t, []string{"ecs_test.Clock"}, storage.SingletonTypes())
}
