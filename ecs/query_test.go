package ecs_test

import (
	"testing"

	"github.com/plus3/bulletfall/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})

	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	assert.Equal(t, 1, query.Count())

	// Archetypes created after the first iteration are picked up.
	late := storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{})
	assert.Equal(t, 2, query.Count())

	var xs []float32
	for item := range query.Values() {
		item.Position.X += item.Velocity.DX
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float32{2, 4}, xs)

	assert.NotNil(t, query.Get(late))
	storage.Delete(late)
	assert.Nil(t, query.Get(late))
	assert.Equal(t, 1, query.Count())
}

func TestQueryUsedBeforeInitPanics(t *testing.T) {
	var query ecs.Query[struct{ *Position }]
	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})
}
