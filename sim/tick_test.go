package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickCounter(t *testing.T) {
	tick := TickCounter{Value: math.MaxUint32}
	tick.Advance()
	assert.Equal(t, uint32(0), tick.Value, "wraps without error")
	assert.True(t, tick.IsMultipleOf(240))

	tick.Value = 120
	assert.True(t, tick.IsMultipleOf(40))
	assert.True(t, tick.IsMultipleOf(120))
	assert.False(t, tick.IsMultipleOf(240))
	assert.False(t, tick.IsMultipleOf(13))
}

func TestTickSystem(t *testing.T) {
	storage := newWorld(t)
	scheduler := schedule(storage, &TickSystem{})

	for range 5 {
		scheduler.Once(0)
	}
	assert.Equal(t, uint32(5), tickOf(storage))
}
