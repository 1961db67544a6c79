package sim

import (
	"fmt"

	"github.com/plus3/bulletfall/ecs"
)

const (
	playerStartX = 128.0
	playerStartY = 20.0
)

// onlyPlayer returns the single entity matched by a player query. Zero or several matches
// break the one-player invariant and panic.
func onlyPlayer[T any](players *ecs.Query[T]) T {
	var (
		found T
		count int
	)
	for player := range players.Values() {
		found = player
		count++
	}

	switch {
	case count == 0:
		panic(ErrMissingPlayer)
	case count > 1:
		panic(fmt.Errorf("%w: found %d", ErrDuplicatePlayer, count))
	}
	return found
}
